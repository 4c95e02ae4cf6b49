package query

import (
	"context"

	"github.com/tair/social-favorites/internal/favorite/domain"
	"github.com/tair/social-favorites/pkg/apperror"
)

// ListFavoritesQuery represents the query to list the actor's favorites
type ListFavoritesQuery struct {
	ActorID uint
}

// ListFavoritesHandler handles list favorites query
type ListFavoritesHandler struct {
	repo domain.FavoriteRepository
}

// NewListFavoritesHandler creates a new list favorites handler
func NewListFavoritesHandler(repo domain.FavoriteRepository) *ListFavoritesHandler {
	return &ListFavoritesHandler{repo: repo}
}

// Handle executes the list favorites query
func (h *ListFavoritesHandler) Handle(ctx context.Context, query ListFavoritesQuery) (*domain.Partitioned, error) {
	if query.ActorID == 0 {
		return nil, apperror.ErrUnauthenticated
	}

	favorites, err := h.repo.FindByUser(ctx, query.ActorID)
	if err != nil {
		return nil, err
	}

	partitioned := domain.Partition(favorites)
	return &partitioned, nil
}
