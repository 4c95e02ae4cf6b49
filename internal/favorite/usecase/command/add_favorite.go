package command

import (
	"context"
	"fmt"

	"github.com/tair/social-favorites/internal/favorite/domain"
	"github.com/tair/social-favorites/pkg/apperror"
	"github.com/tair/social-favorites/pkg/logger"
)

// AddFavoriteCommand represents the command to favorite a post or a user
type AddFavoriteCommand struct {
	ActorID    uint
	TargetType domain.TargetType
	TargetID   uint
}

// AddFavoriteHandler handles add favorite command
type AddFavoriteHandler struct {
	repo    domain.FavoriteRepository
	posts   domain.PostLookup
	users   domain.UserLookup
	metrics *Metrics
}

// NewAddFavoriteHandler creates a new add favorite handler
func NewAddFavoriteHandler(
	repo domain.FavoriteRepository,
	posts domain.PostLookup,
	users domain.UserLookup,
	metrics *Metrics,
) *AddFavoriteHandler {
	return &AddFavoriteHandler{repo: repo, posts: posts, users: users, metrics: metrics}
}

// Handle is idempotent: favoriting twice returns the existing row
func (h *AddFavoriteHandler) Handle(ctx context.Context, cmd AddFavoriteCommand) (*domain.Favorite, error) {
	if cmd.ActorID == 0 {
		return nil, apperror.ErrUnauthenticated
	}
	if _, err := domain.ParseTargetType(string(cmd.TargetType)); err != nil {
		return nil, err
	}

	favorite := &domain.Favorite{
		UserID:          cmd.ActorID,
		FavoritableType: cmd.TargetType,
		FavoritableID:   cmd.TargetID,
	}
	if favorite.IsSelfReference() {
		return nil, fmt.Errorf("user %d: %w", cmd.ActorID, apperror.ErrSelfReference)
	}

	if err := h.ensureTargetExists(ctx, cmd.TargetType, cmd.TargetID); err != nil {
		return nil, err
	}

	created, err := h.repo.FirstOrCreate(ctx, favorite)
	if err != nil {
		return nil, err
	}

	if created {
		h.metrics.created.WithLabelValues(string(cmd.TargetType)).Inc()
		logger.Debug(ctx).
			Uint("user_id", cmd.ActorID).
			Str("target_type", string(cmd.TargetType)).
			Uint("target_id", cmd.TargetID).
			Msg("Favorite created")
	}

	return favorite, nil
}

func (h *AddFavoriteHandler) ensureTargetExists(ctx context.Context, targetType domain.TargetType, id uint) error {
	var err error
	switch targetType {
	case domain.TargetPost:
		_, err = h.posts.FindByID(ctx, id)
	case domain.TargetUser:
		_, err = h.users.FindByID(ctx, id)
	}
	return err
}
