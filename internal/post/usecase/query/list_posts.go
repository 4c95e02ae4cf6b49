package query

import (
	"context"

	"github.com/tair/social-favorites/internal/post/domain"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// ListPostsQuery represents the query to page through posts, newest first
type ListPostsQuery struct {
	Limit  int
	Offset int
}

// ListPostsHandler handles list posts query
type ListPostsHandler struct {
	repo  domain.PostRepository
	users domain.UserLookup
}

// NewListPostsHandler creates a new list posts handler
func NewListPostsHandler(repo domain.PostRepository, users domain.UserLookup) *ListPostsHandler {
	return &ListPostsHandler{repo: repo, users: users}
}

// Handle executes the list posts query
func (h *ListPostsHandler) Handle(ctx context.Context, query ListPostsQuery) ([]domain.PostWithAuthor, error) {
	if query.Limit <= 0 {
		query.Limit = defaultLimit
	}
	if query.Limit > maxLimit {
		query.Limit = maxLimit
	}
	if query.Offset < 0 {
		query.Offset = 0
	}

	posts, err := h.repo.List(ctx, query.Limit, query.Offset)
	if err != nil {
		return nil, err
	}
	return withAuthors(ctx, h.users, posts)
}
