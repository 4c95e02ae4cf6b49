package query

import (
	"context"

	"github.com/tair/social-favorites/internal/post/domain"
)

// GetPostQuery represents the query to get a post by ID
type GetPostQuery struct {
	ID uint
}

// GetPostHandler handles get post query
type GetPostHandler struct {
	repo  domain.PostRepository
	users domain.UserLookup
}

// NewGetPostHandler creates a new get post handler
func NewGetPostHandler(repo domain.PostRepository, users domain.UserLookup) *GetPostHandler {
	return &GetPostHandler{repo: repo, users: users}
}

// Handle executes the get post query
func (h *GetPostHandler) Handle(ctx context.Context, query GetPostQuery) (*domain.PostWithAuthor, error) {
	post, err := h.repo.FindByID(ctx, query.ID)
	if err != nil {
		return nil, err
	}

	views, err := withAuthors(ctx, h.users, []domain.Post{*post})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}
