package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/tair/social-favorites/internal/post/domain"
	"github.com/tair/social-favorites/pkg/apperror"
)

// UpdatePostCommand represents the command to update a post
type UpdatePostCommand struct {
	ActorID  uint
	PostID   uint
	Title    string
	Body     string
	ImageURL *string
}

// UpdatePostHandler handles post update command
type UpdatePostHandler struct {
	repo domain.PostRepository
}

// NewUpdatePostHandler creates a new update post handler
func NewUpdatePostHandler(repo domain.PostRepository) *UpdatePostHandler {
	return &UpdatePostHandler{repo: repo}
}

// Handle executes the update post command; only the author may update
func (h *UpdatePostHandler) Handle(ctx context.Context, cmd UpdatePostCommand) (*domain.Post, error) {
	if cmd.ActorID == 0 {
		return nil, apperror.ErrUnauthenticated
	}

	post, err := h.repo.FindByID(ctx, cmd.PostID)
	if err != nil {
		return nil, err
	}
	if !post.IsOwnedBy(cmd.ActorID) {
		return nil, fmt.Errorf("post %d belongs to another user: %w", post.ID, apperror.ErrForbidden)
	}

	if err := validateContent(cmd.Title, cmd.Body); err != nil {
		return nil, err
	}

	post.Title = strings.TrimSpace(cmd.Title)
	post.Body = cmd.Body
	if cmd.ImageURL != nil {
		if url := strings.TrimSpace(*cmd.ImageURL); url != "" {
			post.ImageURL = &url
		} else {
			post.ImageURL = nil
		}
	}

	if err := h.repo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}
