package command

import (
	"context"
	"fmt"

	"github.com/tair/social-favorites/internal/post/domain"
	"github.com/tair/social-favorites/pkg/apperror"
)

// DeletePostCommand represents the command to delete a post
type DeletePostCommand struct {
	ActorID uint
	PostID  uint
}

// DeletePostHandler handles post deletion command
type DeletePostHandler struct {
	repo domain.PostRepository
}

// NewDeletePostHandler creates a new delete post handler
func NewDeletePostHandler(repo domain.PostRepository) *DeletePostHandler {
	return &DeletePostHandler{repo: repo}
}

// Handle executes the delete post command; only the author may delete
func (h *DeletePostHandler) Handle(ctx context.Context, cmd DeletePostCommand) error {
	if cmd.ActorID == 0 {
		return apperror.ErrUnauthenticated
	}

	post, err := h.repo.FindByID(ctx, cmd.PostID)
	if err != nil {
		return err
	}
	if !post.IsOwnedBy(cmd.ActorID) {
		return fmt.Errorf("post %d belongs to another user: %w", post.ID, apperror.ErrForbidden)
	}

	return h.repo.Delete(ctx, post.ID)
}
