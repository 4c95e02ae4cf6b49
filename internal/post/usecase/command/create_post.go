package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tair/social-favorites/internal/events"
	"github.com/tair/social-favorites/internal/post/domain"
	"github.com/tair/social-favorites/pkg/apperror"
	"github.com/tair/social-favorites/pkg/auth"
	"github.com/tair/social-favorites/pkg/logger"
)

const maxTitleLength = 255

// CreatePostCommand represents the command to create a new post
type CreatePostCommand struct {
	Actor    auth.Actor
	Title    string
	Body     string
	ImageURL string
}

// CreatePostHandler handles post creation command
type CreatePostHandler struct {
	repo      domain.PostRepository
	publisher events.PostCreatedPublisher
}

// NewCreatePostHandler creates a new create post handler
func NewCreatePostHandler(repo domain.PostRepository, publisher events.PostCreatedPublisher) *CreatePostHandler {
	return &CreatePostHandler{repo: repo, publisher: publisher}
}

// Handle stores the post and hands a post.created event to the notification pipeline.
// A publish failure is logged and never fails the request.
func (h *CreatePostHandler) Handle(ctx context.Context, cmd CreatePostCommand) (*domain.Post, error) {
	if cmd.Actor.ID == 0 {
		return nil, apperror.ErrUnauthenticated
	}
	if err := validateContent(cmd.Title, cmd.Body); err != nil {
		return nil, err
	}

	post := &domain.Post{
		UserID: cmd.Actor.ID,
		Title:  strings.TrimSpace(cmd.Title),
		Body:   cmd.Body,
	}
	if url := strings.TrimSpace(cmd.ImageURL); url != "" {
		post.ImageURL = &url
	}

	if err := h.repo.Create(ctx, post); err != nil {
		return nil, err
	}

	event := events.PostCreated{
		EventID:    uuid.NewString(),
		EventType:  events.EventTypePostCreated,
		PostID:     post.ID,
		Title:      post.Title,
		AuthorID:   cmd.Actor.ID,
		AuthorName: cmd.Actor.Name,
		Timestamp:  time.Now().UTC(),
	}
	if err := h.publisher.PublishPostCreated(ctx, event); err != nil {
		logger.Error(ctx).
			Err(err).
			Uint("post_id", post.ID).
			Msg("Failed to publish post.created event")
	}

	return post, nil
}

func validateContent(title, body string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("title is required: %w", apperror.ErrValidation)
	}
	if len(title) > maxTitleLength {
		return fmt.Errorf("title must not exceed %d characters: %w", maxTitleLength, apperror.ErrValidation)
	}
	if strings.TrimSpace(body) == "" {
		return fmt.Errorf("body is required: %w", apperror.ErrValidation)
	}
	return nil
}
