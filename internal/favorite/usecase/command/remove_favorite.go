package command

import (
	"context"
	"fmt"

	"github.com/tair/social-favorites/internal/favorite/domain"
	"github.com/tair/social-favorites/pkg/apperror"
)

// RemoveFavoriteCommand represents the command to unfavorite a post or a user
type RemoveFavoriteCommand struct {
	ActorID    uint
	TargetType domain.TargetType
	TargetID   uint
}

// RemoveFavoriteHandler handles remove favorite command
type RemoveFavoriteHandler struct {
	repo    domain.FavoriteRepository
	metrics *Metrics
}

// NewRemoveFavoriteHandler creates a new remove favorite handler
func NewRemoveFavoriteHandler(repo domain.FavoriteRepository, metrics *Metrics) *RemoveFavoriteHandler {
	return &RemoveFavoriteHandler{repo: repo, metrics: metrics}
}

// Handle deletes the actor's own favorite; another user's favorite is reported as not found
func (h *RemoveFavoriteHandler) Handle(ctx context.Context, cmd RemoveFavoriteCommand) error {
	if cmd.ActorID == 0 {
		return apperror.ErrUnauthenticated
	}
	if _, err := domain.ParseTargetType(string(cmd.TargetType)); err != nil {
		return err
	}

	favorite, err := h.repo.FindOwned(ctx, cmd.ActorID, cmd.TargetType, cmd.TargetID)
	if err != nil {
		return err
	}

	rows, err := h.repo.Delete(ctx, favorite.ID)
	if err != nil {
		return err
	}
	// lost a race with a concurrent removal
	if rows == 0 {
		return fmt.Errorf("favorite %d: %w", favorite.ID, apperror.ErrNotFound)
	}

	h.metrics.removed.WithLabelValues(string(cmd.TargetType)).Inc()
	return nil
}
