package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tair/social-favorites/internal/notification/domain"
	"github.com/tair/social-favorites/pkg/logger"
)

// Inbox is the read side of the notification store
type Inbox interface {
	List(ctx context.Context, userID uint, limit int) ([]domain.Notification, error)
	MarkRead(ctx context.Context, userID uint, notificationID string) error
}

// NotificationHandler serves the current user's notification inbox
type NotificationHandler struct {
	inbox Inbox
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(inbox Inbox) *NotificationHandler {
	return &NotificationHandler{inbox: inbox}
}

// RegisterRoutes mounts the inbox routes behind the given middleware
func (h *NotificationHandler) RegisterRoutes(router fiber.Router, middleware ...fiber.Handler) {
	group := router.Group("/notifications", middleware...)
	group.Get("/", h.List)
	group.Post("/:id/read", h.MarkRead)
}

// List handles GET /notifications
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthenticated"})
	}

	items, err := h.inbox.List(c.UserContext(), actor.ID, c.QueryInt("limit", 0))
	if err != nil {
		logger.Error(c.UserContext()).Err(err).Uint("user_id", actor.ID).Msg("Failed to list notifications")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	return c.JSON(fiber.Map{"data": items})
}

// MarkRead handles POST /notifications/:id/read
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthenticated"})
	}

	err := h.inbox.MarkRead(c.UserContext(), actor.ID, c.Params("id"))
	switch {
	case errors.Is(err, domain.ErrNotificationNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	case err != nil:
		logger.Error(c.UserContext()).Err(err).Uint("user_id", actor.ID).Msg("Failed to mark notification read")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
