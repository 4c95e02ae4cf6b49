package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/tair/social-favorites/internal/events"
)

// ErrNotificationNotFound is returned when marking an unknown notification as read
var ErrNotificationNotFound = errors.New("notification not found")

// TypeNewPost is the kind of notification sent when a favorited user publishes a post
const TypeNewPost = "new_post"

// Recipient is a user that receives a notification
type Recipient struct {
	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// Notification is the payload delivered to every recipient
type Notification struct {
	ID         string     `json:"id"`
	Type       string     `json:"type"`
	PostID     uint       `json:"post_id"`
	PostTitle  string     `json:"post_title"`
	AuthorID   uint       `json:"author_id"`
	AuthorName string     `json:"author_name"`
	CreatedAt  time.Time  `json:"created_at"`
	ReadAt     *time.Time `json:"read_at"`
}

// NewPostNotification builds the notification for a freshly created post
func NewPostNotification(event events.PostCreated) Notification {
	createdAt := event.Timestamp
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	return Notification{
		ID:         uuid.NewString(),
		Type:       TypeNewPost,
		PostID:     event.PostID,
		PostTitle:  event.Title,
		AuthorID:   event.AuthorID,
		AuthorName: event.AuthorName,
		CreatedAt:  createdAt,
	}
}

// Notifier delivers one notification to a set of recipients.
// Each recipient is attempted independently; the returned error joins per-recipient failures.
type Notifier interface {
	Notify(ctx context.Context, recipients []Recipient, n Notification) error
}
