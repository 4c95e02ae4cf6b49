// Package events holds the integration events exchanged between the API and the notifier.
package events

import (
	"context"
	"time"
)

// Event types
const (
	EventTypePostCreated = "post.created"
)

// Kafka topics
const (
	TopicPostCreated = "post-created"
)

// PostCreated is emitted once a post has been stored
type PostCreated struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	PostID     uint      `json:"post_id"`
	Title      string    `json:"title"`
	AuthorID   uint      `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Timestamp  time.Time `json:"timestamp"`
}

// PostCreatedPublisher hands a PostCreated event to the notification pipeline.
// Implementations must not block on the delivery of notifications.
type PostCreatedPublisher interface {
	PublishPostCreated(ctx context.Context, event PostCreated) error
}
