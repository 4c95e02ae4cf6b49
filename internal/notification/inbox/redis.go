// Package inbox stores delivered notifications in per-user Redis lists.
package inbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tair/social-favorites/internal/notification/domain"
	"github.com/tair/social-favorites/pkg/logger"
)

const (
	defaultTTL   = 30 * 24 * time.Hour
	defaultLimit = 50
	maxLimit     = 200
)

// RedisInbox keeps the newest notifications first under notif:<user_id>
type RedisInbox struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisInbox creates a new Redis-backed inbox
func NewRedisInbox(rdb *redis.Client) *RedisInbox {
	return &RedisInbox{rdb: rdb, ttl: defaultTTL}
}

func key(userID uint) string { return fmt.Sprintf("notif:%d", userID) }

// Notify pushes the notification onto every recipient's list
func (r *RedisInbox) Notify(ctx context.Context, recipients []domain.Recipient, n domain.Notification) error {
	b, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	var errs []error
	for _, recipient := range recipients {
		pipe := r.rdb.TxPipeline()
		pipe.LPush(ctx, key(recipient.UserID), b)
		pipe.Expire(ctx, key(recipient.UserID), r.ttl)
		if _, err := pipe.Exec(ctx); err != nil {
			logger.Warn(ctx).
				Err(err).
				Uint("user_id", recipient.UserID).
				Str("notification_id", n.ID).
				Msg("Failed to store notification")
			errs = append(errs, fmt.Errorf("inbox %d: %w", recipient.UserID, err))
		}
	}
	return errors.Join(errs...)
}

// List returns up to limit notifications, newest first
func (r *RedisInbox) List(ctx context.Context, userID uint, limit int) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	vals, err := r.rdb.LRange(ctx, key(userID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	out := make([]domain.Notification, 0, len(vals))
	for _, v := range vals {
		var n domain.Notification
		if err := json.Unmarshal([]byte(v), &n); err != nil {
			logger.Warn(ctx).Err(err).Uint("user_id", userID).Msg("Skipping undecodable notification")
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

// MarkRead sets read_at on one notification in place, retrying if the list changes underneath
func (r *RedisInbox) MarkRead(ctx context.Context, userID uint, notificationID string) error {
	k := key(userID)

	txf := func(tx *redis.Tx) error {
		vals, err := tx.LRange(ctx, k, 0, maxLimit-1).Result()
		if err != nil {
			return err
		}

		for i, v := range vals {
			var n domain.Notification
			if json.Unmarshal([]byte(v), &n) != nil || n.ID != notificationID {
				continue
			}
			if n.ReadAt != nil {
				return nil
			}
			now := time.Now().UTC()
			n.ReadAt = &now
			b, err := json.Marshal(n)
			if err != nil {
				return err
			}
			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.LSet(ctx, k, int64(i), b)
				return nil
			})
			return err
		}
		return domain.ErrNotificationNotFound
	}

	for attempt := 0; attempt < 3; attempt++ {
		err := r.rdb.Watch(ctx, txf, k)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("mark read %s: %w", notificationID, redis.TxFailedErr)
}
