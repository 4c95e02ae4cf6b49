package inbox

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/social-favorites/internal/notification/domain"
)

func newInbox(t *testing.T) (*RedisInbox, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewRedisInbox(rdb), mr
}

func TestNotifyStoresPerRecipient(t *testing.T) {
	inbox, mr := newInbox(t)
	ctx := context.Background()

	recipients := []domain.Recipient{{UserID: 2}, {UserID: 3}}
	require.NoError(t, inbox.Notify(ctx, recipients, domain.Notification{ID: "n1", PostID: 10}))
	require.NoError(t, inbox.Notify(ctx, recipients[:1], domain.Notification{ID: "n2", PostID: 11}))

	forTwo, err := inbox.List(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, forTwo, 2)
	assert.Equal(t, "n2", forTwo[0].ID, "newest first")
	assert.Equal(t, "n1", forTwo[1].ID)

	forThree, err := inbox.List(ctx, 3, 10)
	require.NoError(t, err)
	require.Len(t, forThree, 1)

	forFour, err := inbox.List(ctx, 4, 10)
	require.NoError(t, err)
	assert.Empty(t, forFour)

	assert.Greater(t, mr.TTL("notif:2"), 29*24*time.Hour)
}

func TestMarkRead(t *testing.T) {
	inbox, _ := newInbox(t)
	ctx := context.Background()

	recipients := []domain.Recipient{{UserID: 2}}
	require.NoError(t, inbox.Notify(ctx, recipients, domain.Notification{ID: "n1"}))
	require.NoError(t, inbox.Notify(ctx, recipients, domain.Notification{ID: "n2"}))

	require.NoError(t, inbox.MarkRead(ctx, 2, "n1"))

	items, err := inbox.List(ctx, 2, 10)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Nil(t, items[0].ReadAt)
	assert.NotNil(t, items[1].ReadAt)

	assert.ErrorIs(t, inbox.MarkRead(ctx, 2, "missing"), domain.ErrNotificationNotFound)
	assert.ErrorIs(t, inbox.MarkRead(ctx, 9, "n1"), domain.ErrNotificationNotFound)
}
