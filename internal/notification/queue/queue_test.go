package queue

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/social-favorites/internal/events"
)

func TestCloseDrainsQueuedEvents(t *testing.T) {
	var handled atomic.Int32
	q := New(16, 3, func(ctx context.Context, event events.PostCreated) error {
		handled.Add(1)
		return nil
	})

	for i := 1; i <= 10; i++ {
		require.NoError(t, q.PublishPostCreated(context.Background(), events.PostCreated{PostID: uint(i)}))
	}
	q.Close()

	assert.Equal(t, int32(10), handled.Load())
	assert.ErrorIs(t, q.PublishPostCreated(context.Background(), events.PostCreated{}), ErrQueueClosed)
}

func TestFullQueueDropsEvent(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var once sync.Once

	q := New(1, 1, func(ctx context.Context, event events.PostCreated) error {
		once.Do(func() { close(started) })
		<-release
		return nil
	})

	require.NoError(t, q.PublishPostCreated(context.Background(), events.PostCreated{PostID: 1}))
	<-started // worker holds event 1
	require.NoError(t, q.PublishPostCreated(context.Background(), events.PostCreated{PostID: 2}))
	assert.ErrorIs(t, q.PublishPostCreated(context.Background(), events.PostCreated{PostID: 3}), ErrQueueFull)

	close(release)
	q.Close()
}

func TestHandlerErrorsDoNotStopWorkers(t *testing.T) {
	var handled atomic.Int32
	q := New(4, 1, func(ctx context.Context, event events.PostCreated) error {
		handled.Add(1)
		return errors.New("smtp down")
	})

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, q.PublishPostCreated(ctx, events.PostCreated{PostID: 1}))
	cancel()
	require.NoError(t, q.PublishPostCreated(context.Background(), events.PostCreated{PostID: 2}))
	q.Close()

	assert.Equal(t, int32(2), handled.Load())
}
