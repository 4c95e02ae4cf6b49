// Package queue runs post.created handling on a bounded pool of in-process workers.
package queue

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/tair/social-favorites/internal/events"
	"github.com/tair/social-favorites/pkg/logger"
)

var (
	// ErrQueueFull is returned when the buffer has no room; the event is dropped
	ErrQueueFull = errors.New("notification queue is full")
	// ErrQueueClosed is returned after Close
	ErrQueueClosed = errors.New("notification queue is closed")
)

// Handler processes one event
type Handler func(ctx context.Context, event events.PostCreated) error

type job struct {
	ctx   context.Context
	event events.PostCreated
}

// Queue is a bounded channel drained by a fixed number of workers.
// It implements events.PostCreatedPublisher so the API can run without Kafka.
type Queue struct {
	jobs    chan job
	handler Handler
	timeout time.Duration

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// New starts workers goroutines reading from a buffer of size entries
func New(size, workers int, handler Handler) *Queue {
	if size <= 0 {
		size = 1
	}
	if workers <= 0 {
		workers = 1
	}

	q := &Queue{
		jobs:    make(chan job, size),
		handler: handler,
		timeout: 30 * time.Second,
	}
	for i := 0; i < workers; i++ {
		q.wg.Add(1)
		go q.worker(i)
	}
	return q
}

// PublishPostCreated enqueues without blocking
func (q *Queue) PublishPostCreated(ctx context.Context, event events.PostCreated) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrQueueClosed
	}

	// the request context ends with the response; keep its values (trace ids) only
	select {
	case q.jobs <- job{ctx: context.WithoutCancel(ctx), event: event}:
		return nil
	default:
		logger.Warn(ctx).
			Uint("post_id", event.PostID).
			Int("capacity", cap(q.jobs)).
			Msg("Notification queue full, dropping event")
		return ErrQueueFull
	}
}

func (q *Queue) worker(id int) {
	defer q.wg.Done()

	for j := range q.jobs {
		ctx, cancel := context.WithTimeout(j.ctx, q.timeout)
		if err := q.handler(ctx, j.event); err != nil {
			logger.Error(ctx).
				Err(err).
				Int("worker", id).
				Uint("post_id", j.event.PostID).
				Msg("Failed to process post.created event")
		}
		cancel()
	}
}

// Close stops accepting events and waits until queued events are processed
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.jobs)
	q.mu.Unlock()

	q.wg.Wait()
}
