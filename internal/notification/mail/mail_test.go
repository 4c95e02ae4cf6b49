package mail

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/tair/social-favorites/internal/notification/domain"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []string
	fail map[string]bool
}

func (f *fakeSender) DialAndSend(msgs ...*gomail.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range msgs {
		to := m.GetHeader("To")[0]
		if f.fail[to] {
			return errors.New("550 mailbox unavailable")
		}
		f.sent = append(f.sent, to)
	}
	return nil
}

func TestSMTPNotifierContinuesPastFailures(t *testing.T) {
	sender := &fakeSender{fail: map[string]bool{`"Bob" <bob@example.com>`: true}}
	notifier := NewSMTPNotifierWithSender(sender, "no-reply@example.com")

	recipients := []domain.Recipient{
		{UserID: 2, Name: "Bob", Email: "bob@example.com"},
		{UserID: 3, Name: "Carol", Email: "carol@example.com"},
		{UserID: 4, Name: "NoMail"},
	}
	err := notifier.Notify(context.Background(), recipients, domain.Notification{AuthorName: "Alice", PostTitle: "Hi"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "mail 2")
	assert.Equal(t, []string{`"Carol" <carol@example.com>`}, sender.sent)
}

func TestCircuitBreaker(t *testing.T) {
	now := time.Now()
	cb := NewCircuitBreaker("test", 2, time.Minute)
	cb.now = func() time.Time { return now }

	boom := errors.New("boom")
	calls := 0
	failing := func() error { calls++; return boom }
	ok := func() error { calls++; return nil }

	assert.ErrorIs(t, cb.Call(failing), boom)
	assert.ErrorIs(t, cb.Call(failing), boom)
	assert.Equal(t, StateOpen, cb.State())

	assert.ErrorIs(t, cb.Call(ok), ErrCircuitOpen)
	assert.Equal(t, 2, calls, "open circuit must not call through")

	now = now.Add(2 * time.Minute)
	for i := 0; i < halfOpenSuccesses; i++ {
		require.NoError(t, cb.Call(ok))
	}
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreakerReopensOnHalfOpenFailure(t *testing.T) {
	now := time.Now()
	cb := NewCircuitBreaker("test", 1, time.Second)
	cb.now = func() time.Time { return now }

	_ = cb.Call(func() error { return errors.New("down") })
	require.Equal(t, StateOpen, cb.State())

	now = now.Add(2 * time.Second)
	_ = cb.Call(func() error { return errors.New("still down") })
	assert.Equal(t, StateOpen, cb.State())
}
