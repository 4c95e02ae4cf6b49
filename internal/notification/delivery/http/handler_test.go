package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/social-favorites/internal/notification/domain"
	"github.com/tair/social-favorites/pkg/auth"
)

type memoryInbox struct {
	items map[uint][]domain.Notification
}

func (m *memoryInbox) List(_ context.Context, userID uint, limit int) ([]domain.Notification, error) {
	items := m.items[userID]
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (m *memoryInbox) MarkRead(_ context.Context, userID uint, id string) error {
	for i := range m.items[userID] {
		if m.items[userID][i].ID == id {
			now := time.Now()
			m.items[userID][i].ReadAt = &now
			return nil
		}
	}
	return domain.ErrNotificationNotFound
}

type testApp struct {
	tokens *auth.TokenManager
	inbox  *memoryInbox
	cfg    AppConfig
}

func newTestApp(t *testing.T, limiter *RateLimiter) *testApp {
	t.Helper()
	tokens := auth.NewTokenManager("secret", time.Hour)
	inbox := &memoryInbox{items: map[uint][]domain.Notification{
		2: {{ID: "n2", PostID: 11}, {ID: "n1", PostID: 10}},
	}}
	return &testApp{
		tokens: tokens,
		inbox:  inbox,
		cfg: AppConfig{
			Service:     "notifier",
			Handler:     NewNotificationHandler(inbox),
			Tokens:      tokens,
			RateLimiter: limiter,
			HealthCheck: func(context.Context) error { return nil },
		},
	}
}

func (a *testApp) do(t *testing.T, method, target string, userID uint) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	if userID != 0 {
		token, err := a.tokens.GenerateToken(userID, "user")
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := NewApp(a.cfg).Test(req)
	require.NoError(t, err)
	return resp
}

func TestListNotifications(t *testing.T) {
	app := newTestApp(t, nil)

	resp := app.do(t, http.MethodGet, "/notifications?limit=1", 2)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data []domain.Notification `json:"data"`
	}
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "n2", body.Data[0].ID)
}

func TestNotificationsRequireToken(t *testing.T) {
	app := newTestApp(t, nil)

	resp := app.do(t, http.MethodGet, "/notifications", 0)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMarkRead(t *testing.T) {
	app := newTestApp(t, nil)

	resp := app.do(t, http.MethodPost, "/notifications/n1/read", 2)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.NotNil(t, app.inbox.items[2][1].ReadAt)

	resp = app.do(t, http.MethodPost, "/notifications/other/read", 2)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// another user's notification is invisible
	resp = app.do(t, http.MethodPost, "/notifications/n2/read", 3)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	app := newTestApp(t, nil)
	resp := app.do(t, http.MethodGet, "/health", 0)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	app.cfg.HealthCheck = func(context.Context) error { return errors.New("redis down") }
	resp = app.do(t, http.MethodGet, "/health", 0)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestRateLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	app := newTestApp(t, NewRateLimiter(rdb, 2, time.Minute))

	assert.Equal(t, http.StatusOK, app.do(t, http.MethodGet, "/notifications", 2).StatusCode)
	assert.Equal(t, http.StatusOK, app.do(t, http.MethodGet, "/notifications", 2).StatusCode)

	resp := app.do(t, http.MethodGet, "/notifications", 2)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "0", resp.Header.Get("X-RateLimit-Remaining"))

	// limits are per user
	assert.Equal(t, http.StatusOK, app.do(t, http.MethodGet, "/notifications", 3).StatusCode)
}
