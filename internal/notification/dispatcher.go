// Package notification fans new-post events out to the users who favorited the author.
package notification

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/social-favorites/internal/events"
	favoritedomain "github.com/tair/social-favorites/internal/favorite/domain"
	"github.com/tair/social-favorites/internal/notification/domain"
	userdomain "github.com/tair/social-favorites/internal/user/domain"
	"github.com/tair/social-favorites/pkg/logger"
)

// FollowerSource lists favorites pointing at a target
type FollowerSource interface {
	FindFollowers(ctx context.Context, targetType favoritedomain.TargetType, targetID uint) ([]favoritedomain.Favorite, error)
}

// UserLookup resolves follower accounts
type UserLookup interface {
	FindByIDs(ctx context.Context, ids []uint) ([]userdomain.User, error)
}

// Metrics counts dispatches and delivered recipients
type Metrics struct {
	dispatches *prometheus.CounterVec
	recipients prometheus.Counter
}

// NewMetrics registers the dispatcher counters
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		dispatches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "notifier",
				Name:      "dispatch_total",
				Help:      "Number of post.created dispatches by outcome",
			},
			[]string{"outcome"},
		),
		recipients: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "notifier",
				Name:      "recipients_total",
				Help:      "Number of recipients a notification was sent to",
			},
		),
	}
	reg.MustRegister(m.dispatches, m.recipients)
	return m
}

// Dispatcher notifies the followers of a post's author
type Dispatcher struct {
	followers FollowerSource
	users     UserLookup
	notifier  domain.Notifier
	metrics   *Metrics
}

// NewDispatcher creates a new dispatcher
func NewDispatcher(followers FollowerSource, users UserLookup, notifier domain.Notifier, metrics *Metrics) *Dispatcher {
	return &Dispatcher{
		followers: followers,
		users:     users,
		notifier:  notifier,
		metrics:   metrics,
	}
}

// Dispatch sends one notification to every distinct user who favorited the author
// and returns the number of recipients.
func (d *Dispatcher) Dispatch(ctx context.Context, event events.PostCreated) (int, error) {
	favorites, err := d.followers.FindFollowers(ctx, favoritedomain.TargetUser, event.AuthorID)
	if err != nil {
		d.metrics.dispatches.WithLabelValues("error").Inc()
		return 0, fmt.Errorf("failed to find followers of user %d: %w", event.AuthorID, err)
	}
	if len(favorites) == 0 {
		d.metrics.dispatches.WithLabelValues("no_followers").Inc()
		logger.Debug(ctx).
			Uint("post_id", event.PostID).
			Uint("author_id", event.AuthorID).
			Msg("No followers to notify")
		return 0, nil
	}

	recipients, err := d.recipients(ctx, favorites)
	if err != nil {
		d.metrics.dispatches.WithLabelValues("error").Inc()
		return 0, err
	}
	if len(recipients) == 0 {
		d.metrics.dispatches.WithLabelValues("no_followers").Inc()
		return 0, nil
	}

	notifyErr := d.notifier.Notify(ctx, recipients, domain.NewPostNotification(event))

	logger.Info(ctx).
		Uint("post_id", event.PostID).
		Uint("author_id", event.AuthorID).
		Int("recipient_count", len(recipients)).
		AnErr("delivery_error", notifyErr).
		Msg("Sending new post notifications")

	d.metrics.recipients.Add(float64(len(recipients)))
	if notifyErr != nil {
		d.metrics.dispatches.WithLabelValues("partial").Inc()
	} else {
		d.metrics.dispatches.WithLabelValues("sent").Inc()
	}

	return len(recipients), nil
}

// recipients maps favorites to their owners, one entry per user, in favorite order
func (d *Dispatcher) recipients(ctx context.Context, favorites []favoritedomain.Favorite) ([]domain.Recipient, error) {
	ids := make([]uint, 0, len(favorites))
	seen := make(map[uint]struct{}, len(favorites))
	for _, f := range favorites {
		if _, ok := seen[f.UserID]; ok {
			continue
		}
		seen[f.UserID] = struct{}{}
		ids = append(ids, f.UserID)
	}

	users, err := d.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load followers: %w", err)
	}
	byID := make(map[uint]userdomain.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	recipients := make([]domain.Recipient, 0, len(ids))
	for _, id := range ids {
		u, ok := byID[id]
		if !ok {
			continue
		}
		recipients = append(recipients, domain.Recipient{UserID: u.ID, Name: u.Name, Email: u.Email})
	}
	return recipients, nil
}

// Handle adapts Dispatch to the event handler signatures of the queue and the Kafka consumer
func (d *Dispatcher) Handle(ctx context.Context, event events.PostCreated) error {
	_, err := d.Dispatch(ctx, event)
	return err
}
