package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/social-favorites/internal/events"
	favoritedomain "github.com/tair/social-favorites/internal/favorite/domain"
	"github.com/tair/social-favorites/internal/notification/domain"
	"github.com/tair/social-favorites/internal/testsupport"
)

type dispatchFixture struct {
	users     *testsupport.Users
	favorites *testsupport.Favorites
	notifier  *testsupport.Notifier
	metrics   *Metrics
	d         *Dispatcher
}

func newDispatchFixture() *dispatchFixture {
	f := &dispatchFixture{
		users:     testsupport.NewUsers(),
		favorites: testsupport.NewFavorites(),
		notifier:  &testsupport.Notifier{},
		metrics:   NewMetrics(prometheus.NewRegistry()),
	}
	f.d = NewDispatcher(f.favorites, f.users, f.notifier, f.metrics)
	return f
}

func (f *dispatchFixture) follow(follower, author uint) {
	f.favorites.Insert(favoritedomain.Favorite{UserID: follower, FavoritableType: favoritedomain.TargetUser, FavoritableID: author})
}

func TestDispatchNotifiesFollowersOfAuthor(t *testing.T) {
	f := newDispatchFixture()
	a := f.users.Add("a")
	b := f.users.Add("b")
	c := f.users.Add("c")
	d := f.users.Add("d")
	f.follow(b.ID, a.ID)
	f.follow(c.ID, a.ID)
	// d favorites someone else and a post of a, neither of which counts
	f.follow(d.ID, b.ID)
	f.favorites.Insert(favoritedomain.Favorite{UserID: d.ID, FavoritableType: favoritedomain.TargetPost, FavoritableID: a.ID})

	n, err := f.d.Dispatch(context.Background(), events.PostCreated{PostID: 7, Title: "news", AuthorID: a.ID, AuthorName: "a"})
	require.NoError(t, err)

	assert.Equal(t, 2, n)
	assert.Equal(t, [][]uint{{b.ID, c.ID}}, f.notifier.RecipientIDs())
	assert.Equal(t, "b@example.com", f.notifier.Calls[0][0].Email)
	assert.Equal(t, 2.0, testutil.ToFloat64(f.metrics.recipients))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.dispatches.WithLabelValues("sent")))
}

func TestDispatchWithoutFollowersSkipsNotifier(t *testing.T) {
	f := newDispatchFixture()
	a := f.users.Add("a")

	n, err := f.d.Dispatch(context.Background(), events.PostCreated{PostID: 1, AuthorID: a.ID})
	require.NoError(t, err)

	assert.Zero(t, n)
	assert.Empty(t, f.notifier.Calls)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.dispatches.WithLabelValues("no_followers")))
}

func TestDispatchDeduplicatesRecipients(t *testing.T) {
	f := newDispatchFixture()
	a := f.users.Add("a")
	b := f.users.Add("b")
	f.follow(b.ID, a.ID)
	f.follow(b.ID, a.ID)

	n, err := f.d.Dispatch(context.Background(), events.PostCreated{PostID: 1, AuthorID: a.ID})
	require.NoError(t, err)

	assert.Equal(t, 1, n)
	assert.Equal(t, [][]uint{{b.ID}}, f.notifier.RecipientIDs())
}

func TestDispatchSkipsDeletedFollowers(t *testing.T) {
	f := newDispatchFixture()
	a := f.users.Add("a")
	b := f.users.Add("b")
	f.follow(b.ID, a.ID)
	f.users.Delete(b.ID)

	n, err := f.d.Dispatch(context.Background(), events.PostCreated{PostID: 1, AuthorID: a.ID})
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, f.notifier.Calls)
}

func TestDispatchDeliveryFailureIsNotFatal(t *testing.T) {
	f := newDispatchFixture()
	f.notifier.Err = errors.New("smtp: 421 service not available")
	a := f.users.Add("a")
	b := f.users.Add("b")
	f.follow(b.ID, a.ID)

	err := f.d.Handle(context.Background(), events.PostCreated{PostID: 1, AuthorID: a.ID})
	require.NoError(t, err)
	assert.Len(t, f.notifier.Calls, 1)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.dispatches.WithLabelValues("partial")))
}

type brokenFollowers struct{}

func (brokenFollowers) FindFollowers(context.Context, favoritedomain.TargetType, uint) ([]favoritedomain.Favorite, error) {
	return nil, errors.New("database is closed")
}

func TestDispatchLookupFailureIsReturned(t *testing.T) {
	f := newDispatchFixture()
	d := NewDispatcher(brokenFollowers{}, f.users, f.notifier, f.metrics)

	_, err := d.Dispatch(context.Background(), events.PostCreated{PostID: 1, AuthorID: 1})
	assert.ErrorContains(t, err, "database is closed")
	assert.Empty(t, f.notifier.Calls)
}

func TestMultiNotifierJoinsErrors(t *testing.T) {
	ok := &testsupport.Notifier{}
	failing := &testsupport.Notifier{Err: errors.New("inbox unavailable")}
	recipients := []domain.Recipient{{UserID: 2, Name: "b"}}

	err := MultiNotifier{failing, ok}.Notify(context.Background(), recipients, domain.Notification{Type: domain.TypeNewPost})

	assert.ErrorContains(t, err, "inbox unavailable")
	assert.Len(t, ok.Calls, 1, "later notifiers still run after a failure")
	assert.Len(t, failing.Calls, 1)
	assert.NoError(t, MultiNotifier{ok}.Notify(context.Background(), recipients, domain.Notification{}))
}
