package command

import (
	"context"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/social-favorites/internal/favorite/domain"
	"github.com/tair/social-favorites/internal/testsupport"
	"github.com/tair/social-favorites/pkg/apperror"
)

type fixture struct {
	favorites *testsupport.Favorites
	users     *testsupport.Users
	posts     *testsupport.Posts
	metrics   *Metrics
	add       *AddFavoriteHandler
	remove    *RemoveFavoriteHandler
}

func newFixture() *fixture {
	f := &fixture{
		favorites: testsupport.NewFavorites(),
		users:     testsupport.NewUsers(),
		posts:     testsupport.NewPosts(),
		metrics:   NewMetrics(prometheus.NewRegistry()),
	}
	f.add = NewAddFavoriteHandler(f.favorites, f.posts, f.users, f.metrics)
	f.remove = NewRemoveFavoriteHandler(f.favorites, f.metrics)
	return f
}

func TestAddFavoriteIsIdempotent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.users.Add("alice")
	post := f.posts.Add(f.users.Add("bob").ID, "hello")

	cmd := AddFavoriteCommand{ActorID: alice.ID, TargetType: domain.TargetPost, TargetID: post.ID}
	first, err := f.add.Handle(ctx, cmd)
	require.NoError(t, err)
	second, err := f.add.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, f.favorites.All(), 1)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.created.WithLabelValues("post")))
}

func TestAddFavoriteRejections(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.users.Add("alice")

	cases := []struct {
		name string
		cmd  AddFavoriteCommand
		want error
	}{
		{"unauthenticated", AddFavoriteCommand{TargetType: domain.TargetUser, TargetID: alice.ID}, apperror.ErrUnauthenticated},
		{"self", AddFavoriteCommand{ActorID: alice.ID, TargetType: domain.TargetUser, TargetID: alice.ID}, apperror.ErrSelfReference},
		{"missing user", AddFavoriteCommand{ActorID: alice.ID, TargetType: domain.TargetUser, TargetID: 999}, apperror.ErrNotFound},
		{"missing post", AddFavoriteCommand{ActorID: alice.ID, TargetType: domain.TargetPost, TargetID: 999}, apperror.ErrNotFound},
		{"unknown kind", AddFavoriteCommand{ActorID: alice.ID, TargetType: "comment", TargetID: 1}, apperror.ErrValidation},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.add.Handle(ctx, tc.cmd)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.Empty(t, f.favorites.All(), "rejected commands must not store anything")
}

func TestConcurrentAddConvergesOnOneRow(t *testing.T) {
	f := newFixture()
	alice := f.users.Add("alice")
	bob := f.users.Add("bob")

	var wg sync.WaitGroup
	ids := make([]uint, 16)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			fav, err := f.add.Handle(context.Background(), AddFavoriteCommand{
				ActorID: alice.ID, TargetType: domain.TargetUser, TargetID: bob.ID,
			})
			if assert.NoError(t, err) {
				ids[i] = fav.ID
			}
		}(i)
	}
	wg.Wait()

	require.Len(t, f.favorites.All(), 1)
	for _, id := range ids {
		assert.Equal(t, f.favorites.All()[0].ID, id)
	}
}

func TestRemoveFavorite(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.users.Add("alice")
	bob := f.users.Add("bob")
	post := f.posts.Add(bob.ID, "hello")

	_, err := f.add.Handle(ctx, AddFavoriteCommand{ActorID: alice.ID, TargetType: domain.TargetPost, TargetID: post.ID})
	require.NoError(t, err)

	// bob cannot remove alice's favorite, and learns nothing about it
	err = f.remove.Handle(ctx, RemoveFavoriteCommand{ActorID: bob.ID, TargetType: domain.TargetPost, TargetID: post.ID})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Len(t, f.favorites.All(), 1)

	cmd := RemoveFavoriteCommand{ActorID: alice.ID, TargetType: domain.TargetPost, TargetID: post.ID}
	require.NoError(t, f.remove.Handle(ctx, cmd))
	assert.Empty(t, f.favorites.All())

	// second removal reports not found instead of failing
	assert.ErrorIs(t, f.remove.Handle(ctx, cmd), apperror.ErrNotFound)

	// re-adding after removal is allowed
	_, err = f.add.Handle(ctx, AddFavoriteCommand{ActorID: alice.ID, TargetType: domain.TargetPost, TargetID: post.ID})
	require.NoError(t, err)
	assert.Len(t, f.favorites.All(), 1)
}

type racingStore struct {
	*testsupport.Favorites
}

// Delete behaves as if another request removed the row first
func (racingStore) Delete(context.Context, uint) (int64, error) { return 0, nil }

func TestRemoveFavoriteLostRace(t *testing.T) {
	f := newFixture()
	alice := f.users.Add("alice")
	bob := f.users.Add("bob")
	f.favorites.Insert(domain.Favorite{UserID: alice.ID, FavoritableType: domain.TargetUser, FavoritableID: bob.ID})

	remove := NewRemoveFavoriteHandler(racingStore{f.favorites}, f.metrics)
	err := remove.Handle(context.Background(), RemoveFavoriteCommand{ActorID: alice.ID, TargetType: domain.TargetUser, TargetID: bob.ID})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
