package http

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/social-favorites/internal/favorite/presenter"
	"github.com/tair/social-favorites/internal/favorite/usecase/command"
	"github.com/tair/social-favorites/internal/favorite/usecase/query"
	"github.com/tair/social-favorites/internal/testsupport"
	"github.com/tair/social-favorites/pkg/auth"
	"github.com/tair/social-favorites/pkg/httpx"
)

type favoritesAPI struct {
	router    *mux.Router
	tokens    *auth.TokenManager
	users     *testsupport.Users
	posts     *testsupport.Posts
	favorites *testsupport.Favorites
}

func newFavoritesAPI() *favoritesAPI {
	api := &favoritesAPI{
		router:    mux.NewRouter(),
		tokens:    auth.NewTokenManager("test-secret", time.Hour),
		users:     testsupport.NewUsers(),
		posts:     testsupport.NewPosts(),
		favorites: testsupport.NewFavorites(),
	}
	metrics := command.NewMetrics(prometheus.NewRegistry())
	h := NewFavoriteHandler(
		command.NewAddFavoriteHandler(api.favorites, api.posts, api.users, metrics),
		command.NewRemoveFavoriteHandler(api.favorites, metrics),
		query.NewListFavoritesHandler(api.favorites),
		presenter.NewPresenter(api.posts, api.users),
		httpx.NewAuthenticator(api.tokens),
		httpx.NewMetrics("test", prometheus.NewRegistry()),
	)
	h.RegisterRoutes(api.router)
	return api
}

func (api *favoritesAPI) token(t *testing.T, id uint, name string) string {
	t.Helper()
	token, err := api.tokens.GenerateToken(id, name)
	require.NoError(t, err)
	return token
}

func (api *favoritesAPI) do(method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	api.router.ServeHTTP(rec, req)
	return rec
}

func TestFavoriteRoutesRequireToken(t *testing.T) {
	api := newFavoritesAPI()
	bob := api.users.Add("bob")

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/favorites"},
		{http.MethodPost, fmt.Sprintf("/users/%d/favorites", bob.ID)},
		{http.MethodDelete, fmt.Sprintf("/users/%d/favorites", bob.ID)},
		{http.MethodPost, "/posts/1/favorites"},
	} {
		rec := api.do(tc.method, tc.path, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tc.method, tc.path)
	}
	assert.Empty(t, api.favorites.All())
}

func TestFavoriteUserLifecycle(t *testing.T) {
	api := newFavoritesAPI()
	alice := api.users.Add("alice")
	bob := api.users.Add("bob")
	token := api.token(t, alice.ID, alice.Name)
	path := fmt.Sprintf("/users/%d/favorites", bob.ID)

	rec := api.do(http.MethodPost, path, token)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"data":{"id":2,"name":"bob"}}`, rec.Body.String())

	// repeating the request is not an error
	rec = api.do(http.MethodPost, path, token)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Len(t, api.favorites.All(), 1)

	rec = api.do(http.MethodGet, "/favorites", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"posts":[],"users":[{"id":2,"name":"bob"}]}}`, rec.Body.String())

	rec = api.do(http.MethodDelete, path, token)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(http.MethodDelete, path, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFavoritePost(t *testing.T) {
	api := newFavoritesAPI()
	alice := api.users.Add("alice")
	bob := api.users.Add("bob")
	post := api.posts.Add(bob.ID, "hello")
	token := api.token(t, alice.ID, alice.Name)

	rec := api.do(http.MethodPost, fmt.Sprintf("/posts/%d/favorites", post.ID), token)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"data":{"id":1,"title":"hello","body":"hello body","user":{"id":2,"name":"bob"}}}`, rec.Body.String())

	rec = api.do(http.MethodGet, "/favorites", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"data":{"posts":[{"id":1,"title":"hello","body":"hello body","user":{"id":2,"name":"bob"}}],"users":[]}}`,
		rec.Body.String())

	// bob never favorited the post
	rec = api.do(http.MethodDelete, fmt.Sprintf("/posts/%d/favorites", post.ID), api.token(t, bob.ID, bob.Name))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Len(t, api.favorites.All(), 1)
}

func TestFavoriteErrors(t *testing.T) {
	api := newFavoritesAPI()
	alice := api.users.Add("alice")
	token := api.token(t, alice.ID, alice.Name)

	cases := []struct {
		name   string
		method string
		path   string
		status int
		body   string
	}{
		{"self", http.MethodPost, fmt.Sprintf("/users/%d/favorites", alice.ID), http.StatusBadRequest, `{"error":"user 1: cannot favorite yourself"}`},
		{"missing user", http.MethodPost, "/users/99/favorites", http.StatusNotFound, ""},
		{"missing post", http.MethodPost, "/posts/99/favorites", http.StatusNotFound, ""},
		{"zero id", http.MethodPost, "/posts/0/favorites", http.StatusNotFound, ""},
		{"non numeric id", http.MethodPost, "/posts/abc/favorites", http.StatusNotFound, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := api.do(tc.method, tc.path, token)
			assert.Equal(t, tc.status, rec.Code)
			if tc.body != "" {
				assert.JSONEq(t, tc.body, rec.Body.String())
			}
		})
	}
	assert.Empty(t, api.favorites.All())
}

func TestListFavoritesEmpty(t *testing.T) {
	api := newFavoritesAPI()
	alice := api.users.Add("alice")

	rec := api.do(http.MethodGet, "/favorites", api.token(t, alice.ID, alice.Name))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"posts":[],"users":[]}}`, rec.Body.String())
}
