// Package app assembles the favorites API and the notification dispatcher from the per-module wire sets.
package app

import (
	"context"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	favoritedomain "github.com/tair/social-favorites/internal/favorite/domain"
	favoritehttp "github.com/tair/social-favorites/internal/favorite/delivery/http"
	"github.com/tair/social-favorites/internal/notification"
	postdomain "github.com/tair/social-favorites/internal/post/domain"
	posthttp "github.com/tair/social-favorites/internal/post/delivery/http"
	userdomain "github.com/tair/social-favorites/internal/user/domain"
	userhttp "github.com/tair/social-favorites/internal/user/delivery/http"
	"github.com/tair/social-favorites/pkg/httpx"
)

// MetricsNamespace prefixes the request collectors of the API
const MetricsNamespace = "favorites_api"

// API holds the HTTP handlers of every module
type API struct {
	users     *userhttp.UserHandler
	posts     *posthttp.PostHandler
	favorites *favoritehttp.FavoriteHandler
}

func NewAPI(users *userhttp.UserHandler, posts *posthttp.PostHandler, favorites *favoritehttp.FavoriteHandler) *API {
	return &API{users: users, posts: posts, favorites: favorites}
}

// RegisterRoutes mounts all module routes on router
func (a *API) RegisterRoutes(router *mux.Router) {
	a.users.RegisterRoutes(router)
	a.posts.RegisterRoutes(router)
	a.favorites.RegisterRoutes(router)
}

// Migrate creates or updates the tables of every module
func Migrate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(
		&userdomain.User{},
		&postdomain.Post{},
		&favoritedomain.Favorite{},
	)
}

func ProvideHTTPMetrics(reg prometheus.Registerer) *httpx.Metrics {
	return httpx.NewMetrics(MetricsNamespace, reg)
}

func ProvidePostAuthorLookup(users userdomain.UserRepository) postdomain.UserLookup {
	return users
}

func ProvideFavoritePostLookup(posts postdomain.PostRepository) favoritedomain.PostLookup {
	return posts
}

func ProvideFavoriteUserLookup(users userdomain.UserRepository) favoritedomain.UserLookup {
	return users
}

func ProvideFollowerSource(favorites favoritedomain.FavoriteRepository) notification.FollowerSource {
	return favorites
}

func ProvideRecipientLookup(users userdomain.UserRepository) notification.UserLookup {
	return users
}
