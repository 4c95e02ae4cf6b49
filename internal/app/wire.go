//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/tair/social-favorites/internal/events"
	"github.com/tair/social-favorites/internal/favorite"
	"github.com/tair/social-favorites/internal/notification"
	notificationdomain "github.com/tair/social-favorites/internal/notification/domain"
	"github.com/tair/social-favorites/internal/post"
	"github.com/tair/social-favorites/internal/user"
	"github.com/tair/social-favorites/pkg/auth"
	"github.com/tair/social-favorites/pkg/httpx"
)

var LookupSet = wire.NewSet(
	ProvidePostAuthorLookup,
	ProvideFavoritePostLookup,
	ProvideFavoriteUserLookup,
)

// InitializeAPI initializes the HTTP handlers of all modules
func InitializeAPI(
	db *gorm.DB,
	tokens *auth.TokenManager,
	publisher events.PostCreatedPublisher,
	reg prometheus.Registerer,
) (*API, error) {
	wire.Build(
		user.AllHandlersSet,
		post.AllHandlersSet,
		favorite.AllHandlersSet,
		LookupSet,
		ProvideHTTPMetrics,
		httpx.NewAuthenticator,
		NewAPI,
	)
	return nil, nil
}

// InitializeDispatcher initializes the new-post notification dispatcher
func InitializeDispatcher(
	db *gorm.DB,
	notifier notificationdomain.Notifier,
	reg prometheus.Registerer,
) (*notification.Dispatcher, error) {
	wire.Build(
		user.RepositorySet,
		favorite.RepositorySet,
		ProvideFollowerSource,
		ProvideRecipientLookup,
		notification.NewMetrics,
		notification.NewDispatcher,
	)
	return nil, nil
}
