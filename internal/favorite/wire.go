package favorite

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/tair/social-favorites/internal/favorite/delivery/http"
	"github.com/tair/social-favorites/internal/favorite/domain"
	"github.com/tair/social-favorites/internal/favorite/presenter"
	"github.com/tair/social-favorites/internal/favorite/repository"
	"github.com/tair/social-favorites/internal/favorite/usecase/command"
	"github.com/tair/social-favorites/internal/favorite/usecase/query"
)

// ProvideFavoriteRepository provides the traced GORM favorite repository
func ProvideFavoriteRepository(db *gorm.DB) domain.FavoriteRepository {
	return repository.NewTracingFavoriteRepository(repository.NewGormFavoriteRepository(db))
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideFavoriteRepository,
)

var CommandHandlerSet = wire.NewSet(
	command.NewMetrics,
	command.NewAddFavoriteHandler,
	command.NewRemoveFavoriteHandler,
)

var QueryHandlerSet = wire.NewSet(
	query.NewListFavoritesHandler,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
	QueryHandlerSet,
	presenter.NewPresenter,
	http.NewFavoriteHandler,
)
