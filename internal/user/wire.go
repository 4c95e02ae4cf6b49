package user

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/tair/social-favorites/internal/user/delivery/http"
	"github.com/tair/social-favorites/internal/user/domain"
	"github.com/tair/social-favorites/internal/user/repository"
	"github.com/tair/social-favorites/internal/user/usecase/command"
	"github.com/tair/social-favorites/internal/user/usecase/query"
)

// ProvideUserRepository provides the traced GORM user repository
func ProvideUserRepository(db *gorm.DB) domain.UserRepository {
	return repository.NewTracingUserRepository(repository.NewGormUserRepository(db))
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideUserRepository,
)

var CommandHandlerSet = wire.NewSet(
	command.NewRegisterUserHandler,
	command.NewLoginUserHandler,
)

var QueryHandlerSet = wire.NewSet(
	query.NewGetUserHandler,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
	QueryHandlerSet,
	http.NewUserHandler,
)
