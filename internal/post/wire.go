package post

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/tair/social-favorites/internal/post/delivery/http"
	"github.com/tair/social-favorites/internal/post/domain"
	"github.com/tair/social-favorites/internal/post/repository"
	"github.com/tair/social-favorites/internal/post/usecase/command"
	"github.com/tair/social-favorites/internal/post/usecase/query"
)

// ProvidePostRepository provides the GORM post repository
func ProvidePostRepository(db *gorm.DB) domain.PostRepository {
	return repository.NewPostRepository(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvidePostRepository,
)

var CommandHandlerSet = wire.NewSet(
	command.NewCreatePostHandler,
	command.NewUpdatePostHandler,
	command.NewDeletePostHandler,
)

var QueryHandlerSet = wire.NewSet(
	query.NewGetPostHandler,
	query.NewListPostsHandler,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
	QueryHandlerSet,
	http.NewPostHandler,
)
