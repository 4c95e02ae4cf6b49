// Package presenter renders favorites into the shape of the favorited entity.
package presenter

import (
	"context"

	"github.com/tair/social-favorites/internal/favorite/domain"
	postdomain "github.com/tair/social-favorites/internal/post/domain"
	userdomain "github.com/tair/social-favorites/internal/user/domain"
	"github.com/tair/social-favorites/pkg/logger"
)

// UserView is a favorited user or a post author
type UserView struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// PostView is a favorited post; User is null when the author cannot be resolved
type PostView struct {
	ID    uint      `json:"id"`
	Title string    `json:"title"`
	Body  string    `json:"body"`
	User  *UserView `json:"user"`
}

// ListView is the rendered form of a partitioned favorites list
type ListView struct {
	Posts []PostView `json:"posts"`
	Users []UserView `json:"users"`
}

// Presenter renders favorites. Targets that no longer exist render with empty fields
// and lookup failures are logged, never returned.
type Presenter struct {
	posts domain.PostLookup
	users domain.UserLookup
}

// NewPresenter creates a new favorite presenter
func NewPresenter(posts domain.PostLookup, users domain.UserLookup) *Presenter {
	return &Presenter{posts: posts, users: users}
}

// Render projects a single favorite: UserView, PostView or an empty object for unknown kinds
func (p *Presenter) Render(ctx context.Context, f domain.Favorite) interface{} {
	switch f.FavoritableType {
	case domain.TargetUser:
		return p.renderUsers(ctx, []uint{f.FavoritableID})[0]
	case domain.TargetPost:
		return p.renderPosts(ctx, []uint{f.FavoritableID})[0]
	default:
		return struct{}{}
	}
}

// RenderPartitioned renders both partitions with one lookup per entity kind
func (p *Presenter) RenderPartitioned(ctx context.Context, favorites domain.Partitioned) ListView {
	return ListView{
		Posts: p.renderPosts(ctx, targetIDs(favorites.Posts)),
		Users: p.renderUsers(ctx, targetIDs(favorites.Users)),
	}
}

func targetIDs(favorites []domain.Favorite) []uint {
	ids := make([]uint, 0, len(favorites))
	for _, f := range favorites {
		ids = append(ids, f.FavoritableID)
	}
	return ids
}

func (p *Presenter) lookupUsers(ctx context.Context, ids []uint) map[uint]userdomain.User {
	out := make(map[uint]userdomain.User, len(ids))
	if len(ids) == 0 {
		return out
	}

	users, err := p.users.FindByIDs(ctx, ids)
	if err != nil {
		logger.Warn(ctx).Err(err).Int("ids", len(ids)).Msg("Failed to resolve favorited users")
		return out
	}
	for _, u := range users {
		out[u.ID] = u
	}
	return out
}

func (p *Presenter) renderUsers(ctx context.Context, ids []uint) []UserView {
	found := p.lookupUsers(ctx, ids)

	views := make([]UserView, 0, len(ids))
	for _, id := range ids {
		views = append(views, UserView{ID: id, Name: found[id].Name})
	}
	return views
}

func (p *Presenter) renderPosts(ctx context.Context, ids []uint) []PostView {
	views := make([]PostView, 0, len(ids))
	if len(ids) == 0 {
		return views
	}

	found := make(map[uint]postdomain.Post, len(ids))
	posts, err := p.posts.FindByIDs(ctx, ids)
	if err != nil {
		logger.Warn(ctx).Err(err).Int("ids", len(ids)).Msg("Failed to resolve favorited posts")
	}

	authorIDs := make([]uint, 0, len(posts))
	for _, post := range posts {
		found[post.ID] = post
		authorIDs = append(authorIDs, post.UserID)
	}
	authors := p.lookupUsers(ctx, authorIDs)

	for _, id := range ids {
		view := PostView{ID: id}
		if post, ok := found[id]; ok {
			view.Title = post.Title
			view.Body = post.Body
			if author, ok := authors[post.UserID]; ok {
				view.User = &UserView{ID: author.ID, Name: author.Name}
			}
		}
		views = append(views, view)
	}
	return views
}
