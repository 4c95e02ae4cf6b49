package domain

import (
	"context"
	"fmt"
	"time"

	postdomain "github.com/tair/social-favorites/internal/post/domain"
	userdomain "github.com/tair/social-favorites/internal/user/domain"
	"github.com/tair/social-favorites/pkg/apperror"
)

// TargetType discriminates what a favorite points at
type TargetType string

const (
	TargetPost TargetType = "post"
	TargetUser TargetType = "user"
)

// ParseTargetType accepts only the known target kinds
func ParseTargetType(s string) (TargetType, error) {
	switch t := TargetType(s); t {
	case TargetPost, TargetUser:
		return t, nil
	default:
		return "", fmt.Errorf("unknown favorite target %q: %w", s, apperror.ErrValidation)
	}
}

// Favorite marks that UserID favorited the entity (FavoritableType, FavoritableID)
type Favorite struct {
	ID              uint       `json:"id" gorm:"primaryKey"`
	UserID          uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_favorites_owner_target,priority:1"`
	FavoritableID   uint       `json:"favoritable_id" gorm:"not null;uniqueIndex:idx_favorites_owner_target,priority:2;index:idx_favorites_target,priority:1"`
	FavoritableType TargetType `json:"favoritable_type" gorm:"size:16;not null;uniqueIndex:idx_favorites_owner_target,priority:3;index:idx_favorites_target,priority:2"`
	CreatedAt       time.Time  `json:"created_at"`
}

// TableName specifies the table name
func (Favorite) TableName() string {
	return "favorites"
}

// IsSelfReference reports whether a user favorites their own account
func (f *Favorite) IsSelfReference() bool {
	return f.FavoritableType == TargetUser && f.FavoritableID == f.UserID
}

// Partitioned groups a user's favorites by target kind
type Partitioned struct {
	Posts []Favorite `json:"posts"`
	Users []Favorite `json:"users"`
}

// Partition splits favorites by target kind, preserving order; both slices are non-nil
func Partition(favorites []Favorite) Partitioned {
	out := Partitioned{Posts: []Favorite{}, Users: []Favorite{}}
	for _, f := range favorites {
		switch f.FavoritableType {
		case TargetPost:
			out.Posts = append(out.Posts, f)
		case TargetUser:
			out.Users = append(out.Users, f)
		}
	}
	return out
}

// FavoriteRepository defines the contract for favorite data access
type FavoriteRepository interface {
	// FirstOrCreate stores f unless the same (user, target) row exists; f is filled with the stored row.
	FirstOrCreate(ctx context.Context, f *Favorite) (created bool, err error)
	FindOwned(ctx context.Context, userID uint, targetType TargetType, targetID uint) (*Favorite, error)
	Delete(ctx context.Context, id uint) (int64, error)
	FindByUser(ctx context.Context, userID uint) ([]Favorite, error)
	FindFollowers(ctx context.Context, targetType TargetType, targetID uint) ([]Favorite, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
}

// PostLookup resolves favorited posts
type PostLookup interface {
	FindByID(ctx context.Context, id uint) (*postdomain.Post, error)
	FindByIDs(ctx context.Context, ids []uint) ([]postdomain.Post, error)
}

// UserLookup resolves favorited users and post authors
type UserLookup interface {
	FindByID(ctx context.Context, id uint) (*userdomain.User, error)
	FindByIDs(ctx context.Context, ids []uint) ([]userdomain.User, error)
}
