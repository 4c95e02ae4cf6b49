package domain

import (
	"context"
	"time"

	userdomain "github.com/tair/social-favorites/internal/user/domain"
)

// Post is authored by a user and can be favorited
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Title     string    `json:"title" gorm:"size:255;not null"`
	Body      string    `json:"body" gorm:"type:text;not null"`
	ImageURL  *string   `json:"image_url" gorm:"size:2048"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (Post) TableName() string {
	return "posts"
}

// IsOwnedBy reports whether userID authored the post
func (p *Post) IsOwnedBy(userID uint) bool {
	return p.UserID == userID
}

// PostRepository defines the contract for post data access
type PostRepository interface {
	Create(ctx context.Context, post *Post) error
	FindByID(ctx context.Context, id uint) (*Post, error)
	FindByIDs(ctx context.Context, ids []uint) ([]Post, error)
	List(ctx context.Context, limit, offset int) ([]Post, error)
	Update(ctx context.Context, post *Post) error
	Delete(ctx context.Context, id uint) error
}

// UserLookup resolves post authors
type UserLookup interface {
	FindByIDs(ctx context.Context, ids []uint) ([]userdomain.User, error)
}

// PostWithAuthor is a post rendered together with its author
type PostWithAuthor struct {
	ID       uint    `json:"id"`
	Title    string  `json:"title"`
	Body     string  `json:"body"`
	ImageURL *string `json:"image_url"`
	User     *Author `json:"user"`
}

// Author is the public projection of a post's owner
type Author struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// WithAuthor pairs the post with its author; a nil author renders as null
func (p *Post) WithAuthor(author *Author) PostWithAuthor {
	return PostWithAuthor{
		ID:       p.ID,
		Title:    p.Title,
		Body:     p.Body,
		ImageURL: p.ImageURL,
		User:     author,
	}
}
