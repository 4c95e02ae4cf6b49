package domain

import (
	"context"
	"time"
)

// User is an account that can author posts and be favorited
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	Email     string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

// UserRepository defines the contract for user data access
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByIDs(ctx context.Context, ids []uint) ([]User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	// UpsertByEmail inserts the user or updates name and password of the row with the same email.
	UpsertByEmail(ctx context.Context, user *User) error
	Count(ctx context.Context) (int64, error)
}
