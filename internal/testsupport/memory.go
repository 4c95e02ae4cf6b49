// Package testsupport provides in-memory implementations of the repository interfaces for tests.
package testsupport

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/tair/social-favorites/internal/events"
	favoritedomain "github.com/tair/social-favorites/internal/favorite/domain"
	notificationdomain "github.com/tair/social-favorites/internal/notification/domain"
	postdomain "github.com/tair/social-favorites/internal/post/domain"
	userdomain "github.com/tair/social-favorites/internal/user/domain"
	"github.com/tair/social-favorites/pkg/apperror"
)

// Users is an in-memory userdomain.UserRepository
type Users struct {
	mu     sync.Mutex
	nextID uint
	rows   map[uint]userdomain.User
}

func NewUsers() *Users {
	return &Users{rows: map[uint]userdomain.User{}}
}

// Add stores a user with the given name and a derived e-mail
func (s *Users) Add(name string) userdomain.User {
	u := userdomain.User{Name: name, Email: fmt.Sprintf("%s@example.com", name)}
	_ = s.Create(context.Background(), &u)
	return u
}

func (s *Users) Create(_ context.Context, user *userdomain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.rows {
		if u.Email == user.Email {
			return fmt.Errorf("email already registered: %w", apperror.ErrValidation)
		}
	}
	s.nextID++
	user.ID = s.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	s.rows[user.ID] = *user
	return nil
}

func (s *Users) FindByID(_ context.Context, id uint) (*userdomain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.rows[id]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, apperror.ErrNotFound)
	}
	return &u, nil
}

func (s *Users) FindByIDs(_ context.Context, ids []uint) ([]userdomain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []userdomain.User{}
	seen := map[uint]bool{}
	for _, id := range ids {
		if u, ok := s.rows[id]; ok && !seen[id] {
			seen[id] = true
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Users) FindByEmail(_ context.Context, email string) (*userdomain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.rows {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user %q: %w", email, apperror.ErrNotFound)
}

func (s *Users) UpsertByEmail(_ context.Context, user *userdomain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, u := range s.rows {
		if u.Email == user.Email {
			u.Name = user.Name
			u.Password = user.Password
			u.UpdatedAt = time.Now()
			s.rows[id] = u
			*user = u
			return nil
		}
	}
	s.nextID++
	user.ID = s.nextID
	s.rows[user.ID] = *user
	return nil
}

func (s *Users) Count(context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.rows)), nil
}

// Delete removes a user row, leaving dangling references behind
func (s *Users) Delete(id uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rows, id)
}

// Posts is an in-memory postdomain.PostRepository
type Posts struct {
	mu     sync.Mutex
	nextID uint
	rows   map[uint]postdomain.Post
}

func NewPosts() *Posts {
	return &Posts{rows: map[uint]postdomain.Post{}}
}

// Add stores a post authored by userID
func (s *Posts) Add(userID uint, title string) postdomain.Post {
	p := postdomain.Post{UserID: userID, Title: title, Body: title + " body"}
	_ = s.Create(context.Background(), &p)
	return p
}

func (s *Posts) Create(_ context.Context, post *postdomain.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	post.ID = s.nextID
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	s.rows[post.ID] = *post
	return nil
}

func (s *Posts) FindByID(_ context.Context, id uint) (*postdomain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.rows[id]
	if !ok {
		return nil, fmt.Errorf("post %d: %w", id, apperror.ErrNotFound)
	}
	return &p, nil
}

func (s *Posts) FindByIDs(_ context.Context, ids []uint) ([]postdomain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []postdomain.Post{}
	for _, id := range ids {
		if p, ok := s.rows[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Posts) List(_ context.Context, limit, offset int) ([]postdomain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := make([]postdomain.Post, 0, len(s.rows))
	for _, p := range s.rows {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	if offset >= len(all) {
		return []postdomain.Post{}, nil
	}
	all = all[offset:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (s *Posts) Update(_ context.Context, post *postdomain.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	post.UpdatedAt = time.Now()
	s.rows[post.ID] = *post
	return nil
}

func (s *Posts) Delete(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[id]; !ok {
		return fmt.Errorf("post %d: %w", id, apperror.ErrNotFound)
	}
	delete(s.rows, id)
	return nil
}

// Favorites is an in-memory favoritedomain.FavoriteRepository enforcing the (user, target) uniqueness
type Favorites struct {
	mu     sync.Mutex
	nextID uint
	rows   []favoritedomain.Favorite
}

func NewFavorites() *Favorites {
	return &Favorites{}
}

// Insert stores a row without the uniqueness check, for duplicate-data scenarios
func (s *Favorites) Insert(f favoritedomain.Favorite) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	f.ID = s.nextID
	s.rows = append(s.rows, f)
}

// All returns a copy of every stored row
func (s *Favorites) All() []favoritedomain.Favorite {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]favoritedomain.Favorite(nil), s.rows...)
}

func (s *Favorites) FirstOrCreate(_ context.Context, f *favoritedomain.Favorite) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.rows {
		if row.UserID == f.UserID && row.FavoritableType == f.FavoritableType && row.FavoritableID == f.FavoritableID {
			*f = row
			return false, nil
		}
	}
	s.nextID++
	f.ID = s.nextID
	f.CreatedAt = time.Now()
	s.rows = append(s.rows, *f)
	return true, nil
}

func (s *Favorites) FindOwned(_ context.Context, userID uint, targetType favoritedomain.TargetType, targetID uint) (*favoritedomain.Favorite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.rows {
		if row.UserID == userID && row.FavoritableType == targetType && row.FavoritableID == targetID {
			return &row, nil
		}
	}
	return nil, fmt.Errorf("favorite %s %d: %w", targetType, targetID, apperror.ErrNotFound)
}

func (s *Favorites) Delete(_ context.Context, id uint) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, row := range s.rows {
		if row.ID == id {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (s *Favorites) FindByUser(_ context.Context, userID uint) ([]favoritedomain.Favorite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []favoritedomain.Favorite{}
	for _, row := range s.rows {
		if row.UserID == userID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (s *Favorites) FindFollowers(_ context.Context, targetType favoritedomain.TargetType, targetID uint) ([]favoritedomain.Favorite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []favoritedomain.Favorite{}
	for _, row := range s.rows {
		if row.FavoritableType == targetType && row.FavoritableID == targetID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (s *Favorites) CountByUser(_ context.Context, userID uint) (int64, error) {
	rows, _ := s.FindByUser(context.Background(), userID)
	return int64(len(rows)), nil
}

// Publisher records published events
type Publisher struct {
	mu     sync.Mutex
	Events []events.PostCreated
	Err    error
}

func (p *Publisher) PublishPostCreated(_ context.Context, event events.PostCreated) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, event)
	return p.Err
}

// Published returns a copy of the recorded events
func (p *Publisher) Published() []events.PostCreated {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.PostCreated(nil), p.Events...)
}

// Notifier records every Notify call
type Notifier struct {
	mu    sync.Mutex
	Calls [][]notificationdomain.Recipient
	Err   error
}

func (n *Notifier) Notify(_ context.Context, recipients []notificationdomain.Recipient, _ notificationdomain.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Calls = append(n.Calls, append([]notificationdomain.Recipient(nil), recipients...))
	return n.Err
}

// RecipientIDs returns the user ids of every call, in order
func (n *Notifier) RecipientIDs() [][]uint {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([][]uint, 0, len(n.Calls))
	for _, call := range n.Calls {
		ids := make([]uint, 0, len(call))
		for _, r := range call {
			ids = append(ids, r.UserID)
		}
		out = append(out, ids)
	}
	return out
}
