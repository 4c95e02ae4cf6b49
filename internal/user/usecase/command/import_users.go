package command

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strconv"
	"strings"

	"github.com/tair/social-favorites/internal/user/domain"
	"github.com/tair/social-favorites/pkg/auth"
	"github.com/tair/social-favorites/pkg/logger"
)

var (
	ErrURLRequired  = errors.New("URL is required.")
	ErrInvalidLimit = errors.New("Enter a valid limit.")
	ErrNoUsersFound = errors.New("No users found at the provided URL.")
)

// ImportUsersCommand imports up to Limit users from a JSON array served at URL
type ImportUsersCommand struct {
	URL   string
	Limit int
}

type remoteUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ImportUsersHandler fetches remote users and upserts them by email
type ImportUsersHandler struct {
	repo   domain.UserRepository
	client *http.Client
}

// NewImportUsersHandler creates a new import handler
func NewImportUsersHandler(repo domain.UserRepository, client *http.Client) *ImportUsersHandler {
	if client == nil {
		client = http.DefaultClient
	}
	return &ImportUsersHandler{repo: repo, client: client}
}

// Handle returns the number of imported users
func (h *ImportUsersHandler) Handle(ctx context.Context, cmd ImportUsersCommand) (int, error) {
	if strings.TrimSpace(cmd.URL) == "" {
		return 0, ErrURLRequired
	}
	if cmd.Limit <= 0 {
		return 0, ErrInvalidLimit
	}

	users, err := h.fetch(ctx, cmd.URL)
	if err != nil {
		return 0, err
	}
	if len(users) > cmd.Limit {
		users = users[:cmd.Limit]
	}

	imported := 0
	for _, ru := range users {
		password, err := auth.HashPassword(randomPassword())
		if err != nil {
			return imported, fmt.Errorf("failed to hash password: %w", err)
		}
		user := &domain.User{
			Name:     ru.Name,
			Email:    strings.ToLower(strings.TrimSpace(ru.Email)),
			Password: password,
		}
		if err := h.repo.UpsertByEmail(ctx, user); err != nil {
			return imported, fmt.Errorf("import %s: %w", user.Email, err)
		}
		imported++
	}

	logger.Info(ctx).
		Str("url", cmd.URL).
		Int("imported", imported).
		Msg("Users imported")
	return imported, nil
}

func (h *ImportUsersHandler) fetch(ctx context.Context, url string) ([]remoteUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrNoUsersFound
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var users []remoteUser
	if err := json.Unmarshal(body, &users); err != nil || len(users) == 0 {
		return nil, ErrNoUsersFound
	}
	return users, nil
}

func randomPassword() string {
	return strconv.Itoa(100000 + rand.Intn(900000))
}
