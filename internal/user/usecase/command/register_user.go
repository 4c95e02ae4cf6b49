package command

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/tair/social-favorites/internal/user/domain"
	"github.com/tair/social-favorites/pkg/apperror"
	"github.com/tair/social-favorites/pkg/auth"
)

// RegisterUserCommand represents the command to register a new user
type RegisterUserCommand struct {
	Name     string
	Email    string
	Password string
}

// AuthResult is returned by registration and login
type AuthResult struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// RegisterUserHandler handles user registration command
type RegisterUserHandler struct {
	repo   domain.UserRepository
	tokens *auth.TokenManager
}

// NewRegisterUserHandler creates a new register user handler
func NewRegisterUserHandler(repo domain.UserRepository, tokens *auth.TokenManager) *RegisterUserHandler {
	return &RegisterUserHandler{repo: repo, tokens: tokens}
}

// Handle executes the register user command
func (h *RegisterUserHandler) Handle(ctx context.Context, cmd RegisterUserCommand) (*AuthResult, error) {
	cmd.Name = strings.TrimSpace(cmd.Name)
	cmd.Email = strings.ToLower(strings.TrimSpace(cmd.Email))

	if cmd.Name == "" {
		return nil, fmt.Errorf("name is required: %w", apperror.ErrValidation)
	}
	if _, err := mail.ParseAddress(cmd.Email); err != nil {
		return nil, fmt.Errorf("email is invalid: %w", apperror.ErrValidation)
	}
	if len(cmd.Password) < 6 {
		return nil, fmt.Errorf("password must be at least 6 characters: %w", apperror.ErrValidation)
	}

	if existing, _ := h.repo.FindByEmail(ctx, cmd.Email); existing != nil {
		return nil, fmt.Errorf("email already exists: %w", apperror.ErrValidation)
	}

	hashed, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Name:     cmd.Name,
		Email:    cmd.Email,
		Password: hashed,
	}
	if err := h.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := h.tokens.GenerateToken(user.ID, user.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &AuthResult{Token: token, User: user}, nil
}
