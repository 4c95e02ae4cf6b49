package command

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/social-favorites/internal/testsupport"
	"github.com/tair/social-favorites/pkg/apperror"
	"github.com/tair/social-favorites/pkg/auth"
)

func TestRegisterAndLogin(t *testing.T) {
	users := testsupport.NewUsers()
	tokens := auth.NewTokenManager("secret", time.Hour)
	register := NewRegisterUserHandler(users, tokens)
	login := NewLoginUserHandler(users, tokens)
	ctx := context.Background()

	result, err := register.Handle(ctx, RegisterUserCommand{Name: " Alice ", Email: "Alice@Example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "Alice", result.User.Name)
	assert.Equal(t, "alice@example.com", result.User.Email)
	assert.NotEqual(t, "secret1", result.User.Password)

	claims, err := tokens.ValidateToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, claims.UserID)

	_, err = register.Handle(ctx, RegisterUserCommand{Name: "Other", Email: "alice@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	logged, err := login.Handle(ctx, LoginUserCommand{Email: "ALICE@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, logged.User.ID)

	_, err = login.Handle(ctx, LoginUserCommand{Email: "alice@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, apperror.ErrUnauthenticated)

	_, err = login.Handle(ctx, LoginUserCommand{Email: "nobody@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, apperror.ErrUnauthenticated)
}

func TestRegisterValidation(t *testing.T) {
	register := NewRegisterUserHandler(testsupport.NewUsers(), auth.NewTokenManager("secret", time.Hour))

	for name, cmd := range map[string]RegisterUserCommand{
		"name":     {Email: "a@example.com", Password: "secret1"},
		"email":    {Name: "a", Email: "not-an-email", Password: "secret1"},
		"password": {Name: "a", Email: "a@example.com", Password: "123"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := register.Handle(context.Background(), cmd)
			assert.ErrorIs(t, err, apperror.ErrValidation)
		})
	}
}

func TestImportUsers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users":
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `[
				{"name":"Leanne Graham","email":"Sincere@april.biz"},
				{"name":"Ervin Howell","email":"Shanna@melissa.tv"},
				{"name":"Clementine Bauch","email":"Nathan@yesenia.net"}
			]`)
		case "/empty":
			fmt.Fprint(w, `[]`)
		case "/html":
			fmt.Fprint(w, `<html></html>`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	users := testsupport.NewUsers()
	handler := NewImportUsersHandler(users, srv.Client())
	ctx := context.Background()

	n, err := handler.Handle(ctx, ImportUsersCommand{URL: srv.URL + "/users", Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	count, _ := users.Count(ctx)
	assert.EqualValues(t, 2, count)

	existing, err := users.FindByEmail(ctx, "sincere@april.biz")
	require.NoError(t, err)
	assert.Equal(t, "Leanne Graham", existing.Name)
	assert.NotEmpty(t, existing.Password)

	// a second run updates by email instead of duplicating
	n, err = handler.Handle(ctx, ImportUsersCommand{URL: srv.URL + "/users", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	count, _ = users.Count(ctx)
	assert.EqualValues(t, 3, count)

	cases := []struct {
		name string
		cmd  ImportUsersCommand
		want error
	}{
		{"no url", ImportUsersCommand{Limit: 1}, ErrURLRequired},
		{"no limit", ImportUsersCommand{URL: srv.URL + "/users"}, ErrInvalidLimit},
		{"empty array", ImportUsersCommand{URL: srv.URL + "/empty", Limit: 1}, ErrNoUsersFound},
		{"not json", ImportUsersCommand{URL: srv.URL + "/html", Limit: 1}, ErrNoUsersFound},
		{"not found", ImportUsersCommand{URL: srv.URL + "/missing", Limit: 1}, ErrNoUsersFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := handler.Handle(ctx, tc.cmd)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}
