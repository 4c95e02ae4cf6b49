package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"unauthenticated", ErrUnauthenticated, http.StatusUnauthorized},
		{"self reference", fmt.Errorf("add favorite: %w", ErrSelfReference), http.StatusBadRequest},
		{"wrapped not found", fmt.Errorf("remove: %w", fmt.Errorf("lookup: %w", ErrNotFound)), http.StatusNotFound},
		{"validation", ErrValidation, http.StatusUnprocessableEntity},
		{"forbidden", ErrForbidden, http.StatusForbidden},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HTTPStatus(tc.err))
		})
	}
}

func TestPublicMessageHidesInternalErrors(t *testing.T) {
	assert.Equal(t, "internal server error", PublicMessage(errors.New("pq: password authentication failed")))
	assert.Equal(t, "title is required: validation failed",
		PublicMessage(fmt.Errorf("title is required: %w", ErrValidation)))
}
