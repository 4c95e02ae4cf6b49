package httpx

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tair/social-favorites/pkg/apperror"
)

// PathID parses a positive numeric route variable; anything else is reported as not found
func PathID(r *http.Request, name string) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)[name], 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s: %w", name, apperror.ErrNotFound)
	}
	return uint(id), nil
}

// DecodeJSON decodes the request body; malformed input is a validation error
func DecodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("malformed request body: %w", apperror.ErrValidation)
	}
	return nil
}

// QueryInt reads a non-negative integer query parameter with a fallback
func QueryInt(r *http.Request, key string, fallback int) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
