package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/tair/social-favorites/pkg/apperror"
	"github.com/tair/social-favorites/pkg/logger"
)

// Envelope wraps successful payloads as {"data": ...}
type Envelope struct {
	Data interface{} `json:"data"`
}

// RespondJSON sends a JSON response
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Logger.Warn().Err(err).Msg("Failed to encode response")
	}
}

// RespondData sends {"data": data}
func RespondData(w http.ResponseWriter, status int, data interface{}) {
	RespondJSON(w, status, Envelope{Data: data})
}

// RespondError maps err to a status code and sends {"error": message}
func RespondError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperror.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error(r.Context()).
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("Request failed")
	}
	RespondJSON(w, status, map[string]string{"error": apperror.PublicMessage(err)})
}

// NoContent sends an empty 204
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
