package httpx

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// Pinger is satisfied by *sql.DB
type Pinger interface {
	PingContext(ctx context.Context) error
}

// RegisterHealthCheck registers GET /health backed by a database ping
func RegisterHealthCheck(router *mux.Router, service string, db Pinger) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			RespondJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status":  "unhealthy",
				"service": service,
				"error":   "database unavailable",
			})
			return
		}

		RespondJSON(w, http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": service,
		})
	}).Methods("GET")
}
