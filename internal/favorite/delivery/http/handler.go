package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tair/social-favorites/internal/favorite/domain"
	"github.com/tair/social-favorites/internal/favorite/presenter"
	"github.com/tair/social-favorites/internal/favorite/usecase/command"
	"github.com/tair/social-favorites/internal/favorite/usecase/query"
	"github.com/tair/social-favorites/pkg/auth"
	"github.com/tair/social-favorites/pkg/httpx"
)

// FavoriteHandler handles HTTP requests for favorites
type FavoriteHandler struct {
	addHandler    *command.AddFavoriteHandler
	removeHandler *command.RemoveFavoriteHandler
	listHandler   *query.ListFavoritesHandler

	presenter *presenter.Presenter
	authn     *httpx.Authenticator
	metrics   *httpx.Metrics
}

// NewFavoriteHandler creates a new favorite handler
func NewFavoriteHandler(
	addHandler *command.AddFavoriteHandler,
	removeHandler *command.RemoveFavoriteHandler,
	listHandler *query.ListFavoritesHandler,
	presenter *presenter.Presenter,
	authn *httpx.Authenticator,
	metrics *httpx.Metrics,
) *FavoriteHandler {
	return &FavoriteHandler{
		addHandler:    addHandler,
		removeHandler: removeHandler,
		listHandler:   listHandler,
		presenter:     presenter,
		authn:         authn,
		metrics:       metrics,
	}
}

// RegisterRoutes registers all favorite routes; every route requires a bearer token
func (h *FavoriteHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/favorites", h.metrics.Wrap("/favorites", h.authn.Require(h.ListFavorites))).Methods("GET")

	router.HandleFunc("/posts/{id:[0-9]+}/favorites",
		h.metrics.Wrap("/posts/{id}/favorites", h.authn.Require(h.add(domain.TargetPost)))).Methods("POST")
	router.HandleFunc("/posts/{id:[0-9]+}/favorites",
		h.metrics.Wrap("/posts/{id}/favorites", h.authn.Require(h.remove(domain.TargetPost)))).Methods("DELETE")

	router.HandleFunc("/users/{id:[0-9]+}/favorites",
		h.metrics.Wrap("/users/{id}/favorites", h.authn.Require(h.add(domain.TargetUser)))).Methods("POST")
	router.HandleFunc("/users/{id:[0-9]+}/favorites",
		h.metrics.Wrap("/users/{id}/favorites", h.authn.Require(h.remove(domain.TargetUser)))).Methods("DELETE")
}

// ListFavorites handles GET /favorites
func (h *FavoriteHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())

	favorites, err := h.listHandler.Handle(r.Context(), query.ListFavoritesQuery{ActorID: actor.ID})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondData(w, http.StatusOK, h.presenter.RenderPartitioned(r.Context(), *favorites))
}

// add handles POST /{posts|users}/{id}/favorites
func (h *FavoriteHandler) add(targetType domain.TargetType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, _ := auth.ActorFromContext(r.Context())

		id, err := httpx.PathID(r, "id")
		if err != nil {
			httpx.RespondError(w, r, err)
			return
		}

		favorite, err := h.addHandler.Handle(r.Context(), command.AddFavoriteCommand{
			ActorID:    actor.ID,
			TargetType: targetType,
			TargetID:   id,
		})
		if err != nil {
			httpx.RespondError(w, r, err)
			return
		}

		httpx.RespondData(w, http.StatusCreated, h.presenter.Render(r.Context(), *favorite))
	}
}

// remove handles DELETE /{posts|users}/{id}/favorites
func (h *FavoriteHandler) remove(targetType domain.TargetType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, _ := auth.ActorFromContext(r.Context())

		id, err := httpx.PathID(r, "id")
		if err != nil {
			httpx.RespondError(w, r, err)
			return
		}

		err = h.removeHandler.Handle(r.Context(), command.RemoveFavoriteCommand{
			ActorID:    actor.ID,
			TargetType: targetType,
			TargetID:   id,
		})
		if err != nil {
			httpx.RespondError(w, r, err)
			return
		}

		httpx.NoContent(w)
	}
}
