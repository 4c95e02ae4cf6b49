package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tair/social-favorites/internal/post/domain"
	"github.com/tair/social-favorites/internal/post/usecase/command"
	"github.com/tair/social-favorites/internal/post/usecase/query"
	"github.com/tair/social-favorites/pkg/auth"
	"github.com/tair/social-favorites/pkg/httpx"
)

// PostHandler handles HTTP requests for posts using CQRS pattern
type PostHandler struct {
	createHandler *command.CreatePostHandler
	updateHandler *command.UpdatePostHandler
	deleteHandler *command.DeletePostHandler

	getPostHandler *query.GetPostHandler
	listHandler    *query.ListPostsHandler

	authn   *httpx.Authenticator
	metrics *httpx.Metrics
}

// NewPostHandler creates a new post handler
func NewPostHandler(
	createHandler *command.CreatePostHandler,
	updateHandler *command.UpdatePostHandler,
	deleteHandler *command.DeletePostHandler,
	getPostHandler *query.GetPostHandler,
	listHandler *query.ListPostsHandler,
	authn *httpx.Authenticator,
	metrics *httpx.Metrics,
) *PostHandler {
	return &PostHandler{
		createHandler:  createHandler,
		updateHandler:  updateHandler,
		deleteHandler:  deleteHandler,
		getPostHandler: getPostHandler,
		listHandler:    listHandler,
		authn:          authn,
		metrics:        metrics,
	}
}

// RegisterRoutes registers all post routes
func (h *PostHandler) RegisterRoutes(router *mux.Router) {
	// Public routes
	router.HandleFunc("/posts", h.metrics.Wrap("/posts", h.ListPosts)).Methods("GET")
	router.HandleFunc("/posts/{id:[0-9]+}", h.metrics.Wrap("/posts/{id}", h.GetPost)).Methods("GET")

	// Authenticated routes
	router.HandleFunc("/posts", h.metrics.Wrap("/posts", h.authn.Require(h.CreatePost))).Methods("POST")
	router.HandleFunc("/posts/{id:[0-9]+}", h.metrics.Wrap("/posts/{id}", h.authn.Require(h.UpdatePost))).Methods("PUT")
	router.HandleFunc("/posts/{id:[0-9]+}", h.metrics.Wrap("/posts/{id}", h.authn.Require(h.DeletePost))).Methods("DELETE")
}

type postRequest struct {
	Title    string  `json:"title"`
	Body     string  `json:"body"`
	ImageURL *string `json:"image_url"`
}

// CreatePost handles POST /posts
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())

	var req postRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	cmd := command.CreatePostCommand{
		Actor: actor,
		Title: req.Title,
		Body:  req.Body,
	}
	if req.ImageURL != nil {
		cmd.ImageURL = *req.ImageURL
	}

	post, err := h.createHandler.Handle(r.Context(), cmd)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondData(w, http.StatusCreated, post.WithAuthor(&domain.Author{ID: actor.ID, Name: actor.Name}))
}

// ListPosts handles GET /posts
func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.listHandler.Handle(r.Context(), query.ListPostsQuery{
		Limit:  httpx.QueryInt(r, "limit", 0),
		Offset: httpx.QueryInt(r, "offset", 0),
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondData(w, http.StatusOK, posts)
}

// GetPost handles GET /posts/{id}
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	post, err := h.getPostHandler.Handle(r.Context(), query.GetPostQuery{ID: id})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondData(w, http.StatusOK, post)
}

// UpdatePost handles PUT /posts/{id}
func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())

	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	var req postRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	post, err := h.updateHandler.Handle(r.Context(), command.UpdatePostCommand{
		ActorID:  actor.ID,
		PostID:   id,
		Title:    req.Title,
		Body:     req.Body,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondData(w, http.StatusOK, post.WithAuthor(&domain.Author{ID: actor.ID, Name: actor.Name}))
}

// DeletePost handles DELETE /posts/{id}
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())

	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	if err := h.deleteHandler.Handle(r.Context(), command.DeletePostCommand{ActorID: actor.ID, PostID: id}); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.NoContent(w)
}
