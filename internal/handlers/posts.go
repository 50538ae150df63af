package handlers

import (
	"net/http"

	"github.com/GiorgiUbiria/skill_swap/internal/httputil"
	"github.com/GiorgiUbiria/skill_swap/internal/listings"
	"github.com/GiorgiUbiria/skill_swap/internal/middleware"
	"github.com/GiorgiUbiria/skill_swap/internal/models"
	"github.com/GiorgiUbiria/skill_swap/internal/validate"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.actor(w, r)
	if !ok {
		return
	}

	var in listings.CreateInput
	if err := httputil.DecodeJSON(r, &in); err != nil {
		h.fail(w, err)
		return
	}
	if err := validate.Struct(in); err != nil {
		h.fail(w, err)
		return
	}

	post, err := h.Listings.Create(r.Context(), userID, in)
	if err != nil {
		h.fail(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, map[string]any{"success": true, "message": "Skill post created successfully", "post": post})
}

// ListPosts is the marketplace. Signed-in callers do not see their own posts.
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := listings.Filter{
		Category: q.Get("category"),
		Type:     models.PostType(q.Get("type")),
	}
	if userID, ok := middleware.UserIDFromContext(r.Context()); ok {
		f.ExcludeOwnerID = userID
	}

	posts, err := h.Listings.List(r.Context(), f)
	if err != nil {
		h.fail(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "count": len(posts), "posts": posts})
}

func (h *Handler) MyPosts(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.actor(w, r)
	if !ok {
		return
	}
	posts, err := h.Listings.ListByOwner(r.Context(), userID)
	if err != nil {
		h.fail(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "posts": posts})
}

func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.Listings.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "post": post})
}

func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.actor(w, r)
	if !ok {
		return
	}
	if err := h.Listings.Delete(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
		h.fail(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Post deleted successfully"})
}
