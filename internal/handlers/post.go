package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kulewers/members-only/internal/metrics"
	"github.com/kulewers/members-only/internal/middleware"
	"github.com/kulewers/members-only/internal/services"
	"github.com/kulewers/members-only/internal/validation"
)

// ==========================
// PostHandler
// ==========================
type PostHandler struct {
	Posts *services.PostService
	Views *Renderer
}

var postForm = validation.New(
	validation.Field("title").Trim().
		MinLength(3, "Title must contain at least 3 characters").
		Escape(),
	validation.Field("body").Trim().
		MinLength(3, "Body must contain at least 3 characters").
		Escape(),
)

// ==========================
// Index
// ==========================
func (h *PostHandler) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Posts.List(r.Context())
	if err != nil {
		h.Views.Fail(w, r, err)
		return
	}

	h.Views.Render(w, r, http.StatusOK, "index", map[string]any{
		"Title": "Members Only",
		"Posts": posts,
	})
}

// ==========================
// Create Post
// ==========================
func (h *PostHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	h.Views.Render(w, r, http.StatusOK, "post-form", map[string]any{"Title": "New message"})
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())

	if err := r.ParseForm(); err != nil {
		h.Views.Fail(w, r, badRequest(err))
		return
	}

	res, err := postForm.Run(r.Context(), r.PostForm)
	if err != nil {
		h.Views.Fail(w, r, err)
		return
	}
	if !res.OK() {
		metrics.RecordRejection("post")
		h.Views.Render(w, r, http.StatusUnprocessableEntity, "post-form", map[string]any{
			"Title":  "New message",
			"Form":   res.Values,
			"Errors": res.Errors,
		})
		return
	}

	if _, err := h.Posts.Create(r.Context(), res.Get("title"), res.Get("body"), user.ID); err != nil {
		h.Views.Fail(w, r, err)
		return
	}

	http.Redirect(w, r, middleware.HomePath, http.StatusSeeOther)
}

// ==========================
// Delete Post
// ==========================

// DeleteConfirm shows the post and asks the admin to confirm.
func (h *PostHandler) DeleteConfirm(w http.ResponseWriter, r *http.Request) {
	post, err := h.Posts.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.Views.Fail(w, r, err)
		return
	}

	h.Views.Render(w, r, http.StatusOK, "post-delete", map[string]any{
		"Title": "Delete message",
		"Post":  post,
	})
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Posts.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.Views.Fail(w, r, err)
		return
	}

	http.Redirect(w, r, middleware.HomePath, http.StatusSeeOther)
}
