package handlers

import (
	"crypto/subtle"
	"net/http"

	"github.com/kulewers/members-only/internal/metrics"
	"github.com/kulewers/members-only/internal/middleware"
	"github.com/kulewers/members-only/internal/services"
	"github.com/kulewers/members-only/internal/validation"
)

// MembershipHandler lets a guest unlock member status with the shared code.
type MembershipHandler struct {
	Users      *services.UserService
	Views      *Renderer
	SecretCode string
}

func (h *MembershipHandler) codeForm() *validation.Pipeline {
	return validation.New(
		validation.Field("secretCode").Trim().
			Custom(func(v string) bool {
				return subtle.ConstantTimeCompare([]byte(v), []byte(h.SecretCode)) == 1
			}, "Wrong code..."),
	)
}

// Form shows the upgrade form to guests only.
func (h *MembershipHandler) Form(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())
	if user == nil {
		http.Redirect(w, r, middleware.LoginPath, http.StatusSeeOther)
		return
	}
	if user.IsMember() {
		http.Redirect(w, r, middleware.HomePath, http.StatusSeeOther)
		return
	}

	h.Views.Render(w, r, http.StatusOK, "membership-form", map[string]any{"Title": "Become a member"})
}

// Upgrade checks the submitted code and marks the current user as a member.
func (h *MembershipHandler) Upgrade(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())

	if err := r.ParseForm(); err != nil {
		h.Views.Fail(w, r, badRequest(err))
		return
	}

	res, err := h.codeForm().Run(r.Context(), r.PostForm)
	if err != nil {
		h.Views.Fail(w, r, err)
		return
	}
	if !res.OK() {
		metrics.RecordRejection("membership")
		h.Views.Render(w, r, http.StatusUnprocessableEntity, "membership-form", map[string]any{
			"Title":  "Become a member",
			"Form":   map[string]any{"secretCode": res.Get("secretCode")},
			"Errors": res.Errors,
		})
		return
	}

	if err := h.Users.UpgradeToMember(r.Context(), user.ID); err != nil {
		h.Views.Fail(w, r, err)
		return
	}

	http.Redirect(w, r, middleware.HomePath, http.StatusSeeOther)
}
