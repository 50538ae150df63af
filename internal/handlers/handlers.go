package handlers

import (
	"net/http"
	"strings"

	"github.com/GiorgiUbiria/skill_swap/internal/accounts"
	"github.com/GiorgiUbiria/skill_swap/internal/apperr"
	"github.com/GiorgiUbiria/skill_swap/internal/httputil"
	"github.com/GiorgiUbiria/skill_swap/internal/listings"
	"github.com/GiorgiUbiria/skill_swap/internal/middleware"
	"github.com/GiorgiUbiria/skill_swap/internal/swaps"
)

const maxFormBytes = 2 << 20

type Handler struct {
	Accounts    *accounts.Service
	Listings    *listings.Service
	Swaps       *swaps.Service
	Development bool
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	httputil.WriteErr(w, err, h.Development)
}

// actor returns the authenticated user ID. Routes using it sit behind
// middleware.Authenticated, so a miss is a wiring bug.
func (h *Handler) actor(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.fail(w, apperr.Unauthorized("unauthorized"))
		return "", false
	}
	return userID, true
}

// bindForm fills the given fields from a multipart or urlencoded body.
// It reports false when the request carries JSON instead.
func bindForm(r *http.Request, fields map[string]*string) (bool, error) {
	ct := r.Header.Get("Content-Type")
	switch {
	case strings.HasPrefix(ct, "multipart/form-data"):
		if err := r.ParseMultipartForm(maxFormBytes); err != nil {
			return true, apperr.Wrap(apperr.KindValidation, "invalid form body", err)
		}
	case strings.HasPrefix(ct, "application/x-www-form-urlencoded"):
		if err := r.ParseForm(); err != nil {
			return true, apperr.Wrap(apperr.KindValidation, "invalid form body", err)
		}
	default:
		return false, nil
	}
	for name, dst := range fields {
		*dst = r.FormValue(name)
	}
	return true, nil
}

func Health(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
