package handlers

import (
	"net/http"

	"github.com/GiorgiUbiria/skill_swap/internal/accounts"
	"github.com/GiorgiUbiria/skill_swap/internal/httputil"
	"github.com/GiorgiUbiria/skill_swap/internal/validate"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	*accounts.Session
}

// Register godoc
// @Summary  Create an account with 5 starting HelpPoints
// @Tags     auth
// @Accept   json,mpfd
// @Produce  json
// @Success  201
// @Failure  400
// @Router   /auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var in accounts.RegisterInput
	isForm, err := bindForm(r, map[string]*string{
		"name": &in.Name, "email": &in.Email, "password": &in.Password, "avatar": &in.AvatarURL,
	})
	if err == nil && !isForm {
		err = httputil.DecodeJSON(r, &in)
	}
	if err == nil {
		err = validate.Struct(in)
	}
	if err != nil {
		h.fail(w, err)
		return
	}

	sess, err := h.Accounts.Register(r.Context(), in)
	if err != nil {
		h.fail(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, sessionResponse{Success: true, Message: "User created successfully", Session: sess})
}

// Login godoc
// @Summary  Exchange email and password for a bearer token
// @Tags     auth
// @Accept   json
// @Produce  json
// @Success  200
// @Failure  400,404
// @Router   /auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.fail(w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		h.fail(w, err)
		return
	}

	sess, err := h.Accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, sessionResponse{Success: true, Message: "User logged in successfully!", Session: sess})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.actor(w, r)
	if !ok {
		return
	}
	user, err := h.Accounts.Get(r.Context(), userID)
	if err != nil {
		h.fail(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "user": user})
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.actor(w, r)
	if !ok {
		return
	}

	var in accounts.UpdateInput
	isForm, err := bindForm(r, map[string]*string{
		"name": &in.Name, "email": &in.Email, "avatar": &in.AvatarURL,
	})
	if err == nil && !isForm {
		err = httputil.DecodeJSON(r, &in)
	}
	if err == nil {
		err = validate.Struct(in)
	}
	if err != nil {
		h.fail(w, err)
		return
	}

	user, err := h.Accounts.Update(r.Context(), userID, in)
	if err != nil {
		h.fail(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Profile updated successfully", "user": user})
}
