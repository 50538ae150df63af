package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/GiorgiUbiria/skill_swap/internal/httputil"
	"github.com/GiorgiUbiria/skill_swap/internal/models"
	"github.com/GiorgiUbiria/skill_swap/internal/swaps"
	"github.com/GiorgiUbiria/skill_swap/internal/validate"
	"github.com/go-chi/chi/v5"
)

type SwapRequest struct {
	PostID string `json:"postId" validate:"required"`
}

type StatusRequest struct {
	Status      string `json:"status" validate:"required,oneof=Accepted Rejected"`
	MeetingDate string `json:"meetingDate" validate:"required_if=Status Accepted"`
	MeetingTime string `json:"meetingTime" validate:"required_if=Status Accepted"`
	MeetingLink string `json:"meetingLink" validate:"required_if=Status Accepted,omitempty,url"`
}

// RequestSwap godoc
// @Summary  Send a swap request against a post
// @Tags     swaps
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Success  201
// @Failure  400,403,404
// @Router   /swaps/request [post]
func (h *Handler) RequestSwap(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.actor(w, r)
	if !ok {
		return
	}

	var req SwapRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.fail(w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		h.fail(w, err)
		return
	}

	swap, err := h.Swaps.SendRequest(r.Context(), req.PostID, userID)
	if err != nil {
		h.fail(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, map[string]any{"success": true, "message": "Swap request sent successfully", "swap": swap})
}

func queryInt(r *http.Request, key string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return n
}

// MySwaps godoc
// @Summary  Incoming and outgoing swaps of the caller, paged
// @Tags     swaps
// @Produce  json
// @Security BearerAuth
// @Param    page  query int false "page, from 1"
// @Param    limit query int false "page size"
// @Success  200
// @Router   /swaps/my-swaps [get]
func (h *Handler) MySwaps(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.actor(w, r)
	if !ok {
		return
	}

	page, err := h.Swaps.ListForUser(r.Context(), userID, queryInt(r, "page"), queryInt(r, "limit"))
	if err != nil {
		h.fail(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
		*swaps.Page
	}{true, page})
}

func (h *Handler) GetSwap(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.actor(w, r)
	if !ok {
		return
	}
	swap, err := h.Swaps.Get(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		h.fail(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "swap": swap})
}

func (h *Handler) SwapLedger(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.actor(w, r)
	if !ok {
		return
	}
	swapID := chi.URLParam(r, "id")
	if _, err := h.Swaps.Get(r.Context(), swapID, userID); err != nil {
		h.fail(w, err)
		return
	}
	entries, err := h.Swaps.Ledger(r.Context(), swapID)
	if err != nil {
		h.fail(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "entries": entries})
}

// UpdateSwapStatus godoc
// @Summary  Accept (with meeting details) or reject a pending swap
// @Tags     swaps
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "swap id"
// @Success  200
// @Failure  400,403,404
// @Router   /swaps/{id}/status [put]
func (h *Handler) UpdateSwapStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.actor(w, r)
	if !ok {
		return
	}

	var req StatusRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.fail(w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		h.fail(w, err)
		return
	}

	swap, err := h.Swaps.UpdateStatus(r.Context(), chi.URLParam(r, "id"), userID, swaps.StatusInput{
		Status:      models.SwapStatus(req.Status),
		MeetingDate: req.MeetingDate,
		MeetingTime: req.MeetingTime,
		MeetingLink: req.MeetingLink,
	})
	if err != nil {
		h.fail(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": fmt.Sprintf("Swap request %s successfully", strings.ToLower(req.Status)),
		"swap":    swap,
	})
}

// CompleteSwap godoc
// @Summary  Finalize an accepted swap and transfer one HelpPoint
// @Tags     swaps
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "swap id"
// @Success  200
// @Failure  400,403,404
// @Router   /swaps/{id}/complete [post]
func (h *Handler) CompleteSwap(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.actor(w, r)
	if !ok {
		return
	}

	done, err := h.Swaps.Complete(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		h.fail(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		*swaps.Completion
	}{true, "Swap completed! HelpPoints transferred successfully.", done})
}
