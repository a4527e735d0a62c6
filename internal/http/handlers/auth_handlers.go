package handlers

import (
	"net/http"

	"github.com/diagnosis/menupage/internal/domain"
	"github.com/diagnosis/menupage/internal/http/middleware"
	"github.com/diagnosis/menupage/internal/http/response"
)

// Register handles account registration
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.authService.Register(r.Context(), &req)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, resp)
}

// Login handles account authentication
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	id := middleware.IdentityFrom(r.Context())
	if id == nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	info, err := h.authService.Me(r.Context(), id.AccountID)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, info)
}
