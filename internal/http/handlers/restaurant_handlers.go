package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/diagnosis/menupage/internal/domain"
	"github.com/diagnosis/menupage/internal/http/middleware"
	"github.com/diagnosis/menupage/internal/http/response"
	"github.com/diagnosis/menupage/pkg/logger"
)

// ListRestaurants returns every restaurant, or only those owned by ?userId= when given.
func (h *Handlers) ListRestaurants(w http.ResponseWriter, r *http.Request) {
	var (
		list []domain.Restaurant
		err  error
	)
	if userID := r.URL.Query().Get("userId"); userID != "" {
		if caller := middleware.IdentityFrom(r.Context()); caller != nil && caller.AccountID != userID {
			logger.DebugContext(r.Context(), "Listing restaurants of another account", "owner_id", userID)
		}
		list, err = h.restaurantService.ListByOwner(r.Context(), userID)
	} else {
		list, err = h.restaurantService.List(r.Context())
	}
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, list)
}

func (h *Handlers) GetRestaurant(w http.ResponseWriter, r *http.Request) {
	rest, err := h.restaurantService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, rest)
}

// GetRestaurantBySlug backs the public site page.
func (h *Handlers) GetRestaurantBySlug(w http.ResponseWriter, r *http.Request) {
	rest, err := h.restaurantService.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, rest)
}

func (h *Handlers) CreateRestaurant(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateRestaurantRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	rest, err := h.restaurantService.Create(r.Context(), middleware.IdentityFrom(r.Context()), &req)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, rest)
}

func (h *Handlers) UpdateRestaurant(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateRestaurantRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	rest, err := h.restaurantService.Update(r.Context(), middleware.IdentityFrom(r.Context()), chi.URLParam(r, "id"), &req)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, rest)
}

func (h *Handlers) DeleteRestaurant(w http.ResponseWriter, r *http.Request) {
	if err := h.restaurantService.Delete(r.Context(), middleware.IdentityFrom(r.Context()), chi.URLParam(r, "id")); err != nil {
		response.FromError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}
