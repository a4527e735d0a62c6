package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/diagnosis/menupage/internal/http/middleware"
	"github.com/diagnosis/menupage/internal/http/response"
	"github.com/diagnosis/menupage/internal/service"
)

const maxBodyBytes = 1 << 20

type Handlers struct {
	authService       service.AuthService
	restaurantService service.RestaurantService
	authenticator     middleware.Authenticator
	authLimiter       *middleware.RateLimiter
}

// New builds the handler set. authLimiter may be nil, in which case auth routes are not rate limited.
func New(
	authService service.AuthService,
	restaurantService service.RestaurantService,
	authenticator middleware.Authenticator,
	authLimiter *middleware.RateLimiter,
) *Handlers {
	return &Handlers{
		authService:       authService,
		restaurantService: restaurantService,
		authenticator:     authenticator,
		authLimiter:       authLimiter,
	}
}

func (h *Handlers) Routes() chi.Router {
	r := chi.NewRouter()
	requireAuth := middleware.RequireAuth(h.authenticator)

	r.Route("/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if h.authLimiter != nil {
				r.Use(h.authLimiter.Middleware())
			}
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)
		})
		r.With(requireAuth).Get("/me", h.Me)
	})

	r.Route("/restaurants", func(r chi.Router) {
		r.With(middleware.OptionalAuth(h.authenticator)).Get("/", h.ListRestaurants)
		r.With(requireAuth).Post("/", h.CreateRestaurant)
		r.Get("/slug/{slug}", h.GetRestaurantBySlug)
		r.Get("/{id}", h.GetRestaurant)
		r.With(requireAuth).Put("/{id}", h.UpdateRestaurant)
		r.With(requireAuth).Delete("/{id}", h.DeleteRestaurant)
	})

	return r
}

// decodeJSON reads a single JSON value from the body. Unknown fields are ignored.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			response.WriteError(w, http.StatusRequestEntityTooLarge, "Request body too large", response.CodeInvalidInput)
		case errors.Is(err, io.EOF):
			response.BadRequest(w, "Request body is required")
		default:
			response.BadRequest(w, "Invalid JSON format")
		}
		return false
	}
	return true
}
