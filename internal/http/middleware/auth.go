package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/diagnosis/menupage/internal/domain"
	"github.com/diagnosis/menupage/internal/http/response"
	"github.com/diagnosis/menupage/pkg/logger"
)

type ctxKey string

const ctxIdentity ctxKey = "identity"

type Authenticator interface {
	Authenticate(ctx context.Context, header string) (*domain.Identity, error)
}

// RequireAuth rejects requests without a valid bearer token for a live account.
func RequireAuth(a Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := a.Authenticate(r.Context(), r.Header.Get("Authorization"))
			if err != nil {
				response.FromError(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), id)))
		})
	}
}

// OptionalAuth attaches the caller's identity when the token checks out and otherwise
// lets the request through anonymously. Store failures still surface as 500.
func OptionalAuth(a Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}
			id, err := a.Authenticate(r.Context(), header)
			switch {
			case err == nil:
				r = r.WithContext(withIdentity(r.Context(), id))
			case !errors.Is(err, domain.ErrUnauthenticated):
				response.FromError(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func IdentityFrom(ctx context.Context) *domain.Identity {
	id, _ := ctx.Value(ctxIdentity).(*domain.Identity)
	return id
}

func withIdentity(ctx context.Context, id *domain.Identity) context.Context {
	ctx = context.WithValue(ctx, ctxIdentity, id)
	return context.WithValue(ctx, logger.UserIDKey, id.AccountID)
}
