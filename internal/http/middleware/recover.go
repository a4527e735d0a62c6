package middleware

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/diagnosis/menupage/internal/http/response"
	"github.com/diagnosis/menupage/pkg/logger"
)

// Recoverer turns a handler panic into the usual {error, code} 500 body.
// http.ErrAbortHandler is re-raised so net/http can drop the connection.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(rec)
			}
			logger.ErrorContext(r.Context(), "Recovered from panic",
				"panic", rec,
				"stack", string(debug.Stack()),
				"method", r.Method,
				"path", r.URL.Path,
			)
			if r.Header.Get("Connection") != "Upgrade" {
				response.InternalError(w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
