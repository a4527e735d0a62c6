package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/diagnosis/menupage/internal/domain"
	"github.com/diagnosis/menupage/pkg/logger"
)

// ErrorResponse represents a structured JSON error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

const (
	CodeInvalidInput  = "INVALID_INPUT"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeForbidden     = "FORBIDDEN"
	CodeNotFound      = "NOT_FOUND"
	CodeConflict      = "CONFLICT"
	CodeRateLimit     = "RATE_LIMIT_EXCEEDED"
	CodeInternalError = "INTERNAL_ERROR"
)

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

// WriteError writes a structured JSON error response
func WriteError(w http.ResponseWriter, status int, message, code string) {
	WriteJSON(w, status, ErrorResponse{Error: message, Code: code})
}

func BadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message, CodeInvalidInput)
}

func Unauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, message, CodeUnauthorized)
}

func InternalError(w http.ResponseWriter) {
	WriteError(w, http.StatusInternalServerError, "Internal server error", CodeInternalError)
}

func RateLimit(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusTooManyRequests, message, CodeRateLimit)
}

// FromError maps a domain error kind to its status. Anything unclassified is logged
// in full and reported as a generic 500.
func FromError(w http.ResponseWriter, r *http.Request, err error) {
	var derr *domain.Error
	message := err.Error()
	if errors.As(err, &derr) {
		message = derr.Message
	}

	switch {
	case errors.Is(err, domain.ErrBadRequest):
		WriteError(w, http.StatusBadRequest, message, CodeInvalidInput)
	case errors.Is(err, domain.ErrUnauthenticated):
		WriteError(w, http.StatusUnauthorized, message, CodeUnauthorized)
	case errors.Is(err, domain.ErrForbidden):
		WriteError(w, http.StatusForbidden, message, CodeForbidden)
	case errors.Is(err, domain.ErrNotFound):
		WriteError(w, http.StatusNotFound, message, CodeNotFound)
	case errors.Is(err, domain.ErrConflict):
		WriteError(w, http.StatusConflict, message, CodeConflict)
	default:
		logger.ErrorContext(r.Context(), "Unhandled error", "error", err, "method", r.Method, "path", r.URL.Path)
		InternalError(w)
	}
}
