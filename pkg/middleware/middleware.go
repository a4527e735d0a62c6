package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"regexp"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"github.com/diagnosis/menupage/pkg/logger"
)

const RequestIDHeader = "X-Request-ID"

// Incoming ids are reused only when they look like an id, so a caller cannot inject
// arbitrary text into every log line of the request.
var requestIDPattern = regexp.MustCompile(`^[A-Za-z0-9._-]{1,64}$`)

// RequestID tags the request with an id that is echoed in X-Request-ID and attached to
// every log line written for it. A caller reporting a failed save can quote the header
// and the matching server-side error is one grep away.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if !requestIDPattern.MatchString(id) {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), logger.RequestIDKey, id)))
	})
}

// Logging writes one access line per request through chi's RequestLogger. Server errors
// log at error level and client errors at warn, so LOG_LEVEL=warn keeps only failures.
func Logging(next http.Handler) http.Handler {
	return middleware.RequestLogger(accessLogger{})(next)
}

type accessLogger struct{}

func (accessLogger) NewLogEntry(r *http.Request) middleware.LogEntry {
	return &accessEntry{r: r}
}

type accessEntry struct {
	r *http.Request
}

func (e *accessEntry) Write(status, bytes int, _ http.Header, elapsed time.Duration, _ interface{}) {
	level := slog.LevelInfo
	switch {
	case status >= http.StatusInternalServerError:
		level = slog.LevelError
	case status >= http.StatusBadRequest:
		level = slog.LevelWarn
	}
	ctx := e.r.Context()
	logger.WithContext(ctx).Log(ctx, level, "request",
		"method", e.r.Method,
		"path", e.r.URL.Path,
		"status", status,
		"bytes", bytes,
		"elapsed_ms", elapsed.Milliseconds(),
		"remote_addr", e.r.RemoteAddr,
	)
}

func (e *accessEntry) Panic(v interface{}, stack []byte) {
	logger.ErrorContext(e.r.Context(), "panic while serving request",
		"panic", v,
		"stack", string(stack),
		"path", e.r.URL.Path,
	)
}

// CORS allows browser clients on the configured origins. Authorization is the only credential used.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", RequestIDHeader},
		ExposedHeaders:   []string{RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	})
}

// ServiceName labels log lines with the binary that wrote them.
func ServiceName(name string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), logger.ServiceKey, name)))
		})
	}
}

type healthStatus struct {
	Status    string `json:"status"`
	Service   string `json:"service,omitempty"`
	Timestamp string `json:"timestamp"`
}

// Health answers /healthz before routing, so it works even when no route table is mounted there.
func Health(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/healthz" {
			next.ServeHTTP(w, r)
			return
		}
		service, _ := r.Context().Value(logger.ServiceKey).(string)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(healthStatus{
			Status:    "ok",
			Service:   service,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	})
}
