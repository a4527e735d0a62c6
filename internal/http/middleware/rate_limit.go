package middleware

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/diagnosis/menupage/internal/http/response"
	"github.com/diagnosis/menupage/pkg/logger"
)

// Limiter counts a hit against key. It is satisfied by repository.RateLimitRepository.
type Limiter interface {
	CheckRateLimit(ctx context.Context, key string, requests int, window time.Duration) (bool, error)
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
	// Scope namespaces keys so separate routes keep separate counters.
	Scope   string
	KeyFunc func(r *http.Request) []string
}

type RateLimiter struct {
	limiter Limiter
	config  RateLimitConfig
}

func NewRateLimiter(limiter Limiter, config RateLimitConfig) *RateLimiter {
	if config.KeyFunc == nil {
		config.KeyFunc = ClientIPKeyFunc
	}
	return &RateLimiter{limiter: limiter, config: config}
}

// Middleware fails open: a limiter error lets the request through.
func (rl *RateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, key := range rl.config.KeyFunc(r) {
				ok, err := rl.limiter.CheckRateLimit(r.Context(), rl.config.Scope+":"+key, rl.config.Requests, rl.config.Window)
				if err != nil {
					logger.WarnContext(r.Context(), "Rate limit check failed", "error", err)
					continue
				}
				if !ok {
					w.Header().Set("Retry-After", retryAfter(rl.config.Window))
					response.RateLimit(w, "Too many requests. Try again later.")
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClientIPKeyFunc keys on the connection's remote address. Forwarding headers are
// deliberately not read here: a client can set X-Forwarded-For to anything. Behind a
// trusted proxy, run chi's RealIP before this middleware (TRUST_PROXY=true) so that
// RemoteAddr already holds the forwarded client address.
func ClientIPKeyFunc(r *http.Request) []string {
	if ip := clientIP(r); ip != "" {
		return []string{"ip:" + ip}
	}
	return nil
}

func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func retryAfter(window time.Duration) string {
	secs := int(window.Seconds())
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}
