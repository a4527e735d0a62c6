package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/diagnosis/menupage/internal/http/handlers"
	"github.com/diagnosis/menupage/internal/http/middleware"
	"github.com/diagnosis/menupage/internal/mailer"
	"github.com/diagnosis/menupage/internal/repository"
	"github.com/diagnosis/menupage/internal/service"
	"github.com/diagnosis/menupage/pkg/auth"
	"github.com/diagnosis/menupage/pkg/config"
	"github.com/diagnosis/menupage/pkg/database"
	"github.com/diagnosis/menupage/pkg/events"
	"github.com/diagnosis/menupage/pkg/logger"
	mw "github.com/diagnosis/menupage/pkg/middleware"
)

func main() {
	if err := run(); err != nil {
		logger.Error("menupage api exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Configure(cfg.Log.Level, cfg.Log.Format)

	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.UsesDefaultSecret() {
		logger.Warn("JWT_SECRET is the placeholder value; tokens can be forged. Set JWT_SECRET before deploying.")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	accounts, restaurants, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	eventBus, err := openEventBus(cfg)
	if err != nil {
		return err
	}
	defer eventBus.Close()

	authLimiter, closeLimiter := openAuthLimiter(ctx, cfg)
	defer closeLimiter()

	tokens := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authenticator := service.NewAuthenticator(accounts, tokens)
	authService := service.NewAuthService(accounts, tokens, eventBus)
	restaurantService := service.NewRestaurantService(restaurants, newMailer(cfg), eventBus, cfg.Server.PublicBaseURL)

	h := handlers.New(authService, restaurantService, authenticator, authLimiter)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      newRouter(cfg, h),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting menupage api", "port", cfg.Server.Port, "store", cfg.Storage.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down menupage api...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func newRouter(cfg *config.Config, h *handlers.Handlers) http.Handler {
	r := chi.NewRouter()
	if cfg.Server.TrustProxy {
		// Rewrites RemoteAddr from X-Forwarded-For / X-Real-IP; only safe behind a proxy that sets them.
		r.Use(chimw.RealIP)
	}
	r.Use(mw.RequestID)
	r.Use(mw.ServiceName("menupage-api"))
	r.Use(mw.Logging)
	r.Use(middleware.Recoverer)
	r.Use(mw.CORS(cfg.CORS.AllowedOrigins))
	r.Use(mw.Health)

	routes := h.Routes()
	r.Mount("/api", routes)
	r.Mount("/", routes)
	return r
}

// openStore returns the record store for cfg.Storage.Driver and a func releasing it.
func openStore(ctx context.Context, cfg *config.Config) (repository.AccountRepository, repository.RestaurantRepository, func(), error) {
	if cfg.Storage.Driver != "postgres" {
		logger.Info("Using file store", "data_dir", cfg.Storage.DataDir)
		return repository.NewFileAccountRepository(cfg.Storage.DataDir),
			repository.NewFileRestaurantRepository(cfg.Storage.DataDir),
			func() {}, nil
	}

	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := repository.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, nil, err
	}
	logger.Info("Using postgres store")
	return repository.NewPostgresAccountRepository(pool),
		repository.NewPostgresRestaurantRepository(pool),
		pool.Close, nil
}

func openEventBus(cfg *config.Config) (events.Publisher, error) {
	if cfg.NATS.URL == "" {
		logger.Info("NATS_URL not set; lifecycle events are disabled")
		return events.NoopPublisher{}, nil
	}
	return events.NewNATSEventBus(cfg.NATS.URL)
}

// openAuthLimiter connects to Redis when configured. An unreachable Redis disables
// limiting instead of blocking startup.
func openAuthLimiter(ctx context.Context, cfg *config.Config) (*middleware.RateLimiter, func()) {
	if cfg.Redis.URL == "" {
		return nil, func() {}
	}
	client, err := database.ConnectRedis(ctx, cfg.Redis)
	if err != nil {
		logger.Warn("Redis unavailable; auth rate limiting disabled", "error", err)
		return nil, func() {}
	}
	limiter := middleware.NewRateLimiter(repository.NewRedisRateLimitRepository(client), middleware.RateLimitConfig{
		Requests: cfg.Redis.AuthRateLimit,
		Window:   cfg.Redis.AuthRateWindow,
		Scope:    "auth",
	})
	return limiter, func() { _ = client.Close() }
}

func newMailer(cfg *config.Config) mailer.Service {
	ms := mailer.NewMailerSend(cfg.Email.MailerSendKey, cfg.Email.FromName, cfg.Email.FromEmail)
	if ms.Enabled() {
		logger.Info("Using MailerSend for outgoing mail")
		return ms
	}
	logger.Info("MAILERSEND_API_KEY not set; using dev mailer")
	return mailer.NewDevMailer()
}
