package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/babylog/babylog-backend/internal/adapter/postgres"
	"github.com/babylog/babylog-backend/internal/adapter/postgres/caregiver"
	"github.com/babylog/babylog-backend/internal/adapter/postgres/event"
	"github.com/babylog/babylog-backend/internal/auth"
	"github.com/babylog/babylog-backend/internal/config"
	authsvc "github.com/babylog/babylog-backend/internal/service/auth"
	"github.com/babylog/babylog-backend/internal/service/journal"
	"github.com/babylog/babylog-backend/internal/service/sleep"
	"github.com/babylog/babylog-backend/internal/service/stats"
	"github.com/babylog/babylog-backend/internal/transport/middleware"
	"github.com/babylog/babylog-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// the database, wires services and routes, and serves HTTP until ctx is
// cancelled, then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	handler := NewHandler(cfg, logger, pool, limiter)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// NewHandler wires repositories, services, and HTTP routes into a single
// handler. It is separate from Run so end-to-end tests can serve the full
// stack via httptest.
func NewHandler(cfg *config.Config, logger *slog.Logger, pool *pgxpool.Pool, limiter *middleware.RateLimiter) http.Handler {
	eventRepo := event.New(pool)
	caregiverRepo := caregiver.New(pool)
	txManager := postgres.NewTxManager(pool)
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	sleepService := sleep.NewService(logger, eventRepo, txManager, cfg.Sleep.Limits())
	journalService := journal.NewService(logger, eventRepo)
	statsService := stats.NewService(logger, eventRepo)
	authService := authsvc.NewService(logger, caregiverRepo, jwtManager)

	sleepHandler := rest.NewSleepHandler(sleepService, logger)
	eventsHandler := rest.NewEventsHandler(sleepService, journalService, logger)
	statsHandler := rest.NewStatsHandler(statsService, logger)
	authHandler := rest.NewAuthHandler(authService, logger)
	healthHandler := rest.NewHealthHandler(pool, BuildVersion())

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("GET /health/live", healthHandler.Live)
	mux.HandleFunc("GET /health/ready", healthHandler.Ready)

	mux.Handle("POST /api/v1/auth/login",
		limiter.Limit(cfg.Server.LoginPerMinute)(http.HandlerFunc(authHandler.Login)))

	mux.HandleFunc("POST /api/v1/sleep/fall-asleep", sleepHandler.FallAsleep)
	mux.HandleFunc("POST /api/v1/sleep/wake-up", sleepHandler.WakeUp)
	mux.HandleFunc("POST /api/v1/sleep/legacy", sleepHandler.Legacy)

	mux.HandleFunc("POST /api/v1/events", eventsHandler.Create)
	mux.HandleFunc("GET /api/v1/events", eventsHandler.List)
	mux.HandleFunc("GET /api/v1/events/{id}", eventsHandler.Get)
	mux.HandleFunc("DELETE /api/v1/events/{id}", eventsHandler.Delete)

	mux.HandleFunc("GET /api/v1/stats/daily", statsHandler.Daily)

	chain := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		middleware.Auth(authService),
	)

	return chain(mux)
}
