// Package main is the entry point for the trip builder API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"golang.org/x/sync/errgroup"

	"github.com/pkordes/trip-builder/api"
	"github.com/pkordes/trip-builder/internal/cache"
	"github.com/pkordes/trip-builder/internal/config"
	"github.com/pkordes/trip-builder/internal/handler"
	"github.com/pkordes/trip-builder/internal/middleware"
	"github.com/pkordes/trip-builder/internal/observability"
	"github.com/pkordes/trip-builder/internal/repo"
	"github.com/pkordes/trip-builder/internal/service"
	"github.com/pkordes/trip-builder/migrations"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Database ---------------------------------------------------------
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("create database pool: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	logger.Info("database connection established")

	if err := migrate(ctx, pool, logger); err != nil {
		return err
	}

	// --- Redis ------------------------------------------------------------
	rdb := cache.NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("redis connection established", "addr", cfg.RedisAddr)

	// --- Services ---------------------------------------------------------
	tripRepo := repo.NewTripRepo(pool)
	catalogRepo := repo.NewCatalogRepo(pool)

	trips := service.NewTripService(tripRepo)
	catalog := service.NewCatalogService(catalogRepo, cache.New(rdb), cfg.CacheTTL)
	drafts := service.NewDraftService(cache.NewDraftStore(rdb, cfg.DraftTTL), catalog, trips, logger)
	export := service.NewExportService(tripRepo)

	// --- Router -----------------------------------------------------------
	// RequestID and RealIP run first so the logger and the submit limiter see
	// the request id and the client address.
	reg := observability.InitRegistry()
	limiter := middleware.NewRateLimiter(cfg.SubmitRPS, 5)

	srv := handler.NewServer(trips, drafts, catalog, export,
		handler.WithLogger(logger),
		handler.WithOpenAPI(api.OpenAPI),
		handler.WithSubmitLimiter(limiter.Handler),
		handler.WithRoutes(func(r chi.Router) {
			r.Method(http.MethodGet, "/metrics", observability.MetricsHandler(reg))
		}),
	)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(middleware.Metrics)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
	r.Mount("/", srv.Routes())

	// --- HTTP Server ------------------------------------------------------
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("api server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return observability.Serve(gctx, cfg.MetricsAddr, reg, logger)
	})
	g.Go(func() error {
		// Give in-flight requests up to 15 seconds once a signal arrives or
		// another server fails.
		<-gctx.Done()
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}

// migrate applies every pending migration through goose.
func migrate(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("create goose provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	for _, res := range results {
		logger.Info("migration applied", "version", res.Source.Version, "duration", res.Duration)
	}
	return nil
}
