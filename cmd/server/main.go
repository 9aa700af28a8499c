package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel"

	"photo-gallery/internal/config"
	"photo-gallery/internal/observability"
	"photo-gallery/internal/platform/cache"
	"photo-gallery/internal/platform/database"
	"photo-gallery/internal/platform/server"
	"photo-gallery/internal/platform/storage"
	"photo-gallery/internal/services"
	"photo-gallery/internal/web/handlers"
)

func main() {
	ctx := context.Background()
	envErr := godotenv.Load()

	obsConfig := observability.LoadConfig("photo-api")
	logger := observability.NewLogger(obsConfig)
	if envErr != nil {
		logger.Info(ctx).Msg("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal(ctx).Err(err).Msg("Failed to load configuration")
	}

	provider, err := observability.NewProvider(ctx, obsConfig)
	if err != nil {
		logger.Fatal(ctx).Err(err).Msg("Failed to initialize observability")
	}
	otel.SetErrorHandler(otel.ErrorHandlerFunc(logger.OTELErrorHandler()))
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			logger.Error(ctx).Err(err).Msg("Failed to flush telemetry")
		}
	}()

	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal(ctx).Err(err).Msg("Failed to connect to database")
	}

	applied, err := database.RunMigrations(ctx, db)
	if err != nil {
		logger.Fatal(ctx).Err(err).Msg("Failed to run migrations")
	}
	if len(applied) > 0 {
		logger.Info(ctx).Strs("migrations", applied).Msg("Applied database migrations")
	}

	store, err := storage.NewService(ctx, cfg.Storage)
	if err != nil {
		logger.Fatal(ctx).Err(err).Msg("Failed to connect to storage")
	}

	var cacheClient *cache.RedisClient
	if cfg.Cache.Enabled {
		cacheClient, err = cache.NewRedisClient(ctx, cfg.Cache)
		if err != nil {
			logger.Warn(ctx).Err(err).Str("address", cfg.Cache.Address).Msg("Cache unavailable, continuing without it")
			cacheClient = nil
		}
	}

	container, err := services.NewContainer(cfg, db, store, cacheClient, logger)
	if err != nil {
		logger.Fatal(ctx).Err(err).Msg("Failed to initialize services container")
	}
	defer func() {
		if err := container.Close(); err != nil {
			logger.Error(ctx).Err(err).Msg("Failed to close services")
		}
	}()

	var middlewares []func(http.Handler) http.Handler
	if obsConfig.TracesEnabled {
		middlewares = append(middlewares, observability.TracingMiddleware(provider.Tracer("photo-gallery/http")))
	}
	if obsConfig.MetricsEnabled {
		metrics, err := observability.NewHTTPMetrics(provider.Meter("photo-gallery/http"))
		if err != nil {
			logger.Fatal(ctx).Err(err).Msg("Failed to create HTTP metrics")
		}
		middlewares = append(middlewares, observability.MetricsMiddleware(metrics))
	}

	handler := handlers.NewWithContainer(container)
	srv := server.New(cfg, handler.Routes(middlewares...))

	serverErr := make(chan error, 1)
	go func() {
		logger.Info(ctx).Str("addr", srv.Addr).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info(ctx).Str("signal", sig.String()).Msg("Server shutting down")
	case err := <-serverErr:
		logger.Error(ctx).Err(err).Msg("Server failed")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx).Err(err).Msg("Server forced to shutdown")
		return
	}

	logger.Info(ctx).Msg("Server exited")
}
