package main

// @title           Shelfshare Catalog API
// @version         1.0
// @description     API for managing authors and books in Shelfshare.

// @contact.name   Sina Niyavarzi
// @contact.email  sinaniya@gmail.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/config"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/db"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/logger"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/metrics"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/router"
)

var appVersion = "0.1.0"

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	startTime := time.Now()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		l := zerolog.New(os.Stderr).With().Timestamp().Logger()
		l.Error().Err(err).Msg("failed to load config")
		return err
	}

	gin.SetMode(cfg.GinMode)

	log := logger.New(os.Stdout, cfg.GinMode, cfg.LogLevel).
		With().
		Str("version", appVersion).
		Logger()

	database, err := db.ConnectWithRetry(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("database unavailable")
		return err
	}

	sqlDB, err := database.DB()
	if err != nil {
		log.Error().Err(err).Msg("failed to get sql.DB")
		return err
	}
	defer sqlDB.Close()

	if err := db.Migrate(database); err != nil {
		log.Error().Err(err).Msg("migration failed")
		return err
	}

	m := metrics.NewManager(metricsOptions(cfg)...)
	if err := m.RegisterDB(sqlDB, cfg.DBDriver); err != nil {
		log.Warn().Err(err).Msg("db stats collector not registered")
	}

	engine, err := router.New(router.Deps{
		DB:        database,
		Logger:    log,
		Metrics:   m,
		Version:   appVersion,
		StartTime: startTime,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to build router")
		return err
	}

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      engine,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			log.Error().Err(err).Msg("HTTP server failed")
			return err
		}
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
		return err
	}

	log.Info().Msg("server stopped")
	return nil
}

func metricsOptions(cfg *config.Config) []metrics.Option {
	return []metrics.Option{
		metrics.WithNamespace(cfg.MetricsNamespace),
		metrics.WithSubsystem(cfg.MetricsSubsystem),
		metrics.WithHistogramBuckets(cfg.MetricsBuckets),
	}
}
