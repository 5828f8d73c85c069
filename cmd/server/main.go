// Command server runs the laptop asset registry HTTP API.
//
// Startup sequence: load .env (best effort), load and validate configuration,
// configure zerolog, open and migrate the SQLite registry database, seed the
// singleton registry state, set up OpenTelemetry, mount routes, and serve
// until SIGINT/SIGTERM triggers a graceful drain.
//
// @title        Laptop Asset Registry API
// @version      1.0
// @description  Token-based laptop asset registry with ownership transfer, mutable metadata, and append-only repair histories.
// @BasePath     /api/v1
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	_ "github.com/dkaravias/go-laptop-registry/docs"
	"github.com/dkaravias/go-laptop-registry/internal/config"
	httpapi "github.com/dkaravias/go-laptop-registry/internal/http"
	"github.com/dkaravias/go-laptop-registry/internal/observability"
	"github.com/dkaravias/go-laptop-registry/internal/repo"
	"github.com/dkaravias/go-laptop-registry/internal/sysutil"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version string

func main() {
	// .env is optional; real deployments configure via environment.
	_ = godotenv.Load()

	ver := sysutil.FirstNonEmpty(version, "dev")
	cfg := config.MustLoad()

	sysutil.SetLogLevel(cfg.LogLevel)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}
	if err := repo.SeedState(context.Background(), db, cfg.AdminID); err != nil {
		log.Fatal().Err(err).Msg("seed registry state")
	}

	shutdownOTel, err := observability.SetupOTel(context.Background(), cfg.OTEL, ver)
	if err != nil {
		log.Fatal().Err(err).Msg("setup opentelemetry")
	}

	gin.SetMode(cfg.GinMode)
	engine := gin.New()
	httpapi.RegisterRoutes(engine, db, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("version", ver).Msg("registry server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info().Str("signal", sig.String()).Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown")
	}
	if err := shutdownOTel(ctx); err != nil {
		log.Error().Err(err).Msg("otel shutdown")
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("stopped")
}
