package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"firebase.google.com/go/v4/messaging"
	"github.com/anonto42/travel-match/gateway/internal/metrics"
	"github.com/anonto42/travel-match/gateway/internal/router"
	"github.com/anonto42/travel-match/gateway/pkg/config"
	"github.com/anonto42/travel-match/gateway/pkg/firebase"
	"github.com/anonto42/travel-match/gateway/pkg/logging"
	"github.com/bwmarrin/snowflake"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logging.Setup(cfg.Env, cfg.LogLevel)

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize databases")
	}
	defer db.CloseDB()

	// Firebase is optional; without it unread badges are not pushed
	ctx := context.Background()
	var fcm *messaging.Client
	if cfg.FirebaseCredentialsPath != "" {
		app, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize Firebase")
		}
		fcm = app.Messaging
	} else {
		log.Warn().Msg("FIREBASE_CREDENTIALS_PATH not set, unread badge push disabled")
	}

	ids, err := snowflake.NewNode(cfg.SnowflakeNode)
	if err != nil {
		log.Fatal().Err(err).Int64("node", cfg.SnowflakeNode).Msg("Invalid snowflake node")
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Setup global middleware
	config.SetupMiddleware(e)

	// Setup routes and dependencies
	if _, err := router.SetupRoutes(e, router.Dependencies{
		Config:    cfg,
		Postgres:  db.Postgres,
		Mongo:     db.Mongo,
		Messaging: fcm,
		IDs:       ids,
	}); err != nil {
		log.Fatal().Err(err).Msg("Failed to set up routes")
	}

	metricsSrv := &http.Server{
		Addr:              ":" + cfg.MetricsPort,
		Handler:           metrics.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Metrics server stopped")
		}
	}()

	// Start server
	go func() {
		log.Info().Str("port", cfg.Port).Str("upstream", cfg.UpstreamBaseURL).Msg("Gateway listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
	_ = metricsSrv.Shutdown(shutdownCtx)
}
