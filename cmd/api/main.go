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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/Pujithcheeday/IMAGE-SUMMARY/internal/config"
	"github.com/Pujithcheeday/IMAGE-SUMMARY/internal/handler"
	"github.com/Pujithcheeday/IMAGE-SUMMARY/internal/logging"
	"github.com/Pujithcheeday/IMAGE-SUMMARY/internal/metrics"
	"github.com/Pujithcheeday/IMAGE-SUMMARY/internal/model/preset"
	askservice "github.com/Pujithcheeday/IMAGE-SUMMARY/internal/service/ask"
	"github.com/Pujithcheeday/IMAGE-SUMMARY/internal/service/history"
	sessionservice "github.com/Pujithcheeday/IMAGE-SUMMARY/internal/service/session"
	speechservice "github.com/Pujithcheeday/IMAGE-SUMMARY/internal/service/speech"
	"github.com/Pujithcheeday/IMAGE-SUMMARY/internal/service/vision"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		zlog.Warn().Err(err).Msg("failed to load .env file, continuing with system environment only")
	}

	cfg, err := config.Load()
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger := logging.New(cfg.Log)
	zlog.Logger = *logger

	registry := prometheus.NewRegistry()
	metrics.Register(registry)

	presetStore := preset.NewMemoryStore(preset.Seed())
	historyStore := history.NewStore(cfg.History.FilePath, logger)
	sessions := sessionservice.NewService(logger)

	// The vision model is optional at startup; without a credential every
	// send attempt is refused with a configuration error.
	var generator vision.Generator = vision.Unconfigured{}
	if cfg.Vision.Enabled() {
		gemini, err := vision.NewGemini(ctx, cfg.Vision)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to initialize vision model, send attempts will be refused")
		} else {
			generator = gemini
			logger.Info().Str("model", cfg.Vision.Model).Msg("vision model initialized")
		}
	} else {
		logger.Warn().Msg("GOOGLE_API_KEY not configured, send attempts will be refused")
	}

	speechSvc := speechservice.NewService(cfg.Speech, logger)
	if speechSvc.Available() {
		logger.Info().Msg("offline speech engine available")
	} else {
		logger.Info().Msg("offline speech engine unavailable, playback disabled")
	}

	askSvc := askservice.NewService(sessions, generator, historyStore, logger)

	router := handler.NewRouter(sessions, askSvc, historyStore, presetStore, speechSvc, registry, logger)

	startServer(ctx, cfg.Server, router, logger)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler, logger *zerolog.Logger) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logger.Info().Str("addr", serverCfg.Addr).Msg("image summary backend listening")
	if err := runServer(ctx, srv); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
