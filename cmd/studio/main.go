package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kapu/ai-creative-studio-go/internal/app"
	"github.com/kapu/ai-creative-studio-go/internal/config"
	"github.com/kapu/ai-creative-studio-go/internal/service/session"
	"github.com/kapu/ai-creative-studio-go/internal/util"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := util.NewLogger(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("AI Creative Studio starting...",
		zap.String("provider", cfg.LLM.Provider),
		zap.String("log_level", cfg.Logging.Level),
	)

	output := func(_ string, message string) error {
		_, err := fmt.Fprintln(os.Stdout, message)
		return err
	}

	buildCtx, buildCancel := context.WithTimeout(context.Background(), 30*time.Second)
	container, err := app.Build(buildCtx, cfg, logger, output)
	buildCancel()
	if err != nil {
		logger.Error("Failed to assemble application services", zap.Error(err))
		os.Exit(1)
	}
	defer container.Close()

	// Create context with cancellation for runtime lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	}()

	var metricsServer *http.Server
	if cfg.Metrics.Addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsServer = &http.Server{
			Addr:              cfg.Metrics.Addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("Metrics server failed", zap.Error(err))
			}
		}()
		logger.Info("Metrics endpoint enabled", zap.String("addr", cfg.Metrics.Addr))
	}

	sessionID := session.NewID()
	logger.Info("Session started", zap.String("session_id", sessionID))

	console := container.NewConsole(sessionID, os.Stdout)
	if err := console.Run(ctx, os.Stdin); err != nil {
		logger.Error("Console error", zap.Error(err))
	}

	logger.Info("Shutting down gracefully...")

	if metricsServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error during metrics shutdown", zap.Error(err))
		}
	}

	logger.Info("Shutdown complete")
}
