// Package main runs the HTTP invocation surface: POST /invoke executes one
// search-then-publish pass, /metrics exposes Prometheus metrics, /health is
// a liveness probe. Initialization happens once at startup; if it fails the
// server still comes up and every invocation returns a fixed generic 500.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"guardian-stream/internal/app"
	"guardian-stream/internal/config"
	"guardian-stream/internal/handler/http/invoke"
	"guardian-stream/internal/handler/http/respond"
	"guardian-stream/internal/observability/logging"
	pkgconfig "guardian-stream/pkg/config"
)

// HealthResponse represents a simple health check response.
type HealthResponse struct {
	Status string `json:"status"`
}

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	application, initErr := app.New(ctx, cfg)
	if initErr != nil {
		// The server still starts: invocations short-circuit to a generic
		// 500 rather than crash-looping the process.
		logger.Error("initialization failed",
			slog.String("error", respond.SanitizeError(initErr)))
	} else {
		defer func() {
			if err := application.Close(); err != nil {
				logger.Error("failed to close application", slog.Any("error", err))
			}
		}()
	}

	var runner invoke.Runner
	if application != nil {
		runner = application
	}

	mux := http.NewServeMux()
	mux.Handle("/invoke", invoke.NewHandler(runner, initErr, logger))
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", healthHandler)

	port := pkgconfig.GetEnvInt("SERVER_PORT", 8080)
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("invocation server starting", slog.Int("port", port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("invocation server error", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	} else {
		logger.Info("server stopped")
	}
}

// healthHandler handles GET /health requests (liveness probe).
// Always returns 200 OK with {"status": "healthy"}.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(HealthResponse{Status: "healthy"})
}
