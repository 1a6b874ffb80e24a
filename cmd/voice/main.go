package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/yagnik-10/AI-agent-for-Public-Service-Navigation/internal/config"
	"github.com/yagnik-10/AI-agent-for-Public-Service-Navigation/internal/session"
	"github.com/yagnik-10/AI-agent-for-Public-Service-Navigation/internal/voice"
)

// The standalone telephony server answers calls through the HTTP API of a
// separately running API server.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(cfg.NewLogger(os.Stderr))

	if cfg.TwilioAccountSID == "" || cfg.TwilioAuthToken == "" {
		slog.Warn("Twilio credentials not set, recordings are downloaded without authentication")
	}

	calls := session.New[voice.Call](cfg.SessionCapacity, cfg.SessionTTL)
	handler := voice.NewHandler(
		voice.NewAPIClient(cfg.VoiceBackendURL, cfg.BackendTimeout),
		voice.NewTwilioFetcher(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.BackendTimeout),
		calls,
		cfg.TelephonyBasePath,
		voice.WithSignatureValidation(cfg.TwilioAuthToken, cfg.PublicBaseURL),
	)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Get("/health", handler.HealthHandler)
	r.Mount(cfg.TelephonyBasePath, handler.Routes())

	server := &http.Server{
		Addr:              ":" + cfg.VoicePort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Voice server running", "port", cfg.VoicePort, "backend", cfg.VoiceBackendURL, "path", cfg.TelephonyBasePath)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down voice server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Voice server exited")
}
