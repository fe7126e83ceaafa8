// Printlane bridge - connects a host commerce store to the Printlane
// design-personalization platform: order webhooks in, signed order sync out.
// Designed for Cloud Run deployment with stateless operation.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"printlane-bridge/internal/adapter"
	"printlane-bridge/internal/config"
	"printlane-bridge/internal/handler"
	"printlane-bridge/internal/middleware"
	"printlane-bridge/internal/printlane"
	"printlane-bridge/internal/shopify"
	"printlane-bridge/internal/woocommerce"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Local development: pick up a .env file when present. Production
	// config comes from the environment and Secret Manager.
	if os.Getenv("ENVIRONMENT") != "production" {
		_ = godotenv.Load()
	}

	// Initialize structured logger
	logger := initLogger()

	// Load configuration
	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	syncEnabled := cfg.Store.HasCredentials()
	logger.Info("configuration loaded",
		slog.String("store_id", cfg.StoreID),
		slog.String("platform", cfg.Store.PlatformType),
		slog.String("environment", cfg.Environment),
		slog.String("store_domain", cfg.Store.StoreDomain),
		slog.Bool("sync_enabled", syncEnabled),
	)
	if !syncEnabled {
		logger.Warn("Printlane credentials not configured; order sync disabled")
	}

	// Create platform adapter based on configuration
	platform, err := createPlatform(cfg)
	if err != nil {
		return fmt.Errorf("creating platform adapter: %w", err)
	}

	// Create the sync client and handler
	sync := printlane.New(cfg.BuildSyncConfig())
	h := handler.New(platform, sync, syncEnabled, cfg.BuildWidgetSettings(), logger)

	// Setup routes
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	// Apply middleware chain: recovery → request id → logging → handler
	// Recovery must be outermost to catch panics from the other middleware
	httpHandler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logging(logger),
	)(mux)

	// Create HTTP server with timeouts
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpHandler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Channel for shutdown signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Channel for server errors
	serverErr := make(chan error, 1)

	// Start server in goroutine
	go func() {
		logger.Info("server starting",
			slog.String("port", cfg.Port),
			slog.String("addr", server.Addr),
		)
		serverErr <- server.ListenAndServe()
	}()

	// Wait for shutdown signal or server error
	select {
	case err := <-serverErr:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-shutdown:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		// Give outstanding webhook deliveries time to complete
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			// Force close if graceful shutdown fails
			server.Close()
			return fmt.Errorf("shutdown error: %w", err)
		}
	}

	logger.Info("server stopped")
	return nil
}

// createPlatform creates the appropriate platform adapter based on configuration.
func createPlatform(cfg *config.Config) (adapter.Platform, error) {
	switch cfg.Store.PlatformType {
	case "woocommerce":
		return &woocommerce.Platform{WebhookSecret: cfg.Store.WebhookSecret}, nil
	case "shopify":
		return &shopify.Platform{WebhookSecret: cfg.Store.WebhookSecret}, nil
	default:
		return nil, fmt.Errorf("unsupported platform type: %s", cfg.Store.PlatformType)
	}
}

// initLogger creates a structured logger configured for the environment.
// Production uses JSON format for GCP Cloud Logging compatibility.
// Development uses text format for readability.
func initLogger() *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
		// Add source location in debug mode
		AddSource: level == slog.LevelDebug,
	}

	// JSON for production (Cloud Logging compatible), text for development
	if os.Getenv("ENVIRONMENT") == "production" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
