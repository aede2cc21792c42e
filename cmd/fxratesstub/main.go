package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"t-convert/internals/api"
	"t-convert/internals/config"
	"t-convert/internals/logging"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if _, err := logging.Setup(os.Stderr, logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Prefix: "fxratesstub"}); err != nil {
		slog.Error("Failed to set up logging", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting FX rates stub...")
	app := api.NewApp(api.NewHandler(api.DefaultRateTable()), cfg.StubAPIKey)

	go func() {
		slog.Info("Server starting", "port", cfg.StubPort, "api_key_required", cfg.StubAPIKey != "")
		if err := app.Listen(":" + cfg.StubPort); err != nil {
			slog.Error("Could not start server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited gracefully")
}
