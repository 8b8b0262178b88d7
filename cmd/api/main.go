package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/nilecart/storefront-backend/internal/api"
	"github.com/nilecart/storefront-backend/internal/application/checkout"
	"github.com/nilecart/storefront-backend/internal/infrastructure/config"
	"github.com/nilecart/storefront-backend/internal/infrastructure/logging"
	"github.com/nilecart/storefront-backend/internal/infrastructure/storage"
)

func main() {
	var (
		configFile string
		port       int
		verbose    bool
	)
	flag.StringVar(&configFile, "config", "config.yaml", "Configuration file path")
	flag.IntVar(&port, "port", 0, "Port to listen on (overrides config)")
	flag.BoolVar(&verbose, "verbose", false, "Verbose output")
	flag.Parse()

	// .env is optional, env vars may come from the environment directly
	_ = godotenv.Load()

	cfg := config.LoadOrEnvWithPath(configFile)

	loggingCfg := cfg.Observability.Logging
	if verbose {
		loggingCfg.Level = "debug"
	}
	logger := logging.NewLoggerWithSystem(loggingCfg, "api")

	repo, err := storage.Open(cfg.Storage)
	if err != nil {
		logger.Error("failed to open storage", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() { _ = repo.Close() }()

	checkoutSvc := checkout.NewService(repo, &checkout.LogNotifier{Logger: logger}, logger, cfg.Checkout)

	apiCfg := api.Config{
		Port:           cfg.Server.Port,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}
	if port != 0 {
		apiCfg.Port = port
	}

	server := api.NewServer(apiCfg, repo, checkoutSvc, logger)

	// Handle graceful shutdown
	done := make(chan bool, 1)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("received shutdown signal")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server shutdown error", slog.Any("error", err))
		}
		close(done)
	}()

	// Start server (blocks until shutdown)
	if err := server.Start(); err != nil {
		logger.Error("server error", slog.Any("error", err))
		os.Exit(1)
	}

	<-done
	logger.Info("server stopped")
}
