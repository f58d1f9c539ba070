package main

import (
	"context"
	"fmt"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"

	"waste-service/internal/pkg/config"
	"waste-service/internal/pkg/dotenv"
	"waste-service/internal/pkg/postgres"
	"waste-service/pkg/logger"
	"waste-service/pkg/logger/zap_adapter"
)

func main() {
	envErr := dotenv.Load()

	zapLogger, err := zap_adapter.NewZapAdapter(os.Getenv("LOG_LEVEL"))
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			stdlog.Printf("failed to sync logger: %v", err)
		}
	}()

	var appLogger logger.Logger = zapLogger
	mainLog := appLogger.With()

	if envErr != nil {
		mainLog.Error("failed to load .env file", logger.NewField("error", envErr))
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		mainLog.Error("load config", logger.NewField("error", err))
		os.Exit(1)
	}

	if err := run(context.Background(), appLogger, cfg); err != nil {
		mainLog.Error("migration failed", logger.NewField("error", err))
		os.Exit(1)
	}
	mainLog.Info("migrations applied")
}

func run(ctx context.Context, log logger.Logger, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	pool, err := postgres.NewConnPool(ctx, log, &cfg.Database)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()

	return postgres.Migrate(ctx, log, pool)
}
