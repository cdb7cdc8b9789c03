package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fbraem/kwai/internal/app/api"
	"github.com/fbraem/kwai/internal/app/purger"
	"github.com/fbraem/kwai/internal/platform/observability"
)

func main() {
	once := flag.Bool("once", false, "purge the tokens once and exit")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	cfg.Observability.ServiceName = "kwai-token-purger"
	instruments, shutdown, err := observability.Init(ctx, cfg.Observability)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdown(shutdownCtx)
	}()
	logger := instruments.Logger

	db, closeDB, err := api.OpenDatabase(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("failed to open database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeDB()

	identity, err := api.NewIdentityService(cfg, db, nil, instruments)
	if err != nil {
		logger.Error("failed to build identity service", slog.String("error", err.Error()))
		os.Exit(1)
	}
	p, err := purger.New(identity, cfg.Purger.Schedule, logger)
	if err != nil {
		logger.Error("failed to configure token purger", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if *once {
		if _, err := p.Once(ctx); err != nil {
			os.Exit(1)
		}
		return
	}
	logger.Info("token purger scheduled", slog.String("schedule", cfg.Purger.Schedule))
	if err := p.Run(ctx); err != nil {
		logger.Error("token purger stopped", slog.String("error", err.Error()))
	}
}
