package main

import (
	"context"
	"log"
	"os"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/honeycarbs/careerhub/internal/config"
	"github.com/honeycarbs/careerhub/internal/mcp"
	"github.com/honeycarbs/careerhub/pkg/logging"
	"github.com/honeycarbs/careerhub/pkg/shutdown"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("failed to read .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	res, cleanup, err := mcp.InitializeResources(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize resources", "err", err)
		os.Exit(1)
	}
	defer cleanup()

	if err := res.Jobs.Load(ctx); err != nil {
		logger.Warn("initial job load failed, serving an empty collection until the next refresh", "err", err)
	}

	if err := res.Scheduler.Start(ctx); err != nil {
		logger.Error("failed to start refresh scheduler", "err", err)
		os.Exit(1)
	}

	srv := mcp.NewServer(logger, cfg, res)

	go shutdown.Graceful(
		[]os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP},
		10*time.Second,
		logger,
		res.Scheduler,
		srv,
	)

	logger.Info("server initialized and starting",
		"addr", cfg.Addr(),
		"store", cfg.StoreBackend,
		"refresh_interval", cfg.RefreshInterval.String(),
	)

	if err := srv.Run(); err != nil {
		logger.Error("server exited with error", "err", err)
	} else {
		logger.Info("server stopped")
	}
}
