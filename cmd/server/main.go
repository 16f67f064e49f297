package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	httpadapter "resume-optimizer/internal/adapter/http"
	"resume-optimizer/internal/cleanup"
	"resume-optimizer/internal/config"
	"resume-optimizer/pkg/logger"
)

func main() {
	cfg := config.Load()
	logger.Setup(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Starting resume optimizer API")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	container, err := NewContainer(ctx, cfg)
	if err != nil {
		slog.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer container.Close()

	janitor := cleanup.NewJanitor(container.Store, container.Registry, cleanup.JanitorConfig{
		Interval:  cfg.CleanupInterval,
		OrphanTTL: cfg.OrphanTTL,
	})
	go janitor.Run(ctx)

	app := httpadapter.NewApp(container.Handler, httpadapter.AppConfig{
		CORSAllowOrigins: cfg.CORSAllowOrigins,
		Checks:           container.Checks,
		AccessLog:        true,
	})

	go func() {
		slog.Info("Server listening", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}
	slog.Info("Server exited")
}
