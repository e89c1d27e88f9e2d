package main

import (
	"log/slog"
	"os"

	"membership-api/internal/app"
	"membership-api/internal/config"
	"membership-api/internal/logger"
)

func main() {
	slog.SetDefault(logger.New(os.Stdout, "pretty", "info"))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(logger.New(os.Stdout, cfg.LogFormat, cfg.LogLevel))

	application, err := app.New(cfg)
	if err != nil {
		slog.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		slog.Error("application run failed", "error", err)
		os.Exit(1)
	}
}
