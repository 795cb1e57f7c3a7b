package main

import (
	"os"

	"go.uber.org/fx"

	"ai-engine/internal/bootstrap"
	"ai-engine/internal/shared/config"
	"ai-engine/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	logger := telemetry.Configure(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	if err := cfg.Validate(); err != nil {
		telemetry.Error("config.invalid", map[string]any{"error": err})
		os.Exit(1)
	}

	fx.New(bootstrap.Module(cfg)).Run()
}
