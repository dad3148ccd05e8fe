package main

import (
	"context"
	"fmt"
	"os"

	"github.com/asakaida/socialization/internal/app"
	"github.com/asakaida/socialization/internal/infrastructure/config"
	"github.com/asakaida/socialization/internal/infrastructure/logging"
)

func main() {
	if err := newRootCmd(openApp).Execute(); err != nil {
		os.Exit(1)
	}
}

// openApp builds the application for env from .env.<env> and the environment
func openApp(ctx context.Context, env string) (*app.App, error) {
	if err := config.InitConfig(env); err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(&cfg.Log)
	if err != nil {
		return nil, err
	}

	return app.New(ctx, cfg, logger)
}
