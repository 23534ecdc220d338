// Package cli contains the worksort subcommands.
package cli

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/example/worksort/internal/config"
)

// loadSetup reads the settings file and builds the diagnostics logger
// shared by all commands. The caller must Sync the logger on exit.
func loadSetup(configPath string) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return cfg, logger, nil
}
