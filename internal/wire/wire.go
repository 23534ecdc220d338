// Package wire provides dependency injection for the worksort application:
// it assembles adapters and services from a loaded configuration.
package wire

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/worksort/internal/adapters/filesystem"
	"github.com/example/worksort/internal/adapters/rules"
	"github.com/example/worksort/internal/adapters/sqlite"
	"github.com/example/worksort/internal/app"
	"github.com/example/worksort/internal/config"
	"github.com/example/worksort/internal/db"
	"github.com/example/worksort/internal/ports/primary"
	"github.com/example/worksort/internal/ports/secondary"
)

// Container holds one invocation's wired services. Build it per command
// and Close it when done.
type Container struct {
	Config *config.Config
	Logger *zap.Logger
	RunLog secondary.RunLog
	Store  secondary.ModelStore

	Assignment primary.AssignmentService
	Export     primary.ExportService
	Run        primary.RunService

	database *sql.DB
}

// NewContainer opens the model store and wires all adapters and services.
func NewContainer(cfg *config.Config, logger *zap.Logger) (*Container, error) {
	database, err := db.Open(cfg.ModelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open model store: %w", err)
	}

	runlog, err := filesystem.NewRunLog(cfg.Destination, uuid.NewString())
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to open run log: %w", err)
	}

	store := sqlite.NewStore(database)
	factory := sqlite.NewArtifactFactory(cfg.Destination)
	ruleSource := rules.NewCSVSource(cfg.RulesFile)

	assignment := app.NewAssignmentService(store, ruleSource, runlog, logger)
	export := app.NewExportService(store, factory, runlog, logger)
	run := app.NewRunService(assignment, export, runlog, logger)

	return &Container{
		Config:     cfg,
		Logger:     logger,
		RunLog:     runlog,
		Store:      store,
		Assignment: assignment,
		Export:     export,
		Run:        run,
		database:   database,
	}, nil
}

// RuleSource builds a standalone rule source for commands that only read
// the rule file.
func RuleSource(cfg *config.Config) secondary.RuleSource {
	return rules.NewCSVSource(cfg.RulesFile)
}

// Close releases the container's resources.
func (c *Container) Close() error {
	logErr := c.RunLog.Close()
	dbErr := c.database.Close()
	if logErr != nil {
		return logErr
	}
	if dbErr != nil {
		return fmt.Errorf("failed to close model store: %w", dbErr)
	}
	return nil
}
