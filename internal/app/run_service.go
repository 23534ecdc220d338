package app

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/worksort/internal/models"
	"github.com/example/worksort/internal/ports/primary"
	"github.com/example/worksort/internal/ports/secondary"
)

// RunServiceImpl implements the primary.RunService interface: one full
// classify-then-export run with the documented success semantics. The run
// fails only when the rule source is unusable or when zero groups export
// successfully; partial per-group failures flag the run as completed with
// errors.
type RunServiceImpl struct {
	assignment primary.AssignmentService
	export     primary.ExportService
	runlog     secondary.RunLog
	logger     *zap.Logger
}

// NewRunService creates a new RunService with injected dependencies.
func NewRunService(assignment primary.AssignmentService, export primary.ExportService, runlog secondary.RunLog, logger *zap.Logger) *RunServiceImpl {
	return &RunServiceImpl{
		assignment: assignment,
		export:     export,
		runlog:     runlog,
		logger:     logger,
	}
}

// Run classifies the model and exports the resulting package groups.
func (s *RunServiceImpl) Run(ctx context.Context, classify primary.ClassifyOptions, export primary.ExportOptions) (*models.RunResult, error) {
	result := &models.RunResult{
		RunID:   uuid.NewString(),
		LogPath: s.runlog.Path(),
	}
	s.runlog.Printf("run %s started", result.RunID)
	s.logger.Info("run started", zap.String("run_id", result.RunID))

	outcome, err := s.assignment.Classify(ctx, classify)
	if err != nil {
		// Configuration failure: abort before any mutation happened.
		result.LastError = err.Error()
		s.runlog.Warnf("run %s aborted: %v", result.RunID, err)
		return result, err
	}
	result.Stats = outcome.Stats

	groupResults, err := s.export.Export(ctx, outcome.Groups, export)
	if err != nil {
		result.LastError = err.Error()
		s.runlog.Warnf("run %s export failed: %v", result.RunID, err)
		return result, err
	}
	result.Groups = groupResults

	exported := result.ExportedCount()
	result.Success = exported > 0
	result.WithErrors = exported < len(groupResults)
	if !result.Success {
		result.LastError = "no groups exported successfully"
	}

	if result.WithErrors && result.Success {
		s.runlog.Printf("run %s completed with errors: %d/%d groups exported", result.RunID, exported, len(groupResults))
	} else {
		s.runlog.Printf("run %s finished: %d/%d groups exported", result.RunID, exported, len(groupResults))
	}
	return result, nil
}
