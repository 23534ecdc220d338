// Package primary defines the primary ports (driving interfaces) for the
// engine: classification, export, and the combined run.
package primary

import (
	"context"

	"github.com/example/worksort/internal/models"
)

// AssignmentService runs the three-phase preserve/apply/orphan algorithm
// and produces the final partition-per-item mapping plus the package-group
// index.
type AssignmentService interface {
	Classify(ctx context.Context, opts ClassifyOptions) (*ClassifyOutcome, error)
}

// ClassifyOptions tunes one classification run.
type ClassifyOptions struct {
	// OrphanPartition overrides the fixed orphan sink name. Empty means
	// models.OrphanPartition.
	OrphanPartition string

	// GroupOrphans adds orphaned items to the reserved orphan export
	// group during the orphan phase, mirroring the normal rule path.
	// Default is the explicit-request behavior: orphans reach an artifact
	// only when the export asks for them.
	GroupOrphans bool
}

// ClassifyOutcome is the result of the classification phases.
type ClassifyOutcome struct {
	Stats      models.AssignmentStats
	Groups     models.GroupIndex
	RuleErrors []string // per-rule failures that aborted only that rule
}
