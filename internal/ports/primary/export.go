package primary

import (
	"context"

	"github.com/example/worksort/internal/models"
)

// ExportService groups classified items into export packages and writes
// each package to an independent output artifact.
type ExportService interface {
	Export(ctx context.Context, groups models.GroupIndex, opts ExportOptions) ([]*models.TransferResult, error)
}

// ExportOptions tunes the export stage.
type ExportOptions struct {
	Destination   string
	ProjectPrefix string
	Suffix        string
	Tag           string
	Extension     string

	// Mode selects the numbering policy: "package" or "partition".
	Mode string

	// IncludeOrphans appends a group for the orphan partition's current
	// membership, read fresh from the store.
	IncludeOrphans bool

	// OrphanPartition overrides the orphan sink name for IncludeOrphans.
	OrphanPartition string

	// Overwrite allows replacing existing output files. When false an
	// existing path skips the group without error.
	Overwrite bool

	// ChunkSize is the retry granularity after batch failure; zero means
	// the default of 50.
	ChunkSize int

	// Parallelism bounds concurrent per-group exports; zero or one means
	// sequential.
	Parallelism int
}

// RunService performs a full classify-then-export run.
type RunService interface {
	Run(ctx context.Context, classify ClassifyOptions, export ExportOptions) (*models.RunResult, error)
}
