package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/example/worksort/internal/db"
	"github.com/example/worksort/internal/models"
	"github.com/example/worksort/internal/ports/secondary"
)

// Artifact is one output package under construction: a fresh SQLite
// database with the same schema as the model store, built in a temp file
// and renamed into place on save.
type Artifact struct {
	db    *sql.DB
	path  string
	saved bool
}

// ArtifactFactory creates sqlite artifacts in a working directory. The
// directory should live on the same filesystem as the save targets so the
// final rename is atomic.
type ArtifactFactory struct {
	workDir string
}

// NewArtifactFactory creates a factory writing temp artifacts under workDir.
func NewArtifactFactory(workDir string) *ArtifactFactory {
	return &ArtifactFactory{workDir: workDir}
}

// NewArtifact creates an empty artifact database.
func (f *ArtifactFactory) NewArtifact(ctx context.Context) (secondary.Artifact, error) {
	if err := os.MkdirAll(f.workDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create artifact work directory: %w", err)
	}
	tmp, err := os.CreateTemp(f.workDir, ".worksort-*.db")
	if err != nil {
		return nil, fmt.Errorf("failed to create artifact file: %w", err)
	}
	path := tmp.Name()
	tmp.Close()

	database, err := db.Open(path)
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to open artifact database: %w", err)
	}
	return &Artifact{db: database, path: path}, nil
}

// SupportsPartitions reports true: artifact databases carry the full
// partitions table.
func (a *Artifact) SupportsPartitions() bool {
	return true
}

// AssignPartition moves already-copied ids into the named partition,
// creating it if needed.
func (a *Artifact) AssignPartition(ctx context.Context, ids []models.ItemID, partition string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := a.db.ExecContext(ctx,
		"INSERT INTO partitions (name) VALUES (?) ON CONFLICT(name) DO NOTHING",
		partition,
	)
	if err != nil {
		return fmt.Errorf("failed to create artifact partition %q: %w", partition, err)
	}
	for _, id := range ids {
		_, err := a.db.ExecContext(ctx,
			"UPDATE items SET partition_id = (SELECT id FROM partitions WHERE name = ?) WHERE id = ?",
			partition, id,
		)
		if err != nil {
			return fmt.Errorf("failed to assign item %d to artifact partition %q: %w", id, partition, err)
		}
	}
	return nil
}

// SaveAs closes the database and renames the temp file to the target path.
func (a *Artifact) SaveAs(ctx context.Context, path string) error {
	if a.saved {
		return fmt.Errorf("artifact already saved")
	}
	if err := a.db.Close(); err != nil {
		return fmt.Errorf("failed to close artifact database: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.Rename(a.path, path); err != nil {
		return fmt.Errorf("failed to save artifact to %s: %w", path, err)
	}
	a.saved = true
	return nil
}

// Close discards an unsaved artifact. Safe to call after SaveAs.
func (a *Artifact) Close() error {
	if a.saved {
		return nil
	}
	a.db.Close()
	if err := os.Remove(a.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove artifact temp file: %w", err)
	}
	a.saved = true
	return nil
}
