package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/example/worksort/internal/core/grouping"
	"github.com/example/worksort/internal/models"
	"github.com/example/worksort/internal/ports/primary"
	"github.com/example/worksort/internal/ports/secondary"
)

// ExportServiceImpl implements the primary.ExportService interface.
// Export happens after the classification transaction has closed; groups
// have no data dependency on one another, so the per-group transfer/save
// step may run in parallel within the configured bound.
type ExportServiceImpl struct {
	store   secondary.ModelStore
	factory secondary.ArtifactFactory
	runlog  secondary.RunLog
	logger  *zap.Logger
}

// NewExportService creates a new ExportService with injected dependencies.
func NewExportService(store secondary.ModelStore, factory secondary.ArtifactFactory, runlog secondary.RunLog, logger *zap.Logger) *ExportServiceImpl {
	return &ExportServiceImpl{
		store:   store,
		factory: factory,
		runlog:  runlog,
		logger:  logger,
	}
}

// Export writes one output artifact per non-empty package group.
func (s *ExportServiceImpl) Export(ctx context.Context, groups models.GroupIndex, opts primary.ExportOptions) ([]*models.TransferResult, error) {
	if opts.Destination == "" {
		return nil, fmt.Errorf("export destination is required")
	}
	if err := os.MkdirAll(opts.Destination, 0755); err != nil {
		return nil, fmt.Errorf("failed to create destination directory: %w", err)
	}

	// Synchronize-and-relinquish on shared stores is attempted once per
	// export and is never fatal.
	if err := s.store.SyncAndRelinquish(ctx); err != nil && !errors.Is(err, secondary.ErrSyncUnsupported) {
		s.runlog.Warnf("sync and relinquish failed: %v", err)
	}

	index := s.withOrphans(ctx, groups, opts)
	s.logDrops(index)

	naming := grouping.FileNaming{
		ProjectPrefix: opts.ProjectPrefix,
		Suffix:        opts.Suffix,
		Tag:           opts.Tag,
		Extension:     opts.Extension,
	}
	jobs := grouping.Plan(index, numberingMode(opts.Mode), naming)

	engine := NewTransferEngine(s.store, s.factory, s.runlog, s.logger, opts.ChunkSize)

	var (
		mu      sync.Mutex
		results []*models.TransferResult
	)
	eg, egCtx := errgroup.WithContext(ctx)
	limit := opts.Parallelism
	if limit < 1 {
		limit = 1
	}
	eg.SetLimit(limit)

	for _, job := range jobs {
		job := job
		eg.Go(func() error {
			result := s.exportJob(egCtx, engine, job, opts)
			mu.Lock()
			results = append(results, result)
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Code != results[j].Code {
			return results[i].Code < results[j].Code
		}
		return results[i].ArtifactPath < results[j].ArtifactPath
	})
	return results, nil
}

// exportJob handles one planned group, honoring the overwrite flag.
func (s *ExportServiceImpl) exportJob(ctx context.Context, engine *TransferEngine, job grouping.Job, opts primary.ExportOptions) *models.TransferResult {
	destPath := filepath.Join(opts.Destination, job.FileName)

	if !opts.Overwrite {
		if _, err := os.Stat(destPath); err == nil {
			s.runlog.Printf("group %s: %s exists and overwrite is disabled, skipping", job.Code, destPath)
			result := models.NewTransferResult(job.Code)
			result.Requested = len(job.Items())
			result.FailureReason = "output exists, overwrite disabled"
			return result
		}
	}

	return engine.TransferGroup(ctx, job, destPath)
}

// withOrphans appends the orphan partition's live membership under the
// reserved code when requested. Membership is read fresh from the store,
// not from classification bookkeeping.
func (s *ExportServiceImpl) withOrphans(ctx context.Context, groups models.GroupIndex, opts primary.ExportOptions) models.GroupIndex {
	if !opts.IncludeOrphans {
		return groups
	}
	orphan := opts.OrphanPartition
	if orphan == "" {
		orphan = models.OrphanPartition
	}
	members, err := s.store.PartitionMembers(ctx, orphan)
	if err != nil {
		s.runlog.Warnf("failed to read orphan partition %q: %v", orphan, err)
		return groups
	}
	for _, id := range members {
		groups.Add(grouping.OrphanExportCode, orphan, id)
	}
	s.runlog.Printf("orphan partition %q added to export with %d items", orphan, len(members))
	return groups
}

// logDrops records the groups the plan will exclude.
func (s *ExportServiceImpl) logDrops(index models.GroupIndex) {
	for _, code := range index.Codes() {
		group := index[code]
		if code == models.NoExport {
			s.runlog.Printf("group %s: export suppressed (%d items)", code, group.Len())
			continue
		}
		if group.Len() == 0 {
			s.runlog.Printf("group %s: empty, dropped", code)
		}
	}
}

func numberingMode(mode string) grouping.NumberingMode {
	if mode == string(grouping.ModePartition) {
		return grouping.ModePartition
	}
	return grouping.ModePackage
}
