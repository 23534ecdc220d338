package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/worksort/internal/core/grouping"
	"github.com/example/worksort/internal/core/transfer"
	"github.com/example/worksort/internal/models"
	"github.com/example/worksort/internal/ports/secondary"
)

// TransferEngine copies one package group's items into a fresh output
// artifact with chunked and per-item fallback. It never aborts a run: the
// result is either a saved artifact holding whatever transferred, or a
// clean per-group failure.
type TransferEngine struct {
	store     secondary.ModelStore
	factory   secondary.ArtifactFactory
	runlog    secondary.RunLog
	logger    *zap.Logger
	chunkSize int
}

// NewTransferEngine creates a transfer engine. chunkSize <= 0 selects the
// default of 50.
func NewTransferEngine(store secondary.ModelStore, factory secondary.ArtifactFactory, runlog secondary.RunLog, logger *zap.Logger, chunkSize int) *TransferEngine {
	if chunkSize <= 0 {
		chunkSize = transfer.DefaultChunkSize
	}
	return &TransferEngine{
		store:     store,
		factory:   factory,
		runlog:    runlog,
		logger:    logger,
		chunkSize: chunkSize,
	}
}

// TransferGroup executes one export job against destPath.
func (e *TransferEngine) TransferGroup(ctx context.Context, job grouping.Job, destPath string) *models.TransferResult {
	result := models.NewTransferResult(job.Code)
	ids := job.Items()
	result.Requested = len(ids)

	kept, skipped := e.prefilter(ctx, ids)
	result.Skipped = skipped
	for reason, count := range skipped {
		e.runlog.Printf("group %s: skipped %d items (%s)", job.Code, count, reason)
	}

	artifact, err := e.factory.NewArtifact(ctx)
	if err != nil {
		result.FailureReason = fmt.Sprintf("failed to create artifact: %v", err)
		e.runlog.Warnf("group %s: %s", job.Code, result.FailureReason)
		return result
	}
	defer artifact.Close()

	transferred := e.copyResilient(ctx, kept, artifact, result)
	result.Transferred = len(transferred)

	if len(transferred) > 0 && artifact.SupportsPartitions() {
		e.restorePartitions(ctx, job, transferred, artifact)
	}

	if err := artifact.SaveAs(ctx, destPath); err != nil {
		result.FailureReason = fmt.Sprintf("failed to save artifact: %v", err)
		e.runlog.Warnf("group %s: %s", job.Code, result.FailureReason)
		return result
	}

	result.Saved = true
	result.ArtifactPath = destPath
	e.runlog.Printf("group %s: saved %s (%d/%d transferred, %d skipped, %d failed)",
		job.Code, destPath, result.Transferred, result.Requested, result.SkipCount(), result.FailCount())
	return result
}

// prefilter resolves each id to its metadata and applies the pure skip
// rules. Unresolvable ids count as invalid.
func (e *TransferEngine) prefilter(ctx context.Context, ids []models.ItemID) ([]models.ItemID, map[models.SkipReason]int) {
	metas := make([]transfer.ItemMeta, 0, len(ids))
	for _, id := range ids {
		item, err := e.store.Item(ctx, id)
		if err != nil {
			if !errors.Is(err, secondary.ErrItemNotFound) {
				e.logger.Debug("item lookup failed", zap.Int64("item", int64(id)), zap.Error(err))
			}
			metas = append(metas, transfer.ItemMeta{ID: id, Valid: false})
			continue
		}
		metas = append(metas, transfer.ItemMeta{
			ID:          id,
			Valid:       true,
			IsType:      item.IsType,
			ViewScoped:  item.ViewScoped,
			HasCategory: item.HasCategory,
			Category:    item.Category,
		})
	}
	return transfer.Prefilter(metas)
}

// copyResilient attempts the whole set, then chunks, then single items.
// Returns the ids that made it into the artifact.
func (e *TransferEngine) copyResilient(ctx context.Context, ids []models.ItemID, artifact secondary.Artifact, result *models.TransferResult) []models.ItemID {
	if len(ids) == 0 {
		return nil
	}

	batchErr := e.store.CopyItems(ctx, ids, artifact)
	if batchErr == nil {
		return ids
	}
	e.runlog.Warnf("group %s: batch transfer of %d items failed, retrying in chunks of %d: %v",
		result.Code, len(ids), e.chunkSize, batchErr)

	var transferred []models.ItemID
	for _, chunk := range transfer.Chunks(ids, e.chunkSize) {
		if err := e.store.CopyItems(ctx, chunk, artifact); err == nil {
			transferred = append(transferred, chunk...)
			continue
		}
		// Chunk failed: fall back to one-by-one within it.
		for _, id := range chunk {
			if err := e.store.CopyItems(ctx, []models.ItemID{id}, artifact); err != nil {
				result.Failed[transfer.FailureCategory(err)]++
				e.logger.Debug("item transfer failed", zap.Int64("item", int64(id)), zap.Error(err))
				continue
			}
			transferred = append(transferred, id)
		}
	}
	return transferred
}

// restorePartitions reassigns transferred ids into same-named partitions
// in the destination. Best-effort: failures are logged, never fatal.
func (e *TransferEngine) restorePartitions(ctx context.Context, job grouping.Job, transferred []models.ItemID, artifact secondary.Artifact) {
	moved := make(map[models.ItemID]bool, len(transferred))
	for _, id := range transferred {
		moved[id] = true
	}
	for partition, members := range job.Partitions {
		var ids []models.ItemID
		for _, id := range members {
			if moved[id] {
				ids = append(ids, id)
			}
		}
		if len(ids) == 0 {
			continue
		}
		if err := artifact.AssignPartition(ctx, ids, partition); err != nil {
			e.runlog.Warnf("group %s: failed to assign partition %q in destination: %v", job.Code, partition, err)
		}
	}
}
