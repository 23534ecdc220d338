// Package transfer holds the pure parts of resilient bulk transfer:
// pre-filter rules, chunk planning, and failure categorization. The
// store-facing retry loop lives in the app layer.
package transfer

import (
	"errors"

	"github.com/example/worksort/internal/models"
)

// DefaultChunkSize is the retry granularity after a whole-set copy fails.
const DefaultChunkSize = 50

// ItemMeta is the slice of item state the pre-filter needs.
type ItemMeta struct {
	ID          models.ItemID
	Valid       bool
	IsType      bool
	ViewScoped  bool
	HasCategory bool
	Category    models.Category
}

// SkipReasonFor returns the pre-filter verdict for one item. The second
// return is false when the item is transferable.
func SkipReasonFor(m ItemMeta) (models.SkipReason, bool) {
	switch {
	case !m.Valid:
		return models.SkipInvalidID, true
	case m.IsType:
		// Type definitions travel automatically with their instances.
		return models.SkipTypeDefinition, true
	case m.ViewScoped:
		return models.SkipViewScoped, true
	case !m.HasCategory:
		return models.SkipNoCategory, true
	case m.Category.IsNonTransferable():
		return models.SkipNonTransferable, true
	case m.Category.IsAggregateSystem():
		return models.SkipAggregateSystem, true
	}
	return "", false
}

// Prefilter partitions the candidate set into transferable ids and a
// categorized count of everything dropped.
func Prefilter(metas []ItemMeta) ([]models.ItemID, map[models.SkipReason]int) {
	skipped := make(map[models.SkipReason]int)
	keep := make([]models.ItemID, 0, len(metas))
	for _, m := range metas {
		if reason, skip := SkipReasonFor(m); skip {
			skipped[reason]++
			continue
		}
		keep = append(keep, m.ID)
	}
	return keep, skipped
}

// Chunks splits ids into fixed-size runs, preserving order. A size of
// zero or less falls back to DefaultChunkSize.
func Chunks(ids []models.ItemID, size int) [][]models.ItemID {
	if size <= 0 {
		size = DefaultChunkSize
	}
	var out [][]models.ItemID
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		out = append(out, ids[start:end])
	}
	return out
}

// FailureCategory buckets a copy error by item category, best-effort.
// Errors that carry no category information land in the Unknown bucket.
func FailureCategory(err error) string {
	var te *models.TransferError
	if errors.As(err, &te) && te.Category != "" {
		return string(te.Category)
	}
	return models.FailureUnknown
}
