// Package secondary defines the secondary ports (driven adapters) for the
// engine: the model store, artifact creation, the rule source, and the run
// log. These are the interfaces through which the engine drives external
// systems.
package secondary

import (
	"context"
	"errors"

	"github.com/example/worksort/internal/models"
)

// Attribute names the engine reads from items and their types.
const (
	AttrClassification = "Classification"
	AttrAbbreviation   = "Abbreviation"
	AttrSystemName     = "System Name"
)

// ErrItemNotFound is returned when an item id does not resolve.
var ErrItemNotFound = errors.New("item not found")

// ErrPartitionReadOnly is returned when an item's partition field cannot
// be written. The engine logs and moves on; it never forces the write.
var ErrPartitionReadOnly = errors.New("partition field is read-only")

// ErrSyncUnsupported is returned by SyncAndRelinquish on stores that are
// not shared. Callers treat it as a no-op, not a failure.
var ErrSyncUnsupported = errors.New("store is not shared")

// ItemRecord is the engine's view of one item in the model store. Items
// are never created or destroyed by the engine; only Partition is written
// back.
type ItemRecord struct {
	ID                models.ItemID
	Category          models.Category
	HasCategory       bool
	IsType            bool
	ViewScoped        bool
	Partition         string
	PartitionReadOnly bool
	TypeName          string // family/type display name
}

// ModelStore is the narrow query/mutate interface onto the host model.
//
// The engine mutates the store in place during a classification run and
// requires exclusive access for that window; RunExclusive wraps the whole
// preserve/apply/orphan sequence in one logical transaction.
type ModelStore interface {
	// Item resolves a single item. Returns ErrItemNotFound for dead ids.
	Item(ctx context.Context, id models.ItemID) (*ItemRecord, error)

	// MonitoredItems enumerates every model item subject to assignment.
	MonitoredItems(ctx context.Context) ([]*ItemRecord, error)

	// ItemsByCategory enumerates items of one category.
	ItemsByCategory(ctx context.Context, category models.Category) ([]*ItemRecord, error)

	// ItemText reads a string attribute on the item itself. The bool
	// reports presence.
	ItemText(ctx context.Context, id models.ItemID, attr string) (string, bool, error)

	// TypeText reads a string attribute on the item's type.
	TypeText(ctx context.Context, id models.ItemID, attr string) (string, bool, error)

	// SetPartition rewrites the item's partition field. Returns
	// ErrPartitionReadOnly when the field is locked.
	SetPartition(ctx context.Context, id models.ItemID, partition string) error

	// PartitionMembers enumerates item ids currently in a partition,
	// matched case-insensitively.
	PartitionMembers(ctx context.Context, partition string) ([]models.ItemID, error)

	// EnsurePartition creates the partition if absent.
	EnsurePartition(ctx context.Context, name string) error

	// ListPartitions returns all partition names.
	ListPartitions(ctx context.Context) ([]string, error)

	// RunExclusive runs fn inside one exclusive logical transaction.
	RunExclusive(ctx context.Context, fn func(ctx context.Context) error) error

	// CopyItems copies the given ids into the destination artifact as one
	// batch operation. It may partially or wholly fail; failures should
	// carry *models.TransferError for categorization where possible.
	CopyItems(ctx context.Context, ids []models.ItemID, dst Artifact) error

	// SyncAndRelinquish synchronizes a shared store and releases borrowed
	// ownership. Best-effort: ErrSyncUnsupported on local stores.
	SyncAndRelinquish(ctx context.Context) error
}

// Artifact is one independent output store under construction.
type Artifact interface {
	// SupportsPartitions reports whether the destination can hold
	// partition assignments.
	SupportsPartitions() bool

	// AssignPartition moves already-copied ids into the named partition,
	// creating it if needed.
	AssignPartition(ctx context.Context, ids []models.ItemID, partition string) error

	// SaveAs persists the artifact at the target path.
	SaveAs(ctx context.Context, path string) error

	// Close releases the artifact without saving anything further.
	Close() error
}

// ArtifactFactory creates fresh, empty output artifacts.
type ArtifactFactory interface {
	NewArtifact(ctx context.Context) (Artifact, error)
}
