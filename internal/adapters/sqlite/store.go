// Package sqlite contains SQLite implementations of the model-store and
// artifact ports.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/worksort/internal/models"
	"github.com/example/worksort/internal/ports/secondary"
)

// Store implements secondary.ModelStore against a local SQLite model
// database.
type Store struct {
	db *sql.DB
}

// NewStore creates a new SQLite model store adapter.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

const itemColumns = `
	i.id, i.category, i.is_type, i.view_scoped, i.type_name, i.partition_locked,
	COALESCE(p.name, '')
`

func scanItem(row interface{ Scan(...any) error }) (*secondary.ItemRecord, error) {
	var (
		record     secondary.ItemRecord
		category   string
		isType     int
		viewScoped int
		locked     int
	)
	err := row.Scan(&record.ID, &category, &isType, &viewScoped, &record.TypeName, &locked, &record.Partition)
	if err != nil {
		return nil, err
	}
	record.Category = models.Category(category)
	record.HasCategory = category != ""
	record.IsType = isType != 0
	record.ViewScoped = viewScoped != 0
	record.PartitionReadOnly = locked != 0
	return &record, nil
}

// Item retrieves a single item by id.
func (s *Store) Item(ctx context.Context, id models.ItemID) (*secondary.ItemRecord, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+itemColumns+" FROM items i LEFT JOIN partitions p ON p.id = i.partition_id WHERE i.id = ?",
		id,
	)
	record, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, secondary.ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item %d: %w", id, err)
	}
	return record, nil
}

// MonitoredItems enumerates all model items subject to assignment: every
// non-type row.
func (s *Store) MonitoredItems(ctx context.Context) ([]*secondary.ItemRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+itemColumns+" FROM items i LEFT JOIN partitions p ON p.id = i.partition_id WHERE i.is_type = 0 ORDER BY i.id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list monitored items: %w", err)
	}
	defer rows.Close()
	return collectItems(rows)
}

// ItemsByCategory enumerates items of one category.
func (s *Store) ItemsByCategory(ctx context.Context, category models.Category) ([]*secondary.ItemRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+itemColumns+" FROM items i LEFT JOIN partitions p ON p.id = i.partition_id WHERE i.category = ? ORDER BY i.id",
		string(category),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list items by category: %w", err)
	}
	defer rows.Close()
	return collectItems(rows)
}

func collectItems(rows *sql.Rows) ([]*secondary.ItemRecord, error) {
	var items []*secondary.ItemRecord
	for rows.Next() {
		record, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, record)
	}
	return items, rows.Err()
}

// ItemText reads a string attribute on the item itself.
func (s *Store) ItemText(ctx context.Context, id models.ItemID, attr string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM item_attrs WHERE item_id = ? AND name = ?",
		id, attr,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read attribute %q of item %d: %w", attr, id, err)
	}
	return value, true, nil
}

// TypeText reads a string attribute on the item's type definition.
func (s *Store) TypeText(ctx context.Context, id models.ItemID, attr string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT a.value FROM item_attrs a
		 JOIN items i ON i.type_id = a.item_id
		 WHERE i.id = ? AND a.name = ?`,
		id, attr,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read type attribute %q of item %d: %w", attr, id, err)
	}
	return value, true, nil
}

// SetPartition rewrites the item's partition field, creating the
// partition row if needed. A locked field returns ErrPartitionReadOnly.
func (s *Store) SetPartition(ctx context.Context, id models.ItemID, partition string) error {
	var locked int
	err := s.db.QueryRowContext(ctx, "SELECT partition_locked FROM items WHERE id = ?", id).Scan(&locked)
	if err == sql.ErrNoRows {
		return secondary.ErrItemNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check item %d: %w", id, err)
	}
	if locked != 0 {
		return secondary.ErrPartitionReadOnly
	}

	if err := s.EnsurePartition(ctx, partition); err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		"UPDATE items SET partition_id = (SELECT id FROM partitions WHERE name = ?) WHERE id = ?",
		partition, id,
	)
	if err != nil {
		return fmt.Errorf("failed to set partition of item %d: %w", id, err)
	}
	return nil
}

// PartitionMembers enumerates item ids currently in the named partition.
func (s *Store) PartitionMembers(ctx context.Context, partition string) ([]models.ItemID, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT i.id FROM items i JOIN partitions p ON p.id = i.partition_id WHERE p.name = ? ORDER BY i.id`,
		partition,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list members of %q: %w", partition, err)
	}
	defer rows.Close()

	var ids []models.ItemID
	for rows.Next() {
		var id models.ItemID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan member id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// EnsurePartition creates the partition if absent. Name comparison is
// case-insensitive via the schema's collation.
func (s *Store) EnsurePartition(ctx context.Context, name string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO partitions (name) VALUES (?) ON CONFLICT(name) DO NOTHING",
		name,
	)
	if err != nil {
		return fmt.Errorf("failed to create partition %q: %w", name, err)
	}
	return nil
}

// ListPartitions returns all partition names ordered alphabetically.
func (s *Store) ListPartitions(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM partitions ORDER BY name COLLATE NOCASE")
	if err != nil {
		return nil, fmt.Errorf("failed to list partitions: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan partition name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// RunExclusive wraps fn in one exclusive transaction. The pool is pinned
// to a single connection (see db.Open), so the bare transaction
// statements apply to every store call fn makes.
func (s *Store) RunExclusive(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, err := s.db.ExecContext(ctx, "BEGIN IMMEDIATE"); err != nil {
		return fmt.Errorf("failed to begin exclusive transaction: %w", err)
	}
	if err := fn(ctx); err != nil {
		if _, rbErr := s.db.ExecContext(ctx, "ROLLBACK"); rbErr != nil {
			return fmt.Errorf("rollback failed (%v) after: %w", rbErr, err)
		}
		return err
	}
	if _, err := s.db.ExecContext(ctx, "COMMIT"); err != nil {
		return fmt.Errorf("failed to commit exclusive transaction: %w", err)
	}
	return nil
}

// CopyItems copies the ids into the destination artifact as one batch:
// either every id lands or none does. Referenced type definitions travel
// along with their instances.
func (s *Store) CopyItems(ctx context.Context, ids []models.ItemID, dst secondary.Artifact) error {
	art, ok := dst.(*Artifact)
	if !ok {
		return fmt.Errorf("destination is not a sqlite artifact (got %T)", dst)
	}

	tx, err := art.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin artifact transaction: %w", err)
	}
	defer tx.Rollback()

	for _, id := range ids {
		if err := s.copyOne(ctx, tx, id); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit artifact transaction: %w", err)
	}
	return nil
}

// copyOne copies a single item row, its attributes, and (once) its type
// definition into the artifact transaction.
func (s *Store) copyOne(ctx context.Context, tx *sql.Tx, id models.ItemID) error {
	var (
		category   string
		isType     int
		viewScoped int
		typeID     sql.NullInt64
		typeName   string
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT category, is_type, view_scoped, type_id, type_name FROM items WHERE id = ?", id,
	).Scan(&category, &isType, &viewScoped, &typeID, &typeName)
	if err == sql.ErrNoRows {
		return &models.TransferError{ID: id, Reason: "item vanished from source store"}
	}
	if err != nil {
		return &models.TransferError{ID: id, Reason: err.Error()}
	}

	if typeID.Valid {
		if err := s.copyOne(ctx, tx, models.ItemID(typeID.Int64)); err != nil {
			return err
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO items (id, category, is_type, view_scoped, type_id, type_name)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO NOTHING`,
		id, category, isType, viewScoped, typeID, typeName,
	)
	if err != nil {
		return &models.TransferError{ID: id, Category: models.Category(category), Reason: err.Error()}
	}

	attrs, err := s.db.QueryContext(ctx, "SELECT name, value FROM item_attrs WHERE item_id = ?", id)
	if err != nil {
		return &models.TransferError{ID: id, Category: models.Category(category), Reason: err.Error()}
	}
	defer attrs.Close()
	for attrs.Next() {
		var name, value string
		if err := attrs.Scan(&name, &value); err != nil {
			return &models.TransferError{ID: id, Category: models.Category(category), Reason: err.Error()}
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO item_attrs (item_id, name, value) VALUES (?, ?, ?) ON CONFLICT(item_id, name) DO NOTHING",
			id, name, value,
		)
		if err != nil {
			return &models.TransferError{ID: id, Category: models.Category(category), Reason: err.Error()}
		}
	}
	return attrs.Err()
}

// SyncAndRelinquish is meaningless for a local file store.
func (s *Store) SyncAndRelinquish(ctx context.Context) error {
	return secondary.ErrSyncUnsupported
}
