// Package sqlite_test contains integration tests for the SQLite store and
// artifact adapters.
//
// All setup goes through setupTestDB and the seed* helpers, which load the
// authoritative schema via db.GetSchemaSQL() so test and production schemas
// cannot drift.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/worksort/internal/db"
	"github.com/example/worksort/internal/models"
)

// setupTestDB creates an in-memory model database with the authoritative
// schema. The pool is pinned to one connection, matching db.Open, so
// exclusive-transaction behavior is the same as in production.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	testDB.SetMaxOpenConns(1)

	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedPartition inserts a partition and returns its row id.
func seedPartition(t *testing.T, database *sql.DB, name string) int64 {
	t.Helper()
	res, err := database.Exec("INSERT INTO partitions (name) VALUES (?)", name)
	if err != nil {
		t.Fatalf("failed to seed partition %q: %v", name, err)
	}
	id, _ := res.LastInsertId()
	return id
}

// seedItem inserts an instance item in the named partition (empty for none).
func seedItem(t *testing.T, database *sql.DB, id models.ItemID, category models.Category, partition string) {
	t.Helper()
	var partitionID any
	if partition != "" {
		var pid int64
		err := database.QueryRow("SELECT id FROM partitions WHERE name = ?", partition).Scan(&pid)
		if err == sql.ErrNoRows {
			pid = seedPartition(t, database, partition)
		} else if err != nil {
			t.Fatalf("failed to resolve partition %q: %v", partition, err)
		}
		partitionID = pid
	}
	_, err := database.Exec(
		"INSERT INTO items (id, category, is_type, view_scoped, partition_id) VALUES (?, ?, 0, 0, ?)",
		id, string(category), partitionID,
	)
	if err != nil {
		t.Fatalf("failed to seed item %d: %v", id, err)
	}
}

// seedType inserts a type definition item with a display name.
func seedType(t *testing.T, database *sql.DB, id models.ItemID, category models.Category, typeName string) {
	t.Helper()
	_, err := database.Exec(
		"INSERT INTO items (id, category, is_type, view_scoped, type_name) VALUES (?, ?, 1, 0, ?)",
		id, string(category), typeName,
	)
	if err != nil {
		t.Fatalf("failed to seed type %d: %v", id, err)
	}
}

// linkType points an instance item at its type definition.
func linkType(t *testing.T, database *sql.DB, item, typeID models.ItemID) {
	t.Helper()
	if _, err := database.Exec("UPDATE items SET type_id = ? WHERE id = ?", typeID, item); err != nil {
		t.Fatalf("failed to link item %d to type %d: %v", item, typeID, err)
	}
}

// seedAttr sets a string attribute on an item.
func seedAttr(t *testing.T, database *sql.DB, id models.ItemID, name, value string) {
	t.Helper()
	_, err := database.Exec(
		"INSERT INTO item_attrs (item_id, name, value) VALUES (?, ?, ?)",
		id, name, value,
	)
	if err != nil {
		t.Fatalf("failed to seed attribute %q on item %d: %v", name, id, err)
	}
}
