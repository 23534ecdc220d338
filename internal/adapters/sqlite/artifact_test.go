package sqlite_test

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/example/worksort/internal/adapters/sqlite"
	"github.com/example/worksort/internal/models"
)

func TestArtifact_SaveAs(t *testing.T) {
	dir := t.TempDir()
	factory := sqlite.NewArtifactFactory(dir)
	ctx := context.Background()

	database := setupTestDB(t)
	store := sqlite.NewStore(database)
	seedItem(t, database, 1, models.CategoryDuctCurve, "HW_Supply_01")
	seedItem(t, database, 2, models.CategoryDuctCurve, "HW_Supply_01")

	art, err := factory.NewArtifact(ctx)
	if err != nil {
		t.Fatalf("NewArtifact failed: %v", err)
	}
	defer art.Close()

	if !art.SupportsPartitions() {
		t.Fatal("SupportsPartitions = false, want true")
	}

	if err := store.CopyItems(ctx, []models.ItemID{1, 2}, art); err != nil {
		t.Fatalf("CopyItems failed: %v", err)
	}
	if err := art.AssignPartition(ctx, []models.ItemID{1, 2}, "HW_Supply_01"); err != nil {
		t.Fatalf("AssignPartition failed: %v", err)
	}

	target := filepath.Join(dir, "PRJ_HWS_Model_Part_001_Rev.db")
	if err := art.SaveAs(ctx, target); err != nil {
		t.Fatalf("SaveAs failed: %v", err)
	}

	saved, err := sql.Open("sqlite3", target)
	if err != nil {
		t.Fatalf("failed to reopen saved artifact: %v", err)
	}
	defer saved.Close()

	var count int
	err = saved.QueryRow(
		"SELECT COUNT(*) FROM items i JOIN partitions p ON p.id = i.partition_id WHERE p.name = ?",
		"HW_Supply_01",
	).Scan(&count)
	if err != nil {
		t.Fatalf("failed to query saved artifact: %v", err)
	}
	if count != 2 {
		t.Errorf("saved artifact holds %d partition members, want 2", count)
	}
}

func TestArtifact_CloseDiscardsUnsaved(t *testing.T) {
	dir := t.TempDir()
	factory := sqlite.NewArtifactFactory(dir)

	art, err := factory.NewArtifact(context.Background())
	if err != nil {
		t.Fatalf("NewArtifact failed: %v", err)
	}
	if err := art.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read work dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("work dir holds %d leftover files, want none", len(entries))
	}
}

func TestArtifact_CloseAfterSaveKeepsFile(t *testing.T) {
	dir := t.TempDir()
	factory := sqlite.NewArtifactFactory(dir)
	ctx := context.Background()

	art, err := factory.NewArtifact(ctx)
	if err != nil {
		t.Fatalf("NewArtifact failed: %v", err)
	}

	target := filepath.Join(dir, "out.db")
	if err := art.SaveAs(ctx, target); err != nil {
		t.Fatalf("SaveAs failed: %v", err)
	}
	if err := art.Close(); err != nil {
		t.Fatalf("Close after SaveAs failed: %v", err)
	}

	if _, err := os.Stat(target); err != nil {
		t.Errorf("saved artifact missing: %v", err)
	}
}
