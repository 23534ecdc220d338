package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/worksort/internal/core/grouping"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, strings.Join([]string{
		"model_path: model.db",
		"rules_file: rules.csv",
		"project_prefix: PRJ",
	}, "\n"))

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Destination != "out" {
		t.Errorf("Destination = %q, want default %q", cfg.Destination, "out")
	}
	if cfg.OrphanPartition != "QC" {
		t.Errorf("OrphanPartition = %q, want default %q", cfg.OrphanPartition, "QC")
	}
	if cfg.ChunkSize != 50 {
		t.Errorf("ChunkSize = %d, want default 50", cfg.ChunkSize)
	}
	if cfg.NumberingMode != "package" {
		t.Errorf("NumberingMode = %q, want default %q", cfg.NumberingMode, "package")
	}
	if cfg.Parallelism != 1 {
		t.Errorf("Parallelism = %d, want default 1", cfg.Parallelism)
	}
	if cfg.Extension != "db" {
		t.Errorf("Extension = %q, want default %q", cfg.Extension, "db")
	}
}

func TestLoadKeepsExplicitValues(t *testing.T) {
	path := writeConfig(t, strings.Join([]string{
		"model_path: model.db",
		"rules_file: rules.csv",
		"destination: /srv/packages",
		"orphan_partition: Review",
		"chunk_size: 25",
		"numbering_mode: partition",
		"parallelism: 4",
		"overwrite: true",
		"export_orphans: true",
	}, "\n"))

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.OrphanPartition != "Review" {
		t.Errorf("OrphanPartition = %q, want %q", cfg.OrphanPartition, "Review")
	}
	if cfg.ChunkSize != 25 {
		t.Errorf("ChunkSize = %d, want 25", cfg.ChunkSize)
	}
	mode, err := cfg.Mode()
	if err != nil {
		t.Fatalf("Mode failed: %v", err)
	}
	if mode != grouping.ModePartition {
		t.Errorf("Mode = %q, want partition", mode)
	}
	if !cfg.Overwrite || !cfg.ExportOrphans {
		t.Error("boolean flags not carried through")
	}
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "missing model path",
			content: "rules_file: rules.csv",
			want:    "model_path",
		},
		{
			name:    "missing rules file",
			content: "model_path: model.db",
			want:    "rules_file",
		},
		{
			name: "unknown numbering mode",
			content: strings.Join([]string{
				"model_path: model.db",
				"rules_file: rules.csv",
				"numbering_mode: alphabetical",
			}, "\n"),
			want: "numbering_mode",
		},
		{
			name: "negative chunk size",
			content: strings.Join([]string{
				"model_path: model.db",
				"rules_file: rules.csv",
				"chunk_size: -1",
			}, "\n"),
			want: "chunk_size",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("Load succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want mention of %s", err, tt.want)
			}
		})
	}
}

func TestNamingBuildsFileNaming(t *testing.T) {
	cfg := Config{
		ProjectPrefix: "PRJ",
		Suffix:        "Model",
		Tag:           "Rev",
		Extension:     "db",
	}

	naming := cfg.Naming()
	got := naming.FileName("HWS", 1)
	want := "PRJ_HWS_Model_Part_001_Rev.db"
	if got != want {
		t.Errorf("FileName = %q, want %q", got, want)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	cfg := Config{ModelPath: "model.db", RulesFile: "rules.csv"}.WithDefaults()

	if err := Save(path, &cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if *loaded != cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", *loaded, cfg)
	}
}
