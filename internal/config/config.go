// Package config loads the worksort settings file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/example/worksort/internal/core/grouping"
	"github.com/example/worksort/internal/core/transfer"
	"github.com/example/worksort/internal/models"
)

// DefaultFileName is the settings file looked up in the working directory
// when no --config flag is given.
const DefaultFileName = "worksort.yaml"

// Config mirrors the YAML settings file. Rule rows live in a separate CSV
// referenced by RulesFile.
type Config struct {
	ModelPath   string `yaml:"model_path"`  // sqlite model store
	RulesFile   string `yaml:"rules_file"`  // assignment rule CSV
	Destination string `yaml:"destination"` // output directory

	ProjectPrefix string `yaml:"project_prefix"` // leading file-name token
	Suffix        string `yaml:"suffix"`         // token after the group code
	Tag           string `yaml:"tag"`            // trailing token
	Extension     string `yaml:"extension"`      // artifact extension, no dot

	OrphanPartition string `yaml:"orphan_partition"`
	ChunkSize       int    `yaml:"chunk_size"`
	Overwrite       bool   `yaml:"overwrite"`
	ExportOrphans   bool   `yaml:"export_orphans"`
	GroupOrphans    bool   `yaml:"group_orphans"`
	NumberingMode   string `yaml:"numbering_mode"` // "package" or "partition"
	Parallelism     int    `yaml:"parallelism"`
}

// Load reads and parses the settings file, applying defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// WithDefaults returns a copy with zero values filled in.
func (c Config) WithDefaults() Config {
	result := c

	if result.Destination == "" {
		result.Destination = "out"
	}
	if result.Extension == "" {
		result.Extension = "db"
	}
	if result.OrphanPartition == "" {
		result.OrphanPartition = models.OrphanPartition
	}
	if result.ChunkSize == 0 {
		result.ChunkSize = transfer.DefaultChunkSize
	}
	if result.NumberingMode == "" {
		result.NumberingMode = string(grouping.ModePackage)
	}
	if result.Parallelism == 0 {
		result.Parallelism = 1
	}

	return result
}

// Validate rejects settings the engine cannot run with.
func (c Config) Validate() error {
	if c.ModelPath == "" {
		return fmt.Errorf("config: model_path is required")
	}
	if c.RulesFile == "" {
		return fmt.Errorf("config: rules_file is required")
	}
	if _, err := c.Mode(); err != nil {
		return err
	}
	if c.ChunkSize < 1 {
		return fmt.Errorf("config: chunk_size must be positive, got %d", c.ChunkSize)
	}
	if c.Parallelism < 1 {
		return fmt.Errorf("config: parallelism must be positive, got %d", c.Parallelism)
	}
	return nil
}

// Mode resolves the numbering-mode setting.
func (c Config) Mode() (grouping.NumberingMode, error) {
	switch c.NumberingMode {
	case string(grouping.ModePackage):
		return grouping.ModePackage, nil
	case string(grouping.ModePartition):
		return grouping.ModePartition, nil
	default:
		return "", fmt.Errorf("config: numbering_mode must be %q or %q, got %q",
			grouping.ModePackage, grouping.ModePartition, c.NumberingMode)
	}
}

// Naming builds the file-naming settings for export.
func (c Config) Naming() grouping.FileNaming {
	return grouping.FileNaming{
		ProjectPrefix: c.ProjectPrefix,
		Suffix:        c.Suffix,
		Tag:           c.Tag,
		Extension:     c.Extension,
	}
}

// Save writes the settings file. Used by `worksort init` to lay down a
// starter configuration.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
