package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/worksort/internal/config"
	"github.com/example/worksort/internal/ports/primary"
	"github.com/example/worksort/internal/wire"
)

// RunCmd returns the run command: classify the model and export every
// package group in one pass.
func RunCmd() *cobra.Command {
	var (
		configPath    string
		overwrite     bool
		exportOrphans bool
		mode          string
		parallelism   int
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Classify the model and export all package groups",
		Long: `Run the full pipeline: load the rule file, assign every monitored item
to its partition (preserve, apply, orphan phases), then write one output
artifact per export group. Flags override the corresponding settings.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadSetup(configPath)
			if err != nil {
				return err
			}
			defer logger.Sync()
			applyRunFlags(cmd, cfg, overwrite, exportOrphans, mode, parallelism)

			container, err := wire.NewContainer(cfg, logger)
			if err != nil {
				return err
			}
			defer container.Close()

			result, err := container.Run.Run(cmd.Context(), classifyOptions(cfg), exportOptions(cfg))
			if result != nil {
				renderRunResult(result)
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultFileName, "settings file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace existing output files")
	cmd.Flags().BoolVar(&exportOrphans, "export-orphans", false, "also export the orphan partition")
	cmd.Flags().StringVar(&mode, "mode", "", "numbering mode: package or partition")
	cmd.Flags().IntVar(&parallelism, "parallelism", 0, "concurrent group exports")
	return cmd
}

// applyRunFlags folds explicitly set flags into the loaded settings.
func applyRunFlags(cmd *cobra.Command, cfg *config.Config, overwrite, exportOrphans bool, mode string, parallelism int) {
	if cmd.Flags().Changed("overwrite") {
		cfg.Overwrite = overwrite
	}
	if cmd.Flags().Changed("export-orphans") {
		cfg.ExportOrphans = exportOrphans
	}
	if mode != "" {
		cfg.NumberingMode = mode
	}
	if parallelism > 0 {
		cfg.Parallelism = parallelism
	}
}

func classifyOptions(cfg *config.Config) primary.ClassifyOptions {
	return primary.ClassifyOptions{
		OrphanPartition: cfg.OrphanPartition,
		GroupOrphans:    cfg.GroupOrphans,
	}
}

func exportOptions(cfg *config.Config) primary.ExportOptions {
	return primary.ExportOptions{
		Destination:     cfg.Destination,
		ProjectPrefix:   cfg.ProjectPrefix,
		Suffix:          cfg.Suffix,
		Tag:             cfg.Tag,
		Extension:       cfg.Extension,
		Mode:            cfg.NumberingMode,
		IncludeOrphans:  cfg.ExportOrphans,
		OrphanPartition: cfg.OrphanPartition,
		Overwrite:       cfg.Overwrite,
		ChunkSize:       cfg.ChunkSize,
		Parallelism:     cfg.Parallelism,
	}
}
