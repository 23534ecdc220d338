package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/worksort/internal/config"
	"github.com/example/worksort/internal/core/grouping"
	"github.com/example/worksort/internal/models"
	"github.com/example/worksort/internal/ports/secondary"
	"github.com/example/worksort/internal/wire"
)

// ExportCmd returns the export command: package up the current partition
// assignments without re-classifying.
func ExportCmd() *cobra.Command {
	var (
		configPath    string
		overwrite     bool
		exportOrphans bool
		mode          string
		parallelism   int
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export package groups from current assignments",
		Long: `Build the export group index from the partitions the rule file names,
reading membership as it stands in the model store, then write one output
artifact per group. Use after a previous classify, or when assignments
were made by hand.`,
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

			loaded, warnings, err := wire.RuleSource(cfg).Load(cmd.Context())
			if err != nil {
				return err
			}
			for _, warning := range warnings {
				color.New(color.FgYellow).Printf("warning: %s\n", warning)
			}

			groups, err := collectGroups(cmd.Context(), container.Store, loaded)
			if err != nil {
				return err
			}

			results, err := container.Export.Export(cmd.Context(), groups, exportOptions(cfg))
			if err != nil {
				return err
			}
			renderGroups(results)
			fmt.Printf("\nRun log: %s\n", container.RunLog.Path())
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultFileName, "settings file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace existing output files")
	cmd.Flags().BoolVar(&exportOrphans, "export-orphans", false, "also export the orphan partition")
	cmd.Flags().StringVar(&mode, "mode", "", "numbering mode: package or partition")
	cmd.Flags().IntVar(&parallelism, "parallelism", 0, "concurrent group exports")
	return cmd
}

// collectGroups rebuilds the group index from the store's current state:
// every partition an exportable rule targets, grouped under the rule's
// normalized code, plus the classifier-driven partitions no rule
// references. Rules whose code normalizes away derive one from the
// partition name, the same resolution a classify run performs.
func collectGroups(ctx context.Context, store secondary.ModelStore, loaded []models.Rule) (models.GroupIndex, error) {
	index := make(models.GroupIndex)
	seen := make(map[string]bool)
	for _, rule := range loaded {
		if !rule.Usable() || !rule.Exportable() {
			continue
		}
		key := strings.ToLower(rule.TargetPartition)
		if seen[key] {
			continue
		}
		seen[key] = true

		code := grouping.NormalizeCode(rule.ExportCode)
		if code == "" {
			code = grouping.DeriveCode(rule.TargetPartition)
		}
		if err := addMembers(ctx, store, index, code, rule.TargetPartition); err != nil {
			return nil, err
		}
	}

	for _, partition := range models.SpecialPartitions() {
		if seen[strings.ToLower(partition)] {
			continue
		}
		if err := addMembers(ctx, store, index, grouping.DeriveCode(partition), partition); err != nil {
			return nil, err
		}
	}
	return index, nil
}

func addMembers(ctx context.Context, store secondary.ModelStore, index models.GroupIndex, code, partition string) error {
	members, err := store.PartitionMembers(ctx, partition)
	if err != nil {
		return fmt.Errorf("failed to read partition %q: %w", partition, err)
	}
	for _, id := range members {
		index.Add(code, partition, id)
	}
	return nil
}
