package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/worksort/internal/config"
	"github.com/example/worksort/internal/wire"
)

// ClassifyCmd returns the classify command: run the assignment phases
// without exporting anything.
func ClassifyCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Assign items to partitions without exporting",
		Long: `Run the preserve, apply, and orphan phases against the model store and
report the resulting package groups. No output artifacts are written.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadSetup(configPath)
			if err != nil {
				return err
			}
			defer logger.Sync()

			container, err := wire.NewContainer(cfg, logger)
			if err != nil {
				return err
			}
			defer container.Close()

			outcome, err := container.Assignment.Classify(cmd.Context(), classifyOptions(cfg))
			if err != nil {
				return err
			}

			renderStats(outcome.Stats)
			fmt.Println()

			for _, warning := range outcome.RuleErrors {
				color.New(color.FgYellow).Printf("warning: %s\n", warning)
			}

			codes := outcome.Groups.Codes()
			if len(codes) == 0 {
				fmt.Println("No export groups formed.")
				return nil
			}
			fmt.Println("Groups")
			for _, code := range codes {
				fmt.Printf("  %s: %d items\n", code, outcome.Groups[code].Len())
			}
			fmt.Printf("\nRun log: %s\n", container.RunLog.Path())
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultFileName, "settings file")
	return cmd
}
