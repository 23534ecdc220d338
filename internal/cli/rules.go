package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/worksort/internal/adapters/rules"
	"github.com/example/worksort/internal/config"
	"github.com/example/worksort/internal/core/grouping"
)

// RulesCmd returns the rules command: validate and list the rule file.
func RulesCmd() *cobra.Command {
	var (
		configPath string
		rulesFile  string
	)

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Validate and list the assignment rule file",
		Long: `Load the rule CSV the way a run would: mandatory columns are checked,
malformed rows are reported, and the effective rule list is printed with
the export code each rule resolves to.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := rulesFile
			if path == "" {
				cfg, err := config.Load(configPath)
				if err != nil {
					return err
				}
				path = cfg.RulesFile
			}

			return listRules(cmd.Context(), path)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultFileName, "settings file")
	cmd.Flags().StringVar(&rulesFile, "file", "", "rule CSV (overrides the settings file)")
	return cmd
}

func listRules(ctx context.Context, path string) error {
	loaded, warnings, err := rules.NewCSVSource(path).Load(ctx)
	if err != nil {
		return err
	}

	for _, warning := range warnings {
		color.New(color.FgYellow).Printf("warning: %s\n", warning)
	}
	if len(warnings) > 0 {
		fmt.Println()
	}

	if len(loaded) == 0 {
		fmt.Println("No usable rules.")
		return nil
	}

	fmt.Printf("%d usable rules in %s\n\n", len(loaded), path)
	for i, rule := range loaded {
		code := rule.ExportCode
		switch {
		case !rule.Exportable():
			code = color.New(color.FgHiBlack).Sprint("(no export)")
		case code == "":
			code = grouping.DeriveCode(rule.TargetPartition) + " (derived)"
		}

		pattern := rule.SourcePattern
		if !rule.HasPattern() {
			pattern = "(partition name)"
		}
		fmt.Printf("%3d. %-30s %-20s -> %s\n", i+1, rule.TargetPartition, pattern, code)
		if rule.Description != "" {
			fmt.Printf("     %s\n", rule.Description)
		}
	}
	return nil
}
