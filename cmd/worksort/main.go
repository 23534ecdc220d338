package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/worksort/internal/cli"
	"github.com/example/worksort/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "worksort",
		Short:   "worksort - rule-driven partition assignment and export",
		Version: version.String(),
		Long: `worksort classifies the items of a model store into named partitions
using a CSV rule file, then exports each package group to its own output
artifact with deterministic file names.`,
	}

	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.RunCmd())
	rootCmd.AddCommand(cli.ClassifyCmd())
	rootCmd.AddCommand(cli.ExportCmd())
	rootCmd.AddCommand(cli.RulesCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
