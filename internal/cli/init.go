package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/worksort/internal/adapters/rules"
	"github.com/example/worksort/internal/config"
	"github.com/example/worksort/internal/db"
)

// starterRules is the header-only rule file laid down by init.
var starterRules = fmt.Sprintf("%s,%s,%s,%s\n",
	rules.ColTargetPartition, rules.ColSourcePattern, rules.ColDescription, rules.ColExportCode)

// InitCmd returns the init command: lay down a starter workspace with an
// empty model store, a settings file, and a rule file skeleton.
func InitCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a starter workspace",
		Long: `Create a worksort workspace in the target directory: an empty sqlite
model store with the full schema, a settings file with defaults, and a
rule CSV containing only the header row. Existing files are left alone.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create workspace directory: %w", err)
			}

			modelPath := filepath.Join(dir, "model.db")
			rulesPath := filepath.Join(dir, "rules.csv")
			configPath := filepath.Join(dir, config.DefaultFileName)

			if _, err := os.Stat(modelPath); os.IsNotExist(err) {
				database, err := db.Open(modelPath)
				if err != nil {
					return fmt.Errorf("failed to create model store: %w", err)
				}
				database.Close()
				fmt.Printf("created %s\n", modelPath)
			}

			if _, err := os.Stat(rulesPath); os.IsNotExist(err) {
				if err := os.WriteFile(rulesPath, []byte(starterRules), 0o644); err != nil {
					return fmt.Errorf("failed to write rule file: %w", err)
				}
				fmt.Printf("created %s\n", rulesPath)
			}

			if _, err := os.Stat(configPath); os.IsNotExist(err) {
				cfg := config.Config{
					ModelPath:   modelPath,
					RulesFile:   rulesPath,
					Destination: filepath.Join(dir, "out"),
				}.WithDefaults()
				if err := config.Save(configPath, &cfg); err != nil {
					return err
				}
				fmt.Printf("created %s\n", configPath)
			}

			color.New(color.FgHiGreen).Println("workspace ready")
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "workspace directory")
	return cmd
}
