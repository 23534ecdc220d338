package cli

import (
	"fmt"
	"sort"

	"github.com/fatih/color"

	"github.com/example/worksort/internal/models"
)

// renderStats prints the classification phase totals.
func renderStats(stats models.AssignmentStats) {
	fmt.Println("Classification")
	fmt.Printf("  Rules processed: %d\n", stats.RuleCount)
	fmt.Printf("  Preserved:       %d\n", stats.Preserved)
	fmt.Printf("  Assigned:        %d\n", stats.Assigned)
	if stats.Orphaned > 0 {
		fmt.Printf("  Orphaned:        %s\n", color.New(color.FgYellow).Sprintf("%d", stats.Orphaned))
	} else {
		fmt.Printf("  Orphaned:        0\n")
	}
}

// renderGroups prints one line per export group with its outcome.
func renderGroups(groups []*models.TransferResult) {
	if len(groups) == 0 {
		fmt.Println("No groups exported.")
		return
	}
	fmt.Println("Export")
	for _, g := range groups {
		switch {
		case g.Saved && g.FailCount() == 0:
			mark := color.New(color.FgHiGreen).Sprint("ok")
			fmt.Printf("  [%s]   %s: %d/%d items -> %s\n", mark, g.Code, g.Transferred, g.Requested, g.ArtifactPath)
		case g.Saved:
			mark := color.New(color.FgYellow).Sprint("part")
			fmt.Printf("  [%s] %s: %d/%d items (%d failed) -> %s\n", mark, g.Code, g.Transferred, g.Requested, g.FailCount(), g.ArtifactPath)
			renderFailures(g)
		default:
			mark := color.New(color.FgRed).Sprint("fail")
			fmt.Printf("  [%s] %s: %s\n", mark, g.Code, g.FailureReason)
		}
		if g.SkipCount() > 0 {
			fmt.Printf("         %d items skipped by pre-filter\n", g.SkipCount())
		}
	}
}

func renderFailures(g *models.TransferResult) {
	categories := make([]string, 0, len(g.Failed))
	for category := range g.Failed {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	for _, category := range categories {
		fmt.Printf("         %s: %d failed\n", category, g.Failed[category])
	}
}

// renderRunResult prints the full run summary.
func renderRunResult(result *models.RunResult) {
	fmt.Printf("Run %s\n\n", result.RunID)
	renderStats(result.Stats)
	fmt.Println()
	renderGroups(result.Groups)
	fmt.Println()

	switch {
	case result.Success && !result.WithErrors:
		color.New(color.FgHiGreen).Printf("Run succeeded: %d groups exported.\n", result.ExportedCount())
	case result.Success:
		color.New(color.FgYellow).Printf("Run completed with errors: %d of %d groups exported.\n",
			result.ExportedCount(), len(result.Groups))
	default:
		color.New(color.FgRed).Printf("Run failed: %s\n", result.LastError)
	}
	if result.LogPath != "" {
		fmt.Printf("Run log: %s\n", result.LogPath)
	}
}
