package main

import (
	"fmt"

	"github.com/hakim/subsift/internal/models"
	"github.com/hakim/subsift/internal/storage"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show run history for a stage",
	Long: `Display a formatted table of past runs for a stage (classify or a11y).

Runs are listed newest-first. Each row shows the run ID (truncated), start
time, completion status, and candidate/reported counts.

Use --limit to cap the number of rows shown (default: 10).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Step 1: Get flags
		stage, _ := cmd.Flags().GetString("stage")
		limit, _ := cmd.Flags().GetInt("limit")

		// Step 2: Config check
		if cfg == nil {
			return fmt.Errorf("config not loaded. Run 'subsift init' first to create config")
		}

		// Step 3: Open bbolt store
		store, err := storage.NewStore(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer store.Close()

		// Step 4: List runs (sorted newest-first by store.ListRuns)
		runs, err := store.ListRuns(stage)
		if err != nil {
			return fmt.Errorf("listing runs for %s: %w", stage, err)
		}

		if len(runs) == 0 {
			fmt.Printf("No run history found for stage %q\n", stage)
			return nil
		}

		// Step 5: Apply limit
		if limit > 0 && len(runs) > limit {
			runs = runs[:limit]
		}

		// Step 6: Print formatted table
		const separator = "────────────────────────────────────────────────────────────────────────"

		fmt.Printf("\nRun History for %s\n", stage)
		fmt.Println(separator)
		fmt.Printf("  %-3s  %-12s  %-20s  %-10s  %-10s  %s\n",
			"#", "Run ID", "Started", "Status", "Candidates", "Reported")
		fmt.Println(separator)

		for i, run := range runs {
			fmt.Printf("  %-3d  %-12s  %-20s  %-10s  %-10d  %d\n",
				i+1,
				shortRunID(run.ID),
				run.StartedAt.UTC().Format("2006-01-02 15:04"),
				formatStatus(run.Status),
				run.Candidates,
				run.Reported)
		}

		fmt.Println(separator)
		fmt.Printf("Total: %d run(s)\n\n", len(runs))

		return nil
	},
}

// shortRunID returns the first 8 characters of a UUID followed by "..." for
// compact table display. Falls back to the full ID when shorter than 8 chars.
func shortRunID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8] + "..."
}

// formatStatus converts a RunStatus to a consistent lowercase display string.
func formatStatus(s models.RunStatus) string {
	switch s {
	case models.StatusComplete:
		return "complete"
	case models.StatusFailed:
		return "failed"
	case models.StatusRunning:
		return "running"
	case models.StatusPending:
		return "pending"
	default:
		return string(s)
	}
}

func init() {
	historyCmd.Flags().StringP("stage", "s", "classify", "Stage to list runs for (classify or a11y)")
	historyCmd.Flags().Int("limit", 10, "Maximum number of runs to display")
	rootCmd.AddCommand(historyCmd)
}
