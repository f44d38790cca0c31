package main

import (
	"fmt"
	"path/filepath"

	"github.com/hakim/subsift/internal/diff"
	"github.com/hakim/subsift/internal/report"
	"github.com/hakim/subsift/internal/storage"
	"github.com/spf13/cobra"
)

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Compare two classification runs and report what changed",
	Long: `Compare the latest classification run against a previous one.

This command loads the structured sites.json from two run directories, computes
the delta (new, removed, and changed sites), and writes a markdown change
report into the current run directory:

  - {run_dir}/diff.md

When no --compare directory is supplied the second-most-recent classify run is
located automatically via the run database.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Step 1: Get flags
		runDir, _ := cmd.Flags().GetString("run-dir")
		compareDir, _ := cmd.Flags().GetString("compare")

		// Step 2: Config check
		if cfg == nil {
			return fmt.Errorf("config not loaded. Run 'subsift init' first to create config")
		}

		// Step 3: Resolve run directories from history when not given
		if runDir == "" || compareDir == "" {
			latest, previous, err := recentClassifyDirs(runDir)
			if err != nil {
				return err
			}
			if runDir == "" {
				runDir = latest
			}
			if compareDir == "" {
				if previous == "" {
					fmt.Printf("[!] No previous classify run found for comparison\n")
					return nil
				}
				compareDir = previous
			}
		}

		fmt.Printf("[*] Current run directory:  %s\n", runDir)
		fmt.Printf("[*] Previous run directory: %s\n", compareDir)

		// Step 4: Load both snapshots
		currentSnap, err := diff.LoadSnapshot(runDir)
		if err != nil {
			return fmt.Errorf("loading current snapshot: %w", err)
		}

		previousSnap, err := diff.LoadSnapshot(compareDir)
		if err != nil {
			return fmt.Errorf("loading previous snapshot: %w", err)
		}

		fmt.Printf("[*] Current:  %d sites\n", len(currentSnap.Sites))
		fmt.Printf("[*] Previous: %d sites\n", len(previousSnap.Sites))

		// Step 5: Compute diff
		result := diff.ComputeDiff(currentSnap, previousSnap)

		// Step 6: Write diff markdown report
		reportPath := filepath.Join(runDir, "diff.md")
		if err := report.WriteDiffReport(result, reportPath); err != nil {
			return fmt.Errorf("writing diff report: %w", err)
		}
		fmt.Printf("[+] Diff report written to %s\n", reportPath)

		// Step 7: Print summary
		fmt.Println()
		fmt.Printf("[+] Diff complete!\n")
		fmt.Printf("    Sites:   +%d new, -%d removed\n",
			len(result.NewSites), len(result.RemovedSites))
		fmt.Printf("    Changed: %d\n", len(result.ChangedSites))

		return nil
	},
}

// recentClassifyDirs returns the output directories of the most recent
// classify run and the one immediately before it. When currentDir is
// non-empty, "previous" means the newest run whose directory differs from it.
// The second return value is "" when no prior run exists.
func recentClassifyDirs(currentDir string) (string, string, error) {
	store, err := storage.NewStore(cfg.DBPath)
	if err != nil {
		return "", "", fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	runs, err := store.ListRuns("classify")
	if err != nil {
		return "", "", fmt.Errorf("listing classify runs: %w", err)
	}

	latest := currentDir
	var previous string
	for _, run := range runs {
		if run.OutDir == "" {
			continue
		}
		if latest == "" {
			latest = run.OutDir
			continue
		}
		if run.OutDir != latest {
			previous = run.OutDir
			break
		}
	}

	if latest == "" {
		return "", "", fmt.Errorf("no classify runs recorded. Run 'subsift classify' first")
	}

	return latest, previous, nil
}

func init() {
	diffCmd.Flags().String("run-dir", "", "Current run directory (auto-detects latest if empty)")
	diffCmd.Flags().String("compare", "", "Previous run directory to compare against (auto-detects second-latest if empty)")
	rootCmd.AddCommand(diffCmd)
}
