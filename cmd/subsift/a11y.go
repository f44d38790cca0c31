package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/hakim/subsift/internal/a11y"
	"github.com/hakim/subsift/internal/inspect"
	"github.com/hakim/subsift/internal/models"
	"github.com/hakim/subsift/internal/report"
	"github.com/hakim/subsift/internal/storage"
	"github.com/hakim/subsift/internal/tools"
	"github.com/spf13/cobra"
)

var a11yCmd = &cobra.Command{
	Use:   "a11y",
	Short: "Run a cached accessibility scan for a domain",
	Long: `Audit a domain with pa11y and report its error-level findings.

When the domain's inspection record says it redirects, the redirect target is
scanned instead. Scan results are cached in the configured database; re-running
without --force replays the cached result with no pa11y invocation.

Results are saved to:
  - {results_dir}/a11y_{timestamp}/issues.csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Step 1: Get flags
		domain, _ := cmd.Flags().GetString("domain")
		force, _ := cmd.Flags().GetBool("force")
		timeout, _ := cmd.Flags().GetDuration("timeout")

		// Step 2: Pre-flight check — pa11y must be installed
		pa11yTool := tools.ToolRequirement{
			Name:       "pa11y",
			Binary:     "pa11y",
			InstallCmd: "npm install -g pa11y",
		}
		if cfg != nil && cfg.Tools.Pa11y.Path != "" {
			pa11yTool.Binary = cfg.Tools.Pa11y.Path
		}
		if result := tools.CheckTool(pa11yTool); !result.Found {
			return fmt.Errorf("pa11y not found. Install with: %s", pa11yTool.InstallCmd)
		}

		// Step 3: Verify config was loaded
		if cfg == nil {
			return fmt.Errorf("config not loaded. Run 'subsift init' first to create config")
		}

		// Step 4: Open the store and build the scanner
		store, err := storage.NewStore(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer store.Close()

		scanner := a11y.New(
			store,
			inspect.NewStore(cfg.CacheDir),
			cfg.Tools.Pa11y.Path,
			cfg.Tools.Pa11y.Standard,
			force,
			newLogger(),
		)

		// Step 5: Record the run
		meta := models.NewRun("a11y", domain)
		meta.Candidates = 1
		meta.Status = models.StatusRunning
		if err := store.SaveRun(meta); err != nil {
			return fmt.Errorf("recording run: %w", err)
		}

		// Step 6: Scan
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		fmt.Printf("[*] Scanning %s for accessibility errors\n", domain)
		target, issues, err := scanner.Scan(ctx, domain)
		if err != nil {
			store.UpdateRunStatus(meta.ID, models.StatusFailed)
			return fmt.Errorf("a11y scan failed: %w", err)
		}

		// Step 7: Write the findings CSV
		outDir, err := storage.CreateRunDir(cfg.ResultsDir, "a11y", meta.StartedAt)
		if err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
		issuesPath := filepath.Join(outDir, "issues.csv")
		if err := report.WriteA11yCSV(target, issues, issuesPath); err != nil {
			return fmt.Errorf("writing issues CSV: %w", err)
		}

		// Step 8: Persist final run state
		meta.Reported = len(issues)
		meta.OutDir = outDir
		if err := store.SaveRun(meta); err != nil {
			fmt.Printf("[!] Warning: could not persist run metadata: %v\n", err)
		}
		if err := store.UpdateRunStatus(meta.ID, models.StatusComplete); err != nil {
			fmt.Printf("[!] Warning: could not update run status: %v\n", err)
		}

		// Step 9: Print final summary
		fmt.Println()
		color.Green("[+] Accessibility scan complete!")
		fmt.Printf("    Scanned: %s\n", target)
		fmt.Printf("    Errors:  %d\n", len(issues))
		fmt.Printf("    Output:  %s\n", issuesPath)

		return nil
	},
}

func init() {
	a11yCmd.Flags().StringP("domain", "d", "", "Domain to scan (required)")
	a11yCmd.Flags().Bool("force", false, "Bypass the scan cache and re-run pa11y")
	a11yCmd.Flags().Duration("timeout", 5*time.Minute, "Overall timeout")
	a11yCmd.MarkFlagRequired("domain")
	rootCmd.AddCommand(a11yCmd)
}
