package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/hakim/subsift/internal/classify"
	"github.com/hakim/subsift/internal/config"
	"github.com/hakim/subsift/internal/inspect"
	"github.com/hakim/subsift/internal/models"
	"github.com/hakim/subsift/internal/probe"
	"github.com/hakim/subsift/internal/refdata"
	"github.com/hakim/subsift/internal/report"
	"github.com/hakim/subsift/internal/storage"
	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/cobra"
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify candidate subdomains into public websites",
	Long: `Run the full classification pipeline over a CSV of candidate subdomains.

Each candidate passes through the filter pipeline (exclusion list, second-level
check, inspection data, liveness), endpoint resolution, redirect classification,
and the cached wildcard/content probe. Surviving candidates produce one CSV row
each.

Results are saved to:
  - {results_dir}/classify_{timestamp}/sites.csv    (output rows)
  - {results_dir}/classify_{timestamp}/sites.json   (structured records, for 'subsift diff')
  - {results_dir}/classify_{timestamp}/summary.md   (run summary)

Run metadata is recorded in the configured database; see 'subsift history'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Step 1: Get flags
		candidatesPath, _ := cmd.Flags().GetString("candidates")
		force, _ := cmd.Flags().GetBool("force")
		workers, _ := cmd.Flags().GetInt("workers")
		timeout, _ := cmd.Flags().GetDuration("timeout")

		// Step 2: Verify config was loaded
		if cfg == nil {
			return fmt.Errorf("config not loaded. Run 'subsift init' first to create config")
		}

		// Reference tables are required before any candidate is processed.
		if err := cfg.ValidateTables(); err != nil {
			return fmt.Errorf("reference tables unavailable: %w", err)
		}

		if workers <= 0 {
			workers = cfg.Workers
		}

		// Step 3: Load reference tables
		tables, err := refdata.Load(cfg.Tables.Exclude, cfg.Tables.Parents, cfg.Tables.MetadataColumn)
		if err != nil {
			return fmt.Errorf("loading reference tables: %w", err)
		}
		fmt.Printf("[*] Loaded %d exclusions, %d parent domains\n",
			tables.ExcludeCount(), tables.OwnerCount())

		// Step 4: Read candidates
		candidates, err := readCandidates(candidatesPath)
		if err != nil {
			return fmt.Errorf("reading candidates: %w", err)
		}
		if len(candidates) == 0 {
			fmt.Println("[!] No candidate subdomains found. Nothing to classify.")
			return nil
		}
		fmt.Printf("[*] Classifying %d candidate subdomains (workers: %d)\n", len(candidates), workers)

		// Step 5: Open the store and build the engine
		store, err := storage.NewStore(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer store.Close()

		logger := newLogger()
		fetcher := probe.NewHTTPFetcher(
			config.Duration(cfg.Network.HTTPTimeout, 30*time.Second),
			cfg.Network.MaxBodyBytes,
		)
		resolver := probe.NewDNSResolver(
			cfg.Network.DNSServer,
			config.Duration(cfg.Network.DNSTimeout, 5*time.Second),
		)
		prober := probe.New(store, fetcher, resolver, force, logger)
		engine := classify.New(tables, inspect.NewStore(cfg.CacheDir), prober, logger)

		// Step 6: Record the run
		meta := models.NewRun("classify", candidatesPath)
		meta.Candidates = len(candidates)
		meta.Status = models.StatusRunning
		if err := store.SaveRun(meta); err != nil {
			return fmt.Errorf("recording run: %w", err)
		}

		// Step 7: Create the output directory
		outDir, err := storage.CreateRunDir(cfg.ResultsDir, "classify", meta.StartedAt)
		if err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
		meta.OutDir = outDir

		// Step 8: Classify candidates through a bounded worker pool.
		// Each subdomain's cache entry is owned by exactly one worker, so
		// no cross-candidate synchronization is needed beyond the counters.
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		results := make([]*models.SiteRecord, len(candidates))
		var mu sync.Mutex
		skipped := make(map[string]int)
		errored := 0

		p := pool.New().WithMaxGoroutines(workers)
		for i, subdomain := range candidates {
			p.Go(func() {
				rec, reason, err := engine.Classify(ctx, subdomain)

				mu.Lock()
				defer mu.Unlock()
				switch {
				case err != nil:
					// Cache or inspection store I/O failure — degrade to
					// a warning, keep classifying the rest.
					fmt.Printf("[!] Warning: %s: %v\n", subdomain, err)
					errored++
				case reason != models.SkipNone:
					skipped[string(reason)]++
				default:
					results[i] = rec
				}
			})
		}
		p.Wait()

		// Step 9: Collect surviving records in input order
		var records []*models.SiteRecord
		for _, rec := range results {
			if rec != nil {
				records = append(records, rec)
			}
		}
		meta.Reported = len(records)
		meta.Skipped = skipped

		// Step 10: Write outputs
		sitesPath := filepath.Join(outDir, "sites.csv")
		if err := report.WriteSitesCSV(records, sitesPath); err != nil {
			return fmt.Errorf("writing sites CSV: %w", err)
		}

		// Structured JSON alongside the CSV; 'subsift diff' reads this.
		if err := writeSitesJSON(records, filepath.Join(outDir, "sites.json")); err != nil {
			fmt.Printf("[!] Warning: failed to write sites JSON: %v\n", err)
		}

		summaryPath := filepath.Join(outDir, "summary.md")
		if err := report.WriteRunSummary(meta, summaryPath); err != nil {
			// Warn but do not fail — the CSV is already on disk
			fmt.Printf("[!] Warning: failed to write summary: %v\n", err)
		}

		// Step 11: Persist final run state
		finalStatus := models.StatusComplete
		if errored > 0 && len(records) == 0 {
			finalStatus = models.StatusFailed
		}
		if err := store.SaveRun(meta); err != nil {
			fmt.Printf("[!] Warning: could not persist run metadata: %v\n", err)
		}
		if err := store.UpdateRunStatus(meta.ID, finalStatus); err != nil {
			fmt.Printf("[!] Warning: could not update run status: %v\n", err)
		}

		// Step 12: Print final summary
		totalSkipped := 0
		for _, count := range skipped {
			totalSkipped += count
		}

		fmt.Println()
		color.Green("[+] Classification complete!")
		fmt.Printf("    Candidates: %d\n", len(candidates))
		fmt.Printf("    Reported:   %d\n", len(records))
		fmt.Printf("    Skipped:    %d\n", totalSkipped)
		if errored > 0 {
			color.Yellow("    Errors:     %d", errored)
		}
		fmt.Printf("    Output:     %s\n", sitesPath)

		return nil
	},
}

func init() {
	classifyCmd.Flags().StringP("candidates", "c", "", "CSV of candidate subdomains (required)")
	classifyCmd.Flags().Bool("force", false, "Bypass the probe cache and re-fetch DNS/content")
	classifyCmd.Flags().Int("workers", 0, "Concurrent classification workers (default from config)")
	classifyCmd.Flags().Duration("timeout", 60*time.Minute, "Overall timeout")
	classifyCmd.MarkFlagRequired("candidates")
	rootCmd.AddCommand(classifyCmd)
}

// writeSitesJSON writes the surviving records as wrapped JSON so later runs
// can be compared structurally.
func writeSitesJSON(records []*models.SiteRecord, path string) error {
	sites := make([]models.SiteRecord, 0, len(records))
	for _, rec := range records {
		sites = append(sites, *rec)
	}

	data, err := json.MarshalIndent(map[string][]models.SiteRecord{"sites": sites}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling sites: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// readCandidates reads subdomain names from the first column of a CSV,
// normalizing case and dropping duplicates while preserving input order.
func readCandidates(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	seen := make(map[string]bool)
	var candidates []string

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(row) == 0 {
			continue
		}
		name := strings.ToLower(strings.TrimSpace(row[0]))
		if name == "" || strings.HasPrefix(name, "#") || !strings.Contains(name, ".") {
			continue
		}
		if !seen[name] {
			seen[name] = true
			candidates = append(candidates, name)
		}
	}

	return candidates, nil
}
