package report

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hakim/subsift/internal/diff"
	"github.com/hakim/subsift/internal/models"
)

// WriteDiffReport generates a markdown report capturing the delta between two
// classification runs and writes it to outputPath.
func WriteDiffReport(result *diff.DiffResult, outputPath string) error {
	var b strings.Builder

	b.WriteString("# Classification Diff Report\n\n")
	b.WriteString(fmt.Sprintf("**Date:** %s\n\n", time.Now().UTC().Format("2006-01-02 15:04:05 UTC")))

	if len(result.NewSites) == 0 && len(result.RemovedSites) == 0 && len(result.ChangedSites) == 0 {
		b.WriteString("No changes detected.\n")
		return writeFile(outputPath, b.String())
	}

	writeDiffSummaryTable(&b, result)
	writeNewSites(&b, result.NewSites)
	writeRemovedSites(&b, result.RemovedSites)
	writeChangedSites(&b, result.ChangedSites)

	return writeFile(outputPath, b.String())
}

func writeDiffSummaryTable(b *strings.Builder, r *diff.DiffResult) {
	b.WriteString("## Summary\n\n")
	b.WriteString("| Category | Previous | Current | Change |\n")
	b.WriteString("|----------|----------|---------|--------|\n")
	b.WriteString(fmt.Sprintf("| Reported sites | %d | %d | %s |\n",
		r.PreviousSiteCount, r.CurrentSiteCount, formatChange(len(r.NewSites), len(r.RemovedSites))))
	b.WriteString(fmt.Sprintf("| Changed sites | - | %d | - |\n", len(r.ChangedSites)))
	b.WriteString("\n")
}

// writeNewSites renders the newly reported sites section. Skipped when empty.
func writeNewSites(b *strings.Builder, sites []models.SiteRecord) {
	if len(sites) == 0 {
		return
	}
	b.WriteString(fmt.Sprintf("## New Sites (+%d)\n\n", len(sites)))
	for _, s := range sites {
		b.WriteString(fmt.Sprintf("- %s (status %d)\n", s.Subdomain, s.StatusCode))
	}
	b.WriteString("\n")
}

// writeRemovedSites renders the no-longer-reported sites section. Skipped when empty.
func writeRemovedSites(b *strings.Builder, sites []models.SiteRecord) {
	if len(sites) == 0 {
		return
	}
	b.WriteString(fmt.Sprintf("## Removed Sites (-%d)\n\n", len(sites)))
	for _, s := range sites {
		b.WriteString(fmt.Sprintf("- %s\n", s.Subdomain))
	}
	b.WriteString("\n")
}

// writeChangedSites renders the changed sites table. Skipped when empty.
func writeChangedSites(b *strings.Builder, changes []diff.SiteChange) {
	if len(changes) == 0 {
		return
	}
	b.WriteString(fmt.Sprintf("## Changed Sites (%d)\n\n", len(changes)))
	b.WriteString("| Subdomain | Changed | Status | Content |\n")
	b.WriteString("|-----------|---------|--------|---------|\n")
	for _, c := range changes {
		b.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
			c.Subdomain,
			strings.Join(c.Fields, ", "),
			formatStatusChange(c.Previous.StatusCode, c.Current.StatusCode),
			formatHashChange(c.Previous.ContentSHA256, c.Current.ContentSHA256)))
	}
	b.WriteString("\n")
}

// formatChange returns a human-readable change string such as "+3 / -1".
func formatChange(added, removed int) string {
	if added == 0 && removed == 0 {
		return "none"
	}
	parts := make([]string, 0, 2)
	if added > 0 {
		parts = append(parts, fmt.Sprintf("+%d", added))
	}
	if removed > 0 {
		parts = append(parts, fmt.Sprintf("-%d", removed))
	}
	return strings.Join(parts, " / ")
}

func formatStatusChange(prev, curr int) string {
	if prev == curr {
		return fmt.Sprintf("%d", curr)
	}
	return fmt.Sprintf("%d -> %d", prev, curr)
}

// formatHashChange abbreviates content hashes to their first 8 hex chars.
func formatHashChange(prev, curr string) string {
	if prev == curr {
		return "unchanged"
	}
	return fmt.Sprintf("%s -> %s", shortHash(prev), shortHash(curr))
}

func shortHash(h string) string {
	if h == "" {
		return "(none)"
	}
	if len(h) > 8 {
		return h[:8]
	}
	return h
}

// writeFile writes content to path, wrapping any OS error with context.
func writeFile(outputPath, content string) error {
	if err := os.WriteFile(outputPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing report to %s: %w", outputPath, err)
	}
	return nil
}
