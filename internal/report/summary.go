package report

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hakim/subsift/internal/models"
)

// WriteRunSummary generates a markdown summary for a classification run
// and writes it to the specified output path.
func WriteRunSummary(meta *models.RunMeta, outputPath string) error {
	var b strings.Builder

	// Header
	b.WriteString("# Subdomain Classification Report\n\n")
	b.WriteString(fmt.Sprintf("**Run ID:** %s\n", meta.ID))
	b.WriteString(fmt.Sprintf("**Source:** %s\n", meta.Source))
	b.WriteString(fmt.Sprintf("**Date:** %s\n", time.Now().UTC().Format("2006-01-02 15:04:05")))
	b.WriteString(fmt.Sprintf("**Candidates:** %d\n", meta.Candidates))
	b.WriteString(fmt.Sprintf("**Reported:** %d\n\n", meta.Reported))

	// Skips table
	b.WriteString("## Skipped Candidates\n\n")
	totalSkipped := 0
	for _, count := range meta.Skipped {
		totalSkipped += count
	}

	if totalSkipped > 0 {
		b.WriteString("| Reason | Count |\n")
		b.WriteString("|--------|-------|\n")
		for _, reason := range models.SkipReasons {
			if count := meta.Skipped[string(reason)]; count > 0 {
				b.WriteString(fmt.Sprintf("| %s | %d |\n", reason, count))
			}
		}
	} else {
		b.WriteString("No candidates were skipped.\n")
	}
	b.WriteString("\n")

	// Summary section
	b.WriteString("## Summary\n\n")
	b.WriteString(fmt.Sprintf("- **Total candidates:** %d\n", meta.Candidates))
	b.WriteString(fmt.Sprintf("- **Reported sites:** %d\n", meta.Reported))
	b.WriteString(fmt.Sprintf("- **Skipped:** %d\n", totalSkipped))

	if err := os.WriteFile(outputPath, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("writing report to %s: %w", outputPath, err)
	}

	return nil
}
