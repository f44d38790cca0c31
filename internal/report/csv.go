package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/hakim/subsift/internal/models"
)

// SiteHeaders is the column order of the classified-sites CSV.
var SiteHeaders = []string{
	"Domain",
	"Base Domain Info",
	"Redirects Externally",
	"Redirects To Subdomain",
	"HTTP Status Code",
	"Matched Wildcard DNS",
	"Content SHA-256",
}

// A11yHeaders is the column order of the accessibility findings CSV.
var A11yHeaders = []string{
	"Scanned Target",
	"Type Code",
	"Code",
	"Message",
	"Context",
	"Selector",
}

// WriteSitesCSV writes one row per surviving candidate to outputPath.
func WriteSitesCSV(records []*models.SiteRecord, outputPath string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outputPath, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(SiteHeaders); err != nil {
		return err
	}

	for _, rec := range records {
		row := []string{
			rec.Subdomain,
			rec.OwnerMetadata,
			strconv.FormatBool(rec.RedirectsExternal),
			strconv.FormatBool(rec.RedirectsToSibling),
			strconv.Itoa(rec.StatusCode),
			strconv.FormatBool(rec.MatchedWildcard),
			rec.ContentSHA256,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}
	return nil
}

// WriteA11yCSV writes one row per accessibility finding to outputPath.
func WriteA11yCSV(target string, issues []models.A11yIssue, outputPath string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outputPath, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(A11yHeaders); err != nil {
		return err
	}

	for _, issue := range issues {
		row := []string{
			target,
			strconv.Itoa(issue.TypeCode),
			issue.Code,
			issue.Message,
			issue.Context,
			issue.Selector,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}
	return nil
}
