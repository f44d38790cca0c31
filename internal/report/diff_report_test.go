package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hakim/subsift/internal/diff"
	"github.com/hakim/subsift/internal/models"
)

func TestWriteDiffReport(t *testing.T) {
	result := &diff.DiffResult{
		NewSites: []models.SiteRecord{
			{Subdomain: "new.agency.gov", StatusCode: 200},
		},
		RemovedSites: []models.SiteRecord{
			{Subdomain: "gone.agency.gov", StatusCode: 200},
		},
		ChangedSites: []diff.SiteChange{
			{
				Subdomain: "changed.agency.gov",
				Previous:  models.SiteRecord{Subdomain: "changed.agency.gov", StatusCode: 200, ContentSHA256: "aaaaaaaaaaaa"},
				Current:   models.SiteRecord{Subdomain: "changed.agency.gov", StatusCode: 301, ContentSHA256: "bbbbbbbbbbbb"},
				Fields:    []string{"status", "content"},
			},
		},
		CurrentSiteCount:  5,
		PreviousSiteCount: 5,
	}

	path := filepath.Join(t.TempDir(), "diff.md")
	if err := WriteDiffReport(result, path); err != nil {
		t.Fatalf("WriteDiffReport() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)

	for _, want := range []string{
		"## New Sites (+1)",
		"new.agency.gov",
		"## Removed Sites (-1)",
		"gone.agency.gov",
		"## Changed Sites (1)",
		"status, content",
		"200 -> 301",
		"aaaaaaaa -> bbbbbbbb",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestWriteDiffReportNoChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diff.md")
	if err := WriteDiffReport(&diff.DiffResult{}, path); err != nil {
		t.Fatalf("WriteDiffReport() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "No changes detected.") {
		t.Errorf("report = %q, want no-changes notice", string(data))
	}
}
