// Package diff computes the delta between two classification runs.
// It reads the structured sites.json written by the classify stage and
// produces a DiffResult identifying which reported sites are new, removed,
// or changed between consecutive runs.
package diff

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hakim/subsift/internal/models"
)

// sitesResult mirrors the wrapper struct written by the classify command
// without importing it (the command package is not importable).
type sitesResult struct {
	Sites []models.SiteRecord `json:"sites"`
}

// ---------------------------------------------------------------------------
// RunSnapshot
// ---------------------------------------------------------------------------

// RunSnapshot holds the structured site data loaded from a single
// classification run's output directory. Sites is nil when sites.json is
// absent.
type RunSnapshot struct {
	RunDir string
	Sites  []models.SiteRecord
}

// LoadSnapshot reads sites.json from runDir and populates a RunSnapshot.
// A missing file is treated as empty, not as an error, so older run
// directories that predate the JSON output can still be compared.
func LoadSnapshot(runDir string) (*RunSnapshot, error) {
	snap := &RunSnapshot{RunDir: runDir}

	data, err := readOptionalFile(filepath.Join(runDir, "sites.json"))
	if err != nil {
		return nil, fmt.Errorf("loading sites.json: %w", err)
	}
	if data == nil {
		return snap, nil
	}

	var wrapper sitesResult
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("loading sites.json: %w", err)
	}

	snap.Sites = wrapper.Sites
	return snap, nil
}

// readOptionalFile reads a file and returns its bytes. Returns (nil, nil) when
// the file does not exist so callers can treat absence as empty, not as error.
func readOptionalFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

// ---------------------------------------------------------------------------
// DiffResult
// ---------------------------------------------------------------------------

// SiteChange pairs the previous and current record for a subdomain whose
// classification changed between runs.
type SiteChange struct {
	Subdomain string
	Previous  models.SiteRecord
	Current   models.SiteRecord
	// Fields lists which attributes differ, in a fixed order.
	Fields []string
}

// DiffResult holds the complete delta between a current and a previous run
// snapshot. All slice fields are non-nil (empty slices, not nil) so callers
// can range over them unconditionally.
type DiffResult struct {
	NewSites     []models.SiteRecord
	RemovedSites []models.SiteRecord
	ChangedSites []SiteChange

	// Summary counts (convenient for rendering without re-iterating slices)
	CurrentSiteCount  int
	PreviousSiteCount int
}

// ---------------------------------------------------------------------------
// ComputeDiff
// ---------------------------------------------------------------------------

// ComputeDiff calculates the delta between current and previous snapshots.
// Both arguments must be non-nil; pass an empty RunSnapshot for the
// "no previous run" case.
func ComputeDiff(current, previous *RunSnapshot) *DiffResult {
	dr := &DiffResult{
		NewSites:     []models.SiteRecord{},
		RemovedSites: []models.SiteRecord{},
		ChangedSites: []SiteChange{},
	}

	prevBySub := make(map[string]models.SiteRecord, len(previous.Sites))
	for _, s := range previous.Sites {
		prevBySub[s.Subdomain] = s
	}

	currBySub := make(map[string]models.SiteRecord, len(current.Sites))
	for _, s := range current.Sites {
		currBySub[s.Subdomain] = s
	}

	// New and changed, in current input order
	for _, s := range current.Sites {
		prev, existed := prevBySub[s.Subdomain]
		if !existed {
			dr.NewSites = append(dr.NewSites, s)
			continue
		}
		if fields := changedFields(prev, s); len(fields) > 0 {
			dr.ChangedSites = append(dr.ChangedSites, SiteChange{
				Subdomain: s.Subdomain,
				Previous:  prev,
				Current:   s,
				Fields:    fields,
			})
		}
	}

	// Removed: reported before but absent now
	for _, s := range previous.Sites {
		if _, exists := currBySub[s.Subdomain]; !exists {
			dr.RemovedSites = append(dr.RemovedSites, s)
		}
	}

	dr.CurrentSiteCount = len(current.Sites)
	dr.PreviousSiteCount = len(previous.Sites)

	return dr
}

// changedFields compares two records for the same subdomain and names the
// attributes that differ. Owner metadata is deliberately ignored; it comes
// from the reference tables, not from observing the site.
func changedFields(prev, curr models.SiteRecord) []string {
	var fields []string
	if prev.StatusCode != curr.StatusCode {
		fields = append(fields, "status")
	}
	if prev.RedirectsExternal != curr.RedirectsExternal {
		fields = append(fields, "redirects-external")
	}
	if prev.RedirectsToSibling != curr.RedirectsToSibling {
		fields = append(fields, "redirects-to-subdomain")
	}
	if prev.MatchedWildcard != curr.MatchedWildcard {
		fields = append(fields, "wildcard")
	}
	if prev.ContentSHA256 != curr.ContentSHA256 {
		fields = append(fields, "content")
	}
	return fields
}
