package diff

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/hakim/subsift/internal/models"
)

func site(subdomain string, status int) models.SiteRecord {
	return models.SiteRecord{Subdomain: subdomain, StatusCode: status}
}

func snapshot(sites ...models.SiteRecord) *RunSnapshot {
	return &RunSnapshot{Sites: sites}
}

func TestComputeDiffNewAndRemoved(t *testing.T) {
	current := snapshot(site("a.agency.gov", 200), site("b.agency.gov", 200))
	previous := snapshot(site("a.agency.gov", 200), site("c.agency.gov", 301))

	dr := ComputeDiff(current, previous)

	if len(dr.NewSites) != 1 || dr.NewSites[0].Subdomain != "b.agency.gov" {
		t.Errorf("NewSites = %v, want [b.agency.gov]", dr.NewSites)
	}
	if len(dr.RemovedSites) != 1 || dr.RemovedSites[0].Subdomain != "c.agency.gov" {
		t.Errorf("RemovedSites = %v, want [c.agency.gov]", dr.RemovedSites)
	}
	if len(dr.ChangedSites) != 0 {
		t.Errorf("ChangedSites = %v, want none", dr.ChangedSites)
	}
	if dr.CurrentSiteCount != 2 || dr.PreviousSiteCount != 2 {
		t.Errorf("counts = %d/%d, want 2/2", dr.CurrentSiteCount, dr.PreviousSiteCount)
	}
}

func TestComputeDiffChangedFields(t *testing.T) {
	prev := models.SiteRecord{
		Subdomain:     "a.agency.gov",
		StatusCode:    200,
		ContentSHA256: "aaa",
	}
	curr := models.SiteRecord{
		Subdomain:         "a.agency.gov",
		StatusCode:        301,
		RedirectsExternal: true,
		ContentSHA256:     "bbb",
	}

	dr := ComputeDiff(snapshot(curr), snapshot(prev))

	if len(dr.ChangedSites) != 1 {
		t.Fatalf("ChangedSites = %v, want 1 entry", dr.ChangedSites)
	}
	got := dr.ChangedSites[0]
	if got.Subdomain != "a.agency.gov" {
		t.Errorf("Subdomain = %q", got.Subdomain)
	}
	want := []string{"status", "redirects-external", "content"}
	if !reflect.DeepEqual(got.Fields, want) {
		t.Errorf("Fields = %v, want %v", got.Fields, want)
	}
}

func TestComputeDiffIgnoresOwnerMetadata(t *testing.T) {
	prev := models.SiteRecord{Subdomain: "a.agency.gov", StatusCode: 200, OwnerMetadata: "Old Agency"}
	curr := models.SiteRecord{Subdomain: "a.agency.gov", StatusCode: 200, OwnerMetadata: "New Agency"}

	dr := ComputeDiff(snapshot(curr), snapshot(prev))

	if len(dr.ChangedSites) != 0 {
		t.Errorf("ChangedSites = %v, want none for metadata-only change", dr.ChangedSites)
	}
}

func TestComputeDiffEmptyPrevious(t *testing.T) {
	current := snapshot(site("a.agency.gov", 200))

	dr := ComputeDiff(current, &RunSnapshot{})

	if len(dr.NewSites) != 1 {
		t.Errorf("NewSites = %v, want 1 entry", dr.NewSites)
	}
	if len(dr.RemovedSites) != 0 || len(dr.ChangedSites) != 0 {
		t.Errorf("unexpected removed/changed: %v / %v", dr.RemovedSites, dr.ChangedSites)
	}
}

func TestLoadSnapshot(t *testing.T) {
	dir := t.TempDir()
	data := `{"sites":[{"subdomain":"a.agency.gov","status_code":200,"content_sha256":"abc"}]}`
	if err := os.WriteFile(filepath.Join(dir, "sites.json"), []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	snap, err := LoadSnapshot(dir)
	if err != nil {
		t.Fatalf("LoadSnapshot() error = %v", err)
	}
	if snap.RunDir != dir {
		t.Errorf("RunDir = %q, want %q", snap.RunDir, dir)
	}
	if len(snap.Sites) != 1 || snap.Sites[0].Subdomain != "a.agency.gov" || snap.Sites[0].StatusCode != 200 {
		t.Errorf("Sites = %v", snap.Sites)
	}
}

func TestLoadSnapshotMissingFile(t *testing.T) {
	snap, err := LoadSnapshot(t.TempDir())
	if err != nil {
		t.Fatalf("LoadSnapshot() error = %v, want nil for missing file", err)
	}
	if snap.Sites != nil {
		t.Errorf("Sites = %v, want nil", snap.Sites)
	}
}

func TestLoadSnapshotCorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "sites.json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadSnapshot(dir); err == nil {
		t.Error("LoadSnapshot() error = nil, want parse error")
	}
}
