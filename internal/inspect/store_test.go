package inspect

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hakim/subsift/internal/models"
)

func TestLookup(t *testing.T) {
	cacheDir := t.TempDir()
	dir := filepath.Join(cacheDir, "inspect")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}

	record := `{
		"up": true,
		"canonical_protocol": "https",
		"canonical_endpoint": "root",
		"endpoints": {
			"https": {"root": {"status": 200}},
			"http":  {"www": {"status": 301, "redirect_to": "https://apps.agency.gov/"}}
		}
	}`
	if err := os.WriteFile(filepath.Join(dir, "apps.agency.gov.json"), []byte(record), 0644); err != nil {
		t.Fatal(err)
	}

	store := NewStore(cacheDir)

	rec, err := store.Lookup("apps.agency.gov")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if rec == nil {
		t.Fatal("expected a record")
	}
	if !rec.Up || rec.CanonicalProtocol != models.ProtocolHTTPS || rec.CanonicalPrefix != models.PrefixRoot {
		t.Errorf("unexpected record: %+v", rec)
	}

	ep, ok := rec.Endpoint(models.ProtocolHTTP, models.PrefixWWW)
	if !ok || ep.StatusCode != 301 || ep.RedirectTo != "https://apps.agency.gov/" {
		t.Errorf("unexpected endpoint: %+v, %v", ep, ok)
	}
	if _, ok := rec.Endpoint(models.ProtocolHTTP, models.PrefixRoot); ok {
		t.Error("http/root was never inspected")
	}
}

func TestLookupAbsent(t *testing.T) {
	store := NewStore(t.TempDir())
	rec, err := store.Lookup("never.inspected.gov")
	if err != nil {
		t.Fatalf("absent record should not error: %v", err)
	}
	if rec != nil {
		t.Error("absent record should be nil")
	}
}

func TestLookupCorrupt(t *testing.T) {
	cacheDir := t.TempDir()
	dir := filepath.Join(cacheDir, "inspect")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "bad.agency.gov.json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	store := NewStore(cacheDir)
	if _, err := store.Lookup("bad.agency.gov"); err == nil {
		t.Error("corrupt record should error")
	}
}
