package a11y

import (
	"context"
	"errors"
	"testing"

	"github.com/hakim/subsift/internal/models"
	"github.com/hakim/subsift/internal/storage"
	"github.com/hakim/subsift/internal/tools"
)

type memCache struct {
	entries map[string]*storage.A11yEntry
	puts    int
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string]*storage.A11yEntry)}
}

func (c *memCache) GetA11y(domain string) (*storage.A11yEntry, error) {
	return c.entries[domain], nil
}

func (c *memCache) PutA11y(domain string, entry *storage.A11yEntry) error {
	c.puts++
	c.entries[domain] = entry
	return nil
}

type fakeInspections struct {
	records map[string]*models.InspectionRecord
}

func (f *fakeInspections) Lookup(domain string) (*models.InspectionRecord, error) {
	return f.records[domain], nil
}

const pa11yOutput = `[
	{"type": "error", "typeCode": 1, "code": "WCAG2AA.1", "message": "Missing alt", "context": "<img>", "selector": "img"},
	{"type": "warning", "typeCode": 2, "code": "WCAG2AA.2", "message": "Check contrast", "context": "<p>", "selector": "p"}
]`

func fakeRunner(output string, err error, calls *int) Runner {
	return func(ctx context.Context, binary string, args ...string) (*tools.ToolResult, error) {
		*calls++
		return &tools.ToolResult{Stdout: []byte(output)}, err
	}
}

func TestScanFiltersToErrors(t *testing.T) {
	cache := newMemCache()
	scanner := New(cache, nil, "", "", false, nil)
	calls := 0
	scanner.run = fakeRunner(pa11yOutput, nil, &calls)

	target, issues, err := scanner.Scan(context.Background(), "apps.agency.gov")
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if target != "apps.agency.gov" {
		t.Errorf("target = %q", target)
	}
	if len(issues) != 1 || issues[0].Code != "WCAG2AA.1" {
		t.Errorf("unexpected issues: %+v", issues)
	}

	// The cache stores the full parsed set; the error filter applies at
	// read time.
	entry := cache.entries["apps.agency.gov"]
	if entry == nil || entry.Outcome != storage.A11yFresh || len(entry.Issues) != 2 {
		t.Errorf("unexpected cache entry: %+v", entry)
	}
}

func TestScanReplaysCache(t *testing.T) {
	cache := newMemCache()
	scanner := New(cache, nil, "", "", false, nil)
	calls := 0
	scanner.run = fakeRunner(pa11yOutput, nil, &calls)

	for i := 0; i < 2; i++ {
		if _, _, err := scanner.Scan(context.Background(), "apps.agency.gov"); err != nil {
			t.Fatal(err)
		}
	}
	if calls != 1 {
		t.Errorf("pa11y executed %d times, want 1", calls)
	}
}

func TestScanCachesFailureAsUnavailable(t *testing.T) {
	cache := newMemCache()
	scanner := New(cache, nil, "", "", false, nil)
	calls := 0
	scanner.run = fakeRunner("", errors.New("exit 2"), &calls)

	target, issues, err := scanner.Scan(context.Background(), "broken.agency.gov")
	if err != nil {
		t.Fatalf("tool failure should degrade, not error: %v", err)
	}
	if len(issues) != 0 {
		t.Errorf("unexpected issues: %+v", issues)
	}
	_ = target

	entry := cache.entries["broken.agency.gov"]
	if entry == nil || entry.Outcome != storage.A11yUnavailable {
		t.Fatalf("failure should be cached as unavailable: %+v", entry)
	}

	// The unavailable entry is trusted on the next run.
	if _, _, err := scanner.Scan(context.Background(), "broken.agency.gov"); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("failed scan retried without force: %d calls", calls)
	}
}

func TestScanFollowsInspectionRedirect(t *testing.T) {
	inspections := &fakeInspections{records: map[string]*models.InspectionRecord{
		"apps.agency.gov": {
			Up:         true,
			Redirect:   true,
			RedirectTo: "https://newapps.agency.gov/",
		},
	}}
	cache := newMemCache()
	scanner := New(cache, inspections, "", "", false, nil)
	calls := 0
	scanner.run = fakeRunner(pa11yOutput, nil, &calls)

	target, _, err := scanner.Scan(context.Background(), "apps.agency.gov")
	if err != nil {
		t.Fatal(err)
	}
	if target != "https://newapps.agency.gov/" {
		t.Errorf("scan should follow the redirect target, got %q", target)
	}
	if _, ok := cache.entries[target]; !ok {
		t.Error("cache should be keyed by the scanned target")
	}
}

func TestScanForceRescans(t *testing.T) {
	cache := newMemCache()
	cache.entries["apps.agency.gov"] = &storage.A11yEntry{Outcome: storage.A11yUnavailable}

	scanner := New(cache, nil, "", "", true, nil)
	calls := 0
	scanner.run = fakeRunner(pa11yOutput, nil, &calls)

	_, issues, err := scanner.Scan(context.Background(), "apps.agency.gov")
	if err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("force should re-execute pa11y, calls = %d", calls)
	}
	if len(issues) != 1 {
		t.Errorf("unexpected issues: %+v", issues)
	}
	if cache.entries["apps.agency.gov"].Outcome != storage.A11yFresh {
		t.Error("forced rescan should replace the unavailable entry")
	}
}
