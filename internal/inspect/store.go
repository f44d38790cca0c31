// Package inspect reads the per-domain records produced by the upstream
// endpoint inspector. The inspector writes one JSON file per domain under
// {cacheDir}/inspect/; this package only reads them.
package inspect

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hakim/subsift/internal/models"
)

const subdir = "inspect"

// Store looks up inspection records on disk.
type Store struct {
	dir string
}

// NewStore returns a Store reading from {cacheDir}/inspect.
func NewStore(cacheDir string) *Store {
	return &Store{dir: filepath.Join(cacheDir, subdir)}
}

// Lookup returns the inspection record for a domain, or nil when the domain
// was never inspected. A missing file is not an error; a corrupt one is.
func (s *Store) Lookup(domain string) (*models.InspectionRecord, error) {
	path := filepath.Join(s.dir, strings.ToLower(domain)+".json")

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading inspection for %s: %w", domain, err)
	}

	var rec models.InspectionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parsing inspection for %s: %w", domain, err)
	}
	return &rec, nil
}
