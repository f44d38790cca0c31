// Package refdata loads the CSV reference tables consulted by the
// classification engine: the manual exclusion list and the parent-domain
// ownership table. Tables are loaded once at startup and are immutable.
package refdata

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// DefaultMetadataColumn is the 0-indexed parents CSV column carrying the
// owner metadata field (the agency name in the .gov dataset).
const DefaultMetadataColumn = 2

// Tables holds both reference tables. Constructed once by Load and passed
// by reference into the engine; never mutated afterwards.
type Tables struct {
	exclude map[string]struct{}
	owners  map[string]string
}

// Load reads the exclusion and parents CSVs into an immutable Tables value.
// metadataColumn selects which parents column holds the owner metadata;
// pass a negative value to use DefaultMetadataColumn.
func Load(excludePath, parentsPath string, metadataColumn int) (*Tables, error) {
	if metadataColumn < 0 {
		metadataColumn = DefaultMetadataColumn
	}

	t := &Tables{
		exclude: make(map[string]struct{}),
		owners:  make(map[string]string),
	}

	if err := readCSV(excludePath, func(row []string) {
		if d := normalizeDomain(row[0]); d != "" {
			t.exclude[d] = struct{}{}
		}
	}); err != nil {
		return nil, fmt.Errorf("loading exclusion list: %w", err)
	}

	if err := readCSV(parentsPath, func(row []string) {
		d := normalizeDomain(row[0])
		if d == "" || len(row) <= metadataColumn {
			return
		}
		t.owners[d] = strings.TrimSpace(row[metadataColumn])
	}); err != nil {
		return nil, fmt.Errorf("loading parents list: %w", err)
	}

	return t, nil
}

// IsExcluded reports whether a subdomain is on the manual exclusion list.
func (t *Tables) IsExcluded(subdomain string) bool {
	_, ok := t.exclude[normalizeDomain(subdomain)]
	return ok
}

// OwnerMetadata returns the metadata field for a base domain.
// The second return is false when the base domain is not in the table;
// that is not an error.
func (t *Tables) OwnerMetadata(baseDomain string) (string, bool) {
	meta, ok := t.owners[normalizeDomain(baseDomain)]
	return meta, ok
}

// ExcludeCount returns the number of excluded subdomains loaded.
func (t *Tables) ExcludeCount() int { return len(t.exclude) }

// OwnerCount returns the number of parent domains loaded.
func (t *Tables) OwnerCount() int { return len(t.owners) }

// readCSV streams rows from a CSV file into fn, skipping blank lines,
// comment lines, and a header row whose first cell is not a domain.
func readCSV(path string, fn func(row []string)) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	first := true
	for {
		row, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if len(row) == 0 {
			continue
		}
		cell := strings.TrimSpace(row[0])
		if cell == "" || strings.HasPrefix(cell, "#") {
			continue
		}
		// Tolerate a header row like "Domain Name,Domain Type,Agency".
		if first && !strings.Contains(cell, ".") {
			first = false
			continue
		}
		first = false
		fn(row)
	}
}

func normalizeDomain(d string) string {
	return strings.ToLower(strings.TrimSuffix(strings.TrimSpace(d), "."))
}
