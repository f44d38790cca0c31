package storage

import (
	"encoding/json"

	"github.com/hakim/subsift/internal/models"
	"go.etcd.io/bbolt"
)

// A11yOutcome tags a cached accessibility scan result. A scan that produced
// no usable output is cached as Unavailable rather than as a sentinel
// payload, so readers never have to interpret an empty result shape.
type A11yOutcome string

const (
	// A11yFresh marks a scan that completed and produced parseable results.
	A11yFresh A11yOutcome = "fresh"
	// A11yUnavailable marks a scan that failed; the domain is not
	// re-scanned until a forced refresh.
	A11yUnavailable A11yOutcome = "unavailable"
)

// A11yEntry is the cached result of one accessibility scan.
type A11yEntry struct {
	Outcome A11yOutcome        `json:"outcome"`
	Issues  []models.A11yIssue `json:"issues,omitempty"`
}

// GetA11y returns the cached accessibility entry for a domain, or nil when
// the domain has not been scanned.
func (s *Store) GetA11y(domain string) (*A11yEntry, error) {
	var entry *A11yEntry

	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(bucketProbeA11y)).Get(probeKey(domain))
		if data == nil {
			return nil
		}
		entry = &A11yEntry{}
		return json.Unmarshal(data, entry)
	})

	return entry, err
}

// PutA11y replaces the accessibility entry for a domain wholesale.
func (s *Store) PutA11y(domain string, entry *A11yEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketProbeA11y)).Put(probeKey(domain), data)
	})
}
