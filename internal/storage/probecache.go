package storage

import (
	"encoding/json"
	"strings"

	"github.com/hakim/subsift/internal/models"
	"go.etcd.io/bbolt"
)

// GetProbe returns the cached probe entry for a subdomain, or nil when no
// entry exists yet.
func (s *Store) GetProbe(subdomain string) (*models.ProbeEntry, error) {
	var entry *models.ProbeEntry

	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(bucketProbeSubdomains)).Get(probeKey(subdomain))
		if data == nil {
			return nil
		}
		entry = &models.ProbeEntry{}
		return json.Unmarshal(data, entry)
	})

	return entry, err
}

// PutProbe replaces the probe entry for a subdomain wholesale. The single
// Update transaction makes the write atomic: readers see either the old
// entry or the new one, never a partial write.
func (s *Store) PutProbe(subdomain string, entry *models.ProbeEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketProbeSubdomains)).Put(probeKey(subdomain), data)
	})
}

func probeKey(subdomain string) []byte {
	return []byte(strings.ToLower(strings.TrimSpace(subdomain)))
}
