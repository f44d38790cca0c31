package storage

import (
	"time"

	"go.etcd.io/bbolt"
)

// Bucket names carry a scan-type discriminator so probe caches for
// unrelated scan types sharing the store can never collide.
const (
	bucketProbeSubdomains = "probe:subdomains"
	bucketProbeA11y       = "probe:a11y"
	bucketRuns            = "runs"
	bucketRunIndex        = "run_index"
)

// Store wraps a bbolt database holding probe caches and run metadata.
// Each entry is written in its own Update transaction, so a crash mid-run
// never leaves a partially written cache entry.
type Store struct {
	db *bbolt.DB
}

// NewStore opens a bbolt database at the given path and initializes required buckets
func NewStore(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range []string{
			bucketProbeSubdomains,
			bucketProbeA11y,
			bucketRuns,
			bucketRunIndex,
		} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the bbolt database
func (s *Store) Close() error {
	return s.db.Close()
}
