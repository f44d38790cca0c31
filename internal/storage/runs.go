package storage

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/hakim/subsift/internal/models"
	"go.etcd.io/bbolt"
)

// SaveRun persists a run metadata record and indexes it by stage
func (s *Store) SaveRun(meta *models.RunMeta) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		data, err := json.Marshal(meta)
		if err != nil {
			return err
		}

		runs := tx.Bucket([]byte(bucketRuns))
		if err := runs.Put([]byte(meta.ID), data); err != nil {
			return err
		}

		// Update run index (stage -> []run_id mapping)
		index := tx.Bucket([]byte(bucketRunIndex))
		stageKey := []byte(meta.Stage)

		var runIDs []string
		if existing := index.Get(stageKey); existing != nil {
			if err := json.Unmarshal(existing, &runIDs); err != nil {
				return err
			}
		}

		found := false
		for _, id := range runIDs {
			if id == meta.ID {
				found = true
				break
			}
		}
		if !found {
			runIDs = append(runIDs, meta.ID)
		}

		indexData, err := json.Marshal(runIDs)
		if err != nil {
			return err
		}
		return index.Put(stageKey, indexData)
	})
}

// GetRun retrieves a run metadata record by ID
func (s *Store) GetRun(id string) (*models.RunMeta, error) {
	var meta *models.RunMeta

	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(bucketRuns)).Get([]byte(id))
		if data == nil {
			return nil // Not found
		}
		meta = &models.RunMeta{}
		return json.Unmarshal(data, meta)
	})

	return meta, err
}

// ListRuns retrieves all run records for a stage, sorted by StartedAt descending
func (s *Store) ListRuns(stage string) ([]*models.RunMeta, error) {
	var runs []*models.RunMeta

	err := s.db.View(func(tx *bbolt.Tx) error {
		index := tx.Bucket([]byte(bucketRunIndex))
		data := index.Get([]byte(stage))
		if data == nil {
			return nil // No runs for this stage
		}

		var runIDs []string
		if err := json.Unmarshal(data, &runIDs); err != nil {
			return err
		}

		runsBucket := tx.Bucket([]byte(bucketRuns))
		for _, id := range runIDs {
			runData := runsBucket.Get([]byte(id))
			if runData != nil {
				var meta models.RunMeta
				if err := json.Unmarshal(runData, &meta); err != nil {
					return err
				}
				runs = append(runs, &meta)
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	// Newest first
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})

	return runs, nil
}

// UpdateRunStatus updates the status of a run and sets CompletedAt when the
// run reaches a terminal state
func (s *Store) UpdateRunStatus(id string, status models.RunStatus) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		runs := tx.Bucket([]byte(bucketRuns))

		data := runs.Get([]byte(id))
		if data == nil {
			return nil // Not found, no-op
		}

		var meta models.RunMeta
		if err := json.Unmarshal(data, &meta); err != nil {
			return err
		}

		meta.Status = status
		if (status == models.StatusComplete || status == models.StatusFailed) && meta.CompletedAt == nil {
			now := time.Now()
			meta.CompletedAt = &now
		}

		updatedData, err := json.Marshal(&meta)
		if err != nil {
			return err
		}
		return runs.Put([]byte(id), updatedData)
	})
}
