package models

import (
	"time"

	"github.com/google/uuid"
)

// RunMeta contains metadata about a single classify or a11y run
type RunMeta struct {
	ID          string     `json:"id"`
	Stage       string     `json:"stage"`
	Source      string     `json:"source"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Status      RunStatus  `json:"status"`
	Candidates  int        `json:"candidates"`
	Reported    int        `json:"reported"`
	// Skipped counts suppressed candidates by skip reason.
	Skipped map[string]int `json:"skipped,omitempty"`
	OutDir  string         `json:"out_dir,omitempty"`
}

// NewRun creates run metadata with initialized ID and timestamps
func NewRun(stage, source string) *RunMeta {
	return &RunMeta{
		ID:        uuid.New().String(),
		Stage:     stage,
		Source:    source,
		StartedAt: time.Now(),
		Status:    StatusPending,
		Skipped:   make(map[string]int),
	}
}
