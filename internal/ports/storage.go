// Package ports defines the interfaces (contracts) that adapters must implement.
// These are the boundaries of the hexagonal architecture. Domain logic depends
// only on these interfaces, never on concrete implementations.
package ports

import "time"

// RunStore persists benchmark runs so results can be compared over time.
// The backing store (bbolt) keys runs by a time-sortable ID, so listing
// newest-first needs no secondary index. Concurrent reads are safe; writes
// are serialized by the adapter.
//
// Crash safety: SaveRun must be transactional. A crash mid-write must not
// corrupt previously committed runs.
type RunStore interface {
	// SaveRun persists a run. Overwrites any prior run with the same ID.
	SaveRun(run *BenchRun) error

	// LoadRun retrieves one run by ID.
	LoadRun(id string) (*BenchRun, error)

	// ListRuns returns up to limit runs, newest first (all when limit <= 0).
	ListRuns(limit int) ([]*BenchRun, error)

	// DeleteRuns removes every stored run.
	// Idempotent: clearing an empty store is not an error.
	DeleteRuns() error
}

// BenchRun is one invocation of the benchmark harness.
type BenchRun struct {
	ID            string           `json:"id"`
	StartedAt     time.Time        `json:"started_at"`
	Runs          int              `json:"runs"` // repetitions per strategy
	Database      string           `json:"database"`
	Queries       string           `json:"queries"`
	DatabaseBytes int              `json:"database_bytes"`
	Digest        string           `json:"digest"`      // xxhash64 of database and queries
	QueryCount    int              `json:"query_count"` // distinct keywords
	Results       []StrategyResult `json:"results"`     // fastest first
}

// StrategyResult holds the timings of one strategy within a run.
type StrategyResult struct {
	Strategy    string        `json:"strategy"`
	Average     time.Duration `json:"average"`
	Min         time.Duration `json:"min"`
	Max         time.Duration `json:"max"`
	TotalHits   int           `json:"total_hits"`
	Overlapping bool          `json:"overlapping"`
	OutputFile  string        `json:"output_file,omitempty"`
}

// AverageMillis returns the average run time in milliseconds.
func (r StrategyResult) AverageMillis() float64 {
	return float64(r.Average) / float64(time.Millisecond)
}
