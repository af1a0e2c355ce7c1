// Package runstore keeps finished campaigns in memory for the HTTP
// service. Nothing touches disk; a run lives only as long as the process
// that produced it.
package runstore

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MJE43/eda-game-tester/internal/batch"
)

// Run is one finished campaign together with the request that produced it.
type Run struct {
	ID         string        `json:"id"`
	CreatedAt  time.Time     `json:"created_at"`
	Players    [4]string     `json:"players"`
	Seed       uint32        `json:"seed"`
	Instances  uint32        `json:"instances"`
	Workers    int           `json:"workers"`
	DurationMs int64         `json:"duration_ms"`
	Results    batch.Results `json:"results"`
}

// Store is a bounded registry of runs. When full it evicts the oldest.
type Store struct {
	mu    sync.RWMutex
	limit int
	runs  map[string]*Run
	order []string // insertion order, oldest first
}

// DefaultLimit caps the registry when no explicit limit is configured.
const DefaultLimit = 100

// New creates a store keeping at most limit runs. limit <= 0 means
// DefaultLimit.
func New(limit int) *Store {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Store{
		limit: limit,
		runs:  make(map[string]*Run),
	}
}

// Insert stores the run, assigning an ID and creation time when absent, and
// returns the ID. The caller hands the run over; it must not be mutated
// afterwards.
func (s *Store) Insert(run *Run) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	if _, exists := s.runs[run.ID]; !exists {
		s.order = append(s.order, run.ID)
	}
	s.runs[run.ID] = run

	for len(s.order) > s.limit {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.runs, oldest)
	}
	return run.ID
}

// Get returns the run with the given ID.
func (s *Store) Get(id string) (*Run, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[id]
	return run, ok
}

// List returns every stored run, newest first.
func (s *Store) List() []*Run {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Run, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		out = append(out, s.runs[s.order[i]])
	}
	return out
}

// Delete removes a run. Removing an unknown ID is a no-op.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.runs[id]; !ok {
		return false
	}
	delete(s.runs, id)
	for i, stored := range s.order {
		if stored == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Len reports how many runs are stored.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.runs)
}
