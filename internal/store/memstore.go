package store

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// MemStore is an in-memory Store for tests. Create with NewMemStore.
type MemStore struct {
	mu   sync.Mutex
	runs []*Run
}

// NewMemStore returns a new in-memory store (ready for SaveRun/GetRun).
func NewMemStore() *MemStore {
	return &MemStore{}
}

// SaveRun records a copy of the run, assigning an ID and timestamp when
// absent.
func (s *MemStore) SaveRun(run *Run) (string, error) {
	if run == nil {
		return "", errors.New("run is nil")
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt == "" {
		run.CreatedAt = nowUTC()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *run
	s.runs = append(s.runs, &cp)
	return run.ID, nil
}

// GetRun returns the run with the given ID, or nil if not found.
func (s *MemStore) GetRun(id string) (*Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.runs {
		if r.ID == id {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

// ListRuns returns runs newest first, truncated to limit when limit is
// positive.
func (s *MemStore) ListRuns(limit int) ([]*Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Run, 0, len(s.runs))
	for i := len(s.runs) - 1; i >= 0; i-- {
		cp := *s.runs[i]
		out = append(out, &cp)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// Close is a no-op for the in-memory store.
func (s *MemStore) Close() error { return nil }
