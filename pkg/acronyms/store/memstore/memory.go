package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cognicore/acronyms/pkg/acronyms"
	"github.com/cognicore/acronyms/pkg/acronyms/internalerr"
	"github.com/cognicore/acronyms/pkg/acronyms/store"
)

// Store is an in-memory implementation of store.Store.
type Store struct {
	mu   sync.RWMutex
	ids  *store.IDGenerator
	runs map[string]store.Run
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		ids:  store.NewIDGenerator(),
		runs: make(map[string]store.Run),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// SaveRun stores a copy of the run, replacing any run with the same ID.
func (s *Store) SaveRun(ctx context.Context, r store.Run) (store.Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r = store.Prepare(r, s.ids)
	s.runs[r.ID] = copyRun(r)
	return copyRun(r), nil
}

// GetRun returns a run by ID.
func (s *Store) GetRun(ctx context.Context, id string) (store.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.runs[id]
	if !ok {
		return store.Run{}, fmt.Errorf("run %s: %w", id, internalerr.ErrNotFound)
	}
	return copyRun(r), nil
}

// ListRuns returns run summaries, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]store.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]store.Run, 0, len(s.runs))
	for _, r := range s.runs {
		r.Table = nil
		runs = append(runs, r)
	}

	sort.Slice(runs, func(i, j int) bool {
		if !runs[i].CreatedAt.Equal(runs[j].CreatedAt) {
			return runs[i].CreatedAt.After(runs[j].CreatedAt)
		}
		return runs[i].ID > runs[j].ID
	})

	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// TopPairs sums all stored runs and returns the k most frequent pairs.
func (s *Store) TopPairs(ctx context.Context, k int) ([]acronyms.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := acronyms.NewTable()
	for _, r := range s.runs {
		total.Merge(r.Table)
	}
	return total.Top(k), nil
}

func copyRun(r store.Run) store.Run {
	table := acronyms.NewTable()
	table.Merge(r.Table)
	r.Table = table
	return r
}
