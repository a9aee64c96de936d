package store

import (
	"context"
	"sort"
	"sync"
)

type MemoryStore struct {
	mu   sync.RWMutex
	runs map[string][]Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{runs: make(map[string][]Record)}
}

func (s *MemoryStore) Init(_ context.Context) error {
	return nil
}

func (s *MemoryStore) SaveResult(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[rec.RunID] = append(s.runs[rec.RunID], rec)
	return nil
}

func (s *MemoryStore) ListRun(_ context.Context, runID string) ([]Record, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records, ok := s.runs[runID]
	if !ok {
		return nil, false, nil
	}
	out := append([]Record(nil), records...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Case < out[j].Case })
	return out, true, nil
}

func (s *MemoryStore) Runs(_ context.Context) ([]RunSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]RunSummary, 0, len(s.runs))
	for _, records := range s.runs {
		out = append(out, summarize(records))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartedAt.Equal(out[j].StartedAt) {
			return out[i].RunID < out[j].RunID
		}
		return out[i].StartedAt.Before(out[j].StartedAt)
	})
	return out, nil
}
