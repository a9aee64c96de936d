package store

import (
	"context"
	"fmt"
	"time"
)

// Record is the outcome of scoring one case in a judge run.
type Record struct {
	RunID     string
	Case      string
	Seed      uint64
	Score     int64
	Err       string
	Outcome   string
	Time      float64
	Turns     int
	CreatedAt time.Time
}

// RunSummary aggregates the records of one run.
type RunSummary struct {
	RunID      string
	Cases      int
	TotalScore int64
	Failures   int
	StartedAt  time.Time
}

// Store persists judge results.
type Store interface {
	Init(ctx context.Context) error
	SaveResult(ctx context.Context, rec Record) error
	ListRun(ctx context.Context, runID string) ([]Record, bool, error)
	Runs(ctx context.Context) ([]RunSummary, error)
}

func NewStore(kind, sqlitePath string) (Store, error) {
	switch kind {
	case "", "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return NewSQLiteStore(sqlitePath), nil
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", kind)
	}
}

func CloseIfSupported(store Store) error {
	closer, ok := store.(interface{ Close() error })
	if !ok {
		return nil
	}
	return closer.Close()
}

func summarize(records []Record) RunSummary {
	var s RunSummary
	for i, r := range records {
		if i == 0 || r.CreatedAt.Before(s.StartedAt) {
			s.StartedAt = r.CreatedAt
		}
		s.RunID = r.RunID
		s.Cases++
		s.TotalScore += r.Score
		if r.Err != "" {
			s.Failures++
		}
	}
	return s
}
