package store

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}

	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS results (
			run_id TEXT NOT NULL,
			case_name TEXT NOT NULL,
			seed INTEGER NOT NULL,
			score INTEGER NOT NULL,
			err TEXT NOT NULL,
			outcome TEXT NOT NULL,
			elapsed REAL NOT NULL,
			turns INTEGER NOT NULL,
			created_at INTEGER NOT NULL,
			PRIMARY KEY (run_id, case_name)
		)
	`)
	return err
}

func (s *SQLiteStore) SaveResult(ctx context.Context, rec Record) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO results (run_id, case_name, seed, score, err, outcome, elapsed, turns, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, case_name) DO UPDATE SET
			seed = excluded.seed,
			score = excluded.score,
			err = excluded.err,
			outcome = excluded.outcome,
			elapsed = excluded.elapsed,
			turns = excluded.turns,
			created_at = excluded.created_at
	`, rec.RunID, rec.Case, int64(rec.Seed), rec.Score, rec.Err, rec.Outcome, rec.Time, rec.Turns, rec.CreatedAt.UnixNano())
	return err
}

func (s *SQLiteStore) ListRun(ctx context.Context, runID string) ([]Record, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, false, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT case_name, seed, score, err, outcome, elapsed, turns, created_at
		FROM results WHERE run_id = ? ORDER BY case_name
	`, runID)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec := Record{RunID: runID}
		var seed, created int64
		if err := rows.Scan(&rec.Case, &seed, &rec.Score, &rec.Err, &rec.Outcome, &rec.Time, &rec.Turns, &created); err != nil {
			return nil, false, err
		}
		rec.Seed = uint64(seed)
		rec.CreatedAt = time.Unix(0, created)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}
	return out, len(out) > 0, nil
}

func (s *SQLiteStore) Runs(ctx context.Context) ([]RunSummary, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT run_id, COUNT(*), SUM(score), SUM(CASE WHEN err != '' THEN 1 ELSE 0 END), MIN(created_at)
		FROM results GROUP BY run_id ORDER BY MIN(created_at), run_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var sum RunSummary
		var started int64
		if err := rows.Scan(&sum.RunID, &sum.Cases, &sum.TotalScore, &sum.Failures, &started); err != nil {
			return nil, err
		}
		sum.StartedAt = time.Unix(0, started)
		out = append(out, sum)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, errors.New("sqlite store not initialized")
	}
	return s.db, nil
}
