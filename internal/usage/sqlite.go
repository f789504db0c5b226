package usage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// Register sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
)

// DB is the subset of *sql.DB the SQLite store needs.
type DB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	Close() error
}

// SQLiteStore persists events in a local SQLite file.
type SQLiteStore struct{ db DB }

// OpenSQLite opens the database at dsn and creates the usage table.
func OpenSQLite(ctx context.Context, dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single writer avoids "database is locked" errors from concurrent reports.
	db.SetMaxOpenConns(1)

	store := NewSQLiteStore(db)
	if err := store.InitSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// NewSQLiteStore wraps an already opened database.
func NewSQLiteStore(db DB) *SQLiteStore { return &SQLiteStore{db: db} }

// InitSchema creates the usage table and its index when missing.
func (s *SQLiteStore) InitSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS calculator_usage(
		id TEXT PRIMARY KEY,
		calculator_type TEXT NOT NULL,
		input_data TEXT,
		result_data TEXT,
		created_at INTEGER NOT NULL
	)`); err != nil {
		return fmt.Errorf("create calculator_usage table: %w", err)
	}
	if _, err := s.db.ExecContext(ctx,
		`CREATE INDEX IF NOT EXISTS calculator_usage_created_at ON calculator_usage(created_at)`); err != nil {
		return fmt.Errorf("create calculator_usage index: %w", err)
	}
	return nil
}

// Record implements Recorder.
func (s *SQLiteStore) Record(ctx context.Context, event Event) error {
	if err := event.Normalize(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO calculator_usage(id,calculator_type,input_data,result_data,created_at) VALUES(?,?,?,?,?)`,
		event.ID, event.CalculatorType, string(event.InputData), string(event.ResultData), event.CreatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("insert usage event: %w", err)
	}
	return nil
}

// Stats implements StatsReader.
func (s *SQLiteStore) Stats(ctx context.Context, since time.Time) ([]Stat, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT calculator_type, COUNT(*) FROM calculator_usage WHERE created_at>=? GROUP BY calculator_type`,
		since.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("query usage stats: %w", err)
	}
	defer rows.Close()

	var out []Stat
	for rows.Next() {
		var st Stat
		if err := rows.Scan(&st.CalculatorType, &st.Count); err != nil {
			return nil, fmt.Errorf("scan usage stats: %w", err)
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
