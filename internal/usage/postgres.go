package usage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists events in a Postgres table through a connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// ConnectPostgres creates a pool for dsn, checks it and creates the usage table.
func ConnectPostgres(ctx context.Context, dsn string, maxConns int) (*PostgresStore, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}
	if maxConns > 0 {
		poolCfg.MaxConns = int32(maxConns)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := NewPostgresStore(pool)
	if err := store.InitSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return store, nil
}

// NewPostgresStore wraps an existing pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// InitSchema creates the usage table when missing.
func (p *PostgresStore) InitSchema(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS calculator_usage (
			id UUID PRIMARY KEY,
			calculator_type TEXT NOT NULL,
			input_data JSONB,
			result_data JSONB,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("create calculator_usage table: %w", err)
	}
	return nil
}

// Record implements Recorder.
func (p *PostgresStore) Record(ctx context.Context, event Event) error {
	if err := event.Normalize(); err != nil {
		return err
	}
	_, err := p.pool.Exec(ctx, `
		INSERT INTO calculator_usage (id, calculator_type, input_data, result_data, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING
	`, event.ID, event.CalculatorType, jsonOrNil(event.InputData), jsonOrNil(event.ResultData), event.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert usage event: %w", err)
	}
	return nil
}

// Stats implements StatsReader.
func (p *PostgresStore) Stats(ctx context.Context, since time.Time) ([]Stat, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT calculator_type, COUNT(*)
		FROM calculator_usage
		WHERE created_at >= $1
		GROUP BY calculator_type
	`, since)
	if err != nil {
		return nil, fmt.Errorf("query usage stats: %w", err)
	}
	defer rows.Close()

	var out []Stat
	for rows.Next() {
		var (
			name  string
			count int64
		)
		if err := rows.Scan(&name, &count); err != nil {
			return nil, fmt.Errorf("scan usage stats: %w", err)
		}
		out = append(out, Stat{CalculatorType: name, Count: int(count)})
	}
	return out, rows.Err()
}

// Close closes the pool.
func (p *PostgresStore) Close() error {
	p.pool.Close()
	return nil
}

// jsonOrNil passes JSON documents to JSONB columns as text, NULL when empty.
func jsonOrNil(raw []byte) interface{} {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}
