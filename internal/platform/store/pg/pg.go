// Package pg opens the pgx pool behind the Postgres store and reports each
// statement to an optional tracer
package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config configures Open
type Config struct {
	URL      string
	MaxConns int32
	// Slow is the elapsed time at which a statement is flagged; negative never flags
	Slow   time.Duration
	Tracer QueryTracer
	// Tune adjusts the parsed pool config before the pool is built
	Tune func(*pgxpool.Config)
}

// PG owns the pool
type PG struct {
	Pool   *pgxpool.Pool
	tracer QueryTracer
	slow   time.Duration
}

var newPool = pgxpool.NewWithConfig

// Open parses the URL and builds the pool; it does not wait for the server
func Open(ctx context.Context, cfg Config) (*PG, error) {
	pc, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("pg: parse url: %w", err)
	}
	if cfg.MaxConns > 0 {
		pc.MaxConns = cfg.MaxConns
	}
	if cfg.Tune != nil {
		cfg.Tune(pc)
	}
	pool, err := newPool(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("pg: new pool: %w", err)
	}
	return &PG{Pool: pool, tracer: cfg.Tracer, slow: cfg.Slow}, nil
}

// Observe reports a statement that began at start
func (p *PG) Observe(ctx context.Context, sql string, args []any, start time.Time, err error) {
	if p == nil || p.tracer == nil {
		return
	}
	elapsed := time.Since(start)
	p.tracer.OnQuery(ctx, QueryEvent{
		SQL:     sql,
		NArgs:   len(args),
		Elapsed: elapsed,
		Err:     err,
		Slow:    p.slow >= 0 && elapsed >= p.slow,
	})
}

// Close releases the pool; safe on nil
func (p *PG) Close() {
	if p != nil && p.Pool != nil {
		p.Pool.Close()
	}
}
