package store

import (
	"context"
	stdsql "database/sql"
	"errors"
	"fmt"
	"time"

	"bankingops/internal/platform/logger"
	"bankingops/internal/platform/store/pg"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// IsNoRows reports a single-row read that matched nothing
func IsNoRows(err error) bool {
	return errors.Is(err, stdsql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows)
}

// pgxQuerier is what pgxpool.Pool and pgx.Tx have in common
type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type observeFunc func(ctx context.Context, sql string, args []any, start time.Time, err error)

// querier adapts a pgxQuerier to RowQuerier and reports every statement
type querier struct {
	db      pgxQuerier
	observe observeFunc
}

func (q querier) done(ctx context.Context, sql string, args []any, start time.Time, err error) {
	if q.observe != nil {
		q.observe(ctx, sql, args, start, err)
	}
}

func (q querier) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	start := time.Now()
	ct, err := q.db.Exec(ctx, sql, args...)
	q.done(ctx, sql, args, start, err)
	return ct, err
}

// Query reports when the result set opens, not when it is drained
func (q querier) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	start := time.Now()
	rs, err := q.db.Query(ctx, sql, args...)
	q.done(ctx, sql, args, start, err)
	if err != nil {
		return nil, err
	}
	return pgRows{rs}, nil
}

// QueryRow reports once Scan returns, since that is when pgx surfaces the error
func (q querier) QueryRow(ctx context.Context, sql string, args ...any) Row {
	start := time.Now()
	r := q.db.QueryRow(ctx, sql, args...)
	return pgRow{r: r, scanned: func(err error) { q.done(ctx, sql, args, start, err) }}
}

// pgRow turns pgx.ErrNoRows into sql.ErrNoRows so callers can match either
type pgRow struct {
	r       pgx.Row
	scanned func(error)
}

func (r pgRow) Scan(dest ...any) error {
	err := r.r.Scan(dest...)
	if r.scanned != nil {
		r.scanned(err)
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return stdsql.ErrNoRows
	}
	return err
}

type pgRows struct{ pgx.Rows }

func (r pgRows) Columns() []string {
	fds := r.FieldDescriptions()
	names := make([]string, 0, len(fds))
	for _, fd := range fds {
		names = append(names, fd.Name)
	}
	return names
}

// pgStore is the TxRunner over a pool
type pgStore struct {
	querier
	p *pg.PG
}

func (s *pgStore) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	return pgx.BeginFunc(ctx, s.p.Pool, func(tx pgx.Tx) error {
		return fn(querier{db: tx, observe: s.observe})
	})
}

func (s *pgStore) Ping(ctx context.Context) error { return s.p.Pool.Ping(ctx) }

func (s *pgStore) Close() error {
	s.p.Close()
	return nil
}

// openPostgres builds the pool and waits for the server, backing off
// exponentially between pings
func openPostgres(ctx context.Context, cfg PGConfig, log logger.Logger) (*pgStore, error) {
	var tracer pg.QueryTracer
	if cfg.LogSQL {
		tracer = pg.Tracer(log)
	}
	p, err := pg.Open(ctx, pg.Config{
		URL:      cfg.URL,
		MaxConns: cfg.MaxConns,
		Slow:     time.Duration(cfg.SlowQueryMs) * time.Millisecond,
		Tracer:   tracer,
	})
	if err != nil {
		return nil, err
	}

	attempts := cfg.ConnectRetries
	if attempts <= 0 {
		attempts = 6
	}
	timeout := cfg.PingTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 150 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	b.MaxElapsedTime = 0

	ping := func() error {
		pctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return p.Pool.Ping(pctx)
	}
	notify := func(err error, next time.Duration) {
		log.Warn().Err(err).Dur("retry_in", next).Msg("postgres not ready")
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(attempts-1)), ctx)
	if err := backoff.RetryNotify(ping, policy, notify); err != nil {
		p.Close()
		return nil, fmt.Errorf("ping failed after %d attempts: %w", attempts, err)
	}
	return &pgStore{querier: querier{db: p.Pool, observe: p.Observe}, p: p}, nil
}
