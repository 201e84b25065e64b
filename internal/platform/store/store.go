// Package store opens the Postgres and ClickHouse backends and exposes them
// through the small seams repositories are written against
package store

import (
	"context"
	"errors"
	"fmt"
	"io"

	"bankingops/internal/platform/logger"
	"bankingops/internal/platform/store/ch"

	"github.com/rs/zerolog"
)

// Row is a single-row result
type Row interface {
	Scan(dest ...any) error
}

// Rows is a result set; Close must be called
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
	Columns() []string
}

// CommandTag reports what a statement did
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier runs statements against Postgres
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner is a RowQuerier that can also run fn in a transaction, committed
// when fn returns nil and rolled back otherwise
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Clickhouse is the decision-log backend
type Clickhouse interface {
	Insert(ctx context.Context, table string, columns []string, rows [][]any) error
	Exec(ctx context.Context, sql string, args ...any) error
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	Close() error
}

// Store holds whichever backends Open enabled; disabled ones stay nil
type Store struct {
	Log logger.Logger
	PG  TxRunner
	CH  Clickhouse
}

// Option adjusts a Store before any backend is opened
type Option func(*Store)

// WithLogger sets the logger the SQL tracer writes to
func WithLogger(l logger.Logger) Option { return func(s *Store) { s.Log = l } }

// Open connects the backends cfg enables. A failure closes whatever was
// already opened.
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{Log: zerolog.Nop()}
	for _, o := range opts {
		o(s)
	}
	if cfg.PG.Enabled {
		p, err := openPostgres(ctx, cfg.PG, s.Log)
		if err != nil {
			return nil, fmt.Errorf("store: postgres: %w", err)
		}
		s.PG = p
	}
	if cfg.CH.Enabled {
		c, err := ch.Open(ctx, ch.Config{DSN: cfg.CH.DSN, Role: cfg.AppName, DialTimeout: cfg.CH.DialTimeout})
		if err != nil {
			_ = s.Close(ctx)
			return nil, fmt.Errorf("store: clickhouse: %w", err)
		}
		s.CH = chStore{c}
	}
	return s, nil
}

type pinger interface{ Ping(context.Context) error }

// Guard pings each open backend that can be pinged
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("store: nil")
	}
	var errs []error
	for _, b := range []struct {
		name string
		seam any
	}{{"pg", s.PG}, {"ch", s.CH}} {
		if p, ok := b.seam.(pinger); ok {
			if err := p.Ping(ctx); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", b.name, err))
			}
		}
	}
	return errors.Join(errs...)
}

// Close closes every open backend
func (s *Store) Close(context.Context) error {
	var errs []error
	if s.CH != nil {
		errs = append(errs, s.CH.Close())
	}
	if c, ok := s.PG.(io.Closer); ok {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
