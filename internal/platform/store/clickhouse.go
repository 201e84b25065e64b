package store

import (
	"context"

	"bankingops/internal/platform/store/ch"
)

// chConn is the part of *ch.CH the store relies on
type chConn interface {
	Insert(ctx context.Context, table string, columns []string, rows [][]any) error
	Exec(ctx context.Context, sql string, args ...any) error
	Query(ctx context.Context, sql string, args ...any) (ch.Rows, error)
	Ping(ctx context.Context) error
	Close() error
}

// chStore narrows the driver rows to Rows
type chStore struct{ chConn }

func (s chStore) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	rs, err := s.chConn.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return chRows{rs}, nil
}

type chRows struct{ ch.Rows }

func (r chRows) Close() { _ = r.Rows.Close() }
