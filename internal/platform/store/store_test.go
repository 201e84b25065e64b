package store

import (
	"context"
	stdsql "database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"bankingops/internal/platform/store/ch"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type scanFunc func(dest ...any) error

func (f scanFunc) Scan(dest ...any) error { return f(dest...) }

// stubPgx stands in for a pool or transaction
type stubPgx struct {
	row      pgx.Row
	queryErr error
}

func (s stubPgx) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag("UPDATE 2"), nil
}

func (s stubPgx) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, s.queryErr
}

func (s stubPgx) QueryRow(context.Context, string, ...any) pgx.Row { return s.row }

type observed struct {
	sql   string
	nargs int
	err   error
}

func collect(into *[]observed) observeFunc {
	return func(_ context.Context, sql string, args []any, _ time.Time, err error) {
		*into = append(*into, observed{sql, len(args), err})
	}
}

func TestRowScan_TranslatesNoRows(t *testing.T) {
	boom := errors.New("boom")
	cases := []struct {
		name string
		in   error
		want error
	}{
		{"pgx no rows", pgx.ErrNoRows, stdsql.ErrNoRows},
		{"other errors pass through", boom, boom},
		{"success", nil, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var seen []error
			r := pgRow{
				r:       scanFunc(func(...any) error { return c.in }),
				scanned: func(err error) { seen = append(seen, err) },
			}
			if err := r.Scan(); err != c.want {
				t.Fatalf("Scan = %v, want %v", err, c.want)
			}
			if len(seen) != 1 || seen[0] != c.in {
				t.Fatalf("observer saw %v, want the driver error %v", seen, c.in)
			}
		})
	}
}

func TestIsNoRows(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{stdsql.ErrNoRows, true},
		{pgx.ErrNoRows, true},
		{errors.Join(errors.New("retrieve"), pgx.ErrNoRows), true},
		{errors.New("no rows in result set"), false},
		{nil, false},
	}
	for _, c := range cases {
		if got := IsNoRows(c.err); got != c.want {
			t.Fatalf("IsNoRows(%v) = %v, want %v", c.err, got, c.want)
		}
	}
}

func TestQuerier_ReportsEveryStatement(t *testing.T) {
	var seen []observed
	q := querier{
		db: stubPgx{
			row:      scanFunc(func(...any) error { return pgx.ErrNoRows }),
			queryErr: errors.New("relation does not exist"),
		},
		observe: collect(&seen),
	}
	ctx := context.Background()

	ct, err := q.Exec(ctx, "UPDATE records SET fields = $1 WHERE id = $2", "{}", "r-1")
	if err != nil || ct.RowsAffected() != 2 {
		t.Fatalf("Exec = %v, %v", ct, err)
	}
	if _, err := q.Query(ctx, "SELECT 1 FROM missing"); err == nil {
		t.Fatal("Query error swallowed")
	}
	var v string
	if err := q.QueryRow(ctx, "SELECT value FROM setting_overrides WHERE name = $1", "x").Scan(&v); !IsNoRows(err) {
		t.Fatalf("QueryRow = %v", err)
	}

	if len(seen) != 3 {
		t.Fatalf("observed %d statements, want 3", len(seen))
	}
	if seen[0].nargs != 2 || seen[1].err == nil || !errors.Is(seen[2].err, pgx.ErrNoRows) {
		t.Fatalf("observed = %+v", seen)
	}

	// no observer is fine
	if _, err := (querier{db: stubPgx{}}).Exec(ctx, "SELECT 1"); err != nil {
		t.Fatal(err)
	}
}

type columnsOnly struct {
	pgx.Rows
	names []string
}

func (c columnsOnly) FieldDescriptions() []pgconn.FieldDescription {
	out := make([]pgconn.FieldDescription, len(c.names))
	for i, n := range c.names {
		out[i].Name = n
	}
	return out
}

func TestPgRowsColumns(t *testing.T) {
	got := pgRows{columnsOnly{names: []string{"id", "fields"}}}.Columns()
	if strings.Join(got, ",") != "id,fields" {
		t.Fatalf("Columns = %v", got)
	}
}

// fakeCH satisfies chConn
type fakeCH struct {
	inserted int
	pingErr  error
	queryErr error
	closed   bool
}

func (f *fakeCH) Insert(_ context.Context, _ string, _ []string, rows [][]any) error {
	f.inserted += len(rows)
	return nil
}
func (f *fakeCH) Exec(context.Context, string, ...any) error { return nil }
func (f *fakeCH) Query(context.Context, string, ...any) (ch.Rows, error) {
	return nil, f.queryErr
}
func (f *fakeCH) Ping(context.Context) error { return f.pingErr }
func (f *fakeCH) Close() error               { f.closed = true; return nil }

type pingPG struct {
	TxRunner
	err error
}

func (p pingPG) Ping(context.Context) error { return p.err }

func TestGuard(t *testing.T) {
	var nilStore *Store
	if err := nilStore.Guard(context.Background()); err == nil {
		t.Fatal("nil store passed Guard")
	}
	if err := (&Store{}).Guard(context.Background()); err != nil {
		t.Fatalf("no backends: %v", err)
	}

	down := errors.New("connection refused")
	s := &Store{
		PG: pingPG{err: down},
		CH: chStore{&fakeCH{pingErr: errors.New("timeout")}},
	}
	err := s.Guard(context.Background())
	if !errors.Is(err, down) || !strings.Contains(err.Error(), "pg: connection refused") || !strings.Contains(err.Error(), "ch: timeout") {
		t.Fatalf("Guard = %v", err)
	}
}

func TestChStore(t *testing.T) {
	f := &fakeCH{queryErr: errors.New("unknown table")}
	var c Clickhouse = chStore{f}

	if err := c.Insert(context.Background(), "rule_decisions", nil, [][]any{{1}, {2}}); err != nil || f.inserted != 2 {
		t.Fatalf("Insert = %v, inserted %d", err, f.inserted)
	}
	if rs, err := c.Query(context.Background(), "SELECT 1"); err == nil || rs != nil {
		t.Fatalf("Query = %v, %v", rs, err)
	}
	if err := (&Store{CH: c}).Close(context.Background()); err != nil || !f.closed {
		t.Fatalf("Close = %v, closed %v", err, f.closed)
	}
}

func TestOpen_FailuresNameTheBackend(t *testing.T) {
	_, err := Open(context.Background(), Config{PG: PGConfig{Enabled: true, URL: "://bad"}})
	if err == nil || !strings.HasPrefix(err.Error(), "store: postgres:") {
		t.Fatalf("pg err = %v", err)
	}
	_, err = Open(context.Background(), Config{CH: CHConfig{Enabled: true}})
	if err == nil || !strings.HasPrefix(err.Error(), "store: clickhouse:") {
		t.Fatalf("ch err = %v", err)
	}

	s, err := Open(context.Background(), Config{})
	if err != nil || s.PG != nil || s.CH != nil {
		t.Fatalf("empty config = %+v, %v", s, err)
	}
}
