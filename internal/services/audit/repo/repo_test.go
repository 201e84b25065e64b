package repo

import (
	"context"
	"strings"
	"testing"
	"time"

	perr "bankingops/internal/platform/errors"
	"bankingops/internal/platform/store"
	"bankingops/internal/services/audit/domain"
)

type fakeCH struct {
	table string
	cols  []string
	rows  [][]any
	sql   string
}

func (f *fakeCH) Insert(_ context.Context, table string, cols []string, rows [][]any) error {
	f.table, f.cols, f.rows = table, cols, rows
	return nil
}
func (f *fakeCH) Exec(context.Context, string, ...any) error { return nil }
func (f *fakeCH) Query(_ context.Context, sql string, _ ...any) (store.Rows, error) {
	f.sql = sql
	return emptyRows{}, nil
}
func (f *fakeCH) Close() error { return nil }

type emptyRows struct{}

func (emptyRows) Next() bool        { return false }
func (emptyRows) Scan(...any) error { return nil }
func (emptyRows) Err() error        { return nil }
func (emptyRows) Close()            {}
func (emptyRows) Columns() []string { return nil }

func TestInsertShapesRows(t *testing.T) {
	f := &fakeCH{}
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.FixedZone("X", 7200))
	err := NewCH(f).Insert(context.Background(), domain.Decision{
		At: at, Operation: "ValidateTransaction", CorrelationID: "c", RecordID: "r",
		Outcome: domain.OutcomeRejected, Category: "PolicyViolation",
		Code: perr.ErrorCodePolicyViolation, ElapsedMS: 12,
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if f.table != "rule_decisions" || len(f.cols) != 8 || len(f.rows) != 1 {
		t.Fatalf("insert shape = %s %v %d", f.table, f.cols, len(f.rows))
	}
	row := f.rows[0]
	if got := row[0].(time.Time); !got.Equal(at) || got.Location() != time.UTC {
		t.Fatalf("at = %v", got)
	}
	if row[4] != "rejected" || row[6] != "policy_violation" || row[7] != uint32(12) {
		t.Fatalf("row = %#v", row)
	}
}

func TestInsertEmptyIsNoop(t *testing.T) {
	f := &fakeCH{}
	if err := NewCH(f).Insert(context.Background()); err != nil || f.table != "" {
		t.Fatalf("empty insert touched the store")
	}
}

func TestRecentClampsLimit(t *testing.T) {
	f := &fakeCH{}
	if _, err := NewCH(f).Recent(context.Background(), 0); err != nil {
		t.Fatalf("recent: %v", err)
	}
	if want := "LIMIT 100"; !strings.Contains(f.sql, want) {
		t.Fatalf("sql %q missing %q", f.sql, want)
	}
}
