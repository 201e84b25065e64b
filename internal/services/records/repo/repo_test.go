package repo

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	perr "bankingops/internal/platform/errors"
	"bankingops/internal/platform/store"

	"github.com/jackc/pgx/v5"
)

// rowQuerier answers every QueryRow with a fixed scan error
type rowQuerier struct{ scanErr error }

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }

func (q rowQuerier) Exec(context.Context, string, ...any) (store.CommandTag, error) { return nil, nil }
func (q rowQuerier) Query(context.Context, string, ...any) (store.Rows, error) { return nil, nil }
func (q rowQuerier) QueryRow(context.Context, string, ...any) store.Row { return errRow{q.scanErr} }

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		name     string
		filters  map[string]any
		top      int
		wantSQL  []string
		skipSQL  []string
		wantArgs int
	}{
		{"bare", nil, 0, []string{"entity = $1", "ORDER BY"}, []string{"@>", "LIMIT"}, 1},
		{"filtered", map[string]any{"bkg_kycstatus": 100000000}, 0, []string{"fields @> $2::jsonb"}, []string{"LIMIT"}, 2},
		{"limited", map[string]any{"bkg_currency": "USD"}, 5, []string{"fields @> $2::jsonb", "LIMIT $3"}, nil, 3},
		{"limit only", nil, 10, []string{"LIMIT $2"}, []string{"@>"}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := buildQuery("account", tt.filters, tt.top)
			if err != nil {
				t.Fatalf("buildQuery err: %v", err)
			}
			for _, s := range tt.wantSQL {
				if !strings.Contains(sql, s) {
					t.Fatalf("sql %q missing %q", sql, s)
				}
			}
			for _, s := range tt.skipSQL {
				if strings.Contains(sql, s) {
					t.Fatalf("sql %q should not contain %q", sql, s)
				}
			}
			if len(args) != tt.wantArgs {
				t.Fatalf("args = %v, want %d", args, tt.wantArgs)
			}
		})
	}
}

func TestDecodeFieldsKeepsNumbers(t *testing.T) {
	got, err := decodeFields([]byte(`{"bkg_creditlimit": 10000.10, "bkg_kycstatus": 100000000}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if n, ok := got["bkg_creditlimit"].(json.Number); !ok || n.String() != "10000.10" {
		t.Fatalf("credit limit = %#v", got["bkg_creditlimit"])
	}
	if _, err := decodeFields([]byte(`{`)); !perr.IsCode(err, perr.ErrorCodeDB) {
		t.Fatalf("malformed stored fields should be a DB error, got %v", err)
	}
}

func TestProject(t *testing.T) {
	all := map[string]any{"a": 1, "b": 2}
	if got := project(all, nil); len(got) != 2 {
		t.Fatalf("no projection should return everything, got %v", got)
	}
	got := project(all, []string{"a", "missing"})
	if len(got) != 1 || got["a"] != 1 {
		t.Fatalf("projection = %v", got)
	}
}

func TestRejectsNonUUID(t *testing.T) {
	r := PG{}.Bind(nil)
	if _, err := r.Retrieve(context.Background(), "account", "nope"); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("retrieve with bad id: %v", err)
	}
	if err := r.Update(context.Background(), "account", "nope", nil); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("update with bad id: %v", err)
	}
}

func TestRetrieveMissingIsNotFound(t *testing.T) {
	r := PG{}.Bind(rowQuerier{scanErr: pgx.ErrNoRows})
	_, err := r.Retrieve(context.Background(), "account", "0d6c3b8e-2f7a-4e55-8c3e-6b1d2a9f4c10")
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("want not found, got %v", err)
	}
}

func TestEncodeFailuresAreMasked(t *testing.T) {
	r := PG{}.Bind(rowQuerier{})
	bad := map[string]any{"bkg_amount": make(chan int)}

	err := r.Update(context.Background(), "account", "0d6c3b8e-2f7a-4e55-8c3e-6b1d2a9f4c10", bad)
	if perr.CategoryOf(err) != perr.CategoryInternalError || perr.Verbatim(err) {
		t.Fatalf("update encode failure should be internal, got %v (%s)", err, perr.CategoryOf(err))
	}
	if _, err := r.Create(context.Background(), "account", bad); perr.CategoryOf(err) != perr.CategoryInternalError {
		t.Fatalf("create encode failure should be internal, got %v", err)
	}
	if _, _, err := buildQuery("account", bad, 0); perr.CategoryOf(err) != perr.CategoryInternalError {
		t.Fatalf("filter encode failure should be internal, got %v", err)
	}
}
