package errors

import (
	stderrs "errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestDBErrorCode(t *testing.T) {
	cases := []struct {
		state string
		want  ErrorCode
	}{
		{"23505", ErrorCodeDuplicateKey},
		{"23503", ErrorCodeInvalidArgument},
		{"22P02", ErrorCodeInvalidArgument},
		{"23514", ErrorCodeValidation},
		{"57P03", ErrorCodeUnavailable},
		{"53300", ErrorCodeUnavailable},
		{"40001", ErrorCodeDB},
	}
	for _, c := range cases {
		wrapped := fmt.Errorf("exec: %w", &pgconn.PgError{Code: c.state})
		got, ok := DBErrorCode(wrapped)
		if !ok || got != c.want {
			t.Fatalf("DBErrorCode(%s) = %v, %v; want %v", c.state, got, ok, c.want)
		}
	}
	if _, ok := DBErrorCode(stderrs.New("dial tcp: refused")); ok {
		t.Fatal("plain errors must not map")
	}
}

func TestFromPostgresf(t *testing.T) {
	if FromPostgresf(nil, "x") != nil {
		t.Fatal("nil should stay nil")
	}

	err := FromPostgresf(&pgconn.PgError{Code: "57P03"}, "query %s", "records")
	if CodeOf(err) != ErrorCodeUnavailable || CategoryOf(err) != CategoryTransientFailure {
		t.Fatalf("code = %v, category = %v", CodeOf(err), CategoryOf(err))
	}
	if Verbatim(err) {
		t.Fatal("store failures must not surface verbatim")
	}

	plain := FromPostgresf(stderrs.New("conn closed"), "query")
	if CodeOf(plain) != ErrorCodeDB || CategoryOf(plain) != CategoryInternalError {
		t.Fatalf("plain code = %v, category = %v", CodeOf(plain), CategoryOf(plain))
	}
}
