package config

import (
	"reflect"
	"testing"
	"time"

	kit "bankingops/internal/platform/testkit"
)

func TestMustString_ScopedAndRequired(t *testing.T) {
	t.Setenv("CFGT_PG_CORE_DATABASE_URL", " postgres://localhost/core ")

	pg := New().Prefix("CFGT_").Prefix("PG_")
	if got := pg.MustString("CORE_DATABASE_URL"); got != "postgres://localhost/core" {
		t.Fatalf("MustString = %q", got)
	}
	kit.MustPanic(t, func() { pg.MustString("CH_URL") })
}

func TestOptionalReadsFallBack(t *testing.T) {
	t.Setenv("CFGT_WORKERS", "8")
	t.Setenv("CFGT_RATE", "0.25")
	t.Setenv("CFGT_SWAGGER", "false")
	t.Setenv("CFGT_TIMEOUT", "750ms")
	t.Setenv("CFGT_BAD_INT", "eight")
	t.Setenv("CFGT_BAD_DUR", "10")
	t.Setenv("CFGT_BLANK", "  ")

	c := New().Prefix("CFGT_")
	if got := c.MayInt("WORKERS", 1); got != 8 {
		t.Fatalf("MayInt = %d", got)
	}
	if got := c.MayFloat64("RATE", 1); got != 0.25 {
		t.Fatalf("MayFloat64 = %v", got)
	}
	if c.MayBool("SWAGGER", true) {
		t.Fatal("MayBool ignored an explicit false")
	}
	if got := c.MayDuration("TIMEOUT", time.Second); got != 750*time.Millisecond {
		t.Fatalf("MayDuration = %v", got)
	}
	if got := c.MayInt("BAD_INT", 3); got != 3 {
		t.Fatalf("malformed int = %d, want default", got)
	}
	if got := c.MayDuration("BAD_DUR", time.Second); got != time.Second {
		t.Fatalf("unitless duration = %v, want default", got)
	}
	if got := c.MayString("BLANK", "console"); got != "console" {
		t.Fatalf("blank string = %q, want default", got)
	}
}

func TestSplitList(t *testing.T) {
	cases := []struct {
		in, delims string
		want       []string
	}{
		{"USD, EUR;;GBP ", ",;", []string{"USD", "EUR", "GBP"}},
		{"  ", ",", nil},
		{"JPY", ",", []string{"JPY"}},
	}
	for _, c := range cases {
		if got := SplitList(c.in, c.delims); !reflect.DeepEqual(got, c.want) {
			t.Fatalf("SplitList(%q) = %#v, want %#v", c.in, got, c.want)
		}
	}
}
