package net_test

import (
	"context"
	"testing"

	pnet "bankingops/internal/platform/net"
)

func TestWithRequest(t *testing.T) {
	cases := []struct{ req, corr string }{
		{"req-1", "corr-1"},
		{"req-2", ""},
		{"", "corr-3"},
	}
	for _, c := range cases {
		ctx := pnet.WithRequest(context.Background(), c.req, c.corr)
		if pnet.RequestID(ctx) != c.req || pnet.CorrelationID(ctx) != c.corr {
			t.Fatalf("WithRequest(%q, %q) = %q, %q", c.req, c.corr, pnet.RequestID(ctx), pnet.CorrelationID(ctx))
		}
	}

	base := context.Background()
	if pnet.WithRequest(base, "", "") != base {
		t.Fatal("blank ids should leave ctx untouched")
	}
}
