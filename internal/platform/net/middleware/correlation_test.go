package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pnet "bankingops/internal/platform/net"
)

func TestCorrelation(t *testing.T) {
	cases := []struct {
		name   string
		header string
		want   string
	}{
		{"propagates", "  c-123 ", "c-123"},
		{"absent", "", ""},
		{"too long", strings.Repeat("x", maxCorrelationID+1), ""},
	}
	for _, c := range cases {
		var seen string
		h := Correlation()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = pnet.CorrelationID(r.Context())
		}))
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		if c.header != "" {
			req.Header.Set(pnet.HeaderCorrelationID, c.header)
		}
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		if seen != c.want {
			t.Fatalf("%s: context id = %q, want %q", c.name, seen, c.want)
		}
		if got := rr.Header().Get(pnet.HeaderCorrelationID); got != c.want {
			t.Fatalf("%s: echoed header = %q, want %q", c.name, got, c.want)
		}
	}
}
