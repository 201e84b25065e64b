package middleware

import (
	"net/http"
	"strings"

	"bankingops/internal/platform/logger"
	pnet "bankingops/internal/platform/net"
)

// maxCorrelationID bounds what we accept from callers
const maxCorrelationID = 128

// Correlation copies X-Correlation-ID onto the request and logger contexts and echoes it back
// run after RequestID so both ids land on the same context
func Correlation() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimSpace(r.Header.Get(pnet.HeaderCorrelationID))
			if id == "" || len(id) > maxCorrelationID {
				next.ServeHTTP(w, r)
				return
			}
			ctx := pnet.WithRequest(r.Context(), "", id)
			ctx = logger.WithRequest(ctx, pnet.RequestID(ctx), id)
			w.Header().Set(pnet.HeaderCorrelationID, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
