package middleware

import (
	"context"
	"net/http"
	"time"

	"bankingops/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// AccessLog writes one line per request through the request-scoped logger
func AccessLog(slow time.Duration) func(http.Handler) http.Handler {
	return accessLog(slow, logger.C)
}

func accessLog(slow time.Duration, logFor func(context.Context) *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			elapsed := time.Since(start)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			log := logFor(r.Context())
			e := log.Info()
			switch {
			case status >= http.StatusInternalServerError:
				e = log.Error()
			case slow > 0 && elapsed >= slow:
				e = log.Warn()
			}
			e.Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("elapsed", elapsed).
				Msg("request")
		})
	}
}
