// Package middleware assembles the request chain every API route runs behind
package middleware

import (
	"compress/flate"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// StackOptions tunes Stack; zero values take the defaults noted per field
type StackOptions struct {
	Timeout     time.Duration // 30s
	SlowRequest time.Duration // 500ms; requests at or over it log at warn
	// AllowedOrigins for CORS; empty allows any origin
	AllowedOrigins []string
}

// Stack returns the chain outermost first. Ids are attached before anything
// logs, and the access log sits outside recovery so panics are logged as 500s.
func Stack(o StackOptions) []func(http.Handler) http.Handler {
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	if o.SlowRequest <= 0 {
		o.SlowRequest = 500 * time.Millisecond
	}
	return []func(http.Handler) http.Handler{
		chimw.RequestID,
		Correlation(),
		chimw.RealIP,
		AccessLog(o.SlowRequest),
		RecoverJSON,
		chimw.NoCache,
		cors.Handler(cors.Options{
			AllowedOrigins: o.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", chimw.RequestIDHeader, "X-Correlation-ID"},
			ExposedHeaders: []string{"X-Correlation-ID"},
			MaxAge:         300,
		}),
		chimw.NewCompressor(flate.BestSpeed).Handler,
		chimw.StripSlashes,
		chimw.Timeout(o.Timeout),
	}
}
