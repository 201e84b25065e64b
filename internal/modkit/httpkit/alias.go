// Package httpkit is the handful of routing helpers modules use
// so they never import internal/platform/net/http directly
package httpkit

import (
	"net/http"

	pnet "bankingops/internal/platform/net"
	phttp "bankingops/internal/platform/net/http"
)

type (
	// Handler is the platform handler type
	Handler = phttp.Handler

	// Router is the platform router seam
	Router = phttp.Router
)

// JSON binds and validates the body into T, keeping numbers as json.Number, and envelopes the result
func JSON[T any](fn func(*http.Request, T) (any, error)) Handler { return phttp.JSONHandler(fn) }

// Call envelopes the result of a handler that takes no body
func Call(fn func(*http.Request) (any, error)) Handler { return phttp.CallHandler(fn) }

// PathParam returns a named route parameter
func PathParam(r *http.Request, name string) string { return phttp.PathParam(r, name) }

// CorrelationID returns the caller's X-Correlation-ID captured by the middleware stack
func CorrelationID(r *http.Request) string { return pnet.CorrelationID(r.Context()) }
