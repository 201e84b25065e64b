package middleware

import (
	"net/http"
	"runtime/debug"

	perr "bankingops/internal/platform/errors"
	"bankingops/internal/platform/logger"
	phttp "bankingops/internal/platform/net/http"
)

// RecoverJSON turns a panic into the standard error envelope with a 500 and
// logs the stack. http.ErrAbortHandler is re-raised so the server aborts the
// connection as usual.
func RecoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			logger.C(r.Context()).Error().
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")
			phttp.Handle(func(*http.Request) phttp.Response {
				return phttp.Error(perr.PanicErrf("internal error"))
			}).ServeHTTP(w, r)
		}()
		next.ServeHTTP(w, r)
	})
}
