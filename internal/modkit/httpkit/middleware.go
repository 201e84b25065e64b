package httpkit

import (
	"net/http"
	"time"

	"bankingops/internal/platform/config"
	"bankingops/internal/platform/net/middleware"
)

// CommonStack is the chain mounted in front of every versioned API, tuned by
// API_REQUEST_TIMEOUT, API_SLOW_REQUEST and API_CORS_ORIGINS (comma separated)
func CommonStack(cfg config.Conf) []func(http.Handler) http.Handler {
	c := cfg.Prefix("API_")
	return middleware.Stack(middleware.StackOptions{
		Timeout:        c.MayDuration("REQUEST_TIMEOUT", 30*time.Second),
		SlowRequest:    c.MayDuration("SLOW_REQUEST", 500*time.Millisecond),
		AllowedOrigins: config.SplitList(c.MayString("CORS_ORIGINS", ""), ","),
	})
}
