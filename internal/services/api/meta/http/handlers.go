// Package http serves liveness, readiness and build information
package http

import (
	"context"
	"net/http"
	"time"

	"bankingops/internal/modkit/httpkit"
	"bankingops/internal/platform/version"
)

// Check is one readiness dependency. A nil Ping means the backend is not
// configured. A failing Required check fails readiness; any other failure
// only degrades it.
type Check struct {
	Name     string
	Required bool
	Ping     func(context.Context) error
}

// Deps are what the handlers report on
type Deps struct {
	ServiceName  string
	StartedAt    time.Time
	Checks       []Check
	CheckTimeout time.Duration
}

// CheckResult is the outcome of one Check
type CheckResult struct {
	Name   string `json:"name"`
	Status string `json:"status"` // ok, fail or skipped
	Error  string `json:"error,omitempty"`
}

// Readiness is the /ready payload; Status is ok, degraded or fail
type Readiness struct {
	Status string        `json:"status"`
	Checks []CheckResult `json:"checks"`
	Now    time.Time     `json:"now"`
}

// Liveness is the /health and /service payload
type Liveness struct {
	Service       string    `json:"service"`
	Started       time.Time `json:"started"`
	UptimeSeconds int64     `json:"uptime_seconds"`
}

// Register mounts /health, /ready, /version and /service on r
func Register(r httpkit.Router, d Deps) {
	if d.CheckTimeout <= 0 {
		d.CheckTimeout = 2 * time.Second
	}
	httpkit.Get(r, "/health", d.live)
	httpkit.Get(r, "/service", d.live)
	httpkit.Get(r, "/ready", d.ready)
	httpkit.Get(r, "/version", func(*http.Request) (any, error) { return version.Info(d.ServiceName), nil })
}

func (d Deps) live(*http.Request) (any, error) {
	return Liveness{
		Service:       d.ServiceName,
		Started:       d.StartedAt.UTC(),
		UptimeSeconds: int64(time.Since(d.StartedAt) / time.Second),
	}, nil
}

func (d Deps) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), d.CheckTimeout)
	defer cancel()

	out := Readiness{Status: "ok", Now: time.Now().UTC()}
	for _, c := range d.Checks {
		res := CheckResult{Name: c.Name, Status: "ok"}
		if c.Ping == nil {
			res.Status = "skipped"
		} else if err := c.Ping(ctx); err != nil {
			res.Status, res.Error = "fail", err.Error()
		}
		switch {
		case res.Status == "ok":
		case c.Required:
			out.Status = "fail"
		case res.Status == "fail" && out.Status == "ok":
			out.Status = "degraded"
		}
		out.Checks = append(out.Checks, res)
	}
	return out, nil
}
