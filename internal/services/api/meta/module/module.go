// Package module mounts the meta endpoints
package module

import (
	"context"
	"time"

	"bankingops/internal/modkit"
	"bankingops/internal/modkit/httpkit"

	metahttp "bankingops/internal/services/api/meta/http"
)

// Module serves health, readiness and build info
type Module struct {
	b    modkit.Built
	deps metahttp.Deps
}

// New builds the meta module; uptime counts from here. Postgres is required
// for readiness, the ClickHouse decision log is not.
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("meta"), modkit.WithPrefix("/meta")}, opts...)...)
	return &Module{
		b: b,
		deps: metahttp.Deps{
			ServiceName:  "bankingops-api",
			StartedAt:    time.Now(),
			CheckTimeout: deps.Cfg.Prefix("API_").MayDuration("READY_TIMEOUT", 2*time.Second),
			Checks: []metahttp.Check{
				{Name: "pg", Required: true, Ping: pingOf(deps.PG)},
				{Name: "ch", Ping: pingOf(deps.CH)},
			},
		},
	}
}

type pinger interface{ Ping(context.Context) error }

// pingOf is nil for a missing backend or one that cannot be pinged
func pingOf(seam any) func(context.Context) error {
	if p, ok := seam.(pinger); ok {
		return p.Ping
	}
	return nil
}

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(sub httpkit.Router) { metahttp.Register(sub, m.deps) })
}

// Name implements modkit.Module
func (m *Module) Name() string { return m.b.Name }

// Ports implements modkit.Module
func (m *Module) Ports() any { return nil }
