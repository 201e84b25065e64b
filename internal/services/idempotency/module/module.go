// Package module wires the idempotency guard
package module

import (
	"bankingops/internal/modkit"
	"bankingops/internal/modkit/httpkit"
	"bankingops/internal/services/idempotency/domain"
	"bankingops/internal/services/idempotency/repo"
	"bankingops/internal/services/idempotency/service"
)

// Ports exposed by the idempotency module
type Ports struct {
	Guard domain.Guard
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the idempotency module over deps.PG
func New(deps modkit.Deps) *Module {
	m := &Module{deps: deps}
	m.ports = Ports{Guard: service.New(repo.NewPG().Bind(deps.PG))}
	return m
}

// Name implements modkit.Module
func (m *Module) Name() string { return "idempotency" }

// Ports implements modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(httpkit.Router) {}
