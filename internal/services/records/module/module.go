// Package module exposes the record store to other modules
package module

import (
	"bankingops/internal/modkit"
	"bankingops/internal/modkit/httpkit"
	"bankingops/internal/services/records/domain"
	"bankingops/internal/services/records/repo"
)

// Ports exposed by the records module
type Ports struct {
	Store domain.Store
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New binds the Postgres record store to deps.PG
func New(deps modkit.Deps) *Module {
	m := &Module{deps: deps}
	m.ports = Ports{Store: repo.NewPG().Bind(deps.PG)}
	return m
}

// Name implements modkit.Module
func (m *Module) Name() string { return "records" }

// Ports implements modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(httpkit.Router) {}
