// Package module wires the settings resolver
package module

import (
	"bankingops/internal/modkit"
	"bankingops/internal/modkit/httpkit"
	"bankingops/internal/platform/config"
	"bankingops/internal/services/settings/domain"
	"bankingops/internal/services/settings/repo"
	"bankingops/internal/services/settings/service"
)

// Ports exposed by the settings module
type Ports struct {
	Resolver domain.Resolver
	Writer   domain.OverrideWriter
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the settings module; without PG only secrets and static defaults resolve
func New(deps modkit.Deps) *Module {
	opts := FromConfig(deps.Cfg)

	var (
		store  domain.OverrideStore
		writer domain.OverrideWriter
	)
	if deps.PG != nil {
		r := repo.NewPG().Bind(deps.PG)
		store, writer = r, r
	}

	m := &Module{deps: deps}
	m.ports = Ports{
		Resolver: service.New(store, config.New().Prefix(opts.SecretPrefix)),
		Writer:   writer,
	}
	return m
}

// Name implements modkit.Module
func (m *Module) Name() string { return "settings" }

// Ports implements modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(httpkit.Router) {}
