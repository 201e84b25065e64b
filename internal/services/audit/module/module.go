// Package module wires the decision log sink
package module

import (
	"time"

	"bankingops/internal/modkit"
	"bankingops/internal/modkit/httpkit"
	"bankingops/internal/services/audit/domain"
	"bankingops/internal/services/audit/repo"
	"bankingops/internal/services/audit/service"
)

// Ports exposed by the audit module
type Ports struct {
	Recorder domain.Recorder
}

// Module implements modkit.Module
type Module struct {
	ports Ports
}

// New writes to ClickHouse when deps.CH is set and drops decisions otherwise
func New(deps modkit.Deps) *Module {
	m := &Module{ports: Ports{Recorder: domain.Nop{}}}
	if deps.CH != nil {
		timeout := deps.Cfg.Prefix("BANKINGOPS_").MayDuration("AUDIT_TIMEOUT", 2*time.Second)
		m.ports.Recorder = service.New(repo.NewCH(deps.CH), timeout)
	}
	return m
}

// Name implements modkit.Module
func (m *Module) Name() string { return "audit" }

// Ports implements modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(httpkit.Router) {}

