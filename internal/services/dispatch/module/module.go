// Package module wires the operation dispatcher into the API using modkit
package module

import (
	"fmt"

	"bankingops/internal/modkit"
	"bankingops/internal/modkit/httpkit"
	audit "bankingops/internal/services/audit/domain"
	"bankingops/internal/services/dispatch/domain"
	dispatchhttp "bankingops/internal/services/dispatch/http"
	"bankingops/internal/services/dispatch/service"
	rules "bankingops/internal/services/rules/domain"
)

// Ports are the collaborators injected with modkit.WithPorts
type Ports struct {
	Engine   rules.Engine
	Recorder audit.Recorder

	// Profile overrides the file named by Options.ProfilePath
	Profile *domain.Profile
}

// Exposed are the ports this module offers
type Exposed struct {
	Dispatcher domain.Dispatcher
}

// Module implements modkit.Module
type Module struct {
	b     modkit.Built
	svc   *service.Service
	ports Exposed
}

// New constructs the dispatch module; it panics without an Engine or on an unreadable profile
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("dispatch"), modkit.WithPrefix("/operations")}, opts...)...)

	injected, _ := b.Ports.(Ports)
	if injected.Engine == nil {
		panic("dispatch module requires an Engine port")
	}

	var profile domain.Profile
	if injected.Profile != nil {
		profile = *injected.Profile
	} else {
		p, err := domain.LoadProfile(FromConfig(deps.Cfg).ProfilePath)
		if err != nil {
			panic(fmt.Sprintf("dispatch module: %v", err))
		}
		profile = p
	}

	svc := service.New(injected.Engine, injected.Recorder, profile)
	return &Module{b: b, svc: svc, ports: Exposed{Dispatcher: svc}}
}

// MountRoutes mounts the operation endpoints under the module prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(sub httpkit.Router) { dispatchhttp.Register(sub, m.svc) })
}

// Name implements modkit.Module
func (m *Module) Name() string { return m.b.Name }

// Ports implements modkit.Module
func (m *Module) Ports() any { return m.ports }
