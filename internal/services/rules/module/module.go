// Package module wires the rules engine from the settings, idempotency and records ports
package module

import (
	"bankingops/internal/adapters/fraudscore"
	"bankingops/internal/modkit"
	"bankingops/internal/modkit/httpkit"
	"bankingops/internal/platform/net/retryhttp"
	idem "bankingops/internal/services/idempotency/domain"
	records "bankingops/internal/services/records/domain"
	"bankingops/internal/services/rules/domain"
	"bankingops/internal/services/rules/service"
	settings "bankingops/internal/services/settings/domain"
)

// Ports are the collaborators injected with modkit.WithPorts
type Ports struct {
	Records  records.Store
	Settings settings.Resolver
	Guard    idem.Guard

	// Fraud overrides the scoring client built from Options
	Fraud service.FraudScorer
}

// Exposed are the ports this module offers
type Exposed struct {
	Engine domain.Engine
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	name  string
	ports Exposed
}

// New constructs the rules module; it panics when a required port is missing
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("rules")}, opts...)...)
	cfg := FromConfig(deps.Cfg)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}
	if injected.Records == nil || injected.Settings == nil || injected.Guard == nil {
		panic("rules module requires Records, Settings and Guard ports")
	}
	if injected.Fraud == nil {
		client := retryhttp.New(retryhttp.Options{
			Timeout:     cfg.HTTPTimeout,
			MaxAttempts: cfg.HTTPAttempts,
			BaseDelay:   cfg.HTTPBaseDelay,
			Jitter:      retryhttp.FractionalJitter(cfg.HTTPJitter),
		})
		injected.Fraud = fraudscore.New(client, cfg.HTTPAttempts)
	}

	svc := service.New(service.Deps{
		Records:  injected.Records,
		Settings: injected.Settings,
		Guard:    injected.Guard,
		Fraud:    injected.Fraud,
	}, service.Config{MarkTTL: cfg.MarkTTL})

	return &Module{deps: deps, name: b.Name, ports: Exposed{Engine: svc}}
}

// Name implements modkit.Module
func (m *Module) Name() string { return m.name }

// Ports implements modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(httpkit.Router) {}
