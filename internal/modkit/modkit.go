// Package modkit assembles API modules from shared deps and options
package modkit

import (
	"bankingops/internal/modkit/httpkit"
	"bankingops/internal/modkit/module"
	"bankingops/internal/modkit/repokit"
	"bankingops/internal/platform/config"
	"bankingops/internal/platform/logger"
	str "bankingops/internal/platform/strings"
	"bankingops/internal/platform/store"
)

// Deps are handed to every module constructor; PG and CH are nil when that backend is off
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
	CH  store.Clickhouse
}

// Module is the surface api.Mount composes
type Module = module.Module

// Option adjusts a module build
type Option func(*Built)

// Built is a module's resolved name, mount prefix and injected ports
type Built struct {
	Name   string
	Prefix string
	Ports  any
}

// WithName names the module for port lookups and logs
func WithName(name string) Option { return func(b *Built) { b.Name = name } }

// WithPrefix sets the path the module mounts under
func WithPrefix(prefix string) Option { return func(b *Built) { b.Prefix = prefix } }

// WithPorts injects collaborators; the concrete type belongs to the receiving module
func WithPorts(p any) Option { return func(b *Built) { b.Ports = p } }

// Build applies opts in order so callers can override a module's defaults
func Build(opts ...Option) Built {
	var b Built
	for _, o := range opts {
		o(&b)
	}
	return b
}

// Mount registers routes under the module prefix
func (b Built) Mount(r httpkit.Router, register func(httpkit.Router)) {
	r.Route(str.MustPrefix(b.Prefix), register)
}
