// Package domain holds the setting types and ports used by the resolver
package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// Source says which layer produced a setting value
type Source int

const (
	// Override comes from the platform-hosted key/value store
	Override Source = iota + 1
	// Secret comes from the process environment
	Secret
	// StaticDefault is the value the caller passed in
	StaticDefault
	// BuiltinFallback is the typed default used when nothing parsed
	BuiltinFallback
)

func (s Source) String() string {
	switch s {
	case Override:
		return "override"
	case Secret:
		return "secret"
	case StaticDefault:
		return "static"
	case BuiltinFallback:
		return "builtin"
	default:
		return "unknown"
	}
}

// Setting is a resolved value and where it came from
type Setting struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source Source `json:"-"`
}

// OverrideStore looks up platform-hosted overrides by exact name
// an unset name is ("", false, nil), never an error
type OverrideStore interface {
	LookupOverride(ctx context.Context, name string) (string, bool, error)
}

// OverrideWriter writes overrides for operators
type OverrideWriter interface {
	Upsert(ctx context.Context, name, value string) error
}

// Resolver resolves settings through the layered chain
// no method ever returns an error; the worst case is the caller's default
type Resolver interface {
	Resolve(ctx context.Context, name, static string) string
	Setting(ctx context.Context, name, static string) Setting
	ResolveInt(ctx context.Context, name, static string, builtin int) (int, Source)
	ResolveDecimal(ctx context.Context, name, static string, builtin decimal.Decimal) (decimal.Decimal, Source)
}
