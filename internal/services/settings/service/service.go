// Package service resolves settings through an ordered chain of layers
package service

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"bankingops/internal/platform/config"
	"bankingops/internal/platform/logger"
	"bankingops/internal/services/settings/domain"

	"github.com/shopspring/decimal"
)

// Layer is one named step of the resolution chain
type Layer struct {
	Name   string
	Source domain.Source
	Lookup func(ctx context.Context, name, static string) (string, bool, error)
}

// Service implements domain.Resolver
type Service struct {
	layers []Layer
	log    *logger.Logger
}

// Option customises the service
type Option func(*Service)

// WithLayers replaces the default chain, mostly for tests
func WithLayers(layers ...Layer) Option {
	return func(s *Service) { s.layers = layers }
}

// WithLogger sets the logger used for swallowed store errors
func WithLogger(l *logger.Logger) Option {
	return func(s *Service) { s.log = l }
}

// New builds the default chain: override store, then secrets from env, then the caller's default
func New(store domain.OverrideStore, secrets config.Conf, opts ...Option) *Service {
	s := &Service{
		layers: []Layer{
			OverrideLayer(store),
			SecretLayer(secrets),
			StaticLayer(),
		},
	}
	for _, o := range opts {
		o(s)
	}
	if s.log == nil {
		s.log = logger.Named("settings")
	}
	return s
}

// OverrideLayer queries the platform-hosted overrides; a nil store is skipped
func OverrideLayer(store domain.OverrideStore) Layer {
	return Layer{
		Name:   "override",
		Source: domain.Override,
		Lookup: func(ctx context.Context, name, _ string) (string, bool, error) {
			if store == nil {
				return "", false, nil
			}
			return store.LookupOverride(ctx, name)
		},
	}
}

// SecretLayer reads <prefix><NAME> from the environment view
func SecretLayer(secrets config.Conf) Layer {
	return Layer{
		Name:   "secret",
		Source: domain.Secret,
		Lookup: func(_ context.Context, name, _ string) (string, bool, error) {
			v := secrets.MayString(SecretKey(name), "")
			return v, v != "", nil
		},
	}
}

// StaticLayer returns the caller-supplied default
func StaticLayer() Layer {
	return Layer{
		Name:   "static",
		Source: domain.StaticDefault,
		Lookup: func(_ context.Context, _, static string) (string, bool, error) {
			return static, true, nil
		},
	}
}

var nonAlnum = regexp.MustCompile(`[^A-Z0-9]+`)

// SecretKey maps a setting name onto an env suffix, pp_FraudApiKey -> PP_FRAUDAPIKEY
func SecretKey(name string) string {
	return nonAlnum.ReplaceAllString(strings.ToUpper(name), "_")
}

// Resolve implements domain.Resolver
func (s *Service) Resolve(ctx context.Context, name, static string) string {
	return s.Setting(ctx, name, static).Value
}

// Setting implements domain.Resolver
func (s *Service) Setting(ctx context.Context, name, static string) domain.Setting {
	if strings.TrimSpace(name) == "" {
		return domain.Setting{Value: static, Source: domain.StaticDefault}
	}
	for _, l := range s.layers {
		v, ok, err := l.Lookup(ctx, name, static)
		if err != nil {
			s.log.Warn().Err(err).Str("setting", name).Str("layer", l.Name).Msg("setting lookup failed, falling through")
			continue
		}
		if ok && strings.TrimSpace(v) != "" {
			return domain.Setting{Name: name, Value: v, Source: l.Source}
		}
	}
	return domain.Setting{Name: name, Value: static, Source: domain.StaticDefault}
}

// ResolveInt implements domain.Resolver
func (s *Service) ResolveInt(ctx context.Context, name, static string, builtin int) (int, domain.Source) {
	st := s.Setting(ctx, name, static)
	n, err := strconv.Atoi(strings.TrimSpace(st.Value))
	if err != nil {
		return builtin, domain.BuiltinFallback
	}
	return n, st.Source
}

// ResolveDecimal implements domain.Resolver
func (s *Service) ResolveDecimal(
	ctx context.Context,
	name, static string,
	builtin decimal.Decimal,
) (decimal.Decimal, domain.Source) {
	st := s.Setting(ctx, name, static)
	d, err := decimal.NewFromString(strings.TrimSpace(st.Value))
	if err != nil {
		return builtin, domain.BuiltinFallback
	}
	return d, st.Source
}
