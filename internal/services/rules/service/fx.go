package service

import (
	"context"
	"strings"

	"bankingops/internal/platform/logger"
	"bankingops/internal/services/rules/domain"
)

// QuoteFx implements domain.Engine
func (s *Service) QuoteFx(ctx context.Context, base, counter, static string) (domain.FxQuote, error) {
	base = currencyCode(base, "USD")
	counter = currencyCode(counter, "EUR")

	builtin := domain.HeuristicPairRate
	if base == counter {
		builtin = domain.SamePairRate
	}
	rate, src := s.settings.ResolveDecimal(ctx, domain.StaticFxSetting(base, counter), static, builtin)

	logger.C(ctx).Debug().
		Str("pair", base+"/"+counter).
		Str("rate", rate.String()).
		Stringer("source", src).
		Msg("fx quote")
	return domain.FxQuote{Base: base, Counter: counter, Rate: rate}, nil
}

func currencyCode(code, def string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return def
	}
	return code
}
