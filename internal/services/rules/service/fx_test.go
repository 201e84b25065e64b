package service

import (
	"context"
	"testing"

	"bankingops/internal/services/rules/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteFx(t *testing.T) {
	tests := []struct {
		name          string
		base, counter string
		static        string
		override      map[string]string
		wantPair      string
		wantRate      string
	}{
		{"same pair", "USD", "USD", "", nil, "USD/USD", "1"},
		{"heuristic", "USD", "EUR", "", nil, "USD/EUR", "0.9"},
		{"override", "USD", "EUR", "", map[string]string{"pp_StaticFx_USD_EUR": "0.87"}, "USD/EUR", "0.87"},
		{"codes are normalised", " usd", "eur ", "", map[string]string{"pp_StaticFx_USD_EUR": "0.87"}, "USD/EUR", "0.87"},
		{"defaults when absent", "", "", "", nil, "USD/EUR", "0.9"},
		{"static default", "GBP", "INR", "104.5", nil, "GBP/INR", "104.5"},
		{"override beats static", "GBP", "INR", "104.5", map[string]string{"pp_StaticFx_GBP_INR": "105"}, "GBP/INR", "105"},
		{"unparsable falls back", "EUR", "EUR", "n/a", nil, "EUR/EUR", "1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness()
			for k, v := range tt.override {
				h.over[k] = v
			}
			q, err := h.svc.QuoteFx(context.Background(), tt.base, tt.counter, tt.static)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPair, q.Base+"/"+q.Counter)
			assert.True(t, q.Rate.Equal(dec(tt.wantRate)), "rate = %s, want %s", q.Rate, tt.wantRate)
		})
	}
}

func TestStaticFxSetting(t *testing.T) {
	assert.Equal(t, "pp_StaticFx_USD_EUR", domain.StaticFxSetting("USD", "EUR"))
}
