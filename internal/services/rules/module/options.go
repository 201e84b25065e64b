package module

import (
	"time"

	"bankingops/internal/platform/config"
)

// Options configures the rules module
type Options struct {
	MarkTTL       time.Duration
	HTTPTimeout   time.Duration
	HTTPAttempts  int
	HTTPBaseDelay time.Duration
	HTTPJitter    float64
}

// FromConfig reads options from config.Conf
func FromConfig(cfg config.Conf) Options {
	bf := cfg.Prefix("BANKINGOPS_")
	return Options{
		MarkTTL:       bf.MayDuration("MARK_TTL", time.Hour),
		HTTPTimeout:   bf.MayDuration("HTTP_TIMEOUT", 10*time.Second),
		HTTPAttempts:  bf.MayInt("HTTP_ATTEMPTS", 3),
		HTTPBaseDelay: bf.MayDuration("HTTP_BASE_DELAY", 500*time.Millisecond),
		HTTPJitter:    bf.MayFloat64("HTTP_JITTER", 0),
	}
}
