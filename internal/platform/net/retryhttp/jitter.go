package retryhttp

import (
	"math/rand"
	"time"
)

// FractionalJitter spreads each delay uniformly within ±frac of its value.
// frac <= 0 returns nil (no jitter); frac is capped at 1.
func FractionalJitter(frac float64) func(time.Duration) time.Duration {
	if frac <= 0 {
		return nil
	}
	if frac > 1 {
		frac = 1
	}
	return func(d time.Duration) time.Duration {
		span := float64(d) * frac
		return d + time.Duration(span*(2*rand.Float64()-1))
	}
}
