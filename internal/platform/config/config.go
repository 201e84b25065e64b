// Package config reads application settings from environment variables.
// Optional settings fall back to their default and log a warning when the
// value does not parse; required ones panic naming the variable.
package config

import (
	"strconv"
	"strings"
	"time"

	"bankingops/internal/platform/config/raw"
	"bankingops/internal/platform/logger"
)

// Conf scopes lookups under a prefix such as "API_" or "PG_"
type Conf struct{ env raw.Env }

// New returns the unprefixed root
func New() Conf { return Conf{env: raw.New()} }

// Prefix returns a child scope, e.g. New().Prefix("API_")
func (c Conf) Prefix(p string) Conf { return Conf{env: c.env.Prefix(p)} }

// MustString panics when key is unset or blank
func (c Conf) MustString(key string) string {
	v, ok := c.env.Lookup(key)
	if !ok {
		logger.Get().Panic().Str("key", c.env.Name(key)).Msg("missing required env")
	}
	return v
}

// MayString returns the value or def
func (c Conf) MayString(key, def string) string { return c.env.String(key, def) }

// MayInt returns the value or def
func (c Conf) MayInt(key string, def int) int { return parseOr(c, key, def, strconv.Atoi) }

// MayFloat64 returns the value or def
func (c Conf) MayFloat64(key string, def float64) float64 {
	return parseOr(c, key, def, func(s string) (float64, error) { return strconv.ParseFloat(s, 64) })
}

// MayBool returns the value or def
func (c Conf) MayBool(key string, def bool) bool { return parseOr(c, key, def, strconv.ParseBool) }

// MayDuration returns the value or def; values look like 250ms or 2s
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return parseOr(c, key, def, time.ParseDuration)
}

func parseOr[T any](c Conf, key string, def T, parse func(string) (T, error)) T {
	s, ok := c.env.Lookup(key)
	if !ok {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().Err(err).Str("key", c.env.Name(key)).Str("value", s).
			Interface("default", def).Msg("unparseable env; using default")
		return def
	}
	return v
}

// SplitList splits s on any rune in delims and drops blank parts
func SplitList(s, delims string) []string {
	var out []string
	for _, p := range strings.FieldsFunc(s, func(r rune) bool { return strings.ContainsRune(delims, r) }) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
