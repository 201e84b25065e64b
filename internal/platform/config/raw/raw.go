// Package raw reads the environment without logging, so the logger can
// configure itself from it
package raw

import (
	"os"
	"strconv"
	"strings"
)

// Env is a prefixed view over the process environment
type Env struct{ prefix string }

// New returns an Env with no prefix
func New() Env { return Env{} }

// Prefix nests p under the current prefix
func (e Env) Prefix(p string) Env { return Env{prefix: e.prefix + p} }

// Name is the variable name key resolves to
func (e Env) Name(key string) string { return e.prefix + key }

// Lookup returns the trimmed value; blank counts as unset
func (e Env) Lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(e.Name(key))
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

// String returns the value or def
func (e Env) String(key, def string) string {
	if v, ok := e.Lookup(key); ok {
		return v
	}
	return def
}

// Bool accepts strconv spellings plus yes/no and on/off; anything else is def
func (e Env) Bool(key string, def bool) bool {
	v, ok := e.Lookup(key)
	if !ok {
		return def
	}
	switch strings.ToLower(v) {
	case "yes", "on":
		return true
	case "no", "off":
		return false
	}
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	return def
}

// Int returns a non-negative integer or def
func (e Env) Int(key string, def int) int {
	v, ok := e.Lookup(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}
