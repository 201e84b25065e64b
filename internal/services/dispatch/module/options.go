package module

import "bankingops/internal/platform/config"

// Options configures the dispatch module
type Options struct {
	// ProfilePath points at the YAML registration profile; a missing file means no static config
	ProfilePath string
}

// FromConfig reads options from config.Conf
func FromConfig(cfg config.Conf) Options {
	return Options{ProfilePath: cfg.Prefix("BANKINGOPS_").MayString("PROFILE", "")}
}
