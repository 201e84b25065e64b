package module

import "bankingops/internal/platform/config"

// Options configures the settings module
type Options struct {
	SecretPrefix string
}

// FromConfig reads options from config.Conf
func FromConfig(cfg config.Conf) Options {
	sf := cfg.Prefix("BANKINGOPS_")
	return Options{
		SecretPrefix: sf.MayString("SECRET_PREFIX", "BANKINGOPS_SECRET_"),
	}
}
