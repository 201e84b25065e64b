package store

import (
	"time"

	"bankingops/internal/platform/config"
)

// Config aggregates per backend configuration
type Config struct {
	AppName string

	PG PGConfig
	CH CHConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// Guard/boot knobs:
	ConnectRetries int           // default 6 (63s(ish) max with exponential backoff)
	PingTimeout    time.Duration // default 5s
}

// CHConfig configures clickhouse connectivity for the decision log
type CHConfig struct {
	Enabled     bool
	DSN         string
	DialTimeout time.Duration
}

// ConfigFromEnv reads CORE_DATABASE_URL, PG_* and CH_* from cfg
// Postgres is always enabled; ClickHouse only when CH_ENABLED is true
func ConfigFromEnv(cfg config.Conf, appName string) Config {
	pg := cfg.Prefix("PG_")
	ch := cfg.Prefix("CH_")
	return Config{
		AppName: appName,
		PG: PGConfig{
			Enabled:     true,
			URL:         cfg.MustString("CORE_DATABASE_URL"),
			MaxConns:    int32(pg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pg.MayInt("SLOW_MS", 500),
			LogSQL:      pg.MayBool("LOG_SQL", false),
		},
		CH: CHConfig{
			Enabled:     ch.MayBool("ENABLED", false),
			DSN:         ch.MayString("DSN", ""),
			DialTimeout: ch.MayDuration("DIAL_TIMEOUT", 5*time.Second),
		},
	}
}
