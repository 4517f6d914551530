package store

import (
	"time"

	"pgnframe/internal/platform/config"
	"pgnframe/internal/platform/logger"
)

// Option adjusts a Store before any backend opens
type Option func(*Store)

// WithLogger routes backend and tracer logs to log, tagged component=store
func WithLogger(log logger.Logger) Option {
	return func(s *Store) { s.Log = log.With().Str("component", "store").Logger() }
}

// Config aggregates per backend configuration
type Config struct {
	AppName string

	PG   PGConfig
	CH   CHConfig
	Lite LiteConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	ConnectRetries int           // default 20
	PingTimeout    time.Duration // default 3s
}

// CHConfig configures clickhouse connectivity
type CHConfig struct {
	Enabled   bool
	URL       string
	ClientTag string

	ConnectRetries int           // default 20
	PingTimeout    time.Duration // default 3s
}

// LiteConfig configures the embedded sqlite sink
type LiteConfig struct {
	Enabled bool
	Path    string
	LogSQL  bool
}

// FromConfig reads PG_*, CH_* and LITE_* keys
// a backend is enabled by default when its url or path is set
func FromConfig(root config.Conf) Config {
	pg := root.Prefix("PG_")
	ch := root.Prefix("CH_")
	lite := root.Prefix("LITE_")
	return Config{
		AppName: root.MayString("APP_NAME", "pgnframe"),
		PG: PGConfig{
			Enabled:     pg.MayBool("ENABLED", pg.Has("URL")),
			URL:         pg.MayString("URL", ""),
			MaxConns:    int32(pg.MayInt("MAX_CONNS", 4)),
			LogSQL:      pg.MayBool("LOG_SQL", false),
			SlowQueryMs: pg.MayInt("SLOW_MS", 500),

			ConnectRetries: pg.MayInt("CONNECT_RETRIES", defaultConnectRetries),
			PingTimeout:    pg.MayDuration("PING_TIMEOUT", defaultPingTimeout),
		},
		CH: CHConfig{
			Enabled:   ch.MayBool("ENABLED", ch.Has("URL")),
			URL:       ch.MayString("URL", ""),
			ClientTag: ch.MayString("CLIENT_TAG", ""),

			ConnectRetries: ch.MayInt("CONNECT_RETRIES", defaultConnectRetries),
			PingTimeout:    ch.MayDuration("PING_TIMEOUT", defaultPingTimeout),
		},
		Lite: LiteConfig{
			Enabled: lite.MayBool("ENABLED", lite.Has("PATH")),
			Path:    lite.MayString("PATH", ""),
			LogSQL:  lite.MayBool("LOG_SQL", false),
		},
	}
}
