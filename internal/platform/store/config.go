package store

import (
	"time"

	"github.com/baking-bad/tzkt-sub003/internal/platform/config"
)

// Config aggregates per backend configuration
type Config struct {
	AppName string

	PG PGConfig
	CH CHConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled          bool
	URL              string
	MaxConns         int32
	LogSQL           bool
	SlowQueryMs      int
	StatementTimeout time.Duration

	ConnectRetries int           // default 20
	PingTimeout    time.Duration // default 3s
}

// CHConfig configures clickhouse connectivity
type CHConfig struct {
	Enabled      bool
	URL          string
	MaxOpenConns int
	DialTimeout  time.Duration
}

// ConfigFrom reads SERVICE_PGSQL_* and SERVICE_CLICKHOUSE_* keys
// Postgres is enabled whenever a DBURL is present
func ConfigFrom(cfg config.Conf, appName string) Config {
	pgc := cfg.Prefix("SERVICE_PGSQL_")
	chc := cfg.Prefix("SERVICE_CLICKHOUSE_")

	pgURL := pgc.MayString("DBURL", "")
	chURL := chc.MayString("DBURL", "")

	return Config{
		AppName: appName,
		PG: PGConfig{
			Enabled:          pgURL != "",
			URL:              pgURL,
			MaxConns:         int32(pgc.MayIntIn("MAX_CONNS", 16, 1, 1024)),
			LogSQL:           pgc.MayBool("LOG_SQL", false),
			SlowQueryMs:      pgc.MayInt("SLOW_MS", 250),
			StatementTimeout: pgc.MayDuration("STATEMENT_TIMEOUT", 0),
			ConnectRetries:   pgc.MayInt("CONNECT_RETRIES", 20),
			PingTimeout:      pgc.MayDuration("PING_TIMEOUT", 3*time.Second),
		},
		CH: CHConfig{
			Enabled:      chc.MayBool("ENABLED", chURL != "") && chURL != "",
			URL:          chURL,
			MaxOpenConns: chc.MayInt("MAX_OPEN_CONNS", 0),
			DialTimeout:  chc.MayDuration("DIAL_TIMEOUT", 0),
		},
	}
}
