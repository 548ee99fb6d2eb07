package module

import (
	"time"

	"github.com/baking-bad/tzkt-sub003/internal/platform/config"
	"github.com/baking-bad/tzkt-sub003/internal/platform/logger"
)

// Options holds configuration settings for the activity module
type Options struct {
	Backend      string // pg or ch
	DefaultLimit int
	MaxLimit     int
	MaxParallel  int
	Timeout      time.Duration

	Genesis       time.Time
	BlockInterval time.Duration
}

var mainnetGenesis = time.Date(2018, 6, 30, 17, 39, 57, 0, time.UTC)

// FromConfig reads CORE_ACTIVITY_* settings
func FromConfig(cfg config.Conf) Options {
	ac := cfg.Prefix("CORE_ACTIVITY_")

	genesis := mainnetGenesis
	if s := ac.MayString("GENESIS", ""); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			logger.Get().Panic().Err(err).Str("key", "CORE_ACTIVITY_GENESIS").Msg("genesis must be RFC3339")
		}
		genesis = t.UTC()
	}

	maxLimit := ac.MayIntIn("MAX_LIMIT", 10000, 1, 1_000_000)
	return Options{
		Backend:       ac.MayEnum("BACKEND", "pg", "pg", "ch"),
		MaxLimit:      maxLimit,
		DefaultLimit:  ac.MayIntIn("DEFAULT_LIMIT", min(100, maxLimit), 1, maxLimit),
		MaxParallel:   ac.MayIntIn("MAX_PARALLEL", 0, 0, 64),
		Timeout:       ac.MayDuration("TIMEOUT", 0),
		Genesis:       genesis,
		BlockInterval: ac.MayDuration("BLOCK_INTERVAL", 15*time.Second),
	}
}
