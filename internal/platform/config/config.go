// Package config handles application configuration via environment variables
package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/baking-bad/tzkt-sub003/internal/platform/config/raw"
	"github.com/baking-bad/tzkt-sub003/internal/platform/logger"
)

// Conf is a namespaced view over configuration keys (e.g. "CORE_", "SERVICE_")
// Must* getters panic on missing or malformed values, May* getters fall back with a warning
type Conf struct{ src raw.Conf }

// New creates a root Conf backed by the process environment
func New() Conf { return Conf{src: raw.New()} }

// FromMap creates a root Conf backed by a fixed map
func FromMap(m map[string]string) Conf { return Conf{src: raw.FromMap(m)} }

// Prefix creates a child Conf with an additional prefix, e.g. cfg.Prefix("CORE_")
func (c Conf) Prefix(p string) Conf { return Conf{src: c.src.Prefix(p)} }

func (c Conf) key(k string) string { return c.src.Key(k) }

func (c Conf) get(k string) (string, bool) { return c.src.Lookup(k) }

// MustString panics if the given key is missing or empty
func (c Conf) MustString(key string) string {
	v, ok := c.get(key)
	if !ok {
		logger.Get().Panic().Str("key", c.key(key)).Msg("missing required config")
	}
	return v
}

// MustInt panics if the given key is missing or not an int
func (c Conf) MustInt(key string) int {
	s := c.MustString(key)
	v, err := strconv.Atoi(s)
	if err != nil {
		logger.Get().Panic().Str("key", c.key(key)).Str("value", s).Msg("invalid int value")
	}
	return v
}

// Require ensures that all given keys are present. Panics otherwise
func (c Conf) Require(keys ...string) {
	for _, k := range keys {
		if _, ok := c.get(k); !ok {
			logger.Get().Panic().Str("key", c.key(k)).Msg("missing required config")
		}
	}
}

// MayString returns the value or def if missing/empty
func (c Conf) MayString(key, def string) string {
	if v, ok := c.get(key); ok {
		return v
	}
	return def
}

// MayInt returns the value or def if missing; logs and returns def if invalid
func (c Conf) MayInt(key string, def int) int {
	s, ok := c.get(key)
	if !ok {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	logger.Get().Warn().Str("key", c.key(key)).Str("value", s).Int("default", def).Msg("invalid int; using default")
	return def
}

// MayIntIn returns MayInt clamped to [lo, hi]; out of range values log and fall back to def
func (c Conf) MayIntIn(key string, def, lo, hi int) int {
	v := c.MayInt(key, def)
	if v < lo || v > hi {
		logger.Get().Warn().Str("key", c.key(key)).Int("value", v).Int("min", lo).Int("max", hi).
			Int("default", def).Msg("int out of range; using default")
		return def
	}
	return v
}

// MayBool returns the value or def if missing; logs and returns def if invalid
func (c Conf) MayBool(key string, def bool) bool {
	s, ok := c.get(key)
	if !ok {
		return def
	}
	if v, err := strconv.ParseBool(s); err == nil {
		return v
	}
	logger.Get().Warn().Str("key", c.key(key)).Str("value", s).Bool("default", def).Msg("invalid bool; using default")
	return def
}

// MayDuration returns the value or def if missing; logs and returns def if invalid
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	s, ok := c.get(key)
	if !ok {
		return def
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	logger.Get().Warn().Str("key", c.key(key)).Str("value", s).Dur("default", def).Msg("invalid duration; using default")
	return def
}

// MayCSV returns the non-empty comma-separated parts or def
func (c Conf) MayCSV(key string, def []string) []string {
	s, ok := c.get(key)
	if !ok {
		return def
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayEnum returns the lower-cased value if it is one of allowed, def if missing; panics if invalid
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	v, ok := c.get(key)
	if !ok {
		return def
	}
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return strings.ToLower(a)
		}
	}
	logger.Get().Panic().Str("key", c.key(key)).Str("value", v).Strs("allowed", allowed).Msg("invalid enum value")
	return ""
}
