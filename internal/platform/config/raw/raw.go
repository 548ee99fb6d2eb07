// Package raw reads environment variables during bootstrap.
// It must not import the logger package; the logger reads its own options through it
package raw

import (
	"os"
	"strconv"
	"strings"
)

// Lookup resolves a fully-qualified key to its raw value
type Lookup func(key string) (string, bool)

// Conf is a namespaced, logger-free view over a key source (env by default)
type Conf struct {
	prefix string
	lookup Lookup
}

// New returns a root Conf backed by the process environment
func New() Conf { return Conf{lookup: os.LookupEnv} }

// FromMap returns a root Conf backed by a fixed map, mostly for tests and one-shot tools
func FromMap(m map[string]string) Conf {
	return Conf{lookup: func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}}
}

// Prefix returns a child Conf with an additional prefix (e.g. "LOG_")
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p, lookup: c.lookup} }

// Key composes the fully-qualified key
func (c Conf) Key(k string) string { return c.prefix + k }

// Lookup returns the trimmed value for key and whether it is non-empty
func (c Conf) Lookup(key string) (string, bool) {
	lk := c.lookup
	if lk == nil {
		lk = os.LookupEnv
	}
	v, ok := lk(c.Key(key))
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

// Get returns the trimmed value or def if empty
func (c Conf) Get(key, def string) string {
	if v, ok := c.Lookup(key); ok {
		return v
	}
	return def
}

// GetBool parses 1|true|yes|on with default fallback
func (c Conf) GetBool(key string, def bool) bool {
	v, ok := c.Lookup(key)
	if !ok {
		return def
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// GetInt parses a non-negative integer; anything else yields def
func (c Conf) GetInt(key string, def int) int {
	v, ok := c.Lookup(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}
