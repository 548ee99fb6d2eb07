package store

import (
	"github.com/baking-bad/tzkt-sub003/internal/platform/logger"
)

// Option mutates Store during Open
type Option func(*Store) error

// WithLogger sets the logger used by subclients
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log
		return nil
	}
}

// WithPG injects an already built postgres seam, mostly for tests and tools
func WithPG(q RowQuerier) Option {
	return func(s *Store) error {
		s.PG = q
		return nil
	}
}

// WithCH injects an already built clickhouse seam
func WithCH(c Clickhouse) Option {
	return func(s *Store) error {
		s.CH = c
		return nil
	}
}
