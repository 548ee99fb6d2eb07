package mapper

import (
	"time"

	dom "github.com/baking-bad/tzkt-sub003/internal/services/activity/domain"
)

// StaticAliases is a map-backed AliasResolver
type StaticAliases map[int64]dom.Alias

func (s StaticAliases) Alias(id int64) (dom.Alias, bool) {
	a, ok := s[id]
	return a, ok
}

// StaticQuotes is a map-backed QuoteLookup
type StaticQuotes map[int64]dom.Quote

func (s StaticQuotes) Quote(level int64) (dom.Quote, bool) {
	q, ok := s[level]
	return q, ok
}

// FixedInterval is a TimeLookup for chains with a constant block time
type FixedInterval struct {
	Genesis  time.Time
	Interval time.Duration
}

// Timestamp implements domain.TimeLookup
func (f FixedInterval) Timestamp(level int64) (time.Time, bool) {
	if level < 0 || f.Interval <= 0 {
		return time.Time{}, false
	}
	return f.Genesis.Add(time.Duration(level) * f.Interval), true
}

// LevelAt implements domain.TimeLookup
func (f FixedInterval) LevelAt(t time.Time) int64 {
	if f.Interval <= 0 || !t.After(f.Genesis) {
		return 0
	}
	d := t.Sub(f.Genesis)
	level := int64(d / f.Interval)
	if d%f.Interval != 0 {
		level++
	}
	return level
}

var (
	_ dom.AliasResolver = StaticAliases(nil)
	_ dom.QuoteLookup   = StaticQuotes(nil)
	_ dom.TimeLookup    = FixedInterval{}
)
