// Package query compiles filter, projection, sort and pagination specs into one SQL statement per kind
package query

import (
	"math"
	"strings"

	"github.com/baking-bad/tzkt-sub003/internal/core/projection"
)

// Direction is a sort direction
type Direction uint8

const (
	Asc Direction = iota
	Desc
)

func (d Direction) String() string {
	if d == Desc {
		return "desc"
	}
	return "asc"
}

// ParseDirection accepts asc/desc in any case; anything else is ascending
func ParseDirection(s string) Direction {
	if strings.EqualFold(strings.TrimSpace(s), "desc") {
		return Desc
	}
	return Asc
}

// Sort is one sort key plus direction; ties always break on the identity key
type Sort struct {
	Field string
	Dir   Direction
}

// ByID sorts on the identity key
func ByID(dir Direction) Sort { return Sort{Field: "id", Dir: dir} }

// Page is offset or cursor pagination
// With HasCursor set, rows strictly after Cursor in the sort direction are returned and Offset is ignored.
type Page struct {
	Offset    int
	Cursor    int64
	HasCursor bool
	Limit     int
}

// After builds a cursor page
func After(cursor int64, limit int) Page { return Page{Cursor: cursor, HasCursor: true, Limit: limit} }

// Offset builds an offset page
func Offset(offset, limit int) Page { return Page{Offset: offset, Limit: limit} }

// Source is the compiler view of one kind's storage
type Source struct {
	Name     string
	Table    string
	Key      string // identity key column
	Schema   *projection.Schema
	Sortable []string
}

// Row is one raw result row, aligned with Compiled.Columns
type Row []any

// Compiled is an executable query for one kind
type Compiled struct {
	Kind    string
	SQL     string
	Args    []any
	Columns []string
	Fields  []projection.Selected
	Limit   int
	Offset  int
	After   *int64 // cursor bound, nil in offset mode
	Dir     Direction
	Ignored []string // clause fields the schema did not know

	keyIdx int
	empty  bool
}

// Empty reports that the projection resolved to nothing; such a query must not be executed
func (c Compiled) Empty() bool { return c.empty }

// Key extracts the identity key from a row of this query
func (c Compiled) Key(r Row) (int64, bool) {
	if c.empty || c.keyIdx >= len(r) {
		return 0, false
	}
	return ToInt64(r[c.keyIdx])
}

// Get returns a column value from a row of this query
func (c Compiled) Get(r Row, col string) (any, bool) {
	for i, name := range c.Columns {
		if name == col && i < len(r) {
			return r[i], true
		}
	}
	return nil, false
}

// ToInt64 widens the integer shapes drivers hand back
func ToInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case int32:
		return int64(x), true
	case int:
		return int64(x), true
	case int16:
		return int64(x), true
	case int8:
		return int64(x), true
	case uint8:
		return int64(x), true
	case uint16:
		return int64(x), true
	case uint32:
		return int64(x), true
	case uint64:
		if x > math.MaxInt64 {
			return 0, false
		}
		return int64(x), true
	case *int64:
		if x != nil {
			return *x, true
		}
	case *int32:
		if x != nil {
			return int64(*x), true
		}
	}
	return 0, false
}
