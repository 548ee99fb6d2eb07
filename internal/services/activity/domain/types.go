// Package domain defines the types and ports of the activity service
package domain

import (
	"time"

	"github.com/baking-bad/tzkt-sub003/internal/core/kinds"
	"github.com/baking-bad/tzkt-sub003/internal/core/projection"
	"github.com/baking-bad/tzkt-sub003/internal/core/query"
)

// Window bounds the feed by block level and/or time
// Lower bounds are inclusive, upper bounds exclusive. Times are turned into levels through a TimeLookup.
type Window struct {
	FromLevel *int64     `json:"fromLevel" validate:"omitempty,gte=0"`
	ToLevel   *int64     `json:"toLevel" validate:"omitempty,gte=0"`
	Since     *time.Time `json:"since"`
	Until     *time.Time `json:"until"`
}

// IsZero reports whether no bound is set
func (w Window) IsZero() bool {
	return w.FromLevel == nil && w.ToLevel == nil && w.Since == nil && w.Until == nil
}

// ActivityQuery asks for everything that happened to a set of accounts
//
// Roles zero means every role. Kinds empty means every registered kind. A Cursor wins over Offset.
// Select, when set, projects every kind onto the same field names; fields a kind does not have are dropped.
type ActivityQuery struct {
	Accounts []int64          `json:"accounts" validate:"required,min=1,max=100,dive,gt=0"`
	Kinds    []string         `json:"kinds" validate:"omitempty,dive,activity_kind"`
	Roles    kinds.Role       `json:"roles"`
	Window   Window           `json:"window"`
	Sort     query.Direction  `json:"sort"`
	Cursor   *int64           `json:"cursor"`
	Offset   int              `json:"offset" validate:"gte=0,max=10000"`
	Limit    int              `json:"limit" validate:"min=1"`
	Select   *projection.Spec `json:"select"`
}

// RoleMask resolves the zero mask to every role
func (q ActivityQuery) RoleMask() kinds.Role {
	if q.Roles == 0 {
		return kinds.AllRoles
	}
	return q.Roles & kinds.AllRoles
}

// Page converts the query pagination into a compiler page
func (q ActivityQuery) Page() query.Page {
	if q.Cursor != nil {
		return query.After(*q.Cursor, q.Limit)
	}
	return query.Offset(q.Offset, q.Limit)
}

// Payload is the raw projected row of one record
type Payload struct {
	Columns []string
	Fields  []projection.Selected
	Row     query.Row
}

// Get returns a column value of the payload row
func (p Payload) Get(col string) (any, bool) {
	for i, c := range p.Columns {
		if c == col && i < len(p.Row) {
			return p.Row[i], true
		}
	}
	return nil, false
}

// ActivityRecord is one entry of the merged feed
// The aggregator inspects only ID and Kind.
type ActivityRecord struct {
	ID      int64
	Kind    string
	Payload Payload
}

// Alias is the public name and address of an account
type Alias struct {
	Name    string
	Address string
}

// Quote is the set of fiat and crypto prices at one level, keyed by lower-case currency
type Quote map[string]float64
