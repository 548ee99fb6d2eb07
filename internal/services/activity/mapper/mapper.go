// Package mapper turns projected rows into ordered output objects
package mapper

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/baking-bad/tzkt-sub003/internal/core/projection"
	"github.com/baking-bad/tzkt-sub003/internal/core/query"
	dom "github.com/baking-bad/tzkt-sub003/internal/services/activity/domain"
)

// Lookups are the external caches derived values come from; any of them may be nil
type Lookups struct {
	Aliases dom.AliasResolver
	Times   dom.TimeLookup
	Quotes  dom.QuoteLookup
}

// Mapper renders rows
type Mapper struct {
	l Lookups
}

// New builds a Mapper over the given lookups
func New(l Lookups) *Mapper { return &Mapper{l: l} }

// TypeKey is the output key carrying the record kind
const TypeKey = "type"

// Records maps activity records, keeping their order
func (m *Mapper) Records(recs []dom.ActivityRecord) []Object {
	out := make([]Object, len(recs))
	for i, r := range recs {
		out[i] = m.Record(r)
	}
	return out
}

// Record maps one activity record; the kind comes first under TypeKey
func (m *Mapper) Record(r dom.ActivityRecord) Object {
	var o Object
	o.Set(TypeKey, r.Kind)
	m.fill(&o, r.Payload.Fields, r.Payload.Columns, r.Payload.Row)
	return o
}

// Rows maps the result of a single compiled query
func (m *Mapper) Rows(c query.Compiled, rows []query.Row) []Object {
	out := make([]Object, len(rows))
	for i, r := range rows {
		m.fill(&out[i], c.Fields, c.Columns, r)
	}
	return out
}

func (m *Mapper) fill(o *Object, fields []projection.Selected, cols []string, row query.Row) {
	at := func(col string) any {
		for i, c := range cols {
			if c == col && i < len(row) {
				return row[i]
			}
		}
		return nil
	}
	for _, sel := range fields {
		o.Set(sel.Name, m.value(sel, at))
	}
}

func (m *Mapper) value(sel projection.Selected, at func(string) any) any {
	f := sel.Field
	raw := at(f.Columns[0])
	sub := strings.ToLower(sel.Sub)

	switch f.Type {
	case projection.TypeAccount:
		return m.account(raw, sub)
	case projection.TypeTimestamp:
		return m.timestamp(raw)
	case projection.TypeQuote:
		return m.quote(raw, sub)
	case projection.TypeParameter:
		var value any
		if len(f.Columns) > 1 {
			value = rawJSON(at(f.Columns[1]))
		}
		switch sub {
		case "entrypoint":
			return raw
		case "value":
			return value
		}
		if raw == nil && value == nil {
			return nil
		}
		var p Object
		p.Set("entrypoint", raw)
		p.Set("value", value)
		return p
	case projection.TypeStatus:
		return statusName(raw)
	case projection.TypeTime:
		if t, ok := raw.(time.Time); ok {
			return t.UTC()
		}
	}
	return raw
}

func (m *Mapper) account(raw any, sub string) any {
	id, ok := query.ToInt64(raw)
	if !ok || m.l.Aliases == nil {
		return nil
	}
	a, ok := m.l.Aliases.Alias(id)
	if !ok {
		return nil
	}
	switch sub {
	case "alias":
		if a.Name == "" {
			return nil
		}
		return a.Name
	case "address":
		return a.Address
	}
	var o Object
	if a.Name != "" {
		o.Set("alias", a.Name)
	}
	o.Set("address", a.Address)
	return o
}

func (m *Mapper) timestamp(raw any) any {
	level, ok := query.ToInt64(raw)
	if !ok || m.l.Times == nil {
		return nil
	}
	ts, ok := m.l.Times.Timestamp(level)
	if !ok {
		return nil
	}
	return ts.UTC()
}

func (m *Mapper) quote(raw any, sub string) any {
	level, ok := query.ToInt64(raw)
	if !ok || m.l.Quotes == nil {
		return nil
	}
	q, ok := m.l.Quotes.Quote(level)
	if !ok {
		return nil
	}
	if sub != "" {
		v, ok := q[sub]
		if !ok {
			return nil
		}
		return v
	}
	return q
}

// rawJSON passes stored JSON through undecoded; anything else is returned as is
func rawJSON(v any) any {
	switch x := v.(type) {
	case []byte:
		if json.Valid(x) {
			return json.RawMessage(x)
		}
		return string(x)
	case string:
		if json.Valid([]byte(x)) {
			return json.RawMessage(x)
		}
	}
	return v
}

var statuses = map[int64]string{
	1: "applied",
	2: "backtracked",
	3: "skipped",
	4: "failed",
}

func statusName(raw any) any {
	code, ok := query.ToInt64(raw)
	if !ok {
		return raw
	}
	if s, ok := statuses[code]; ok {
		return s
	}
	return "unknown"
}
