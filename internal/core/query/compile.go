package query

import (
	"slices"
	"strconv"
	"strings"

	"github.com/baking-bad/tzkt-sub003/internal/core/filter"
	"github.com/baking-bad/tzkt-sub003/internal/core/projection"
)

const never = "1 = 0"

// Compile builds the statement for one kind
//
// A nil projection selects the kind's full row. A projection that resolves to no columns
// yields an Empty Compiled with no SQL. The identity key column is always selected.
// When a cursor is set the order is forced onto the identity key so the cursor bound and
// the order agree.
func Compile(src Source, f filter.Spec, proj *projection.Spec, s Sort, p Page, d Dialect) Compiled {
	var sel projection.Selection
	if proj == nil {
		sel = src.Schema.Native()
	} else {
		sel = src.Schema.Resolve(*proj)
	}
	if sel.Empty() {
		return Compiled{Kind: src.Name, Dir: s.Dir, Limit: p.Limit, empty: true}
	}

	cols := slices.Clone(sel.Columns)
	keyIdx := slices.Index(cols, src.Key)
	if keyIdx < 0 {
		cols = append(cols, src.Key)
		keyIdx = len(cols) - 1
	}

	var sb strings.Builder
	var args []any
	arg := func(v any) string { args = append(args, v); return d.Placeholder(len(args)) }

	sb.WriteString("SELECT ")
	for i, c := range cols {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(d.Quote(c))
	}
	sb.WriteString(" FROM " + d.Quote(src.Table))

	var where []string
	var ignored []string
	for _, c := range f.Clauses {
		col, ok := predicateColumn(src.Schema, c.Field)
		if !ok {
			if c.Field != "" {
				ignored = append(ignored, c.Field)
			}
			continue
		}
		if frag := clause(d.Quote(col), c, arg); frag != "" {
			where = append(where, frag)
		}
	}
	if f.HasOr() {
		where = append(where, orGroup(src.Schema, f.Or, d, arg))
	}
	if p.HasCursor {
		op := " > "
		if s.Dir == Desc {
			op = " < "
		}
		where = append(where, d.Quote(src.Key)+op+arg(p.Cursor))
	}
	if len(where) > 0 {
		sb.WriteString(" WHERE " + strings.Join(where, " AND "))
	}

	dir := " ASC"
	if s.Dir == Desc {
		dir = " DESC"
	}
	sortCol := src.Key
	if !p.HasCursor {
		sortCol = sortColumn(src, s.Field)
	}
	sb.WriteString(" ORDER BY " + d.Quote(sortCol) + dir)
	if sortCol != src.Key {
		sb.WriteString(", " + d.Quote(src.Key) + dir)
	}

	if p.Limit > 0 {
		sb.WriteString(" LIMIT " + strconv.Itoa(p.Limit))
	}
	var after *int64
	if p.HasCursor {
		cur := p.Cursor
		after = &cur
	}
	offset := 0
	if !p.HasCursor && p.Offset > 0 {
		offset = p.Offset
		sb.WriteString(" OFFSET " + strconv.Itoa(offset))
	}

	return Compiled{
		Kind:    src.Name,
		SQL:     sb.String(),
		Args:    args,
		Columns: cols,
		Fields:  sel.Fields,
		Limit:   p.Limit,
		Offset:  offset,
		After:   after,
		Dir:     s.Dir,
		Ignored: ignored,
		keyIdx:  keyIdx,
	}
}

// predicateColumn resolves a field usable in WHERE; derived fields have no column of their own
func predicateColumn(s *projection.Schema, name string) (string, bool) {
	f, ok := s.Lookup(name)
	if !ok || f.Type == projection.TypeTimestamp || f.Type == projection.TypeQuote {
		return "", false
	}
	return f.Columns[0], true
}

// sortColumn falls back to the identity key for anything off the whitelist
func sortColumn(src Source, field string) string {
	for _, s := range src.Sortable {
		if strings.EqualFold(s, field) {
			if col, ok := src.Schema.Column(s); ok {
				return col
			}
		}
	}
	return src.Key
}

// clause renders one condition; an empty result means the clause contributes nothing
// An operator the value cannot satisfy, or an unknown operator, is never true.
func clause(col string, c filter.Clause, arg func(any) string) string {
	if !c.IsSet() {
		return ""
	}
	switch c.Op {
	case filter.OpEq:
		v, _ := filter.Scalar(c.Value)
		return col + " = " + arg(v)
	case filter.OpNe:
		v, _ := filter.Scalar(c.Value)
		return "(" + col + " IS NULL OR " + col + " != " + arg(v) + ")"
	case filter.OpGt:
		v, _ := filter.Scalar(c.Value)
		return col + " > " + arg(v)
	case filter.OpGe:
		v, _ := filter.Scalar(c.Value)
		return col + " >= " + arg(v)
	case filter.OpLt:
		v, _ := filter.Scalar(c.Value)
		return col + " < " + arg(v)
	case filter.OpLe:
		v, _ := filter.Scalar(c.Value)
		return col + " <= " + arg(v)
	case filter.OpIn:
		vals := scalars(c.Values)
		if len(vals) == 0 {
			return never
		}
		return col + " IN (" + list(vals, arg) + ")"
	case filter.OpNotIn:
		vals := scalars(c.Values)
		if len(vals) == 0 {
			return ""
		}
		return "(" + col + " IS NULL OR " + col + " NOT IN (" + list(vals, arg) + "))"
	case filter.OpIsNull:
		v, _ := filter.Scalar(c.Value)
		null, ok := v.(bool)
		if !ok {
			return never
		}
		if null {
			return col + " IS NULL"
		}
		return col + " IS NOT NULL"
	case filter.OpContains:
		v, _ := filter.Scalar(c.Value)
		s, ok := v.(string)
		if !ok {
			return never
		}
		return col + " LIKE " + arg("%"+escapeLike(s)+"%")
	}
	return never
}

// orGroup renders (a IN (...) OR b IN (...)); unknown fields and empty id lists are never true
func orGroup(s *projection.Schema, g filter.OrGroup, d Dialect, arg func(any) string) string {
	if len(g) == 0 {
		return never
	}
	parts := make([]string, 0, len(g))
	for _, m := range g {
		col, ok := predicateColumn(s, m.Field)
		if !ok || len(m.IDs) == 0 {
			parts = append(parts, never)
			continue
		}
		ids := make([]any, len(m.IDs))
		for i, id := range m.IDs {
			ids[i] = id
		}
		parts = append(parts, d.Quote(col)+" IN ("+list(ids, arg)+")")
	}
	return "(" + strings.Join(parts, " OR ") + ")"
}

func scalars(vs []any) []any {
	out := make([]any, 0, len(vs))
	for _, v := range vs {
		if x, ok := filter.Scalar(v); ok {
			out = append(out, x)
		}
	}
	return out
}

func list(vs []any, arg func(any) string) string {
	ph := make([]string, len(vs))
	for i, v := range vs {
		ph[i] = arg(v)
	}
	return strings.Join(ph, ", ")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }
