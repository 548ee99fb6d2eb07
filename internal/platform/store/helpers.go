package store

import (
	"context"
	"time"

	perr "github.com/baking-bad/tzkt-sub003/internal/platform/errors"
)

// Querier is the Query half shared by the pg and ch seams
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
}

// Record is one result row with its columns in select order
// Cols is shared by every record of the same result set
type Record struct {
	Cols []string
	Vals []any
}

// Get returns the value for a column name
func (r Record) Get(col string) (any, bool) {
	for i, c := range r.Cols {
		if c == col {
			return r.Vals[i], true
		}
	}
	return nil, false
}

// Scalar queries the first row, first column into T
func Scalar[T any](ctx context.Context, q RowQuerier, sql string, args ...any) (T, error) {
	var v T
	if err := q.QueryRow(ctx, sql, args...).Scan(&v); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// Many uses a custom scanner to map all rows into []T
func Many[T any](ctx context.Context, q Querier, scan func(Row) (T, error), sql string, args ...any) ([]T, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// Records returns all rows as ordered column/value records
func Records(ctx context.Context, q Querier, sql string, args ...any) ([]Record, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols := rows.Columns()
	var out []Record
	for rows.Next() {
		vals, err := scanAny(rows, len(cols))
		if err != nil {
			return nil, err
		}
		out = append(out, Record{Cols: cols, Vals: vals})
	}
	return out, rows.Err()
}

// One returns the first record or perr.ErrNotFound
func One(ctx context.Context, q Querier, sql string, args ...any) (Record, error) {
	recs, err := Records(ctx, q, sql, args...)
	if err != nil {
		return Record{}, err
	}
	if len(recs) == 0 {
		return Record{}, perr.ErrNotFound
	}
	return recs[0], nil
}

func scanAny(rows Rows, n int) ([]any, error) {
	vals := make([]any, n)
	ptrs := make([]any, n)
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, err
	}
	for i := range vals {
		vals[i] = deref(vals[i])
	}
	return vals, nil
}

func deref(v any) any {
	switch x := v.(type) {
	case *time.Time:
		if x == nil {
			return nil
		}
		return *x
	case *string:
		if x == nil {
			return nil
		}
		return *x
	case *int64:
		if x == nil {
			return nil
		}
		return *x
	case *int32:
		if x == nil {
			return nil
		}
		return *x
	case []byte:
		return string(x)
	default:
		return v
	}
}
