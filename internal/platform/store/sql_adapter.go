package store

import (
	"context"
	"errors"
	"time"

	"github.com/baking-bad/tzkt-sub003/internal/platform/store/pg"

	"github.com/jackc/pgx/v5"
)

// pgQuerier is the slice of pgxpool.Pool the adapter drives
type pgQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pgAdapter wraps pg.PG and implements RowQuerier
// each call checks out its own pool connection so concurrent callers never share a session
type pgAdapter struct {
	q      pgQuerier
	close  func()
	tracer pg.QueryTracer
	slowMs int
}

func newPGAdapter(p *pg.PG) *pgAdapter {
	return &pgAdapter{q: p.Pool, close: p.Close, tracer: p.Tracer, slowMs: p.SlowMs}
}

func (a *pgAdapter) Ping(ctx context.Context) error {
	if a == nil || a.q == nil {
		return errors.New("pg: nil adapter")
	}
	var one int
	return a.QueryRow(ctx, "SELECT 1").Scan(&one)
}

func (a *pgAdapter) Close() error {
	if a.close != nil {
		a.close()
	}
	return nil
}

func (a *pgAdapter) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	start := time.Now()
	rs, err := a.q.Query(ctx, sql, args...)
	if err != nil {
		a.emit(ctx, sql, args, start, 0, err)
		return nil, err
	}
	// emitted on Close so the timing covers the full scan
	return &rows{r: rs, done: func(n int, err error) { a.emit(ctx, sql, args, start, n, err) }}, nil
}

func (a *pgAdapter) QueryRow(ctx context.Context, sql string, args ...any) Row {
	start := time.Now()
	r := a.q.QueryRow(ctx, sql, args...)
	return row{
		r: r,
		after: func(scanErr error) {
			n := 1
			if scanErr != nil {
				n = 0
			}
			a.emit(ctx, sql, args, start, n, scanErr)
		},
	}
}

func (a *pgAdapter) emit(ctx context.Context, sql string, args []any, start time.Time, n int, err error) {
	if a == nil || a.tracer == nil {
		return
	}
	elapsedUS := time.Since(start).Microseconds()
	a.tracer.OnQuery(ctx, pg.QueryEvent{
		SQL:       sql,
		Args:      args,
		Rows:      n,
		ElapsedUS: elapsedUS,
		Err:       err,
		Slow:      a.slowMs >= 0 && elapsedUS >= int64(a.slowMs)*1000,
	})
}

type row struct {
	r     pgx.Row
	after func(error)
}

func (x row) Scan(dst ...any) error {
	err := x.r.Scan(dst...)
	if x.after != nil {
		x.after(err)
	}
	return err
}

type rows struct {
	r      pgx.Rows
	n      int
	done   func(n int, err error)
	closed bool
}

func (x *rows) Next() bool {
	if x.r.Next() {
		x.n++
		return true
	}
	return false
}

func (x *rows) Scan(dst ...any) error { return x.r.Scan(dst...) }
func (x *rows) Err() error            { return x.r.Err() }

func (x *rows) Close() {
	if x.closed {
		return
	}
	x.closed = true
	x.r.Close()
	if x.done != nil {
		x.done(x.n, x.r.Err())
	}
}

func (x *rows) Columns() []string {
	f := x.r.FieldDescriptions()
	out := make([]string, len(f))
	for i := range f {
		out[i] = f[i].Name
	}
	return out
}
