// Package repo runs compiled activity queries against Postgres or ClickHouse
package repo

import (
	"context"

	"github.com/baking-bad/tzkt-sub003/internal/core/query"
	"github.com/baking-bad/tzkt-sub003/internal/modkit/repokit"
	"github.com/baking-bad/tzkt-sub003/internal/platform/store"
	dom "github.com/baking-bad/tzkt-sub003/internal/services/activity/domain"
)

// PG executes compiled queries over the postgres pool
// Each call checks out its own pool connection, so concurrent calls do not serialize.
type PG struct{ q repokit.Queryer }

// CH executes compiled queries over ClickHouse
type CH struct{ q store.Clickhouse }

var (
	_ dom.Executor = (*PG)(nil)
	_ dom.Executor = (*CH)(nil)
)

// NewPG returns a binder for the postgres executor
func NewPG() repokit.Binder[repokit.Queryer, *PG] {
	return repokit.BindFunc[repokit.Queryer, *PG](func(q repokit.Queryer) *PG { return &PG{q: q} })
}

// NewCH returns a binder for the clickhouse executor
func NewCH() repokit.Binder[store.Clickhouse, *CH] {
	return repokit.BindFunc[store.Clickhouse, *CH](func(q store.Clickhouse) *CH { return &CH{q: q} })
}

// Dialect is the placeholder style the executor expects
func (r *PG) Dialect() query.Dialect { return query.Postgres }

// Dialect is the placeholder style the executor expects
func (r *CH) Dialect() query.Dialect { return query.ClickHouse }

// Execute implements domain.Executor
func (r *PG) Execute(ctx context.Context, c query.Compiled) ([]query.Row, error) {
	return execute(ctx, r.q, c)
}

// Execute implements domain.Executor
func (r *CH) Execute(ctx context.Context, c query.Compiled) ([]query.Row, error) {
	return execute(ctx, r.q, c)
}

func execute(ctx context.Context, q store.Querier, c query.Compiled) ([]query.Row, error) {
	if c.Empty() {
		return nil, nil
	}
	recs, err := store.Records(ctx, q, c.SQL, c.Args...)
	if err != nil {
		return nil, dom.NewStorageError(c.Kind, err)
	}
	if c.Limit > 0 && len(recs) > c.Limit {
		recs = recs[:c.Limit]
	}
	out := make([]query.Row, len(recs))
	for i := range recs {
		out[i] = recs[i].Vals
	}
	return out, nil
}
