package repo

import (
	"context"

	"github.com/baking-bad/tzkt-sub003/internal/core/kinds"
	"github.com/baking-bad/tzkt-sub003/internal/modkit/repokit"
	"github.com/baking-bad/tzkt-sub003/internal/platform/logger"
	"github.com/baking-bad/tzkt-sub003/internal/platform/store"
	dom "github.com/baking-bad/tzkt-sub003/internal/services/activity/domain"
)

// CountersTable holds one row per (account, kind, role) with a nonzero record count
// role is the role name as rendered by kinds.Role.String for a single bit.
const CountersTable = "account_counters"

const (
	pgCountersSQL = `SELECT account_id, kind, role, count FROM account_counters WHERE account_id = ANY($1) AND count > 0`
	chCountersSQL = "SELECT account_id, kind, role, count FROM account_counters WHERE has(?, account_id) AND count > 0"
)

// Counters loads capability counters
type Counters struct {
	q   store.Querier
	sql string
}

var _ dom.CapabilityLoader = (*Counters)(nil)

// NewPGCounters binds the loader to postgres
func NewPGCounters() repokit.Binder[repokit.Queryer, *Counters] {
	return repokit.BindFunc[repokit.Queryer, *Counters](func(q repokit.Queryer) *Counters {
		return &Counters{q: q, sql: pgCountersSQL}
	})
}

// NewCHCounters binds the loader to clickhouse
func NewCHCounters() repokit.Binder[store.Clickhouse, *Counters] {
	return repokit.BindFunc[store.Clickhouse, *Counters](func(q store.Clickhouse) *Counters {
		return &Counters{q: q, sql: chCountersSQL}
	})
}

type counterRow struct {
	account int64
	kind    string
	role    string
	count   int64
}

// Load implements domain.CapabilityLoader
// Rows with unknown role names are skipped.
func (c *Counters) Load(ctx context.Context, accounts []int64) (dom.Capabilities, error) {
	out := dom.Counters{}
	if len(accounts) == 0 {
		return out, nil
	}
	rows, err := store.Many(ctx, c.q, func(r store.Row) (counterRow, error) {
		var x counterRow
		err := r.Scan(&x.account, &x.kind, &x.role, &x.count)
		return x, err
	}, c.sql, accounts)
	if err != nil {
		return nil, dom.NewStorageError(CountersTable, err)
	}
	for _, r := range rows {
		role, ok := kinds.RoleByName(r.role)
		if !ok {
			logger.C(ctx).Debug().Str("role", r.role).Str("kind", r.kind).Msg("skipping unknown counter role")
			continue
		}
		out.Add(r.account, r.kind, role, r.count)
	}
	return out, nil
}
