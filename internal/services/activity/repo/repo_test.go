package repo

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/baking-bad/tzkt-sub003/internal/core/filter"
	"github.com/baking-bad/tzkt-sub003/internal/core/kinds"
	"github.com/baking-bad/tzkt-sub003/internal/core/projection"
	"github.com/baking-bad/tzkt-sub003/internal/core/query"
	"github.com/baking-bad/tzkt-sub003/internal/modkit/repokit"
	perr "github.com/baking-bad/tzkt-sub003/internal/platform/errors"
	"github.com/baking-bad/tzkt-sub003/internal/platform/store"
	kit "github.com/baking-bad/tzkt-sub003/internal/platform/testkit"
	dom "github.com/baking-bad/tzkt-sub003/internal/services/activity/domain"

	"github.com/jackc/pgx/v5/pgconn"
)

type call struct {
	sql  string
	args []any
}

// fakeQ records queries and answers from a canned result set
type fakeQ struct {
	rows  *kit.FakeRows
	err   error
	calls []call
}

func (f *fakeQ) Query(_ context.Context, sql string, args ...any) (store.Rows, error) {
	f.calls = append(f.calls, call{sql: sql, args: args})
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

func (f *fakeQ) QueryRow(context.Context, string, ...any) store.Row { return kit.FakeRow{} }

func (f *fakeQ) Close() error { return nil }

var (
	_ repokit.Queryer  = (*fakeQ)(nil)
	_ store.Clickhouse = (*fakeQ)(nil)
)

func compiled(t *testing.T, d query.Dialect, proj *projection.Spec, limit int) query.Compiled {
	t.Helper()
	k, ok := kinds.ByName(kinds.Transaction)
	if !ok {
		t.Fatalf("transaction kind missing")
	}
	f := filter.Spec{}.WithOr(filter.OrGroup{{Field: "target", IDs: []int64{7}}})
	return query.Compile(k.Source(), f, proj, query.ByID(query.Desc), query.Offset(0, limit), d)
}

func TestPGExecute(t *testing.T) {
	q := &fakeQ{rows: kit.NewRows([]string{"Level", "Id"},
		[]any{int64(10), int64(3)},
		[]any{int64(9), int64(2)},
		[]any{int64(8), int64(1)},
	)}
	ex := repokit.MustBind(NewPG(), repokit.Queryer(q))
	if ex.Dialect().Name != "pg" {
		t.Fatalf("pg executor dialect = %s", ex.Dialect().Name)
	}
	proj := projection.Fields("level")
	c := compiled(t, ex.Dialect(), &proj, 2)

	rows, err := ex.Execute(context.Background(), c)
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows must be capped at the compiled limit, got %d", len(rows))
	}
	if k, _ := c.Key(rows[0]); k != 3 {
		t.Fatalf("first key = %d", k)
	}
	if len(q.calls) != 1 || q.calls[0].sql != c.SQL {
		t.Fatalf("executor must run the compiled sql verbatim: %+v", q.calls)
	}
	kit.MustEqualArgs(t, q.calls[0].args, []any{int64(7)})
	if !q.rows.Closed() {
		t.Fatalf("rows were not closed")
	}
}

func TestCHExecute(t *testing.T) {
	q := &fakeQ{rows: kit.NewRows([]string{"Id"}, []any{uint64(5)})}
	ex := repokit.MustBind(NewCH(), store.Clickhouse(q))
	c := compiled(t, ex.Dialect(), nil, 10)
	kit.MustContain(t, c.SQL, "`TargetId` IN (?)")

	rows, err := ex.Execute(context.Background(), c)
	if err != nil || len(rows) != 1 {
		t.Fatalf("rows=%v err=%v", rows, err)
	}
}

func TestExecuteEmptyIsNoop(t *testing.T) {
	q := &fakeQ{}
	ex := repokit.MustBind(NewPG(), repokit.Queryer(q))
	proj := projection.Fields("madeUpField")
	rows, err := ex.Execute(context.Background(), compiled(t, query.Postgres, &proj, 10))
	if err != nil || rows != nil || len(q.calls) != 0 {
		t.Fatalf("empty compile must not touch storage: rows=%v err=%v calls=%d", rows, err, len(q.calls))
	}
}

func TestExecuteErrorIsTagged(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code perr.ErrorCode
	}{
		{"unavailable", &pgconn.PgError{Code: "57P03"}, perr.ErrorCodeUnavailable},
		{"undefined table", &pgconn.PgError{Code: "42P01"}, perr.ErrorCodeDB},
		{"deadline", context.DeadlineExceeded, perr.ErrorCodeCanceled},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ex := repokit.MustBind(NewPG(), repokit.Queryer(&fakeQ{err: tc.err}))
			_, err := ex.Execute(context.Background(), compiled(t, query.Postgres, nil, 1))
			var se *dom.StorageError
			if !errors.As(err, &se) || se.Kind != kinds.Transaction {
				t.Fatalf("want StorageError for transaction, got %v", err)
			}
			if se.Code() != tc.code {
				t.Fatalf("code = %v, want %v", se.Code(), tc.code)
			}
			if !errors.Is(err, tc.err) {
				t.Fatalf("cause lost: %v", err)
			}
		})
	}
}

func TestExecuteIterErrorIsTagged(t *testing.T) {
	rows := kit.NewRows([]string{"Id"}, []any{int64(1)})
	rows.IterErr = errors.New("conn reset")
	ex := repokit.MustBind(NewPG(), repokit.Queryer(&fakeQ{rows: rows}))
	_, err := ex.Execute(context.Background(), compiled(t, query.Postgres, nil, 5))
	var se *dom.StorageError
	if !errors.As(err, &se) {
		t.Fatalf("iteration failure must be a StorageError, got %v", err)
	}
}

func TestCountersLoad(t *testing.T) {
	q := &fakeQ{rows: kit.NewRows([]string{"account_id", "kind", "role", "count"},
		[]any{int64(1), kinds.Transaction, "target", int64(3)},
		[]any{int64(1), kinds.Baking, "baker", int64(1)},
		[]any{int64(2), kinds.Transaction, "futureRole", int64(9)},
	)}
	loader := repokit.MustBind(NewPGCounters(), repokit.Queryer(q))

	caps, err := loader.Load(context.Background(), []int64{1, 2})
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if !caps.HasRole(1, kinds.Transaction, kinds.Target) || !caps.HasRole(1, kinds.Baking, kinds.Baker) {
		t.Fatalf("loaded counters missing")
	}
	if caps.HasRole(1, kinds.Transaction, kinds.Sender) || caps.HasRole(2, kinds.Transaction, kinds.AllRoles) {
		t.Fatalf("unexpected capability")
	}
	if !strings.Contains(q.calls[0].sql, "ANY($1)") {
		t.Fatalf("pg loader sql = %s", q.calls[0].sql)
	}
	if ids, ok := q.calls[0].args[0].([]int64); !ok || len(ids) != 2 {
		t.Fatalf("accounts must bind as one array arg: %#v", q.calls[0].args)
	}
}

func TestCountersLoadEdges(t *testing.T) {
	q := &fakeQ{}
	loader := repokit.MustBind(NewCHCounters(), store.Clickhouse(q))
	caps, err := loader.Load(context.Background(), nil)
	if err != nil || caps == nil || len(q.calls) != 0 {
		t.Fatalf("no accounts should mean no query: err=%v calls=%d", err, len(q.calls))
	}

	q.err = errors.New("boom")
	_, err = loader.Load(context.Background(), []int64{1})
	var se *dom.StorageError
	if !errors.As(err, &se) || se.Kind != CountersTable {
		t.Fatalf("want StorageError tagged %s, got %v", CountersTable, err)
	}
	kit.MustContain(t, q.calls[0].sql, "has(?, account_id)")
}
