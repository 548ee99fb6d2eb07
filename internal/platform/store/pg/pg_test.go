package pg

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/baking-bad/tzkt-sub003/internal/platform/logger"
	kit "github.com/baking-bad/tzkt-sub003/internal/platform/testkit"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

func TestPoolConfig(t *testing.T) {
	pc, err := PoolConfig(Config{
		URL:              "postgres://u:p@localhost:5432/tzkt?sslmode=disable",
		MaxConns:         7,
		AppName:          "tzkt-activity",
		StatementTimeout: 1500 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("PoolConfig: %v", err)
	}
	if pc.MaxConns != 7 {
		t.Fatalf("MaxConns = %d", pc.MaxConns)
	}
	rp := pc.ConnConfig.RuntimeParams
	if rp["application_name"] != "tzkt-activity" || rp["statement_timeout"] != "1500" {
		t.Fatalf("runtime params = %v", rp)
	}
	if rp["default_transaction_read_only"] != "on" {
		t.Fatalf("pool should be read only: %v", rp)
	}

	if _, err := PoolConfig(Config{URL: "://bad"}); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestTracerWritesSQL(t *testing.T) {
	var buf bytes.Buffer
	root := zerolog.New(&buf).Level(zerolog.ErrorLevel)
	tr := Tracer(root)

	ctx := logger.WithRequest(context.Background(), "req-9")
	tr.OnQuery(ctx, QueryEvent{SQL: "SELECT \"Id\"\n\t FROM \"TransactionOps\"", Rows: 3, ElapsedUS: 1200})
	tr.OnQuery(ctx, QueryEvent{SQL: "SELECT 1", Slow: true, Err: errors.New("boom")})

	out := buf.String()
	for _, want := range []string{`SELECT \"Id\" FROM \"TransactionOps\"`, `"rows":3`, `"request_id":"req-9"`, `"level":"warn"`, "boom"} {
		if !strings.Contains(out, want) {
			t.Fatalf("tracer output missing %q:\n%s", want, out)
		}
	}
}

func TestCloseNil(t *testing.T) {
	var p *PG
	p.Close()
	(&PG{}).Close()
}

func TestOpenPassesReadOnlyPoolConfig(t *testing.T) {
	kit.Serial(t)

	var got *pgxpool.Config
	boom := errors.New("no pool")
	kit.Swap(t, &newPool, func(_ context.Context, c *pgxpool.Config) (*pgxpool.Pool, error) {
		got = c
		return nil, boom
	})

	_, err := Open(t.Context(), Config{URL: "postgres://u:p@localhost:5432/db", MaxConns: 3}, nil,
		func(c *pgxpool.Config) { c.MinConns = 1 })
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want pool error", err)
	}
	if got == nil || got.MaxConns != 3 || got.MinConns != 1 {
		t.Fatalf("pool config not passed through: %+v", got)
	}
	if got.ConnConfig.RuntimeParams["default_transaction_read_only"] != "on" {
		t.Fatalf("pool must be read only")
	}
}
