package ch

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	kit "github.com/baking-bad/tzkt-sub003/internal/platform/testkit"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

type fakeColType struct {
	name string
	t    reflect.Type
}

func (c fakeColType) Name() string             { return c.name }
func (c fakeColType) Nullable() bool           { return false }
func (c fakeColType) ScanType() reflect.Type   { return c.t }
func (c fakeColType) DatabaseTypeName() string { return c.t.String() }

// fakeDriverRows serves one row of typed values and enforces typed destinations like the real driver
type fakeDriverRows struct {
	cols []fakeColType
	vals [][]any
	i    int
}

func (f *fakeDriverRows) Next() bool {
	if f.i >= len(f.vals) {
		return false
	}
	f.i++
	return true
}

func (f *fakeDriverRows) Scan(dest ...any) error {
	row := f.vals[f.i-1]
	for i, d := range dest {
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(row[i]))
	}
	return nil
}

func (f *fakeDriverRows) ScanStruct(any) error { return nil }
func (f *fakeDriverRows) ColumnTypes() []driver.ColumnType {
	out := make([]driver.ColumnType, len(f.cols))
	for i := range f.cols {
		out[i] = f.cols[i]
	}
	return out
}
func (f *fakeDriverRows) Totals(...any) error { return nil }
func (f *fakeDriverRows) Columns() []string {
	out := make([]string, len(f.cols))
	for i, c := range f.cols {
		out[i] = c.name
	}
	return out
}
func (f *fakeDriverRows) Close() error { return nil }
func (f *fakeDriverRows) Err() error   { return nil }

func TestDynRowsScanIntoAny(t *testing.T) {
	fr := &fakeDriverRows{
		cols: []fakeColType{
			{name: "Id", t: reflect.TypeOf(int64(0))},
			{name: "Level", t: reflect.TypeOf(int32(0))},
			{name: "Entrypoint", t: reflect.TypeOf("")},
		},
		vals: [][]any{{int64(11), int32(2001), "transfer"}},
	}
	d := &dynRows{r: fr}
	if !d.Next() {
		t.Fatalf("expected one row")
	}
	var id, level, ep any
	if err := d.Scan(&id, &level, &ep); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if id != int64(11) || level != int32(2001) || ep != "transfer" {
		t.Fatalf("scanned = %v %v %v", id, level, ep)
	}
	if got := strings.Join(d.Columns(), ","); got != "Id,Level,Entrypoint" {
		t.Fatalf("Columns = %q", got)
	}

	var one any
	if err := d.Scan(&one); err == nil {
		t.Fatalf("expected arity error")
	}
}

func TestDynRowsTypedPassthrough(t *testing.T) {
	fr := &fakeDriverRows{
		cols: []fakeColType{{name: "Id", t: reflect.TypeOf(int64(0))}},
		vals: [][]any{{int64(5)}},
	}
	d := &dynRows{r: fr}
	d.Next()
	var id int64
	if err := d.Scan(&id); err != nil || id != 5 {
		t.Fatalf("typed scan = %d, %v", id, err)
	}
}

func TestBuildClientInfo(t *testing.T) {
	ci := BuildClientInfo("tzkt-activity", "")
	if len(ci.Products) != 5 {
		t.Fatalf("products = %d", len(ci.Products))
	}
	if ci.Products[0].Version != "-" || ci.Products[1].Version != "tzkt-activity" {
		t.Fatalf("products = %+v", ci.Products)
	}
}

func TestOpenRejectsBadDSN(t *testing.T) {
	if _, err := Open(t.Context(), Config{URL: "://nope"}); err == nil {
		t.Fatalf("expected dsn error")
	}
}

func TestOpenAppliesOptions(t *testing.T) {
	kit.Serial(t)

	var got *clickhouse.Options
	boom := errors.New("refused")
	kit.Swap(t, &openConn, func(o *clickhouse.Options) (driver.Conn, error) {
		got = o
		return nil, boom
	})

	_, err := Open(t.Context(), Config{
		URL:          "clickhouse://default:@localhost:9000/tzkt",
		MaxOpenConns: 7,
		DialTimeout:  2 * time.Second,
		Role:         "activity",
		Tag:          "tzkt-activity",
	})
	if !errors.Is(err, boom) || !strings.HasPrefix(err.Error(), "ch: open:") {
		t.Fatalf("err = %v", err)
	}
	if got == nil || got.MaxOpenConns != 7 || got.DialTimeout != 2*time.Second {
		t.Fatalf("options not applied: %+v", got)
	}
	if len(got.ClientInfo.Products) == 0 {
		t.Fatalf("client info not stamped")
	}
}
