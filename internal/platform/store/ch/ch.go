// Package ch provides a clickhouse read client over clickhouse-go
package ch

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// Config configures the clickhouse client
type Config struct {
	URL          string
	MaxOpenConns int
	DialTimeout  time.Duration
	Role         string
	Tag          string
}

// Rows is the result set iteration for ch
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
	Columns() []string
}

// CH is a clickhouse client bound to one native connection pool
type CH struct {
	conn driver.Conn
}

var openConn = clickhouse.Open

// Open parses the DSN, stamps client info and verifies connectivity
func Open(ctx context.Context, cfg Config) (*CH, error) {
	opts, err := clickhouse.ParseDSN(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("ch: parse dsn: %w", err)
	}
	opts.ClientInfo = BuildClientInfo(cfg.Role, cfg.Tag)
	if cfg.MaxOpenConns > 0 {
		opts.MaxOpenConns = cfg.MaxOpenConns
	}
	if cfg.DialTimeout > 0 {
		opts.DialTimeout = cfg.DialTimeout
	}

	conn, err := openConn(opts)
	if err != nil {
		return nil, fmt.Errorf("ch: open: %w", err)
	}
	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ch: ping: %w", err)
	}
	return &CH{conn: conn}, nil
}

// Query runs a read query with positional ? args
func (c *CH) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	r, err := c.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return &dynRows{r: r}, nil
}

// Ping checks the server answers
func (c *CH) Ping(ctx context.Context) error { return c.conn.Ping(ctx) }

// Close closes resources
func (c *CH) Close() error { return c.conn.Close() }

// dynRows lets callers scan into *any by allocating the column's native scan type first
type dynRows struct {
	r     driver.Rows
	types []reflect.Type
}

func (d *dynRows) Next() bool        { return d.r.Next() }
func (d *dynRows) Err() error        { return d.r.Err() }
func (d *dynRows) Close() error      { return d.r.Close() }
func (d *dynRows) Columns() []string { return d.r.Columns() }

func (d *dynRows) Scan(dest ...any) error {
	if !allAny(dest) {
		return d.r.Scan(dest...)
	}
	if d.types == nil {
		cts := d.r.ColumnTypes()
		d.types = make([]reflect.Type, len(cts))
		for i, ct := range cts {
			d.types[i] = ct.ScanType()
		}
	}
	if len(dest) != len(d.types) {
		return fmt.Errorf("ch: scan expects %d destinations, got %d", len(d.types), len(dest))
	}
	typed := make([]any, len(dest))
	for i, t := range d.types {
		typed[i] = reflect.New(t).Interface()
	}
	if err := d.r.Scan(typed...); err != nil {
		return err
	}
	for i := range dest {
		*(dest[i].(*any)) = reflect.ValueOf(typed[i]).Elem().Interface()
	}
	return nil
}

func allAny(dest []any) bool {
	for _, d := range dest {
		if _, ok := d.(*any); !ok {
			return false
		}
	}
	return len(dest) > 0
}
