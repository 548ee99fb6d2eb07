// Package testkit provides testing helpers
package testkit

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"
)

// MustPanic asserts that fn panics
func MustPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic, got none")
		}
	}()
	fn()
}

// MustContain asserts that haystack contains needle; the full haystack is dumped to a temp file on failure
func MustContain(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		tmpfile := filepath.Join(t.TempDir(), "output.txt")
		_ = os.WriteFile(tmpfile, []byte(haystack), 0o600)
		t.Fatalf("expected output to contain %q\n\nfull output written to %s", needle, tmpfile)
	}
}

// MustEqualArgs compares bound SQL args element by element
func MustEqualArgs(t *testing.T, got, want []any) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("args len = %d, want %d\n got: %#v\nwant: %#v", len(got), len(want), got, want)
	}
	for i := range want {
		if !reflect.DeepEqual(got[i], want[i]) {
			t.Fatalf("args[%d] = %#v, want %#v", i, got[i], want[i])
		}
	}
}

// FakeRows is an in-memory result set that satisfies the store Rows contract structurally
// Scan supports *any destinations and typed pointers assignable from the stored value
type FakeRows struct {
	Cols    []string
	Data    [][]any
	ScanErr error
	IterErr error

	mu     sync.Mutex
	idx    int
	closed bool
}

// NewRows builds a FakeRows positioned before the first row
func NewRows(cols []string, data ...[]any) *FakeRows {
	return &FakeRows{Cols: cols, Data: data}
}

func (r *FakeRows) Next() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed || r.idx >= len(r.Data) {
		return false
	}
	r.idx++
	return true
}

func (r *FakeRows) Scan(dest ...any) error {
	if r.ScanErr != nil {
		return r.ScanErr
	}
	r.mu.Lock()
	row := r.Data[r.idx-1]
	r.mu.Unlock()
	if len(dest) != len(row) {
		return fmt.Errorf("testkit: scan %d destinations into %d columns", len(dest), len(row))
	}
	for i, d := range dest {
		dv := reflect.ValueOf(d).Elem()
		if row[i] == nil {
			dv.Set(reflect.Zero(dv.Type()))
			continue
		}
		sv := reflect.ValueOf(row[i])
		if !sv.Type().AssignableTo(dv.Type()) {
			if !sv.Type().ConvertibleTo(dv.Type()) {
				return fmt.Errorf("testkit: cannot scan %T into %s", row[i], dv.Type())
			}
			sv = sv.Convert(dv.Type())
		}
		dv.Set(sv)
	}
	return nil
}

func (r *FakeRows) Err() error        { return r.IterErr }
func (r *FakeRows) Columns() []string { return r.Cols }

func (r *FakeRows) Close() {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
}

// Closed reports whether Close was called
func (r *FakeRows) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

// FakeRow is a single-row scan target
type FakeRow struct {
	Vals []any
	Err  error
}

func (r FakeRow) Scan(dest ...any) error {
	if r.Err != nil {
		return r.Err
	}
	rows := NewRows(nil, r.Vals)
	rows.Next()
	return rows.Scan(dest...)
}
