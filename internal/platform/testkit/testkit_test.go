package testkit

import (
	"errors"
	"testing"
)

func TestFakeRowsScan(t *testing.T) {
	r := NewRows([]string{"Id", "Entrypoint", "Amount"},
		[]any{int64(1), "transfer", int32(10)},
		[]any{int64(2), nil, int32(0)},
	)

	var n int
	for r.Next() {
		var id int64
		var ep, amount any
		if err := r.Scan(&id, &ep, &amount); err != nil {
			t.Fatalf("scan: %v", err)
		}
		n++
		if n == 2 && ep != nil {
			t.Fatalf("nil column should scan as nil, got %v", ep)
		}
	}
	if n != 2 {
		t.Fatalf("iterated %d rows", n)
	}
	r.Close()
	if !r.Closed() || r.Next() {
		t.Fatalf("closed rows must not iterate")
	}

	bad := NewRows([]string{"Id"}, []any{"x"})
	bad.Next()
	var id int64
	if err := bad.Scan(&id); err == nil {
		t.Fatalf("expected type mismatch error")
	}
}

func TestFakeRow(t *testing.T) {
	var level int64
	if err := (FakeRow{Vals: []any{int32(5)}}).Scan(&level); err != nil || level != 5 {
		t.Fatalf("FakeRow scan = %d, %v", level, err)
	}
	boom := errors.New("boom")
	if err := (FakeRow{Err: boom}).Scan(&level); !errors.Is(err, boom) {
		t.Fatalf("FakeRow err = %v", err)
	}
}

func TestMustEqualArgs(t *testing.T) {
	MustEqualArgs(t, []any{int64(1), "a"}, []any{int64(1), "a"})
}
