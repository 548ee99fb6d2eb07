package testkit

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

var (
	openFn  = func(dsn string) error { return nil }
	backoff = 150 * time.Millisecond
)

func TestSwapRestoresAfterTest(t *testing.T) {
	boom := errors.New("refused")
	t.Run("swapped", func(t *testing.T) {
		Swap(t, &openFn, func(string) error { return boom })
		Swap(t, &backoff, time.Millisecond)
		if err := openFn("postgres://x"); !errors.Is(err, boom) {
			t.Fatalf("opener not swapped: %v", err)
		}
		if backoff != time.Millisecond {
			t.Fatalf("backoff = %v", backoff)
		}
	})
	if err := openFn("postgres://x"); err != nil {
		t.Fatalf("opener not restored: %v", err)
	}
	if backoff != 150*time.Millisecond {
		t.Fatalf("backoff not restored: %v", backoff)
	}
}

func TestSerialExcludesOtherHolders(t *testing.T) {
	var inside, peak atomic.Int32
	for _, name := range []string{"a", "b", "c"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			Serial(t)
			n := inside.Add(1)
			if n > peak.Load() {
				peak.Store(n)
			}
			time.Sleep(5 * time.Millisecond)
			inside.Add(-1)
		})
	}
	t.Cleanup(func() {
		if peak.Load() != 1 {
			t.Errorf("%d holders overlapped", peak.Load())
		}
	})
}
