package repokit

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeGuard struct {
	err     error
	lastCtx context.Context
}

func (f *fakeGuard) Guard(ctx context.Context) error {
	f.lastCtx = ctx
	return f.err
}

func panicMsg(fn func()) (msg string) {
	defer func() {
		switch x := recover().(type) {
		case string:
			msg = x
		case error:
			msg = x.Error()
		}
	}()
	fn()
	return ""
}

func TestMustGuard(t *testing.T) {
	t.Parallel()

	g := &fakeGuard{}
	MustGuard(context.Background(), g)
	if dl, ok := g.lastCtx.Deadline(); !ok || time.Until(dl) > DefaultGuardTimeout {
		t.Fatalf("expected default deadline, got %v %v", dl, ok)
	}

	parent, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	MustGuard(parent, g)
	want, _ := parent.Deadline()
	if got, _ := g.lastCtx.Deadline(); !got.Equal(want) {
		t.Fatalf("parent deadline not honored: got %v want %v", got, want)
	}

	g.err = errors.New("pg: refused")
	if msg := panicMsg(func() { MustGuard(context.Background(), g) }); msg != "dependency guard failed: pg: refused" {
		t.Fatalf("guard panic = %q", msg)
	}
	if msg := panicMsg(func() { MustGuard(context.Background(), (*fakeGuard)(nil)) }); msg != "repokit: nil store" {
		t.Fatalf("nil store panic = %q", msg)
	}
}
