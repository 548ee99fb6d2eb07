package modkit

import "testing"

type stub struct{ ports any }

func (s *stub) Ports() any   { return s.ports }
func (s *stub) Name() string { return "stub" }

var _ Module = (*stub)(nil)

func TestBuild(t *testing.T) {
	t.Parallel()

	if b := Build(); b.Name != "" || b.Ports != nil {
		t.Fatalf("defaults = %+v", b)
	}
	type lookups struct{ n int }
	b := Build(WithName("first"), WithName("activity"), WithPorts(lookups{n: 3}))
	if b.Name != "activity" {
		t.Fatalf("last WithName wins, got %q", b.Name)
	}
	if p, ok := b.Ports.(lookups); !ok || p.n != 3 {
		t.Fatalf("ports = %#v", b.Ports)
	}
}

func TestBuilder(t *testing.T) {
	t.Parallel()

	var b Builder = func(_ Deps, opts ...Option) Module {
		return &stub{ports: Build(opts...).Ports}
	}
	m := b(Deps{}, WithPorts("ok"))
	if m.Ports() != "ok" || m.Name() != "stub" {
		t.Fatalf("built module = %v %v", m.Name(), m.Ports())
	}
}
