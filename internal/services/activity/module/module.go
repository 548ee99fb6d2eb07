// Package module wires the activity service to its storage backend
package module

import (
	"github.com/baking-bad/tzkt-sub003/internal/core/query"
	"github.com/baking-bad/tzkt-sub003/internal/modkit"
	"github.com/baking-bad/tzkt-sub003/internal/modkit/repokit"
	dom "github.com/baking-bad/tzkt-sub003/internal/services/activity/domain"
	"github.com/baking-bad/tzkt-sub003/internal/services/activity/mapper"
	"github.com/baking-bad/tzkt-sub003/internal/services/activity/repo"
	"github.com/baking-bad/tzkt-sub003/internal/services/activity/service"
)

// Ports exposed by the activity module
type Ports struct {
	Activity     dom.ActivityPort
	Capabilities dom.CapabilityLoader
	Mapper       *mapper.Mapper
}

// Module implements the activity module
type Module struct {
	name  string
	ports Ports
}

var _ modkit.Module = (*Module)(nil)

// New constructs the activity module over deps
//
// Options.Backend picks where compiled queries run. Capability counters are read from
// postgres whenever it is wired and from ClickHouse otherwise. Lookups for derived fields
// can be injected with modkit.WithPorts(mapper.Lookups{...}); the time lookup defaults to a
// fixed block interval from config.
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	o := FromConfig(deps.Cfg)
	built := modkit.Build(append([]modkit.Option{modkit.WithName("activity")}, opts...)...)

	var (
		exec    dom.Executor
		dialect query.Dialect
	)
	switch o.Backend {
	case "ch":
		if !deps.HasCH() {
			panic("activity: backend ch requires a clickhouse seam")
		}
		exec, dialect = repokit.MustBind(repo.NewCH(), deps.CH), query.ClickHouse
	default:
		exec, dialect = repokit.MustBind(repo.NewPG(), deps.PG), query.Postgres
	}

	var caps dom.CapabilityLoader
	if deps.HasPG() {
		caps = repokit.MustBind(repo.NewPGCounters(), deps.PG)
	} else {
		caps = repokit.MustBind(repo.NewCHCounters(), deps.CH)
	}

	lookups, _ := built.Ports.(mapper.Lookups)
	if lookups.Times == nil {
		lookups.Times = mapper.FixedInterval{Genesis: o.Genesis, Interval: o.BlockInterval}
	}

	svc := service.New(exec, caps, lookups.Times, service.Config{
		Dialect:      dialect,
		DefaultLimit: o.DefaultLimit,
		MaxLimit:     o.MaxLimit,
		MaxParallel:  o.MaxParallel,
		Timeout:      o.Timeout,
	})

	deps.Log.Debug().Str("module", built.Name).Str("backend", o.Backend).
		Int("max_parallel", o.MaxParallel).Msg("module wired")

	return &Module{
		name: built.Name,
		ports: Ports{
			Activity:     svc,
			Capabilities: caps,
			Mapper:       mapper.New(lookups),
		},
	}
}

// Build is New behind the modkit.Builder signature
func Build(deps modkit.Deps, opts ...modkit.Option) modkit.Module { return New(deps, opts...) }

var _ modkit.Builder = Build

// Name satisfies modkit.Module
func (m *Module) Name() string { return m.name }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }
