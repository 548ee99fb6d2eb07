// Package modkit provides module wiring and core deps
package modkit

import (
	"github.com/baking-bad/tzkt-sub003/internal/modkit/repokit"
	"github.com/baking-bad/tzkt-sub003/internal/platform/config"
	"github.com/baking-bad/tzkt-sub003/internal/platform/logger"
	"github.com/baking-bad/tzkt-sub003/internal/platform/store"
)

// Deps holds core dependencies passed to modules
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.Queryer
	CH  store.Clickhouse
}

// FromStore copies the opened seams of st into Deps
func FromStore(st *store.Store, cfg config.Conf) Deps {
	return Deps{Log: st.Log, Cfg: cfg, PG: st.PG, CH: st.CH}
}

// HasPG reports whether a postgres seam is wired
func (d Deps) HasPG() bool { return d.PG != nil }

// HasCH reports whether a clickhouse seam is wired
func (d Deps) HasCH() bool { return d.CH != nil }
