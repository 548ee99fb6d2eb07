package domain

import (
	"context"
	"time"

	"github.com/baking-bad/tzkt-sub003/internal/core/filter"
	"github.com/baking-bad/tzkt-sub003/internal/core/kinds"
	"github.com/baking-bad/tzkt-sub003/internal/core/projection"
	"github.com/baking-bad/tzkt-sub003/internal/core/query"
)

// ActivityPort is the feed exposed to callers
type ActivityPort interface {
	GetActivity(ctx context.Context, q ActivityQuery) ([]ActivityRecord, error)
	CompileAndExecute(
		ctx context.Context,
		kind string,
		f filter.Spec,
		proj *projection.Spec,
		s query.Sort,
		p query.Page,
	) ([]query.Row, query.Compiled, error)
}

// Executor runs one compiled query against its kind's storage
// Rows come back in compiled order, at most Limit of them. Failures are *StorageError.
type Executor interface {
	Execute(ctx context.Context, c query.Compiled) ([]query.Row, error)
}

// Capabilities answers the relevance pre-filter
type Capabilities interface {
	HasRole(account int64, kind string, role kinds.Role) bool
}

// CapabilityLoader reads the capability counters of a set of accounts
type CapabilityLoader interface {
	Load(ctx context.Context, accounts []int64) (Capabilities, error)
}

// AliasResolver resolves an account id to its alias and address
type AliasResolver interface {
	Alias(id int64) (Alias, bool)
}

// TimeLookup maps between block levels and block timestamps
type TimeLookup interface {
	Timestamp(level int64) (time.Time, bool)
	// LevelAt returns the first level whose timestamp is at or after t
	LevelAt(t time.Time) int64
}

// QuoteLookup returns the quote at a block level
type QuoteLookup interface {
	Quote(level int64) (Quote, bool)
}
