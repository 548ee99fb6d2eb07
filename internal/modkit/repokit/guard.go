package repokit

import (
	"context"
	"fmt"
	"time"
)

type guarder interface {
	Guard(context.Context) error
}

// DefaultGuardTimeout bounds MustGuard when ctx carries no deadline
const DefaultGuardTimeout = 5 * time.Second

// MustGuard runs st.Guard and panics on any error; a bare ctx gets DefaultGuardTimeout
func MustGuard(ctx context.Context, st guarder) {
	if isNil(st) {
		panic("repokit: nil store")
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultGuardTimeout)
		defer cancel()
	}
	if err := st.Guard(ctx); err != nil {
		panic(fmt.Errorf("dependency guard failed: %w", err))
	}
}
