package domain

import "github.com/baking-bad/tzkt-sub003/internal/core/kinds"

// CounterKey addresses one capability counter
type CounterKey struct {
	Account int64
	Kind    string
	Role    kinds.Role
}

// Counters is an in-memory Capabilities built from counter rows
type Counters map[CounterKey]int64

// Add accumulates n under (account, kind, role); role must be a single bit
func (c Counters) Add(account int64, kind string, role kinds.Role, n int64) {
	c[CounterKey{Account: account, Kind: kind, Role: role}] += n
}

// HasRole reports a nonzero counter for any bit of role
func (c Counters) HasRole(account int64, kind string, role kinds.Role) bool {
	found := false
	role.Each(func(r kinds.Role) {
		if c[CounterKey{Account: account, Kind: kind, Role: r}] > 0 {
			found = true
		}
	})
	return found
}
