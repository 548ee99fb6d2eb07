// Package kinds is the declarative table of record kinds the activity feed spans
//
// Each kind names its storage table, its output schema, which logical fields carry each
// account role, and which fields it can be sorted by. Every kind shares one identity key
// space ("Id"), assigned once per append event by ingestion.
package kinds

import (
	"fmt"
	"slices"

	"github.com/baking-bad/tzkt-sub003/internal/core/projection"
	"github.com/baking-bad/tzkt-sub003/internal/core/query"
)

// KeyColumn is the identity key column every kind table carries
const KeyColumn = "Id"

// Kind describes one record kind
type Kind struct {
	Name     string
	Table    string
	Schema   *projection.Schema
	Roles    map[Role][]string // role bit -> logical account fields
	Sortable []string
}

// Source is the compiler view of the kind
func (k *Kind) Source() query.Source {
	return query.Source{
		Name:     k.Name,
		Table:    k.Table,
		Key:      KeyColumn,
		Schema:   k.Schema,
		Sortable: k.Sortable,
	}
}

// Supports returns the union of roles this kind can express
func (k *Kind) Supports() Role {
	var r Role
	for role := range k.Roles {
		r |= role
	}
	return r
}

// RoleFields returns the account fields carrying a single role bit, nil if unsupported
func (k *Kind) RoleFields(r Role) []string { return k.Roles[r] }

var (
	registry []*Kind
	byName   = map[string]*Kind{}
)

func register(k *Kind) {
	if _, dup := byName[k.Name]; dup {
		panic(fmt.Sprintf("kinds: duplicate kind %q", k.Name))
	}
	for role, fields := range k.Roles {
		if bitsSet(role) != 1 {
			panic(fmt.Sprintf("kinds: %s maps a multi-bit role %s", k.Name, role))
		}
		for _, f := range fields {
			fd, ok := k.Schema.Lookup(f)
			if !ok || fd.Type != projection.TypeAccount {
				panic(fmt.Sprintf("kinds: %s role %s names non-account field %q", k.Name, role, f))
			}
		}
	}
	for _, s := range k.Sortable {
		if _, ok := k.Schema.Lookup(s); !ok {
			panic(fmt.Sprintf("kinds: %s sorts by unknown field %q", k.Name, s))
		}
	}
	registry = append(registry, k)
	byName[k.Name] = k
}

func bitsSet(r Role) int {
	n := 0
	r.Each(func(Role) { n++ })
	return n
}

// All returns every kind in registration order
func All() []*Kind { return slices.Clone(registry) }

// ByName finds a kind
func ByName(name string) (*Kind, bool) {
	k, ok := byName[name]
	return k, ok
}

// Names returns every kind name in registration order
func Names() []string {
	out := make([]string, len(registry))
	for i, k := range registry {
		out[i] = k.Name
	}
	return out
}

// Select resolves names to kinds, preserving registry order; empty names means all
// Unknown names are returned separately.
func Select(names []string) ([]*Kind, []string) {
	if len(names) == 0 {
		return All(), nil
	}
	want := make(map[string]bool, len(names))
	var unknown []string
	for _, n := range names {
		if _, ok := byName[n]; !ok {
			unknown = append(unknown, n)
			continue
		}
		want[n] = true
	}
	var out []*Kind
	for _, k := range registry {
		if want[k.Name] {
			out = append(out, k)
		}
	}
	return out, unknown
}
