package kinds

import (
	"math/bits"
	"strings"
)

// Role is a bit set of relationships an account can have to a record
type Role uint16

const (
	Sender Role = 1 << iota
	Target
	Initiator
	Baker
	PrevDelegate
	NewDelegate
	Accuser
	Offender
	Contract

	AllRoles = Sender | Target | Initiator | Baker | PrevDelegate | NewDelegate | Accuser | Offender | Contract
)

var roleNames = []struct {
	r    Role
	name string
}{
	{Sender, "sender"},
	{Target, "target"},
	{Initiator, "initiator"},
	{Baker, "baker"},
	{PrevDelegate, "prevDelegate"},
	{NewDelegate, "newDelegate"},
	{Accuser, "accuser"},
	{Offender, "offender"},
	{Contract, "contract"},
}

// Has reports whether every bit of o is set in r
func (r Role) Has(o Role) bool { return o != 0 && r&o == o }

// Each calls fn for every single role bit set in r, lowest bit first
func (r Role) Each(fn func(Role)) {
	for x := r & AllRoles; x != 0; x &= x - 1 {
		fn(Role(1) << bits.TrailingZeros16(uint16(x)))
	}
}

// String renders the set as a comma separated list
func (r Role) String() string {
	if r == 0 {
		return "none"
	}
	var parts []string
	for _, rn := range roleNames {
		if r&rn.r != 0 {
			parts = append(parts, rn.name)
		}
	}
	return strings.Join(parts, ",")
}

// RoleByName finds a single role by name, ignoring case
func RoleByName(name string) (Role, bool) {
	for _, rn := range roleNames {
		if strings.EqualFold(strings.TrimSpace(name), rn.name) {
			return rn.r, true
		}
	}
	return 0, false
}

// ParseRoles reads a comma separated role list; "all" or an empty string means every role
// Unknown names are reported in the second return value and otherwise ignored.
func ParseRoles(s string) (Role, []string) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "all") {
		return AllRoles, nil
	}
	var r Role
	var unknown []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if one, ok := RoleByName(p); ok {
			r |= one
			continue
		}
		unknown = append(unknown, p)
	}
	return r, unknown
}
