// Package filter models backend-agnostic, composable predicates over logical field names
//
// A Spec is an AND of Clauses plus at most one OrGroup. Clauses name logical fields, not
// storage columns; the query compiler resolves names against a kind's schema and silently
// drops anything it does not know.
package filter

import (
	"reflect"
	"strings"
)

// Op is a comparison operator
type Op uint8

const (
	OpEq Op = iota + 1
	OpNe
	OpGt
	OpGe
	OpLt
	OpLe
	OpIn
	OpNotIn
	OpIsNull
	OpContains
)

var opNames = map[Op]string{
	OpEq:       "eq",
	OpNe:       "ne",
	OpGt:       "gt",
	OpGe:       "ge",
	OpLt:       "lt",
	OpLe:       "le",
	OpIn:       "in",
	OpNotIn:    "ni",
	OpIsNull:   "null",
	OpContains: "as",
}

// String returns the query-string mnemonic of the operator
func (o Op) String() string {
	if s, ok := opNames[o]; ok {
		return s
	}
	return "invalid"
}

// ParseOp accepts the mnemonic ("eq", "ni", "as", ...) or an alias ("not-in", "is-null", "contains")
func ParseOp(s string) (Op, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "not-in", "notin":
		return OpNotIn, true
	case "is-null", "isnull":
		return OpIsNull, true
	case "contains", "like":
		return OpContains, true
	}
	for o, n := range opNames {
		if n == s {
			return o, true
		}
	}
	return 0, false
}

// Multi reports whether the operator takes a value list
func (o Op) Multi() bool { return o == OpIn || o == OpNotIn }

// Clause is one named condition
// Value holds the scalar operand; Values the list operand for in / not-in.
// For is-null, Value is a bool: true means IS NULL, false means IS NOT NULL.
type Clause struct {
	Field  string
	Op     Op
	Value  any
	Values []any
}

// IsSet reports whether the clause contributes to the predicate
// A list clause is always set once it names a field; an empty in-list still means "never true".
func (c Clause) IsSet() bool {
	if c.Field == "" || c.Op == 0 {
		return false
	}
	if c.Op.Multi() {
		return true
	}
	_, ok := Scalar(c.Value)
	return ok
}

// Scalar unwraps v, treating nil and nil pointers as unset
func Scalar(v any) (any, bool) {
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	return rv.Interface(), true
}

// Eq builds field = v
func Eq(field string, v any) Clause { return Clause{Field: field, Op: OpEq, Value: v} }

// Ne builds field != v
func Ne(field string, v any) Clause { return Clause{Field: field, Op: OpNe, Value: v} }

// Gt builds field > v
func Gt(field string, v any) Clause { return Clause{Field: field, Op: OpGt, Value: v} }

// Ge builds field >= v
func Ge(field string, v any) Clause { return Clause{Field: field, Op: OpGe, Value: v} }

// Lt builds field < v
func Lt(field string, v any) Clause { return Clause{Field: field, Op: OpLt, Value: v} }

// Le builds field <= v
func Le(field string, v any) Clause { return Clause{Field: field, Op: OpLe, Value: v} }

// In builds field IN (vs...)
func In[T any](field string, vs ...T) Clause {
	return Clause{Field: field, Op: OpIn, Values: anySlice(vs)}
}

// NotIn builds field NOT IN (vs...)
func NotIn[T any](field string, vs ...T) Clause {
	return Clause{Field: field, Op: OpNotIn, Values: anySlice(vs)}
}

// IsNull builds field IS NULL (null=true) or IS NOT NULL (null=false)
func IsNull(field string, null bool) Clause { return Clause{Field: field, Op: OpIsNull, Value: null} }

// Contains builds a substring match; only string operands are honored
func Contains(field, sub string) Clause { return Clause{Field: field, Op: OpContains, Value: sub} }

func anySlice[T any](vs []T) []any {
	out := make([]any, len(vs))
	for i, v := range vs {
		out[i] = v
	}
	return out
}

// Membership means "the row's field holds one of IDs"
type Membership struct {
	Field string
	IDs   []int64
}

// OrGroup matches a row when ANY membership matches
type OrGroup []Membership

// Spec is the full predicate: AND(Clauses) AND OR(Or)
type Spec struct {
	Clauses []Clause
	Or      OrGroup
}

// Where starts a Spec from clauses
func Where(cs ...Clause) Spec { return Spec{Clauses: cs} }

// And returns a copy of s with cs appended
func (s Spec) And(cs ...Clause) Spec {
	out := Spec{Clauses: make([]Clause, 0, len(s.Clauses)+len(cs)), Or: s.Or}
	out.Clauses = append(out.Clauses, s.Clauses...)
	out.Clauses = append(out.Clauses, cs...)
	return out
}

// WithOr returns a copy of s carrying g as its single OrGroup
func (s Spec) WithOr(g OrGroup) Spec {
	return Spec{Clauses: s.Clauses, Or: g}
}

// HasOr reports whether an OrGroup is present
func (s Spec) HasOr() bool { return s.Or != nil }
