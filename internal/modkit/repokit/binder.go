package repokit

import "reflect"

// Binder builds a repo of type T over a querier of type Q
// Q is usually Queryer for postgres or store.Clickhouse for columnar reads
type Binder[Q, T any] interface {
	Bind(Q) T
}

// BindFunc lets you create a Binder from a function
type BindFunc[Q, T any] func(Q) T

// Bind calls the underlying function
func (f BindFunc[Q, T]) Bind(q Q) T { return f(q) }

// Require panics early on programmer error (nil q, including typed nil pointers)
func Require[Q any](q Q) Q {
	if isNil(q) {
		panic("repokit: nil querier")
	}
	return q
}

// MustBind validates q then binds
func MustBind[Q, T any](b Binder[Q, T], q Q) T {
	return b.Bind(Require(q))
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
