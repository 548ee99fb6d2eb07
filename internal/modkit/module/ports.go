package module

import (
	"fmt"
	"reflect"
)

// PortsOf finds a T in a module's Ports() bundle
// The bundle itself may implement T, or one of its exported struct fields may.
func PortsOf[T any](m Module) (T, bool) {
	var zero T
	p := m.Ports()
	if p == nil {
		return zero, false
	}
	if v, ok := p.(T); ok {
		return v, true
	}
	rv := reflect.ValueOf(p)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return zero, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return zero, false
	}
	for _, sf := range reflect.VisibleFields(rv.Type()) {
		if !sf.IsExported() || len(sf.Index) != 1 {
			continue
		}
		if v, ok := rv.Field(sf.Index[0]).Interface().(T); ok {
			return v, true
		}
	}
	return zero, false
}

// MustPortsOf is PortsOf that panics naming the module
func MustPortsOf[T any](m Module) T {
	if v, ok := PortsOf[T](m); ok {
		return v
	}
	panic(fmt.Sprintf("module: %s has no port of type %s", m.Name(), reflect.TypeFor[T]()))
}
