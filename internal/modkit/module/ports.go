package module

import (
	"fmt"
	"reflect"
)

// PortsOf looks for a T in m.Ports(): the value itself, then its exported struct fields in order
func PortsOf[T any](m Module) (T, bool) {
	var zero T
	p := m.Ports()
	if t, ok := p.(T); ok {
		return t, true
	}

	rv := reflect.ValueOf(p)
	if rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return zero, false
	}
	for i := range rv.NumField() {
		if !rv.Type().Field(i).IsExported() {
			continue
		}
		if t, ok := rv.Field(i).Interface().(T); ok {
			return t, true
		}
	}
	return zero, false
}

// MustPortsOf is PortsOf that panics when m carries no T
func MustPortsOf[T any](m Module) T {
	t, ok := PortsOf[T](m)
	if !ok {
		panic(fmt.Sprintf("module %s: no %s port", m.Name(), reflect.TypeFor[T]()))
	}
	return t
}
