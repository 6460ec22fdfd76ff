package codec

import (
	"reflect"
)

// Type is a reified description of a decode target. Unlike a bare
// reflect.Type taken from an untyped container, a Type built with TypeOf or
// the container constructors always carries its element types.
type Type struct {
	rt reflect.Type
}

// TypeOf returns the descriptor for T.
func TypeOf[T any]() Type {
	return Type{rt: reflect.TypeFor[T]()}
}

// SliceOf returns the descriptor for []elem.
func SliceOf(elem Type) Type {
	if elem.rt == nil {
		return Type{}
	}
	return Type{rt: reflect.SliceOf(elem.rt)}
}

// MapOf returns the descriptor for map[key]elem.
func MapOf(key, elem Type) Type {
	if key.rt == nil || elem.rt == nil || !key.rt.Comparable() {
		return Type{}
	}
	return Type{rt: reflect.MapOf(key.rt, elem.rt)}
}

// PointerOf returns the descriptor for *elem. Pointer targets are nullable.
func PointerOf(elem Type) Type {
	if elem.rt == nil {
		return Type{}
	}
	return Type{rt: reflect.PointerTo(elem.rt)}
}

// FromReflect wraps an existing reflect.Type. The result may be erased,
// for example reflect.TypeOf([]any{}).
func FromReflect(rt reflect.Type) Type {
	return Type{rt: rt}
}

// IsZero reports whether t describes nothing.
func (t Type) IsZero() bool { return t.rt == nil }

// Reflect returns the underlying reflect.Type.
func (t Type) Reflect() reflect.Type { return t.rt }

// Elem returns the element type of a slice, array, map or pointer, and the
// zero Type otherwise.
func (t Type) Elem() Type {
	if t.rt == nil {
		return Type{}
	}
	switch t.rt.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Pointer:
		return Type{rt: t.rt.Elem()}
	}
	return Type{}
}

// Erased reports whether the element type cannot be known: t is an
// interface, or an interface is reachable through its slice, array, map or
// pointer elements. Struct fields are not inspected.
func (t Type) Erased() bool {
	if t.rt == nil {
		return true
	}
	return find(t.rt, func(rt reflect.Type) bool { return rt.Kind() == reflect.Interface }) != nil
}

// Unsupported returns the first type reachable through t's slice, array,
// map or pointer elements that no text codec can fill: channels, funcs,
// unsafe pointers and complex numbers. It returns nil when there is none.
func (t Type) Unsupported() reflect.Type {
	if t.rt == nil {
		return nil
	}
	return find(t.rt, func(rt reflect.Type) bool {
		switch rt.Kind() {
		case reflect.Chan, reflect.Func, reflect.UnsafePointer, reflect.Complex64, reflect.Complex128:
			return true
		}
		return false
	})
}

// find walks rt and its container elements and returns the first type
// matching.
func find(rt reflect.Type, match func(reflect.Type) bool) reflect.Type {
	seen := make(map[reflect.Type]bool)
	var walk func(reflect.Type) reflect.Type
	walk = func(rt reflect.Type) reflect.Type {
		if seen[rt] {
			return nil
		}
		seen[rt] = true
		if match(rt) {
			return rt
		}
		switch rt.Kind() {
		case reflect.Slice, reflect.Array, reflect.Pointer:
			return walk(rt.Elem())
		case reflect.Map:
			if k := walk(rt.Key()); k != nil {
				return k
			}
			return walk(rt.Elem())
		}
		return nil
	}
	return walk(rt)
}

// Nullable reports whether an empty or null body is a valid value of t.
func (t Type) Nullable() bool {
	return t.rt != nil && t.rt.Kind() == reflect.Pointer
}

// Equal reports whether t and o describe the same type.
func (t Type) Equal(o Type) bool { return t.rt == o.rt }

func (t Type) String() string {
	if t.rt == nil {
		return "<nil>"
	}
	return t.rt.String()
}

// assignableTo reports whether values of t can be returned as T.
func assignableTo[T any](t Type) bool {
	return t.rt != nil && t.rt.AssignableTo(reflect.TypeFor[T]())
}
