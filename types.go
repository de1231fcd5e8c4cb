package pluginmap

import "reflect"

// Type identifies a requested contract or a concrete implementation.
// Tokens are comparable and can be used as map keys.
type Type struct {
	rt reflect.Type
}

// TypeOf returns the token for T.
//
//	handler := pluginmap.TypeOf[Handler]()
func TypeOf[T any]() Type {
	return Type{rt: reflect.TypeFor[T]()}
}

// typeOfValue returns the dynamic type token of v. Only used while compiling
// configuration, never during resolution.
func typeOfValue(v any) Type {
	return Type{rt: reflect.TypeOf(v)}
}

// IsZero reports whether t is the zero token.
func (t Type) IsZero() bool {
	return t.rt == nil
}

func (t Type) String() string {
	if t.rt == nil {
		return "<none>"
	}
	return t.rt.String()
}

// nillable reports whether nil is a valid value of t.
func (t Type) nillable() bool {
	if t.rt == nil {
		return false
	}
	switch t.rt.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	}
	return false
}

// AssignableTo reports whether values of t can be used where u is requested.
// The zero token is assignable to nothing.
func (t Type) AssignableTo(u Type) bool {
	if t.rt == nil || u.rt == nil {
		return false
	}
	return t.rt.AssignableTo(u.rt)
}
