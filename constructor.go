package pluginmap

import (
	"context"
	"fmt"
	"iter"
	"slices"
)

// Shape is the form in which a sequence parameter receives its elements.
type Shape int

const (
	// ShapeArray delivers a []T whose capacity equals its length.
	ShapeArray Shape = iota
	// ShapeList delivers a *List[T].
	ShapeList
	// ShapeIterable delivers an iter.Seq[T].
	ShapeIterable
)

func (s Shape) String() string {
	switch s {
	case ShapeArray:
		return "array"
	case ShapeList:
		return "list"
	case ShapeIterable:
		return "iterable"
	}
	return fmt.Sprintf("Shape(%d)", int(s))
}

// Parameter describes one constructor parameter of a concrete type.
type Parameter struct {
	Name string
	// Type is the declared type of the parameter.
	Type Type
	// Elem is the element type of a sequence parameter, zero otherwise.
	Elem  Type
	Shape Shape

	sequence   bool
	hasDefault bool
	def        any

	accepts     func(v any) bool
	acceptsElem func(v any) bool
	adapt       func(values []any) (any, *TypeMismatchError)
}

// IsSequence reports whether the parameter receives multiple elements.
func (p Parameter) IsSequence() bool {
	return p.sequence
}

// WithDefault returns a copy of p that falls back to v when nothing else
// supplies the parameter.
func (p Parameter) WithDefault(v any) Parameter {
	p.hasDefault = true
	p.def = v
	return p
}

// Param declares a single-valued parameter of type T.
func Param[T any](name string) Parameter {
	return Parameter{
		Name:    name,
		Type:    TypeOf[T](),
		accepts: isA[T],
	}
}

// ArrayOf declares a []T parameter.
func ArrayOf[T any](name string) Parameter {
	return sequenceParam(name, TypeOf[[]T](), ShapeArray, isA[[]T], func(items []T) any {
		return slices.Clip(items)
	})
}

// ListOf declares a *List[T] parameter.
func ListOf[T any](name string) Parameter {
	return sequenceParam(name, TypeOf[*List[T]](), ShapeList, isA[*List[T]], func(items []T) any {
		return &List[T]{items: items}
	})
}

// SeqOf declares an iter.Seq[T] parameter.
func SeqOf[T any](name string) Parameter {
	return sequenceParam(name, TypeOf[iter.Seq[T]](), ShapeIterable, isA[iter.Seq[T]], func(items []T) any {
		return slices.Values(items)
	})
}

func sequenceParam[T any](name string, declared Type, shape Shape, accepts func(any) bool, wrap func([]T) any) Parameter {
	elem := TypeOf[T]()
	return Parameter{
		Name:        name,
		Type:        declared,
		Elem:        elem,
		Shape:       shape,
		sequence:    true,
		accepts:     accepts,
		acceptsElem: isA[T],
		adapt: func(values []any) (any, *TypeMismatchError) {
			items := make([]T, len(values))
			for i, v := range values {
				if v == nil {
					continue
				}
				item, ok := v.(T)
				if !ok {
					return nil, &TypeMismatchError{
						Expected: elem.String(),
						Got:      fmt.Sprintf("%T (element %d)", v, i),
					}
				}
				items[i] = item
			}
			return wrap(items), nil
		},
	}
}

// isA accepts values of type T. A nil value is accepted when T can hold nil.
func isA[T any](v any) bool {
	if v == nil {
		return TypeOf[T]().nillable()
	}
	_, ok := v.(T)
	return ok
}

// Constructor is one way of building a concrete type.
type Constructor struct {
	concrete Type
	params   []Parameter
	create   func(Args) (any, error)
}

// Concrete returns the type the constructor builds.
func (c Constructor) Concrete() Type {
	return c.concrete
}

// Params returns the declared parameters in order.
func (c Constructor) Params() []Parameter {
	return slices.Clone(c.params)
}

// Define declares a constructor for T. Calling it several times for the same T
// declares alternative constructors; the richest satisfiable one wins.
//
//	pluginmap.Define(r, func(a pluginmap.Args) (*Processor, error) {
//	    return &Processor{
//	        Handlers: pluginmap.Arg[[]Handler](a, "handlers"),
//	        Name:     pluginmap.Arg[string](a, "name"),
//	    }, nil
//	}, pluginmap.ArrayOf[Handler]("handlers"), pluginmap.Param[string]("name"))
func Define[T any](r *Registry, create func(Args) (T, error), params ...Parameter) {
	concrete := TypeOf[T]()
	r.addConstructor(Constructor{
		concrete: concrete,
		params:   slices.Clone(params),
		create: func(a Args) (any, error) {
			return create(a)
		},
	})
}

// Args carries the resolved parameter values into a constructor.
type Args struct {
	ctx    *BuildContext
	values map[string]any
}

// Value returns the raw value of the named parameter.
func (a Args) Value(name string) any {
	return a.values[name]
}

// Has reports whether the named parameter was supplied.
func (a Args) Has(name string) bool {
	_, ok := a.values[name]
	return ok
}

// Context returns the context the resolution was started with.
func (a Args) Context() context.Context {
	if a.ctx == nil {
		return context.Background()
	}
	return a.ctx
}

// Path returns the build path leading to this constructor call.
func (a Args) Path() Path {
	if a.ctx == nil {
		return nil
	}
	return a.ctx.Path()
}

// Arg returns the named parameter as a T, or T's zero value.
func Arg[T any](a Args, name string) T {
	v, _ := a.values[name].(T)
	return v
}
