package pluginmap

import (
	"fmt"
	"slices"
)

// EnumerableInstance produces the ordered elements of one sequence parameter.
// Elements are built in the order they were added, whatever shape the
// consuming parameter declares.
type EnumerableInstance struct {
	elem    Type
	param   string
	sources []Source
}

// NewEnumerableInstance returns an empty sequence of elem for the named parameter.
func NewEnumerableInstance(elem Type, param string) *EnumerableInstance {
	return &EnumerableInstance{elem: elem, param: param}
}

// AddElement appends one element source.
func (e *EnumerableInstance) AddElement(s Source) {
	e.sources = append(e.sources, s)
}

// Elements returns the element sources in order.
func (e *EnumerableInstance) Elements() []Source {
	return slices.Clone(e.sources)
}

// ElementType returns the type every element must satisfy.
func (e *EnumerableInstance) ElementType() Type { return e.elem }

// Parameter returns the name of the targeted constructor parameter.
func (e *EnumerableInstance) Parameter() string { return e.param }

// Name is empty; an enumerable is never registered or looked up by name.
func (e *EnumerableInstance) Name() string { return "" }

func (e *EnumerableInstance) PluggedType() Type { return e.elem }

func (e *EnumerableInstance) fits(p Parameter) bool {
	return p.sequence && p.Elem == e.elem
}

func (e *EnumerableInstance) build(ctx *BuildContext, target Parameter) (any, error) {
	values := make([]any, 0, len(e.sources))
	for i, src := range e.sources {
		v, err := src.resolve(ctx, elementTarget(e.elem, i))
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return ctx.adapt(target, values)
}

func elementTarget(elem Type, index int) Parameter {
	return Parameter{Name: fmt.Sprintf("[%d]", index), Type: elem}
}
