package pluginmap

import "maps"

// ConstructedInstance builds a concrete type through one of its constructors.
type ConstructedInstance struct {
	name     string
	concrete Type
	// ctors are ordered richest first; equal arities keep declaration order.
	ctors []Constructor
	args  map[string]Source
}

func (i *ConstructedInstance) Name() string { return i.name }

func (i *ConstructedInstance) PluggedType() Type { return i.concrete }

// Arg returns the override configured for the named parameter.
func (i *ConstructedInstance) Arg(name string) (Source, bool) {
	s, ok := i.args[name]
	return s, ok
}

// Args returns a copy of all parameter overrides.
func (i *ConstructedInstance) Args() map[string]Source {
	return maps.Clone(i.args)
}

func (i *ConstructedInstance) sourceFor(c *Container, p Parameter) Source {
	if s, ok := i.args[p.Name]; ok {
		return s
	}
	if p.sequence {
		return allInstances{}
	}
	if p.hasDefault && !(Auto{}).resolvable(c, p) {
		return Explicit{Value: p.def}
	}
	return Auto{}
}

func (i *ConstructedInstance) satisfiable(c *Container, ctor Constructor) bool {
	for _, p := range ctor.params {
		if !i.sourceFor(c, p).resolvable(c, p) {
			return false
		}
	}
	return true
}

// selectConstructor walks arity groups from the richest down and returns the
// only satisfiable constructor of the first group that has any.
func (i *ConstructedInstance) selectConstructor(ctx *BuildContext) (Constructor, error) {
	c := ctx.container
	for start := 0; start < len(i.ctors); {
		arity := len(i.ctors[start].params)
		end := start
		for end < len(i.ctors) && len(i.ctors[end].params) == arity {
			end++
		}

		chosen := -1
		for k := start; k < end; k++ {
			if !i.satisfiable(c, i.ctors[k]) {
				continue
			}
			if chosen >= 0 {
				return Constructor{}, &AmbiguousConstructorError{
					Concrete: i.concrete.String(),
					Arity:    arity,
					Path:     ctx.Path(),
				}
			}
			chosen = k
		}
		if chosen >= 0 {
			return i.ctors[chosen], nil
		}
		start = end
	}

	missing := &MissingConstructorArgumentError{Concrete: i.concrete.String(), Path: ctx.Path()}
	if len(i.ctors) > 0 {
		for _, p := range i.ctors[0].params {
			if !i.sourceFor(c, p).resolvable(c, p) {
				missing.Param = p.Name
				missing.Type = p.Type.String()
				break
			}
		}
	}
	return Constructor{}, missing
}

func (i *ConstructedInstance) build(ctx *BuildContext, _ Parameter) (any, error) {
	ctor, err := i.selectConstructor(ctx)
	if err != nil {
		return nil, err
	}

	values := make(map[string]any, len(ctor.params))
	for _, p := range ctor.params {
		v, err := i.sourceFor(ctx.container, p).resolve(ctx, p)
		if err != nil {
			return nil, err
		}
		values[p.Name] = v
	}

	out, err := ctor.create(Args{ctx: ctx, values: values})
	if err != nil {
		return nil, &BuildError{Type: i.concrete.String(), Err: err, Path: ctx.Path()}
	}
	return out, nil
}

// ObjectInstance hands out a pre-built value.
type ObjectInstance struct {
	name    string
	value   any
	plugged Type
}

func (o *ObjectInstance) Name() string { return o.name }

func (o *ObjectInstance) PluggedType() Type { return o.plugged }

// Value returns the held value.
func (o *ObjectInstance) Value() any { return o.value }

func (o *ObjectInstance) build(*BuildContext, Parameter) (any, error) {
	return o.value, nil
}
