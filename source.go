package pluginmap

import "fmt"

// Explicit supplies a literal value.
type Explicit struct {
	Value any
}

func (s Explicit) String() string { return fmt.Sprintf("explicit(%v)", s.Value) }

func (s Explicit) resolvable(_ *Container, target Parameter) bool {
	return target.accepts == nil || target.accepts(s.Value)
}

func (s Explicit) resolve(*BuildContext, Parameter) (any, error) { return s.Value, nil }

// Nested builds an inline, unshared instance.
type Nested struct {
	Instance Instance
}

func (s Nested) String() string { return fmt.Sprintf("nested(%s)", s.Instance.PluggedType()) }

func (s Nested) resolvable(_ *Container, target Parameter) bool {
	if f, ok := s.Instance.(interface{ fits(Parameter) bool }); ok {
		return f.fits(target)
	}
	return true
}

func (s Nested) resolve(ctx *BuildContext, target Parameter) (any, error) {
	return ctx.buildInstance(target.Type, s.Instance.Name(), s.Instance, target)
}

// Reference looks up a named instance of Type when the value is built, so the
// referenced instance may be registered after the reference. A zero Type means
// the declared type of the target.
type Reference struct {
	Type Type
	Name string
}

func (s Reference) String() string { return fmt.Sprintf("reference(%s %q)", s.Type, s.Name) }

func (s Reference) resolvable(*Container, Parameter) bool { return true }

func (s Reference) resolve(ctx *BuildContext, target Parameter) (any, error) {
	t := s.Type
	if t.IsZero() {
		t = target.Type
	}
	return ctx.resolve(t, s.Name)
}

// Auto resolves the target's declared type through its family default.
type Auto struct{}

func (Auto) String() string { return "auto" }

func (Auto) resolvable(c *Container, target Parameter) bool {
	f, ok := c.families[target.Type]
	if !ok {
		return false
	}
	_, ok = f.Default()
	return ok
}

func (Auto) resolve(ctx *BuildContext, target Parameter) (any, error) {
	return ctx.resolve(target.Type, "")
}

// allInstances feeds a sequence parameter with every instance of the element
// family, in registration order. An unknown family yields an empty sequence.
type allInstances struct{}

func (allInstances) String() string { return "all" }

func (allInstances) resolvable(*Container, Parameter) bool { return true }

func (allInstances) resolve(ctx *BuildContext, target Parameter) (any, error) {
	values, err := ctx.resolveAll(target.Elem)
	if err != nil {
		return nil, err
	}
	return ctx.adapt(target, values)
}
