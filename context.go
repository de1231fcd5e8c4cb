package pluginmap

import (
	"context"
	"fmt"
	"slices"
	"strings"
)

// Frame is one in-progress build on a resolution path. Param is set only on
// the frame assembling a sequence and names the parameter it fills.
type Frame struct {
	Requested Type
	Name      string
	Param     string
	Concrete  Type

	instance Instance
}

func (f Frame) String() string {
	var b strings.Builder
	b.WriteString(f.Requested.String())
	if f.Name != "" {
		fmt.Fprintf(&b, "(%q)", f.Name)
	}
	if f.Param != "" {
		fmt.Fprintf(&b, "[%s]", f.Param)
	}
	if !f.Concrete.IsZero() && f.Concrete != f.Requested {
		b.WriteString(" => ")
		b.WriteString(f.Concrete.String())
	}
	return b.String()
}

// Path is the ordered stack of builds active when a value was requested.
type Path []Frame

func (p Path) String() string {
	parts := make([]string, len(p))
	for i, f := range p {
		parts[i] = f.String()
	}
	return strings.Join(parts, " -> ")
}

// BuildContext is the state of a single query. It extends the caller's
// context.Context with the active build path and is never shared between
// queries, so concurrent resolutions cannot observe each other's paths.
type BuildContext struct {
	context.Context
	container *Container
	path      Path
}

func newBuildContext(parent context.Context, c *Container) *BuildContext {
	if parent == nil {
		parent = context.Background()
	}
	return &BuildContext{
		Context:   parent,
		container: c,
		path:      make(Path, 0, 8),
	}
}

// Container returns the container serving the query.
func (ctx *BuildContext) Container() *Container {
	return ctx.container
}

// Path returns a copy of the active build path.
func (ctx *BuildContext) Path() Path {
	return slices.Clone(ctx.path)
}

// Depth returns the number of builds in progress.
func (ctx *BuildContext) Depth() int {
	return len(ctx.path)
}

// resolve builds the named (or default, for "") instance of requested.
func (ctx *BuildContext) resolve(requested Type, name string) (any, error) {
	family, ok := ctx.container.families[requested]
	if !ok {
		return nil, &NoInstanceFoundError{Type: requested.String(), Name: name, Path: ctx.Path()}
	}
	inst, ok := family.lookup(name)
	if !ok {
		return nil, &NoInstanceFoundError{Type: requested.String(), Name: name, Path: ctx.Path()}
	}
	return ctx.buildInstance(requested, inst.Name(), inst, Parameter{Type: requested})
}

// resolveAll builds every instance of requested in registration order.
func (ctx *BuildContext) resolveAll(requested Type) ([]any, error) {
	family, ok := ctx.container.families[requested]
	if !ok {
		return []any{}, nil
	}
	values := make([]any, 0, len(family.instances))
	for _, inst := range family.instances {
		v, err := ctx.buildInstance(requested, inst.Name(), inst, Parameter{Type: requested})
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// buildInstance pushes a frame for inst, builds it and pops the frame again.
// It is the single entry point for descending into a child recipe.
func (ctx *BuildContext) buildInstance(requested Type, name string, inst Instance, target Parameter) (any, error) {
	frame := Frame{Requested: requested, Name: name, Concrete: inst.PluggedType(), instance: inst}
	if enum, ok := inst.(*EnumerableInstance); ok {
		frame.Param = enum.param
	}
	for _, active := range ctx.path {
		if active.instance == inst {
			return nil, &CircularDependencyError{
				Type: requested.String(),
				Path: append(ctx.Path(), frame),
			}
		}
	}

	ctx.path = append(ctx.path, frame)
	defer func() { ctx.path = ctx.path[:len(ctx.path)-1] }()

	if log := ctx.container.log.V(2); log.Enabled() {
		log.Info("building instance",
			"requested", requested.String(),
			"name", name,
			"concrete", frame.Concrete.String(),
			"depth", len(ctx.path))
	}
	return inst.build(ctx, target)
}

// adapt converts resolved elements into the shape target expects.
func (ctx *BuildContext) adapt(target Parameter, values []any) (any, error) {
	if target.adapt == nil {
		return values, nil
	}
	out, mismatch := target.adapt(values)
	if mismatch != nil {
		mismatch.Path = ctx.Path()
		return nil, mismatch
	}
	return out, nil
}
