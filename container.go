package pluginmap

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/go-logr/logr"
)

// Container is the compiled, read-only configuration produced by
// Registry.Build. All query methods are safe for concurrent use; every query
// builds a fresh object graph.
type Container struct {
	families map[Type]*PluginFamily
	catalog  map[Type][]Constructor
	log      logr.Logger
	observer Observer
}

// NewContainer configures a fresh registry and builds it.
//
//	c, err := pluginmap.NewContainer(func(r *pluginmap.Registry) {
//	    r.For(pluginmap.TypeOf[Handler]()).Use(pluginmap.TypeOf[*Handler1]())
//	})
func NewContainer(configure func(r *Registry), opts ...Option) (*Container, error) {
	r := NewRegistry(opts...)
	if configure != nil {
		configure(r)
	}
	return r.Build()
}

// GetInstance builds the default instance of requested.
// Returns NoInstanceFoundError if nothing is registered for it.
func (c *Container) GetInstance(requested Type) (any, error) {
	return c.GetNamedInstanceContext(context.Background(), requested, "")
}

// GetInstanceContext is GetInstance with a caller context that constructors
// can read through Args.Context.
func (c *Container) GetInstanceContext(ctx context.Context, requested Type) (any, error) {
	return c.GetNamedInstanceContext(ctx, requested, "")
}

// GetNamedInstance builds the instance registered under name. An empty name
// selects the default instance.
func (c *Container) GetNamedInstance(requested Type, name string) (any, error) {
	return c.GetNamedInstanceContext(context.Background(), requested, name)
}

// GetNamedInstanceContext is GetNamedInstance with a caller context.
func (c *Container) GetNamedInstanceContext(ctx context.Context, requested Type, name string) (any, error) {
	start := time.Now()
	v, err := newBuildContext(ctx, c).resolve(requested, name)
	c.finish(requested, name, start, err)
	return v, err
}

// GetAllInstances builds every instance of requested in registration order.
// An unregistered type yields an empty slice.
func (c *Container) GetAllInstances(requested Type) ([]any, error) {
	return c.GetAllInstancesContext(context.Background(), requested)
}

// GetAllInstancesContext is GetAllInstances with a caller context.
func (c *Container) GetAllInstancesContext(ctx context.Context, requested Type) ([]any, error) {
	start := time.Now()
	values, err := newBuildContext(ctx, c).resolveAll(requested)
	c.finish(requested, "", start, err)
	return values, err
}

func (c *Container) finish(requested Type, name string, start time.Time, err error) {
	if c.observer != nil {
		c.observer.ObserveResolution(requested, name, time.Since(start), err)
	}
	if err != nil {
		c.log.V(1).Info("resolution failed", "type", requested.String(), "name", name, "kind", Kind(err), "error", err.Error())
	}
}

// Family returns the family registered for t.
func (c *Container) Family(t Type) (*PluginFamily, bool) {
	f, ok := c.families[t]
	return f, ok
}

// Has reports whether t has an instance under name, or a default for "".
func (c *Container) Has(t Type, name string) bool {
	f, ok := c.families[t]
	if !ok {
		return false
	}
	_, ok = f.lookup(name)
	return ok
}

// Types returns every requested type with a family, sorted by name.
func (c *Container) Types() []Type {
	out := make([]Type, 0, len(c.families))
	for t := range c.families {
		out = append(out, t)
	}
	slices.SortFunc(out, func(a, b Type) int {
		return strings.Compare(a.String(), b.String())
	})
	return out
}

// Constructors returns the constructors of concrete, richest first.
func (c *Container) Constructors(concrete Type) []Constructor {
	return slices.Clone(c.catalog[concrete])
}

// Get builds the default instance of T.
// Returns TypeMismatchError if the built value is not a T.
func Get[T any](c *Container) (T, error) {
	return GetNamedContext[T](context.Background(), c, "")
}

// GetNamed builds the instance of T registered under name.
func GetNamed[T any](c *Container, name string) (T, error) {
	return GetNamedContext[T](context.Background(), c, name)
}

// GetNamedContext builds the instance of T registered under name with a
// caller context.
func GetNamedContext[T any](ctx context.Context, c *Container, name string) (T, error) {
	var zero T
	requested := TypeOf[T]()
	v, err := c.GetNamedInstanceContext(ctx, requested, name)
	if err != nil || v == nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, &TypeMismatchError{Expected: requested.String(), Got: fmt.Sprintf("%T", v)}
	}
	return typed, nil
}

// GetAll builds every instance of T in registration order.
func GetAll[T any](c *Container) ([]T, error) {
	requested := TypeOf[T]()
	values, err := c.GetAllInstances(requested)
	if err != nil {
		return nil, err
	}
	out := make([]T, len(values))
	for i, v := range values {
		if v == nil {
			continue
		}
		typed, ok := v.(T)
		if !ok {
			return nil, &TypeMismatchError{Expected: requested.String(), Got: fmt.Sprintf("%T", v)}
		}
		out[i] = typed
	}
	return out, nil
}
