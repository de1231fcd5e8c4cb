// Package pluginmap builds object graphs from declarative registrations.
//
// A Registry collects which concrete implementations satisfy which requested
// contracts, how their constructor parameters are supplied, and which ordered
// sequences of dependencies feed sequence parameters. Build compiles that
// configuration into an immutable Container that answers queries concurrently.
package pluginmap

import "time"

// Instance is a compiled recipe for one value.
type Instance interface {
	// Name is the instance's name inside its family. Unnamed registrations
	// receive a generated, unique name.
	Name() string

	// PluggedType is the concrete type the recipe produces.
	PluggedType() Type

	build(ctx *BuildContext, target Parameter) (any, error)
}

// Source supplies the value of one constructor parameter or one sequence element.
type Source interface {
	String() string

	// resolvable reports, without building anything, whether the source can
	// supply target. Used for constructor selection.
	resolvable(c *Container, target Parameter) bool

	resolve(ctx *BuildContext, target Parameter) (any, error)
}

// Observer is notified once per top-level query.
type Observer interface {
	ObserveResolution(requested Type, name string, elapsed time.Duration, err error)
}
