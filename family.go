package pluginmap

import "slices"

// DuplicatePolicy decides what happens when a family receives a second
// instance under a name it already holds.
type DuplicatePolicy int

const (
	// ReplaceInPlace swaps the recipe but keeps the original position and
	// default status.
	ReplaceInPlace DuplicatePolicy = iota
	// RejectDuplicates fails Registry.Build with a DuplicateInstanceError.
	RejectDuplicates
)

func (p DuplicatePolicy) String() string {
	if p == RejectDuplicates {
		return "reject"
	}
	return "replace"
}

// PluginFamily holds the named instances able to satisfy one requested type.
type PluginFamily struct {
	requested  Type
	policy     DuplicatePolicy
	instances  []Instance
	byName     map[string]int
	defaultIdx int
}

func newPluginFamily(requested Type, policy DuplicatePolicy) *PluginFamily {
	return &PluginFamily{
		requested:  requested,
		policy:     policy,
		byName:     make(map[string]int),
		defaultIdx: -1,
	}
}

// RequestedType returns the contract the family serves.
func (f *PluginFamily) RequestedType() Type {
	return f.requested
}

func (f *PluginFamily) add(inst Instance, asDefault bool) error {
	if idx, exists := f.byName[inst.Name()]; exists {
		if f.policy == RejectDuplicates {
			return &DuplicateInstanceError{Type: f.requested.String(), Name: inst.Name()}
		}
		f.instances[idx] = inst
		if asDefault {
			f.defaultIdx = idx
		}
		return nil
	}

	f.instances = append(f.instances, inst)
	idx := len(f.instances) - 1
	f.byName[inst.Name()] = idx
	if asDefault || f.defaultIdx < 0 {
		f.defaultIdx = idx
	}
	return nil
}

func (f *PluginFamily) lookup(name string) (Instance, bool) {
	if name == "" {
		return f.Default()
	}
	idx, ok := f.byName[name]
	if !ok {
		return nil, false
	}
	return f.instances[idx], true
}

// Get returns the instance registered under name, or the default for "".
func (f *PluginFamily) Get(name string) (Instance, error) {
	inst, ok := f.lookup(name)
	if !ok {
		return nil, &NoInstanceFoundError{Type: f.requested.String(), Name: name}
	}
	return inst, nil
}

// Default returns the instance used when no name is given.
func (f *PluginFamily) Default() (Instance, bool) {
	if f.defaultIdx < 0 {
		return nil, false
	}
	return f.instances[f.defaultIdx], true
}

// Instances returns every instance in registration order.
func (f *PluginFamily) Instances() []Instance {
	return slices.Clone(f.instances)
}

// Len returns the number of instances.
func (f *PluginFamily) Len() int {
	return len(f.instances)
}
