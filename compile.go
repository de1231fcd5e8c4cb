package pluginmap

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// Build compiles the registered configuration into an immutable Container.
// Every configuration problem found is reported, joined with errors.Join;
// each matches ErrConfiguration. Build may be called again after further
// registrations; containers built earlier are not affected.
func (r *Registry) Build() (*Container, error) {
	c := &Container{
		families: make(map[Type]*PluginFamily, len(r.families)),
		catalog:  make(map[Type][]Constructor, len(r.catalog)),
		log:      r.opts.log,
		observer: r.opts.observer,
	}
	for t, ctors := range r.catalog {
		sorted := slices.Clone(ctors)
		slices.SortStableFunc(sorted, func(a, b Constructor) int {
			return cmp.Compare(len(b.params), len(a.params))
		})
		c.catalog[t] = sorted
	}

	cp := &compiler{catalog: c.catalog}
	for _, fe := range r.families {
		family := newPluginFamily(fe.requested, r.opts.policy)
		for _, ie := range fe.entries {
			inst := cp.instance(fe.requested, ie)
			if inst == nil {
				continue
			}
			if err := family.add(inst, ie.asDefault); err != nil {
				cp.fail(err)
			}
		}
		c.families[fe.requested] = family
	}

	if r.opts.autoConcrete {
		for _, t := range r.ctorOrder {
			if _, ok := c.families[t]; ok {
				continue
			}
			family := newPluginFamily(t, r.opts.policy)
			_ = family.add(&ConstructedInstance{
				name:     uuid.NewString(),
				concrete: t,
				ctors:    c.catalog[t],
				args:     map[string]Source{},
			}, true)
			c.families[t] = family
		}
	}

	if err := errors.Join(cp.errs...); err != nil {
		r.opts.log.V(1).Info("configuration rejected", "errors", len(cp.errs))
		return nil, err
	}
	r.opts.log.V(1).Info("container compiled",
		"families", len(c.families),
		"constructors", len(c.catalog),
		"duplicatePolicy", r.opts.policy.String())
	return c, nil
}

type compiler struct {
	catalog map[Type][]Constructor
	errs    []error
}

func (cp *compiler) fail(err error) {
	cp.errs = append(cp.errs, err)
}

// instance compiles one registration. requested may be zero for inline
// instances whose target type is not known up front. It returns nil when the
// registration is invalid; the reason has been recorded.
func (cp *compiler) instance(requested Type, ie *instanceExpr) Instance {
	name := ie.name
	if name == "" {
		name = uuid.NewString()
	}

	if ie.kind == objectKind {
		plugged := typeOfValue(ie.value)
		ok := true
		if !requested.IsZero() && ie.value != nil && !plugged.AssignableTo(requested) {
			cp.fail(&NotAssignableError{Requested: requested.String(), Concrete: plugged.String()})
			ok = false
		}
		for _, a := range ie.args {
			cp.fail(&UnknownParameterError{Concrete: plugged.String(), Param: describeArg(a)})
			ok = false
		}
		if !ok {
			return nil
		}
		return &ObjectInstance{name: name, value: ie.value, plugged: plugged}
	}

	if !requested.IsZero() && !ie.concrete.AssignableTo(requested) {
		cp.fail(&NotAssignableError{Requested: requested.String(), Concrete: ie.concrete.String()})
		return nil
	}
	ctors := cp.catalog[ie.concrete]
	if len(ctors) == 0 {
		cp.fail(&NoConstructorError{Type: ie.concrete.String()})
		return nil
	}

	inst := &ConstructedInstance{
		name:     name,
		concrete: ie.concrete,
		ctors:    ctors,
		args:     make(map[string]Source, len(ie.args)),
	}
	ok := true
	for _, a := range ie.args {
		params, found := cp.target(ie.concrete, ctors, a)
		if !found {
			ok = false
			continue
		}
		var src Source
		if a.enum != nil {
			src = cp.enumerable(ie.concrete, params, a.enum)
		} else {
			src = cp.element(ie.concrete, params, *a.elem, false)
		}
		if src == nil {
			ok = false
			continue
		}
		// Later overrides of the same parameter win.
		inst.args[params[0].Name] = src
	}
	if !ok {
		return nil
	}
	return inst
}

// target finds the parameters an override applies to. All returned
// parameters share one name; they come from different constructors.
func (cp *compiler) target(concrete Type, ctors []Constructor, a argExpr) ([]Parameter, bool) {
	var match func(Parameter) bool
	var wanted Type
	switch {
	case a.enum != nil && a.enum.param != "":
		name, elem := a.enum.param, a.enum.elem
		match = func(p Parameter) bool { return p.Name == name && p.sequence && p.Elem == elem }
	case a.enum != nil:
		wanted = a.enum.elem
		match = func(p Parameter) bool { return p.sequence && p.Elem == wanted }
	case !a.byType.IsZero():
		wanted = a.byType
		match = func(p Parameter) bool { return p.Type == wanted }
	default:
		name := a.param
		match = func(p Parameter) bool { return p.Name == name }
	}

	var names []string
	byName := make(map[string][]Parameter)
	for _, ctor := range ctors {
		for _, p := range ctor.params {
			if !match(p) {
				continue
			}
			if _, seen := byName[p.Name]; !seen {
				names = append(names, p.Name)
			}
			byName[p.Name] = append(byName[p.Name], p)
		}
	}

	switch len(names) {
	case 0:
		cp.fail(&UnknownParameterError{Concrete: concrete.String(), Param: describeArg(a)})
		return nil, false
	case 1:
		return byName[names[0]], true
	}
	cp.fail(&AmbiguousParameterError{Concrete: concrete.String(), Type: wanted.String(), Candidates: names})
	return nil, false
}

func (cp *compiler) enumerable(concrete Type, params []Parameter, ee *enumerableExpr) Source {
	enum := NewEnumerableInstance(ee.elem, params[0].Name)
	ok := true
	for _, el := range ee.elements {
		if el.kind == referenceElement && el.refType.IsZero() {
			el.refType = ee.elem
		}
		src := cp.element(concrete, params, el, true)
		if src == nil {
			ok = false
			continue
		}
		enum.AddElement(src)
	}
	if !ok {
		return nil
	}
	return Nested{Instance: enum}
}

// element turns a DSL element into a source for params, or for one element of
// them when asElement is set.
func (cp *compiler) element(concrete Type, params []Parameter, el Element, asElement bool) Source {
	switch el.kind {
	case literalElement:
		for _, p := range params {
			accepts := p.accepts
			if asElement {
				accepts = p.acceptsElem
			}
			if accepts == nil || accepts(el.value) {
				return Explicit{Value: el.value}
			}
		}
		expected := params[0].Type
		if asElement {
			expected = params[0].Elem
		}
		cp.fail(&InvalidArgumentError{
			Concrete: concrete.String(),
			Param:    params[0].Name,
			Expected: expected.String(),
			Got:      fmt.Sprintf("%T", el.value),
		})
		return nil
	case inlineElement:
		requested := params[0].Type
		if asElement {
			requested = params[0].Elem
		}
		inst := cp.instance(requested, el.inline)
		if inst == nil {
			return nil
		}
		return Nested{Instance: inst}
	}
	return Reference{Type: el.refType, Name: el.refName}
}

func describeArg(a argExpr) string {
	switch {
	case a.enum != nil && a.enum.param != "":
		return a.enum.param
	case a.enum != nil:
		return "[]" + a.enum.elem.String()
	case !a.byType.IsZero():
		return a.byType.String()
	}
	return a.param
}
