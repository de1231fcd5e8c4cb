package pluginmap

// Registry collects configuration. Registration is not safe for concurrent
// use; call Build once configuration is complete to obtain a Container.
// Builders only record what was asked for, nothing is validated until Build.
type Registry struct {
	opts      options
	catalog   map[Type][]Constructor
	ctorOrder []Type
	families  []*familyExpr
	byType    map[Type]*familyExpr
}

// NewRegistry returns an empty registry.
func NewRegistry(opts ...Option) *Registry {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Registry{
		opts:    o,
		catalog: make(map[Type][]Constructor),
		byType:  make(map[Type]*familyExpr),
	}
}

func (r *Registry) addConstructor(ctor Constructor) {
	if _, seen := r.catalog[ctor.concrete]; !seen {
		r.ctorOrder = append(r.ctorOrder, ctor.concrete)
	}
	r.catalog[ctor.concrete] = append(r.catalog[ctor.concrete], ctor)
}

// For starts or continues the registrations for requested.
func (r *Registry) For(requested Type) *FamilyBuilder {
	f, ok := r.byType[requested]
	if !ok {
		f = &familyExpr{requested: requested}
		r.byType[requested] = f
		r.families = append(r.families, f)
	}
	return &FamilyBuilder{family: f}
}

type familyExpr struct {
	requested Type
	entries   []*instanceExpr
}

type instanceKind int

const (
	constructedKind instanceKind = iota
	objectKind
)

type instanceExpr struct {
	kind      instanceKind
	concrete  Type
	value     any
	name      string
	asDefault bool
	args      []argExpr
}

// argExpr is one override on an instance, applied in call order.
type argExpr struct {
	param  string
	byType Type
	elem   *Element
	enum   *enumerableExpr
}

type enumerableExpr struct {
	elem     Type
	param    string
	elements []Element
}

// FamilyBuilder registers instances for one requested type.
type FamilyBuilder struct {
	family *familyExpr
}

func (b *FamilyBuilder) add(e *instanceExpr) *InstanceBuilder {
	b.family.entries = append(b.family.entries, e)
	return &InstanceBuilder{expr: e}
}

// Use registers concrete and makes it the family default.
func (b *FamilyBuilder) Use(concrete Type) *InstanceBuilder {
	return b.add(&instanceExpr{kind: constructedKind, concrete: concrete, asDefault: true})
}

// Add registers concrete as an additional instance. It becomes the default
// only if the family has none yet.
func (b *FamilyBuilder) Add(concrete Type) *InstanceBuilder {
	return b.add(&instanceExpr{kind: constructedKind, concrete: concrete})
}

// UseValue registers a pre-built value as the family default.
func (b *FamilyBuilder) UseValue(v any) *InstanceBuilder {
	return b.add(&instanceExpr{kind: objectKind, value: v, asDefault: true})
}

// AddValue registers a pre-built value as an additional instance.
func (b *FamilyBuilder) AddValue(v any) *InstanceBuilder {
	return b.add(&instanceExpr{kind: objectKind, value: v})
}

// InstanceBuilder configures one instance. Every method returns the builder
// so overrides can be chained in any order.
type InstanceBuilder struct {
	expr *instanceExpr
}

// Named gives the instance a name unique within its family.
func (b *InstanceBuilder) Named(name string) *InstanceBuilder {
	b.expr.name = name
	return b
}

// Ctor targets the constructor parameter called param.
func (b *InstanceBuilder) Ctor(param string) *ArgBuilder {
	return &ArgBuilder{host: b, param: param}
}

// CtorFor targets the only constructor parameter declared as t.
func (b *InstanceBuilder) CtorFor(t Type) *ArgBuilder {
	return &ArgBuilder{host: b, byType: t}
}

// EnumerableOf targets a sequence parameter with element type elem. The
// parameter is picked by name when one is given, otherwise by element type.
// Only sequence parameters are candidates, so a scalar parameter of type elem
// never makes an unnamed EnumerableOf ambiguous.
func (b *InstanceBuilder) EnumerableOf(elem Type, param ...string) *EnumerableBuilder {
	e := &enumerableExpr{elem: elem}
	if len(param) > 0 {
		e.param = param[0]
	}
	b.expr.args = append(b.expr.args, argExpr{enum: e})
	return &EnumerableBuilder{host: b, expr: e}
}

// ArgBuilder sets the source of one constructor parameter.
type ArgBuilder struct {
	host   *InstanceBuilder
	param  string
	byType Type
}

func (b *ArgBuilder) set(e Element) *InstanceBuilder {
	b.host.expr.args = append(b.host.expr.args, argExpr{param: b.param, byType: b.byType, elem: &e})
	return b.host
}

// Is supplies a literal value.
func (b *ArgBuilder) Is(v any) *InstanceBuilder {
	return b.set(Literal(v))
}

// IsNamedInstance supplies the instance called name of the parameter's
// declared type, looked up when the value is built.
func (b *ArgBuilder) IsNamedInstance(name string) *InstanceBuilder {
	return b.set(TheInstanceNamed(name))
}

// IsInstance supplies an inline instance of concrete.
func (b *ArgBuilder) IsInstance(concrete Type, configure ...func(*InstanceBuilder)) *InstanceBuilder {
	return b.set(Inline(concrete, configure...))
}

// EnumerableBuilder fills a sequence parameter.
type EnumerableBuilder struct {
	host *InstanceBuilder
	expr *enumerableExpr
}

// Contains appends elements in the given order and returns the host instance.
// Calling it again appends further elements.
func (b *EnumerableBuilder) Contains(elements ...Element) *InstanceBuilder {
	b.expr.elements = append(b.expr.elements, elements...)
	return b.host
}

type elementKind int

const (
	literalElement elementKind = iota
	inlineElement
	referenceElement
)

// Element is one entry handed to Contains, or the value of a Ctor override.
type Element struct {
	kind    elementKind
	value   any
	inline  *instanceExpr
	refType Type
	refName string
}

// Inline declares a fresh instance of concrete. Parameters without overrides
// are resolved automatically.
func Inline(concrete Type, configure ...func(*InstanceBuilder)) Element {
	e := &instanceExpr{kind: constructedKind, concrete: concrete}
	b := &InstanceBuilder{expr: e}
	for _, fn := range configure {
		fn(b)
	}
	return Element{kind: inlineElement, inline: e}
}

// TheInstanceNamed refers to the instance called name in the element type's
// family. The lookup happens when the value is built.
func TheInstanceNamed(name string) Element {
	return Element{kind: referenceElement, refName: name}
}

// InstanceOf refers to the instance called name in the family of t.
func InstanceOf(t Type, name string) Element {
	return Element{kind: referenceElement, refType: t, refName: name}
}

// Literal supplies a pre-built value.
func Literal(v any) Element {
	return Element{kind: literalElement, value: v}
}
