package mock

import (
	"errors"
	"iter"
	"strings"

	"github.com/centraunit/pluginmap"
)

// Handler is the polymorphic contract most tests resolve sequences of.
type Handler interface {
	Handle() string
}

type Handler1 struct{}

func (h *Handler1) Handle() string { return "handler1" }

type Handler2 struct{}

func (h *Handler2) Handle() string { return "handler2" }

type Handler3 struct{}

func (h *Handler3) Handle() string { return "handler3" }

// PrefixHandler has a scalar dependency of its own.
type PrefixHandler struct {
	Prefix string
}

func (h *PrefixHandler) Handle() string { return h.Prefix }

// CompositeHandler is a Handler that delegates to other handlers.
type CompositeHandler struct {
	Handlers []Handler
}

func (h *CompositeHandler) Handle() string {
	return strings.Join(Kinds(h.Handlers), ",")
}

// Processor takes its handlers as a slice.
type Processor struct {
	Handlers []Handler
	Name     string
}

// ProcessorWithList takes its handlers as a mutable list.
type ProcessorWithList struct {
	Handlers *pluginmap.List[Handler]
	Name     string
}

// ProcessorWithSeq takes its handlers as an iterator and collects them.
type ProcessorWithSeq struct {
	Handlers []Handler
	Name     string
}

// Processor2 has two sequence parameters of the same element type.
type Processor2 struct {
	First  []Handler
	Second []Handler
}

// Gadget has constructors of different arities.
type Gadget struct {
	Handler Handler
	Label   string
	Ctor    string
}

// Twin has two single-parameter constructors.
type Twin struct {
	Text   string
	Number int
}

// Pipeline depends on a single Handler, resolved automatically.
type Pipeline struct {
	Handler Handler
}

// CircularA and CircularB depend on each other.
type CircularA struct {
	B *CircularB
}

type CircularB struct {
	A *CircularA
}

// Broken always fails to build.
type Broken struct{}

// ErrBroken is returned by the Broken constructor.
var ErrBroken = errors.New("simulated constructor failure")

// RequestIDKey is the context key read by RequestAware.
type RequestIDKey struct{}

// RequestAware captures the request id from the resolution context.
type RequestAware struct {
	RequestID string
}

// Types used throughout the tests.
var (
	HandlerType           = pluginmap.TypeOf[Handler]()
	Handler1Type          = pluginmap.TypeOf[*Handler1]()
	Handler2Type          = pluginmap.TypeOf[*Handler2]()
	Handler3Type          = pluginmap.TypeOf[*Handler3]()
	PrefixHandlerType     = pluginmap.TypeOf[*PrefixHandler]()
	CompositeHandlerType  = pluginmap.TypeOf[*CompositeHandler]()
	ProcessorType         = pluginmap.TypeOf[*Processor]()
	ProcessorWithListType = pluginmap.TypeOf[*ProcessorWithList]()
	ProcessorWithSeqType  = pluginmap.TypeOf[*ProcessorWithSeq]()
	Processor2Type        = pluginmap.TypeOf[*Processor2]()
	GadgetType            = pluginmap.TypeOf[*Gadget]()
	TwinType              = pluginmap.TypeOf[*Twin]()
	PipelineType          = pluginmap.TypeOf[*Pipeline]()
	CircularAType         = pluginmap.TypeOf[*CircularA]()
	CircularBType         = pluginmap.TypeOf[*CircularB]()
	BrokenType            = pluginmap.TypeOf[*Broken]()
	RequestAwareType      = pluginmap.TypeOf[*RequestAware]()
)

// Define declares constructors for every fixture type on r.
func Define(r *pluginmap.Registry) {
	pluginmap.Define(r, func(pluginmap.Args) (*Handler1, error) { return &Handler1{}, nil })
	pluginmap.Define(r, func(pluginmap.Args) (*Handler2, error) { return &Handler2{}, nil })
	pluginmap.Define(r, func(pluginmap.Args) (*Handler3, error) { return &Handler3{}, nil })
	pluginmap.Define(r, func(a pluginmap.Args) (*PrefixHandler, error) {
		return &PrefixHandler{Prefix: pluginmap.Arg[string](a, "prefix")}, nil
	}, pluginmap.Param[string]("prefix"))

	pluginmap.Define(r, func(a pluginmap.Args) (*CompositeHandler, error) {
		return &CompositeHandler{Handlers: pluginmap.Arg[[]Handler](a, "handlers")}, nil
	}, pluginmap.ArrayOf[Handler]("handlers"))

	pluginmap.Define(r, func(a pluginmap.Args) (*Processor, error) {
		return &Processor{
			Handlers: pluginmap.Arg[[]Handler](a, "handlers"),
			Name:     pluginmap.Arg[string](a, "name"),
		}, nil
	}, pluginmap.ArrayOf[Handler]("handlers"), pluginmap.Param[string]("name"))

	pluginmap.Define(r, func(a pluginmap.Args) (*ProcessorWithList, error) {
		return &ProcessorWithList{
			Handlers: pluginmap.Arg[*pluginmap.List[Handler]](a, "handlers"),
			Name:     pluginmap.Arg[string](a, "name"),
		}, nil
	}, pluginmap.ListOf[Handler]("handlers"), pluginmap.Param[string]("name"))

	pluginmap.Define(r, func(a pluginmap.Args) (*ProcessorWithSeq, error) {
		p := &ProcessorWithSeq{Name: pluginmap.Arg[string](a, "name")}
		for h := range pluginmap.Arg[iter.Seq[Handler]](a, "handlers") {
			p.Handlers = append(p.Handlers, h)
		}
		return p, nil
	}, pluginmap.SeqOf[Handler]("handlers"), pluginmap.Param[string]("name"))

	pluginmap.Define(r, func(a pluginmap.Args) (*Processor2, error) {
		return &Processor2{
			First:  pluginmap.Arg[[]Handler](a, "first"),
			Second: pluginmap.Arg[[]Handler](a, "second"),
		}, nil
	}, pluginmap.ArrayOf[Handler]("first"), pluginmap.ArrayOf[Handler]("second"))

	pluginmap.Define(r, func(a pluginmap.Args) (*Gadget, error) {
		return &Gadget{
			Handler: pluginmap.Arg[Handler](a, "handler"),
			Label:   pluginmap.Arg[string](a, "label"),
			Ctor:    "handler+label",
		}, nil
	}, pluginmap.Param[Handler]("handler"), pluginmap.Param[string]("label"))
	pluginmap.Define(r, func(a pluginmap.Args) (*Gadget, error) {
		return &Gadget{Handler: pluginmap.Arg[Handler](a, "handler"), Ctor: "handler"}, nil
	}, pluginmap.Param[Handler]("handler"))
	pluginmap.Define(r, func(pluginmap.Args) (*Gadget, error) {
		return &Gadget{Ctor: "empty"}, nil
	})

	pluginmap.Define(r, func(a pluginmap.Args) (*Twin, error) {
		return &Twin{Text: pluginmap.Arg[string](a, "text")}, nil
	}, pluginmap.Param[string]("text"))
	pluginmap.Define(r, func(a pluginmap.Args) (*Twin, error) {
		return &Twin{Number: pluginmap.Arg[int](a, "number")}, nil
	}, pluginmap.Param[int]("number"))

	pluginmap.Define(r, func(a pluginmap.Args) (*Pipeline, error) {
		return &Pipeline{Handler: pluginmap.Arg[Handler](a, "handler")}, nil
	}, pluginmap.Param[Handler]("handler"))

	pluginmap.Define(r, func(a pluginmap.Args) (*CircularA, error) {
		return &CircularA{B: pluginmap.Arg[*CircularB](a, "b")}, nil
	}, pluginmap.Param[*CircularB]("b"))
	pluginmap.Define(r, func(a pluginmap.Args) (*CircularB, error) {
		return &CircularB{A: pluginmap.Arg[*CircularA](a, "a")}, nil
	}, pluginmap.Param[*CircularA]("a"))

	pluginmap.Define(r, func(pluginmap.Args) (*Broken, error) { return nil, ErrBroken })

	pluginmap.Define(r, func(a pluginmap.Args) (*RequestAware, error) {
		id, _ := a.Context().Value(RequestIDKey{}).(string)
		return &RequestAware{RequestID: id}, nil
	})
}

// NewRegistry returns a registry with every fixture constructor defined.
func NewRegistry(opts ...pluginmap.Option) *pluginmap.Registry {
	r := pluginmap.NewRegistry(opts...)
	Define(r)
	return r
}

// Kinds maps handlers to their Handle labels, keeping order.
func Kinds(handlers []Handler) []string {
	out := make([]string, len(handlers))
	for i, h := range handlers {
		out[i] = h.Handle()
	}
	return out
}
