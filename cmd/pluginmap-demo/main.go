// Command pluginmap-demo wires a small handler pipeline and prints what the
// container builds for it.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/centraunit/pluginmap"
	"github.com/centraunit/pluginmap/internal/config"
	"github.com/centraunit/pluginmap/metrics"
	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Handler interface {
	Handle(msg string) string
}

type Upper struct{}

func (Upper) Handle(msg string) string { return strings.ToUpper(msg) }

type Reverse struct{}

func (Reverse) Handle(msg string) string {
	r := []rune(msg)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}

type Prefix struct {
	Prefix string
}

func (p Prefix) Handle(msg string) string { return p.Prefix + msg }

type Processor struct {
	Name     string
	Handlers []Handler
}

func (p *Processor) Run(msg string) string {
	for _, h := range p.Handlers {
		msg = h.Handle(msg)
	}
	return msg
}

var (
	handlerType   = pluginmap.TypeOf[Handler]()
	upperType     = pluginmap.TypeOf[Upper]()
	reverseType   = pluginmap.TypeOf[Reverse]()
	prefixType    = pluginmap.TypeOf[Prefix]()
	processorType = pluginmap.TypeOf[*Processor]()
)

func configure(r *pluginmap.Registry) {
	pluginmap.Define(r, func(pluginmap.Args) (Upper, error) { return Upper{}, nil })
	pluginmap.Define(r, func(pluginmap.Args) (Reverse, error) { return Reverse{}, nil })
	pluginmap.Define(r, func(a pluginmap.Args) (Prefix, error) {
		return Prefix{Prefix: pluginmap.Arg[string](a, "prefix")}, nil
	}, pluginmap.Param[string]("prefix").WithDefault("> "))
	pluginmap.Define(r, func(a pluginmap.Args) (*Processor, error) {
		return &Processor{
			Name:     pluginmap.Arg[string](a, "name"),
			Handlers: pluginmap.Arg[[]Handler](a, "handlers"),
		}, nil
	}, pluginmap.Param[string]("name"), pluginmap.ArrayOf[Handler]("handlers"))

	r.For(handlerType).Add(upperType).Named("upper")
	r.For(handlerType).Add(reverseType).Named("reverse")
	r.For(handlerType).Add(prefixType).Named("prefix")

	r.For(processorType).Use(processorType).Named("everything").
		Ctor("name").Is("everything")
	arrows := func(b *pluginmap.InstanceBuilder) {
		b.Ctor("prefix").Is("<< ")
	}
	ordered := []pluginmap.Element{
		pluginmap.TheInstanceNamed("reverse"),
		pluginmap.Inline(prefixType, arrows),
		pluginmap.TheInstanceNamed("upper"),
	}
	r.For(processorType).Add(processorType).Named("ordered").
		Ctor("name").Is("ordered").
		EnumerableOf(handlerType).Contains(ordered...)
}

func newLogger(cfg config.LogConfig) (logr.Logger, func(), error) {
	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(zapcore.Level(-cfg.Level))
	zl, err := zc.Build()
	if err != nil {
		return logr.Discard(), func() {}, fmt.Errorf("failed to create logger: %w", err)
	}
	return zapr.NewLogger(zl), func() { _ = zl.Sync() }, nil
}

func run(ctx context.Context, msg string, envFiles []string) error {
	cfg, err := config.Load(envFiles...)
	if err != nil {
		return err
	}
	log, flush, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer flush()

	collector := metrics.NewCollector()
	reg := prometheus.NewRegistry()
	if err := reg.Register(collector); err != nil {
		return err
	}

	c, err := pluginmap.NewContainer(configure, append(cfg.Options(log), pluginmap.WithObserver(collector))...)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	for _, name := range []string{"everything", "ordered"} {
		v, err := c.GetNamedInstanceContext(ctx, processorType, name)
		if err != nil {
			return err
		}
		p := v.(*Processor)
		fmt.Printf("%-10s %q\n", p.Name, p.Run(msg))
	}

	if _, err := c.GetNamedInstance(processorType, "missing"); err != nil {
		log.Info("expected failure", "kind", pluginmap.Kind(err))
	}

	families, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			if cnt := m.GetCounter(); cnt != nil {
				labels := make([]string, 0, len(m.GetLabel()))
				for _, l := range m.GetLabel() {
					labels = append(labels, l.GetName()+"="+l.GetValue())
				}
				fmt.Printf("%s{%s} %v\n", mf.GetName(), strings.Join(labels, ","), cnt.GetValue())
			}
		}
	}
	return nil
}

func main() {
	msg := flag.String("msg", "hello world", "message to run through the processors")
	envFile := flag.String("env", "", "optional .env file")
	flag.Parse()

	var files []string
	if *envFile != "" {
		files = append(files, *envFile)
	}
	if err := run(context.Background(), *msg, files); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
