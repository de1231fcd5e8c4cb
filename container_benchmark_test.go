package pluginmap_test

import (
	"testing"

	"github.com/centraunit/pluginmap"
	"github.com/centraunit/pluginmap/mock"
)

func benchRegistry() *pluginmap.Registry {
	r := mock.NewRegistry()
	r.For(mock.HandlerType).Add(mock.Handler1Type).Named("One")
	r.For(mock.HandlerType).Add(mock.Handler2Type).Named("Two")
	r.For(mock.HandlerType).Add(mock.Handler3Type).Named("Three")
	prefix := func(b *pluginmap.InstanceBuilder) {
		b.Ctor("prefix").Is("p")
	}
	handlers := []pluginmap.Element{
		pluginmap.TheInstanceNamed("Two"),
		pluginmap.TheInstanceNamed("One"),
		pluginmap.Inline(mock.PrefixHandlerType, prefix),
	}
	r.For(mock.ProcessorType).Use(mock.ProcessorType).
		Ctor("name").Is("bench").
		EnumerableOf(mock.HandlerType).Contains(handlers...)
	r.For(mock.ProcessorWithListType).Use(mock.ProcessorWithListType).Ctor("name").Is("all")
	return r
}

func BenchmarkBuild(b *testing.B) {
	r := benchRegistry()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = r.Build()
	}
}

func BenchmarkResolution(b *testing.B) {
	c, err := benchRegistry().Build()
	if err != nil {
		b.Fatal(err)
	}

	b.Run("Default", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = pluginmap.Get[mock.Handler](c)
		}
	})

	b.Run("ExplicitEnumerable", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = pluginmap.Get[*mock.Processor](c)
		}
	})

	b.Run("AllInstancesList", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = pluginmap.Get[*mock.ProcessorWithList](c)
		}
	})

	b.Run("Parallel", func(b *testing.B) {
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				_, _ = pluginmap.Get[*mock.Processor](c)
			}
		})
	})
}
