package pluginmap_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/centraunit/pluginmap"
	"github.com/centraunit/pluginmap/mock"
	"github.com/stretchr/testify/suite"
)

type ErrorTestSuite struct {
	suite.Suite
}

func (s *ErrorTestSuite) TestConfigurationErrors() {
	s.Run("UnknownParameter", func() {
		r := mock.NewRegistry()
		r.For(mock.HandlerType).Use(mock.PrefixHandlerType).Ctor("suffix").Is("x")
		_, err := r.Build()
		var unknown *pluginmap.UnknownParameterError
		s.Require().True(errors.As(err, &unknown), "got %v", err)
		s.Equal("suffix", unknown.Param)
		s.Equal(pluginmap.KindUnknownParameter, pluginmap.Kind(err))
	})

	s.Run("UnknownSequenceByElementType", func() {
		r := mock.NewRegistry()
		r.For(mock.PipelineType).Use(mock.PipelineType).
			EnumerableOf(mock.HandlerType).Contains(pluginmap.Inline(mock.Handler1Type))
		_, err := r.Build()
		var unknown *pluginmap.UnknownParameterError
		s.Require().True(errors.As(err, &unknown), "got %v", err)
		s.Equal("[]mock.Handler", unknown.Param)
	})

	s.Run("InvalidLiteral", func() {
		r := mock.NewRegistry()
		r.For(mock.HandlerType).Use(mock.PrefixHandlerType).Ctor("prefix").Is(12)
		_, err := r.Build()
		var invalid *pluginmap.InvalidArgumentError
		s.Require().True(errors.As(err, &invalid), "got %v", err)
		s.Equal("string", invalid.Expected)
		s.Equal("int", invalid.Got)
	})

	s.Run("InvalidElementLiteral", func() {
		r := mock.NewRegistry()
		r.For(mock.ProcessorType).Use(mock.ProcessorType).
			Ctor("name").Is("p").
			EnumerableOf(mock.HandlerType).Contains(pluginmap.Literal("not a handler"))
		_, err := r.Build()
		var invalid *pluginmap.InvalidArgumentError
		s.Require().True(errors.As(err, &invalid), "got %v", err)
		s.Equal("mock.Handler", invalid.Expected)
	})

	s.Run("NoConstructor", func() {
		r := pluginmap.NewRegistry()
		r.For(mock.HandlerType).Use(mock.Handler1Type)
		_, err := r.Build()
		var noCtor *pluginmap.NoConstructorError
		s.Require().True(errors.As(err, &noCtor), "got %v", err)
		s.Equal("*mock.Handler1", noCtor.Type)
	})

	s.Run("NotAssignable", func() {
		r := mock.NewRegistry()
		r.For(mock.HandlerType).Use(mock.GadgetType)
		r.For(mock.HandlerType).AddValue("text")
		_, err := r.Build()
		var notAssignable *pluginmap.NotAssignableError
		s.Require().True(errors.As(err, &notAssignable), "got %v", err)
		s.Equal(pluginmap.KindNotAssignable, pluginmap.Kind(err))
	})

	s.Run("OverrideOnValue", func() {
		r := mock.NewRegistry()
		r.For(mock.HandlerType).UseValue(&mock.Handler1{}).Ctor("prefix").Is("x")
		_, err := r.Build()
		var unknown *pluginmap.UnknownParameterError
		s.True(errors.As(err, &unknown), "got %v", err)
	})

	s.Run("AllErrorsReported", func() {
		r := mock.NewRegistry()
		r.For(mock.HandlerType).Use(mock.PrefixHandlerType).Ctor("suffix").Is("x")
		r.For(mock.HandlerType).Add(mock.GadgetType)
		r.For(mock.PipelineType).Use(mock.PipelineType).Ctor("handler").Is(3)
		_, err := r.Build()
		s.Require().Error(err)
		s.True(errors.Is(err, pluginmap.ErrConfiguration))
		s.False(errors.Is(err, pluginmap.ErrResolution))

		joined, ok := err.(interface{ Unwrap() []error })
		s.Require().True(ok)
		s.Len(joined.Unwrap(), 3)
	})
}

func (s *ErrorTestSuite) TestDuplicatePolicies() {
	s.Run("ReplaceKeepsPositionAndDefault", func() {
		r := mock.NewRegistry()
		r.For(mock.HandlerType).Use(mock.Handler1Type).Named("A")
		r.For(mock.HandlerType).Add(mock.Handler2Type).Named("B")
		r.For(mock.HandlerType).Add(mock.Handler3Type).Named("A")
		c, err := r.Build()
		s.Require().NoError(err)

		all, err := pluginmap.GetAll[mock.Handler](c)
		s.Require().NoError(err)
		s.Equal([]string{"handler3", "handler2"}, mock.Kinds(all))

		h, err := pluginmap.Get[mock.Handler](c)
		s.Require().NoError(err)
		s.IsType(&mock.Handler3{}, h)
	})

	s.Run("ReplaceWithUseMovesDefault", func() {
		r := mock.NewRegistry()
		r.For(mock.HandlerType).Add(mock.Handler1Type).Named("A")
		r.For(mock.HandlerType).Add(mock.Handler2Type).Named("B")
		r.For(mock.HandlerType).Use(mock.Handler3Type).Named("B")
		c, err := r.Build()
		s.Require().NoError(err)

		h, err := pluginmap.Get[mock.Handler](c)
		s.Require().NoError(err)
		s.IsType(&mock.Handler3{}, h)
	})

	s.Run("Reject", func() {
		r := mock.NewRegistry(pluginmap.WithDuplicatePolicy(pluginmap.RejectDuplicates))
		r.For(mock.HandlerType).Add(mock.Handler1Type).Named("A")
		r.For(mock.HandlerType).Add(mock.Handler2Type).Named("A")
		_, err := r.Build()
		var dup *pluginmap.DuplicateInstanceError
		s.Require().True(errors.As(err, &dup), "got %v", err)
		s.Equal("A", dup.Name)
		s.Equal("mock.Handler", dup.Type)
	})

	s.Run("UnnamedNeverCollide", func() {
		r := mock.NewRegistry(pluginmap.WithDuplicatePolicy(pluginmap.RejectDuplicates))
		r.For(mock.HandlerType).Add(mock.Handler1Type)
		r.For(mock.HandlerType).Add(mock.Handler1Type)
		c, err := r.Build()
		s.Require().NoError(err)
		f, ok := c.Family(mock.HandlerType)
		s.Require().True(ok)
		s.Equal(2, f.Len())
	})
}

func (s *ErrorTestSuite) TestCircularDependency() {
	c, err := mock.NewRegistry().Build()
	s.Require().NoError(err)

	_, err = pluginmap.Get[*mock.CircularA](c)
	var circular *pluginmap.CircularDependencyError
	s.Require().True(errors.As(err, &circular), "got %v", err)
	s.Equal(pluginmap.KindCircularDependency, pluginmap.Kind(err))

	s.Require().Len(circular.Path, 3)
	s.Equal(mock.CircularAType, circular.Path[0].Requested)
	s.Equal(mock.CircularBType, circular.Path[1].Requested)
	s.Equal(mock.CircularAType, circular.Path[2].Requested)
	s.Contains(err.Error(), "*mock.CircularA")
	s.Contains(err.Error(), " -> ")

	// The failed query leaves no state behind.
	_, err = pluginmap.Get[*mock.CircularB](c)
	s.Require().True(errors.As(err, &circular))
	s.Equal(mock.CircularBType, circular.Path[0].Requested)
}

func (s *ErrorTestSuite) TestRepeatedTypeIsNotACycle() {
	r := mock.NewRegistry()
	r.For(mock.HandlerType).Add(mock.Handler1Type).Named("One")
	handlers := []pluginmap.Element{
		pluginmap.TheInstanceNamed("One"),
		pluginmap.TheInstanceNamed("One"),
		pluginmap.Inline(mock.Handler1Type),
	}
	r.For(mock.ProcessorType).Use(mock.ProcessorType).
		Ctor("name").Is("repeat").
		EnumerableOf(mock.HandlerType).Contains(handlers...)
	c, err := r.Build()
	s.Require().NoError(err)

	p, err := pluginmap.Get[*mock.Processor](c)
	s.Require().NoError(err)
	s.Equal([]string{"handler1", "handler1", "handler1"}, mock.Kinds(p.Handlers))
}

func (s *ErrorTestSuite) TestBuildErrorWrapsCause() {
	r := pluginmap.NewRegistry()
	pluginmap.Define(r, func(pluginmap.Args) (*mock.Handler2, error) {
		return nil, fmt.Errorf("dial backend: %w", mock.ErrBroken)
	})
	pluginmap.Define(r, func(a pluginmap.Args) (*mock.Pipeline, error) {
		return &mock.Pipeline{Handler: pluginmap.Arg[mock.Handler](a, "handler")}, nil
	}, pluginmap.Param[mock.Handler]("handler"))
	r.For(mock.HandlerType).Use(mock.Handler2Type)
	c, err := r.Build()
	s.Require().NoError(err)

	_, err = pluginmap.Get[*mock.Pipeline](c)
	s.ErrorIs(err, mock.ErrBroken)
	s.ErrorIs(err, pluginmap.ErrResolution)
	s.Contains(err.Error(), "dial backend")

	var buildErr *pluginmap.BuildError
	s.Require().True(errors.As(err, &buildErr))
	s.Equal("*mock.Handler2", buildErr.Type)
	s.Len(buildErr.Path, 2)
}

func (s *ErrorTestSuite) TestKind() {
	s.Equal("", pluginmap.Kind(nil))
	s.Equal(pluginmap.KindUnknown, pluginmap.Kind(errors.New("foreign")))
	s.Equal(pluginmap.KindNoInstanceFound, pluginmap.Kind(fmt.Errorf("wrapped: %w", &pluginmap.NoInstanceFoundError{Type: "x"})))
	s.Equal(pluginmap.KindTypeMismatch, pluginmap.Kind(&pluginmap.TypeMismatchError{}))
}

func TestErrorSuite(t *testing.T) {
	suite.Run(t, new(ErrorTestSuite))
}
