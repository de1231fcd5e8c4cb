package pluginmap

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfiguration matches every error reported by Registry.Build.
	ErrConfiguration = errors.New("pluginmap: configuration error")

	// ErrResolution matches every error reported while building a value.
	ErrResolution = errors.New("pluginmap: resolution error")
)

func withPath(msg string, path Path) string {
	if len(path) == 0 {
		return msg
	}
	return msg + " (path: " + path.String() + ")"
}

// DuplicateInstanceError is reported when a name is registered twice in one
// family and the registry rejects duplicates.
type DuplicateInstanceError struct {
	Type string
	Name string
}

func (e *DuplicateInstanceError) Error() string {
	return fmt.Sprintf("duplicate instance %q for type: %s", e.Name, e.Type)
}

func (e *DuplicateInstanceError) Is(target error) bool { return target == ErrConfiguration }

// AmbiguousParameterError is reported when a parameter is targeted by type and
// more than one parameter of the concrete type matches.
type AmbiguousParameterError struct {
	Concrete   string
	Type       string
	Candidates []string
}

func (e *AmbiguousParameterError) Error() string {
	return fmt.Sprintf("ambiguous parameter of type %s on %s: candidates %s",
		e.Type, e.Concrete, strings.Join(e.Candidates, ", "))
}

func (e *AmbiguousParameterError) Is(target error) bool { return target == ErrConfiguration }

// UnknownParameterError is reported when an override names a parameter that no
// constructor of the concrete type declares.
type UnknownParameterError struct {
	Concrete string
	Param    string
}

func (e *UnknownParameterError) Error() string {
	return fmt.Sprintf("no constructor of %s declares parameter %s", e.Concrete, e.Param)
}

func (e *UnknownParameterError) Is(target error) bool { return target == ErrConfiguration }

// InvalidArgumentError is reported when a literal cannot be used for the
// parameter it was given to.
type InvalidArgumentError struct {
	Concrete string
	Param    string
	Expected string
	Got      string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument for %s.%s: expected %s, got %s", e.Concrete, e.Param, e.Expected, e.Got)
}

func (e *InvalidArgumentError) Is(target error) bool { return target == ErrConfiguration }

// NoConstructorError is reported when a concrete type is registered without any
// constructor defined for it.
type NoConstructorError struct {
	Type string
}

func (e *NoConstructorError) Error() string {
	return fmt.Sprintf("no constructor defined for type: %s", e.Type)
}

func (e *NoConstructorError) Is(target error) bool { return target == ErrConfiguration }

// NotAssignableError is reported when a registered implementation cannot
// satisfy the contract it was registered for.
type NotAssignableError struct {
	Requested string
	Concrete  string
}

func (e *NotAssignableError) Error() string {
	return fmt.Sprintf("%s is not assignable to %s", e.Concrete, e.Requested)
}

func (e *NotAssignableError) Is(target error) bool { return target == ErrConfiguration }

// NoInstanceFoundError represents a query for an unregistered type or name.
type NoInstanceFoundError struct {
	Type string
	Name string
	Path Path
}

func (e *NoInstanceFoundError) Error() string {
	if e.Name == "" {
		return withPath(fmt.Sprintf("no default instance found for type: %s", e.Type), e.Path)
	}
	return withPath(fmt.Sprintf("no instance %q found for type: %s", e.Name, e.Type), e.Path)
}

func (e *NoInstanceFoundError) Is(target error) bool { return target == ErrResolution }

// MissingConstructorArgumentError represents a constructor parameter nothing
// can supply.
type MissingConstructorArgumentError struct {
	Concrete string
	Param    string
	Type     string
	Path     Path
}

func (e *MissingConstructorArgumentError) Error() string {
	return withPath(fmt.Sprintf("missing constructor argument %s (%s) for type: %s", e.Param, e.Type, e.Concrete), e.Path)
}

func (e *MissingConstructorArgumentError) Is(target error) bool { return target == ErrResolution }

// AmbiguousConstructorError represents two satisfiable constructors of equal arity.
type AmbiguousConstructorError struct {
	Concrete string
	Arity    int
	Path     Path
}

func (e *AmbiguousConstructorError) Error() string {
	return withPath(fmt.Sprintf("ambiguous constructors with %d parameters for type: %s", e.Arity, e.Concrete), e.Path)
}

func (e *AmbiguousConstructorError) Is(target error) bool { return target == ErrResolution }

// CircularDependencyError represents a circular dependency detection error.
// Path ends with the frame that closed the cycle.
type CircularDependencyError struct {
	Type string
	Path Path
}

func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("circular dependency detected for type: %s (path: %s)", e.Type, e.Path)
}

func (e *CircularDependencyError) Is(target error) bool { return target == ErrResolution }

// TypeMismatchError represents a type assertion failure.
type TypeMismatchError struct {
	Expected string
	Got      string
	Path     Path
}

func (e *TypeMismatchError) Error() string {
	return withPath(fmt.Sprintf("type mismatch: expected %s, got %s", e.Expected, e.Got), e.Path)
}

func (e *TypeMismatchError) Is(target error) bool { return target == ErrResolution }

// BuildError represents a constructor that returned an error.
type BuildError struct {
	Type string
	Err  error
	Path Path
}

func (e *BuildError) Error() string {
	return withPath(fmt.Sprintf("build failed for type %s: %v", e.Type, e.Err), e.Path)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

func (e *BuildError) Is(target error) bool { return target == ErrResolution }

// Error kinds returned by Kind.
const (
	KindCircularDependency         = "circular_dependency"
	KindNoInstanceFound            = "no_instance_found"
	KindMissingConstructorArgument = "missing_constructor_argument"
	KindAmbiguousConstructor       = "ambiguous_constructor"
	KindTypeMismatch               = "type_mismatch"
	KindBuildFailed                = "build_failed"
	KindDuplicateInstance          = "duplicate_instance"
	KindAmbiguousParameter         = "ambiguous_parameter"
	KindUnknownParameter           = "unknown_parameter"
	KindInvalidArgument            = "invalid_argument"
	KindNoConstructor              = "no_constructor"
	KindNotAssignable              = "not_assignable"
	KindUnknown                    = "unknown"
)

// Kind returns a short label for err, suitable for metric labels.
// It returns "" for a nil error and "unknown" for foreign errors.
func Kind(err error) string {
	if err == nil {
		return ""
	}
	var (
		dup       *DuplicateInstanceError
		ambParam  *AmbiguousParameterError
		unknown   *UnknownParameterError
		invalid   *InvalidArgumentError
		noCtor    *NoConstructorError
		notAssign *NotAssignableError
		notFound  *NoInstanceFoundError
		missing   *MissingConstructorArgumentError
		ambCtor   *AmbiguousConstructorError
		circular  *CircularDependencyError
		mismatch  *TypeMismatchError
		build     *BuildError
	)
	switch {
	case errors.As(err, &circular):
		return KindCircularDependency
	case errors.As(err, &notFound):
		return KindNoInstanceFound
	case errors.As(err, &missing):
		return KindMissingConstructorArgument
	case errors.As(err, &ambCtor):
		return KindAmbiguousConstructor
	case errors.As(err, &mismatch):
		return KindTypeMismatch
	case errors.As(err, &build):
		return KindBuildFailed
	case errors.As(err, &dup):
		return KindDuplicateInstance
	case errors.As(err, &ambParam):
		return KindAmbiguousParameter
	case errors.As(err, &unknown):
		return KindUnknownParameter
	case errors.As(err, &invalid):
		return KindInvalidArgument
	case errors.As(err, &noCtor):
		return KindNoConstructor
	case errors.As(err, &notAssign):
		return KindNotAssignable
	}
	return KindUnknown
}
