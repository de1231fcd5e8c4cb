package pluginmap

import (
	"fmt"
	"strings"

	"github.com/go-logr/logr"
)

type options struct {
	log          logr.Logger
	policy       DuplicatePolicy
	autoConcrete bool
	observer     Observer
}

func defaultOptions() options {
	return options{
		log:          logr.Discard(),
		policy:       ReplaceInPlace,
		autoConcrete: true,
	}
}

// Option configures a Registry and the Container it builds.
type Option func(*options)

// WithLogger sets the logger. Compilation is logged at V(1), every instance
// build at V(2).
func WithLogger(log logr.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithDuplicatePolicy sets how repeated names inside a family are handled.
func WithDuplicatePolicy(p DuplicatePolicy) Option {
	return func(o *options) { o.policy = p }
}

// WithAutoConcrete controls whether concrete types with constructors but no
// registration can still be requested directly. Enabled by default.
func WithAutoConcrete(enabled bool) Option {
	return func(o *options) { o.autoConcrete = enabled }
}

// WithObserver registers an observer for top-level queries.
func WithObserver(obs Observer) Option {
	return func(o *options) { o.observer = obs }
}

// ParseDuplicatePolicy parses "replace" or "reject".
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "replace":
		return ReplaceInPlace, nil
	case "reject":
		return RejectDuplicates, nil
	}
	return ReplaceInPlace, fmt.Errorf("pluginmap: unknown duplicate policy %q", s)
}
