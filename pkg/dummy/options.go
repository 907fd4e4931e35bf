package dummy

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/funvibe/dummy/internal/capture"
	"github.com/funvibe/dummy/internal/config"
	"github.com/funvibe/dummy/internal/synth"
)

// Option configures one Fixed, Random or Synthesize call.
type Option func(*options)

type options struct {
	namespace *string
	args      map[string]any
	types     synth.TypeOverrides
	seed      *uint64
	maxDepth  int
	nullable  bool
	cfg       *config.Config
	errs      []error
}

func collect(opts []Option) (*options, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o, errors.Join(o.errs...)
}

// InNamespace restricts interface implementations to the given package
// path and the packages below it. An empty namespace allows every
// registered implementation.
func InNamespace(ns string) Option {
	return func(o *options) { o.namespace = &ns }
}

// WithArgs overrides parameters of the creator used for the requested
// object, by parameter name. A nil value stands for the parameter's zero
// value. Overrides never reach nested objects.
func WithArgs(args map[string]any) Option {
	return func(o *options) {
		for k, v := range args {
			o.arg(k, v)
		}
	}
}

// WithArg overrides a single creator parameter.
func WithArg(name string, v any) Option {
	return func(o *options) { o.arg(name, v) }
}

func (o *options) arg(name string, v any) {
	if o.args == nil {
		o.args = make(map[string]any)
	}
	o.args[name] = v
}

// OverrideType supplies every value of type V anywhere in the built graph.
// supply is called once per occurrence.
func OverrideType[V any](supply func() V) Option {
	t := reflect.TypeFor[V]()
	return func(o *options) {
		n, err := capture.Default().Node(t)
		if err != nil {
			o.errs = append(o.errs, err)
			return
		}
		if len(n.Args()) > 0 {
			o.errs = append(o.errs, fmt.Errorf("dummy: cannot override %s, only named and scalar types can be overridden", t))
			return
		}
		if o.types == nil {
			o.types = make(synth.TypeOverrides)
		}
		o.types[n.Symbol()] = func() any { return supply() }
	}
}

// OverrideValue uses v for every value of type V.
func OverrideValue[V any](v V) Option {
	return OverrideType(func() V { return v })
}

// WithSeed makes random synthesis reproducible.
func WithSeed(seed uint64) Option {
	return func(o *options) { o.seed = &seed }
}

// WithMaxDepth bounds recursion through nested types.
func WithMaxDepth(n int) Option {
	return func(o *options) { o.maxDepth = n }
}

// Nullable allows the requested value itself to be nil: always for Fixed,
// on a coin flip for Random. T must be a pointer, interface, slice, map,
// channel or function type.
func Nullable() Option {
	return func(o *options) { o.nullable = true }
}

// WithConfig replaces the configuration otherwise loaded from dummy.yaml.
func WithConfig(cfg *Config) Option {
	return func(o *options) { o.cfg = cfg }
}
