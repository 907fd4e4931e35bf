// Package dummy builds instances of arbitrary Go types for tests.
//
// Fixed returns a deterministic, zero-like instance; Random samples every
// field from its type's domain:
//
//	user, err := dummy.Fixed[User]()
//	user, err := dummy.Random[User](dummy.WithArg("email", "a@b.c"))
//
// Structs are built through their registered constructors and factories
// (New... functions), falling back from one to the next when a creator
// rejects its arguments. Interfaces are filled with one of their registered
// implementations; run dummygen on a package to register all of its types.
//
// Defaults for every call are read once from dummy.yaml, found by walking up
// from the working directory.
package dummy

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/funvibe/dummy/internal/capture"
	"github.com/funvibe/dummy/internal/config"
	"github.com/funvibe/dummy/internal/subtype"
	"github.com/funvibe/dummy/internal/synth"
	"github.com/funvibe/dummy/internal/trace"
	"github.com/funvibe/dummy/internal/typegraph"
)

var loadConfig = sync.OnceValues(func() (*config.Config, error) {
	return config.Load(".")
})

// Fixed returns a deterministic instance of T.
func Fixed[T any](opts ...Option) (T, error) {
	return build[T](false, opts)
}

// Random returns a randomized instance of T.
func Random[T any](opts ...Option) (T, error) {
	return build[T](true, opts)
}

// MustFixed is like Fixed but panics on error.
func MustFixed[T any](opts ...Option) T {
	v, err := Fixed[T](opts...)
	if err != nil {
		panic(err)
	}
	return v
}

// MustRandom is like Random but panics on error.
func MustRandom[T any](opts ...Option) T {
	v, err := Random[T](opts...)
	if err != nil {
		panic(err)
	}
	return v
}

func build[T any](randomize bool, opts []Option) (T, error) {
	var out T
	t := reflect.TypeFor[T]()
	n, err := NodeOf[T]()
	if err != nil {
		return out, err
	}

	o, err := collect(opts)
	if err != nil {
		return out, err
	}
	if o.nullable {
		if !nillable(t) {
			return out, fmt.Errorf("dummy: %s cannot be nil, use a pointer type", t)
		}
		n = n.WithNullable(true)
	}

	v, err := o.synthesize(n, randomize, packageOf(t))
	if err != nil {
		return out, err
	}
	reflect.ValueOf(&out).Elem().Set(v)
	return out, nil
}

// Synthesize builds a value for a hand-made type graph. The namespace
// defaults to the package of the node's type.
func Synthesize(n Node, randomize bool, opts ...Option) (any, error) {
	o, err := collect(opts)
	if err != nil {
		return nil, err
	}
	if o.nullable {
		n = n.WithNullable(true)
	}
	var ns string
	if sym := n.Symbol(); sym != nil {
		ns = sym.Package()
	}
	v, err := o.synthesize(n, randomize, ns)
	if err != nil {
		return nil, err
	}
	return v.Interface(), nil
}

// NodeOf returns the type graph of T. Generated protobuf messages and enums
// are described by their descriptors.
func NodeOf[T any]() (Node, error) {
	return capture.Default().Node(reflect.TypeFor[T]())
}

func (o *options) synthesize(n typegraph.Node, randomize bool, fallbackNS string) (reflect.Value, error) {
	cfg := o.cfg
	if cfg == nil {
		var err error
		if cfg, err = loadConfig(); err != nil {
			return reflect.Value{}, err
		}
	}

	ns := fallbackNS
	switch {
	case o.namespace != nil:
		ns = *o.namespace
	case cfg.Namespace != "":
		ns = cfg.Namespace
	}

	seed := cfg.Seed
	if o.seed != nil {
		seed = *o.seed
	}
	depth := cfg.MaxDepth
	if o.maxDepth > 0 {
		depth = o.maxDepth
	}

	engineOpts := []synth.Option{
		synth.WithResolver(subtype.Default()),
		synth.WithMaxDepth(depth),
		synth.WithLogger(trace.Stderr(cfg.Verbose)),
	}
	if seed != 0 {
		engineOpts = append(engineOpts, synth.WithRand(synth.NewRand(seed)))
	}

	types := cfg.TypeOverrides()
	for sym, supply := range o.types {
		types[sym] = supply
	}
	return synth.New(engineOpts...).Synthesize(n, randomize, o.args, types, ns)
}

// packageOf returns the import path of t's package, looking through
// pointers, slices and the like.
func packageOf(t reflect.Type) string {
	for t.Name() == "" {
		switch t.Kind() {
		case reflect.Pointer, reflect.Slice, reflect.Array, reflect.Chan, reflect.Map:
			t = t.Elem()
		default:
			return ""
		}
	}
	return t.PkgPath()
}

func nillable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
		return true
	}
	return false
}
