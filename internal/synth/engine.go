// Package synth builds values for type graphs.
//
// The engine walks a typegraph.Node and dispatches on the identity's kind.
// Fixed synthesis produces deterministic zero-like values; random synthesis
// samples each type's domain. Plain objects are built by calling one of
// their registered creators, see construct.go.
package synth

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/funvibe/dummy/internal/subtype"
	"github.com/funvibe/dummy/internal/trace"
	"github.com/funvibe/dummy/internal/typegraph"
)

const (
	// DefaultMaxDepth bounds recursion through nested types.
	DefaultMaxDepth = 32
	// MaxCollectionSize is the exclusive upper bound of random lengths.
	MaxCollectionSize = 100
	// MaxFuncArity is the largest function arity that can be synthesized.
	MaxFuncArity = 2
)

// TypeOverrides supply the value for every occurrence of a symbol.
type TypeOverrides map[*typegraph.Symbol]func() any

// Engine synthesizes values. An Engine owns its random source and is not
// safe for concurrent Synthesize calls; create one per call.
type Engine struct {
	resolver subtype.Resolver
	rnd      RandomSource
	maxDepth int
	log      *trace.Logger

	// guards rnd for synthesized functions called from other goroutines
	mu sync.Mutex
}

// Option configures an Engine.
type Option func(*Engine)

// WithResolver sets the subtype resolver used for abstract types and type
// tokens.
func WithResolver(r subtype.Resolver) Option {
	return func(e *Engine) { e.resolver = r }
}

// WithRand sets the random source. Without one, random synthesis seeds a
// source from the runtime.
func WithRand(src RandomSource) Option {
	return func(e *Engine) { e.rnd = src }
}

// WithMaxDepth sets the recursion limit.
func WithMaxDepth(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxDepth = n
		}
	}
}

// WithLogger enables trace output.
func WithLogger(l *trace.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(e)
	}
	if e.rnd == nil {
		e.rnd = NewRand(runtimeSeed())
	}
	return e
}

// call carries the per-synthesis settings through the recursion.
type call struct {
	*Engine
	randomize bool
	types     TypeOverrides
	namespace string
}

// Synthesize returns a value of n's runtime type. args override the
// parameters of the creator used for the top-level object; types replace
// every occurrence of their symbol. namespace scopes subtype lookups.
func (e *Engine) Synthesize(n typegraph.Node, randomize bool, args map[string]any, types TypeOverrides, namespace string) (reflect.Value, error) {
	c := &call{Engine: e, randomize: randomize, types: types, namespace: namespace}
	return c.synth(n, args, 0)
}

func (c *call) synth(n typegraph.Node, args map[string]any, depth int) (reflect.Value, error) {
	if depth > c.maxDepth {
		return reflect.Value{}, &DepthExceededError{Type: n.String(), Depth: c.maxDepth}
	}
	sym := n.Symbol()
	if sym == nil {
		return reflect.Value{}, NewUnresolvedTypeGraphError(n.String(), "missing type identity")
	}
	rt, err := RuntimeType(n)
	if err != nil {
		return reflect.Value{}, err
	}

	if n.Nullable() {
		if !c.randomize || c.intN(2) == 0 {
			return reflect.Zero(rt), nil
		}
		v, err := c.synth(n.WithNullable(false), args, depth)
		if err != nil {
			return reflect.Value{}, err
		}
		return assign(v, rt)
	}

	if supply, ok := c.types[sym]; ok {
		v, err := Coerce(supply(), rt)
		if err != nil {
			return reflect.Value{}, &InvalidOverrideError{Type: n.String(), Err: err}
		}
		return v, nil
	}

	k := sym.Kind()
	switch {
	case k == typegraph.KindInvalid:
		return reflect.Value{}, NewUnresolvedTypeGraphError(n.String(), "unsupported kind of type")
	case k == typegraph.KindParam:
		return reflect.Value{}, NewUnresolvedTypeGraphError(n.String(), "unsubstituted type parameter")
	case k.IsScalar():
		v, err := c.scalar(k)
		if err != nil {
			return reflect.Value{}, err
		}
		return c.conform(n, v, rt)
	}

	switch k {
	case typegraph.KindTypeToken:
		return c.typeToken(n, rt)
	case typegraph.KindEnum:
		consts := sym.Constants()
		return c.conform(n, reflect.ValueOf(consts[c.pick(len(consts))]), rt)
	case typegraph.KindSingleton:
		return c.conform(n, reflect.ValueOf(sym.Instance()), rt)
	case typegraph.KindArray, typegraph.KindList:
		return c.slice(n, rt, depth)
	case typegraph.KindFixedArray:
		return c.array(n, rt, depth)
	case typegraph.KindSet:
		return c.set(n, rt, depth)
	case typegraph.KindMap:
		return c.mapping(n, rt, depth)
	case typegraph.KindStream:
		return c.stream(n, rt, depth)
	case typegraph.KindFunc:
		return c.function(n, rt, depth)
	case typegraph.KindSealed:
		subs := sym.Subtypes()
		sub := subs[c.pick(len(subs))]
		c.log.Printf("%s: sealed variant %s", n, sub)
		v, err := c.synth(sub, args, depth+1)
		if err != nil {
			return reflect.Value{}, err
		}
		return c.conform(n, v, rt)
	case typegraph.KindAbstract:
		sub, err := c.concrete(sym, rt)
		if err != nil {
			return reflect.Value{}, err
		}
		c.log.Printf("%s: implementation %s", n, sub)
		v, err := c.synth(sub, args, depth+1)
		if err != nil {
			return reflect.Value{}, err
		}
		return c.conform(n, v, rt)
	case typegraph.KindPointer:
		v, err := c.synth(n.ArgNode(0), args, depth+1)
		if err != nil {
			return reflect.Value{}, err
		}
		elem, err := c.conform(n, v, rt.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		p := reflect.New(rt.Elem())
		p.Elem().Set(elem)
		return p, nil
	case typegraph.KindObject:
		return c.construct(n, rt, args, depth)
	}
	return reflect.Value{}, NewUnresolvedTypeGraphError(n.String(), fmt.Sprintf("no rule for kind %s", k))
}

// concrete picks an implementation of an abstract symbol: the first by
// qualified name, or a uniform choice when randomizing. Go types whose
// methods are declared on the pointer are synthesized as pointers.
func (c *call) concrete(abstract *typegraph.Symbol, rt reflect.Type) (typegraph.Node, error) {
	if c.resolver == nil {
		return typegraph.Node{}, subtype.NewNoConcreteSubclassError(abstract.Name(), c.namespace)
	}
	cands, err := c.resolver.Resolve(abstract, c.namespace)
	if err != nil {
		return typegraph.Node{}, err
	}
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].Name() < cands[j].Name() })
	sym := cands[c.pick(len(cands))]
	n := typegraph.Of(sym)
	if gt := sym.GoType(); gt != nil && rt.Kind() == reflect.Interface && !gt.Implements(rt) {
		n = typegraph.Of(typegraph.Pointer, n)
	}
	return n, nil
}

func (c *call) typeToken(n typegraph.Node, rt reflect.Type) (reflect.Value, error) {
	slot := n.Arg(0)
	t := anyType
	if slot.Node != nil {
		target := *slot.Node
		if k := target.Kind(); slot.Variance == typegraph.Out && (k == typegraph.KindAbstract || k == typegraph.KindSealed) {
			targetRT, err := RuntimeType(target)
			if err != nil {
				return reflect.Value{}, err
			}
			sub, err := c.concrete(target.Symbol(), targetRT)
			if err != nil {
				return reflect.Value{}, err
			}
			target = sub
		}
		var err error
		if t, err = RuntimeType(target); err != nil {
			return reflect.Value{}, err
		}
	}
	return c.conform(n, reflect.ValueOf(t), rt)
}

// conform converts a produced value to the node's runtime type.
func (c *call) conform(n typegraph.Node, v reflect.Value, rt reflect.Type) (reflect.Value, error) {
	out, err := assign(v, rt)
	if err != nil {
		return reflect.Value{}, NewUnresolvedTypeGraphError(n.String(), err.Error())
	}
	return out, nil
}

// pick returns 0 for fixed synthesis, or a uniform index below n.
func (c *call) pick(n int) int {
	if !c.randomize || n <= 1 {
		return 0
	}
	return c.intN(n)
}

// size returns a collection length: 0, or uniform in [0, MaxCollectionSize).
func (c *call) size() int {
	if !c.randomize {
		return 0
	}
	return c.intN(MaxCollectionSize)
}

func (c *call) intN(n int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rnd.IntN(n)
}

// draw runs fn with exclusive use of the random source.
func (c *call) draw(fn func(RandomSource)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(c.rnd)
}
