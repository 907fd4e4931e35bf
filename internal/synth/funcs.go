package synth

import (
	"fmt"
	"reflect"

	"github.com/funvibe/dummy/internal/typegraph"
)

// function builds a function that ignores its arguments and returns values
// synthesized on every call. The nodes of a function type list the
// parameters first, then the results.
func (c *call) function(n typegraph.Node, rt reflect.Type, depth int) (reflect.Value, error) {
	arity := n.Symbol().Arity()
	if arity > MaxFuncArity {
		return reflect.Value{}, &UnsupportedFunctionArityError{Type: n.String(), Arity: arity}
	}
	if rt.Kind() != reflect.Func {
		return reflect.Value{}, NewUnresolvedTypeGraphError(n.String(), fmt.Sprintf("function of Go type %s", rt))
	}
	results := make([]typegraph.Node, rt.NumOut())
	for i := range results {
		results[i] = n.ArgNode(arity + i)
	}
	// Depth is fixed at creation so that results nest like any other value.
	next := &call{Engine: c.Engine, randomize: c.randomize, types: c.types, namespace: c.namespace}
	return reflect.MakeFunc(rt, func([]reflect.Value) []reflect.Value {
		out := make([]reflect.Value, len(results))
		for i, rn := range results {
			v, err := next.synth(rn, nil, depth+1)
			if err == nil {
				v, err = next.conform(rn, v, rt.Out(i))
			}
			if err != nil {
				panic(fmt.Errorf("synthesized function %s: %w", n, err))
			}
			out[i] = v
		}
		return out
	}), nil
}
