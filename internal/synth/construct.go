package synth

import (
	"errors"
	"fmt"
	"reflect"
	"sort"

	"github.com/funvibe/dummy/internal/typegraph"
)

// construct builds an object by calling its creators until one succeeds.
//
// Only creators that accept every argument override are candidates. They are
// tried public constructors first, then public factories, then restricted
// constructors and restricted factories; within a group fewer parameters go
// first. A creator's own error moves on to the next candidate and is
// reported if all of them fail.
func (c *call) construct(n typegraph.Node, rt reflect.Type, args map[string]any, depth int) (reflect.Value, error) {
	sym := n.Symbol()
	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var cands []*typegraph.Callable
	for _, cr := range sym.Creators() {
		if cr.Result.Symbol() == sym && !cr.Result.Nullable() && cr.Accepts(keys) {
			cands = append(cands, cr)
		}
	}
	if len(cands) == 0 {
		return reflect.Value{}, &NoMatchingConstructorError{Type: n.String(), Keys: keys}
	}
	sort.SliceStable(cands, func(i, j int) bool {
		gi, gj := group(cands[i]), group(cands[j])
		if gi != gj {
			return gi < gj
		}
		return len(cands[i].Params) < len(cands[j].Params)
	})

	subst := typegraph.ResolveParams(sym.Params(), n.Args())

	var attempts []Attempt
	for _, cr := range cands {
		vals, err := c.arguments(n, cr, subst, args, keys, depth)
		if err != nil {
			return reflect.Value{}, err
		}
		v, err := invoke(cr, vals)
		var argErr *typegraph.ArgumentError
		switch {
		case errors.As(err, &argErr):
			return reflect.Value{}, &InternalConstructionError{Type: n.String(), Keys: keys, Creator: cr.String(), Args: render(vals), Err: err}
		case err != nil:
			c.log.Printf("%s: %s rejected its arguments: %v", n, cr, err)
			attempts = append(attempts, Attempt{Creator: cr.String(), Args: render(vals), Err: err})
			continue
		}
		c.log.Printf("%s: built by %s", n, cr)
		return c.conform(n, v, rt)
	}
	return reflect.Value{}, &ConstructionFailedError{Type: n.String(), Keys: keys, Attempts: attempts}
}

// arguments produces one value per parameter of cr, taking overrides by name
// and synthesizing the rest.
func (c *call) arguments(n typegraph.Node, cr *typegraph.Callable, subst typegraph.Subst, args map[string]any, keys []string, depth int) ([]reflect.Value, error) {
	vals := make([]reflect.Value, len(cr.Params))
	for i, p := range cr.Params {
		pn, err := typegraph.Substitute(p.Type, subst)
		if ov, ok := args[p.Name]; ok {
			pt, err := overrideType(pn, err)
			if err != nil {
				return nil, err
			}
			v, err := Coerce(ov, pt)
			if err != nil {
				return nil, &InternalConstructionError{
					Type:    n.String(),
					Keys:    keys,
					Creator: cr.String(),
					Args:    render(vals[:i]),
					Err:     fmt.Errorf("argument %s: %w", p.Name, err),
				}
			}
			vals[i] = v
			continue
		}
		if err != nil {
			return nil, err
		}
		v, err := c.synth(pn, nil, depth+1)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

// overrideType returns the runtime type an overridden parameter is coerced
// to. A parameter whose type names an unresolved type parameter is never
// synthesized, so it takes the override as is.
func overrideType(pn typegraph.Node, substErr error) (reflect.Type, error) {
	var unresolved *typegraph.UnresolvedTypeParameterError
	switch {
	case errors.As(substErr, &unresolved):
		return anyType, nil
	case substErr != nil:
		return nil, substErr
	}
	return RuntimeType(pn)
}

func group(cr *typegraph.Callable) int {
	g := 0
	if !cr.Public {
		g = 2
	}
	if cr.Kind == typegraph.Factory {
		g++
	}
	return g
}

// invoke calls cr, turning a panic into a rejection.
func invoke(cr *typegraph.Callable, vals []reflect.Value) (v reflect.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r}
		}
	}()
	return cr.Invoke(vals)
}
