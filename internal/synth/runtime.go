package synth

import (
	"fmt"
	"reflect"

	"github.com/funvibe/dummy/internal/typegraph"
)

var (
	anyType   = reflect.TypeFor[any]()
	unitType  = reflect.TypeFor[struct{}]()
	typeType  = reflect.TypeFor[reflect.Type]()
	errorType = reflect.TypeFor[error]()
)

// RuntimeType returns the Go type of the values synthesized for n. A
// nullable node whose base type cannot hold nil is represented as a pointer.
func RuntimeType(n typegraph.Node) (reflect.Type, error) {
	t, err := baseType(n)
	if err != nil {
		return nil, err
	}
	if n.Nullable() && !canBeNil(t) {
		return reflect.PointerTo(t), nil
	}
	return t, nil
}

func baseType(n typegraph.Node) (reflect.Type, error) {
	sym := n.Symbol()
	if sym == nil {
		return nil, NewUnresolvedTypeGraphError(n.String(), "missing type identity")
	}
	if t := sym.GoType(); t != nil {
		return t, nil
	}
	elem := func(i int) (reflect.Type, error) { return RuntimeType(n.ArgNode(i)) }

	switch sym.Kind() {
	case typegraph.KindTypeToken:
		return typeType, nil
	case typegraph.KindArray, typegraph.KindList:
		e, err := elem(0)
		if err != nil {
			return nil, err
		}
		return reflect.SliceOf(e), nil
	case typegraph.KindFixedArray:
		e, err := elem(0)
		if err != nil {
			return nil, err
		}
		return reflect.ArrayOf(sym.Len(), e), nil
	case typegraph.KindSet:
		e, err := elem(0)
		if err != nil {
			return nil, err
		}
		if !e.Comparable() {
			return nil, NewUnresolvedTypeGraphError(n.String(), fmt.Sprintf("set element type %s is not comparable", e))
		}
		return reflect.MapOf(e, unitType), nil
	case typegraph.KindMap:
		k, err := elem(0)
		if err != nil {
			return nil, err
		}
		v, err := elem(1)
		if err != nil {
			return nil, err
		}
		if !k.Comparable() {
			return nil, NewUnresolvedTypeGraphError(n.String(), fmt.Sprintf("map key type %s is not comparable", k))
		}
		return reflect.MapOf(k, v), nil
	case typegraph.KindStream:
		e, err := elem(0)
		if err != nil {
			return nil, err
		}
		return reflect.ChanOf(reflect.RecvDir, e), nil
	case typegraph.KindPointer:
		e, err := elem(0)
		if err != nil {
			return nil, err
		}
		return reflect.PointerTo(e), nil
	case typegraph.KindFunc:
		return funcType(n)
	}
	// Declared symbols without a Go type (and bare parameters) carry their
	// values as any.
	return anyType, nil
}

func funcType(n typegraph.Node) (reflect.Type, error) {
	sym := n.Symbol()
	args := n.Args()
	in := make([]reflect.Type, 0, sym.Arity())
	out := make([]reflect.Type, 0, len(args)-sym.Arity())
	for i := range args {
		t, err := RuntimeType(n.ArgNode(i))
		if err != nil {
			return nil, err
		}
		if i < sym.Arity() {
			in = append(in, t)
		} else {
			out = append(out, t)
		}
	}
	variadic := sym.Variadic()
	if variadic && (len(in) == 0 || in[len(in)-1].Kind() != reflect.Slice) {
		return nil, NewUnresolvedTypeGraphError(n.String(), "variadic parameter must be a slice")
	}
	return reflect.FuncOf(in, out, variadic), nil
}

func canBeNil(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface, reflect.Func, reflect.Chan:
		return true
	}
	return false
}
