package capture

import (
	"errors"
	"fmt"
	"go/token"
	"reflect"
	"runtime"
	"strings"

	"github.com/funvibe/dummy/internal/typegraph"
)

var errorType = reflect.TypeFor[error]()

// ErrNilResult is returned by a registered creator that produced a nil pointer
// without an error.
var ErrNilResult = errors.New("creator returned nil")

// Creator registers fn as a constructor or factory of the type it returns.
//
// fn must return T, *T, (T, error) or (*T, error). Go does not keep
// parameter names at run time, so they are supplied by the caller (generated
// registrations pass the source names); when omitted, parameters are named
// p0, p1, ...
//
// The creator is public when the function's own name is exported, so
// function literals and unexported functions are restricted creators.
func (c *Capturer) Creator(fn any, kind typegraph.CallableKind, names ...string) (*typegraph.Callable, error) {
	fv := reflect.ValueOf(fn)
	if fv.Kind() != reflect.Func || fv.IsNil() {
		return nil, fmt.Errorf("creator must be a non-nil function, got %T", fn)
	}
	ft := fv.Type()
	if ft.NumOut() == 0 || ft.NumOut() > 2 || (ft.NumOut() == 2 && ft.Out(1) != errorType) {
		return nil, fmt.Errorf("creator %s must return T or (T, error)", ft)
	}
	if len(names) == 0 {
		names = make([]string, ft.NumIn())
		for i := range names {
			names[i] = fmt.Sprintf("p%d", i)
		}
	}
	if len(names) != ft.NumIn() {
		return nil, fmt.Errorf("creator %s takes %d parameters, %d names given", ft, ft.NumIn(), len(names))
	}

	out := ft.Out(0)
	deref := false
	if out.Kind() == reflect.Pointer && out.Elem().Name() != "" {
		if _, known := wellKnown[out]; !known {
			out, deref = out.Elem(), true
		}
	}
	owner, err := c.Symbol(out)
	if err != nil {
		return nil, err
	}

	params := make([]typegraph.Parameter, ft.NumIn())
	for i := range params {
		n, err := c.Node(ft.In(i))
		if err != nil {
			return nil, err
		}
		params[i] = typegraph.Parameter{Name: names[i], Type: n}
	}

	name := funcName(fv)
	callable := &typegraph.Callable{
		Name:   name,
		Kind:   kind,
		Public: isPublic(name),
		Params: params,
		Result: typegraph.Of(owner),
		Invoke: func(args []reflect.Value) (reflect.Value, error) {
			in := make([]reflect.Value, len(args))
			for i, a := range args {
				want := ft.In(i)
				switch {
				case !a.IsValid():
					in[i] = reflect.Zero(want)
				case a.Type().AssignableTo(want):
					in[i] = a
				default:
					return reflect.Value{}, typegraph.NewArgumentError(name, i, want, a.Type())
				}
			}
			var res []reflect.Value
			if ft.IsVariadic() {
				res = fv.CallSlice(in)
			} else {
				res = fv.Call(in)
			}
			if len(res) == 2 && !res[1].IsNil() {
				return reflect.Value{}, res[1].Interface().(error)
			}
			v := res[0]
			if deref {
				if v.IsNil() {
					return reflect.Value{}, ErrNilResult
				}
				v = v.Elem()
			}
			return v, nil
		},
	}
	owner.AddCreator(callable)
	return callable, nil
}

// Enum declares the constants of t in declaration order.
func (c *Capturer) Enum(t reflect.Type, values []any) error {
	if len(values) == 0 {
		return fmt.Errorf("enum %s needs at least one constant", t)
	}
	for _, v := range values {
		if reflect.TypeOf(v) != t {
			return fmt.Errorf("enum %s: constant %v has type %T", t, v, v)
		}
	}
	sym, err := c.Symbol(t)
	if err != nil {
		return err
	}
	sym.SetConstants(values)
	return nil
}

// Singleton declares v as the only instance of its type.
func (c *Capturer) Singleton(v any) error {
	if v == nil {
		return errors.New("singleton must not be nil")
	}
	sym, err := c.Symbol(reflect.TypeOf(v))
	if err != nil {
		return err
	}
	sym.SetInstance(v)
	return nil
}

// Sealed declares variants as the closed set of direct subtypes of the
// interface iface, in order.
func (c *Capturer) Sealed(iface reflect.Type, variants ...reflect.Type) error {
	if iface.Kind() != reflect.Interface {
		return fmt.Errorf("sealed type %s is not an interface", iface)
	}
	if len(variants) == 0 {
		return fmt.Errorf("sealed type %s needs at least one variant", iface)
	}
	sym, err := c.Symbol(iface)
	if err != nil {
		return err
	}
	for _, v := range variants {
		if !v.Implements(iface) {
			return fmt.Errorf("variant %s does not implement %s", v, iface)
		}
	}
	for _, v := range variants {
		n, err := c.Node(v)
		if err != nil {
			return err
		}
		sym.AddSubtype(n)
		if vs := n.Symbol(); vs.GoType() != nil {
			vs.AddSupertype(sym)
		}
	}
	return nil
}

func funcName(fv reflect.Value) string {
	if f := runtime.FuncForPC(fv.Pointer()); f != nil {
		return f.Name()
	}
	return fv.Type().String()
}

// isPublic reports whether the function's own name is exported. Closures
// ("pkg.init.func1") and method values ("pkg.T.M-fm") are judged by their
// last segment.
func isPublic(qualified string) bool {
	base := qualified
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	parts := strings.Split(base, ".")
	last := strings.TrimSuffix(parts[len(parts)-1], "-fm")
	return token.IsExported(last)
}
