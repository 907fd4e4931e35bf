package capture

import (
	"reflect"
	"strings"
	"unsafe"

	"github.com/funvibe/dummy/internal/typegraph"
)

// TagName is the struct tag consulted for field parameters:
//
//	Name string     `dummy:"name"`      // parameter name
//	Next *Node      `dummy:",nullable"` // may be synthesized as nil
//	mu   sync.Mutex `dummy:"-"`         // left at its zero value
const TagName = "dummy"

type fieldParam struct {
	index    int
	name     string
	nullable bool
}

func parseTag(f reflect.StructField) (fieldParam, bool) {
	p := fieldParam{name: f.Name}
	tag, ok := f.Tag.Lookup(TagName)
	if !ok {
		return p, true
	}
	if tag == "-" {
		return p, false
	}
	name, opts, _ := strings.Cut(tag, ",")
	if name != "" {
		p.name = name
	}
	for _, opt := range strings.Split(opts, ",") {
		if opt == "nullable" {
			p.nullable = true
		}
	}
	return p, true
}

// literal builds the implicit constructor of a struct type: one parameter per
// field in declaration order. It is public when every field is exported.
func (c *Capturer) literal(t reflect.Type, sym *typegraph.Symbol) (*typegraph.Callable, error) {
	var (
		fields []fieldParam
		params []typegraph.Parameter
		public = true
	)
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Name == "_" {
			continue
		}
		p, ok := parseTag(f)
		if !ok {
			continue
		}
		n, err := c.Node(f.Type)
		if err != nil {
			return nil, err
		}
		if p.nullable && canBeNil(f.Type) {
			n = n.WithNullable(true)
		}
		p.index = i
		fields = append(fields, p)
		params = append(params, typegraph.Parameter{Name: p.name, Type: n})
		if !f.IsExported() {
			public = false
		}
	}

	name := sym.Name()
	return &typegraph.Callable{
		Name:     name,
		Kind:     typegraph.Constructor,
		Public:   public,
		Implicit: true,
		Params:   params,
		Result:   typegraph.Of(sym),
		Invoke: func(args []reflect.Value) (reflect.Value, error) {
			v := reflect.New(t).Elem()
			for i, p := range fields {
				f := settable(v.Field(p.index))
				if !args[i].IsValid() {
					continue
				}
				if !args[i].Type().AssignableTo(f.Type()) {
					return reflect.Value{}, typegraph.NewArgumentError(name, i, f.Type(), args[i].Type())
				}
				f.Set(args[i])
			}
			return v, nil
		},
	}, nil
}

// settable returns f, or an alias of the same memory that can be set when f
// is an unexported field. f must be addressable. This is the only place the
// package steps around field visibility.
func settable(f reflect.Value) reflect.Value {
	if f.CanSet() {
		return f
	}
	return reflect.NewAt(f.Type(), unsafe.Pointer(f.UnsafeAddr())).Elem()
}

func canBeNil(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface, reflect.Func, reflect.Chan:
		return true
	}
	return false
}
