package capture

import (
	"reflect"
	"strings"
	"sync"

	"github.com/funvibe/dummy/internal/catalog"
	"github.com/funvibe/dummy/internal/protograph"
	"github.com/funvibe/dummy/internal/typegraph"
)

// Capturer converts Go runtime types into type graph nodes. Named types get
// a catalog symbol the first time they are seen; unnamed composite types map
// onto the structural builtins. Generated protobuf messages and enums,
// wherever they appear, are described by their descriptors.
type Capturer struct {
	cat   *catalog.Catalog
	proto *protograph.Graph
}

// New creates a Capturer registering into cat.
func New(cat *catalog.Catalog) *Capturer {
	return &Capturer{cat: cat, proto: protograph.New(cat)}
}

var (
	defaultCapturer *Capturer
	defaultOnce     sync.Once
)

// Default returns the capturer bound to the default catalog.
func Default() *Capturer {
	defaultOnce.Do(func() {
		defaultCapturer = &Capturer{cat: catalog.Default(), proto: protograph.Default()}
	})
	return defaultCapturer
}

// Catalog returns the catalog symbols are registered into.
func (c *Capturer) Catalog() *catalog.Catalog { return c.cat }

var wellKnown = map[reflect.Type]*typegraph.Symbol{}

func init() {
	for _, s := range []*typegraph.Symbol{
		typegraph.Any, typegraph.Error,
		typegraph.BigInt, typegraph.BigFloat, typegraph.BigRat,
		typegraph.Time, typegraph.Date, typegraph.TimeOfDay, typegraph.DateTime,
		typegraph.Duration, typegraph.Location, typegraph.Month, typegraph.Weekday,
		typegraph.Currency, typegraph.Locale, typegraph.UUID,
	} {
		wellKnown[s.GoType()] = s
	}
}

var typeToken = reflect.TypeFor[reflect.Type]()

var basicSymbols = map[reflect.Kind]*typegraph.Symbol{
	reflect.Bool:       typegraph.Bool,
	reflect.Int:        typegraph.Int,
	reflect.Int8:       typegraph.Int8,
	reflect.Int16:      typegraph.Int16,
	reflect.Int32:      typegraph.Int32,
	reflect.Int64:      typegraph.Int64,
	reflect.Uint:       typegraph.Uint,
	reflect.Uint8:      typegraph.Uint8,
	reflect.Uint16:     typegraph.Uint16,
	reflect.Uint32:     typegraph.Uint32,
	reflect.Uint64:     typegraph.Uint64,
	reflect.Uintptr:    typegraph.Uintptr,
	reflect.Float32:    typegraph.Float32,
	reflect.Float64:    typegraph.Float64,
	reflect.Complex64:  typegraph.Complex64,
	reflect.Complex128: typegraph.Complex128,
	reflect.String:     typegraph.String,
}

// Node returns the type graph for t.
func (c *Capturer) Node(t reflect.Type) (typegraph.Node, error) {
	if t == nil {
		return typegraph.Of(typegraph.Any), nil
	}
	if sym, ok := wellKnown[t]; ok {
		return typegraph.Of(sym), nil
	}
	if t == typeToken {
		return typegraph.Raw(typegraph.TypeToken), nil
	}
	if sym, ok := c.cat.Lookup(t); ok {
		return c.instantiate(sym, t)
	}
	if n, ok, err := c.protoNode(t); ok {
		return n, err
	}
	if t.Name() == "" {
		return c.structural(t)
	}
	sym, err := c.Symbol(t)
	if err != nil {
		return typegraph.Node{}, err
	}
	return c.instantiate(sym, t)
}

// structural maps an unnamed type onto the builtin identities.
func (c *Capturer) structural(t reflect.Type) (typegraph.Node, error) {
	if sym, ok := basicSymbols[t.Kind()]; ok {
		return typegraph.Of(sym), nil
	}
	switch t.Kind() {
	case reflect.Slice:
		return c.withElems(typegraph.Slice, t.Elem())
	case reflect.Array:
		return c.withElems(typegraph.Array(t.Len()), t.Elem())
	case reflect.Pointer:
		return c.withElems(typegraph.Pointer, t.Elem())
	case reflect.Map:
		if isUnit(t.Elem()) {
			return c.withElems(typegraph.Set, t.Key())
		}
		return c.withElems(typegraph.Map, t.Key(), t.Elem())
	case reflect.Func:
		return c.withElems(typegraph.Func(t.NumIn(), t.NumOut(), t.IsVariadic()), funcTypes(t)...)
	case reflect.Chan, reflect.Struct, reflect.Interface:
		// No builtin has the exact runtime type: bind a symbol for t itself.
		sym, err := c.Symbol(t)
		if err != nil {
			return typegraph.Node{}, err
		}
		return c.instantiate(sym, t)
	}
	return typegraph.Of(c.invalid(t)), nil
}

func (c *Capturer) withElems(sym *typegraph.Symbol, elems ...reflect.Type) (typegraph.Node, error) {
	args := make([]typegraph.Node, len(elems))
	for i, e := range elems {
		n, err := c.Node(e)
		if err != nil {
			return typegraph.Node{}, err
		}
		args[i] = n
	}
	return typegraph.Of(sym, args...), nil
}

// instantiate derives the type arguments of a symbol bound to t.
func (c *Capturer) instantiate(sym *typegraph.Symbol, t reflect.Type) (typegraph.Node, error) {
	if len(sym.Params()) == 0 {
		return typegraph.Of(sym), nil
	}
	var elems []reflect.Type
	switch sym.Kind() {
	case typegraph.KindArray, typegraph.KindFixedArray, typegraph.KindList, typegraph.KindPointer:
		elems = []reflect.Type{t.Elem()}
	case typegraph.KindSet:
		elems = []reflect.Type{t.Key()}
	case typegraph.KindMap:
		elems = []reflect.Type{t.Key(), t.Elem()}
	case typegraph.KindFunc:
		elems = funcTypes(t)
	case typegraph.KindStream:
		elems = []reflect.Type{streamElem(t)}
	default:
		return typegraph.Raw(sym), nil
	}
	return c.withElems(sym, elems...)
}

// Symbol returns the catalog symbol for t, creating it on first use.
func (c *Capturer) Symbol(t reflect.Type) (*typegraph.Symbol, error) {
	if sym, ok := wellKnown[t]; ok {
		return sym, nil
	}
	if sym, ok := c.cat.Lookup(t); ok {
		return sym, nil
	}
	if sym, ok, err := c.protoSymbol(t); ok {
		return sym, err
	}

	sym, created := c.cat.Bind(t, c.declare(t))
	if !created {
		return sym, nil
	}
	// Bound before the literal is captured so self-referential structs
	// resolve to the same symbol.
	if sym.Kind() == typegraph.KindObject && t.Kind() == reflect.Struct {
		lit, err := c.literal(t, sym)
		if err != nil {
			return nil, err
		}
		sym.AddCreator(lit)
	}
	return sym, nil
}

// declare builds an unbound symbol describing t.
func (c *Capturer) declare(t reflect.Type) *typegraph.Symbol {
	name := QualifiedName(t)
	goType := typegraph.WithGoType(t)
	if sym, ok := basicSymbols[t.Kind()]; ok {
		return typegraph.NewSymbol(name, sym.Kind(), goType)
	}
	switch t.Kind() {
	case reflect.Struct:
		return typegraph.NewSymbol(name, typegraph.KindObject, goType)
	case reflect.Interface:
		if t.NumMethod() == 0 {
			return typegraph.NewSymbol(name, typegraph.KindAny, goType)
		}
		return typegraph.NewSymbol(name, typegraph.KindAbstract, goType)
	case reflect.Slice:
		return typegraph.NewSymbol(name, typegraph.KindArray, goType, typegraph.WithParams("E"))
	case reflect.Array:
		return typegraph.NewSymbol(name, typegraph.KindFixedArray, goType, typegraph.WithParams("E"))
	case reflect.Pointer:
		return typegraph.NewSymbol(name, typegraph.KindPointer, goType, typegraph.WithParams("T"))
	case reflect.Map:
		if isUnit(t.Elem()) {
			return typegraph.NewSymbol(name, typegraph.KindSet, goType, typegraph.WithParams("E"))
		}
		return typegraph.NewSymbol(name, typegraph.KindMap, goType, typegraph.WithParams("K", "V"))
	case reflect.Chan:
		return typegraph.NewSymbol(name, typegraph.KindStream, goType, typegraph.WithParams("E"))
	case reflect.Func:
		if isSeq(t) {
			return typegraph.NewSymbol(name, typegraph.KindStream, goType, typegraph.WithParams("E"))
		}
		fn := typegraph.Func(t.NumIn(), t.NumOut(), t.IsVariadic())
		return typegraph.NewSymbol(name, typegraph.KindFunc, goType,
			typegraph.WithParams(fn.Params()...), typegraph.WithArity(t.NumIn()))
	}
	return typegraph.NewSymbol(name, typegraph.KindInvalid, goType)
}

func (c *Capturer) invalid(t reflect.Type) *typegraph.Symbol {
	sym, _ := c.cat.Bind(t, typegraph.NewSymbol(QualifiedName(t), typegraph.KindInvalid, typegraph.WithGoType(t)))
	return sym
}

// QualifiedName returns the import-path qualified name of t.
func QualifiedName(t reflect.Type) string {
	if t.Name() == "" || t.PkgPath() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}

func funcTypes(t reflect.Type) []reflect.Type {
	out := make([]reflect.Type, 0, t.NumIn()+t.NumOut())
	for i := 0; i < t.NumIn(); i++ {
		out = append(out, t.In(i))
	}
	for i := 0; i < t.NumOut(); i++ {
		out = append(out, t.Out(i))
	}
	return out
}

// isUnit reports whether t is the empty struct used as a set marker.
func isUnit(t reflect.Type) bool {
	return t.Kind() == reflect.Struct && t.NumField() == 0 && t.Name() == ""
}

// isSeq reports whether t is an instantiation of iter.Seq.
func isSeq(t reflect.Type) bool {
	return t.PkgPath() == "iter" && strings.HasPrefix(t.Name(), "Seq[") &&
		t.NumIn() == 1 && t.In(0).Kind() == reflect.Func && t.In(0).NumIn() == 1
}

func streamElem(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Func {
		return t.In(0).In(0)
	}
	return t.Elem()
}
