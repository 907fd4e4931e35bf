// Package protograph maps protobuf enums and messages onto type graphs.
//
// A message becomes an object symbol with one implicit constructor whose
// parameters are the message fields; invoking it populates a message through
// protoreflect. Messages with generated Go types are built as those types and
// bound in the catalog, so they are found by reflection like any other Go
// type. Messages known only from descriptors (for example parsed from .proto
// sources) are built as dynamicpb messages.
package protograph

import (
	"fmt"
	"reflect"
	"sync"
	"time"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/dynamicpb"

	"github.com/funvibe/dummy/internal/catalog"
	"github.com/funvibe/dummy/internal/typegraph"
)

const (
	timestampName protoreflect.FullName = "google.protobuf.Timestamp"
	durationName  protoreflect.FullName = "google.protobuf.Duration"
)

// Graph converts descriptors to symbols. Each descriptor maps to one symbol
// for the life of the Graph.
type Graph struct {
	cat *catalog.Catalog

	mu       sync.Mutex
	messages map[protoreflect.MessageDescriptor]*typegraph.Symbol
	enums    map[protoreflect.EnumDescriptor]*typegraph.Symbol
}

// New creates a Graph binding generated types in cat.
func New(cat *catalog.Catalog) *Graph {
	return &Graph{
		cat:      cat,
		messages: make(map[protoreflect.MessageDescriptor]*typegraph.Symbol),
		enums:    make(map[protoreflect.EnumDescriptor]*typegraph.Symbol),
	}
}

var (
	defaultGraph *Graph
	defaultOnce  sync.Once
)

// Default returns the graph over the default catalog.
func Default() *Graph {
	defaultOnce.Do(func() {
		defaultGraph = New(catalog.Default())
	})
	return defaultGraph
}

// Register declares the generated message type of m. m may be a typed nil
// pointer.
func (g *Graph) Register(m proto.Message) typegraph.Node {
	return g.Message(m.ProtoReflect().Descriptor())
}

// Message returns the node of a message type.
func (g *Graph) Message(md protoreflect.MessageDescriptor) typegraph.Node {
	g.mu.Lock()
	defer g.mu.Unlock()
	return typegraph.Of(g.message(md))
}

// Enum returns the node of an enum type.
func (g *Graph) Enum(ed protoreflect.EnumDescriptor) typegraph.Node {
	g.mu.Lock()
	defer g.mu.Unlock()
	return typegraph.Of(g.enum(ed))
}

func (g *Graph) message(md protoreflect.MessageDescriptor) *typegraph.Symbol {
	if sym, ok := g.messages[md]; ok {
		return sym
	}
	mt := messageType(md)
	goType := reflect.TypeOf(mt.Zero().Interface())
	sym := typegraph.NewSymbol(string(md.FullName()), typegraph.KindObject, typegraph.WithGoType(goType))
	if generated(mt) {
		sym, _ = g.cat.Bind(goType, sym)
	}
	// Stored before the fields are visited: messages may be recursive.
	g.messages[md] = sym
	if len(sym.Creators()) == 0 {
		sym.AddCreator(g.constructor(sym, mt))
	}
	return sym
}

func (g *Graph) enum(ed protoreflect.EnumDescriptor) *typegraph.Symbol {
	if sym, ok := g.enums[ed]; ok {
		return sym
	}
	values := ed.Values()
	consts := make([]any, values.Len())

	et, err := protoregistry.GlobalTypes.FindEnumByName(ed.FullName())
	var sym *typegraph.Symbol
	if err == nil && et.Descriptor() == ed {
		for i := range consts {
			consts[i] = et.New(values.Get(i).Number())
		}
		goType := reflect.TypeOf(consts[0])
		sym, _ = g.cat.Bind(goType, typegraph.NewSymbol(string(ed.FullName()), typegraph.KindInt32, typegraph.WithGoType(goType)))
	} else {
		for i := range consts {
			consts[i] = values.Get(i).Number()
		}
		sym = typegraph.NewSymbol(string(ed.FullName()), typegraph.KindInt32,
			typegraph.WithGoType(reflect.TypeFor[protoreflect.EnumNumber]()))
	}
	sym.SetConstants(consts)
	g.enums[ed] = sym
	return sym
}

// constructor builds the implicit creator of a message: one parameter per
// field, named by the field's proto name.
func (g *Graph) constructor(sym *typegraph.Symbol, mt protoreflect.MessageType) *typegraph.Callable {
	fields := mt.Descriptor().Fields()
	params := make([]typegraph.Parameter, fields.Len())
	for i := range params {
		fd := fields.Get(i)
		params[i] = typegraph.Parameter{Name: string(fd.Name()), Type: g.field(fd)}
	}
	return &typegraph.Callable{
		Name:     sym.Name(),
		Kind:     typegraph.Constructor,
		Public:   true,
		Implicit: true,
		Params:   params,
		Result:   typegraph.Of(sym),
		Invoke: func(args []reflect.Value) (reflect.Value, error) {
			m := mt.New()
			oneofs := map[protoreflect.OneofDescriptor]bool{}
			for i, a := range args {
				fd := fields.Get(i)
				if !present(a) {
					continue
				}
				if od := fd.ContainingOneof(); od != nil && !od.IsSynthetic() {
					// first populated member wins
					if oneofs[od] {
						continue
					}
					oneofs[od] = true
				}
				if err := set(m, fd, a); err != nil {
					return reflect.Value{}, fmt.Errorf("%s: field %s: %w", sym.Name(), fd.Name(), err)
				}
			}
			return reflect.ValueOf(m.Interface()), nil
		},
	}
}

// field returns the node of a field. Singular fields with presence are
// nullable: nil leaves them unset.
func (g *Graph) field(fd protoreflect.FieldDescriptor) typegraph.Node {
	switch {
	case fd.IsMap():
		return typegraph.Of(typegraph.Map, g.single(fd.MapKey()), g.single(fd.MapValue()))
	case fd.IsList():
		return typegraph.Of(typegraph.Slice, g.single(fd))
	}
	return g.single(fd).WithNullable(fd.HasPresence())
}

func (g *Graph) single(fd protoreflect.FieldDescriptor) typegraph.Node {
	switch fd.Kind() {
	case protoreflect.BoolKind:
		return typegraph.Of(typegraph.Bool)
	case protoreflect.EnumKind:
		return typegraph.Of(g.enum(fd.Enum()))
	case protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Sfixed32Kind:
		return typegraph.Of(typegraph.Int32)
	case protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Sfixed64Kind:
		return typegraph.Of(typegraph.Int64)
	case protoreflect.Uint32Kind, protoreflect.Fixed32Kind:
		return typegraph.Of(typegraph.Uint32)
	case protoreflect.Uint64Kind, protoreflect.Fixed64Kind:
		return typegraph.Of(typegraph.Uint64)
	case protoreflect.FloatKind:
		return typegraph.Of(typegraph.Float32)
	case protoreflect.DoubleKind:
		return typegraph.Of(typegraph.Float64)
	case protoreflect.StringKind:
		return typegraph.Of(typegraph.String)
	case protoreflect.BytesKind:
		return typegraph.Of(typegraph.Slice, typegraph.Of(typegraph.Uint8))
	}
	switch fd.Message().FullName() {
	case timestampName:
		return typegraph.Of(typegraph.Time)
	case durationName:
		return typegraph.Of(typegraph.Duration)
	}
	return typegraph.Of(g.message(fd.Message()))
}

func set(m protoreflect.Message, fd protoreflect.FieldDescriptor, v reflect.Value) error {
	switch {
	case fd.IsMap():
		mp := m.Mutable(fd).Map()
		iter := v.MapRange()
		for iter.Next() {
			key, err := value(fd.MapKey(), iter.Key(), nil)
			if err != nil {
				return err
			}
			val, err := value(fd.MapValue(), iter.Value(), mp.NewValue)
			if err != nil {
				return err
			}
			mp.Set(key.MapKey(), val)
		}
		return nil
	case fd.IsList():
		list := m.Mutable(fd).List()
		for i := 0; i < v.Len(); i++ {
			elem, err := value(fd, v.Index(i), list.NewElement)
			if err != nil {
				return err
			}
			list.Append(elem)
		}
		return nil
	}
	val, err := value(fd, v, func() protoreflect.Value { return m.NewField(fd) })
	if err != nil {
		return err
	}
	m.Set(fd, val)
	return nil
}

// value converts a synthesized Go value to a protoreflect value. newMsg
// supplies an empty message for well-known message types.
func value(fd protoreflect.FieldDescriptor, v reflect.Value, newMsg func() protoreflect.Value) (protoreflect.Value, error) {
	if v.Kind() == reflect.Pointer && !v.Type().Implements(messageIface) {
		v = v.Elem()
	}
	switch x := v.Interface().(type) {
	case protoreflect.Enum:
		return protoreflect.ValueOfEnum(x.Number()), nil
	case protoreflect.EnumNumber:
		return protoreflect.ValueOfEnum(x), nil
	case proto.Message:
		return protoreflect.ValueOfMessage(x.ProtoReflect()), nil
	case time.Time:
		m := newMsg().Message()
		f := m.Descriptor().Fields()
		m.Set(f.ByName("seconds"), protoreflect.ValueOfInt64(x.Unix()))
		m.Set(f.ByName("nanos"), protoreflect.ValueOfInt32(int32(x.Nanosecond())))
		return protoreflect.ValueOfMessage(m), nil
	case time.Duration:
		m := newMsg().Message()
		f := m.Descriptor().Fields()
		m.Set(f.ByName("seconds"), protoreflect.ValueOfInt64(int64(x/time.Second)))
		m.Set(f.ByName("nanos"), protoreflect.ValueOfInt32(int32(x%time.Second)))
		return protoreflect.ValueOfMessage(m), nil
	case bool, int32, int64, uint32, uint64, float32, float64, string, []byte:
		return protoreflect.ValueOf(x), nil
	}
	return protoreflect.Value{}, fmt.Errorf("cannot use %s as %s", v.Type(), fd.Kind())
}

var messageIface = reflect.TypeFor[proto.Message]()

func present(v reflect.Value) bool {
	if !v.IsValid() {
		return false
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return !v.IsNil()
	}
	return true
}

// messageType prefers the generated type registered for md.
func messageType(md protoreflect.MessageDescriptor) protoreflect.MessageType {
	if mt, err := protoregistry.GlobalTypes.FindMessageByName(md.FullName()); err == nil && mt.Descriptor() == md {
		return mt
	}
	return dynamicpb.NewMessageType(md)
}

func generated(mt protoreflect.MessageType) bool {
	_, dynamic := mt.Zero().Interface().(*dynamicpb.Message)
	return !dynamic
}
