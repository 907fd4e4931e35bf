package capture

import (
	"fmt"
	"reflect"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"

	"github.com/funvibe/dummy/internal/typegraph"
)

var (
	messageIface = reflect.TypeFor[proto.Message]()
	enumIface    = reflect.TypeFor[protoreflect.Enum]()
	dynamicType  = reflect.TypeFor[*dynamicpb.Message]()
)

// protoNode describes generated protobuf messages and enums by their
// descriptors instead of their Go declarations. ok is false for every other
// type.
func (c *Capturer) protoNode(t reflect.Type) (n typegraph.Node, ok bool, err error) {
	switch {
	case t == dynamicType:
		return typegraph.Node{}, true, fmt.Errorf("%s has no static message type, describe it with its descriptor", t)
	case t.Kind() == reflect.Pointer && t.Implements(messageIface):
		m := reflect.Zero(t).Interface().(proto.Message)
		return c.proto.Register(m), true, nil
	case t.Kind() == reflect.Struct && reflect.PointerTo(t).Implements(messageIface):
		return typegraph.Node{}, true, fmt.Errorf("protobuf message %s can only be built through a pointer, use *%s", t, t.Name())
	case t.Kind() != reflect.Interface && t.Kind() != reflect.Pointer && t.Implements(enumIface):
		e := reflect.Zero(t).Interface().(protoreflect.Enum)
		return c.proto.Enum(e.Descriptor()), true, nil
	}
	return typegraph.Node{}, false, nil
}

// protoSymbol is protoNode for registrations, which may name a generated
// message by its struct type.
func (c *Capturer) protoSymbol(t reflect.Type) (*typegraph.Symbol, bool, error) {
	if t.Kind() == reflect.Struct && reflect.PointerTo(t).Implements(messageIface) {
		t = reflect.PointerTo(t)
	}
	n, ok, err := c.protoNode(t)
	if !ok || err != nil {
		return nil, ok, err
	}
	return n.Symbol(), true, nil
}
