package dummy

import (
	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/funvibe/dummy/internal/protograph"
)

// ProtoFiles is a set of parsed .proto files.
type ProtoFiles = protograph.Files

// ParseProto parses the named .proto files from sources, a map of file name
// to contents. The well-known google/protobuf imports are built in.
func ParseProto(sources map[string]string, names ...string) (*ProtoFiles, error) {
	return protograph.Parse(sources, names...)
}

// ProtoMessage returns the type graph of a message descriptor. Messages
// without a generated Go type are built as *dynamicpb.Message:
//
//	files, _ := dummy.ParseProto(map[string]string{"order.proto": src}, "order.proto")
//	md, _ := files.Message("shop.v1.Order")
//	msg, _ := dummy.Synthesize(dummy.ProtoMessage(md), true)
func ProtoMessage(md protoreflect.MessageDescriptor) Node {
	return protograph.Default().Message(md)
}

// ProtoEnum returns the type graph of an enum descriptor.
func ProtoEnum(ed protoreflect.EnumDescriptor) Node {
	return protograph.Default().Enum(ed)
}
