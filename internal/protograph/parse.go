package protograph

import (
	"fmt"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/desc/protoparse"
	"google.golang.org/protobuf/reflect/protoreflect"
)

// Files is a set of parsed .proto files.
type Files struct {
	fds []*desc.FileDescriptor
}

// Parse parses the named files from sources, a map of file name to
// contents. Imports must be present in sources; the standard
// google/protobuf imports are built in.
func Parse(sources map[string]string, names ...string) (*Files, error) {
	parser := protoparse.Parser{
		Accessor: protoparse.FileContentsFromMap(sources),
	}
	fds, err := parser.ParseFiles(names...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse proto: %w", err)
	}
	return &Files{fds: fds}, nil
}

// Message finds a message by its fully-qualified name, e.g. "shop.v1.Order".
func (f *Files) Message(name string) (protoreflect.MessageDescriptor, error) {
	for _, fd := range f.fds {
		if md := fd.FindMessage(name); md != nil {
			return md.UnwrapMessage(), nil
		}
	}
	return nil, fmt.Errorf("message type %q not found", name)
}

// Enum finds an enum by its fully-qualified name.
func (f *Files) Enum(name string) (protoreflect.EnumDescriptor, error) {
	for _, fd := range f.fds {
		if ed := fd.FindEnum(name); ed != nil {
			return ed.UnwrapEnum(), nil
		}
	}
	return nil, fmt.Errorf("enum type %q not found", name)
}

// Names returns the parsed file names in parse order.
func (f *Files) Names() []string {
	out := make([]string, len(f.fds))
	for i, fd := range f.fds {
		out[i] = fd.GetName()
	}
	return out
}
