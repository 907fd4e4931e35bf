package dummy

import (
	"fmt"
	"reflect"

	"github.com/funvibe/dummy/internal/capture"
	"github.com/funvibe/dummy/internal/catalog"
	"github.com/funvibe/dummy/internal/typegraph"
)

// Register makes T known to interface lookups. Struct types become
// constructible through their fields until a constructor is registered.
func Register[T any]() error {
	_, err := capture.Default().Symbol(reflect.TypeFor[T]())
	return err
}

// RegisterConstructor registers fn as a constructor of the type it returns.
// fn must return T, *T, (T, error) or (*T, error). names are the parameter
// names argument overrides refer to. Once a constructor is registered for a
// struct type, its fields are no longer set directly.
//
// Creators are tried public constructors first, then public factories,
// then restricted constructors and restricted factories. A creator is public
// when its function name is exported: unexported functions and function
// literals (whose runtime names end in "func1", "func2", ...) rank as
// restricted, after every public factory.
func RegisterConstructor(fn any, names ...string) error {
	_, err := capture.Default().Creator(fn, typegraph.Constructor, names...)
	return err
}

// RegisterFactory registers fn as a factory of the type it returns.
// Factories are tried after constructors of the same visibility; see
// RegisterConstructor for the full order.
func RegisterFactory(fn any, names ...string) error {
	_, err := capture.Default().Creator(fn, typegraph.Factory, names...)
	return err
}

// RegisterEnum declares the constants of T in declaration order. Fixed
// synthesis picks the first one.
func RegisterEnum[T comparable](values ...T) error {
	consts := make([]any, len(values))
	for i, v := range values {
		consts[i] = v
	}
	return capture.Default().Enum(reflect.TypeFor[T](), consts)
}

// RegisterSingleton declares v as the only value of its type.
func RegisterSingleton(v any) error {
	return capture.Default().Singleton(v)
}

// RegisterSealed declares the closed set of implementations of the
// interface I. Fixed synthesis picks the first variant.
func RegisterSealed[I any](variants ...reflect.Type) error {
	return capture.Default().Sealed(reflect.TypeFor[I](), variants...)
}

// Declare adds a symbol without a Go declaration, built from NewSymbol, to
// the catalog. Its creators must produce the values.
func Declare(sym *Symbol) error {
	if len(sym.Creators()) == 0 && sym.Kind() == typegraph.KindObject {
		return fmt.Errorf("dummy: declared type %s has no creators", sym)
	}
	return catalog.Default().Add(sym)
}
