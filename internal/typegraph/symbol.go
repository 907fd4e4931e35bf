package typegraph

import (
	"reflect"
	"strings"
	"sync"
)

// Symbol is a nominal type identity: a class-like declaration with its kind,
// declared type parameters and, for concrete kinds, the ways to produce
// instances. Symbols are compared by pointer.
//
// The declaration part (creators, constants, subtypes, supertypes) may grow
// while types are being registered; it is guarded so synthesis can read it
// concurrently with late registrations.
type Symbol struct {
	name   string
	kind   Kind
	params []string
	arity  int
	goType reflect.Type

	variadic bool
	length   int

	mu          sync.RWMutex
	creators    []*Callable
	constants   []any
	instance    any
	hasInstance bool
	subtypes    []Node
	supers      []*Symbol
}

// SymbolOption configures a symbol at construction.
type SymbolOption func(*Symbol)

// WithParams declares the symbol's type parameter names, in order.
func WithParams(names ...string) SymbolOption {
	return func(s *Symbol) { s.params = append([]string(nil), names...) }
}

// WithGoType binds the symbol to the Go runtime type its values have.
func WithGoType(t reflect.Type) SymbolOption {
	return func(s *Symbol) { s.goType = t }
}

// WithArity sets the number of leading type parameters that are function
// arguments. The remaining parameters are results.
func WithArity(n int) SymbolOption {
	return func(s *Symbol) { s.arity = n }
}

// WithSupertypes records declared supertypes, used by subtype resolution for
// symbols that have no Go interface to check against.
func WithSupertypes(supers ...*Symbol) SymbolOption {
	return func(s *Symbol) { s.supers = append(s.supers, supers...) }
}

// NewSymbol creates a symbol with the given qualified name and kind.
func NewSymbol(name string, kind Kind, opts ...SymbolOption) *Symbol {
	s := &Symbol{name: name, kind: kind}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the qualified name (for Go types: import path + "." + name).
func (s *Symbol) Name() string { return s.name }

// Kind returns the dispatch kind. Declarations refine the declared kind: a
// type with registered constants is an enum, one with an instance is a
// singleton, and an interface with registered variants is sealed.
func (s *Symbol) Kind() Kind {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch {
	case len(s.constants) > 0:
		return KindEnum
	case s.hasInstance:
		return KindSingleton
	case len(s.subtypes) > 0:
		return KindSealed
	}
	return s.kind
}

// Params returns the declared type parameter names.
func (s *Symbol) Params() []string { return append([]string(nil), s.params...) }

// Arity returns the number of function arguments for KindFunc symbols.
func (s *Symbol) Arity() int { return s.arity }

// GoType returns the bound Go runtime type, or nil when the runtime type is
// derived from the node's arguments.
func (s *Symbol) GoType() reflect.Type { return s.goType }

// Package returns the namespace part of the qualified name.
func (s *Symbol) Package() string {
	return PackageOf(s.name)
}

func (s *Symbol) String() string { return s.name }

// PackageOf extracts the package path from a qualified name such as
// "github.com/acme/app/shapes.Circle" or "shapes.Box[int]".
func PackageOf(qualified string) string {
	if i := strings.IndexByte(qualified, '['); i >= 0 {
		qualified = qualified[:i]
	}
	slash := strings.LastIndexByte(qualified, '/')
	dot := strings.LastIndexByte(qualified, '.')
	if dot <= slash {
		return ""
	}
	return qualified[:dot]
}

// InNamespace reports whether pkg equals ns or lies below it.
func InNamespace(pkg, ns string) bool {
	if ns == "" {
		return true
	}
	return pkg == ns || strings.HasPrefix(pkg, ns+"/") || strings.HasPrefix(pkg, ns+".")
}

// AddCreator appends a constructor or factory to the declaration.
func (s *Symbol) AddCreator(c *Callable) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creators = append(s.creators, c)
}

// Creators returns the constructor-like callables in declaration order.
// An implicit creator (a struct literal) is only offered while no explicit
// constructor has been registered: constructors own the type's invariants.
func (s *Symbol) Creators() []*Callable {
	s.mu.RLock()
	defer s.mu.RUnlock()
	explicit := false
	for _, c := range s.creators {
		if c.Kind == Constructor && !c.Implicit {
			explicit = true
			break
		}
	}
	out := make([]*Callable, 0, len(s.creators))
	for _, c := range s.creators {
		if explicit && c.Implicit {
			continue
		}
		out = append(out, c)
	}
	return out
}

// SetConstants replaces the enum constants, in declaration order.
func (s *Symbol) SetConstants(values []any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.constants = append([]any(nil), values...)
}

// Constants returns the enum constants.
func (s *Symbol) Constants() []any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]any(nil), s.constants...)
}

// SetInstance sets the singleton instance.
func (s *Symbol) SetInstance(v any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.instance = v
	s.hasInstance = true
}

// Instance returns the singleton instance.
func (s *Symbol) Instance() any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.instance
}

// AddSubtype appends a direct subtype of a sealed hierarchy.
func (s *Symbol) AddSubtype(n Node) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subtypes = append(s.subtypes, n)
}

// Subtypes returns the direct subtypes of a sealed hierarchy in declaration order.
func (s *Symbol) Subtypes() []Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Node(nil), s.subtypes...)
}

// AddSupertype records a declared supertype.
func (s *Symbol) AddSupertype(super *Symbol) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.supers = append(s.supers, super)
}

// Supertypes returns the declared supertypes.
func (s *Symbol) Supertypes() []*Symbol {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*Symbol(nil), s.supers...)
}

// IsSubtypeOf reports whether s can stand in for the abstract symbol super,
// either by declaration or because its Go type (or a pointer to it)
// implements super's Go interface.
func (s *Symbol) IsSubtypeOf(super *Symbol) bool {
	if s == super || s == nil || super == nil {
		return false
	}
	for _, d := range s.Supertypes() {
		if d == super {
			return true
		}
	}
	iface := super.goType
	if iface == nil || iface.Kind() != reflect.Interface || s.goType == nil {
		return false
	}
	if s.goType.Kind() == reflect.Interface {
		return false
	}
	return s.goType.Implements(iface) || reflect.PointerTo(s.goType).Implements(iface)
}
