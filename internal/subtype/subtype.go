// Package subtype finds concrete implementations of abstract types.
//
// The Go runtime cannot enumerate the types of a package, so the index works
// over the catalog: every concrete type that was registered (by hand, or by
// the init function dummygen generates for a package) is a candidate.
package subtype

import (
	"fmt"
	"sort"
	"sync"

	"github.com/funvibe/dummy/internal/catalog"
	"github.com/funvibe/dummy/internal/typegraph"
)

// Resolver maps an abstract type to its concrete implementations within a
// namespace, sorted by qualified name.
type Resolver interface {
	Resolve(abstract *typegraph.Symbol, namespace string) ([]*typegraph.Symbol, error)
}

// NoConcreteSubclassError is returned when no concrete implementation of an
// abstract type is known within the namespace.
type NoConcreteSubclassError struct {
	Type      string
	Namespace string
}

func (e *NoConcreteSubclassError) Error() string {
	return fmt.Sprintf("no concrete implementation of %s found in namespace %q; "+
		"register one (or run dummygen on the package), pass a different namespace, or override the type",
		e.Type, e.Namespace)
}

// NewNoConcreteSubclassError creates a NoConcreteSubclassError.
func NewNoConcreteSubclassError(typ, namespace string) *NoConcreteSubclassError {
	return &NoConcreteSubclassError{Type: typ, Namespace: namespace}
}

// Index is a Resolver backed by a catalog. The concrete symbols of a
// namespace are collected once, on first use, and kept for the life of the
// process. Concurrent first uses may both scan; the first stored result wins.
type Index struct {
	cat    *catalog.Catalog
	scans  sync.Map // namespace -> []*typegraph.Symbol
	onScan func(namespace string, found int)
}

// Option configures an Index.
type Option func(*Index)

// WithScanHook calls fn after every namespace scan, including redundant ones.
func WithScanHook(fn func(namespace string, found int)) Option {
	return func(ix *Index) { ix.onScan = fn }
}

// NewIndex creates an index over cat.
func NewIndex(cat *catalog.Catalog, opts ...Option) *Index {
	ix := &Index{cat: cat}
	for _, opt := range opts {
		opt(ix)
	}
	return ix
}

var (
	defaultIndex *Index
	defaultOnce  sync.Once
)

// Default returns the index over the default catalog.
func Default() *Index {
	defaultOnce.Do(func() {
		defaultIndex = NewIndex(catalog.Default())
	})
	return defaultIndex
}

// Resolve returns the concrete subtypes of abstract known in namespace.
func (ix *Index) Resolve(abstract *typegraph.Symbol, namespace string) ([]*typegraph.Symbol, error) {
	var out []*typegraph.Symbol
	for _, sym := range ix.concrete(namespace) {
		if sym.IsSubtypeOf(abstract) {
			out = append(out, sym)
		}
	}
	if len(out) == 0 {
		return nil, NewNoConcreteSubclassError(abstract.Name(), namespace)
	}
	return out, nil
}

func (ix *Index) concrete(namespace string) []*typegraph.Symbol {
	if v, ok := ix.scans.Load(namespace); ok {
		return v.([]*typegraph.Symbol)
	}
	found := ix.cat.Concrete(namespace)
	sort.Slice(found, func(i, j int) bool { return found[i].Name() < found[j].Name() })
	if ix.onScan != nil {
		ix.onScan(namespace, len(found))
	}
	v, _ := ix.scans.LoadOrStore(namespace, found)
	return v.([]*typegraph.Symbol)
}

// Static is a Resolver over a fixed list of candidates, for tests and for
// callers that know their implementations up front.
type Static []*typegraph.Symbol

// Resolve returns the candidates that are subtypes of abstract and lie in
// namespace.
func (s Static) Resolve(abstract *typegraph.Symbol, namespace string) ([]*typegraph.Symbol, error) {
	var out []*typegraph.Symbol
	for _, sym := range s {
		if typegraph.InNamespace(sym.Package(), namespace) && sym.IsSubtypeOf(abstract) {
			out = append(out, sym)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	if len(out) == 0 {
		return nil, NewNoConcreteSubclassError(abstract.Name(), namespace)
	}
	return out, nil
}
