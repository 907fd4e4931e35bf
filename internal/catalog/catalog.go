package catalog

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/funvibe/dummy/internal/typegraph"
)

// Catalog is the registry of known type identities. Symbols are keyed by the
// Go runtime type they describe and by qualified name; declared symbols that
// have no Go type are only reachable by name.
type Catalog struct {
	mu     sync.RWMutex
	byType map[reflect.Type]*typegraph.Symbol
	byName map[string]*typegraph.Symbol
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{
		byType: make(map[reflect.Type]*typegraph.Symbol),
		byName: make(map[string]*typegraph.Symbol),
	}
}

var (
	defaultCatalog *Catalog
	defaultOnce    sync.Once
)

// Default returns the process-wide catalog used by registration helpers.
func Default() *Catalog {
	defaultOnce.Do(func() {
		defaultCatalog = New()
	})
	return defaultCatalog
}

// Bind associates t with sym unless t is already bound, and returns the
// symbol that ends up bound. The second result reports whether sym was stored.
func (c *Catalog) Bind(t reflect.Type, sym *typegraph.Symbol) (*typegraph.Symbol, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.byType[t]; ok {
		return existing, false
	}
	c.byType[t] = sym
	if _, ok := c.byName[sym.Name()]; !ok {
		c.byName[sym.Name()] = sym
	}
	return sym, true
}

// Add registers a declared symbol by name.
func (c *Catalog) Add(sym *typegraph.Symbol) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.byName[sym.Name()]; ok && existing != sym {
		return fmt.Errorf("symbol %s already declared", sym.Name())
	}
	c.byName[sym.Name()] = sym
	if t := sym.GoType(); t != nil {
		if _, ok := c.byType[t]; !ok {
			c.byType[t] = sym
		}
	}
	return nil
}

// Lookup returns the symbol bound to t.
func (c *Catalog) Lookup(t reflect.Type) (*typegraph.Symbol, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	sym, ok := c.byType[t]
	return sym, ok
}

// LookupName returns the symbol with the given qualified name, falling back
// to the well-known builtins.
func (c *Catalog) LookupName(name string) (*typegraph.Symbol, bool) {
	c.mu.RLock()
	sym, ok := c.byName[name]
	c.mu.RUnlock()
	if ok {
		return sym, true
	}
	return typegraph.Builtin(name)
}

// Symbols returns every registered symbol sorted by qualified name.
func (c *Catalog) Symbols() []*typegraph.Symbol {
	c.mu.RLock()
	out := make([]*typegraph.Symbol, 0, len(c.byName))
	for _, sym := range c.byName {
		out = append(out, sym)
	}
	c.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Concrete returns the registered symbols of a concrete kind whose package
// lies in namespace ns, sorted by qualified name.
func (c *Catalog) Concrete(ns string) []*typegraph.Symbol {
	var out []*typegraph.Symbol
	for _, sym := range c.Symbols() {
		if !sym.Kind().IsConcrete() || len(sym.Params()) > 0 {
			continue
		}
		if !typegraph.InNamespace(sym.Package(), ns) {
			continue
		}
		out = append(out, sym)
	}
	return out
}

// Len returns the number of named symbols.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byName)
}
