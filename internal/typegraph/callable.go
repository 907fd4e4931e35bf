package typegraph

import (
	"fmt"
	"reflect"
	"strings"
)

// CallableKind distinguishes constructors from factory functions.
type CallableKind int

const (
	Constructor CallableKind = iota
	Factory
)

func (k CallableKind) String() string {
	if k == Factory {
		return "factory"
	}
	return "constructor"
}

// Parameter is a named, typed callable parameter. Types may reference the
// owner's type parameters.
type Parameter struct {
	Name string
	Type Node
}

// Callable is a constructor-like way to produce an instance of a symbol.
//
// Invoke receives one value per parameter, already of the parameter's runtime
// type. It returns the callable's own rejection as a plain error, and an
// *ArgumentError when the arguments do not fit the callable at all.
type Callable struct {
	Name     string
	Kind     CallableKind
	Public   bool
	Implicit bool // struct literal rather than a registered function
	Params   []Parameter
	Result   Node
	Invoke   func(args []reflect.Value) (reflect.Value, error)
}

// ParamNames returns the parameter names in declaration order.
func (c *Callable) ParamNames() []string {
	names := make([]string, len(c.Params))
	for i, p := range c.Params {
		names[i] = p.Name
	}
	return names
}

// Accepts reports whether every key names one of the parameters.
func (c *Callable) Accepts(keys []string) bool {
	for _, k := range keys {
		found := false
		for _, p := range c.Params {
			if p.Name == k {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (c *Callable) String() string {
	var b strings.Builder
	b.WriteString(c.Kind.String())
	b.WriteString(" ")
	b.WriteString(c.Name)
	lb, sep, rb := "(", ", ", ")"
	if c.Implicit {
		lb, sep, rb = "{", "; ", "}"
	}
	b.WriteString(lb)
	for i, p := range c.Params {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(p.Name)
		b.WriteString(" ")
		b.WriteString(p.Type.String())
	}
	b.WriteString(rb)
	return b.String()
}

// ArgumentError reports an argument whose runtime type the callable cannot
// accept.
type ArgumentError struct {
	Callable string
	Index    int
	Want     reflect.Type
	Got      reflect.Type
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("argument %d of %s: cannot use %s as %s", e.Index, e.Callable, e.Got, e.Want)
}

// NewArgumentError creates a new ArgumentError.
func NewArgumentError(callable string, index int, want, got reflect.Type) *ArgumentError {
	return &ArgumentError{Callable: callable, Index: index, Want: want, Got: got}
}
