package typegraph

import (
	"fmt"
	"strings"
)

// Variance is the use-site direction of a type argument.
type Variance int

const (
	Invariant Variance = iota
	Out                // producer position, "? extends T"
	In                 // consumer position, "? super T"
)

func (v Variance) String() string {
	switch v {
	case Out:
		return "out"
	case In:
		return "in"
	default:
		return "invariant"
	}
}

// Slot is one type argument. A nil Node is the wildcard.
type Slot struct {
	Variance Variance
	Node     *Node
}

// IsWildcard reports whether the slot carries no type.
func (s Slot) IsWildcard() bool { return s.Node == nil }

func (s Slot) String() string {
	if s.Node == nil {
		return "*"
	}
	switch s.Variance {
	case Out:
		return "out " + s.Node.String()
	case In:
		return "in " + s.Node.String()
	}
	return s.Node.String()
}

// InvariantOf returns an invariant slot holding n.
func InvariantOf(n Node) Slot { return Slot{Variance: Invariant, Node: &n} }

// OutOf returns a covariant slot holding n.
func OutOf(n Node) Slot { return Slot{Variance: Out, Node: &n} }

// InOf returns a contravariant slot holding n.
func InOf(n Node) Slot { return Slot{Variance: In, Node: &n} }

// Wildcard returns the star projection.
func Wildcard() Slot { return Slot{} }

// Node is an immutable type graph: an identity, its type arguments and a
// nullability flag.
type Node struct {
	symbol   *Symbol
	args     []Slot
	nullable bool
}

// New builds a node. For symbols with declared type parameters the number of
// slots must match.
func New(sym *Symbol, args ...Slot) (Node, error) {
	if sym == nil {
		return Node{}, fmt.Errorf("%w: nil symbol", ErrArity)
	}
	if want := len(sym.params); want > 0 && len(args) != want {
		return Node{}, fmt.Errorf("%w: %s declares %d type parameters, got %d", ErrArity, sym.name, want, len(args))
	}
	if len(sym.params) == 0 && len(args) > 0 {
		return Node{}, fmt.Errorf("%w: %s is not generic, got %d type arguments", ErrArity, sym.name, len(args))
	}
	return Node{symbol: sym, args: append([]Slot(nil), args...)}, nil
}

// MustNew is like New but panics on arity mismatch.
func MustNew(sym *Symbol, args ...Slot) Node {
	n, err := New(sym, args...)
	if err != nil {
		panic(err)
	}
	return n
}

// Of builds a node with invariant arguments.
func Of(sym *Symbol, args ...Node) Node {
	slots := make([]Slot, len(args))
	for i, a := range args {
		slots[i] = InvariantOf(a)
	}
	return MustNew(sym, slots...)
}

// Raw builds a node with a wildcard for every declared type parameter.
func Raw(sym *Symbol) Node {
	return MustNew(sym, make([]Slot, len(sym.params))...)
}

// Param builds a reference to the enclosing declaration's type parameter.
func Param(name string) Node {
	return Node{symbol: ParamSymbol(name)}
}

// Symbol returns the node's identity.
func (n Node) Symbol() *Symbol { return n.symbol }

// Kind returns the identity's kind, KindInvalid for the zero node.
func (n Node) Kind() Kind {
	if n.symbol == nil {
		return KindInvalid
	}
	return n.symbol.Kind()
}

// Args returns the type arguments.
func (n Node) Args() []Slot { return append([]Slot(nil), n.args...) }

// Arg returns the i-th type argument, or a wildcard when out of range.
func (n Node) Arg(i int) Slot {
	if i < 0 || i >= len(n.args) {
		return Wildcard()
	}
	return n.args[i]
}

// ArgNode returns the i-th argument's node, or Any for a wildcard.
func (n Node) ArgNode(i int) Node {
	if s := n.Arg(i); s.Node != nil {
		return *s.Node
	}
	return Node{symbol: Any}
}

// Nullable reports whether null is a legal value.
func (n Node) Nullable() bool { return n.nullable }

// WithNullable returns a copy of n with the given nullability.
func (n Node) WithNullable(nullable bool) Node {
	n.nullable = nullable
	return n
}

// IsZero reports whether n is the zero node.
func (n Node) IsZero() bool { return n.symbol == nil }

// IsParam reports whether n is a type parameter reference.
func (n Node) IsParam() bool { return n.symbol != nil && n.symbol.kind == KindParam }

func (n Node) String() string {
	if n.symbol == nil {
		return "<nil>"
	}
	var b strings.Builder
	switch n.symbol.kind {
	case KindPointer:
		b.WriteString("*")
		b.WriteString(n.Arg(0).String())
	case KindArray:
		if n.symbol == Slice {
			b.WriteString("[]")
			b.WriteString(n.Arg(0).String())
			break
		}
		n.writeGeneric(&b)
	case KindFixedArray:
		if n.symbol.goType == nil {
			fmt.Fprintf(&b, "[%d]%s", n.symbol.length, n.Arg(0))
			break
		}
		n.writeGeneric(&b)
	case KindFunc:
		if n.symbol.goType != nil {
			b.WriteString(n.symbol.name)
			break
		}
		b.WriteString("func(")
		for i := 0; i < n.symbol.arity; i++ {
			if i > 0 {
				b.WriteString(", ")
			}
			if n.symbol.variadic && i == n.symbol.arity-1 {
				b.WriteString("...")
			}
			b.WriteString(n.Arg(i).String())
		}
		b.WriteString(")")
		res := n.args[n.symbol.arity:]
		switch len(res) {
		case 0:
		case 1:
			b.WriteString(" ")
			b.WriteString(res[0].String())
		default:
			b.WriteString(" (")
			for i, r := range res {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(r.String())
			}
			b.WriteString(")")
		}
	default:
		n.writeGeneric(&b)
	}
	if n.nullable {
		b.WriteString("?")
	}
	return b.String()
}

func (n Node) writeGeneric(b *strings.Builder) {
	b.WriteString(n.symbol.name)
	if len(n.args) == 0 || n.symbol.goType != nil {
		return
	}
	b.WriteString("[")
	for i, a := range n.args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.String())
	}
	b.WriteString("]")
}
