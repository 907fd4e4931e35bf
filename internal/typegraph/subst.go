package typegraph

// Subst maps a declared type parameter name to its instantiation. A nil entry
// means the parameter is known but unconstrained.
type Subst map[string]*Node

// ResolveParams pairs declared type parameters with supplied arguments by
// position. Parameters without an argument, or with a wildcard, map to nil.
func ResolveParams(declared []string, supplied []Slot) Subst {
	out := make(Subst, len(declared))
	for i, name := range declared {
		if i < len(supplied) && supplied[i].Node != nil {
			n := *supplied[i].Node
			out[name] = &n
			continue
		}
		out[name] = nil
	}
	return out
}

// Substitute replaces every type parameter reference in n. A reference whose
// entry is nil becomes Any. A name missing from subst is an error.
func Substitute(n Node, subst Subst) (Node, error) {
	return substitute(n, subst, n)
}

func substitute(n Node, subst Subst, root Node) (Node, error) {
	if n.IsParam() {
		name := n.symbol.name
		bound, ok := subst[name]
		if !ok {
			return Node{}, NewUnresolvedTypeParameterError(name, root.String())
		}
		if bound == nil {
			return Node{symbol: Any, nullable: n.nullable}, nil
		}
		out := *bound
		out.nullable = out.nullable || n.nullable
		return out, nil
	}
	if len(n.args) == 0 {
		return n, nil
	}
	args := make([]Slot, len(n.args))
	for i, a := range n.args {
		if a.Node == nil {
			args[i] = a
			continue
		}
		sub, err := substitute(*a.Node, subst, root)
		if err != nil {
			return Node{}, err
		}
		args[i] = Slot{Variance: a.Variance, Node: &sub}
	}
	n.args = args
	return n, nil
}

// HasParams reports whether n references any type parameter.
func HasParams(n Node) bool {
	if n.IsParam() {
		return true
	}
	for _, a := range n.args {
		if a.Node != nil && HasParams(*a.Node) {
			return true
		}
	}
	return false
}
