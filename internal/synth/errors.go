package synth

import (
	"fmt"
	"strings"
)

// UnresolvedTypeGraphError indicates a node no synthesis rule can handle.
type UnresolvedTypeGraphError struct {
	Type   string
	Reason string
}

func (e *UnresolvedTypeGraphError) Error() string {
	return fmt.Sprintf("cannot create dummy for type %s: %s", e.Type, e.Reason)
}

// NewUnresolvedTypeGraphError creates an UnresolvedTypeGraphError.
func NewUnresolvedTypeGraphError(typ, reason string) *UnresolvedTypeGraphError {
	return &UnresolvedTypeGraphError{Type: typ, Reason: reason}
}

// UnsupportedFunctionArityError indicates a function type with three or more
// arguments.
type UnsupportedFunctionArityError struct {
	Type  string
	Arity int
}

func (e *UnsupportedFunctionArityError) Error() string {
	return fmt.Sprintf("cannot create dummy for function type %s: %d arguments given, at most %d are supported",
		e.Type, e.Arity, MaxFuncArity)
}

// NoMatchingConstructorError indicates that no constructor or factory accepts
// every argument override.
type NoMatchingConstructorError struct {
	Type string
	Keys []string
}

func (e *NoMatchingConstructorError) Error() string {
	return fmt.Sprintf("cannot construct test instance for type %s as no constructor or factory matches the provided overrides: [%s]",
		e.Type, strings.Join(e.Keys, ", "))
}

// Attempt records one rejected creator call.
type Attempt struct {
	Creator string
	Args    []string // rendered argument values
	Err     error
}

func (a Attempt) String() string {
	return fmt.Sprintf("%s with arguments [%s]: %T(%q)", a.Creator, strings.Join(a.Args, ", "), a.Err, a.Err.Error())
}

// ConstructionFailedError indicates that every candidate creator rejected its
// arguments. Attempts are in the order they were made.
type ConstructionFailedError struct {
	Type     string
	Keys     []string
	Attempts []Attempt
}

func (e *ConstructionFailedError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "failed to create test instance for type %s", e.Type)
	if len(e.Keys) > 0 {
		fmt.Fprintf(&b, " with overrides [%s]", strings.Join(e.Keys, ", "))
	}
	b.WriteString(".\n\nthe following creators have been tried:")
	for _, a := range e.Attempts {
		b.WriteString("\n- ")
		b.WriteString(a.String())
	}
	return b.String()
}

// InternalConstructionError indicates a creator call that failed for reasons
// other than the creator's own validation, such as an argument of the wrong
// type. It is not retried with other creators.
type InternalConstructionError struct {
	Type    string
	Keys    []string // argument overrides of the request
	Creator string
	Args    []string
	Err     error
}

func (e *InternalConstructionError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "failed to create test instance for type %s", e.Type)
	if len(e.Keys) > 0 {
		fmt.Fprintf(&b, " with overrides [%s]", strings.Join(e.Keys, ", "))
	}
	fmt.Fprintf(&b, " with %s and arguments [%s] - looks like a framework bug: %v",
		e.Creator, strings.Join(e.Args, ", "), e.Err)
	return b.String()
}

func (e *InternalConstructionError) Unwrap() error { return e.Err }

// InvalidOverrideError indicates an override value that does not fit the type
// it replaces.
type InvalidOverrideError struct {
	Type string
	Err  error
}

func (e *InvalidOverrideError) Error() string {
	return fmt.Sprintf("invalid override for type %s: %v", e.Type, e.Err)
}

func (e *InvalidOverrideError) Unwrap() error { return e.Err }

// DepthExceededError indicates recursion beyond the configured depth, which
// in practice means a self-referential type graph.
type DepthExceededError struct {
	Type  string
	Depth int
}

func (e *DepthExceededError) Error() string {
	return fmt.Sprintf("cannot create dummy for type %s: nesting exceeds %d levels; "+
		"the type is probably recursive, make the recursive field nullable or override it", e.Type, e.Depth)
}

// PanicError wraps a panic raised by a creator.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
