package typegraph

import (
	"errors"
	"fmt"
)

// ErrArity is returned when a node's type arguments do not match its
// identity's declared type parameters.
var ErrArity = errors.New("type argument count mismatch")

// UnresolvedTypeParameterError indicates a type parameter reference with no
// substitution at the point it is used.
type UnresolvedTypeParameterError struct {
	Name string
	In   string
}

func (e *UnresolvedTypeParameterError) Error() string {
	if e.In == "" {
		return fmt.Sprintf("cannot resolve type parameter %s", e.Name)
	}
	return fmt.Sprintf("cannot resolve type parameter %s in %s", e.Name, e.In)
}

// NewUnresolvedTypeParameterError creates an UnresolvedTypeParameterError
// for the parameter name referenced in the type in.
func NewUnresolvedTypeParameterError(name, in string) *UnresolvedTypeParameterError {
	return &UnresolvedTypeParameterError{Name: name, In: in}
}
