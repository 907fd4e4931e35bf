package dummy

import (
	"github.com/funvibe/dummy/internal/config"
	"github.com/funvibe/dummy/internal/subtype"
	"github.com/funvibe/dummy/internal/synth"
	"github.com/funvibe/dummy/internal/typegraph"
)

// Type graph model, for describing types that have no Go declaration.
type (
	Node      = typegraph.Node
	Slot      = typegraph.Slot
	Symbol    = typegraph.Symbol
	Kind      = typegraph.Kind
	Callable  = typegraph.Callable
	Parameter = typegraph.Parameter
)

// Config is the content of dummy.yaml.
type Config = config.Config

// LoadConfig reads a dummy.yaml file.
func LoadConfig(path string) (*Config, error) { return config.LoadConfig(path) }

var (
	NewSymbol      = typegraph.NewSymbol
	WithParams     = typegraph.WithParams
	WithGoType     = typegraph.WithGoType
	WithSupertypes = typegraph.WithSupertypes

	Builtin = typegraph.Builtin

	NewNode     = typegraph.New
	MustNewNode = typegraph.MustNew

	Of       = typegraph.Of
	Raw      = typegraph.Raw
	Param    = typegraph.Param
	OutOf    = typegraph.OutOf
	InOf     = typegraph.InOf
	Wildcard = typegraph.Wildcard

	// TypeToken describes reflect.Type values. With an OutOf argument the
	// token names a concrete implementation of the argument.
	TypeToken = typegraph.TypeToken
)

const (
	KindObject   = typegraph.KindObject
	KindAbstract = typegraph.KindAbstract

	Constructor = typegraph.Constructor
	Factory     = typegraph.Factory
)

// Errors reported by Fixed, Random and Synthesize. Use errors.As to inspect
// them.
type (
	UnresolvedTypeGraphError      = synth.UnresolvedTypeGraphError
	UnresolvedTypeParameterError  = typegraph.UnresolvedTypeParameterError
	UnsupportedFunctionArityError = synth.UnsupportedFunctionArityError
	NoMatchingConstructorError    = synth.NoMatchingConstructorError
	ConstructionFailedError       = synth.ConstructionFailedError
	InternalConstructionError     = synth.InternalConstructionError
	InvalidOverrideError          = synth.InvalidOverrideError
	DepthExceededError            = synth.DepthExceededError
	NoConcreteSubclassError       = subtype.NoConcreteSubclassError
	PanicError                    = synth.PanicError
	Attempt                       = synth.Attempt
)
