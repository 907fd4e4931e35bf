package typegraph

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeArity(t *testing.T) {
	_, err := New(Map, InvariantOf(Of(String)))
	require.ErrorIs(t, err, ErrArity)

	_, err = New(String, InvariantOf(Of(Int)))
	require.ErrorIs(t, err, ErrArity)

	n, err := New(Map, InvariantOf(Of(String)), OutOf(Of(Int)))
	require.NoError(t, err)
	assert.Equal(t, Out, n.Arg(1).Variance)
	assert.Equal(t, KindMap, n.Kind())
}

func TestNodeString(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want string
	}{
		{"scalar", Of(String), "string"},
		{"nullable", Of(Int).WithNullable(true), "int?"},
		{"slice", Of(Slice, Of(Uint8)), "[]uint8"},
		{"array", Of(Array(3), Of(Bool)), "[3]bool"},
		{"pointer", Of(Pointer, Of(String)), "*string"},
		{"map", MustNew(Map, InvariantOf(Of(String)), Wildcard()), "Map[string, *]"},
		{"func", Of(Func(2, 1, false), Of(Int), Of(String), Of(Bool)), "func(int, string) bool"},
		{"func multi", Of(Func(0, 2, false), Of(Int), Of(Error)), "func() (int, error)"},
		{"variance", MustNew(List, OutOf(Param("T"))), "List[out T]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.node.String())
		})
	}
}

func TestWithNullableCopies(t *testing.T) {
	base := Of(String)
	nullable := base.WithNullable(true)
	assert.False(t, base.Nullable())
	assert.True(t, nullable.Nullable())
}

func TestResolveParams(t *testing.T) {
	got := ResolveParams([]string{"K", "V", "X"}, []Slot{InvariantOf(Of(String)), Wildcard()})
	require.Len(t, got, 3)
	require.NotNil(t, got["K"])
	assert.Equal(t, String, got["K"].Symbol())
	assert.Nil(t, got["V"])
	assert.Nil(t, got["X"])
}

func TestSubstitute(t *testing.T) {
	box := NewSymbol("example.Box", KindObject, WithParams("T"))
	subst := ResolveParams([]string{"T", "U"}, []Slot{InvariantOf(Of(Int))})

	got, err := Substitute(MustNew(List, OutOf(Param("T"))), subst)
	require.NoError(t, err)
	assert.Equal(t, "List[out int]", got.String())

	got, err = Substitute(Of(box, Param("U").WithNullable(true)), subst)
	require.NoError(t, err)
	inner := got.ArgNode(0)
	assert.Equal(t, Any, inner.Symbol())
	assert.True(t, inner.Nullable())

	got, err = Substitute(Param("T").WithNullable(true), subst)
	require.NoError(t, err)
	assert.Equal(t, "int?", got.String())

	_, err = Substitute(Of(Slice, Param("Z")), subst)
	var unresolved *UnresolvedTypeParameterError
	require.True(t, errors.As(err, &unresolved))
	assert.Equal(t, "Z", unresolved.Name)
	assert.Contains(t, err.Error(), "[]Z")
}

func TestPackageOf(t *testing.T) {
	tests := map[string]string{
		"github.com/acme/app/shapes.Circle":      "github.com/acme/app/shapes",
		"shapes.Box[github.com/acme/app/x.Item]": "shapes",
		"string":                                 "",
		"gopkg.in/yaml.v3.Node":                  "gopkg.in/yaml.v3",
	}
	for in, want := range tests {
		assert.Equal(t, want, PackageOf(in), in)
	}
}

func TestInNamespace(t *testing.T) {
	assert.True(t, InNamespace("github.com/acme/app/shapes", "github.com/acme/app"))
	assert.True(t, InNamespace("github.com/acme/app", "github.com/acme/app"))
	assert.False(t, InNamespace("github.com/acme/apparel", "github.com/acme/app"))
	assert.True(t, InNamespace("anything", ""))
}

type stringer interface{ String() string }

type valueImpl struct{}

func (valueImpl) String() string { return "" }

type pointerImpl struct{}

func (*pointerImpl) String() string { return "" }

func TestIsSubtypeOf(t *testing.T) {
	iface := NewSymbol("x.Stringer", KindAbstract, WithGoType(reflect.TypeFor[stringer]()))
	byValue := NewSymbol("x.valueImpl", KindObject, WithGoType(reflect.TypeFor[valueImpl]()))
	byPointer := NewSymbol("x.pointerImpl", KindObject, WithGoType(reflect.TypeFor[pointerImpl]()))
	declared := NewSymbol("x.Declared", KindObject, WithSupertypes(iface))
	unrelated := NewSymbol("x.Other", KindObject, WithGoType(reflect.TypeFor[int]()))

	assert.True(t, byValue.IsSubtypeOf(iface))
	assert.True(t, byPointer.IsSubtypeOf(iface))
	assert.True(t, declared.IsSubtypeOf(iface))
	assert.False(t, unrelated.IsSubtypeOf(iface))
	assert.False(t, iface.IsSubtypeOf(iface))
}

func TestCreatorsHideImplicitLiteral(t *testing.T) {
	s := NewSymbol("x.T", KindObject)
	literal := &Callable{Name: "x.T", Kind: Constructor, Implicit: true}
	factory := &Callable{Name: "x.Parse", Kind: Factory}
	s.AddCreator(literal)
	s.AddCreator(factory)
	assert.Equal(t, []*Callable{literal, factory}, s.Creators())

	ctor := &Callable{Name: "x.NewT", Kind: Constructor}
	s.AddCreator(ctor)
	assert.Equal(t, []*Callable{factory, ctor}, s.Creators())
}

func TestCallableString(t *testing.T) {
	c := &Callable{
		Name:   "x.NewBox",
		Kind:   Constructor,
		Params: []Parameter{{Name: "s", Type: Of(String)}, {Name: "n", Type: Of(Int)}},
	}
	assert.Equal(t, "constructor x.NewBox(s string, n int)", c.String())
	assert.True(t, c.Accepts([]string{"n"}))
	assert.False(t, c.Accepts([]string{"n", "z"}))

	lit := &Callable{Name: "x.Box", Implicit: true, Params: c.Params}
	assert.Equal(t, "constructor x.Box{s string; n int}", lit.String())
}

func TestFuncSymbolsInterned(t *testing.T) {
	assert.Same(t, Func(1, 1, false), Func(1, 1, false))
	assert.NotSame(t, Func(1, 1, false), Func(1, 1, true))
	assert.Equal(t, 1, Func(1, 2, false).Arity())
	assert.Equal(t, 2, Func(1, 2, false).Results())
	assert.Same(t, Array(4), Array(4))
	assert.Equal(t, 4, Array(4).Len())
}

func TestKindPredicates(t *testing.T) {
	assert.True(t, KindUUID.IsScalar())
	assert.False(t, KindList.IsScalar())
	assert.True(t, KindFloat32.IsNumeric())
	assert.False(t, KindChar.IsNumeric())
	assert.True(t, KindObject.IsConcrete())
	assert.False(t, KindAbstract.IsConcrete())
	assert.False(t, KindAny.IsConcrete())
	assert.Equal(t, "fixedarray", KindFixedArray.String())
}
