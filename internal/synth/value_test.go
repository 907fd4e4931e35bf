package synth

import (
	"math"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/dummy/internal/typegraph"
)

func TestCoerce(t *testing.T) {
	s := "x"
	tests := []struct {
		name string
		in   any
		to   reflect.Type
		want any
	}{
		{"nil is zero", nil, reflect.TypeFor[int](), 0},
		{"identity", "a", reflect.TypeFor[string](), "a"},
		{"widening", 3, reflect.TypeFor[int64](), int64(3)},
		{"int to float", 3, reflect.TypeFor[float64](), 3.0},
		{"named", 5, reflect.TypeFor[level](), level(5)},
		{"to interface", 1, reflect.TypeFor[any](), 1},
		{"address", "x", reflect.TypeFor[*string](), &s},
		{"dereference", &s, reflect.TypeFor[string](), "x"},
		{"nil pointer", (*int)(nil), reflect.TypeFor[[]int](), []int(nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Coerce(tt.in, tt.to)
			require.NoError(t, err)
			assert.Equal(t, tt.to, v.Type())
			assert.Equal(t, tt.want, v.Interface())
		})
	}

	_, err := Coerce(42, reflect.TypeFor[string]())
	assert.EqualError(t, err, "cannot use int as string")
	_, err = Coerce("x", reflect.TypeFor[int]())
	assert.Error(t, err)
}

func TestCoerceKeepsNumericValues(t *testing.T) {
	tests := []struct {
		name string
		in   any
		to   reflect.Type
		want any
	}{
		{"narrowing in range", 200, reflect.TypeFor[uint8](), uint8(200)},
		{"unsigned to signed", uint16(7), reflect.TypeFor[int8](), int8(7)},
		{"integral float to int", 4.0, reflect.TypeFor[int](), 4},
		{"float64 to float32", 0.5, reflect.TypeFor[float32](), float32(0.5)},
		{"exact int to float32", 1 << 20, reflect.TypeFor[float32](), float32(1 << 20)},
		{"complex", complex(1, 2), reflect.TypeFor[complex64](), complex64(complex(1, 2))},
		{"through pointer", 12, reflect.TypeFor[*int8](), ptr(int8(12))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Coerce(tt.in, tt.to)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.Interface())
		})
	}
}

func TestCoerceRejectsLossyConversions(t *testing.T) {
	tests := []struct {
		name string
		in   any
		to   reflect.Type
	}{
		{"int overflows uint8", 300, reflect.TypeFor[uint8]()},
		{"int overflows int8", -129, reflect.TypeFor[int8]()},
		{"negative to unsigned", -1, reflect.TypeFor[uint]()},
		{"unsigned overflows int64", uint64(math.MaxUint64), reflect.TypeFor[int64]()},
		{"uint overflows uint16", uint32(1 << 16), reflect.TypeFor[uint16]()},
		{"fractional float to int", 3.9, reflect.TypeFor[int]()},
		{"negative float to unsigned", -2.0, reflect.TypeFor[uint32]()},
		{"float overflows int32", 1e10, reflect.TypeFor[int32]()},
		{"NaN to int", math.NaN(), reflect.TypeFor[int]()},
		{"float64 overflows float32", 1e300, reflect.TypeFor[float32]()},
		{"int loses float64 precision", int64(1<<53 + 1), reflect.TypeFor[float64]()},
		{"complex128 overflows complex64", complex(1e300, 0), reflect.TypeFor[complex64]()},
		{"through pointer", 300, reflect.TypeFor[*uint8]()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Coerce(tt.in, tt.to)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "without changing its value")
		})
	}
}

func ptr[T any](v T) *T { return &v }

func TestRender(t *testing.T) {
	var e error
	got := render([]reflect.Value{
		reflect.ValueOf("a"),
		{},
		reflect.ValueOf(3),
		reflect.ValueOf(&e).Elem(),
		reflect.ValueOf([]any{"b"}).Index(0),
	})
	assert.Equal(t, []string{`"a"`, "nil", "3", "<nil>", `"b"`}, got)
}

func TestRuntimeType(t *testing.T) {
	tests := []struct {
		name string
		node typegraph.Node
		want reflect.Type
	}{
		{"scalar", typegraph.Of(typegraph.Int), reflect.TypeFor[int]()},
		{"nullable scalar", typegraph.Of(typegraph.Int).WithNullable(true), reflect.TypeFor[*int]()},
		{"nullable slice", typegraph.Of(typegraph.Slice, typegraph.Of(typegraph.Int)).WithNullable(true), reflect.TypeFor[[]int]()},
		{"list", typegraph.Of(typegraph.List, typegraph.Of(typegraph.String)), reflect.TypeFor[[]string]()},
		{"array", typegraph.Of(typegraph.Array(2), typegraph.Of(typegraph.Bool)), reflect.TypeFor[[2]bool]()},
		{"set", typegraph.Of(typegraph.Set, typegraph.Of(typegraph.Int)), reflect.TypeFor[map[int]struct{}]()},
		{"map", typegraph.Of(typegraph.Map, typegraph.Of(typegraph.String), typegraph.Of(typegraph.Any)), reflect.TypeFor[map[string]any]()},
		{"stream", typegraph.Of(typegraph.Stream, typegraph.Of(typegraph.Int)), reflect.TypeFor[<-chan int]()},
		{"pointer", typegraph.Of(typegraph.Pointer, typegraph.Of(typegraph.String)), reflect.TypeFor[*string]()},
		{"func", typegraph.Of(typegraph.Func(1, 1, false), typegraph.Of(typegraph.Int), typegraph.Of(typegraph.String)), reflect.TypeFor[func(int) string]()},
		{"variadic", typegraph.Of(typegraph.Func(1, 0, true), typegraph.Of(typegraph.Slice, typegraph.Of(typegraph.Int))), reflect.TypeFor[func(...int)]()},
		{"token", typegraph.Raw(typegraph.TypeToken), reflect.TypeFor[reflect.Type]()},
		{"declared", typegraph.Of(typegraph.NewSymbol("example.Thing", typegraph.KindObject)), reflect.TypeFor[any]()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RuntimeType(tt.node)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := RuntimeType(typegraph.Of(typegraph.Set, typegraph.Of(typegraph.Slice, typegraph.Of(typegraph.Int))))
	assert.Error(t, err, "slices are not comparable")
	_, err = RuntimeType(typegraph.Of(typegraph.Func(1, 0, true), typegraph.Of(typegraph.Int)))
	assert.Error(t, err, "variadic parameter must be a slice")
}
