package typegraph

import (
	"fmt"
	"math/big"
	"reflect"
	"sync"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

// Well-known scalar identities. Their Go runtime types are fixed.
var (
	Any        = NewSymbol("any", KindAny, WithGoType(reflect.TypeFor[any]()))
	Error      = NewSymbol("error", KindError, WithGoType(reflect.TypeFor[error]()))
	Bool       = NewSymbol("bool", KindBool, WithGoType(reflect.TypeFor[bool]()))
	Int        = NewSymbol("int", KindInt, WithGoType(reflect.TypeFor[int]()))
	Int8       = NewSymbol("int8", KindInt8, WithGoType(reflect.TypeFor[int8]()))
	Int16      = NewSymbol("int16", KindInt16, WithGoType(reflect.TypeFor[int16]()))
	Int32      = NewSymbol("int32", KindInt32, WithGoType(reflect.TypeFor[int32]()))
	Int64      = NewSymbol("int64", KindInt64, WithGoType(reflect.TypeFor[int64]()))
	Uint       = NewSymbol("uint", KindUint, WithGoType(reflect.TypeFor[uint]()))
	Uint8      = NewSymbol("uint8", KindUint8, WithGoType(reflect.TypeFor[uint8]()))
	Uint16     = NewSymbol("uint16", KindUint16, WithGoType(reflect.TypeFor[uint16]()))
	Uint32     = NewSymbol("uint32", KindUint32, WithGoType(reflect.TypeFor[uint32]()))
	Uint64     = NewSymbol("uint64", KindUint64, WithGoType(reflect.TypeFor[uint64]()))
	Uintptr    = NewSymbol("uintptr", KindUintptr, WithGoType(reflect.TypeFor[uintptr]()))
	Float32    = NewSymbol("float32", KindFloat32, WithGoType(reflect.TypeFor[float32]()))
	Float64    = NewSymbol("float64", KindFloat64, WithGoType(reflect.TypeFor[float64]()))
	Complex64  = NewSymbol("complex64", KindComplex64, WithGoType(reflect.TypeFor[complex64]()))
	Complex128 = NewSymbol("complex128", KindComplex128, WithGoType(reflect.TypeFor[complex128]()))
	Char       = NewSymbol("rune", KindChar, WithGoType(reflect.TypeFor[rune]()))
	String     = NewSymbol("string", KindString, WithGoType(reflect.TypeFor[string]()))

	BigInt   = NewSymbol("math/big.Int", KindBigInt, WithGoType(reflect.TypeFor[*big.Int]()))
	BigFloat = NewSymbol("math/big.Float", KindBigFloat, WithGoType(reflect.TypeFor[*big.Float]()))
	BigRat   = NewSymbol("math/big.Rat", KindBigRat, WithGoType(reflect.TypeFor[*big.Rat]()))

	Time       = NewSymbol("time.Time", KindTime, WithGoType(reflect.TypeFor[time.Time]()))
	Date       = NewSymbol("cloud.google.com/go/civil.Date", KindDate, WithGoType(reflect.TypeFor[civil.Date]()))
	TimeOfDay  = NewSymbol("cloud.google.com/go/civil.Time", KindTimeOfDay, WithGoType(reflect.TypeFor[civil.Time]()))
	DateTime   = NewSymbol("cloud.google.com/go/civil.DateTime", KindDateTime, WithGoType(reflect.TypeFor[civil.DateTime]()))
	Duration   = NewSymbol("time.Duration", KindDuration, WithGoType(reflect.TypeFor[time.Duration]()))
	Location   = NewSymbol("time.Location", KindLocation, WithGoType(reflect.TypeFor[*time.Location]()))
	ZoneOffset = NewSymbol("time.ZoneOffset", KindZoneOffset, WithGoType(reflect.TypeFor[*time.Location]()))
	Month      = NewSymbol("time.Month", KindMonth, WithGoType(reflect.TypeFor[time.Month]()))
	Weekday    = NewSymbol("time.Weekday", KindWeekday, WithGoType(reflect.TypeFor[time.Weekday]()))

	Currency = NewSymbol("golang.org/x/text/currency.Unit", KindCurrency, WithGoType(reflect.TypeFor[currency.Unit]()))
	Locale   = NewSymbol("golang.org/x/text/language.Tag", KindLocale, WithGoType(reflect.TypeFor[language.Tag]()))
	UUID     = NewSymbol("github.com/google/uuid.UUID", KindUUID, WithGoType(reflect.TypeFor[uuid.UUID]()))
)

// Structural identities. Their runtime type is derived from the node's
// arguments.
var (
	TypeToken = NewSymbol("reflect.Type", KindTypeToken, WithParams("T"))
	List      = NewSymbol("List", KindList, WithParams("E"))
	Set       = NewSymbol("Set", KindSet, WithParams("E"))
	Map       = NewSymbol("Map", KindMap, WithParams("K", "V"))
	Stream    = NewSymbol("Stream", KindStream, WithParams("E"))
	Slice     = NewSymbol("[]", KindArray, WithParams("E"))
	Pointer   = NewSymbol("*", KindPointer, WithParams("T"))
)

var builtins = map[string]*Symbol{}

func init() {
	for _, s := range []*Symbol{
		Any, Error, Bool, Int, Int8, Int16, Int32, Int64,
		Uint, Uint8, Uint16, Uint32, Uint64, Uintptr,
		Float32, Float64, Complex64, Complex128, Char, String,
		BigInt, BigFloat, BigRat,
		Time, Date, TimeOfDay, DateTime, Duration, Location, ZoneOffset, Month, Weekday,
		Currency, Locale, UUID,
		TypeToken, List, Set, Map, Stream, Slice, Pointer,
	} {
		builtins[s.name] = s
	}
	builtins["byte"] = Uint8
	builtins["char"] = Char
}

// Builtin looks up a well-known symbol by name ("string", "time.Duration",
// "github.com/google/uuid.UUID", ...).
func Builtin(name string) (*Symbol, bool) {
	s, ok := builtins[name]
	return s, ok
}

type funcKey struct {
	arity, results int
	variadic       bool
}

var (
	funcMu      sync.Mutex
	funcSymbols = map[funcKey]*Symbol{}

	arrayMu      sync.Mutex
	arraySymbols = map[int]*Symbol{}

	paramMu      sync.Mutex
	paramSymbols = map[string]*Symbol{}
)

// Func returns the function identity for the given number of arguments and
// results. The symbol's parameters are the argument types (A1..An) followed
// by the result types (R1..Rm).
func Func(arity, results int, variadic bool) *Symbol {
	funcMu.Lock()
	defer funcMu.Unlock()
	key := funcKey{arity, results, variadic}
	if s, ok := funcSymbols[key]; ok {
		return s
	}
	params := make([]string, 0, arity+results)
	for i := 1; i <= arity; i++ {
		params = append(params, fmt.Sprintf("A%d", i))
	}
	for i := 1; i <= results; i++ {
		params = append(params, fmt.Sprintf("R%d", i))
	}
	name := fmt.Sprintf("Func%d", arity)
	if results != 1 {
		name = fmt.Sprintf("Func%d_%d", arity, results)
	}
	if variadic {
		name += "..."
	}
	s := NewSymbol(name, KindFunc, WithParams(params...), WithArity(arity))
	s.variadic = variadic
	funcSymbols[key] = s
	return s
}

// Array returns the fixed-length array identity [n]E.
func Array(n int) *Symbol {
	arrayMu.Lock()
	defer arrayMu.Unlock()
	if s, ok := arraySymbols[n]; ok {
		return s
	}
	s := NewSymbol(fmt.Sprintf("[%d]", n), KindFixedArray, WithParams("E"))
	s.length = n
	arraySymbols[n] = s
	return s
}

// ParamSymbol returns the interned reference symbol for type parameter name.
func ParamSymbol(name string) *Symbol {
	paramMu.Lock()
	defer paramMu.Unlock()
	if s, ok := paramSymbols[name]; ok {
		return s
	}
	s := NewSymbol(name, KindParam)
	paramSymbols[name] = s
	return s
}

// Variadic reports whether a function identity takes a trailing variadic argument.
func (s *Symbol) Variadic() bool { return s.variadic }

// Len returns the length of a fixed-array identity.
func (s *Symbol) Len() int { return s.length }

// Results returns the number of results of a function identity.
func (s *Symbol) Results() int {
	if s.kind != KindFunc {
		return 0
	}
	return len(s.params) - s.arity
}
