package typegraph

// Kind classifies a symbol for synthesis dispatch.
// The set is closed: every symbol carries exactly one kind and the engine
// switches on it instead of probing types with open-ended checks.
type Kind int

const (
	KindInvalid Kind = iota

	// Well-known scalar and value identities.
	KindAny
	KindError
	KindBool
	KindInt
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindUintptr
	KindFloat32
	KindFloat64
	KindComplex64
	KindComplex128
	KindChar
	KindString
	KindBigInt
	KindBigFloat
	KindBigRat
	KindTime
	KindDate
	KindTimeOfDay
	KindDateTime
	KindDuration
	KindLocation
	KindZoneOffset
	KindMonth
	KindWeekday
	KindCurrency
	KindLocale
	KindUUID

	KindTypeToken
	KindEnum
	KindSingleton
	KindArray      // variable-length sequence (Go slice)
	KindFixedArray // Go [N]T
	KindList
	KindSet
	KindMap
	KindStream
	KindFunc
	KindSealed
	KindAbstract
	KindPointer
	KindObject
	KindParam // reference to a declared type parameter
)

var kindNames = [...]string{
	KindInvalid:    "invalid",
	KindAny:        "any",
	KindError:      "error",
	KindBool:       "bool",
	KindInt:        "int",
	KindInt8:       "int8",
	KindInt16:      "int16",
	KindInt32:      "int32",
	KindInt64:      "int64",
	KindUint:       "uint",
	KindUint8:      "uint8",
	KindUint16:     "uint16",
	KindUint32:     "uint32",
	KindUint64:     "uint64",
	KindUintptr:    "uintptr",
	KindFloat32:    "float32",
	KindFloat64:    "float64",
	KindComplex64:  "complex64",
	KindComplex128: "complex128",
	KindChar:       "char",
	KindString:     "string",
	KindBigInt:     "bigint",
	KindBigFloat:   "bigfloat",
	KindBigRat:     "bigrat",
	KindTime:       "time",
	KindDate:       "date",
	KindTimeOfDay:  "timeofday",
	KindDateTime:   "datetime",
	KindDuration:   "duration",
	KindLocation:   "location",
	KindZoneOffset: "zoneoffset",
	KindMonth:      "month",
	KindWeekday:    "weekday",
	KindCurrency:   "currency",
	KindLocale:     "locale",
	KindUUID:       "uuid",
	KindTypeToken:  "typetoken",
	KindEnum:       "enum",
	KindSingleton:  "singleton",
	KindArray:      "array",
	KindFixedArray: "fixedarray",
	KindList:       "list",
	KindSet:        "set",
	KindMap:        "map",
	KindStream:     "stream",
	KindFunc:       "func",
	KindSealed:     "sealed",
	KindAbstract:   "abstract",
	KindPointer:    "pointer",
	KindObject:     "object",
	KindParam:      "param",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "invalid"
	}
	return kindNames[k]
}

// IsScalar reports whether k is a well-known value identity that is
// synthesized directly rather than by structural recursion.
func (k Kind) IsScalar() bool {
	return k >= KindAny && k <= KindUUID
}

// IsNumeric reports whether k is an integer, float or complex kind.
func (k Kind) IsNumeric() bool {
	return k >= KindInt && k <= KindComplex128
}

// IsConcrete reports whether a symbol of this kind can be the target of a
// subtype lookup (it produces instances on its own).
func (k Kind) IsConcrete() bool {
	switch k {
	case KindObject, KindEnum, KindSingleton:
		return true
	}
	return k.IsScalar() && k != KindAny && k != KindError
}
