package synth

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
)

// Coerce converts an override value to t. A nil value is the zero of t.
// Besides assignment it accepts conversions within the numeric kinds that
// keep the value, conversions between types of the same kind, and a single
// level of pointer indirection in either direction.
func Coerce(v any, t reflect.Type) (reflect.Value, error) {
	if v == nil {
		return reflect.Zero(t), nil
	}
	return assign(reflect.ValueOf(v), t)
}

func assign(v reflect.Value, t reflect.Type) (reflect.Value, error) {
	if !v.IsValid() {
		return reflect.Zero(t), nil
	}
	vt := v.Type()
	switch {
	case vt == t:
		return v, nil
	case vt.AssignableTo(t):
		out := reflect.New(t).Elem()
		out.Set(v)
		return out, nil
	case convertible(vt, t):
		if isNumeric(vt.Kind()) {
			return convertNumber(v, t)
		}
		return v.Convert(t), nil
	case t.Kind() == reflect.Pointer && (vt.AssignableTo(t.Elem()) || convertible(vt, t.Elem())):
		elem, err := assign(v, t.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		p := reflect.New(t.Elem())
		p.Elem().Set(elem)
		return p, nil
	case vt.Kind() == reflect.Pointer && !v.IsNil() && (vt.Elem().AssignableTo(t) || convertible(vt.Elem(), t)):
		return assign(v.Elem(), t)
	case vt.Kind() == reflect.Pointer && v.IsNil() && canBeNil(t):
		return reflect.Zero(t), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot use %s as %s", vt, t)
}

func convertible(from, to reflect.Type) bool {
	if !from.ConvertibleTo(to) {
		return false
	}
	if isNumeric(from.Kind()) && isNumeric(to.Kind()) {
		return true
	}
	return from.Kind() == to.Kind() && from.Kind() != reflect.Pointer
}

// convertNumber converts v to the numeric type t and fails when the
// conversion would change the value. Floats may round converting to a
// narrower float, but not overflow.
func convertNumber(v reflect.Value, t reflect.Type) (reflect.Value, error) {
	zero := reflect.Zero(t)
	ok := true
	switch {
	case v.CanInt() && zero.CanInt():
		ok = !zero.OverflowInt(v.Int())
	case v.CanInt() && zero.CanUint():
		ok = v.Int() >= 0 && !zero.OverflowUint(uint64(v.Int()))
	case v.CanUint() && zero.CanInt():
		ok = v.Uint() <= math.MaxInt64 && !zero.OverflowInt(int64(v.Uint()))
	case v.CanUint() && zero.CanUint():
		ok = !zero.OverflowUint(v.Uint())
	case v.CanFloat() && zero.CanInt():
		f := v.Float()
		ok = f == math.Trunc(f) && f >= -(1<<63) && f < 1<<63 && !zero.OverflowInt(int64(f))
	case v.CanFloat() && zero.CanUint():
		f := v.Float()
		ok = f == math.Trunc(f) && f >= 0 && f < 1<<64 && !zero.OverflowUint(uint64(f))
	case v.CanFloat() && zero.CanFloat():
		ok = math.IsInf(v.Float(), 0) || !zero.OverflowFloat(v.Float())
	case v.CanComplex() && zero.CanComplex():
		ok = !zero.OverflowComplex(v.Complex())
	case zero.CanFloat():
		// integers must survive the round trip through the float
		ok = v.Convert(t).Convert(v.Type()).Equal(v)
	}
	if !ok {
		return reflect.Value{}, lossy(v, t)
	}
	return v.Convert(t), nil
}

func lossy(v reflect.Value, t reflect.Type) error {
	return fmt.Errorf("cannot use %v (%s) as %s without changing its value", v, v.Type(), t)
}

func isNumeric(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Complex128
}

// render formats argument values for failure reports. Strings are quoted.
func render(vals []reflect.Value) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		if v.IsValid() && v.Kind() == reflect.Interface && !v.IsNil() {
			v = v.Elem()
		}
		switch {
		case !v.IsValid():
			out[i] = "nil"
		case v.Kind() == reflect.String:
			out[i] = strconv.Quote(v.String())
		case !v.CanInterface():
			out[i] = v.Type().String()
		default:
			out[i] = fmt.Sprintf("%v", v.Interface())
		}
	}
	return out
}
