package synth

import (
	"fmt"
	"reflect"

	"github.com/funvibe/dummy/internal/typegraph"
)

// elem synthesizes one element of the i-th type argument as rt. Argument
// overrides never reach elements.
func (c *call) elem(n typegraph.Node, i int, rt reflect.Type, depth int) (reflect.Value, error) {
	v, err := c.synth(n.ArgNode(i), nil, depth+1)
	if err != nil {
		return reflect.Value{}, err
	}
	return c.conform(n, v, rt)
}

func (c *call) slice(n typegraph.Node, rt reflect.Type, depth int) (reflect.Value, error) {
	size := c.size()
	out := reflect.MakeSlice(rt, size, size)
	for i := 0; i < size; i++ {
		v, err := c.elem(n, 0, rt.Elem(), depth)
		if err != nil {
			return reflect.Value{}, err
		}
		out.Index(i).Set(v)
	}
	return out, nil
}

// array fills every element of a fixed-length array.
func (c *call) array(n typegraph.Node, rt reflect.Type, depth int) (reflect.Value, error) {
	out := reflect.New(rt).Elem()
	for i := 0; i < rt.Len(); i++ {
		v, err := c.elem(n, 0, rt.Elem(), depth)
		if err != nil {
			return reflect.Value{}, err
		}
		out.Index(i).Set(v)
	}
	return out, nil
}

func (c *call) set(n typegraph.Node, rt reflect.Type, depth int) (reflect.Value, error) {
	size := c.size()
	out := reflect.MakeMapWithSize(rt, size)
	unit := reflect.Zero(rt.Elem())
	for i := 0; i < size; i++ {
		k, err := c.elem(n, 0, rt.Key(), depth)
		if err != nil {
			return reflect.Value{}, err
		}
		if err := c.checkKey(n, k); err != nil {
			return reflect.Value{}, err
		}
		out.SetMapIndex(k, unit)
	}
	return out, nil
}

func (c *call) mapping(n typegraph.Node, rt reflect.Type, depth int) (reflect.Value, error) {
	size := c.size()
	out := reflect.MakeMapWithSize(rt, size)
	for i := 0; i < size; i++ {
		k, err := c.elem(n, 0, rt.Key(), depth)
		if err != nil {
			return reflect.Value{}, err
		}
		if err := c.checkKey(n, k); err != nil {
			return reflect.Value{}, err
		}
		v, err := c.elem(n, 1, rt.Elem(), depth)
		if err != nil {
			return reflect.Value{}, err
		}
		out.SetMapIndex(k, v)
	}
	return out, nil
}

// checkKey rejects interface keys whose dynamic value cannot be hashed.
func (c *call) checkKey(n typegraph.Node, k reflect.Value) error {
	if k.Comparable() {
		return nil
	}
	return NewUnresolvedTypeGraphError(n.String(), fmt.Sprintf("key of type %s is not comparable", k.Elem().Type()))
}

// stream builds a closed, fully buffered channel, or an iter.Seq over the
// synthesized elements.
func (c *call) stream(n typegraph.Node, rt reflect.Type, depth int) (reflect.Value, error) {
	size := c.size()
	var elemType reflect.Type
	switch rt.Kind() {
	case reflect.Chan:
		elemType = rt.Elem()
	case reflect.Func:
		elemType = rt.In(0).In(0)
	default:
		return reflect.Value{}, NewUnresolvedTypeGraphError(n.String(), fmt.Sprintf("stream of Go type %s", rt))
	}
	vals := make([]reflect.Value, size)
	for i := range vals {
		v, err := c.elem(n, 0, elemType, depth)
		if err != nil {
			return reflect.Value{}, err
		}
		vals[i] = v
	}

	if rt.Kind() == reflect.Func {
		return reflect.MakeFunc(rt, func(args []reflect.Value) []reflect.Value {
			yield := args[0]
			for _, v := range vals {
				if !yield.Call([]reflect.Value{v})[0].Bool() {
					break
				}
			}
			return nil
		}), nil
	}

	chanType := rt
	if rt.ChanDir() != reflect.BothDir {
		chanType = reflect.ChanOf(reflect.BothDir, elemType)
	}
	ch := reflect.MakeChan(chanType, size)
	for _, v := range vals {
		ch.Send(v)
	}
	ch.Close()
	return ch.Convert(rt), nil
}
