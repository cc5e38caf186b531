package node

import (
	"fmt"
	"math"
	"sort"
)

// Keys used when a value carrying attributes must round-trip through a
// plain map, as in JSON, YAML, or CBOR documents.
const (
	AttrsKey = "$attributes"
	ValueKey = "$value"
)

// ToAny converts a tree to plain Go values: nil, string, int64, uint64,
// float64, bool, []any, and map[string]any. A value with attributes
// becomes {"$attributes": ..., "$value": ...}.
func (n *Node) ToAny() any {
	v := n.valueToAny()
	if n.Attrs == nil {
		return v
	}
	return map[string]any{
		AttrsKey: n.Attrs.valueToAny(),
		ValueKey: v,
	}
}

func (n *Node) valueToAny() any {
	switch n.Kind {
	case EntityKind:
		return nil
	case StringKind:
		return string(n.Bytes)
	case Int64Kind:
		return n.Int64
	case Uint64Kind:
		return n.Uint64
	case DoubleKind:
		return n.Double
	case BoolKind:
		return n.Bool
	case ListKind:
		vs := make([]any, len(n.Values))
		for i, v := range n.Values {
			vs[i] = v.ToAny()
		}
		return vs
	case MapKind:
		m := make(map[string]any, len(n.Keys))
		for i, k := range n.Keys {
			m[k] = n.Values[i].ToAny()
		}
		return m
	}
	return nil
}

// FromAny converts plain Go values to a tree. Maps come back with
// sorted keys, since Go maps carry no order. A map holding exactly the
// $attributes and $value keys is unwrapped into an attributed value.
func FromAny(v any) (*Node, error) {
	switch x := v.(type) {
	case nil:
		return Entity(), nil
	case string:
		return FromString(x), nil
	case []byte:
		return FromBytes(x), nil
	case bool:
		return FromBool(x), nil
	case int:
		return FromInt64(int64(x)), nil
	case int8:
		return FromInt64(int64(x)), nil
	case int16:
		return FromInt64(int64(x)), nil
	case int32:
		return FromInt64(int64(x)), nil
	case int64:
		return FromInt64(x), nil
	case uint:
		return FromUint64(uint64(x)), nil
	case uint8:
		return FromUint64(uint64(x)), nil
	case uint16:
		return FromUint64(uint64(x)), nil
	case uint32:
		return FromUint64(uint64(x)), nil
	case uint64:
		return FromUint64(x), nil
	case float32:
		return FromFloat(float64(x)), nil
	case float64:
		return FromFloat(x), nil
	case []any:
		n := NewList()
		for _, item := range x {
			v, err := FromAny(item)
			if err != nil {
				return nil, err
			}
			n.Append(v)
		}
		return n, nil
	case map[string]any:
		if len(x) == 2 {
			if av, ok := x[AttrsKey]; ok {
				if vv, ok := x[ValueKey]; ok {
					return fromWrapped(av, vv)
				}
			}
		}
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		n := NewMap()
		for _, k := range keys {
			v, err := FromAny(x[k])
			if err != nil {
				return nil, err
			}
			n.Set(k, v)
		}
		return n, nil
	case map[any]any:
		// cbor and yaml decoders can produce interface-keyed maps.
		m := make(map[string]any, len(x))
		for k, v := range x {
			ks, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("non-string map key %v (%T)", k, k)
			}
			m[ks] = v
		}
		return FromAny(m)
	}
	return nil, fmt.Errorf("cannot convert %T to a node", v)
}

func fromWrapped(attrs, value any) (*Node, error) {
	an, err := FromAny(attrs)
	if err != nil {
		return nil, err
	}
	if an.Kind != MapKind {
		return nil, fmt.Errorf("%s must hold a map, got %s", AttrsKey, an.Kind)
	}
	vn, err := FromAny(value)
	if err != nil {
		return nil, err
	}
	return vn.WithAttrs(an), nil
}

// Equal reports whether two trees hold the same value, attributes and
// map entry order included. NaN doubles compare equal to each other.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.Kind != o.Kind {
		return false
	}
	if (n.Attrs == nil) != (o.Attrs == nil) {
		return false
	}
	if n.Attrs != nil && !n.Attrs.Equal(o.Attrs) {
		return false
	}
	switch n.Kind {
	case EntityKind:
		return true
	case StringKind:
		return string(n.Bytes) == string(o.Bytes)
	case Int64Kind:
		return n.Int64 == o.Int64
	case Uint64Kind:
		return n.Uint64 == o.Uint64
	case DoubleKind:
		if math.IsNaN(n.Double) && math.IsNaN(o.Double) {
			return true
		}
		return n.Double == o.Double
	case BoolKind:
		return n.Bool == o.Bool
	case ListKind:
		if len(n.Values) != len(o.Values) {
			return false
		}
		for i := range n.Values {
			if !n.Values[i].Equal(o.Values[i]) {
				return false
			}
		}
		return true
	case MapKind:
		if len(n.Keys) != len(o.Keys) {
			return false
		}
		for i := range n.Keys {
			if n.Keys[i] != o.Keys[i] || !n.Values[i].Equal(o.Values[i]) {
				return false
			}
		}
		return true
	}
	return false
}
