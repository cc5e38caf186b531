// Package node provides an in-memory tree for yson values, a consumer
// that builds trees from event streams, and replay of trees back into
// any consumer.
package node

import (
	"sort"

	"github.com/signadot/yson-format/go-yson/stream"
)

type Kind int

const (
	EntityKind Kind = iota
	StringKind
	Int64Kind
	Uint64Kind
	DoubleKind
	BoolKind
	ListKind
	MapKind
)

func (k Kind) String() string {
	return map[Kind]string{
		EntityKind: "entity",
		StringKind: "string",
		Int64Kind:  "int64",
		Uint64Kind: "uint64",
		DoubleKind: "double",
		BoolKind:   "bool",
		ListKind:   "list",
		MapKind:    "map",
	}[k]
}

// Node is one value in a tree. Maps keep their entries in insertion
// order: Keys[i] maps to Values[i]. Lists use Values only. Attrs, when
// non-nil, is a MapKind node annotating this value.
type Node struct {
	Kind Kind

	Bytes  []byte
	Int64  int64
	Uint64 uint64
	Double float64
	Bool   bool

	Keys   []string
	Values []*Node

	Attrs *Node
}

func Entity() *Node {
	return &Node{Kind: EntityKind}
}

func FromString(v string) *Node {
	return &Node{Kind: StringKind, Bytes: []byte(v)}
}

func FromBytes(v []byte) *Node {
	return &Node{Kind: StringKind, Bytes: v}
}

func FromInt64(v int64) *Node {
	return &Node{Kind: Int64Kind, Int64: v}
}

func FromUint64(v uint64) *Node {
	return &Node{Kind: Uint64Kind, Uint64: v}
}

func FromFloat(v float64) *Node {
	return &Node{Kind: DoubleKind, Double: v}
}

func FromBool(v bool) *Node {
	return &Node{Kind: BoolKind, Bool: v}
}

func FromSlice(vs []*Node) *Node {
	return &Node{Kind: ListKind, Values: vs}
}

func NewList() *Node {
	return &Node{Kind: ListKind}
}

func NewMap() *Node {
	return &Node{Kind: MapKind}
}

// FromMap builds a map node from a Go map, entries in sorted key order
// since Go maps carry none.
func FromMap(m map[string]*Node) *Node {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	n := NewMap()
	for _, k := range keys {
		n.Set(k, m[k])
	}
	return n
}

// Append adds an item to a list node.
func (n *Node) Append(v *Node) *Node {
	n.Values = append(n.Values, v)
	return n
}

// Set appends a key/value entry to a map node.
func (n *Node) Set(key string, v *Node) *Node {
	n.Keys = append(n.Keys, key)
	n.Values = append(n.Values, v)
	return n
}

// Get returns the value of the last entry with the given key in a map
// node.
func (n *Node) Get(key string) (*Node, bool) {
	for i := len(n.Keys) - 1; i >= 0; i-- {
		if n.Keys[i] == key {
			return n.Values[i], true
		}
	}
	return nil, false
}

// WithAttrs sets the attributes map of n and returns n.
func (n *Node) WithAttrs(attrs *Node) *Node {
	n.Attrs = attrs
	return n
}

// String returns the node's text-format document rendering.
func (n *Node) String() string {
	d, err := MarshalText(n)
	if err != nil {
		return "<err: " + err.Error() + ">"
	}
	return string(d)
}

// EmitTo replays the tree as an event sequence into c, attributes
// first, then the value.
func (n *Node) EmitTo(c stream.Consumer) error {
	if n.Attrs != nil {
		if err := c.OnBeginAttributes(); err != nil {
			return err
		}
		for i, k := range n.Attrs.Keys {
			if err := c.OnKeyedItem([]byte(k)); err != nil {
				return err
			}
			if err := n.Attrs.Values[i].EmitTo(c); err != nil {
				return err
			}
		}
		if err := c.OnEndAttributes(); err != nil {
			return err
		}
	}
	switch n.Kind {
	case EntityKind:
		return c.OnEntity()
	case StringKind:
		return c.OnStringScalar(n.Bytes)
	case Int64Kind:
		return c.OnInt64Scalar(n.Int64)
	case Uint64Kind:
		return c.OnUint64Scalar(n.Uint64)
	case DoubleKind:
		return c.OnDoubleScalar(n.Double)
	case BoolKind:
		return c.OnBooleanScalar(n.Bool)
	case ListKind:
		if err := c.OnBeginList(); err != nil {
			return err
		}
		for _, v := range n.Values {
			if err := c.OnListItem(); err != nil {
				return err
			}
			if err := v.EmitTo(c); err != nil {
				return err
			}
		}
		return c.OnEndList()
	case MapKind:
		if err := c.OnBeginMap(); err != nil {
			return err
		}
		for i, k := range n.Keys {
			if err := c.OnKeyedItem([]byte(k)); err != nil {
				return err
			}
			if err := n.Values[i].EmitTo(c); err != nil {
				return err
			}
		}
		return c.OnEndMap()
	}
	return nil
}
