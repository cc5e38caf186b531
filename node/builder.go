package node

import (
	"fmt"

	"github.com/signadot/yson-format/go-yson/format"
	"github.com/signadot/yson-format/go-yson/stream"
)

// TreeBuilder is a stream.Consumer that builds Node trees from the
// event sequence it receives. A Document stream yields one root; a
// fragment stream yields one root per top-level item.
type TreeBuilder struct {
	roots []*Node

	// stack holds open collections; isAttrs marks attributes frames,
	// which attach to the following value instead of the parent.
	stack   []*Node
	isAttrs []bool

	pendingKey   *string
	pendingAttrs *Node
}

func NewTreeBuilder() *TreeBuilder {
	return &TreeBuilder{}
}

// Root returns the single root of a document stream.
func (b *TreeBuilder) Root() (*Node, error) {
	if len(b.stack) != 0 {
		return nil, fmt.Errorf("unclosed collections: %d remaining", len(b.stack))
	}
	if len(b.roots) != 1 {
		return nil, fmt.Errorf("expected 1 root, built %d", len(b.roots))
	}
	return b.roots[0], nil
}

// Roots returns all top-level nodes built so far.
func (b *TreeBuilder) Roots() []*Node {
	return b.roots
}

func (b *TreeBuilder) top() (*Node, bool) {
	if len(b.stack) == 0 {
		return nil, false
	}
	return b.stack[len(b.stack)-1], b.isAttrs[len(b.stack)-1]
}

func (b *TreeBuilder) push(n *Node, attrs bool) {
	b.stack = append(b.stack, n)
	b.isAttrs = append(b.isAttrs, attrs)
}

func (b *TreeBuilder) pop() {
	b.stack = b.stack[:len(b.stack)-1]
	b.isAttrs = b.isAttrs[:len(b.isAttrs)-1]
}

// attach places a completed or begun value under the current parent,
// consuming any pending attributes and key.
func (b *TreeBuilder) attach(n *Node) error {
	if b.pendingAttrs != nil {
		n.Attrs = b.pendingAttrs
		b.pendingAttrs = nil
	}
	parent, _ := b.top()
	if parent == nil {
		if b.pendingKey != nil {
			// Top-level pair of a map fragment: represent it as a
			// single-entry map root.
			b.roots = append(b.roots, NewMap().Set(*b.pendingKey, n))
			b.pendingKey = nil
			return nil
		}
		b.roots = append(b.roots, n)
		return nil
	}
	switch parent.Kind {
	case MapKind:
		if b.pendingKey == nil {
			return fmt.Errorf("%w: value in map without key", stream.ErrMisuse)
		}
		parent.Set(*b.pendingKey, n)
		b.pendingKey = nil
	case ListKind:
		parent.Append(n)
	default:
		return fmt.Errorf("%w: value inside scalar", stream.ErrMisuse)
	}
	return nil
}

func (b *TreeBuilder) OnStringScalar(v []byte) error {
	return b.attach(FromBytes(append([]byte(nil), v...)))
}

func (b *TreeBuilder) OnInt64Scalar(v int64) error {
	return b.attach(FromInt64(v))
}

func (b *TreeBuilder) OnUint64Scalar(v uint64) error {
	return b.attach(FromUint64(v))
}

func (b *TreeBuilder) OnDoubleScalar(v float64) error {
	return b.attach(FromFloat(v))
}

func (b *TreeBuilder) OnBooleanScalar(v bool) error {
	return b.attach(FromBool(v))
}

func (b *TreeBuilder) OnEntity() error {
	return b.attach(Entity())
}

func (b *TreeBuilder) OnBeginList() error {
	n := NewList()
	if err := b.attach(n); err != nil {
		return err
	}
	b.push(n, false)
	return nil
}

func (b *TreeBuilder) OnListItem() error {
	return nil
}

func (b *TreeBuilder) OnEndList() error {
	n, attrs := b.top()
	if n == nil || attrs || n.Kind != ListKind {
		return fmt.Errorf("%w: unbalanced end of list", stream.ErrMisuse)
	}
	b.pop()
	return nil
}

func (b *TreeBuilder) OnBeginMap() error {
	n := NewMap()
	if err := b.attach(n); err != nil {
		return err
	}
	b.push(n, false)
	return nil
}

func (b *TreeBuilder) OnKeyedItem(key []byte) error {
	if n, _ := b.top(); n != nil && n.Kind != MapKind {
		return fmt.Errorf("%w: keyed item outside map", stream.ErrMisuse)
	}
	k := string(key)
	b.pendingKey = &k
	return nil
}

func (b *TreeBuilder) OnEndMap() error {
	n, attrs := b.top()
	if n == nil || attrs || n.Kind != MapKind {
		return fmt.Errorf("%w: unbalanced end of map", stream.ErrMisuse)
	}
	b.pop()
	return nil
}

func (b *TreeBuilder) OnBeginAttributes() error {
	// Attributes build off to the side and attach to the next value.
	b.push(NewMap(), true)
	return nil
}

func (b *TreeBuilder) OnEndAttributes() error {
	n, attrs := b.top()
	if n == nil || !attrs {
		return fmt.Errorf("%w: unbalanced end of attributes", stream.ErrMisuse)
	}
	b.pop()
	b.pendingAttrs = n
	return nil
}

func (b *TreeBuilder) OnRaw(raw []byte, kind format.StreamKind) error {
	return stream.ApplyRaw(b, raw, kind)
}
