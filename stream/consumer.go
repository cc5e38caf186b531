package stream

import (
	"bytes"

	"github.com/signadot/yson-format/go-yson/format"
)

// Consumer receives the event stream produced by a parser or by
// application code. Implementations include Writer, Recorder, and
// node.TreeBuilder. The contract itself holds no state; side effects are
// confined to whatever sink the consumer wraps.
type Consumer interface {
	OnStringScalar(value []byte) error
	OnInt64Scalar(value int64) error
	OnUint64Scalar(value uint64) error
	OnDoubleScalar(value float64) error
	OnBooleanScalar(value bool) error
	OnEntity() error

	OnBeginList() error
	OnListItem() error
	OnEndList() error

	OnBeginMap() error
	OnKeyedItem(key []byte) error
	OnEndMap() error

	OnBeginAttributes() error
	OnEndAttributes() error

	// OnRaw carries pre-encoded bytes together with the stream kind
	// they represent.
	OnRaw(raw []byte, kind format.StreamKind) error
}

// ApplyRaw replays pre-encoded bytes through c's ordinary event path by
// re-parsing them. Consumers without a verbatim fast path delegate OnRaw
// here, so every consumer handles raw input correctly.
func ApplyRaw(c Consumer, raw []byte, kind format.StreamKind) error {
	return NewParser(bytes.NewReader(raw), kind).Parse(c)
}
