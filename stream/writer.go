package stream

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/signadot/yson-format/go-yson/debug"
	"github.com/signadot/yson-format/go-yson/format"
	"github.com/signadot/yson-format/go-yson/token"
	"github.com/signadot/yson-format/go-yson/wire"
)

// Writer is a Consumer that serializes the event stream to one wire
// representation. It owns its sink for its lifetime. The first error
// latches: every later call returns it and nothing further is written.
type Writer struct {
	w    io.Writer
	fmat format.Format
	kind format.StreamKind
	opts *writerOpts

	// stack holds the begin token of each open collection; its length
	// is the nesting depth.
	stack           []token.TokenType
	beforeFirstItem bool
	offset          int64
	err             error

	scratch []byte
}

// WriterOption configures Writer behavior.
type WriterOption func(*writerOpts)

type writerOpts struct {
	raw    bool
	indent int
}

// WithRaw enables verbatim passthrough of OnRaw bytes. Without it, raw
// input is re-parsed and replayed through the ordinary event path.
func WithRaw() WriterOption {
	return func(o *writerOpts) {
		o.raw = true
	}
}

// WithIndent sets the pretty-format indent width in spaces.
func WithIndent(n int) WriterOption {
	return func(o *writerOpts) {
		o.indent = n
	}
}

// NewWriter creates a Writer emitting representation f with top-level
// context kind to w.
func NewWriter(w io.Writer, f format.Format, kind format.StreamKind, opts ...WriterOption) *Writer {
	o := &writerOpts{indent: 2}
	for _, opt := range opts {
		opt(o)
	}
	return &Writer{
		w:               w,
		fmat:            f,
		kind:            kind,
		opts:            o,
		beforeFirstItem: true,
	}
}

// WriterState is a snapshot of a writer's structural bookkeeping: a plain
// copyable value with no ownership semantics. Capture it with State and
// resume emission into a structurally-equivalent context with Reset.
type WriterState struct {
	Depth           int
	BeforeFirstItem bool
}

// State captures the current bookkeeping.
func (w *Writer) State() WriterState {
	return WriterState{
		Depth:           len(w.stack),
		BeforeFirstItem: w.beforeFirstItem,
	}
}

// splicedFrame marks a collection the writer did not open itself: the
// caller emitted a pre-encoded prefix through raw passthrough and then
// resumed inside it with Reset. Items and end tokens are accepted at
// such a frame without knowing which collection it is.
const splicedFrame token.TokenType = -1

// Reset restores a captured state. The depth may exceed the writer's
// own nesting: frames above it are treated as spliced, so emission can
// resume inside collections opened by pre-encoded raw output.
func (w *Writer) Reset(s WriterState) error {
	if w.err != nil {
		return w.err
	}
	if s.Depth < 0 {
		return w.fail(fmt.Errorf("%w: reset to depth %d", ErrMisuse, s.Depth))
	}
	if s.Depth <= len(w.stack) {
		w.stack = w.stack[:s.Depth]
	} else {
		for len(w.stack) < s.Depth {
			w.stack = append(w.stack, splicedFrame)
		}
	}
	w.beforeFirstItem = s.BeforeFirstItem
	return nil
}

// Err returns the latched error, if any.
func (w *Writer) Err() error {
	return w.err
}

// Depth returns the current nesting depth (0 = top level).
func (w *Writer) Depth() int {
	return len(w.stack)
}

// Offset returns the byte offset in the output stream.
func (w *Writer) Offset() int64 {
	return w.offset
}

func (w *Writer) fail(err error) error {
	if w.err == nil {
		w.err = err
	}
	return w.err
}

func (w *Writer) write(d []byte) error {
	n, err := w.w.Write(d)
	w.offset += int64(n)
	if err != nil {
		return w.fail(err)
	}
	return nil
}

func (w *Writer) writeByte(c byte) error {
	w.scratch = append(w.scratch[:0], c)
	return w.write(w.scratch)
}

func (w *Writer) writeIndent() error {
	for i := 0; i < w.opts.indent*len(w.stack); i++ {
		if err := w.writeByte(' '); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) inTopLevelFragment() bool {
	return len(w.stack) == 0 && w.kind.IsFragment()
}

// endNode closes out a top-level node: in a fragment context it emits the
// kind's separator, plus a newline in the text formats. Document kind
// emits nothing.
func (w *Writer) endNode() error {
	if !w.inTopLevelFragment() {
		return nil
	}
	sep := token.ListItemSeparator
	if w.kind == format.MapFragment {
		sep = token.KeyedItemSeparator
	}
	if err := w.writeByte(sep.Char()); err != nil {
		return err
	}
	if w.fmat != format.Binary {
		return w.writeByte('\n')
	}
	return nil
}

func (w *Writer) beginCollection(t token.TokenType) error {
	if w.err != nil {
		return w.err
	}
	if err := w.writeByte(t.Char()); err != nil {
		return err
	}
	w.stack = append(w.stack, t)
	w.beforeFirstItem = true
	return nil
}

func (w *Writer) collectionItem(sep token.TokenType) error {
	if !w.inTopLevelFragment() {
		if !w.beforeFirstItem {
			if err := w.writeByte(sep.Char()); err != nil {
				return err
			}
		}
		if w.fmat == format.Pretty {
			if err := w.writeByte('\n'); err != nil {
				return err
			}
			if err := w.writeIndent(); err != nil {
				return err
			}
		}
	}
	w.beforeFirstItem = false
	return nil
}

func (w *Writer) endCollection(begin, end token.TokenType) error {
	if w.err != nil {
		return w.err
	}
	if len(w.stack) == 0 {
		return w.fail(fmt.Errorf("%w: unbalanced %s", ErrMisuse, end))
	}
	if t := w.stack[len(w.stack)-1]; t != begin && t != splicedFrame {
		return w.fail(fmt.Errorf("%w: unbalanced %s", ErrMisuse, end))
	}
	w.stack = w.stack[:len(w.stack)-1]
	if w.fmat == format.Pretty && !w.beforeFirstItem {
		if err := w.writeByte('\n'); err != nil {
			return err
		}
		if err := w.writeIndent(); err != nil {
			return err
		}
	}
	if err := w.writeByte(end.Char()); err != nil {
		return err
	}
	w.beforeFirstItem = false
	return nil
}

func (w *Writer) writeStringScalar(v []byte) error {
	if w.fmat == format.Binary {
		w.scratch = append(w.scratch[:0], token.StringMarker)
		w.scratch = wire.AppendInt32(w.scratch, int32(len(v)))
		w.scratch = append(w.scratch, v...)
		return w.write(w.scratch)
	}
	w.scratch = append(w.scratch[:0], '"')
	w.scratch = token.AppendEscaped(w.scratch, v)
	w.scratch = append(w.scratch, '"')
	return w.write(w.scratch)
}

func (w *Writer) OnStringScalar(v []byte) error {
	if w.err != nil {
		return w.err
	}
	if err := w.writeStringScalar(v); err != nil {
		return err
	}
	return w.endNode()
}

func (w *Writer) OnInt64Scalar(v int64) error {
	if w.err != nil {
		return w.err
	}
	if w.fmat == format.Binary {
		w.scratch = append(w.scratch[:0], token.Int64Marker)
		w.scratch = wire.AppendInt64(w.scratch, v)
	} else {
		w.scratch = strconv.AppendInt(w.scratch[:0], v, 10)
	}
	if err := w.write(w.scratch); err != nil {
		return err
	}
	return w.endNode()
}

func (w *Writer) OnUint64Scalar(v uint64) error {
	if w.err != nil {
		return w.err
	}
	if w.fmat == format.Binary {
		w.scratch = append(w.scratch[:0], token.Uint64Marker)
		w.scratch = wire.AppendUint64(w.scratch, v)
	} else {
		w.scratch = strconv.AppendUint(w.scratch[:0], v, 10)
		w.scratch = append(w.scratch, 'u')
	}
	if err := w.write(w.scratch); err != nil {
		return err
	}
	return w.endNode()
}

func (w *Writer) OnDoubleScalar(v float64) error {
	if w.err != nil {
		return w.err
	}
	if w.fmat == format.Binary {
		w.scratch = append(w.scratch[:0], token.DoubleMarker)
		w.scratch = wire.AppendDouble(w.scratch, v)
	} else {
		w.scratch = AppendDoubleText(w.scratch[:0], v)
	}
	if err := w.write(w.scratch); err != nil {
		return err
	}
	return w.endNode()
}

// AppendDoubleText renders v in text form. Non-finite values use the
// %nan, %inf, and %-inf literals. A finite rendering with neither a
// decimal point nor an exponent gets a trailing '.', so a bare numeric
// literal re-parses as floating-point rather than integer.
func AppendDoubleText(dst []byte, v float64) []byte {
	switch {
	case math.IsNaN(v):
		return append(dst, "%nan"...)
	case math.IsInf(v, 1):
		return append(dst, "%inf"...)
	case math.IsInf(v, -1):
		return append(dst, "%-inf"...)
	}
	n := len(dst)
	dst = strconv.AppendFloat(dst, v, 'g', -1, 64)
	if !bytes.ContainsAny(dst[n:], ".e") {
		dst = append(dst, '.')
	}
	return dst
}

func (w *Writer) OnBooleanScalar(v bool) error {
	if w.err != nil {
		return w.err
	}
	if w.fmat == format.Binary {
		m := token.FalseMarker
		if v {
			m = token.TrueMarker
		}
		if err := w.writeByte(m); err != nil {
			return err
		}
	} else {
		lit := "%false"
		if v {
			lit = "%true"
		}
		if err := w.write(append(w.scratch[:0], lit...)); err != nil {
			return err
		}
	}
	return w.endNode()
}

func (w *Writer) OnEntity() error {
	if w.err != nil {
		return w.err
	}
	if err := w.writeByte(token.Entity.Char()); err != nil {
		return err
	}
	return w.endNode()
}

func (w *Writer) OnBeginList() error {
	return w.beginCollection(token.BeginList)
}

func (w *Writer) OnListItem() error {
	if w.err != nil {
		return w.err
	}
	if len(w.stack) == 0 {
		if w.kind != format.ListFragment {
			return w.fail(fmt.Errorf("%w: list item outside list", ErrMisuse))
		}
	} else if t := w.stack[len(w.stack)-1]; t != token.BeginList && t != splicedFrame {
		return w.fail(fmt.Errorf("%w: list item outside list", ErrMisuse))
	}
	return w.collectionItem(token.ListItemSeparator)
}

func (w *Writer) OnEndList() error {
	if err := w.endCollection(token.BeginList, token.EndList); err != nil {
		return err
	}
	return w.endNode()
}

func (w *Writer) OnBeginMap() error {
	return w.beginCollection(token.BeginMap)
}

func (w *Writer) OnKeyedItem(key []byte) error {
	if w.err != nil {
		return w.err
	}
	if len(w.stack) == 0 {
		if w.kind != format.MapFragment {
			return w.fail(fmt.Errorf("%w: keyed item outside map", ErrMisuse))
		}
	} else if t := w.stack[len(w.stack)-1]; t != token.BeginMap && t != token.BeginAttributes && t != splicedFrame {
		return w.fail(fmt.Errorf("%w: keyed item outside map", ErrMisuse))
	}
	if err := w.collectionItem(token.KeyedItemSeparator); err != nil {
		return err
	}
	if err := w.writeStringScalar(key); err != nil {
		return err
	}
	if w.fmat == format.Pretty {
		if err := w.writeByte(' '); err != nil {
			return err
		}
	}
	if err := w.writeByte(token.KeyValueSeparator.Char()); err != nil {
		return err
	}
	if w.fmat == format.Pretty {
		if err := w.writeByte(' '); err != nil {
			return err
		}
	}
	w.beforeFirstItem = false
	return nil
}

func (w *Writer) OnEndMap() error {
	if err := w.endCollection(token.BeginMap, token.EndMap); err != nil {
		return err
	}
	return w.endNode()
}

func (w *Writer) OnBeginAttributes() error {
	return w.beginCollection(token.BeginAttributes)
}

// OnEndAttributes closes an attributes block. It does not end the node:
// attributes precede the value they annotate.
func (w *Writer) OnEndAttributes() error {
	if err := w.endCollection(token.BeginAttributes, token.EndAttributes); err != nil {
		return err
	}
	if w.fmat == format.Pretty {
		return w.writeByte(' ')
	}
	return nil
}

func (w *Writer) OnRaw(raw []byte, kind format.StreamKind) error {
	if w.err != nil {
		return w.err
	}
	if w.opts.raw {
		if debug.Write() {
			debug.Logf("writer: raw passthrough of %d bytes (%s)\n", len(raw), kind)
		}
		if err := w.write(raw); err != nil {
			return err
		}
		w.beforeFirstItem = false
		return nil
	}
	if err := ApplyRaw(w, raw, kind); err != nil {
		return w.fail(err)
	}
	return nil
}
