package stream

import (
	"io"

	"github.com/signadot/yson-format/go-yson/format"
)

// Reformat streams src, holding a stream of kind in any representation,
// into dst in representation f. The parser feeds the writer directly, so
// memory use is bounded by the maximum nesting depth encountered rather
// than document size; unbounded fragment streams reformat incrementally.
func Reformat(dst io.Writer, src io.Reader, f format.Format, kind format.StreamKind, opts ...WriterOption) error {
	w := NewWriter(dst, f, kind, opts...)
	return NewParser(src, kind).Parse(w)
}
