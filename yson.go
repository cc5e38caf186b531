// Package yson is the top-level entry point for working with yson
// streams: one self-describing data model with three interchangeable
// wire representations (binary, flat text, pretty text), all driven by
// a single event sequence.
//
// The subpackages hold the machinery: stream has the Writer, Parser,
// and Consumer contract; node has the in-memory tree; format names the
// representations and stream kinds; bridge converts documents to and
// from JSON, YAML, and CBOR.
package yson

import (
	"bytes"
	"io"

	"github.com/signadot/yson-format/go-yson/format"
	"github.com/signadot/yson-format/go-yson/node"
	"github.com/signadot/yson-format/go-yson/stream"
)

// Marshal renders a tree as a document in the requested representation.
func Marshal(n *node.Node, f format.Format) ([]byte, error) {
	return node.Marshal(n, f)
}

// Unmarshal parses a document in any representation into a tree.
func Unmarshal(d []byte) (*node.Node, error) {
	return node.Unmarshal(d)
}

// Reformat streams src into dst in representation f without building
// trees; memory use is bounded by nesting depth.
func Reformat(dst io.Writer, src io.Reader, f format.Format, kind format.StreamKind) error {
	return stream.Reformat(dst, src, f, kind)
}

// ReformatBytes reformats a whole in-memory stream.
func ReformatBytes(d []byte, f format.Format, kind format.StreamKind) ([]byte, error) {
	var buf bytes.Buffer
	if err := stream.Reformat(&buf, bytes.NewReader(d), f, kind); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Equal reports whether two documents hold the same value, regardless
// of representation.
func Equal(a, b []byte) (bool, error) {
	an, err := node.Unmarshal(a)
	if err != nil {
		return false, err
	}
	bn, err := node.Unmarshal(b)
	if err != nil {
		return false, err
	}
	return an.Equal(bn), nil
}
