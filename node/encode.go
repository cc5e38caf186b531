package node

import (
	"bytes"
	"io"

	"github.com/signadot/yson-format/go-yson/format"
	"github.com/signadot/yson-format/go-yson/stream"
)

// Marshal renders n as a document in the requested representation.
func Marshal(n *Node, f format.Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, n, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalText renders n as a flat text document.
func MarshalText(n *Node) ([]byte, error) {
	return Marshal(n, format.Text)
}

// MarshalPretty renders n as a pretty-printed text document.
func MarshalPretty(n *Node) ([]byte, error) {
	return Marshal(n, format.Pretty)
}

// MarshalBinary renders n as a binary document.
func MarshalBinary(n *Node) ([]byte, error) {
	return Marshal(n, format.Binary)
}

// Write streams n as a document into w in the requested representation.
func Write(w io.Writer, n *Node, f format.Format) error {
	sw := stream.NewWriter(w, f, format.Document)
	return n.EmitTo(sw)
}

// Read parses a document from r, in any representation, into a tree.
func Read(r io.Reader) (*Node, error) {
	b := NewTreeBuilder()
	if err := stream.NewParser(r, format.Document).Parse(b); err != nil {
		return nil, err
	}
	return b.Root()
}

// Unmarshal parses a document held in d into a tree.
func Unmarshal(d []byte) (*Node, error) {
	return Read(bytes.NewReader(d))
}

// ReadFragment parses a list or map fragment from r and returns one
// node per top-level item. Map fragment pairs come back as single-entry
// maps.
func ReadFragment(r io.Reader, kind format.StreamKind) ([]*Node, error) {
	b := NewTreeBuilder()
	if err := stream.NewParser(r, kind).Parse(b); err != nil {
		return nil, err
	}
	return b.Roots(), nil
}
