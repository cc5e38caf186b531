// Package format defines the wire representations and top-level stream
// kinds of the yson codec.
//
// A Format selects one of three interchangeable representations of the
// same event stream: compact binary, flat text, or pretty-printed text.
// A StreamKind states what the outermost context of a stream is: a single
// wrapped document, or an unwrapped sequence of list items or map pairs.
package format
