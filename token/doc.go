// Package token defines the structural tokens of the yson wire formats,
// their one-byte encodings, the binary scalar markers, and the text-mode
// escape codec.
package token
