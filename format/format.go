package format

import (
	"errors"
	"fmt"
)

type Format int

const (
	Binary Format = iota
	Text
	Pretty
)

var ErrBadFormat = errors.New("bad format")

func ParseFormat(v string) (Format, error) {
	f, ok := map[string]Format{
		"b":      Binary,
		"binary": Binary,
		"t":      Text,
		"text":   Text,
		"p":      Pretty,
		"pretty": Pretty,
	}[v]
	if ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

func (f Format) String() string {
	d, err := f.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (f Format) MarshalText() ([]byte, error) {
	switch f {
	case Binary:
		return []byte("binary"), nil
	case Text:
		return []byte("text"), nil
	case Pretty:
		return []byte("pretty"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a format>", f)
	}
}

func (f *Format) UnmarshalText(d []byte) error {
	pf, err := ParseFormat(string(d))
	if err != nil {
		return err
	}
	*f = pf
	return nil
}

func (f Format) IsBinary() bool { return f == Binary }
func (f Format) IsText() bool   { return f == Text }
func (f Format) IsPretty() bool { return f == Pretty }

// Suffix returns the file extension for this format (including the dot).
// The text representations share a suffix; only the bytes differ.
func (f Format) Suffix() string {
	switch f {
	case Binary:
		return ".ysonb"
	case Text, Pretty:
		return ".yson"
	default:
		return ""
	}
}

// AllFormats returns all supported formats in preference order.
func AllFormats() []Format {
	return []Format{Text, Pretty, Binary}
}
