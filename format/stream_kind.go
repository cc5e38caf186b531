package format

import (
	"errors"
	"fmt"
)

// StreamKind states the outermost context of a stream. Document wraps
// exactly one top-level value with no trailing separator. The fragment
// kinds carry an unwrapped sequence of top-level items or pairs, each
// followed by its separator.
type StreamKind int

const (
	Document StreamKind = iota
	ListFragment
	MapFragment
)

var ErrBadStreamKind = errors.New("bad stream kind")

func ParseStreamKind(v string) (StreamKind, error) {
	k, ok := map[string]StreamKind{
		"d":             Document,
		"document":      Document,
		"l":             ListFragment,
		"list-fragment": ListFragment,
		"m":             MapFragment,
		"map-fragment":  MapFragment,
	}[v]
	if ok {
		return k, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadStreamKind, v)
}

func (k StreamKind) String() string {
	d, err := k.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (k StreamKind) MarshalText() ([]byte, error) {
	switch k {
	case Document:
		return []byte("document"), nil
	case ListFragment:
		return []byte("list-fragment"), nil
	case MapFragment:
		return []byte("map-fragment"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a stream kind>", k)
	}
}

func (k *StreamKind) UnmarshalText(d []byte) error {
	pk, err := ParseStreamKind(string(d))
	if err != nil {
		return err
	}
	*k = pk
	return nil
}

// IsFragment reports whether top-level separators are emitted for this
// kind.
func (k StreamKind) IsFragment() bool {
	return k == ListFragment || k == MapFragment
}
