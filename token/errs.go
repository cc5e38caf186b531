package token

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrBadEscape    = errors.New("bad escape sequence")
	ErrUnterminated = errors.New("unterminated string")
)

// SyntaxError reports malformed input with the byte offset at which it
// was detected and a short context snippet around it.
type SyntaxError struct {
	Err     error
	Offset  int64
	Context []byte
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

func (e *SyntaxError) Error() string {
	sample := "?"
	if len(e.Context) > 0 {
		sample = strconv.Quote(string(e.Context))
		sample = sample[1 : len(sample)-1]
	}
	return fmt.Sprintf("%s at offset %d (near `...%s...`)", e.Err.Error(), e.Offset, sample)
}
