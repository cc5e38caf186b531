package stream

import "errors"

var (
	// ErrMisuse reports an event that is invalid for the current writer
	// state, such as an unbalanced end token or a keyed item outside a
	// map context. It latches: the writer refuses all further events.
	ErrMisuse = errors.New("invalid event for writer state")

	// ErrMalformed reports input bytes that match no valid token or
	// scalar grammar. It is fatal for the parse attempt.
	ErrMalformed = errors.New("malformed input")
)
