package store

import (
	"errors"
	"fmt"
)

// ErrNotMapping is the cause carried by Send when the payload is not a
// string-keyed map.
var ErrNotMapping = errors.New("payload is not a mapping")

// Error is the single failure kind returned by Store operations. The
// message embeds the cause's type and text; Err keeps the cause itself
// for diagnostics.
type Error struct {
	Op       string // "send" or "receive"
	Location string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("store: %s %s: %T: %v", e.Op, e.Location, e.Err, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func wrap(op, location string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Location: location, Err: err}
}
