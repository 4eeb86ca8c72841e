package board

import (
	"errors"
	"fmt"
)

var (
	ErrWrongLength = errors.New("wrong length")
	ErrBadRow      = errors.New("unrecognized row letter")
	ErrBadColumn   = errors.New("column out of range")
	ErrBadPiece    = errors.New("unrecognized piece")
	ErrBadPlayer   = errors.New("unrecognized player")
)

// ParseError is returned by the text parsers in this package.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
