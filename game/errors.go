package game

import "errors"

var (
	// ErrOutOfBounds signals a grid access outside [0,7] on either axis. It is a caller defect, not a rule violation.
	ErrOutOfBounds = errors.New("coordinates out of bounds")
	ErrEmptySquare = errors.New("no piece on square")
	ErrBadLayout   = errors.New("invalid board layout")
)
