package strset

import "errors"

var (
	// ErrTableFull is returned by Add when every bucket holds a live value and
	// the table may not grow any further.
	ErrTableFull = errors.New("string set table full")

	// ErrResourceExhausted is returned when a set would need more buckets than
	// its maximum capacity allows.
	ErrResourceExhausted = errors.New("string set capacity exhausted")

	ErrClosed        = errors.New("string set closed")
	ErrInvalidOption = errors.New("invalid string set option")
)
