package aamodel

import (
	"errors"
	"fmt"
)

// Errors returned while reading, validating and writing models. The
// malformed input sub-kinds wrap ErrMalformedInput, so
// errors.Is(err, ErrMalformedInput) holds for all of them.
var (
	ErrUnsupportedFormat         = errors.New("unsupported format")
	ErrPathNotFound              = errors.New("path does not exist")
	ErrMalformedInput            = errors.New("malformed input")
	ErrInsufficientParameters    = fmt.Errorf("%w: not enough parameters", ErrMalformedInput)
	ErrInvalidElementCount       = fmt.Errorf("%w: invalid number of elements", ErrMalformedInput)
	ErrMultiPartitionUnsupported = fmt.Errorf("%w: more than one partition detected, only one partition is supported", ErrMalformedInput)
	ErrInvariantViolation        = errors.New("model invariant violation")
	ErrInvalidBurnin             = errors.New("burnin should be an integer between 0 and 100")
)

// CountError reports a wrong number of values.
type CountError struct {
	// Err is the error kind.
	Err error
	// What is counted, e.g. "substitution rates".
	What string
	// Got is the actual count.
	Got int
	// Want describes the expected count, e.g. "at least 210".
	Want string
}

// NewCountError creates a new CountError.
func NewCountError(err error, what string, got int, want string) *CountError {
	return &CountError{Err: err, What: what, Got: got, Want: want}
}

func (e *CountError) Error() string {
	return fmt.Sprintf("%v: %d %s, expected %s", e.Err, e.Got, e.What, e.Want)
}

// Unwrap returns the error kind.
func (e *CountError) Unwrap() error {
	return e.Err
}
