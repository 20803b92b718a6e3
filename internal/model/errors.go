package model

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument reports a caller-supplied value outside its domain.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrDataInconsistency reports stored data that contradicts itself,
	// such as a cable whose purpose is not one of the known purposes.
	ErrDataInconsistency = errors.New("data inconsistency")
)

// CableError attaches the offending cable tag to an error.
type CableError struct {
	Tag string
	Err error
}

func (e *CableError) Error() string {
	return fmt.Sprintf("cable %q: %v", e.Tag, e.Err)
}

func (e *CableError) Unwrap() error { return e.Err }
