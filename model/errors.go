package model

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the services wraps exactly one of them.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrCapacity   = errors.New("capacity exceeded")
	ErrAuth       = errors.New("authentication failed")
	ErrIO         = errors.New("i/o error")
)

var (
	ErrInvalidName      = fmt.Errorf("%w: invalid name, use letters and spaces only", ErrValidation)
	ErrInvalidQuantity  = fmt.Errorf("%w: invalid quantity", ErrValidation)
	ErrInvalidCategory  = fmt.Errorf("%w: category must be food or drink", ErrValidation)
	ErrInvalidPrice     = fmt.Errorf("%w: price must be a non-negative number", ErrValidation)
	ErrEmptyMessage     = fmt.Errorf("%w: feedback cannot be empty", ErrValidation)
	ErrInvalidMessage   = fmt.Errorf("%w: feedback cannot contain ';' or line breaks", ErrValidation)
	ErrEmptyPassword    = fmt.Errorf("%w: password cannot be empty", ErrValidation)
	ErrNotFoundOrder    = fmt.Errorf("%w: order id not found", ErrNotFound)
	ErrOrderNotFound    = fmt.Errorf("%w: order id not found or invalid", ErrNotFound)
	ErrUnknownItem      = fmt.Errorf("%w: unknown menu item", ErrNotFound)
	ErrCapacityExceeded = fmt.Errorf("%w: maximum order limit reached", ErrCapacity)
	ErrWrongPassword    = fmt.Errorf("%w: incorrect password", ErrAuth)
)

// IOError wraps a persistence failure with the file it concerns.
func IOError(op, path string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", ErrIO, op, path, err)
}
