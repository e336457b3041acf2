package phase

import (
	"errors"
	"fmt"
)

// ErrSizeMismatch indicates an array shorter than the phase requires.
var ErrSizeMismatch = errors.New("phase: array size mismatch")

// SizeMismatchError carries the provided and required lengths.
type SizeMismatchError struct {
	Op   string
	Got  int
	Want int
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("phase: %s: array size %d, need at least %d", e.Op, e.Got, e.Want)
}

func (e *SizeMismatchError) Unwrap() error {
	return ErrSizeMismatch
}
