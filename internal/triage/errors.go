package triage

import (
	"errors"
	"fmt"
)

// ErrEmptyText is wrapped by the ValidationError returned for blank tickets.
var ErrEmptyText = errors.New("ticket text cannot be empty")

// ValidationError reports input that cannot be classified.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }
