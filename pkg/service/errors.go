package service

import "errors"

// ValidationError reports a missing or malformed field on a submission.
// The gateway surfaces its message verbatim as a 400 response.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func missingField(name string) error {
	return &ValidationError{Message: name + " is required"}
}

// ErrOrderNumberExhausted is returned when repeated order-number collisions
// prevent allocating a unique number.
var ErrOrderNumberExhausted = errors.New("could not allocate a unique order number")
