package apperr

import "errors"

// ValidationError carries every field-level violation found in a request
// payload, not just the first one.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	if len(e.Messages) == 0 {
		return "validation failed"
	}
	out := e.Messages[0]
	for _, m := range e.Messages[1:] {
		out += "; " + m
	}
	return out
}

func Validation(messages ...string) error {
	return &ValidationError{Messages: messages}
}

func AsValidation(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

// ConflictError marks a uniqueness violation (duplicate email/phone).
type ConflictError struct {
	msg string
}

func (e *ConflictError) Error() string { return e.msg }

func Conflict(msg string) error { return &ConflictError{msg: msg} }

func IsConflict(err error) bool {
	var cerr *ConflictError
	return errors.As(err, &cerr)
}

// NotFoundError marks a referenced entity as absent.
type NotFoundError struct {
	msg string
}

func (e *NotFoundError) Error() string { return e.msg }

func NotFound(msg string) error { return &NotFoundError{msg: msg} }

func IsNotFound(err error) bool {
	var nerr *NotFoundError
	return errors.As(err, &nerr)
}
