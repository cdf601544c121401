package domain

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
)

// ArgumentError is a domain rule violation whose message is safe to show to clients.
type ArgumentError struct {
	Message string
}

func (e *ArgumentError) Error() string { return e.Message }

func (e *ArgumentError) Is(target error) bool { return target == ErrInvalidArgument }

func NewArgumentError(msg string) *ArgumentError {
	return &ArgumentError{Message: msg}
}
