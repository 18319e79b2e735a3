package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinels for errors.Is checks against *Error values.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrStorage    = errors.New("storage failure")
)

// Kind classifies a service outcome.
type Kind uint8

const (
	KindStorage Kind = iota
	KindNotFound
	KindValidation
)

func (k Kind) sentinel() error {
	switch k {
	case KindNotFound:
		return ErrNotFound
	case KindValidation:
		return ErrValidation
	default:
		return ErrStorage
	}
}

// Error is the typed outcome returned by repositories and aggregators.
// Message is safe to show to clients for NotFound and Validation kinds;
// for Storage it names the failed operation and is only logged.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// NotFound reports a missing record.
func NotFound(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Invalid reports malformed or missing caller input.
func Invalid(message string) error {
	return &Error{Kind: KindValidation, Message: message}
}

// StorageFailure wraps an underlying data-access error with the operation that failed.
func StorageFailure(op string, err error) error {
	return &Error{Kind: KindStorage, Message: op, Err: err}
}

// ServiceError to define return exception for system
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	return e.Message
}

// ToServiceError maps an outcome to the HTTP status and client-facing message.
// Anything that is not a NotFound or Validation outcome becomes a generic 500.
func ToServiceError(err error) *ServiceError {
	var e *Error
	if errors.As(err, &e) {
		switch e.Kind {
		case KindNotFound:
			return &ServiceError{StatusCode: http.StatusNotFound, Message: e.Message}
		case KindValidation:
			return &ServiceError{StatusCode: http.StatusBadRequest, Message: e.Message}
		}
	}
	return &ServiceError{
		StatusCode: http.StatusInternalServerError,
		Message:    "Internal server error",
	}
}
