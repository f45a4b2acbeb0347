package services

import "errors"

// ErrorCode identifies a failure class. Each code maps to exactly one
// user-visible message at the HTTP boundary.
type ErrorCode string

const (
	ErrorInvalid               ErrorCode = "invalid"
	ErrorMissingName           ErrorCode = "missing_name"
	ErrorInvalidIdentifier     ErrorCode = "invalid_identifier"
	ErrorMissingClassification ErrorCode = "missing_classification"
	ErrorIncompleteAnswers     ErrorCode = "incomplete_answers"
	ErrorDuplicateIdentifier   ErrorCode = "duplicate_identifier"
	ErrorWindowClosed          ErrorCode = "window_closed"
	ErrorUnauthorized          ErrorCode = "unauthorized"
	ErrorStorage               ErrorCode = "storage_unavailable"
)

type ServiceError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *ServiceError) Error() string { return e.Message }

func (e *ServiceError) Unwrap() error { return e.Err }

func NewInvalidError(msg string) error { return &ServiceError{Code: ErrorInvalid, Message: msg} }

func NewRejectError(code ErrorCode, msg string) error {
	return &ServiceError{Code: code, Message: msg}
}

func NewUnauthorizedError(msg string) error {
	return &ServiceError{Code: ErrorUnauthorized, Message: msg}
}

func NewWindowClosedError(msg string) error {
	return &ServiceError{Code: ErrorWindowClosed, Message: msg}
}

// NewStorageError wraps a store failure verbatim. These are terminal for
// the request; nothing in the service layer retries.
func NewStorageError(err error) error {
	return &ServiceError{Code: ErrorStorage, Message: "storage unavailable: " + err.Error(), Err: err}
}

func AsServiceError(err error) (*ServiceError, bool) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
