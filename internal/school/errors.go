package school

import "fmt"

// The service reports exactly three kinds of failure, and the HTTP
// layer maps them to status classes: ValidationError → bad input,
// NotFoundError → unknown key, StorageError → server fault. Nothing
// is ever swallowed into a success result.

// ValidationError indicates missing or invalid input. Not retryable.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationErr(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError indicates an unknown id or key. Not retryable.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

func notFoundErr(format string, args ...any) error {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// StorageError wraps an I/O or malformed-content failure from the
// record store. Surfaced to clients as a generic server fault; the
// underlying cause stays in the logs.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string { return "storage failure: " + e.Err.Error() }

func (e *StorageError) Unwrap() error { return e.Err }

func storageErr(err error) error {
	return &StorageError{Err: err}
}
