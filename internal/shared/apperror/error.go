package apperror

import "fmt"

// AppError is the sentinel error type every module's errors package
// builds on: a stable machine code, a client-safe message, and the
// HTTP status handlers answer with. The wrapped cause stays
// server-side.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap lets errors.Is/As reach the cause.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New builds a bare AppError, typically as a package-level sentinel.
func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap attaches a cause to a new AppError; nil in, nil out, so call
// sites can wrap unconditionally.
func Wrap(err error, code, message string, httpStatus int) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}
