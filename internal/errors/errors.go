package errors

import (
	stderrors "errors"
	"fmt"

	"inferkit/domain/core"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeConfigInvalid     = "CONFIG_INVALID"
	CodeDatabaseError     = "DATABASE_ERROR"
	CodeNotFound          = "NOT_FOUND"
	CodeInternalError     = "INTERNAL_ERROR"
	CodeInvalidInput      = "INVALID_INPUT"
	CodeInvalidSampleSize = "INVALID_SAMPLE_SIZE"
	CodeInvalidVariance   = "INVALID_VARIANCE"
	CodeMismatchedLengths = "MISMATCHED_LENGTHS"
	CodeDegenerateInput   = "DEGENERATE_INPUT"
	CodeInvalidTarget     = "INVALID_TARGET"
)

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func DatabaseError(message string) *AppError {
	return New(CodeDatabaseError, message)
}

func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource))
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

// FromDomain converts a domain error into an AppError carrying the matching
// taxonomy code, so edge layers report the same code the engine raised.
func FromDomain(err error) *AppError {
	if err == nil {
		return nil
	}
	code := CodeInternalError
	switch {
	case stderrors.Is(err, core.ErrInvalidSampleSize):
		code = CodeInvalidSampleSize
	case stderrors.Is(err, core.ErrInvalidVariance):
		code = CodeInvalidVariance
	case stderrors.Is(err, core.ErrMismatchedLengths):
		code = CodeMismatchedLengths
	case stderrors.Is(err, core.ErrDegenerateInput):
		code = CodeDegenerateInput
	case stderrors.Is(err, core.ErrInvalidTarget):
		code = CodeInvalidTarget
	case stderrors.Is(err, core.ErrInvalidLevel):
		code = CodeInvalidInput
	case stderrors.Is(err, core.ErrNotFound):
		code = CodeNotFound
	}
	return &AppError{
		Code:    code,
		Message: err.Error(),
		Cause:   err,
	}
}
