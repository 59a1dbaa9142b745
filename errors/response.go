package errors

import (
	stderrors "errors"
)

// Summary is a flat, serializable view of an error for CLI and log output.
type Summary struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Fatal   bool           `json:"fatal"`
	Details map[string]any `json:"details,omitempty"`
}

// ToSummary converts an AppError to a Summary.
func (e *AppError) ToSummary() Summary {
	return Summary{
		Code:    e.Code,
		Message: e.Message,
		Fatal:   e.Fatal,
		Details: e.Details,
	}
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err is, or wraps, an AppError with the given code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}
