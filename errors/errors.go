package errors

import (
	"fmt"
)

// AppError is the unified error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Fatal indicates the pipeline that raised the error must not be reused.
	Fatal bool `json:"fatal"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// Is reports whether target is an AppError with the same code.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic fatal detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Fatal:   IsFatalCode(code),
	}
}

// Sentinels for errors.Is comparisons by code.
var (
	ErrConfiguration   = &AppError{Code: ErrCodeConfiguration}
	ErrInvalidInput    = &AppError{Code: ErrCodeInvalidInput}
	ErrKeyNotFound     = &AppError{Code: ErrCodeKeyNotFound}
	ErrNotADirectory   = &AppError{Code: ErrCodeNotADirectory}
	ErrResource        = &AppError{Code: ErrCodeResource}
	ErrEvaluationCycle = &AppError{Code: ErrCodeEvaluationCycle}
)

// --- Common Error Constructors ---

// Configuration creates a new AppError for a pipeline that cannot be composed.
func Configuration(reason string) *AppError {
	return &AppError{
		Code: ErrCodeConfiguration, Message: fmt.Sprintf("Invalid configuration: %s", reason),
		Fatal: true,
	}
}

// InvalidInput creates a new AppError for an invalid composition argument.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		Fatal: true, Details: details,
	}
}

// Validation creates a new AppError for struct validation failures.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message,
		Fatal: true,
	}
}

// KeyNotFound creates a new AppError for a lookup of an absent key.
func KeyNotFound(key any) *AppError {
	return &AppError{
		Code: ErrCodeKeyNotFound, Message: "no element found",
		Details: map[string]any{"key": fmt.Sprintf("%v", key)},
	}
}

// NotADirectory creates a new AppError for a directory producer given a non-directory path.
func NotADirectory(path string) *AppError {
	return &AppError{
		Code: ErrCodeNotADirectory, Message: fmt.Sprintf("Input path is not a directory: %s", path),
		Details: map[string]any{"path": path},
	}
}

// Resource creates a new AppError for a producer that failed to read a resource.
func Resource(operation, target string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeResource, Message: fmt.Sprintf("Unable to %s %s", operation, target),
		Details: map[string]any{"operation": operation, "target": target},
		Cause:   cause,
	}
}

// EvaluationCycle creates a new AppError for a node forced during its own evaluation.
func EvaluationCycle(node string) *AppError {
	return &AppError{
		Code: ErrCodeEvaluationCycle, Message: fmt.Sprintf("Node %s was forced while evaluating", node),
		Fatal: true, Details: map[string]any{"node": node},
	}
}

// Internal creates a new AppError for an unexpected failure.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		Fatal: true, Cause: cause,
	}
}
