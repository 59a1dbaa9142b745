package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Configuration errors (fatal, detected before any data flows)
const (
	// ErrCodeConfiguration indicates a pipeline was composed with an unusable configuration.
	ErrCodeConfiguration ErrorCode = "INVALID_CONFIGURATION"
	// ErrCodeInvalidInput indicates an argument passed at composition time is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// Lookup errors
const (
	// ErrCodeKeyNotFound indicates a key was queried without a try form and is absent.
	ErrCodeKeyNotFound ErrorCode = "KEY_NOT_FOUND"
)

// Resource errors raised by producers
const (
	// ErrCodeNotADirectory indicates a directory producer was given something else.
	ErrCodeNotADirectory ErrorCode = "NOT_A_DIRECTORY"
	// ErrCodeResource indicates an external resource could not be read.
	ErrCodeResource ErrorCode = "RESOURCE_ERROR"
)

// Internal errors
const (
	// ErrCodeEvaluationCycle indicates a node was forced while it was already evaluating.
	ErrCodeEvaluationCycle ErrorCode = "EVALUATION_CYCLE"
	// ErrCodeInternal indicates an unexpected internal failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var fatalCodes = map[ErrorCode]bool{
	ErrCodeConfiguration:   true,
	ErrCodeInvalidInput:    true,
	ErrCodeEvaluationCycle: true,
	ErrCodeInternal:        true,
	ErrCodeKeyNotFound:     false,
	ErrCodeNotADirectory:   false,
	ErrCodeResource:        false,
}

// IsFatalCode returns true if the error code means the pipeline itself is unusable.
func IsFatalCode(code ErrorCode) bool {
	return fatalCodes[code]
}
