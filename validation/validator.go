package validation

import (
	"strings"

	"github.com/google/uuid"

	"github.com/kbukum/lazyflow/errors"
)

// Validator collects field errors for values that do not live in a struct,
// such as positional command arguments. Checks chain:
//
//	err := validation.New().Required("dir", dir).Distinct("dirs", a, b).Validate()
type Validator struct {
	failed []FieldError
}

// FieldError is a validation failure for one field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// New creates an empty Validator.
func New() *Validator {
	return &Validator{}
}

func (v *Validator) fail(field, message string) *Validator {
	v.failed = append(v.failed, FieldError{Field: field, Message: message})
	return v
}

// HasErrors reports whether any check failed.
func (v *Validator) HasErrors() bool { return len(v.failed) > 0 }

// Errors returns the recorded field errors in check order.
func (v *Validator) Errors() []FieldError { return v.failed }

// Validate returns an INVALID_INPUT AppError listing every failed field, or
// nil when all checks passed.
func (v *Validator) Validate() *errors.AppError {
	if !v.HasErrors() {
		return nil
	}
	parts := make([]string, len(v.failed))
	for i, e := range v.failed {
		parts[i] = e.Field + ": " + e.Message
	}
	appErr := errors.Validation(strings.Join(parts, "; "))
	appErr.Details = map[string]any{"fields": v.failed}
	return appErr
}

// Required checks that value is not blank.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		return v.fail(field, "is required")
	}
	return v
}

// OptionalUUID checks that a non-empty value parses as a UUID.
func (v *Validator) OptionalUUID(field, value string) *Validator {
	if value == "" {
		return v
	}
	if _, err := uuid.Parse(value); err != nil {
		return v.fail(field, "must be a valid UUID")
	}
	return v
}

// Distinct checks that a and b differ.
func (v *Validator) Distinct(field, a, b string) *Validator {
	if a == b {
		return v.fail(field, "must name two different values")
	}
	return v
}
