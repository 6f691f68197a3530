package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule,omitempty"`
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	if len(ve) == 1 {
		return fmt.Sprintf("validation failed: %s %s", ve[0].Field, ve[0].Message)
	}
	return fmt.Sprintf("validation failed: %d field errors", len(ve))
}

// Fields returns the offending field names in order.
func (ve ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(ve))
	for _, e := range ve {
		fields = append(fields, e.Field)
	}
	return fields
}

func (pe *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", pe.Field, pe.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
	}
}

// NewValidationErrorWithRule creates a new validation error with rule
func NewValidationErrorWithRule(field, message, rule string, value interface{}) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
		Rule:    rule,
	}
}

// ToValidationErrors converts validator.ValidationErrors to our custom type.
// Errors of any other kind yield nil.
func ToValidationErrors(err error) ValidationErrors {
	var out ValidationErrors

	var validatorErr validator.ValidationErrors
	if errors.As(err, &validatorErr) {
		for _, fe := range validatorErr {
			out = append(out, ValidationError{
				Field:   fieldPath(fe),
				Message: getErrorMessage(fe),
				Value:   fe.Value(),
				Rule:    fe.Tag(),
			})
		}
	}

	return out
}

// fieldPath drops the root struct name: "GenerateQuizRequest.document_id" -> "document_id".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

// getErrorMessage returns user-friendly error messages
func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "min":
		if err.Kind().String() == "slice" {
			return fmt.Sprintf("must contain at least %s items", err.Param())
		}
		return fmt.Sprintf("must be at least %s", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", err.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", err.Param())

	// Custom validators
	case "learning_style":
		return "must be a valid learning style (visual, auditory, hands-on, reading, blended)"

	default:
		return fmt.Sprintf("validation failed for rule '%s'", err.Tag())
	}
}
