package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps struct validation and the business rule validator
type Validator struct {
	validate *validator.Validate
	business *BusinessValidator
}

// New creates a validator with all custom rules registered
func New() *Validator {
	business := NewBusinessValidator()
	return &Validator{
		validate: business.validate,
		business: business,
	}
}

// Validate runs struct-tag validation and returns structured errors
func (v *Validator) Validate(s interface{}) ValidationErrors {
	if err := v.validate.Struct(s); err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

// GetBusinessValidator returns the business rule validator
func (v *Validator) GetBusinessValidator() *BusinessValidator {
	return v.business
}

// ValidationError describes a single failed field
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule,omitempty"`
}

// ValidationErrors aggregates field errors for a request
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ""
	}
	parts := make([]string, len(ve))
	for i, e := range ve {
		parts[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return strings.Join(parts, "; ")
}

// HasErrors reports whether any field failed
func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

// ToValidationErrors converts go-playground validator errors into our format
func ToValidationErrors(err error) ValidationErrors {
	if err == nil {
		return nil
	}

	var errors ValidationErrors
	if fieldErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range fieldErrors {
			errors = append(errors, ValidationError{
				Field:   strings.ToLower(fe.Field()),
				Message: messageForTag(fe),
				Value:   fe.Value(),
				Rule:    fe.Tag(),
			})
		}
		return errors
	}

	return ValidationErrors{{Field: "request", Message: err.Error()}}
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "url":
		return "must be a valid URL"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
