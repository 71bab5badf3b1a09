package services

import (
	"errors"
	"fmt"

	"github.com/campus-connect/campus-service/internal/validator"
)

// ValidationErrors is re-exported so callers don't import the validator package
type ValidationErrors = validator.ValidationErrors
type ValidationError = validator.ValidationError

// NewValidationError creates a single field validation error
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
		Rule:    "business_logic",
	}
}

// ===== NOT FOUND ERRORS =====

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrOpportunityNotFound    = errors.New("opportunity not found")
	ErrInterestNotFound       = errors.New("interest not found")
	ErrCourseNotFound         = errors.New("course not found")
	ErrEnrolledCourseNotFound = errors.New("enrolled course not found")
	ErrExperienceNotFound     = errors.New("experience not found")
)

// IsNotFoundError reports whether err is one of the service not-found errors
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrOpportunityNotFound) ||
		errors.Is(err, ErrInterestNotFound) ||
		errors.Is(err, ErrCourseNotFound) ||
		errors.Is(err, ErrEnrolledCourseNotFound) ||
		errors.Is(err, ErrExperienceNotFound)
}

// ===== PERMISSION ERRORS =====

// PermissionError is returned when a user acts on a resource they don't own
// or with a role that doesn't allow the action.
type PermissionError struct {
	UserID     string `json:"user_id"`
	ResourceID uint   `json:"resource_id,omitempty"`
	Resource   string `json:"resource"`
	Action     string `json:"action"`
	Reason     string `json:"reason"`
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: user %s cannot %s %s: %s", e.UserID, e.Action, e.Resource, e.Reason)
}

func NewPermissionError(userID string, resourceID uint, resource, action, reason string) *PermissionError {
	return &PermissionError{
		UserID:     userID,
		ResourceID: resourceID,
		Resource:   resource,
		Action:     action,
		Reason:     reason,
	}
}

// IsPermissionError reports whether err is a PermissionError
func IsPermissionError(err error) bool {
	var pe *PermissionError
	return errors.As(err, &pe)
}

// ===== BUSINESS RULE ERRORS =====

// BusinessRuleError is returned when a request is well-formed but violates
// a domain rule (closed opportunity, duplicate interest, role mismatch).
type BusinessRuleError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (e *BusinessRuleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewBusinessRuleError(code, message string, context map[string]interface{}) *BusinessRuleError {
	return &BusinessRuleError{
		Code:    code,
		Message: message,
		Context: context,
	}
}

// IsBusinessRuleError reports whether err is a BusinessRuleError
func IsBusinessRuleError(err error) bool {
	var bre *BusinessRuleError
	return errors.As(err, &bre)
}

// Business rule codes
const (
	CodeRoleMismatch      = "role_mismatch"
	CodeEmailNotVerified  = "email_not_verified"
	CodeDuplicateInterest = "duplicate_interest"
	CodeNotInterestable   = "interest_not_accepted"
	CodeDeadlinePassed    = "deadline_passed"
	CodeInvalidUploadType = "invalid_upload_type"
	CodeUploadTooLarge    = "upload_too_large"
)

// IsValidationErrors reports whether err carries field validation failures
func IsValidationErrors(err error) bool {
	var ve ValidationErrors
	return errors.As(err, &ve)
}
