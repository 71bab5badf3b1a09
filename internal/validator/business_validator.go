package validator

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/campus-connect/campus-service/internal/models"
)

// BusinessValidator handles business rule validation
type BusinessValidator struct {
	validate *validator.Validate
}

// NewBusinessValidator creates a new business validator
func NewBusinessValidator() *BusinessValidator {
	validate := validator.New()

	bv := &BusinessValidator{validate: validate}
	bv.registerBusinessRules()

	return bv
}

// Validate validates business rules for any struct
func (bv *BusinessValidator) Validate(s interface{}) ValidationErrors {
	err := bv.validate.Struct(s)
	if err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

// ValidateOpportunityCreate validates opportunity posting rules
func (bv *BusinessValidator) ValidateOpportunityCreate(req *OpportunityCreateRequest) ValidationErrors {
	var errors ValidationErrors

	errors = append(errors, bv.Validate(req)...)

	if req.Deadline != nil && req.Deadline.Before(time.Now()) {
		errors = append(errors, ValidationError{
			Field:   "deadline",
			Message: "must be in the future",
			Value:   req.Deadline,
			Rule:    "business_logic",
		})
	}

	return errors
}

// ValidateOpportunityUpdate validates opportunity edit rules
func (bv *BusinessValidator) ValidateOpportunityUpdate(req *OpportunityUpdateRequest) ValidationErrors {
	var errors ValidationErrors

	errors = append(errors, bv.Validate(req)...)

	if req.Deadline != nil && req.ClearDeadline {
		errors = append(errors, ValidationError{
			Field:   "deadline",
			Message: "cannot set and clear the deadline in the same request",
			Rule:    "business_logic",
		})
	}

	return errors
}

// ValidateTags validates the replacement tag list: trimmed, non-empty,
// case-insensitively unique, at most the model limit.
func (bv *BusinessValidator) ValidateTags(tags []string) ValidationErrors {
	var errors ValidationErrors

	if len(tags) > models.MaxExperienceTags {
		errors = append(errors, ValidationError{
			Field:   "tags",
			Message: fmt.Sprintf("cannot have more than %d tags", models.MaxExperienceTags),
			Value:   len(tags),
			Rule:    "business_logic",
		})
	}

	seen := make(map[string]int, len(tags))
	for i, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("tags[%d]", i),
				Message: "tag cannot be empty",
				Value:   tag,
				Rule:    "business_logic",
			})
			continue
		}
		if len(trimmed) > 50 {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("tags[%d]", i),
				Message: "tag cannot be longer than 50 characters",
				Value:   tag,
				Rule:    "business_logic",
			})
		}
		key := strings.ToLower(trimmed)
		if first, dup := seen[key]; dup {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("tags[%d]", i),
				Message: fmt.Sprintf("duplicates tags[%d]", first),
				Value:   tag,
				Rule:    "business_logic",
			})
		} else {
			seen[key] = i
		}
	}

	return errors
}

// NormalizeTags trims every tag; call after ValidateTags passes
func (bv *BusinessValidator) NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		out = append(out, strings.TrimSpace(tag))
	}
	return out
}

// ValidateExperienceCreate validates experience entry rules
func (bv *BusinessValidator) ValidateExperienceCreate(req *ExperienceCreateRequest) ValidationErrors {
	var errors ValidationErrors

	errors = append(errors, bv.Validate(req)...)
	errors = append(errors, bv.validateExperienceDates(req.StartDate, req.EndDate, req.IsCurrent)...)

	return errors
}

// ValidateExperienceUpdate validates the merged state of an experience edit
func (bv *BusinessValidator) ValidateExperienceUpdate(req *ExperienceUpdateRequest, existing *models.Experience) ValidationErrors {
	var errors ValidationErrors

	errors = append(errors, bv.Validate(req)...)

	startDate := existing.StartDate
	if req.StartDate != nil {
		startDate = *req.StartDate
	}
	endDate := existing.EndDate
	if req.EndDate != nil {
		endDate = req.EndDate
	}
	isCurrent := existing.IsCurrent
	if req.IsCurrent != nil {
		isCurrent = *req.IsCurrent
	}
	if isCurrent {
		endDate = nil
	}

	errors = append(errors, bv.validateExperienceDates(startDate, endDate, isCurrent)...)

	return errors
}

func (bv *BusinessValidator) validateExperienceDates(startDate time.Time, endDate *time.Time, isCurrent bool) ValidationErrors {
	var errors ValidationErrors

	if isCurrent && endDate != nil {
		errors = append(errors, ValidationError{
			Field:   "end_date",
			Message: "cannot be set for a current experience",
			Value:   endDate,
			Rule:    "business_logic",
		})
	}

	if !isCurrent && endDate == nil {
		errors = append(errors, ValidationError{
			Field:   "end_date",
			Message: "is required when the experience is not current",
			Rule:    "business_logic",
		})
	}

	if endDate != nil && endDate.Before(startDate) {
		errors = append(errors, ValidationError{
			Field:   "end_date",
			Message: "cannot be before start date",
			Value:   endDate,
			Rule:    "business_logic",
		})
	}

	return errors
}

// registerBusinessRules registers custom business rule validators
func (bv *BusinessValidator) registerBusinessRules() {
	// Title validation (1-200 characters after trimming)
	bv.validate.RegisterValidation("opportunity_title", func(fl validator.FieldLevel) bool {
		title := strings.TrimSpace(fl.Field().String())
		return len(title) >= 1 && len(title) <= 200
	})

	// Description validation (max 5000 characters)
	bv.validate.RegisterValidation("opportunity_description", func(fl validator.FieldLevel) bool {
		desc := fl.Field().String()
		return len(desc) <= 5000
	})

	// Deadline must be in the future when provided
	bv.validate.RegisterValidation("future_date", func(fl validator.FieldLevel) bool {
		field := fl.Field()

		if field.Kind() == reflect.Ptr && field.IsNil() {
			return true // Optional field
		}

		var deadline time.Time
		if field.Kind() == reflect.Ptr {
			deadline = field.Elem().Interface().(time.Time)
		} else {
			deadline = field.Interface().(time.Time)
		}

		return deadline.After(time.Now())
	})

	// opportunity type validation
	bv.validate.RegisterValidation("opportunity_type", func(fl validator.FieldLevel) bool {
		oType := fl.Field().String()
		validTypes := []models.OpportunityType{
			models.OpportunityResearch, models.OpportunityGrader, models.OpportunityTA,
			models.OpportunityInternship, models.OpportunityProject, models.OpportunityOther,
		}
		for _, vt := range validTypes {
			if models.OpportunityType(oType) == vt {
				return true
			}
		}
		return false
	})

	// experience type validation
	bv.validate.RegisterValidation("experience_type", func(fl validator.FieldLevel) bool {
		eType := fl.Field().String()
		validTypes := []models.ExperienceType{
			models.ExperienceWork, models.ExperienceResearch, models.ExperienceProject,
			models.ExperienceVolunteer, models.ExperienceOther,
		}
		for _, vt := range validTypes {
			if models.ExperienceType(eType) == vt {
				return true
			}
		}
		return false
	})

	// course status validation
	bv.validate.RegisterValidation("course_status", func(fl validator.FieldLevel) bool {
		status := fl.Field().String()
		return models.CourseStatus(status) == models.CourseOngoing ||
			models.CourseStatus(status) == models.CourseCompleted
	})

	// user role validation
	bv.validate.RegisterValidation("user_role", func(fl validator.FieldLevel) bool {
		role := fl.Field().String()
		return models.UserRole(role) == models.RoleStudent ||
			models.UserRole(role) == models.RoleProfessor
	})
}
