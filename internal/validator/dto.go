package validator

import (
	"time"

	"github.com/campus-connect/campus-service/internal/models"
)

// SessionRequest carries the role the client signed in under. The server
// compares it against the role recorded at signup.
type SessionRequest struct {
	Role models.UserRole `json:"role" validate:"required,user_role"`
}

// OpportunityCreateRequest represents the request structure for posting opportunities
type OpportunityCreateRequest struct {
	Title         string                 `json:"title" validate:"required,opportunity_title"`
	Description   string                 `json:"description" validate:"required,opportunity_description"`
	Type          models.OpportunityType `json:"type" validate:"required,opportunity_type"`
	AllowInterest bool                   `json:"allow_interest"`
	Deadline      *time.Time             `json:"deadline" validate:"omitempty,future_date"`
}

// OpportunityUpdateRequest represents the request structure for editing opportunities
type OpportunityUpdateRequest struct {
	Title         *string                 `json:"title" validate:"omitempty,opportunity_title"`
	Description   *string                 `json:"description" validate:"omitempty,opportunity_description"`
	Type          *models.OpportunityType `json:"type" validate:"omitempty,opportunity_type"`
	AllowInterest *bool                   `json:"allow_interest"`
	Deadline      *time.Time              `json:"deadline" validate:"omitempty,future_date"`
	ClearDeadline bool                    `json:"clear_deadline"`
}

// ProfileUpdateRequest carries a partial profile edit; nil fields stay untouched
type ProfileUpdateRequest struct {
	FullName   *string `json:"full_name" validate:"omitempty,min=1,max=150"`
	Headline   *string `json:"headline" validate:"omitempty,max=200"`
	Pronouns   *string `json:"pronouns" validate:"omitempty,max=50"`
	About      *string `json:"about" validate:"omitempty,max=3000"`
	Department *string `json:"department" validate:"omitempty,max=150"`
	Major      *string `json:"major" validate:"omitempty,max=150"`
	Year       *string `json:"year" validate:"omitempty,max=50"`
}

// TagsUpdateRequest replaces the full experience tag list
type TagsUpdateRequest struct {
	Tags []string `json:"tags" validate:"required,max=15,dive,max=50"`
}

// ExperienceCreateRequest represents adding an experience entry
type ExperienceCreateRequest struct {
	Type         models.ExperienceType `json:"type" validate:"required,experience_type"`
	Title        string                `json:"title" validate:"required,min=1,max=200"`
	Organization string                `json:"organization" validate:"required,min=1,max=200"`
	StartDate    time.Time             `json:"start_date" validate:"required"`
	EndDate      *time.Time            `json:"end_date"`
	IsCurrent    bool                  `json:"is_current"`
	Description  *string               `json:"description" validate:"omitempty,max=2000"`
	Link         *string               `json:"link" validate:"omitempty,url,max=500"`
}

// ExperienceUpdateRequest represents editing an experience entry
type ExperienceUpdateRequest struct {
	Type         *models.ExperienceType `json:"type" validate:"omitempty,experience_type"`
	Title        *string                `json:"title" validate:"omitempty,min=1,max=200"`
	Organization *string                `json:"organization" validate:"omitempty,min=1,max=200"`
	StartDate    *time.Time             `json:"start_date"`
	EndDate      *time.Time             `json:"end_date"`
	IsCurrent    *bool                  `json:"is_current"`
	Description  *string                `json:"description" validate:"omitempty,max=2000"`
	Link         *string                `json:"link" validate:"omitempty,url,max=500"`
}

// EnrolledCourseCreateRequest represents adding a course a student has taken
type EnrolledCourseCreateRequest struct {
	CourseCodeName string              `json:"course_code_name" validate:"required,min=1,max=200"`
	Semester       string              `json:"semester" validate:"required,min=1,max=50"`
	InstructorName *string             `json:"instructor_name" validate:"omitempty,max=150"`
	Status         models.CourseStatus `json:"status" validate:"omitempty,course_status"`
	Grade          *string             `json:"grade" validate:"omitempty,max=10"`
}

// EnrolledCourseUpdateRequest represents editing an enrolled course
type EnrolledCourseUpdateRequest struct {
	CourseCodeName *string              `json:"course_code_name" validate:"omitempty,min=1,max=200"`
	Semester       *string              `json:"semester" validate:"omitempty,min=1,max=50"`
	InstructorName *string              `json:"instructor_name" validate:"omitempty,max=150"`
	Status         *models.CourseStatus `json:"status" validate:"omitempty,course_status"`
	Grade          *string              `json:"grade" validate:"omitempty,max=10"`
}

// CourseCreateRequest represents a professor registering a course they teach
type CourseCreateRequest struct {
	CourseName  string              `json:"course_name" validate:"required,min=1,max=200"`
	Description *string             `json:"description" validate:"omitempty,max=2000"`
	Status      models.CourseStatus `json:"status" validate:"omitempty,course_status"`
	Link        *string             `json:"link" validate:"omitempty,url,max=500"`
}

// CourseUpdateRequest represents editing an offered course
type CourseUpdateRequest struct {
	CourseName  *string              `json:"course_name" validate:"omitempty,min=1,max=200"`
	Description *string              `json:"description" validate:"omitempty,max=2000"`
	Status      *models.CourseStatus `json:"status" validate:"omitempty,course_status"`
	Link        *string              `json:"link" validate:"omitempty,url,max=500"`
}
