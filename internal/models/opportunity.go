package models

import (
	"time"

	"gorm.io/gorm"
)

type OpportunityType string

const (
	OpportunityResearch   OpportunityType = "Research"
	OpportunityGrader     OpportunityType = "Grader"
	OpportunityTA         OpportunityType = "TA"
	OpportunityInternship OpportunityType = "Internship"
	OpportunityProject    OpportunityType = "Project"
	OpportunityOther      OpportunityType = "Other"
)

// Opportunity is a position posted by a professor that students may
// express interest in. Owned exclusively by the posting professor.
type Opportunity struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	ProfessorID   string          `json:"professor_id" gorm:"not null;index;size:255"`
	Title         string          `json:"title" gorm:"not null;size:200;index" validate:"required,min=1,max=200"`
	Description   string          `json:"description" gorm:"not null;type:text" validate:"required,max=5000"`
	Type          OpportunityType `json:"type" gorm:"not null;size:30;index" validate:"required,oneof=Research Grader TA Internship Project Other"`
	AllowInterest bool            `json:"allow_interest" gorm:"not null;default:true"`
	Deadline      *time.Time      `json:"deadline"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Professor User       `json:"professor" gorm:"foreignKey:ProfessorID"`
	Interests []Interest `json:"-" gorm:"foreignKey:OpportunityID"`

	// Computed fields (not stored)
	InterestCount int64 `json:"interest_count" gorm:"-"`
}

func (Opportunity) TableName() string {
	return "opportunities"
}

// Open reports whether students may still express interest: the flag is
// set and the deadline, if any, has not passed.
func (o *Opportunity) Open(now time.Time) bool {
	if !o.AllowInterest {
		return false
	}
	return o.Deadline == nil || o.Deadline.After(now)
}
