package models

import (
	"time"
)

type ExperienceType string

const (
	ExperienceWork      ExperienceType = "work"
	ExperienceResearch  ExperienceType = "research"
	ExperienceProject   ExperienceType = "project"
	ExperienceVolunteer ExperienceType = "volunteer"
	ExperienceOther     ExperienceType = "other"
)

// Experience is a structured record of a user's work/research/project
// history. EndDate is nil exactly when IsCurrent is true, and StartDate
// never exceeds EndDate; both rules are enforced at the validation layer.
type Experience struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	UserID       string         `json:"user_id" gorm:"not null;index;size:255"`
	Type         ExperienceType `json:"type" gorm:"not null;size:20" validate:"required,oneof=work research project volunteer other"`
	Title        string         `json:"title" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Organization string         `json:"organization" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	StartDate    time.Time      `json:"start_date" gorm:"not null"`
	EndDate      *time.Time     `json:"end_date"`
	IsCurrent    bool           `json:"is_current" gorm:"not null;default:false"`
	Description  *string        `json:"description" gorm:"type:text" validate:"omitempty,max=2000"`
	Link         *string        `json:"link" gorm:"size:500" validate:"omitempty,url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Experience) TableName() string {
	return "experiences"
}
