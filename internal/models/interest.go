package models

import (
	"time"
)

// ApplicationSnapshot is the student's contact info denormalized into an
// interest record at creation time. It is immutable by design: later
// profile edits never touch existing interests, so a professor sees the
// profile exactly as it was when the student applied.
type ApplicationSnapshot struct {
	StudentName       string  `json:"student_name" gorm:"not null;size:100"`
	StudentEmail      string  `json:"student_email" gorm:"not null;size:255"`
	StudentResumeLink *string `json:"student_resume_link" gorm:"size:500"`
	StudentPhotoLink  *string `json:"student_photo_link" gorm:"size:500"`
}

// Interest joins one student to one opportunity. The composite unique
// index makes creation a single conditional insert; concurrent marks for
// the same pair cannot produce duplicate rows.
type Interest struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	OpportunityID uint   `json:"opportunity_id" gorm:"not null;uniqueIndex:idx_interest_student_opportunity;index"`
	StudentID     string `json:"student_id" gorm:"not null;uniqueIndex:idx_interest_student_opportunity;size:255;index"`
	ProfessorID   string `json:"professor_id" gorm:"not null;index;size:255"`

	ApplicationSnapshot `json:"snapshot" gorm:"embedded"`

	CreatedAt time.Time `json:"created_at" gorm:"index"`

	// Relations
	Opportunity Opportunity `json:"-" gorm:"foreignKey:OpportunityID"`
}

func (Interest) TableName() string {
	return "interests"
}

// NewSnapshot captures the student's current profile fields.
func NewSnapshot(student *User) ApplicationSnapshot {
	return ApplicationSnapshot{
		StudentName:       student.FullName,
		StudentEmail:      student.Email,
		StudentResumeLink: student.ResumeLink,
		StudentPhotoLink:  student.PhotoLink,
	}
}
