package models

import (
	"time"

	"gorm.io/gorm"
)

type CourseStatus string

const (
	CourseOngoing   CourseStatus = "Ongoing"
	CourseCompleted CourseStatus = "Completed"
)

// Course is a course offered by a professor. CourseCode is a generated
// short code students use when recording enrollment.
type Course struct {
	ID          uint         `json:"id" gorm:"primaryKey"`
	ProfessorID string       `json:"professor_id" gorm:"not null;index;size:255"`
	CourseName  string       `json:"course_name" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Description *string      `json:"description" gorm:"type:text" validate:"omitempty,max=2000"`
	Status      CourseStatus `json:"status" gorm:"not null;size:20;default:Ongoing" validate:"omitempty,oneof=Ongoing Completed"`
	Link        *string      `json:"link" gorm:"size:500" validate:"omitempty,url"`
	CourseCode  string       `json:"course_code" gorm:"uniqueIndex;not null;size:30"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Course) TableName() string {
	return "courses"
}

// EnrolledCourse is a student's own record of a course they take or took.
// It references offered courses only loosely, by course code name.
type EnrolledCourse struct {
	ID             uint         `json:"id" gorm:"primaryKey"`
	StudentID      string       `json:"student_id" gorm:"not null;index;size:255"`
	CourseCodeName string       `json:"course_code_name" gorm:"not null;size:100" validate:"required,min=1,max=100"`
	Semester       string       `json:"semester" gorm:"not null;size:50" validate:"required,min=1,max=50"`
	InstructorName *string      `json:"instructor_name" gorm:"size:100" validate:"omitempty,max=100"`
	Status         CourseStatus `json:"status" gorm:"not null;size:20;default:Ongoing" validate:"omitempty,oneof=Ongoing Completed"`
	Grade          *string      `json:"grade" gorm:"size:10" validate:"omitempty,max=10"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (EnrolledCourse) TableName() string {
	return "enrolled_courses"
}
