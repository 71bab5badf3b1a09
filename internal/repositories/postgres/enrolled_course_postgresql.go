package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/campus-connect/campus-service/internal/models"
	"github.com/campus-connect/campus-service/internal/repositories"
)

type EnrolledCoursePostgreSQL struct {
	db *gorm.DB
}

func NewEnrolledCoursePostgreSQL(db *gorm.DB) repositories.EnrolledCourseRepository {
	return &EnrolledCoursePostgreSQL{db: db}
}

func (e *EnrolledCoursePostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return e.db
}

func (e *EnrolledCoursePostgreSQL) Create(ctx context.Context, tx *gorm.DB, course *models.EnrolledCourse) error {
	if err := e.getDB(tx).WithContext(ctx).Create(course).Error; err != nil {
		return fmt.Errorf("failed to create enrolled course: %w", err)
	}
	return nil
}

func (e *EnrolledCoursePostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.EnrolledCourse, error) {
	var course models.EnrolledCourse
	err := e.getDB(tx).WithContext(ctx).First(&course, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get enrolled course: %w", err)
	}
	return &course, nil
}

func (e *EnrolledCoursePostgreSQL) Update(ctx context.Context, tx *gorm.DB, course *models.EnrolledCourse) error {
	result := e.getDB(tx).WithContext(ctx).
		Model(&models.EnrolledCourse{}).
		Where("id = ?", course.ID).
		Updates(map[string]interface{}{
			"course_code_name": course.CourseCodeName,
			"semester":         course.Semester,
			"instructor_name":  course.InstructorName,
			"status":           course.Status,
			"grade":            course.Grade,
			"updated_at":       course.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update enrolled course: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (e *EnrolledCoursePostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	result := e.getDB(tx).WithContext(ctx).Delete(&models.EnrolledCourse{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete enrolled course: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (e *EnrolledCoursePostgreSQL) ListByStudent(ctx context.Context, tx *gorm.DB, studentID string) ([]*models.EnrolledCourse, error) {
	var courses []*models.EnrolledCourse
	err := e.getDB(tx).WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&courses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list enrolled courses: %w", err)
	}
	return courses, nil
}

func (e *EnrolledCoursePostgreSQL) DeleteByStudent(ctx context.Context, tx *gorm.DB, studentID string) error {
	if err := e.getDB(tx).WithContext(ctx).
		Unscoped().
		Where("student_id = ?", studentID).
		Delete(&models.EnrolledCourse{}).Error; err != nil {
		return fmt.Errorf("failed to delete enrolled courses by student: %w", err)
	}
	return nil
}
