package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/campus-connect/campus-service/internal/models"
	"github.com/campus-connect/campus-service/internal/repositories"
)

type CoursePostgreSQL struct {
	db *gorm.DB
}

func NewCoursePostgreSQL(db *gorm.DB) repositories.CourseRepository {
	return &CoursePostgreSQL{db: db}
}

func (c *CoursePostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return c.db
}

func (c *CoursePostgreSQL) Create(ctx context.Context, tx *gorm.DB, course *models.Course) error {
	if err := c.getDB(tx).WithContext(ctx).Create(course).Error; err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}
	return nil
}

func (c *CoursePostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Course, error) {
	var course models.Course
	err := c.getDB(tx).WithContext(ctx).First(&course, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	return &course, nil
}

func (c *CoursePostgreSQL) GetByCode(ctx context.Context, tx *gorm.DB, code string) (*models.Course, error) {
	var course models.Course
	err := c.getDB(tx).WithContext(ctx).
		Where("course_code = ?", code).
		First(&course).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get course by code: %w", err)
	}
	return &course, nil
}

func (c *CoursePostgreSQL) Update(ctx context.Context, tx *gorm.DB, course *models.Course) error {
	result := c.getDB(tx).WithContext(ctx).
		Model(&models.Course{}).
		Where("id = ?", course.ID).
		Updates(map[string]interface{}{
			"course_name": course.CourseName,
			"description": course.Description,
			"status":      course.Status,
			"link":        course.Link,
			"updated_at":  course.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update course: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (c *CoursePostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	result := c.getDB(tx).WithContext(ctx).Delete(&models.Course{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete course: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (c *CoursePostgreSQL) ListByProfessor(ctx context.Context, tx *gorm.DB, professorID string) ([]*models.Course, error) {
	var courses []*models.Course
	err := c.getDB(tx).WithContext(ctx).
		Where("professor_id = ?", professorID).
		Order("created_at DESC").
		Find(&courses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list courses by professor: %w", err)
	}
	return courses, nil
}

func (c *CoursePostgreSQL) DeleteByProfessor(ctx context.Context, tx *gorm.DB, professorID string) error {
	if err := c.getDB(tx).WithContext(ctx).
		Unscoped().
		Where("professor_id = ?", professorID).
		Delete(&models.Course{}).Error; err != nil {
		return fmt.Errorf("failed to delete courses by professor: %w", err)
	}
	return nil
}
