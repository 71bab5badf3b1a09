package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/campus-connect/campus-service/internal/models"
	"github.com/campus-connect/campus-service/internal/repositories"
)

type ExperiencePostgreSQL struct {
	db *gorm.DB
}

func NewExperiencePostgreSQL(db *gorm.DB) repositories.ExperienceRepository {
	return &ExperiencePostgreSQL{db: db}
}

func (e *ExperiencePostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return e.db
}

func (e *ExperiencePostgreSQL) Create(ctx context.Context, tx *gorm.DB, experience *models.Experience) error {
	if err := e.getDB(tx).WithContext(ctx).Create(experience).Error; err != nil {
		return fmt.Errorf("failed to create experience: %w", err)
	}
	return nil
}

func (e *ExperiencePostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Experience, error) {
	var experience models.Experience
	err := e.getDB(tx).WithContext(ctx).First(&experience, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get experience: %w", err)
	}
	return &experience, nil
}

func (e *ExperiencePostgreSQL) Update(ctx context.Context, tx *gorm.DB, experience *models.Experience) error {
	result := e.getDB(tx).WithContext(ctx).
		Model(&models.Experience{}).
		Where("id = ?", experience.ID).
		Updates(map[string]interface{}{
			"type":         experience.Type,
			"title":        experience.Title,
			"organization": experience.Organization,
			"start_date":   experience.StartDate,
			"end_date":     experience.EndDate,
			"is_current":   experience.IsCurrent,
			"description":  experience.Description,
			"link":         experience.Link,
			"updated_at":   experience.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update experience: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (e *ExperiencePostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	result := e.getDB(tx).WithContext(ctx).Delete(&models.Experience{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete experience: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// ListByUser returns experiences newest-start first, current entries on top
func (e *ExperiencePostgreSQL) ListByUser(ctx context.Context, tx *gorm.DB, userID string) ([]*models.Experience, error) {
	var experiences []*models.Experience
	err := e.getDB(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_current DESC, start_date DESC").
		Find(&experiences).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list experiences: %w", err)
	}
	return experiences, nil
}

func (e *ExperiencePostgreSQL) DeleteByUser(ctx context.Context, tx *gorm.DB, userID string) error {
	if err := e.getDB(tx).WithContext(ctx).
		Unscoped().
		Where("user_id = ?", userID).
		Delete(&models.Experience{}).Error; err != nil {
		return fmt.Errorf("failed to delete experiences by user: %w", err)
	}
	return nil
}
