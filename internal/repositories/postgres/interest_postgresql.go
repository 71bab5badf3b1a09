package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/campus-connect/campus-service/internal/cache"
	"github.com/campus-connect/campus-service/internal/models"
	"github.com/campus-connect/campus-service/internal/repositories"
)

type InterestPostgreSQL struct {
	db           *gorm.DB
	helpers      *SharedHelpers
	cacheManager *cache.CacheManager
}

func NewInterestPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.InterestRepository {
	return &InterestPostgreSQL{
		db:           db,
		helpers:      NewSharedHelpers(db),
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

// getDB returns the transaction DB if provided, otherwise returns the default DB
func (i *InterestPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return i.db
}

// Create inserts an interest conditionally on the (opportunity, student)
// unique index. A concurrent duplicate resolves at the database rather
// than by read-then-write, so exactly one of two simultaneous marks wins.
func (i *InterestPostgreSQL) Create(ctx context.Context, tx *gorm.DB, interest *models.Interest) error {
	result := i.getDB(tx).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "opportunity_id"}, {Name: "student_id"}},
			DoNothing: true,
		}).
		Create(interest)
	if result.Error != nil {
		return fmt.Errorf("failed to create interest: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrDuplicateInterest
	}

	i.invalidateStats(ctx, interest.OpportunityID, interest.ProfessorID)

	return nil
}

// Exists checks whether the student already marked interest
func (i *InterestPostgreSQL) Exists(ctx context.Context, tx *gorm.DB, studentID string, opportunityID uint) (bool, error) {
	var count int64
	err := i.getDB(tx).WithContext(ctx).
		Model(&models.Interest{}).
		Where("student_id = ? AND opportunity_id = ?", studentID, opportunityID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check interest existence: %w", err)
	}
	return count > 0, nil
}

// DeleteByStudentAndOpportunity removes the student's interest row
func (i *InterestPostgreSQL) DeleteByStudentAndOpportunity(ctx context.Context, tx *gorm.DB, studentID string, opportunityID uint) error {
	var interest models.Interest
	err := i.getDB(tx).WithContext(ctx).
		Where("student_id = ? AND opportunity_id = ?", studentID, opportunityID).
		First(&interest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return repositories.ErrNotFound
		}
		return fmt.Errorf("failed to get interest before delete: %w", err)
	}

	if err := i.getDB(tx).WithContext(ctx).Delete(&interest).Error; err != nil {
		return fmt.Errorf("failed to delete interest: %w", err)
	}

	i.invalidateStats(ctx, interest.OpportunityID, interest.ProfessorID)

	return nil
}

// ListByOpportunity returns applicants for an opportunity, newest first
func (i *InterestPostgreSQL) ListByOpportunity(ctx context.Context, tx *gorm.DB, opportunityID uint) ([]*models.Interest, error) {
	var interests []*models.Interest
	err := i.getDB(tx).WithContext(ctx).
		Where("opportunity_id = ?", opportunityID).
		Order("created_at DESC").
		Find(&interests).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list interests by opportunity: %w", err)
	}
	return interests, nil
}

// ListByStudent returns the student's interests with opportunities preloaded
func (i *InterestPostgreSQL) ListByStudent(ctx context.Context, tx *gorm.DB, studentID string) ([]*models.Interest, error) {
	var interests []*models.Interest
	err := i.getDB(tx).WithContext(ctx).
		Preload("Opportunity").
		Preload("Opportunity.Professor").
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&interests).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list interests by student: %w", err)
	}
	return interests, nil
}

// ListOpportunityIDsByStudent returns only the opportunity IDs the student
// marked, for rebuilding the interested set.
func (i *InterestPostgreSQL) ListOpportunityIDsByStudent(ctx context.Context, tx *gorm.DB, studentID string) ([]uint, error) {
	var ids []uint
	err := i.getDB(tx).WithContext(ctx).
		Model(&models.Interest{}).
		Where("student_id = ?", studentID).
		Pluck("opportunity_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list opportunity ids by student: %w", err)
	}
	return ids, nil
}

// DeleteByOpportunity removes all interests for an opportunity (cascade on delete)
func (i *InterestPostgreSQL) DeleteByOpportunity(ctx context.Context, tx *gorm.DB, opportunityID uint) error {
	if err := i.getDB(tx).WithContext(ctx).
		Where("opportunity_id = ?", opportunityID).
		Delete(&models.Interest{}).Error; err != nil {
		return fmt.Errorf("failed to delete interests by opportunity: %w", err)
	}

	cache.SafeInvalidatePattern(ctx, i.cacheManager.Stats, fmt.Sprintf("opportunity:%d:*", opportunityID))

	return nil
}

// DeleteByStudent removes all interests a student ever marked (account cleanup)
func (i *InterestPostgreSQL) DeleteByStudent(ctx context.Context, tx *gorm.DB, studentID string) error {
	if err := i.getDB(tx).WithContext(ctx).
		Where("student_id = ?", studentID).
		Delete(&models.Interest{}).Error; err != nil {
		return fmt.Errorf("failed to delete interests by student: %w", err)
	}

	cache.SafeInvalidatePattern(ctx, i.cacheManager.Stats, "opportunity:*")

	return nil
}

func (i *InterestPostgreSQL) invalidateStats(ctx context.Context, opportunityID uint, professorID string) {
	cache.SafeInvalidatePattern(ctx, i.cacheManager.Stats, fmt.Sprintf("opportunity:%d:*", opportunityID))
	cache.SafeInvalidatePattern(ctx, i.cacheManager.Stats, fmt.Sprintf("professor:%s:*", professorID))
}
