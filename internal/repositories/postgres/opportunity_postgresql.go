package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/campus-connect/campus-service/internal/cache"
	"github.com/campus-connect/campus-service/internal/models"
	"github.com/campus-connect/campus-service/internal/repositories"
)

type OpportunityPostgreSQL struct {
	db           *gorm.DB
	helpers      *SharedHelpers
	cacheManager *cache.CacheManager
}

func NewOpportunityPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.OpportunityRepository {
	return &OpportunityPostgreSQL{
		db:           db,
		helpers:      NewSharedHelpers(db),
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

// getDB returns the transaction DB if provided, otherwise returns the default DB
func (o *OpportunityPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return o.db
}

// Create creates a new opportunity and invalidates list caches
func (o *OpportunityPostgreSQL) Create(ctx context.Context, tx *gorm.DB, opportunity *models.Opportunity) error {
	if err := o.getDB(tx).WithContext(ctx).Create(opportunity).Error; err != nil {
		return fmt.Errorf("failed to create opportunity: %w", err)
	}
	cache.SafeInvalidatePattern(ctx, o.cacheManager.Opportunity, fmt.Sprintf("professor:%s:*", opportunity.ProfessorID))
	cache.SafeInvalidatePattern(ctx, o.cacheManager.Opportunity, "list:*")
	cache.SafeInvalidatePattern(ctx, o.cacheManager.Stats, fmt.Sprintf("professor:%s:*", opportunity.ProfessorID))

	return nil
}

// GetByID retrieves an opportunity by ID with caching
func (o *OpportunityPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Opportunity, error) {
	cacheKey := fmt.Sprintf("id:%d", id)
	var opportunity models.Opportunity

	err := o.cacheManager.Opportunity.CacheOrExecute(ctx, cacheKey, &opportunity, cache.OpportunityCacheConfig.TTL, func() (interface{}, error) {
		var dbOpportunity models.Opportunity
		err := o.getDB(tx).WithContext(ctx).First(&dbOpportunity, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, repositories.ErrNotFound
			}
			return nil, fmt.Errorf("failed to get opportunity: %w", err)
		}
		return &dbOpportunity, nil
	})

	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}

	return &opportunity, nil
}

// GetByIDWithProfessor retrieves an opportunity with its professor preloaded
// and the interest count computed. Not cached: the count changes too often.
func (o *OpportunityPostgreSQL) GetByIDWithProfessor(ctx context.Context, tx *gorm.DB, id uint) (*models.Opportunity, error) {
	var opportunity models.Opportunity
	err := o.getDB(tx).WithContext(ctx).
		Preload("Professor").
		First(&opportunity, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get opportunity with professor: %w", err)
	}

	count, err := o.helpers.CountInterests(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to count interests: %w", err)
	}
	opportunity.InterestCount = count

	return &opportunity, nil
}

// Update updates an opportunity and invalidates cache
func (o *OpportunityPostgreSQL) Update(ctx context.Context, tx *gorm.DB, opportunity *models.Opportunity) error {
	result := o.getDB(tx).WithContext(ctx).
		Model(&models.Opportunity{}).
		Where("id = ?", opportunity.ID).
		Updates(map[string]interface{}{
			"title":          opportunity.Title,
			"description":    opportunity.Description,
			"type":           opportunity.Type,
			"allow_interest": opportunity.AllowInterest,
			"deadline":       opportunity.Deadline,
			"updated_at":     opportunity.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update opportunity: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}

	cache.InvalidateOpportunityCache(ctx, o.cacheManager, opportunity.ID, opportunity.ProfessorID)

	return nil
}

// Delete soft deletes an opportunity. Interest rows are removed by the
// service inside the same transaction.
func (o *OpportunityPostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	var opportunity models.Opportunity
	if err := o.getDB(tx).WithContext(ctx).Select("id, professor_id").First(&opportunity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return repositories.ErrNotFound
		}
		return fmt.Errorf("failed to get opportunity before delete: %w", err)
	}

	if err := o.getDB(tx).WithContext(ctx).Delete(&models.Opportunity{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete opportunity: %w", err)
	}

	cache.InvalidateOpportunityCache(ctx, o.cacheManager, id, opportunity.ProfessorID)

	return nil
}

// List returns opportunities matching the filters with the total count
func (o *OpportunityPostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.OpportunityFilters) ([]*models.Opportunity, int64, error) {
	var opportunities []*models.Opportunity
	var total int64

	base := o.getDB(tx).WithContext(ctx).Model(&models.Opportunity{})
	base = o.helpers.ApplyOpportunityFilters(base, filters)

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count opportunities: %w", err)
	}

	query := o.getDB(tx).WithContext(ctx).Model(&models.Opportunity{}).Preload("Professor")
	query = o.helpers.ApplyOpportunityFilters(query, filters)
	query = o.helpers.ApplyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)

	if err := query.Find(&opportunities).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list opportunities: %w", err)
	}

	if err := o.fillInterestCounts(ctx, tx, opportunities); err != nil {
		return nil, 0, err
	}

	return opportunities, total, nil
}

// GetByProfessor returns a professor's own opportunities with counts
func (o *OpportunityPostgreSQL) GetByProfessor(ctx context.Context, tx *gorm.DB, professorID string, filters repositories.OpportunityFilters) ([]*models.Opportunity, int64, error) {
	filters.ProfessorID = &professorID
	return o.List(ctx, tx, filters)
}

// DeleteByProfessor removes all opportunities owned by a professor (account cleanup)
func (o *OpportunityPostgreSQL) DeleteByProfessor(ctx context.Context, tx *gorm.DB, professorID string) error {
	if err := o.getDB(tx).WithContext(ctx).
		Unscoped().
		Where("professor_id = ?", professorID).
		Delete(&models.Opportunity{}).Error; err != nil {
		return fmt.Errorf("failed to delete opportunities by professor: %w", err)
	}

	cache.SafeInvalidatePattern(ctx, o.cacheManager.Opportunity, fmt.Sprintf("professor:%s:*", professorID))
	cache.SafeInvalidatePattern(ctx, o.cacheManager.Opportunity, "list:*")
	cache.SafeInvalidatePattern(ctx, o.cacheManager.Opportunity, "id:*")
	cache.SafeInvalidatePattern(ctx, o.cacheManager.Stats, fmt.Sprintf("professor:%s:*", professorID))

	return nil
}

// fillInterestCounts computes interest counts for a page of opportunities
// with a single grouped query.
func (o *OpportunityPostgreSQL) fillInterestCounts(ctx context.Context, tx *gorm.DB, opportunities []*models.Opportunity) error {
	if len(opportunities) == 0 {
		return nil
	}

	ids := make([]uint, len(opportunities))
	for i, op := range opportunities {
		ids[i] = op.ID
	}

	type countRow struct {
		OpportunityID uint
		Count         int64
	}
	var rows []countRow
	err := o.getDB(tx).WithContext(ctx).
		Model(&models.Interest{}).
		Select("opportunity_id, COUNT(*) as count").
		Where("opportunity_id IN ?", ids).
		Group("opportunity_id").
		Scan(&rows).Error
	if err != nil {
		return fmt.Errorf("failed to count interests per opportunity: %w", err)
	}

	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.OpportunityID] = row.Count
	}
	applyInterestCounts(opportunities, counts)

	return nil
}

// applyInterestCounts merges grouped counts onto the page; opportunities
// with no interest rows get zero.
func applyInterestCounts(opportunities []*models.Opportunity, counts map[uint]int64) {
	for _, op := range opportunities {
		op.InterestCount = counts[op.ID]
	}
}
