package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/campus-connect/campus-service/internal/cache"
	"github.com/campus-connect/campus-service/internal/models"
	"github.com/campus-connect/campus-service/internal/repositories"
)

type DashboardPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewDashboardRepository(db *gorm.DB, redisClient *redis.Client) repositories.DashboardRepository {
	return &DashboardPostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

func (d *DashboardPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return d.db
}

// GetProfessorStats aggregates the professor's dashboard counters with caching
func (d *DashboardPostgreSQL) GetProfessorStats(ctx context.Context, tx *gorm.DB, professorID string) (*repositories.ProfessorStats, error) {
	cacheKey := fmt.Sprintf("professor:%s:overview", professorID)
	var stats repositories.ProfessorStats

	err := d.cacheManager.Stats.CacheOrExecute(ctx, cacheKey, &stats, cache.StatsCacheConfig.TTL, func() (interface{}, error) {
		db := d.getDB(tx).WithContext(ctx)
		var result repositories.ProfessorStats
		now := time.Now()

		if err := db.Model(&models.Opportunity{}).
			Where("professor_id = ?", professorID).
			Count(&result.TotalOpportunities).Error; err != nil {
			return nil, fmt.Errorf("failed to count opportunities: %w", err)
		}

		if err := db.Model(&models.Opportunity{}).
			Where("professor_id = ? AND allow_interest = ? AND (deadline IS NULL OR deadline > ?)", professorID, true, now).
			Count(&result.OpenOpportunities).Error; err != nil {
			return nil, fmt.Errorf("failed to count open opportunities: %w", err)
		}

		if err := db.Model(&models.Interest{}).
			Where("professor_id = ?", professorID).
			Count(&result.TotalInterests).Error; err != nil {
			return nil, fmt.Errorf("failed to count interests: %w", err)
		}

		if err := db.Model(&models.Course{}).
			Where("professor_id = ?", professorID).
			Count(&result.TotalCourses).Error; err != nil {
			return nil, fmt.Errorf("failed to count courses: %w", err)
		}

		return &result, nil
	})

	if err != nil {
		return nil, err
	}

	return &stats, nil
}

// GetRecentInterests returns the latest applicants across the professor's
// opportunities for the dashboard activity feed.
func (d *DashboardPostgreSQL) GetRecentInterests(ctx context.Context, tx *gorm.DB, professorID string, limit int) ([]*repositories.RecentInterest, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	var rows []*repositories.RecentInterest
	err := d.getDB(tx).WithContext(ctx).
		Model(&models.Interest{}).
		Select("interests.opportunity_id, opportunities.title AS opportunity_title, interests.student_name, interests.created_at").
		Joins("JOIN opportunities ON opportunities.id = interests.opportunity_id").
		Where("interests.professor_id = ?", professorID).
		Order("interests.created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get recent interests: %w", err)
	}

	return rows, nil
}
