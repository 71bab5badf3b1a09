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

type UserPostgreSQL struct {
	db           *gorm.DB
	helpers      *SharedHelpers
	cacheManager *cache.CacheManager
}

func NewUserPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.UserRepository {
	return &UserPostgreSQL{
		db:           db,
		helpers:      NewSharedHelpers(db),
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

// getDB returns the transaction DB if provided, otherwise returns the default DB
func (u *UserPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return u.db
}

// Create creates a new user profile row and invalidates directory caches
func (u *UserPostgreSQL) Create(ctx context.Context, tx *gorm.DB, user *models.User) error {
	if err := u.getDB(tx).WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	cache.InvalidateUserCache(ctx, u.cacheManager, user.ID)

	return nil
}

// GetByID retrieves a user by ID with caching
func (u *UserPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.User, error) {
	cacheKey := fmt.Sprintf("id:%s", id)
	var user models.User

	err := u.cacheManager.User.CacheOrExecute(ctx, cacheKey, &user, cache.UserCacheConfig.TTL, func() (interface{}, error) {
		var dbUser models.User
		err := u.getDB(tx).WithContext(ctx).
			Where("id = ?", id).
			First(&dbUser).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, repositories.ErrNotFound
			}
			return nil, fmt.Errorf("failed to get user: %w", err)
		}
		return &dbUser, nil
	})

	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}

	return &user, nil
}

// Update saves the full user row and invalidates profile caches
func (u *UserPostgreSQL) Update(ctx context.Context, tx *gorm.DB, user *models.User) error {
	if err := u.getDB(tx).WithContext(ctx).Save(user).Error; err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	cache.InvalidateUserCache(ctx, u.cacheManager, user.ID)

	return nil
}

// UpdateFields applies a partial update; absent fields stay untouched
func (u *UserPostgreSQL) UpdateFields(ctx context.Context, tx *gorm.DB, id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}

	result := u.getDB(tx).WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("failed to update user fields: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	cache.InvalidateUserCache(ctx, u.cacheManager, id)

	return nil
}

// Delete hard deletes a user row (account removal path)
func (u *UserPostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	result := u.getDB(tx).WithContext(ctx).
		Unscoped().
		Where("id = ?", id).
		Delete(&models.User{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	cache.InvalidateUserCache(ctx, u.cacheManager, id)

	return nil
}

// List returns directory entries matching the filters, name ascending
func (u *UserPostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.DirectoryFilters) ([]*models.User, error) {
	var users []*models.User

	query := u.getDB(tx).WithContext(ctx).Model(&models.User{})
	query = u.helpers.ApplyDirectoryFilters(query, filters)

	if err := query.Order("full_name ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}
