package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/campus-connect/campus-service/internal/cache"
	"github.com/campus-connect/campus-service/internal/repositories"
	"github.com/campus-connect/campus-service/internal/repositories/casdoor"
)

// PostgreSQLRepository implements the main Repository interface
type PostgreSQLRepository struct {
	db           *gorm.DB
	redisClient  *redis.Client
	cacheManager *cache.CacheManager

	// Repository instances
	user           repositories.UserRepository
	opportunity    repositories.OpportunityRepository
	interest       repositories.InterestRepository
	course         repositories.CourseRepository
	enrolledCourse repositories.EnrolledCourseRepository
	experience     repositories.ExperienceRepository
	dashboard      repositories.DashboardRepository
	identity       repositories.IdentityRepository
}

// RepositoryConfig holds configuration for repository initialization
type RepositoryConfig struct {
	DB            *gorm.DB
	RedisClient   *redis.Client
	CasdoorConfig casdoor.CasdoorConfig
}

// NewPostgreSQLRepository creates a new repository manager with all sub-repositories
func NewPostgreSQLRepository(config RepositoryConfig) repositories.Repository {
	cacheManager := cache.NewCacheManager(config.RedisClient)

	repo := &PostgreSQLRepository{
		db:           config.DB,
		redisClient:  config.RedisClient,
		cacheManager: cacheManager,
	}

	repo.user = NewUserPostgreSQL(config.DB, config.RedisClient)
	repo.opportunity = NewOpportunityPostgreSQL(config.DB, config.RedisClient)
	repo.interest = NewInterestPostgreSQL(config.DB, config.RedisClient)
	repo.course = NewCoursePostgreSQL(config.DB)
	repo.enrolledCourse = NewEnrolledCoursePostgreSQL(config.DB)
	repo.experience = NewExperiencePostgreSQL(config.DB)
	repo.dashboard = NewDashboardRepository(config.DB, config.RedisClient)

	// Identity comes from Casdoor, not Postgres
	repo.identity = casdoor.NewIdentityCasdoor(config.CasdoorConfig, config.RedisClient)

	return repo
}

// User returns the user repository
func (r *PostgreSQLRepository) User() repositories.UserRepository {
	return r.user
}

// Opportunity returns the opportunity repository
func (r *PostgreSQLRepository) Opportunity() repositories.OpportunityRepository {
	return r.opportunity
}

// Interest returns the interest repository
func (r *PostgreSQLRepository) Interest() repositories.InterestRepository {
	return r.interest
}

// Course returns the offered-course repository
func (r *PostgreSQLRepository) Course() repositories.CourseRepository {
	return r.course
}

// EnrolledCourse returns the enrolled-course repository
func (r *PostgreSQLRepository) EnrolledCourse() repositories.EnrolledCourseRepository {
	return r.enrolledCourse
}

// Experience returns the experience repository
func (r *PostgreSQLRepository) Experience() repositories.ExperienceRepository {
	return r.experience
}

// Dashboard returns the dashboard repository
func (r *PostgreSQLRepository) Dashboard() repositories.DashboardRepository {
	return r.dashboard
}

// Identity returns the identity-provider repository
func (r *PostgreSQLRepository) Identity() repositories.IdentityRepository {
	return r.identity
}

// WithTransaction executes a function within a database transaction
func (r *PostgreSQLRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &PostgreSQLRepository{
			db:           tx,
			redisClient:  r.redisClient,
			cacheManager: r.cacheManager,
		}

		txRepo.user = NewUserPostgreSQL(tx, r.redisClient)
		txRepo.opportunity = NewOpportunityPostgreSQL(tx, r.redisClient)
		txRepo.interest = NewInterestPostgreSQL(tx, r.redisClient)
		txRepo.course = NewCoursePostgreSQL(tx)
		txRepo.enrolledCourse = NewEnrolledCoursePostgreSQL(tx)
		txRepo.experience = NewExperiencePostgreSQL(tx)
		txRepo.dashboard = NewDashboardRepository(tx, r.redisClient)

		// Identity repository doesn't need a transaction (it's external)
		txRepo.identity = r.identity

		return fn(txRepo)
	})
}

// Ping checks the health of database and cache connections
func (r *PostgreSQLRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	if r.redisClient != nil {
		if err := r.cacheManager.HealthCheck(ctx); err != nil {
			return fmt.Errorf("cache ping failed: %w", err)
		}
	}

	return nil
}

// Close closes all connections
func (r *PostgreSQLRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	if r.redisClient != nil {
		if err := r.redisClient.Close(); err != nil {
			return fmt.Errorf("failed to close Redis: %w", err)
		}
	}

	return nil
}

// RepositoryManager implements the RepositoryManager interface
type RepositoryManager struct {
	config RepositoryConfig
	repo   repositories.Repository
}

// NewRepositoryManager creates a new repository manager
func NewRepositoryManager(config RepositoryConfig) repositories.RepositoryManager {
	return &RepositoryManager{
		config: config,
	}
}

// Initialize initializes all repositories and connections
func (rm *RepositoryManager) Initialize() error {
	if rm.config.DB == nil {
		return fmt.Errorf("database connection is required")
	}

	sqlDB, err := rm.config.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}

	if rm.config.RedisClient != nil {
		if _, err := rm.config.RedisClient.Ping(ctx).Result(); err != nil {
			return fmt.Errorf("Redis connection failed: %w", err)
		}
	}

	rm.repo = NewPostgreSQLRepository(rm.config)

	return nil
}

// GetRepository returns the repository instance
func (rm *RepositoryManager) GetRepository() repositories.Repository {
	return rm.repo
}

// HealthCheck checks the health of all repository connections
func (rm *RepositoryManager) HealthCheck(ctx context.Context) error {
	if rm.repo == nil {
		return fmt.Errorf("repository not initialized")
	}

	return rm.repo.Ping(ctx)
}

// Shutdown gracefully shuts down all repository connections
func (rm *RepositoryManager) Shutdown(ctx context.Context) error {
	if rm.repo == nil {
		return nil
	}

	return rm.repo.Close()
}
