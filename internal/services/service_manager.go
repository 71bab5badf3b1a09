package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"gorm.io/gorm"

	"github.com/campus-connect/campus-service/internal/cache"
	"github.com/campus-connect/campus-service/internal/events"
	"github.com/campus-connect/campus-service/internal/repositories"
	"github.com/campus-connect/campus-service/internal/storage"
	"github.com/campus-connect/campus-service/internal/validator"
)

// ServiceConfig carries everything the services need to run.
type ServiceConfig struct {
	Repository  repositories.Repository
	DB          *gorm.DB
	Logger      *slog.Logger
	Validator   *validator.Validator
	Cache       *cache.CacheManager
	InterestSet *cache.InterestSet
	Publisher   events.EventPublisher
	FileStore   *storage.FileStore
}

type serviceManager struct {
	mu sync.RWMutex

	config ServiceConfig

	auth        AuthService
	directory   DirectoryService
	opportunity OpportunityService
	interest    InterestService
	profile     ProfileService
	course      CourseService
	dashboard   DashboardService
	export      ExportService
	cleanup     CleanupService

	initialized bool
	shutdown    bool
}

// NewServiceManager wires all domain services from a single config.
func NewServiceManager(config ServiceConfig) ServiceManager {
	return &serviceManager{config: config}
}

func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return fmt.Errorf("service manager already initialized")
	}
	if sm.shutdown {
		return fmt.Errorf("service manager has been shut down")
	}

	cfg := sm.config
	if cfg.Repository == nil {
		return fmt.Errorf("repository is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Validator == nil {
		cfg.Validator = validator.New()
	}

	sm.auth = NewAuthService(cfg.Repository, cfg.DB, cfg.Logger, cfg.Validator)
	sm.directory = NewDirectoryService(cfg.Repository, cfg.DB, cfg.Logger)
	sm.interest = NewInterestService(cfg.Repository, cfg.DB, cfg.Logger, cfg.InterestSet, cfg.Publisher)
	sm.opportunity = NewOpportunityService(cfg.Repository, cfg.DB, cfg.Logger, cfg.Validator, sm.interest, cfg.InterestSet, cfg.Publisher)
	sm.profile = NewProfileService(cfg.Repository, cfg.DB, cfg.Logger, cfg.Validator, cfg.Cache, cfg.FileStore)
	sm.course = NewCourseService(cfg.Repository, cfg.DB, cfg.Logger, cfg.Validator)
	sm.dashboard = NewDashboardService(cfg.Repository, cfg.DB, cfg.Logger)
	sm.export = NewExportService(cfg.Repository, cfg.DB, cfg.Logger)
	sm.cleanup = NewCleanupService(cfg.Repository, cfg.DB, cfg.Logger, cfg.Cache, cfg.InterestSet, cfg.FileStore, cfg.Publisher)

	sm.initialized = true
	cfg.Logger.InfoContext(ctx, "service manager initialized")
	return nil
}

func (sm *serviceManager) checkState(name string) {
	if !sm.initialized {
		panic(fmt.Sprintf("service manager not initialized: %s requested", name))
	}
	if sm.shutdown {
		panic(fmt.Sprintf("service manager shut down: %s requested", name))
	}
}

func (sm *serviceManager) Auth() AuthService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.checkState("auth service")
	return sm.auth
}

func (sm *serviceManager) Directory() DirectoryService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.checkState("directory service")
	return sm.directory
}

func (sm *serviceManager) Opportunity() OpportunityService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.checkState("opportunity service")
	return sm.opportunity
}

func (sm *serviceManager) Interest() InterestService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.checkState("interest service")
	return sm.interest
}

func (sm *serviceManager) Profile() ProfileService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.checkState("profile service")
	return sm.profile
}

func (sm *serviceManager) Course() CourseService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.checkState("course service")
	return sm.course
}

func (sm *serviceManager) Dashboard() DashboardService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.checkState("dashboard service")
	return sm.dashboard
}

func (sm *serviceManager) Export() ExportService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.checkState("export service")
	return sm.export
}

func (sm *serviceManager) Cleanup() CleanupService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.checkState("cleanup service")
	return sm.cleanup
}

func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}
	if sm.shutdown {
		return fmt.Errorf("service manager shut down")
	}
	return sm.config.Repository.Ping(ctx)
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}
	sm.shutdown = true

	if sm.config.Publisher != nil {
		if err := sm.config.Publisher.Close(); err != nil {
			sm.config.Logger.ErrorContext(ctx, "event publisher close failed", "error", err)
		}
	}

	sm.config.Logger.InfoContext(ctx, "service manager shut down")
	return nil
}
