package services

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/campus-connect/campus-service/internal/models"
	"github.com/campus-connect/campus-service/internal/repositories"
)

// recentInterestLimit caps the dashboard activity feed.
const recentInterestLimit = 10

type dashboardService struct {
	repo   repositories.Repository
	db     *gorm.DB
	logger *slog.Logger
}

func NewDashboardService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger) DashboardService {
	return &dashboardService{
		repo:   repo,
		db:     db,
		logger: logger,
	}
}

// GetProfessorDashboard assembles the landing-page summary: posting and
// interest counts plus the latest interest activity.
func (s *dashboardService) GetProfessorDashboard(ctx context.Context, professorID string) (*DashboardResponse, error) {
	user, err := s.repo.User().GetByID(ctx, s.db, professorID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user.Role != models.RoleProfessor {
		return nil, NewPermissionError(professorID, 0, "dashboard", "view", "professor role required")
	}

	stats, err := s.repo.Dashboard().GetProfessorStats(ctx, s.db, professorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load stats: %w", err)
	}

	recent, err := s.repo.Dashboard().GetRecentInterests(ctx, s.db, professorID, recentInterestLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent interests: %w", err)
	}

	return &DashboardResponse{
		Stats:           stats,
		RecentInterests: recent,
	}, nil
}
