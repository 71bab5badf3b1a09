package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/campus-connect/campus-service/internal/models"
	"github.com/campus-connect/campus-service/internal/repositories"
)

type directoryService struct {
	repo   repositories.Repository
	db     *gorm.DB
	logger *slog.Logger
}

func NewDirectoryService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger) DirectoryService {
	return &directoryService{
		repo:   repo,
		db:     db,
		logger: logger,
	}
}

// Search lists every user except the caller, narrowed by the given
// filters. Filters compose with AND; empty filters return the whole
// directory.
func (s *directoryService) Search(ctx context.Context, callerID string, req *DirectoryRequest) (*DirectoryResponse, error) {
	// A missing caller profile is fatal for the view, not an empty result.
	if _, err := s.repo.User().GetByID(ctx, s.db, callerID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load caller profile: %w", err)
	}

	filters := repositories.DirectoryFilters{
		Query:      strings.TrimSpace(req.Query),
		Role:       req.Role,
		Department: req.Department,
		Major:      req.Major,
		Year:       req.Year,
		ExcludeID:  callerID,
	}

	users, err := s.repo.User().List(ctx, s.db, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to search directory: %w", err)
	}

	// Facets populate the filter dropdowns, so they come from the whole
	// directory (minus the caller), not from the narrowed result.
	facetSource := users
	if filters.Constrained() {
		facetSource, err = s.repo.User().List(ctx, s.db, repositories.DirectoryFilters{ExcludeID: callerID})
		if err != nil {
			return nil, fmt.Errorf("failed to load directory facets: %w", err)
		}
	}

	return &DirectoryResponse{
		Users:  users,
		Facets: computeDirectoryFacets(facetSource),
		Total:  len(users),
	}, nil
}

// GetUser returns another user's public profile with their experiences
// and tags. Enrolled courses stay private to the owner.
func (s *directoryService) GetUser(ctx context.Context, callerID, userID string) (*ProfileResponse, error) {
	user, err := s.repo.User().GetByID(ctx, s.db, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	experiences, err := s.repo.Experience().ListByUser(ctx, s.db, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load experiences: %w", err)
	}

	return &ProfileResponse{
		User:        user,
		Tags:        user.Tags(),
		Experiences: experiences,
	}, nil
}

// computeDirectoryFacets derives the distinct filter values present in a
// user set: departments from professors, majors and years from students.
// Each list is deduplicated case-insensitively and sorted.
func computeDirectoryFacets(users []*models.User) DirectoryFacets {
	departments := map[string]string{}
	majors := map[string]string{}
	years := map[string]string{}

	for _, user := range users {
		switch user.Role {
		case models.RoleProfessor:
			collectFacet(departments, user.Department)
		case models.RoleStudent:
			collectFacet(majors, user.Major)
			collectFacet(years, user.Year)
		}
	}

	return DirectoryFacets{
		Departments: sortedFacet(departments),
		Majors:      sortedFacet(majors),
		Years:       sortedFacet(years),
	}
}

func collectFacet(seen map[string]string, value *string) {
	if value == nil {
		return
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return
	}
	key := strings.ToLower(trimmed)
	if _, ok := seen[key]; !ok {
		seen[key] = trimmed
	}
}

func sortedFacet(seen map[string]string) []string {
	out := make([]string, 0, len(seen))
	for _, v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
