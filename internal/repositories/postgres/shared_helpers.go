package postgres

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/campus-connect/campus-service/internal/models"
	"github.com/campus-connect/campus-service/internal/repositories"
)

// SharedHelpers contains common database operations
type SharedHelpers struct {
	db *gorm.DB
}

func NewSharedHelpers(db *gorm.DB) *SharedHelpers {
	return &SharedHelpers{db: db}
}

// CountInterests counts interests for an opportunity
func (h *SharedHelpers) CountInterests(ctx context.Context, opportunityID uint) (int64, error) {
	var count int64
	err := h.db.WithContext(ctx).
		Model(&models.Interest{}).
		Where("opportunity_id = ?", opportunityID).
		Count(&count).Error
	return count, err
}

// CountInterestsByProfessor counts interests across a professor's opportunities
func (h *SharedHelpers) CountInterestsByProfessor(ctx context.Context, professorID string) (int64, error) {
	var count int64
	err := h.db.WithContext(ctx).
		Model(&models.Interest{}).
		Where("professor_id = ?", professorID).
		Count(&count).Error
	return count, err
}

// ApplyOpportunityFilters applies common filters to opportunity queries
func (h *SharedHelpers) ApplyOpportunityFilters(query *gorm.DB, filters repositories.OpportunityFilters) *gorm.DB {
	if filters.ProfessorID != nil {
		query = query.Where("professor_id = ?", *filters.ProfessorID)
	}
	if filters.Type != nil {
		query = query.Where("type = ?", *filters.Type)
	}
	if filters.AllowInterest != nil {
		query = query.Where("allow_interest = ?", *filters.AllowInterest)
	}
	return query
}

// ApplyDirectoryFilters applies exact-match directory facets to user queries.
// The free-text query matches name, department, major, year, role and tags.
func (h *SharedHelpers) ApplyDirectoryFilters(query *gorm.DB, filters repositories.DirectoryFilters) *gorm.DB {
	if filters.Role != nil {
		query = query.Where("role = ?", *filters.Role)
	}
	if filters.Department != nil {
		query = query.Where("department = ?", *filters.Department)
	}
	if filters.Major != nil {
		query = query.Where("major = ?", *filters.Major)
	}
	if filters.Year != nil {
		query = query.Where("year = ?", *filters.Year)
	}
	if filters.ExcludeID != "" {
		query = query.Where("id <> ?", filters.ExcludeID)
	}
	if q := strings.TrimSpace(filters.Query); q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		query = query.Where(
			"LOWER(full_name) LIKE ? OR LOWER(COALESCE(department, '')) LIKE ? OR LOWER(COALESCE(major, '')) LIKE ? OR LOWER(COALESCE(year, '')) LIKE ? OR LOWER(role) LIKE ? OR LOWER(COALESCE(experience_tags::text, '')) LIKE ?",
			pattern, pattern, pattern, pattern, pattern, pattern,
		)
	}
	return query
}

// ApplyPaginationAndSort applies pagination and sorting with SQL injection protection
func (h *SharedHelpers) ApplyPaginationAndSort(query *gorm.DB, sortBy, sortOrder string, limit, offset int) *gorm.DB {
	// Whitelist allowed sort columns
	allowedSortColumns := map[string]bool{
		"created_at": true,
		"updated_at": true,
		"id":         true,
		"title":      true,
		"deadline":   true,
		"type":       true,
	}

	if sortBy == "" || !allowedSortColumns[sortBy] {
		sortBy = "created_at"
	}

	if sortOrder != "asc" && sortOrder != "ASC" {
		sortOrder = "DESC"
	} else {
		sortOrder = "ASC"
	}

	query = query.Order(sortBy + " " + sortOrder)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	return query
}
