package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/campus-connect/campus-service/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// IsNotFoundError reports whether err indicates a missing record, either
// from this package or from GORM directly.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}

// ErrDuplicateInterest is returned when the conditional interest insert
// finds an existing (student, opportunity) row.
var ErrDuplicateInterest = errors.New("interest already exists")

// ===== SHARED FILTER STRUCTS =====

type DirectoryFilters struct {
	Query      string           `json:"query"`      // free text across name/role/major/department/year/tags
	Role       *models.UserRole `json:"role"`       // exact match
	Department *string          `json:"department"` // exact match
	Major      *string          `json:"major"`      // exact match
	Year       *string          `json:"year"`       // exact match
	ExcludeID  string           `json:"-"`          // the caller, never listed
}

// Constrained reports whether any filter beyond the caller exclusion is
// set, i.e. whether List returns a narrowed view of the directory.
func (f DirectoryFilters) Constrained() bool {
	return f.Query != "" || f.Role != nil || f.Department != nil || f.Major != nil || f.Year != nil
}

type OpportunityFilters struct {
	ProfessorID   *string                 `json:"professor_id"`
	Type          *models.OpportunityType `json:"type"`
	AllowInterest *bool                   `json:"allow_interest"`
	Limit         int                     `json:"limit"`
	Offset        int                     `json:"offset"`
	SortBy        string                  `json:"sort_by"`    // "created_at", "title", "deadline"
	SortOrder     string                  `json:"sort_order"` // "asc", "desc"
}

// ===== SHARED STATISTICS STRUCTS =====

type ProfessorStats struct {
	TotalOpportunities int64 `json:"total_opportunities"`
	OpenOpportunities  int64 `json:"open_opportunities"`
	TotalInterests     int64 `json:"total_interests"`
	TotalCourses       int64 `json:"total_courses"`
}

type RecentInterest struct {
	OpportunityID    uint      `json:"opportunity_id"`
	OpportunityTitle string    `json:"opportunity_title"`
	StudentName      string    `json:"student_name"`
	CreatedAt        time.Time `json:"created_at"`
}

// ===== IDENTITY =====

// Identity is what the identity provider knows about an account: the
// authoritative email-verification flag and the role claimed at signup.
type Identity struct {
	ID            string
	FullName      string
	Email         string
	Role          models.UserRole
	EmailVerified bool
	AvatarURL     string
}

// ===== REPOSITORY INTERFACES =====

type UserRepository interface {
	Create(ctx context.Context, tx *gorm.DB, user *models.User) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.User, error)
	Update(ctx context.Context, tx *gorm.DB, user *models.User) error
	UpdateFields(ctx context.Context, tx *gorm.DB, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, id string) error
	List(ctx context.Context, tx *gorm.DB, filters DirectoryFilters) ([]*models.User, error)
}

type OpportunityRepository interface {
	Create(ctx context.Context, tx *gorm.DB, opportunity *models.Opportunity) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Opportunity, error)
	GetByIDWithProfessor(ctx context.Context, tx *gorm.DB, id uint) (*models.Opportunity, error)
	Update(ctx context.Context, tx *gorm.DB, opportunity *models.Opportunity) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	List(ctx context.Context, tx *gorm.DB, filters OpportunityFilters) ([]*models.Opportunity, int64, error)
	GetByProfessor(ctx context.Context, tx *gorm.DB, professorID string, filters OpportunityFilters) ([]*models.Opportunity, int64, error)
	DeleteByProfessor(ctx context.Context, tx *gorm.DB, professorID string) error
}

type InterestRepository interface {
	// Create inserts conditionally on the composite (student, opportunity)
	// key and returns ErrDuplicateInterest when the row already exists.
	Create(ctx context.Context, tx *gorm.DB, interest *models.Interest) error
	Exists(ctx context.Context, tx *gorm.DB, studentID string, opportunityID uint) (bool, error)
	DeleteByStudentAndOpportunity(ctx context.Context, tx *gorm.DB, studentID string, opportunityID uint) error
	ListByOpportunity(ctx context.Context, tx *gorm.DB, opportunityID uint) ([]*models.Interest, error)
	ListByStudent(ctx context.Context, tx *gorm.DB, studentID string) ([]*models.Interest, error)
	ListOpportunityIDsByStudent(ctx context.Context, tx *gorm.DB, studentID string) ([]uint, error)
	DeleteByOpportunity(ctx context.Context, tx *gorm.DB, opportunityID uint) error
	DeleteByStudent(ctx context.Context, tx *gorm.DB, studentID string) error
}

type CourseRepository interface {
	Create(ctx context.Context, tx *gorm.DB, course *models.Course) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Course, error)
	GetByCode(ctx context.Context, tx *gorm.DB, code string) (*models.Course, error)
	Update(ctx context.Context, tx *gorm.DB, course *models.Course) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	ListByProfessor(ctx context.Context, tx *gorm.DB, professorID string) ([]*models.Course, error)
	DeleteByProfessor(ctx context.Context, tx *gorm.DB, professorID string) error
}

type EnrolledCourseRepository interface {
	Create(ctx context.Context, tx *gorm.DB, course *models.EnrolledCourse) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.EnrolledCourse, error)
	Update(ctx context.Context, tx *gorm.DB, course *models.EnrolledCourse) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	ListByStudent(ctx context.Context, tx *gorm.DB, studentID string) ([]*models.EnrolledCourse, error)
	DeleteByStudent(ctx context.Context, tx *gorm.DB, studentID string) error
}

type ExperienceRepository interface {
	Create(ctx context.Context, tx *gorm.DB, experience *models.Experience) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Experience, error)
	Update(ctx context.Context, tx *gorm.DB, experience *models.Experience) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	ListByUser(ctx context.Context, tx *gorm.DB, userID string) ([]*models.Experience, error)
	DeleteByUser(ctx context.Context, tx *gorm.DB, userID string) error
}

type DashboardRepository interface {
	GetProfessorStats(ctx context.Context, tx *gorm.DB, professorID string) (*ProfessorStats, error)
	GetRecentInterests(ctx context.Context, tx *gorm.DB, professorID string, limit int) ([]*RecentInterest, error)
}

// IdentityRepository reads account state from the identity provider.
// The campus service is not the owner of identity data.
type IdentityRepository interface {
	GetByID(ctx context.Context, id string) (*Identity, error)
}

// ===== REPOSITORY MANAGER =====

type Repository interface {
	User() UserRepository
	Opportunity() OpportunityRepository
	Interest() InterestRepository
	Course() CourseRepository
	EnrolledCourse() EnrolledCourseRepository
	Experience() ExperienceRepository
	Dashboard() DashboardRepository
	Identity() IdentityRepository

	WithTransaction(ctx context.Context, fn func(Repository) error) error
	Ping(ctx context.Context) error
	Close() error
}

type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
