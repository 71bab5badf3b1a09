package services

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/campus-connect/campus-service/internal/models"
	"github.com/campus-connect/campus-service/internal/repositories"
	"github.com/campus-connect/campus-service/internal/validator"
)

// ===== REQUEST TYPES =====
// Request DTOs live in the validator package so custom validation tags
// stay next to their rules; the aliases keep handler imports flat.

type SessionRequest = validator.SessionRequest
type OpportunityCreateRequest = validator.OpportunityCreateRequest
type OpportunityUpdateRequest = validator.OpportunityUpdateRequest
type ProfileUpdateRequest = validator.ProfileUpdateRequest
type TagsUpdateRequest = validator.TagsUpdateRequest
type ExperienceCreateRequest = validator.ExperienceCreateRequest
type ExperienceUpdateRequest = validator.ExperienceUpdateRequest
type EnrolledCourseCreateRequest = validator.EnrolledCourseCreateRequest
type EnrolledCourseUpdateRequest = validator.EnrolledCourseUpdateRequest
type CourseCreateRequest = validator.CourseCreateRequest
type CourseUpdateRequest = validator.CourseUpdateRequest

// OpportunityListRequest carries feed filters and paging.
type OpportunityListRequest struct {
	Type      *models.OpportunityType `json:"type"`
	Limit     int                     `json:"limit"`
	Offset    int                     `json:"offset"`
	SortBy    string                  `json:"sort_by"`
	SortOrder string                  `json:"sort_order"`
}

// DirectoryRequest carries the people-search filters. Empty fields apply
// no constraint; set fields are combined with AND.
type DirectoryRequest struct {
	Query      string           `json:"query"`
	Role       *models.UserRole `json:"role"`
	Department *string          `json:"department"`
	Major      *string          `json:"major"`
	Year       *string          `json:"year"`
}

// ===== RESPONSE TYPES =====

// SessionResponse is returned after a successful portal sign-in.
type SessionResponse struct {
	User *models.User    `json:"user"`
	Role models.UserRole `json:"role"`
}

// OpportunityResponse decorates an opportunity with caller-dependent state.
type OpportunityResponse struct {
	*models.Opportunity
	Interested  bool `json:"interested"`
	CanInterest bool `json:"can_interest"`
}

// OpportunityListResponse is a paged feed of opportunities.
type OpportunityListResponse struct {
	Opportunities []*OpportunityResponse `json:"opportunities"`
	Total         int64                  `json:"total"`
	Limit         int                    `json:"limit"`
	Offset        int                    `json:"offset"`
}

// DirectoryFacets are the distinct filter values present in the current
// user set, for populating filter dropdowns.
type DirectoryFacets struct {
	Departments []string `json:"departments"`
	Majors      []string `json:"majors"`
	Years       []string `json:"years"`
}

// DirectoryResponse is the people-search result plus its facets.
type DirectoryResponse struct {
	Users  []*models.User  `json:"users"`
	Facets DirectoryFacets `json:"facets"`
	Total  int             `json:"total"`
}

// InterestResponse is one row of a professor's applicant roster.
type InterestResponse struct {
	ID            uint      `json:"id"`
	OpportunityID uint      `json:"opportunity_id"`
	StudentID     string    `json:"student_id"`
	StudentName   string    `json:"student_name"`
	StudentEmail  string    `json:"student_email"`
	ResumeLink    *string   `json:"resume_link"`
	PhotoLink     *string   `json:"photo_link"`
	CreatedAt     time.Time `json:"created_at"`
}

// MyInterestResponse is one row of a student's "my interests" view.
type MyInterestResponse struct {
	InterestID  uint                `json:"interest_id"`
	Opportunity *models.Opportunity `json:"opportunity"`
	MarkedAt    time.Time           `json:"marked_at"`
}

// ProfileResponse is a full profile: the user row plus its owned
// collections.
type ProfileResponse struct {
	User            *models.User             `json:"user"`
	Tags            []string                 `json:"tags"`
	Experiences     []*models.Experience     `json:"experiences"`
	EnrolledCourses []*models.EnrolledCourse `json:"enrolled_courses,omitempty"`
}

// DashboardResponse is the professor landing-page summary.
type DashboardResponse struct {
	Stats           *repositories.ProfessorStats   `json:"stats"`
	RecentInterests []*repositories.RecentInterest `json:"recent_interests"`
}

// ExportResult is a generated spreadsheet ready to stream to the client.
type ExportResult struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
}

// CleanupReport records what an account-deletion pass removed. Steps are
// independent; a failed step leaves its count at zero and appends to
// Errors.
type CleanupReport struct {
	UserID              string   `json:"user_id"`
	InterestsDeleted    int64    `json:"interests_deleted"`
	OpportunitiesDeleted int64    `json:"opportunities_deleted"`
	CoursesDeleted      int64    `json:"courses_deleted"`
	EnrollmentsDeleted  int64    `json:"enrollments_deleted"`
	ExperiencesDeleted  int64    `json:"experiences_deleted"`
	UserDeleted         bool     `json:"user_deleted"`
	FilesDeleted        bool     `json:"files_deleted"`
	Errors              []string `json:"errors,omitempty"`
}

// ===== SERVICE INTERFACES =====

// AuthService establishes portal sessions and provisions local user rows
// from identity-provider accounts.
type AuthService interface {
	EstablishSession(ctx context.Context, userID string, req *SessionRequest) (*SessionResponse, error)
	ProvisionUser(ctx context.Context, userID string) (*models.User, error)
}

// DirectoryService is the campus people search.
type DirectoryService interface {
	Search(ctx context.Context, callerID string, req *DirectoryRequest) (*DirectoryResponse, error)
	GetUser(ctx context.Context, callerID, userID string) (*ProfileResponse, error)
}

// OpportunityService manages professor postings and the student feed.
type OpportunityService interface {
	CreateOpportunity(ctx context.Context, professorID string, req *OpportunityCreateRequest) (*models.Opportunity, error)
	GetOpportunity(ctx context.Context, callerID string, id uint) (*OpportunityResponse, error)
	UpdateOpportunity(ctx context.Context, professorID string, id uint, req *OpportunityUpdateRequest) (*models.Opportunity, error)
	DeleteOpportunity(ctx context.Context, professorID string, id uint) error
	ListOpportunities(ctx context.Context, callerID string, req *OpportunityListRequest) (*OpportunityListResponse, error)
	ListMyOpportunities(ctx context.Context, professorID string, req *OpportunityListRequest) (*OpportunityListResponse, error)
}

// InterestService manages student interest marks and professor rosters.
type InterestService interface {
	MarkInterest(ctx context.Context, studentID string, opportunityID uint) (*models.Interest, error)
	RemoveInterest(ctx context.Context, studentID string, opportunityID uint) error
	ListForOpportunity(ctx context.Context, professorID string, opportunityID uint) ([]*InterestResponse, error)
	ListMine(ctx context.Context, studentID string) ([]*MyInterestResponse, error)
	InterestedOpportunityIDs(ctx context.Context, studentID string) (map[uint]bool, error)
}

// ProfileService manages the caller's own profile and its collections.
type ProfileService interface {
	GetMyProfile(ctx context.Context, userID string) (*ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID string, req *ProfileUpdateRequest) (*models.User, error)
	ReplaceTags(ctx context.Context, userID string, req *TagsUpdateRequest) ([]string, error)
	AddTag(ctx context.Context, userID, tag string) ([]string, error)
	RemoveTag(ctx context.Context, userID, tag string) ([]string, error)

	AddExperience(ctx context.Context, userID string, req *ExperienceCreateRequest) (*models.Experience, error)
	UpdateExperience(ctx context.Context, userID string, id uint, req *ExperienceUpdateRequest) (*models.Experience, error)
	DeleteExperience(ctx context.Context, userID string, id uint) error

	AddEnrolledCourse(ctx context.Context, studentID string, req *EnrolledCourseCreateRequest) (*models.EnrolledCourse, error)
	UpdateEnrolledCourse(ctx context.Context, studentID string, id uint, req *EnrolledCourseUpdateRequest) (*models.EnrolledCourse, error)
	DeleteEnrolledCourse(ctx context.Context, studentID string, id uint) error

	UploadFile(ctx context.Context, userID, kind string, header *multipart.FileHeader) (string, error)
}

// CourseService manages professor-offered courses.
type CourseService interface {
	CreateCourse(ctx context.Context, professorID string, req *CourseCreateRequest) (*models.Course, error)
	GetCourse(ctx context.Context, callerID string, id uint) (*models.Course, error)
	UpdateCourse(ctx context.Context, professorID string, id uint, req *CourseUpdateRequest) (*models.Course, error)
	DeleteCourse(ctx context.Context, professorID string, id uint) error
	ListMyCourses(ctx context.Context, professorID string) ([]*models.Course, error)
}

// DashboardService serves the professor landing-page summary.
type DashboardService interface {
	GetProfessorDashboard(ctx context.Context, professorID string) (*DashboardResponse, error)
}

// ExportService renders applicant rosters as spreadsheets.
type ExportService interface {
	ExportInterestRoster(ctx context.Context, professorID string, opportunityID uint) (*ExportResult, error)
}

// CleanupService removes everything the service holds for a deleted
// identity account.
type CleanupService interface {
	CleanupAccount(ctx context.Context, userID string) (*CleanupReport, error)
}

// ===== SERVICE MANAGER =====

type ServiceManager interface {
	Auth() AuthService
	Directory() DirectoryService
	Opportunity() OpportunityService
	Interest() InterestService
	Profile() ProfileService
	Course() CourseService
	Dashboard() DashboardService
	Export() ExportService
	Cleanup() CleanupService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
