package services

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/campus-connect/campus-service/internal/models"
	"github.com/campus-connect/campus-service/internal/repositories"
	"github.com/campus-connect/campus-service/internal/validator"
)

// mockRepository is an in-memory repositories.Repository for service
// tests. Operations can be forced to fail by name through failures.
type mockRepository struct {
	mu sync.Mutex

	users           map[string]*models.User
	opportunities   map[uint]*models.Opportunity
	interests       map[uint]*models.Interest
	courses         map[uint]*models.Course
	enrolledCourses map[uint]*models.EnrolledCourse
	experiences     map[uint]*models.Experience
	identities      map[string]*repositories.Identity

	nextID   uint
	failures map[string]error
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		users:           map[string]*models.User{},
		opportunities:   map[uint]*models.Opportunity{},
		interests:       map[uint]*models.Interest{},
		courses:         map[uint]*models.Course{},
		enrolledCourses: map[uint]*models.EnrolledCourse{},
		experiences:     map[uint]*models.Experience{},
		identities:      map[string]*repositories.Identity{},
		failures:        map[string]error{},
	}
}

func (m *mockRepository) failOn(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[op] = err
}

func (m *mockRepository) failure(op string) error {
	return m.failures[op]
}

func (m *mockRepository) id() uint {
	m.nextID++
	return m.nextID
}

func (m *mockRepository) User() repositories.UserRepository                     { return &mockUserRepo{m} }
func (m *mockRepository) Opportunity() repositories.OpportunityRepository       { return &mockOpportunityRepo{m} }
func (m *mockRepository) Interest() repositories.InterestRepository             { return &mockInterestRepo{m} }
func (m *mockRepository) Course() repositories.CourseRepository                 { return &mockCourseRepo{m} }
func (m *mockRepository) EnrolledCourse() repositories.EnrolledCourseRepository { return &mockEnrolledCourseRepo{m} }
func (m *mockRepository) Experience() repositories.ExperienceRepository         { return &mockExperienceRepo{m} }
func (m *mockRepository) Dashboard() repositories.DashboardRepository           { return &mockDashboardRepo{m} }
func (m *mockRepository) Identity() repositories.IdentityRepository             { return &mockIdentityRepo{m} }

func (m *mockRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(m)
}

func (m *mockRepository) Ping(ctx context.Context) error { return nil }
func (m *mockRepository) Close() error                   { return nil }

// ===== USERS =====

type mockUserRepo struct{ m *mockRepository }

func (r *mockUserRepo) Create(ctx context.Context, tx *gorm.DB, user *models.User) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.failure("user.create"); err != nil {
		return err
	}
	user.CreatedAt = time.Now()
	r.m.users[user.ID] = user
	return nil
}

func (r *mockUserRepo) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.failure("user.get"); err != nil {
		return nil, err
	}
	user, ok := r.m.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *mockUserRepo) Update(ctx context.Context, tx *gorm.DB, user *models.User) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.users[user.ID]; !ok {
		return repositories.ErrNotFound
	}
	copied := *user
	r.m.users[user.ID] = &copied
	return nil
}

func (r *mockUserRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id string, fields map[string]interface{}) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	user, ok := r.m.users[id]
	if !ok {
		return repositories.ErrNotFound
	}
	for field, value := range fields {
		switch field {
		case "full_name":
			user.FullName = value.(string)
		case "headline":
			user.Headline = toStringPtr(value)
		case "pronouns":
			user.Pronouns = toStringPtr(value)
		case "about":
			user.About = toStringPtr(value)
		case "department":
			user.Department = toStringPtr(value)
		case "major":
			user.Major = toStringPtr(value)
		case "year":
			user.Year = toStringPtr(value)
		case "resume_link":
			user.ResumeLink = toStringPtr(value)
		case "photo_link":
			user.PhotoLink = toStringPtr(value)
		case "cover_link":
			user.CoverLink = toStringPtr(value)
		case "experience_tags":
			user.ExperienceTags = value.(datatypes.JSON)
		}
	}
	return nil
}

func (r *mockUserRepo) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.failure("user.delete"); err != nil {
		return err
	}
	if _, ok := r.m.users[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.m.users, id)
	return nil
}

func (r *mockUserRepo) List(ctx context.Context, tx *gorm.DB, filters repositories.DirectoryFilters) ([]*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*models.User
	for _, user := range r.m.users {
		if matchesDirectoryFilters(user, filters) {
			copied := *user
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

// matchesDirectoryFilters mirrors the SQL filter semantics: exact-match
// facets AND-ed with a case-insensitive free-text query.
func matchesDirectoryFilters(user *models.User, filters repositories.DirectoryFilters) bool {
	if filters.ExcludeID != "" && user.ID == filters.ExcludeID {
		return false
	}
	if filters.Role != nil && user.Role != *filters.Role {
		return false
	}
	if filters.Department != nil && (user.Department == nil || *user.Department != *filters.Department) {
		return false
	}
	if filters.Major != nil && (user.Major == nil || *user.Major != *filters.Major) {
		return false
	}
	if filters.Year != nil && (user.Year == nil || *user.Year != *filters.Year) {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(filters.Query)); q != "" {
		haystack := strings.ToLower(strings.Join(append([]string{
			user.FullName,
			derefOrEmpty(user.Department),
			derefOrEmpty(user.Major),
			derefOrEmpty(user.Year),
			string(user.Role),
		}, user.Tags()...), " "))
		if !strings.Contains(haystack, q) {
			return false
		}
	}
	return true
}

// ===== OPPORTUNITIES =====

type mockOpportunityRepo struct{ m *mockRepository }

func (r *mockOpportunityRepo) Create(ctx context.Context, tx *gorm.DB, opportunity *models.Opportunity) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.failure("opportunity.create"); err != nil {
		return err
	}
	opportunity.ID = r.m.id()
	opportunity.CreatedAt = time.Now()
	copied := *opportunity
	r.m.opportunities[opportunity.ID] = &copied
	return nil
}

func (r *mockOpportunityRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Opportunity, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	opportunity, ok := r.m.opportunities[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *opportunity
	return &copied, nil
}

func (r *mockOpportunityRepo) GetByIDWithProfessor(ctx context.Context, tx *gorm.DB, id uint) (*models.Opportunity, error) {
	opportunity, err := r.GetByID(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if professor, ok := r.m.users[opportunity.ProfessorID]; ok {
		opportunity.Professor = *professor
	}
	for _, interest := range r.m.interests {
		if interest.OpportunityID == id {
			opportunity.InterestCount++
		}
	}
	return opportunity, nil
}

func (r *mockOpportunityRepo) Update(ctx context.Context, tx *gorm.DB, opportunity *models.Opportunity) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.opportunities[opportunity.ID]; !ok {
		return repositories.ErrNotFound
	}
	copied := *opportunity
	r.m.opportunities[opportunity.ID] = &copied
	return nil
}

func (r *mockOpportunityRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.opportunities[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.m.opportunities, id)
	return nil
}

func (r *mockOpportunityRepo) List(ctx context.Context, tx *gorm.DB, filters repositories.OpportunityFilters) ([]*models.Opportunity, int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*models.Opportunity
	for _, opportunity := range r.m.opportunities {
		if filters.ProfessorID != nil && opportunity.ProfessorID != *filters.ProfessorID {
			continue
		}
		if filters.Type != nil && opportunity.Type != *filters.Type {
			continue
		}
		if filters.AllowInterest != nil && opportunity.AllowInterest != *filters.AllowInterest {
			continue
		}
		copied := *opportunity
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, int64(len(out)), nil
}

func (r *mockOpportunityRepo) GetByProfessor(ctx context.Context, tx *gorm.DB, professorID string, filters repositories.OpportunityFilters) ([]*models.Opportunity, int64, error) {
	if err := r.m.failure("opportunity.by_professor"); err != nil {
		return nil, 0, err
	}
	filters.ProfessorID = &professorID
	return r.List(ctx, tx, filters)
}

func (r *mockOpportunityRepo) DeleteByProfessor(ctx context.Context, tx *gorm.DB, professorID string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.failure("opportunity.delete_by_professor"); err != nil {
		return err
	}
	for id, opportunity := range r.m.opportunities {
		if opportunity.ProfessorID == professorID {
			delete(r.m.opportunities, id)
		}
	}
	return nil
}

// ===== INTERESTS =====

type mockInterestRepo struct{ m *mockRepository }

func (r *mockInterestRepo) Create(ctx context.Context, tx *gorm.DB, interest *models.Interest) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.failure("interest.create"); err != nil {
		return err
	}
	for _, existing := range r.m.interests {
		if existing.StudentID == interest.StudentID && existing.OpportunityID == interest.OpportunityID {
			return repositories.ErrDuplicateInterest
		}
	}
	interest.ID = r.m.id()
	interest.CreatedAt = time.Now()
	copied := *interest
	r.m.interests[interest.ID] = &copied
	return nil
}

func (r *mockInterestRepo) Exists(ctx context.Context, tx *gorm.DB, studentID string, opportunityID uint) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, interest := range r.m.interests {
		if interest.StudentID == studentID && interest.OpportunityID == opportunityID {
			return true, nil
		}
	}
	return false, nil
}

func (r *mockInterestRepo) DeleteByStudentAndOpportunity(ctx context.Context, tx *gorm.DB, studentID string, opportunityID uint) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for id, interest := range r.m.interests {
		if interest.StudentID == studentID && interest.OpportunityID == opportunityID {
			delete(r.m.interests, id)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *mockInterestRepo) ListByOpportunity(ctx context.Context, tx *gorm.DB, opportunityID uint) ([]*models.Interest, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*models.Interest
	for _, interest := range r.m.interests {
		if interest.OpportunityID == opportunityID {
			copied := *interest
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *mockInterestRepo) ListByStudent(ctx context.Context, tx *gorm.DB, studentID string) ([]*models.Interest, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*models.Interest
	for _, interest := range r.m.interests {
		if interest.StudentID == studentID {
			copied := *interest
			if opportunity, ok := r.m.opportunities[interest.OpportunityID]; ok {
				copied.Opportunity = *opportunity
			}
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *mockInterestRepo) ListOpportunityIDsByStudent(ctx context.Context, tx *gorm.DB, studentID string) ([]uint, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.failure("interest.list_ids"); err != nil {
		return nil, err
	}
	var ids []uint
	for _, interest := range r.m.interests {
		if interest.StudentID == studentID {
			ids = append(ids, interest.OpportunityID)
		}
	}
	return ids, nil
}

func (r *mockInterestRepo) DeleteByOpportunity(ctx context.Context, tx *gorm.DB, opportunityID uint) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for id, interest := range r.m.interests {
		if interest.OpportunityID == opportunityID {
			delete(r.m.interests, id)
		}
	}
	return nil
}

func (r *mockInterestRepo) DeleteByStudent(ctx context.Context, tx *gorm.DB, studentID string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.failure("interest.delete_by_student"); err != nil {
		return err
	}
	for id, interest := range r.m.interests {
		if interest.StudentID == studentID {
			delete(r.m.interests, id)
		}
	}
	return nil
}

// ===== COURSES =====

type mockCourseRepo struct{ m *mockRepository }

func (r *mockCourseRepo) Create(ctx context.Context, tx *gorm.DB, course *models.Course) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	course.ID = r.m.id()
	copied := *course
	r.m.courses[course.ID] = &copied
	return nil
}

func (r *mockCourseRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Course, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	course, ok := r.m.courses[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *course
	return &copied, nil
}

func (r *mockCourseRepo) GetByCode(ctx context.Context, tx *gorm.DB, code string) (*models.Course, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, course := range r.m.courses {
		if course.CourseCode == code {
			copied := *course
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *mockCourseRepo) Update(ctx context.Context, tx *gorm.DB, course *models.Course) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.courses[course.ID]; !ok {
		return repositories.ErrNotFound
	}
	copied := *course
	r.m.courses[course.ID] = &copied
	return nil
}

func (r *mockCourseRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.courses[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.m.courses, id)
	return nil
}

func (r *mockCourseRepo) ListByProfessor(ctx context.Context, tx *gorm.DB, professorID string) ([]*models.Course, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.failure("course.list"); err != nil {
		return nil, err
	}
	var out []*models.Course
	for _, course := range r.m.courses {
		if course.ProfessorID == professorID {
			copied := *course
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *mockCourseRepo) DeleteByProfessor(ctx context.Context, tx *gorm.DB, professorID string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.failure("course.delete_by_professor"); err != nil {
		return err
	}
	for id, course := range r.m.courses {
		if course.ProfessorID == professorID {
			delete(r.m.courses, id)
		}
	}
	return nil
}

// ===== ENROLLED COURSES =====

type mockEnrolledCourseRepo struct{ m *mockRepository }

func (r *mockEnrolledCourseRepo) Create(ctx context.Context, tx *gorm.DB, course *models.EnrolledCourse) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	course.ID = r.m.id()
	copied := *course
	r.m.enrolledCourses[course.ID] = &copied
	return nil
}

func (r *mockEnrolledCourseRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.EnrolledCourse, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	course, ok := r.m.enrolledCourses[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *course
	return &copied, nil
}

func (r *mockEnrolledCourseRepo) Update(ctx context.Context, tx *gorm.DB, course *models.EnrolledCourse) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.enrolledCourses[course.ID]; !ok {
		return repositories.ErrNotFound
	}
	copied := *course
	r.m.enrolledCourses[course.ID] = &copied
	return nil
}

func (r *mockEnrolledCourseRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.enrolledCourses[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.m.enrolledCourses, id)
	return nil
}

func (r *mockEnrolledCourseRepo) ListByStudent(ctx context.Context, tx *gorm.DB, studentID string) ([]*models.EnrolledCourse, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*models.EnrolledCourse
	for _, course := range r.m.enrolledCourses {
		if course.StudentID == studentID {
			copied := *course
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *mockEnrolledCourseRepo) DeleteByStudent(ctx context.Context, tx *gorm.DB, studentID string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for id, course := range r.m.enrolledCourses {
		if course.StudentID == studentID {
			delete(r.m.enrolledCourses, id)
		}
	}
	return nil
}

// ===== EXPERIENCES =====

type mockExperienceRepo struct{ m *mockRepository }

func (r *mockExperienceRepo) Create(ctx context.Context, tx *gorm.DB, experience *models.Experience) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	experience.ID = r.m.id()
	copied := *experience
	r.m.experiences[experience.ID] = &copied
	return nil
}

func (r *mockExperienceRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Experience, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	experience, ok := r.m.experiences[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *experience
	return &copied, nil
}

func (r *mockExperienceRepo) Update(ctx context.Context, tx *gorm.DB, experience *models.Experience) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.experiences[experience.ID]; !ok {
		return repositories.ErrNotFound
	}
	copied := *experience
	r.m.experiences[experience.ID] = &copied
	return nil
}

func (r *mockExperienceRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.experiences[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.m.experiences, id)
	return nil
}

func (r *mockExperienceRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID string) ([]*models.Experience, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*models.Experience
	for _, experience := range r.m.experiences {
		if experience.UserID == userID {
			copied := *experience
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *mockExperienceRepo) DeleteByUser(ctx context.Context, tx *gorm.DB, userID string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for id, experience := range r.m.experiences {
		if experience.UserID == userID {
			delete(r.m.experiences, id)
		}
	}
	return nil
}

// ===== DASHBOARD =====

type mockDashboardRepo struct{ m *mockRepository }

func (r *mockDashboardRepo) GetProfessorStats(ctx context.Context, tx *gorm.DB, professorID string) (*repositories.ProfessorStats, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	stats := &repositories.ProfessorStats{}
	now := time.Now()
	for _, opportunity := range r.m.opportunities {
		if opportunity.ProfessorID != professorID {
			continue
		}
		stats.TotalOpportunities++
		if opportunity.Open(now) {
			stats.OpenOpportunities++
		}
	}
	for _, interest := range r.m.interests {
		if interest.ProfessorID == professorID {
			stats.TotalInterests++
		}
	}
	for _, course := range r.m.courses {
		if course.ProfessorID == professorID {
			stats.TotalCourses++
		}
	}
	return stats, nil
}

func (r *mockDashboardRepo) GetRecentInterests(ctx context.Context, tx *gorm.DB, professorID string, limit int) ([]*repositories.RecentInterest, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*repositories.RecentInterest
	for _, interest := range r.m.interests {
		if interest.ProfessorID != professorID {
			continue
		}
		title := ""
		if opportunity, ok := r.m.opportunities[interest.OpportunityID]; ok {
			title = opportunity.Title
		}
		out = append(out, &repositories.RecentInterest{
			OpportunityID:    interest.OpportunityID,
			OpportunityTitle: title,
			StudentName:      interest.StudentName,
			CreatedAt:        interest.CreatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ===== IDENTITY =====

type mockIdentityRepo struct{ m *mockRepository }

func (r *mockIdentityRepo) GetByID(ctx context.Context, id string) (*repositories.Identity, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	identity, ok := r.m.identities[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *identity
	return &copied, nil
}

// ===== HELPERS =====

func toStringPtr(value interface{}) *string {
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		return &v
	case *string:
		return v
	default:
		return nil
	}
}

func derefOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(testWriter{}, &slog.HandlerOptions{Level: slog.LevelError}))
}

type testWriter struct{}

func (testWriter) Write(p []byte) (int, error) { return len(p), nil }

func strPtr(s string) *string { return &s }

func seedProfessor(m *mockRepository, id, name string) *models.User {
	user := &models.User{
		ID:            id,
		FullName:      name,
		Email:         strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@campus.edu",
		Role:          models.RoleProfessor,
		EmailVerified: true,
	}
	m.users[id] = user
	return user
}

func seedStudent(m *mockRepository, id, name string) *models.User {
	user := &models.User{
		ID:            id,
		FullName:      name,
		Email:         strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@campus.edu",
		Role:          models.RoleStudent,
		EmailVerified: true,
	}
	m.users[id] = user
	return user
}

func seedOpportunity(m *mockRepository, professorID, title string, allowInterest bool) *models.Opportunity {
	opportunity := &models.Opportunity{
		ID:            m.id(),
		ProfessorID:   professorID,
		Title:         title,
		Description:   "description of " + title,
		Type:          models.OpportunityResearch,
		AllowInterest: allowInterest,
		CreatedAt:     time.Now(),
	}
	m.opportunities[opportunity.ID] = opportunity
	return opportunity
}

func newTestValidator(t *testing.T) *validator.Validator {
	t.Helper()
	return validator.New()
}
