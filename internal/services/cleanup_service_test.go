package services

import (
	"context"
	"errors"
	"testing"

	"github.com/campus-connect/campus-service/internal/events"
	"github.com/campus-connect/campus-service/internal/models"
)

func newCleanupFixture(t *testing.T) (*mockRepository, CleanupService, *events.MockEventPublisher) {
	t.Helper()
	repo := newMockRepository()
	publisher := events.NewMockEventPublisher(testLogger())
	service := NewCleanupService(repo, nil, testLogger(), nil, nil, nil, publisher)
	return repo, service, publisher
}

func seedFullProfessor(repo *mockRepository) {
	seedProfessor(repo, "prof-1", "Ada Lovelace")
	seedStudent(repo, "stud-1", "Grace Hopper")

	opportunity := seedOpportunity(repo, "prof-1", "Compiler research", true)
	interestID := repo.id()
	repo.interests[interestID] = &models.Interest{
		ID:            interestID,
		OpportunityID: opportunity.ID,
		StudentID:     "stud-1",
		ProfessorID:   "prof-1",
		ApplicationSnapshot: models.ApplicationSnapshot{
			StudentName:  "Grace Hopper",
			StudentEmail: "grace@campus.edu",
		},
	}

	courseID := repo.id()
	repo.courses[courseID] = &models.Course{
		ID:          courseID,
		ProfessorID: "prof-1",
		CourseName:  "Analytical Engines 101",
		Status:      models.CourseOngoing,
		CourseCode:  "AE101XYZ",
	}
}

func TestCleanupAccountProfessor(t *testing.T) {
	repo, service, publisher := newCleanupFixture(t)
	seedFullProfessor(repo)

	report, err := service.CleanupAccount(context.Background(), "prof-1")
	if err != nil {
		t.Fatalf("CleanupAccount() error = %v", err)
	}

	if len(report.Errors) != 0 {
		t.Errorf("report errors = %v, want none", report.Errors)
	}
	if report.OpportunitiesDeleted != 1 {
		t.Errorf("opportunities deleted = %d, want 1", report.OpportunitiesDeleted)
	}
	if report.CoursesDeleted != 1 {
		t.Errorf("courses deleted = %d, want 1", report.CoursesDeleted)
	}
	if !report.UserDeleted {
		t.Errorf("user row should have been deleted")
	}
	if len(repo.opportunities) != 0 || len(repo.interests) != 0 || len(repo.courses) != 0 {
		t.Errorf("professor data survived cleanup: %d opportunities, %d interests, %d courses",
			len(repo.opportunities), len(repo.interests), len(repo.courses))
	}
	if _, ok := repo.users["prof-1"]; ok {
		t.Errorf("user row survived cleanup")
	}
	// The student is untouched.
	if _, ok := repo.users["stud-1"]; !ok {
		t.Errorf("unrelated user was deleted")
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 1 || published[0].Type != events.EventAccountCleanedUp {
		t.Errorf("published events = %v, want one %s", published, events.EventAccountCleanedUp)
	}
}

func TestCleanupAccountStudent(t *testing.T) {
	repo, service, _ := newCleanupFixture(t)
	seedProfessor(repo, "prof-1", "Ada Lovelace")
	student := seedStudent(repo, "stud-1", "Grace Hopper")
	opportunity := seedOpportunity(repo, "prof-1", "Compiler research", true)

	interestID := repo.id()
	repo.interests[interestID] = &models.Interest{
		ID:                  interestID,
		OpportunityID:       opportunity.ID,
		StudentID:           student.ID,
		ProfessorID:         "prof-1",
		ApplicationSnapshot: models.NewSnapshot(student),
	}
	experienceID := repo.id()
	repo.experiences[experienceID] = &models.Experience{
		ID:     experienceID,
		UserID: student.ID,
		Type:   models.ExperienceWork,
		Title:  "Intern",
	}
	enrolledID := repo.id()
	repo.enrolledCourses[enrolledID] = &models.EnrolledCourse{
		ID:             enrolledID,
		StudentID:      student.ID,
		CourseCodeName: "CS101",
		Semester:       "Fall 2025",
	}

	report, err := service.CleanupAccount(context.Background(), "stud-1")
	if err != nil {
		t.Fatalf("CleanupAccount() error = %v", err)
	}

	if report.InterestsDeleted != 1 {
		t.Errorf("interests deleted = %d, want 1", report.InterestsDeleted)
	}
	if report.ExperiencesDeleted != 1 {
		t.Errorf("experiences deleted = %d, want 1", report.ExperiencesDeleted)
	}
	if report.EnrollmentsDeleted != 1 {
		t.Errorf("enrollments deleted = %d, want 1", report.EnrollmentsDeleted)
	}
	// The professor's posting stays.
	if len(repo.opportunities) != 1 {
		t.Errorf("opportunities = %d, want 1", len(repo.opportunities))
	}
}

// One failing step must not stop the others.
func TestCleanupAccountIsFaultTolerant(t *testing.T) {
	repo, service, publisher := newCleanupFixture(t)
	seedFullProfessor(repo)
	repo.failOn("course.delete_by_professor", errors.New("courses table is locked"))

	report, err := service.CleanupAccount(context.Background(), "prof-1")
	if err != nil {
		t.Fatalf("CleanupAccount() error = %v", err)
	}

	if len(report.Errors) != 1 {
		t.Fatalf("report errors = %v, want exactly the course failure", report.Errors)
	}
	if report.CoursesDeleted != 0 {
		t.Errorf("courses deleted = %d, want 0 on failure", report.CoursesDeleted)
	}

	// Every other step still ran.
	if report.OpportunitiesDeleted != 1 {
		t.Errorf("opportunities deleted = %d, want 1", report.OpportunitiesDeleted)
	}
	if !report.UserDeleted {
		t.Errorf("user deletion should still have run")
	}
	if len(repo.courses) != 1 {
		t.Errorf("failed step should leave courses untouched")
	}

	// The report is still published so the failure is observable.
	if published := publisher.GetPublishedEvents(); len(published) != 1 {
		t.Errorf("published events = %d, want 1", len(published))
	}
}

// A second pass over an already-cleaned account succeeds; missing data
// counts as success.
func TestCleanupAccountIdempotent(t *testing.T) {
	repo, service, _ := newCleanupFixture(t)
	seedFullProfessor(repo)

	if _, err := service.CleanupAccount(context.Background(), "prof-1"); err != nil {
		t.Fatalf("first CleanupAccount() error = %v", err)
	}

	report, err := service.CleanupAccount(context.Background(), "prof-1")
	if err != nil {
		t.Fatalf("second CleanupAccount() error = %v", err)
	}
	if len(report.Errors) != 0 {
		t.Errorf("report errors = %v, want none on re-run", report.Errors)
	}
	if !report.UserDeleted {
		t.Errorf("missing user row should count as success")
	}
}
