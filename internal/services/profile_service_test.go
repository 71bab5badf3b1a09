package services

import (
	"context"
	"mime/multipart"
	"reflect"
	"testing"
	"time"

	"github.com/campus-connect/campus-service/internal/models"
)

func newProfileFixture(t *testing.T) (*mockRepository, ProfileService) {
	t.Helper()
	repo := newMockRepository()
	service := NewProfileService(repo, nil, testLogger(), newTestValidator(t), nil, nil)
	return repo, service
}

func TestUpdateProfilePartial(t *testing.T) {
	repo, service := newProfileFixture(t)
	student := seedStudent(repo, "stud-1", "Grace Hopper")
	student.Headline = strPtr("Compiler pioneer")

	user, err := service.UpdateProfile(context.Background(), "stud-1", &ProfileUpdateRequest{
		Major: strPtr("Computer Science"),
		Year:  strPtr("Senior"),
	})
	if err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}
	if user.Major == nil || *user.Major != "Computer Science" {
		t.Errorf("major was not updated")
	}
	// Untouched fields stay as they were.
	if user.Headline == nil || *user.Headline != "Compiler pioneer" {
		t.Errorf("headline should be untouched, got %v", user.Headline)
	}
}

func TestUpdateProfileRoleFields(t *testing.T) {
	repo, service := newProfileFixture(t)
	seedStudent(repo, "stud-1", "Grace Hopper")
	seedProfessor(repo, "prof-1", "Ada Lovelace")

	if _, err := service.UpdateProfile(context.Background(), "stud-1", &ProfileUpdateRequest{
		Department: strPtr("Computer Science"),
	}); !IsValidationErrors(err) {
		t.Errorf("student setting department: error = %v, want validation errors", err)
	}

	if _, err := service.UpdateProfile(context.Background(), "prof-1", &ProfileUpdateRequest{
		Year: strPtr("Senior"),
	}); !IsValidationErrors(err) {
		t.Errorf("professor setting year: error = %v, want validation errors", err)
	}
}

// ===== TAGS =====

func TestReplaceTags(t *testing.T) {
	repo, service := newProfileFixture(t)
	seedStudent(repo, "stud-1", "Grace Hopper")

	tags, err := service.ReplaceTags(context.Background(), "stud-1", &TagsUpdateRequest{
		Tags: []string{" Go ", "Distributed Systems"},
	})
	if err != nil {
		t.Fatalf("ReplaceTags() error = %v", err)
	}
	if want := []string{"Go", "Distributed Systems"}; !reflect.DeepEqual(tags, want) {
		t.Errorf("tags = %v, want trimmed %v", tags, want)
	}

	if got := repo.users["stud-1"].Tags(); !reflect.DeepEqual(got, tags) {
		t.Errorf("persisted tags = %v, want %v", got, tags)
	}
}

func TestAddTagRejectsDuplicate(t *testing.T) {
	repo, service := newProfileFixture(t)
	student := seedStudent(repo, "stud-1", "Grace Hopper")
	if err := student.SetTags([]string{"Go"}); err != nil {
		t.Fatal(err)
	}

	if _, err := service.AddTag(context.Background(), "stud-1", "go"); !IsValidationErrors(err) {
		t.Errorf("duplicate tag: error = %v, want validation errors", err)
	}
	// No write happened.
	if got := repo.users["stud-1"].Tags(); len(got) != 1 {
		t.Errorf("tags = %v, want the original single tag", got)
	}
}

func TestAddTagRejectsEmptyAndOverflow(t *testing.T) {
	repo, service := newProfileFixture(t)
	student := seedStudent(repo, "stud-1", "Grace Hopper")

	if _, err := service.AddTag(context.Background(), "stud-1", "   "); !IsValidationErrors(err) {
		t.Errorf("blank tag: error = %v, want validation errors", err)
	}

	full := make([]string, models.MaxExperienceTags)
	for i := range full {
		full[i] = string(rune('a'+i)) + "-skill"
	}
	if err := student.SetTags(full); err != nil {
		t.Fatal(err)
	}
	if _, err := service.AddTag(context.Background(), "stud-1", "one-too-many"); !IsValidationErrors(err) {
		t.Errorf("overflow tag: error = %v, want validation errors", err)
	}
}

func TestRemoveTagCaseInsensitive(t *testing.T) {
	repo, service := newProfileFixture(t)
	student := seedStudent(repo, "stud-1", "Grace Hopper")
	if err := student.SetTags([]string{"Go", "Rust"}); err != nil {
		t.Fatal(err)
	}

	tags, err := service.RemoveTag(context.Background(), "stud-1", "GO")
	if err != nil {
		t.Fatalf("RemoveTag() error = %v", err)
	}
	if want := []string{"Rust"}; !reflect.DeepEqual(tags, want) {
		t.Errorf("tags = %v, want %v", tags, want)
	}

	if _, err := service.RemoveTag(context.Background(), "stud-1", "Go"); !IsValidationErrors(err) {
		t.Errorf("removing absent tag: error = %v, want validation errors", err)
	}
}

// ===== EXPERIENCES =====

func TestAddExperienceCurrentDropsEndDate(t *testing.T) {
	repo, service := newProfileFixture(t)
	seedStudent(repo, "stud-1", "Grace Hopper")

	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	experience, err := service.AddExperience(context.Background(), "stud-1", &ExperienceCreateRequest{
		Type:         models.ExperienceWork,
		Title:        "Research Intern",
		Organization: "Navy Research Lab",
		StartDate:    start,
		IsCurrent:    true,
	})
	if err != nil {
		t.Fatalf("AddExperience() error = %v", err)
	}
	if experience.EndDate != nil {
		t.Errorf("EndDate = %v, want nil for a current experience", experience.EndDate)
	}
	if len(repo.experiences) != 1 {
		t.Errorf("experience rows = %d, want 1", len(repo.experiences))
	}
}

func TestAddExperiencePastRequiresEndDate(t *testing.T) {
	repo, service := newProfileFixture(t)
	seedStudent(repo, "stud-1", "Grace Hopper")

	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	_, err := service.AddExperience(context.Background(), "stud-1", &ExperienceCreateRequest{
		Type:         models.ExperienceWork,
		Title:        "Research Intern",
		Organization: "Navy Research Lab",
		StartDate:    start,
		IsCurrent:    false,
	})
	if !IsValidationErrors(err) {
		t.Fatalf("AddExperience() error = %v, want validation errors", err)
	}
	if len(repo.experiences) != 0 {
		t.Errorf("experience rows = %d, want 0 after rejected create", len(repo.experiences))
	}
}

func TestAddExperienceEndBeforeStart(t *testing.T) {
	repo, service := newProfileFixture(t)
	seedStudent(repo, "stud-1", "Grace Hopper")

	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(-48 * time.Hour)
	_, err := service.AddExperience(context.Background(), "stud-1", &ExperienceCreateRequest{
		Type:         models.ExperienceWork,
		Title:        "Research Intern",
		Organization: "Navy Research Lab",
		StartDate:    start,
		EndDate:      &end,
	})
	if !IsValidationErrors(err) {
		t.Fatalf("AddExperience() error = %v, want validation errors", err)
	}
}

func TestUpdateExperienceOwnerOnly(t *testing.T) {
	repo, service := newProfileFixture(t)
	seedStudent(repo, "stud-1", "Grace Hopper")
	seedStudent(repo, "stud-2", "Katherine Johnson")

	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	experience, err := service.AddExperience(context.Background(), "stud-1", &ExperienceCreateRequest{
		Type:         models.ExperienceProject,
		Title:        "Trajectory computation",
		Organization: "Research group",
		StartDate:    start,
		IsCurrent:    true,
	})
	if err != nil {
		t.Fatalf("AddExperience() error = %v", err)
	}

	_, err = service.UpdateExperience(context.Background(), "stud-2", experience.ID, &ExperienceUpdateRequest{
		Title: strPtr("Someone else's work"),
	})
	if !IsPermissionError(err) {
		t.Fatalf("UpdateExperience() error = %v, want permission error", err)
	}
}

// ===== ENROLLED COURSES =====

func TestEnrolledCourseLifecycle(t *testing.T) {
	repo, service := newProfileFixture(t)
	seedStudent(repo, "stud-1", "Grace Hopper")

	course, err := service.AddEnrolledCourse(context.Background(), "stud-1", &EnrolledCourseCreateRequest{
		CourseCodeName: "CS6120 Advanced Compilers",
		Semester:       "Fall 2025",
		Status:         models.CourseOngoing,
	})
	if err != nil {
		t.Fatalf("AddEnrolledCourse() error = %v", err)
	}

	grade := "A"
	completed := models.CourseCompleted
	updated, err := service.UpdateEnrolledCourse(context.Background(), "stud-1", course.ID, &EnrolledCourseUpdateRequest{
		Status: &completed,
		Grade:  &grade,
	})
	if err != nil {
		t.Fatalf("UpdateEnrolledCourse() error = %v", err)
	}
	if updated.Status != models.CourseCompleted || updated.Grade == nil || *updated.Grade != "A" {
		t.Errorf("update not applied: %+v", updated)
	}

	if err := service.DeleteEnrolledCourse(context.Background(), "stud-1", course.ID); err != nil {
		t.Fatalf("DeleteEnrolledCourse() error = %v", err)
	}
	if len(repo.enrolledCourses) != 0 {
		t.Errorf("enrolled course rows = %d, want 0", len(repo.enrolledCourses))
	}
}

func TestAddEnrolledCourseRequiresStudent(t *testing.T) {
	repo, service := newProfileFixture(t)
	seedProfessor(repo, "prof-1", "Ada Lovelace")

	_, err := service.AddEnrolledCourse(context.Background(), "prof-1", &EnrolledCourseCreateRequest{
		CourseCodeName: "CS101",
		Semester:       "Fall 2025",
		Status:         models.CourseOngoing,
	})
	if !IsPermissionError(err) {
		t.Fatalf("AddEnrolledCourse() error = %v, want permission error", err)
	}
}

// ===== UPLOADS =====

func TestUploadFileRejectsUnknownKind(t *testing.T) {
	repo, service := newProfileFixture(t)
	seedStudent(repo, "stud-1", "Grace Hopper")

	_, err := service.UploadFile(context.Background(), "stud-1", "avatar", nil)
	if !IsBusinessRuleError(err) {
		t.Fatalf("UploadFile() error = %v, want business rule error", err)
	}
	if bre := err.(*BusinessRuleError); bre.Code != CodeInvalidUploadType {
		t.Errorf("code = %q, want %q", bre.Code, CodeInvalidUploadType)
	}
}

func TestUploadFileRejectsOversizedFile(t *testing.T) {
	repo, service := newProfileFixture(t)
	seedStudent(repo, "stud-1", "Grace Hopper")

	header := &multipart.FileHeader{Filename: "resume.pdf", Size: maxUploadBytes + 1}
	_, err := service.UploadFile(context.Background(), "stud-1", "resume", header)
	if !IsBusinessRuleError(err) {
		t.Fatalf("UploadFile() error = %v, want business rule error", err)
	}
	if bre := err.(*BusinessRuleError); bre.Code != CodeUploadTooLarge {
		t.Errorf("code = %q, want %q", bre.Code, CodeUploadTooLarge)
	}
}
