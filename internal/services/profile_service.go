package services

import (
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"
	"strings"

	"gorm.io/gorm"

	"github.com/campus-connect/campus-service/internal/cache"
	"github.com/campus-connect/campus-service/internal/models"
	"github.com/campus-connect/campus-service/internal/repositories"
	"github.com/campus-connect/campus-service/internal/storage"
	"github.com/campus-connect/campus-service/internal/validator"
)

// maxUploadBytes caps profile file uploads.
const maxUploadBytes = 10 << 20

var uploadKinds = map[string]string{
	"resume": "resume_link",
	"photo":  "photo_link",
	"cover":  "cover_link",
}

type profileService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
	cache     *cache.CacheManager
	fileStore *storage.FileStore
}

func NewProfileService(
	repo repositories.Repository,
	db *gorm.DB,
	logger *slog.Logger,
	v *validator.Validator,
	cacheManager *cache.CacheManager,
	fileStore *storage.FileStore,
) ProfileService {
	return &profileService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: v,
		cache:     cacheManager,
		fileStore: fileStore,
	}
}

// ===== PROFILE =====

func (s *profileService) GetMyProfile(ctx context.Context, userID string) (*ProfileResponse, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	experiences, err := s.repo.Experience().ListByUser(ctx, s.db, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load experiences: %w", err)
	}

	response := &ProfileResponse{
		User:        user,
		Tags:        user.Tags(),
		Experiences: experiences,
	}

	if user.Role == models.RoleStudent {
		enrolled, err := s.repo.EnrolledCourse().ListByStudent(ctx, s.db, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to load enrolled courses: %w", err)
		}
		response.EnrolledCourses = enrolled
	}

	return response, nil
}

// UpdateProfile applies a partial edit. Role and email are never
// editable; department belongs to professors, major and year to
// students.
func (s *profileService) UpdateProfile(ctx context.Context, userID string, req *ProfileUpdateRequest) (*models.User, error) {
	if validationErrors := s.validator.Validate(req); validationErrors.HasErrors() {
		return nil, validationErrors
	}

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.FullName != nil {
		fields["full_name"] = strings.TrimSpace(*req.FullName)
	}
	if req.Headline != nil {
		fields["headline"] = req.Headline
	}
	if req.Pronouns != nil {
		fields["pronouns"] = req.Pronouns
	}
	if req.About != nil {
		fields["about"] = req.About
	}

	switch user.Role {
	case models.RoleProfessor:
		if req.Major != nil || req.Year != nil {
			return nil, ValidationErrors{*NewValidationError("major", "field is not editable for professors", nil)}
		}
		if req.Department != nil {
			fields["department"] = req.Department
		}
	case models.RoleStudent:
		if req.Department != nil {
			return nil, ValidationErrors{*NewValidationError("department", "field is not editable for students", nil)}
		}
		if req.Major != nil {
			fields["major"] = req.Major
		}
		if req.Year != nil {
			fields["year"] = req.Year
		}
	}

	if len(fields) == 0 {
		return user, nil
	}

	if err := s.repo.User().UpdateFields(ctx, s.db, userID, fields); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	s.invalidateUser(ctx, userID)
	return s.getUser(ctx, userID)
}

// ===== TAGS =====

func (s *profileService) ReplaceTags(ctx context.Context, userID string, req *TagsUpdateRequest) ([]string, error) {
	bv := s.validator.GetBusinessValidator()
	if validationErrors := bv.ValidateTags(req.Tags); validationErrors.HasErrors() {
		return nil, validationErrors
	}
	return s.saveTags(ctx, userID, bv.NormalizeTags(req.Tags))
}

func (s *profileService) AddTag(ctx context.Context, userID, tag string) ([]string, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	tags := append(user.Tags(), tag)
	bv := s.validator.GetBusinessValidator()
	if validationErrors := bv.ValidateTags(tags); validationErrors.HasErrors() {
		return nil, validationErrors
	}
	return s.saveTags(ctx, userID, bv.NormalizeTags(tags))
}

func (s *profileService) RemoveTag(ctx context.Context, userID, tag string) ([]string, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	trimmed := strings.TrimSpace(tag)
	tags := user.Tags()
	kept := make([]string, 0, len(tags))
	removed := false
	for _, t := range tags {
		if strings.EqualFold(t, trimmed) {
			removed = true
			continue
		}
		kept = append(kept, t)
	}
	if !removed {
		return nil, ValidationErrors{*NewValidationError("tag", "tag is not on the profile", trimmed)}
	}
	return s.saveTags(ctx, userID, kept)
}

func (s *profileService) saveTags(ctx context.Context, userID string, tags []string) ([]string, error) {
	user := &models.User{}
	if err := user.SetTags(tags); err != nil {
		return nil, fmt.Errorf("failed to encode tags: %w", err)
	}

	fields := map[string]interface{}{"experience_tags": user.ExperienceTags}
	if err := s.repo.User().UpdateFields(ctx, s.db, userID, fields); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to save tags: %w", err)
	}

	s.invalidateUser(ctx, userID)
	return tags, nil
}

// ===== EXPERIENCES =====

func (s *profileService) AddExperience(ctx context.Context, userID string, req *ExperienceCreateRequest) (*models.Experience, error) {
	if validationErrors := s.validator.GetBusinessValidator().ValidateExperienceCreate(req); validationErrors.HasErrors() {
		return nil, validationErrors
	}

	if _, err := s.getUser(ctx, userID); err != nil {
		return nil, err
	}

	experience := &models.Experience{
		UserID:       userID,
		Type:         req.Type,
		Title:        strings.TrimSpace(req.Title),
		Organization: strings.TrimSpace(req.Organization),
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		IsCurrent:    req.IsCurrent,
		Description:  req.Description,
		Link:         req.Link,
	}
	if experience.IsCurrent {
		experience.EndDate = nil
	}

	if err := s.repo.Experience().Create(ctx, s.db, experience); err != nil {
		return nil, fmt.Errorf("failed to create experience: %w", err)
	}
	return experience, nil
}

func (s *profileService) UpdateExperience(ctx context.Context, userID string, id uint, req *ExperienceUpdateRequest) (*models.Experience, error) {
	experience, err := s.getOwnedExperience(ctx, userID, id, "update")
	if err != nil {
		return nil, err
	}

	if validationErrors := s.validator.GetBusinessValidator().ValidateExperienceUpdate(req, experience); validationErrors.HasErrors() {
		return nil, validationErrors
	}

	if req.Type != nil {
		experience.Type = *req.Type
	}
	if req.Title != nil {
		experience.Title = strings.TrimSpace(*req.Title)
	}
	if req.Organization != nil {
		experience.Organization = strings.TrimSpace(*req.Organization)
	}
	if req.StartDate != nil {
		experience.StartDate = *req.StartDate
	}
	if req.IsCurrent != nil {
		experience.IsCurrent = *req.IsCurrent
	}
	if req.EndDate != nil {
		experience.EndDate = req.EndDate
	}
	if experience.IsCurrent {
		experience.EndDate = nil
	}
	if req.Description != nil {
		experience.Description = req.Description
	}
	if req.Link != nil {
		experience.Link = req.Link
	}

	if err := s.repo.Experience().Update(ctx, s.db, experience); err != nil {
		return nil, fmt.Errorf("failed to update experience: %w", err)
	}
	return experience, nil
}

func (s *profileService) DeleteExperience(ctx context.Context, userID string, id uint) error {
	if _, err := s.getOwnedExperience(ctx, userID, id, "delete"); err != nil {
		return err
	}
	if err := s.repo.Experience().Delete(ctx, s.db, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrExperienceNotFound
		}
		return fmt.Errorf("failed to delete experience: %w", err)
	}
	return nil
}

// ===== ENROLLED COURSES =====

func (s *profileService) AddEnrolledCourse(ctx context.Context, studentID string, req *EnrolledCourseCreateRequest) (*models.EnrolledCourse, error) {
	if validationErrors := s.validator.Validate(req); validationErrors.HasErrors() {
		return nil, validationErrors
	}

	user, err := s.getUser(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if user.Role != models.RoleStudent {
		return nil, NewPermissionError(studentID, 0, "enrolled_course", "create", "student role required")
	}

	course := &models.EnrolledCourse{
		StudentID:      studentID,
		CourseCodeName: strings.TrimSpace(req.CourseCodeName),
		Semester:       strings.TrimSpace(req.Semester),
		InstructorName: req.InstructorName,
		Status:         req.Status,
		Grade:          req.Grade,
	}
	if course.Status == "" {
		course.Status = models.CourseOngoing
	}

	if err := s.repo.EnrolledCourse().Create(ctx, s.db, course); err != nil {
		return nil, fmt.Errorf("failed to create enrolled course: %w", err)
	}
	return course, nil
}

func (s *profileService) UpdateEnrolledCourse(ctx context.Context, studentID string, id uint, req *EnrolledCourseUpdateRequest) (*models.EnrolledCourse, error) {
	if validationErrors := s.validator.Validate(req); validationErrors.HasErrors() {
		return nil, validationErrors
	}

	course, err := s.getOwnedEnrolledCourse(ctx, studentID, id, "update")
	if err != nil {
		return nil, err
	}

	if req.CourseCodeName != nil {
		course.CourseCodeName = strings.TrimSpace(*req.CourseCodeName)
	}
	if req.Semester != nil {
		course.Semester = strings.TrimSpace(*req.Semester)
	}
	if req.InstructorName != nil {
		course.InstructorName = req.InstructorName
	}
	if req.Status != nil {
		course.Status = *req.Status
	}
	if req.Grade != nil {
		course.Grade = req.Grade
	}

	if err := s.repo.EnrolledCourse().Update(ctx, s.db, course); err != nil {
		return nil, fmt.Errorf("failed to update enrolled course: %w", err)
	}
	return course, nil
}

func (s *profileService) DeleteEnrolledCourse(ctx context.Context, studentID string, id uint) error {
	if _, err := s.getOwnedEnrolledCourse(ctx, studentID, id, "delete"); err != nil {
		return err
	}
	if err := s.repo.EnrolledCourse().Delete(ctx, s.db, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrEnrolledCourseNotFound
		}
		return fmt.Errorf("failed to delete enrolled course: %w", err)
	}
	return nil
}

// ===== FILE UPLOADS =====

// UploadFile streams a profile file to the blob store and records its URL
// on the user row. kind selects the column: resume, photo or cover.
func (s *profileService) UploadFile(ctx context.Context, userID, kind string, header *multipart.FileHeader) (string, error) {
	column, ok := uploadKinds[kind]
	if !ok {
		return "", NewBusinessRuleError(CodeInvalidUploadType,
			"unsupported upload kind", map[string]interface{}{
				"kind": kind,
			})
	}
	if header.Size > maxUploadBytes {
		return "", NewBusinessRuleError(CodeUploadTooLarge,
			"file exceeds the upload size limit", map[string]interface{}{
				"size_bytes": header.Size,
				"max_bytes":  maxUploadBytes,
			})
	}
	if s.fileStore == nil {
		return "", fmt.Errorf("file storage is not configured")
	}

	if _, err := s.getUser(ctx, userID); err != nil {
		return "", err
	}

	url, err := s.fileStore.Upload(ctx, userID, kind, header)
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	if err := s.repo.User().UpdateFields(ctx, s.db, userID, map[string]interface{}{column: url}); err != nil {
		return "", fmt.Errorf("failed to record file link: %w", err)
	}

	s.invalidateUser(ctx, userID)
	s.logger.InfoContext(ctx, "profile file uploaded",
		"user_id", userID,
		"kind", kind,
	)
	return url, nil
}

// ===== HELPERS =====

func (s *profileService) getUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repo.User().GetByID(ctx, s.db, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

func (s *profileService) getOwnedExperience(ctx context.Context, userID string, id uint, action string) (*models.Experience, error) {
	experience, err := s.repo.Experience().GetByID(ctx, s.db, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrExperienceNotFound
		}
		return nil, fmt.Errorf("failed to load experience: %w", err)
	}
	if experience.UserID != userID {
		return nil, NewPermissionError(userID, id, "experience", action, "experiences belong to their owner")
	}
	return experience, nil
}

func (s *profileService) getOwnedEnrolledCourse(ctx context.Context, studentID string, id uint, action string) (*models.EnrolledCourse, error) {
	course, err := s.repo.EnrolledCourse().GetByID(ctx, s.db, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrEnrolledCourseNotFound
		}
		return nil, fmt.Errorf("failed to load enrolled course: %w", err)
	}
	if course.StudentID != studentID {
		return nil, NewPermissionError(studentID, id, "enrolled_course", action, "enrolled courses belong to their owner")
	}
	return course, nil
}

func (s *profileService) invalidateUser(ctx context.Context, userID string) {
	if s.cache != nil {
		cache.InvalidateUserCache(ctx, s.cache, userID)
	}
}
