package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lithammer/shortuuid/v3"
	"gorm.io/gorm"

	"github.com/campus-connect/campus-service/internal/models"
	"github.com/campus-connect/campus-service/internal/repositories"
	"github.com/campus-connect/campus-service/internal/validator"
)

// courseCodeLength is the length of generated course codes.
const courseCodeLength = 8

// courseCodeAttempts bounds collision retries on code generation.
const courseCodeAttempts = 5

type courseService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
}

func NewCourseService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, v *validator.Validator) CourseService {
	return &courseService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: v,
	}
}

func (s *courseService) CreateCourse(ctx context.Context, professorID string, req *CourseCreateRequest) (*models.Course, error) {
	if validationErrors := s.validator.Validate(req); validationErrors.HasErrors() {
		return nil, validationErrors
	}

	if err := s.requireProfessor(ctx, professorID, "create"); err != nil {
		return nil, err
	}

	code, err := s.generateCourseCode(ctx)
	if err != nil {
		return nil, err
	}

	course := &models.Course{
		ProfessorID: professorID,
		CourseName:  strings.TrimSpace(req.CourseName),
		Description: req.Description,
		Status:      req.Status,
		Link:        req.Link,
		CourseCode:  code,
	}
	if course.Status == "" {
		course.Status = models.CourseOngoing
	}

	if err := s.repo.Course().Create(ctx, s.db, course); err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	s.logger.InfoContext(ctx, "course created",
		"course_id", course.ID,
		"professor_id", professorID,
		"course_code", course.CourseCode,
	)
	return course, nil
}

func (s *courseService) GetCourse(ctx context.Context, callerID string, id uint) (*models.Course, error) {
	course, err := s.repo.Course().GetByID(ctx, s.db, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to load course: %w", err)
	}
	return course, nil
}

func (s *courseService) UpdateCourse(ctx context.Context, professorID string, id uint, req *CourseUpdateRequest) (*models.Course, error) {
	if validationErrors := s.validator.Validate(req); validationErrors.HasErrors() {
		return nil, validationErrors
	}

	course, err := s.getOwnedCourse(ctx, professorID, id, "update")
	if err != nil {
		return nil, err
	}

	if req.CourseName != nil {
		course.CourseName = strings.TrimSpace(*req.CourseName)
	}
	if req.Description != nil {
		course.Description = req.Description
	}
	if req.Status != nil {
		course.Status = *req.Status
	}
	if req.Link != nil {
		course.Link = req.Link
	}

	if err := s.repo.Course().Update(ctx, s.db, course); err != nil {
		return nil, fmt.Errorf("failed to update course: %w", err)
	}
	return course, nil
}

func (s *courseService) DeleteCourse(ctx context.Context, professorID string, id uint) error {
	if _, err := s.getOwnedCourse(ctx, professorID, id, "delete"); err != nil {
		return err
	}
	if err := s.repo.Course().Delete(ctx, s.db, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrCourseNotFound
		}
		return fmt.Errorf("failed to delete course: %w", err)
	}
	return nil
}

func (s *courseService) ListMyCourses(ctx context.Context, professorID string) ([]*models.Course, error) {
	courses, err := s.repo.Course().ListByProfessor(ctx, s.db, professorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return courses, nil
}

// generateCourseCode produces a short unique code students use to name
// the course. Collisions are rare at this length but checked anyway.
func (s *courseService) generateCourseCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < courseCodeAttempts; attempt++ {
		code := strings.ToUpper(shortuuid.New()[:courseCodeLength])

		_, err := s.repo.Course().GetByCode(ctx, s.db, code)
		if repositories.IsNotFoundError(err) {
			return code, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to check course code: %w", err)
		}
	}
	return "", fmt.Errorf("failed to generate a unique course code")
}

func (s *courseService) requireProfessor(ctx context.Context, userID, action string) error {
	user, err := s.repo.User().GetByID(ctx, s.db, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to load user: %w", err)
	}
	if user.Role != models.RoleProfessor {
		return NewPermissionError(userID, 0, "course", action, "professor role required")
	}
	return nil
}

func (s *courseService) getOwnedCourse(ctx context.Context, professorID string, id uint, action string) (*models.Course, error) {
	course, err := s.repo.Course().GetByID(ctx, s.db, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to load course: %w", err)
	}
	if course.ProfessorID != professorID {
		return nil, NewPermissionError(professorID, id, "course", action, "only the offering professor may modify a course")
	}
	return course, nil
}
