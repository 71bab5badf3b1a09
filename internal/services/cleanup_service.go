package services

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/campus-connect/campus-service/internal/cache"
	"github.com/campus-connect/campus-service/internal/events"
	"github.com/campus-connect/campus-service/internal/repositories"
	"github.com/campus-connect/campus-service/internal/storage"
)

type cleanupService struct {
	repo        repositories.Repository
	db          *gorm.DB
	logger      *slog.Logger
	cache       *cache.CacheManager
	interestSet *cache.InterestSet
	fileStore   *storage.FileStore
	publisher   events.EventPublisher
}

func NewCleanupService(
	repo repositories.Repository,
	db *gorm.DB,
	logger *slog.Logger,
	cacheManager *cache.CacheManager,
	interestSet *cache.InterestSet,
	fileStore *storage.FileStore,
	publisher events.EventPublisher,
) CleanupService {
	return &cleanupService{
		repo:        repo,
		db:          db,
		logger:      logger,
		cache:       cacheManager,
		interestSet: interestSet,
		fileStore:   fileStore,
		publisher:   publisher,
	}
}

// CleanupAccount removes everything the service holds for a deleted
// identity account. Each step runs independently: a failure is recorded
// and the remaining steps still run, so a partial pass converges on the
// next broker redelivery. Missing data counts as success.
func (s *cleanupService) CleanupAccount(ctx context.Context, userID string) (*CleanupReport, error) {
	report := &CleanupReport{UserID: userID}

	s.cleanupStudentInterests(ctx, userID, report)
	s.cleanupOpportunities(ctx, userID, report)
	s.cleanupCourses(ctx, userID, report)
	s.cleanupEnrollments(ctx, userID, report)
	s.cleanupExperiences(ctx, userID, report)
	s.cleanupUserRow(ctx, userID, report)
	s.cleanupFiles(ctx, userID, report)

	if s.interestSet != nil {
		if err := s.interestSet.Invalidate(ctx, userID); err != nil {
			s.logger.WarnContext(ctx, "interest set invalidation failed",
				"user_id", userID,
				"error", err,
			)
		}
	}
	if s.cache != nil {
		cache.InvalidateUserCache(ctx, s.cache, userID)
	}

	if s.publisher != nil {
		event := events.NewEvent(events.EventAccountCleanedUp, report)
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.ErrorContext(ctx, "event publish failed",
				"event_type", events.EventAccountCleanedUp,
				"error", err,
			)
		}
	}

	s.logger.InfoContext(ctx, "account cleaned up",
		"user_id", userID,
		"interests_deleted", report.InterestsDeleted,
		"opportunities_deleted", report.OpportunitiesDeleted,
		"errors", len(report.Errors),
	)
	return report, nil
}

func (s *cleanupService) cleanupStudentInterests(ctx context.Context, userID string, report *CleanupReport) {
	ids, err := s.repo.Interest().ListOpportunityIDsByStudent(ctx, s.db, userID)
	if err != nil {
		report.fail("list interests", err)
		return
	}
	if err := s.repo.Interest().DeleteByStudent(ctx, s.db, userID); err != nil {
		report.fail("delete interests", err)
		return
	}
	report.InterestsDeleted = int64(len(ids))
}

// cleanupOpportunities removes a professor's postings together with the
// interests attached to them, invalidating affected students' interest
// sets.
func (s *cleanupService) cleanupOpportunities(ctx context.Context, userID string, report *CleanupReport) {
	opportunities, _, err := s.repo.Opportunity().GetByProfessor(ctx, s.db, userID, repositories.OpportunityFilters{})
	if err != nil {
		report.fail("list opportunities", err)
		return
	}

	for _, opportunity := range opportunities {
		interests, err := s.repo.Interest().ListByOpportunity(ctx, s.db, opportunity.ID)
		if err != nil {
			report.fail(fmt.Sprintf("list interests for opportunity %d", opportunity.ID), err)
			continue
		}
		if err := s.repo.Interest().DeleteByOpportunity(ctx, s.db, opportunity.ID); err != nil {
			report.fail(fmt.Sprintf("delete interests for opportunity %d", opportunity.ID), err)
			continue
		}
		if s.interestSet != nil {
			for _, interest := range interests {
				if err := s.interestSet.Invalidate(ctx, interest.StudentID); err != nil {
					s.logger.WarnContext(ctx, "interest set invalidation failed",
						"student_id", interest.StudentID,
						"error", err,
					)
				}
			}
		}
	}

	if err := s.repo.Opportunity().DeleteByProfessor(ctx, s.db, userID); err != nil {
		report.fail("delete opportunities", err)
		return
	}
	report.OpportunitiesDeleted = int64(len(opportunities))
}

func (s *cleanupService) cleanupCourses(ctx context.Context, userID string, report *CleanupReport) {
	courses, err := s.repo.Course().ListByProfessor(ctx, s.db, userID)
	if err != nil {
		report.fail("list courses", err)
		return
	}
	if err := s.repo.Course().DeleteByProfessor(ctx, s.db, userID); err != nil {
		report.fail("delete courses", err)
		return
	}
	report.CoursesDeleted = int64(len(courses))
}

func (s *cleanupService) cleanupEnrollments(ctx context.Context, userID string, report *CleanupReport) {
	enrollments, err := s.repo.EnrolledCourse().ListByStudent(ctx, s.db, userID)
	if err != nil {
		report.fail("list enrolled courses", err)
		return
	}
	if err := s.repo.EnrolledCourse().DeleteByStudent(ctx, s.db, userID); err != nil {
		report.fail("delete enrolled courses", err)
		return
	}
	report.EnrollmentsDeleted = int64(len(enrollments))
}

func (s *cleanupService) cleanupExperiences(ctx context.Context, userID string, report *CleanupReport) {
	experiences, err := s.repo.Experience().ListByUser(ctx, s.db, userID)
	if err != nil {
		report.fail("list experiences", err)
		return
	}
	if err := s.repo.Experience().DeleteByUser(ctx, s.db, userID); err != nil {
		report.fail("delete experiences", err)
		return
	}
	report.ExperiencesDeleted = int64(len(experiences))
}

func (s *cleanupService) cleanupUserRow(ctx context.Context, userID string, report *CleanupReport) {
	err := s.repo.User().Delete(ctx, s.db, userID)
	if err != nil && !repositories.IsNotFoundError(err) {
		report.fail("delete user", err)
		return
	}
	report.UserDeleted = true
}

func (s *cleanupService) cleanupFiles(ctx context.Context, userID string, report *CleanupReport) {
	if s.fileStore == nil {
		return
	}
	if err := s.fileStore.DeleteUserFiles(ctx, userID); err != nil {
		report.fail("delete files", err)
		return
	}
	report.FilesDeleted = true
}

func (r *CleanupReport) fail(step string, err error) {
	r.Errors = append(r.Errors, fmt.Sprintf("%s: %v", step, err))
}
