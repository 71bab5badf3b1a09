package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/campus-connect/campus-service/internal/cache"
	"github.com/campus-connect/campus-service/internal/events"
	"github.com/campus-connect/campus-service/internal/models"
	"github.com/campus-connect/campus-service/internal/repositories"
)

type interestService struct {
	repo        repositories.Repository
	db          *gorm.DB
	logger      *slog.Logger
	interestSet *cache.InterestSet
	publisher   events.EventPublisher
}

func NewInterestService(
	repo repositories.Repository,
	db *gorm.DB,
	logger *slog.Logger,
	interestSet *cache.InterestSet,
	publisher events.EventPublisher,
) InterestService {
	return &interestService{
		repo:        repo,
		db:          db,
		logger:      logger,
		interestSet: interestSet,
		publisher:   publisher,
	}
}

// ===== MARK / REMOVE =====

// MarkInterest records a student's interest in an open opportunity. The
// student's name, email and file links are denormalized into the row at
// this moment and never synced afterwards. Creation is a single
// conditional insert, so two concurrent marks for the same pair produce
// exactly one row.
func (s *interestService) MarkInterest(ctx context.Context, studentID string, opportunityID uint) (*models.Interest, error) {
	student, err := s.requireStudent(ctx, studentID, "interest", "mark")
	if err != nil {
		return nil, err
	}

	opportunity, err := s.repo.Opportunity().GetByID(ctx, s.db, opportunityID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrOpportunityNotFound
		}
		return nil, fmt.Errorf("failed to load opportunity: %w", err)
	}

	if !opportunity.AllowInterest {
		return nil, NewBusinessRuleError(CodeNotInterestable,
			"this opportunity is not accepting interest", map[string]interface{}{
				"opportunity_id": opportunityID,
			})
	}
	if opportunity.Deadline != nil && !opportunity.Deadline.After(time.Now()) {
		return nil, NewBusinessRuleError(CodeDeadlinePassed,
			"the deadline for this opportunity has passed", map[string]interface{}{
				"opportunity_id": opportunityID,
				"deadline":       opportunity.Deadline,
			})
	}

	interest := &models.Interest{
		OpportunityID:       opportunityID,
		StudentID:           studentID,
		ProfessorID:         opportunity.ProfessorID,
		ApplicationSnapshot: models.NewSnapshot(student),
	}

	if err := s.repo.Interest().Create(ctx, s.db, interest); err != nil {
		if errors.Is(err, repositories.ErrDuplicateInterest) {
			return nil, NewBusinessRuleError(CodeDuplicateInterest,
				"interest has already been marked for this opportunity", map[string]interface{}{
					"opportunity_id": opportunityID,
				})
		}
		return nil, fmt.Errorf("failed to create interest: %w", err)
	}

	if s.interestSet != nil {
		if err := s.interestSet.Add(ctx, studentID, opportunityID); err != nil {
			s.logger.WarnContext(ctx, "interest set add failed",
				"student_id", studentID,
				"opportunity_id", opportunityID,
				"error", err,
			)
		}
	}

	s.publishEvent(ctx, events.EventInterestMarked, map[string]interface{}{
		"interest_id":    interest.ID,
		"opportunity_id": opportunityID,
		"student_id":     studentID,
		"professor_id":   opportunity.ProfessorID,
	})

	s.logger.InfoContext(ctx, "interest marked",
		"student_id", studentID,
		"opportunity_id", opportunityID,
	)
	return interest, nil
}

func (s *interestService) RemoveInterest(ctx context.Context, studentID string, opportunityID uint) error {
	err := s.repo.Interest().DeleteByStudentAndOpportunity(ctx, s.db, studentID, opportunityID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrInterestNotFound
		}
		return fmt.Errorf("failed to remove interest: %w", err)
	}

	if s.interestSet != nil {
		if err := s.interestSet.Remove(ctx, studentID, opportunityID); err != nil {
			s.logger.WarnContext(ctx, "interest set remove failed",
				"student_id", studentID,
				"opportunity_id", opportunityID,
				"error", err,
			)
		}
	}

	s.publishEvent(ctx, events.EventInterestWithdrawn, map[string]interface{}{
		"opportunity_id": opportunityID,
		"student_id":     studentID,
	})

	s.logger.InfoContext(ctx, "interest removed",
		"student_id", studentID,
		"opportunity_id", opportunityID,
	)
	return nil
}

// ===== LISTING =====

// ListForOpportunity returns the applicant roster, newest first. Only the
// posting professor may read it.
func (s *interestService) ListForOpportunity(ctx context.Context, professorID string, opportunityID uint) ([]*InterestResponse, error) {
	opportunity, err := s.repo.Opportunity().GetByID(ctx, s.db, opportunityID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrOpportunityNotFound
		}
		return nil, fmt.Errorf("failed to load opportunity: %w", err)
	}
	if opportunity.ProfessorID != professorID {
		return nil, NewPermissionError(professorID, opportunityID, "interest", "list",
			"only the posting professor may view interested students")
	}

	interests, err := s.repo.Interest().ListByOpportunity(ctx, s.db, opportunityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list interests: %w", err)
	}

	responses := make([]*InterestResponse, 0, len(interests))
	for _, interest := range interests {
		responses = append(responses, &InterestResponse{
			ID:            interest.ID,
			OpportunityID: interest.OpportunityID,
			StudentID:     interest.StudentID,
			StudentName:   interest.StudentName,
			StudentEmail:  interest.StudentEmail,
			ResumeLink:    interest.StudentResumeLink,
			PhotoLink:     interest.StudentPhotoLink,
			CreatedAt:     interest.CreatedAt,
		})
	}
	return responses, nil
}

func (s *interestService) ListMine(ctx context.Context, studentID string) ([]*MyInterestResponse, error) {
	interests, err := s.repo.Interest().ListByStudent(ctx, s.db, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list interests: %w", err)
	}

	responses := make([]*MyInterestResponse, 0, len(interests))
	for _, interest := range interests {
		opportunity := interest.Opportunity
		responses = append(responses, &MyInterestResponse{
			InterestID:  interest.ID,
			Opportunity: &opportunity,
			MarkedAt:    interest.CreatedAt,
		})
	}
	return responses, nil
}

// InterestedOpportunityIDs answers "which opportunities has this student
// marked" from the interested set, rebuilding it from the database when
// absent.
func (s *interestService) InterestedOpportunityIDs(ctx context.Context, studentID string) (map[uint]bool, error) {
	if s.interestSet != nil {
		ids, setExists, err := s.interestSet.Members(ctx, studentID)
		if err != nil {
			s.logger.WarnContext(ctx, "interest set read failed",
				"student_id", studentID,
				"error", err,
			)
		} else if setExists {
			return idSet(ids), nil
		}
	}

	ids, err := s.repo.Interest().ListOpportunityIDsByStudent(ctx, s.db, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load interested opportunities: %w", err)
	}

	if s.interestSet != nil {
		if err := s.interestSet.Rebuild(ctx, studentID, ids); err != nil {
			s.logger.WarnContext(ctx, "interest set rebuild failed",
				"student_id", studentID,
				"error", err,
			)
		}
	}

	return idSet(ids), nil
}

func idSet(ids []uint) map[uint]bool {
	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// ===== HELPERS =====

func (s *interestService) requireStudent(ctx context.Context, userID, resource, action string) (*models.User, error) {
	user, err := s.repo.User().GetByID(ctx, s.db, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user.Role != models.RoleStudent {
		return nil, NewPermissionError(userID, 0, resource, action, "student role required")
	}
	return user, nil
}

func (s *interestService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events.NewEvent(eventType, data)); err != nil {
		s.logger.ErrorContext(ctx, "event publish failed",
			"event_type", eventType,
			"error", err,
		)
	}
}
