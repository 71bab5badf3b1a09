package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/campus-connect/campus-service/internal/cache"
	"github.com/campus-connect/campus-service/internal/events"
	"github.com/campus-connect/campus-service/internal/models"
	"github.com/campus-connect/campus-service/internal/repositories"
	"github.com/campus-connect/campus-service/internal/validator"
)

type opportunityService struct {
	repo        repositories.Repository
	db          *gorm.DB
	logger      *slog.Logger
	validator   *validator.Validator
	interests   InterestService
	interestSet *cache.InterestSet
	publisher   events.EventPublisher
}

func NewOpportunityService(
	repo repositories.Repository,
	db *gorm.DB,
	logger *slog.Logger,
	v *validator.Validator,
	interests InterestService,
	interestSet *cache.InterestSet,
	publisher events.EventPublisher,
) OpportunityService {
	return &opportunityService{
		repo:        repo,
		db:          db,
		logger:      logger,
		validator:   v,
		interests:   interests,
		interestSet: interestSet,
		publisher:   publisher,
	}
}

// ===== CRUD OPERATIONS =====

func (s *opportunityService) CreateOpportunity(ctx context.Context, professorID string, req *OpportunityCreateRequest) (*models.Opportunity, error) {
	if validationErrors := s.validator.GetBusinessValidator().ValidateOpportunityCreate(req); validationErrors.HasErrors() {
		return nil, validationErrors
	}

	if err := s.requireProfessor(ctx, professorID, "opportunity", "create"); err != nil {
		return nil, err
	}

	opportunity := &models.Opportunity{
		ProfessorID:   professorID,
		Title:         req.Title,
		Description:   req.Description,
		Type:          req.Type,
		AllowInterest: req.AllowInterest,
		Deadline:      req.Deadline,
	}

	if err := s.repo.Opportunity().Create(ctx, s.db, opportunity); err != nil {
		return nil, fmt.Errorf("failed to create opportunity: %w", err)
	}

	s.publishEvent(ctx, events.EventOpportunityCreated, map[string]interface{}{
		"opportunity_id": opportunity.ID,
		"professor_id":   professorID,
		"type":           string(opportunity.Type),
	})

	s.logger.InfoContext(ctx, "opportunity created",
		"opportunity_id", opportunity.ID,
		"professor_id", professorID,
	)
	return opportunity, nil
}

func (s *opportunityService) GetOpportunity(ctx context.Context, callerID string, id uint) (*OpportunityResponse, error) {
	opportunity, err := s.repo.Opportunity().GetByIDWithProfessor(ctx, s.db, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrOpportunityNotFound
		}
		return nil, fmt.Errorf("failed to load opportunity: %w", err)
	}

	interested := false
	if callerID != "" && callerID != opportunity.ProfessorID {
		interested, err = s.repo.Interest().Exists(ctx, s.db, callerID, id)
		if err != nil {
			return nil, fmt.Errorf("failed to check interest: %w", err)
		}
	}

	return &OpportunityResponse{
		Opportunity: opportunity,
		Interested:  interested,
		CanInterest: opportunity.Open(time.Now()),
	}, nil
}

func (s *opportunityService) UpdateOpportunity(ctx context.Context, professorID string, id uint, req *OpportunityUpdateRequest) (*models.Opportunity, error) {
	if validationErrors := s.validator.GetBusinessValidator().ValidateOpportunityUpdate(req); validationErrors.HasErrors() {
		return nil, validationErrors
	}

	opportunity, err := s.getOwnedOpportunity(ctx, professorID, id, "update")
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		opportunity.Title = *req.Title
	}
	if req.Description != nil {
		opportunity.Description = *req.Description
	}
	if req.Type != nil {
		opportunity.Type = *req.Type
	}
	if req.AllowInterest != nil {
		opportunity.AllowInterest = *req.AllowInterest
	}
	if req.ClearDeadline {
		opportunity.Deadline = nil
	} else if req.Deadline != nil {
		opportunity.Deadline = req.Deadline
	}

	if err := s.repo.Opportunity().Update(ctx, s.db, opportunity); err != nil {
		return nil, fmt.Errorf("failed to update opportunity: %w", err)
	}

	s.logger.InfoContext(ctx, "opportunity updated",
		"opportunity_id", id,
		"professor_id", professorID,
	)
	return opportunity, nil
}

// DeleteOpportunity removes a posting and every interest attached to it
// in one transaction. Interest sets of affected students are invalidated
// afterwards so they rebuild from the database on next read.
func (s *opportunityService) DeleteOpportunity(ctx context.Context, professorID string, id uint) error {
	if _, err := s.getOwnedOpportunity(ctx, professorID, id, "delete"); err != nil {
		return err
	}

	interests, err := s.repo.Interest().ListByOpportunity(ctx, s.db, id)
	if err != nil {
		return fmt.Errorf("failed to list interests: %w", err)
	}

	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		if err := txRepo.Interest().DeleteByOpportunity(ctx, nil, id); err != nil {
			return fmt.Errorf("failed to delete interests: %w", err)
		}
		if err := txRepo.Opportunity().Delete(ctx, nil, id); err != nil {
			return fmt.Errorf("failed to delete opportunity: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
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

	s.publishEvent(ctx, events.EventOpportunityDeleted, map[string]interface{}{
		"opportunity_id": id,
		"professor_id":   professorID,
		"interest_count": len(interests),
	})

	s.logger.InfoContext(ctx, "opportunity deleted",
		"opportunity_id", id,
		"professor_id", professorID,
		"interests_removed", len(interests),
	)
	return nil
}

// ===== LISTING =====

// ListOpportunities is the shared feed. For students each item carries
// whether they already marked interest, resolved from the interested-set
// in one round trip.
func (s *opportunityService) ListOpportunities(ctx context.Context, callerID string, req *OpportunityListRequest) (*OpportunityListResponse, error) {
	filters := repositories.OpportunityFilters{
		Type:      req.Type,
		Limit:     req.Limit,
		Offset:    req.Offset,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	}

	opportunities, total, err := s.repo.Opportunity().List(ctx, s.db, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list opportunities: %w", err)
	}

	interestedIDs := map[uint]bool{}
	if callerID != "" {
		interestedIDs, err = s.interests.InterestedOpportunityIDs(ctx, callerID)
		if err != nil {
			// Interest state is advisory; the feed must not fail over it.
			s.logger.WarnContext(ctx, "interested set lookup failed",
				"student_id", callerID,
				"error", err,
			)
			interestedIDs = map[uint]bool{}
		}
	}

	return s.buildListResponse(opportunities, total, filters, interestedIDs), nil
}

func (s *opportunityService) ListMyOpportunities(ctx context.Context, professorID string, req *OpportunityListRequest) (*OpportunityListResponse, error) {
	filters := repositories.OpportunityFilters{
		Type:      req.Type,
		Limit:     req.Limit,
		Offset:    req.Offset,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	}

	opportunities, total, err := s.repo.Opportunity().GetByProfessor(ctx, s.db, professorID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list opportunities: %w", err)
	}

	return s.buildListResponse(opportunities, total, filters, nil), nil
}

func (s *opportunityService) buildListResponse(opportunities []*models.Opportunity, total int64, filters repositories.OpportunityFilters, interestedIDs map[uint]bool) *OpportunityListResponse {
	now := time.Now()
	items := make([]*OpportunityResponse, 0, len(opportunities))
	for _, opportunity := range opportunities {
		items = append(items, &OpportunityResponse{
			Opportunity: opportunity,
			Interested:  interestedIDs[opportunity.ID],
			CanInterest: opportunity.Open(now),
		})
	}

	return &OpportunityListResponse{
		Opportunities: items,
		Total:         total,
		Limit:         filters.Limit,
		Offset:        filters.Offset,
	}
}

// ===== PERMISSION HELPERS =====

func (s *opportunityService) requireProfessor(ctx context.Context, userID, resource, action string) error {
	user, err := s.repo.User().GetByID(ctx, s.db, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to load user: %w", err)
	}
	if user.Role != models.RoleProfessor {
		return NewPermissionError(userID, 0, resource, action, "professor role required")
	}
	return nil
}

func (s *opportunityService) getOwnedOpportunity(ctx context.Context, professorID string, id uint, action string) (*models.Opportunity, error) {
	opportunity, err := s.repo.Opportunity().GetByID(ctx, s.db, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrOpportunityNotFound
		}
		return nil, fmt.Errorf("failed to load opportunity: %w", err)
	}
	if opportunity.ProfessorID != professorID {
		return nil, NewPermissionError(professorID, id, "opportunity", action, "only the posting professor may modify an opportunity")
	}
	return opportunity, nil
}

func (s *opportunityService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
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
