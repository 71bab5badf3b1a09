package services

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/campus-connect/campus-service/internal/models"
	"github.com/campus-connect/campus-service/internal/repositories"
	"github.com/campus-connect/campus-service/internal/validator"
)

type authService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
}

func NewAuthService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, v *validator.Validator) AuthService {
	return &authService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: v,
	}
}

// EstablishSession verifies that the signed-in account may use the portal
// it picked. The role recorded at signup is authoritative: a professor
// account on the student portal (or vice versa) gets no session.
func (s *authService) EstablishSession(ctx context.Context, userID string, req *SessionRequest) (*SessionResponse, error) {
	if validationErrors := s.validator.Validate(req); validationErrors.HasErrors() {
		return nil, validationErrors
	}

	identity, err := s.repo.Identity().GetByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to resolve identity: %w", err)
	}

	if !identity.EmailVerified {
		return nil, NewBusinessRuleError(CodeEmailNotVerified,
			"email address has not been verified", map[string]interface{}{
				"user_id": userID,
			})
	}

	user, err := s.loadOrProvision(ctx, identity)
	if err != nil {
		return nil, err
	}

	if user.Role != req.Role {
		s.logger.WarnContext(ctx, "portal role mismatch",
			"user_id", userID,
			"stored_role", user.Role,
			"requested_role", req.Role,
		)
		return nil, NewBusinessRuleError(CodeRoleMismatch,
			"account role does not match the requested portal", map[string]interface{}{
				"stored_role":    string(user.Role),
				"requested_role": string(req.Role),
			})
	}

	return &SessionResponse{User: user, Role: user.Role}, nil
}

// ProvisionUser returns the local user row for an identity account,
// creating it on first sight. The role is fixed from identity claims at
// creation and never changed here.
func (s *authService) ProvisionUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repo.User().GetByID(ctx, s.db, userID)
	if err == nil {
		return user, nil
	}
	if !repositories.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	identity, err := s.repo.Identity().GetByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to resolve identity: %w", err)
	}

	return s.loadOrProvision(ctx, identity)
}

func (s *authService) loadOrProvision(ctx context.Context, identity *repositories.Identity) (*models.User, error) {
	user, err := s.repo.User().GetByID(ctx, s.db, identity.ID)
	if err == nil {
		return user, nil
	}
	if !repositories.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	user = &models.User{
		ID:            identity.ID,
		FullName:      identity.FullName,
		Email:         identity.Email,
		Role:          identity.Role,
		EmailVerified: identity.EmailVerified,
	}
	if identity.AvatarURL != "" {
		avatar := identity.AvatarURL
		user.PhotoLink = &avatar
	}

	if err := s.repo.User().Create(ctx, s.db, user); err != nil {
		// A concurrent first request may have created the row already.
		if existing, getErr := s.repo.User().GetByID(ctx, s.db, identity.ID); getErr == nil {
			return existing, nil
		}
		return nil, fmt.Errorf("failed to provision user: %w", err)
	}

	s.logger.InfoContext(ctx, "provisioned user from identity",
		"user_id", user.ID,
		"role", user.Role,
	)
	return user, nil
}
