// internal/service/user.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dangerclosesec/crm/internal/audit"
	"github.com/dangerclosesec/crm/internal/auth"
	"github.com/dangerclosesec/crm/internal/domain"
	"github.com/dangerclosesec/crm/internal/model"
	"github.com/dangerclosesec/crm/internal/policy"
	"github.com/dangerclosesec/crm/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type UserService struct {
	repo           repository.UserRepositoryIface
	teams          repository.TeamRepositoryIface
	passwordHasher *auth.PasswordHasher
	tokenManager   *auth.TokenManager
	auditLog       audit.Logger
	logger         *slog.Logger
	validate       *validator.Validate
}

func NewUserService(
	repo repository.UserRepositoryIface,
	teams repository.TeamRepositoryIface,
	passwordHasher *auth.PasswordHasher,
	tokenManager *auth.TokenManager,
	auditLog audit.Logger,
	logger *slog.Logger,
) *UserService {
	if auditLog == nil {
		auditLog = &audit.NoOpLogger{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserService{
		repo:           repo,
		teams:          teams,
		passwordHasher: passwordHasher,
		tokenManager:   tokenManager,
		auditLog:       auditLog,
		logger:         logger,
		validate:       validator.New(),
	}
}

type CreateUserInput struct {
	Email     string     `json:"email" validate:"required,email"`
	FirstName string     `json:"first_name" validate:"required"`
	LastName  string     `json:"last_name"`
	Password  string     `json:"password" validate:"required,min=8"`
	Role      string     `json:"role" validate:"omitempty,oneof=admin sales_manager sales_executive"`
	TeamID    *uuid.UUID `json:"team_id"`
	ManagerID *uuid.UUID `json:"manager_id"`
}

// CreateUser adds a user. Only admins create users; a missing role means
// sales_executive.
func (s *UserService) CreateUser(ctx context.Context, p policy.Principal, input CreateUserInput) (*model.User, error) {
	if !policy.CanManageUsers(p) {
		s.deny(ctx, p, "create user")
		return nil, domain.ErrPermissionDenied
	}
	return s.createUser(ctx, input)
}

// Bootstrap creates a user without an acting principal. It backs the admin
// CLI, which runs with database credentials rather than a session.
func (s *UserService) Bootstrap(ctx context.Context, input CreateUserInput) (*model.User, error) {
	return s.createUser(ctx, input)
}

func (s *UserService) createUser(ctx context.Context, input CreateUserInput) (*model.User, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	if input.TeamID != nil {
		if _, err := s.teams.FindByID(ctx, *input.TeamID); err != nil {
			return nil, err
		}
	}
	if input.ManagerID != nil {
		if _, err := s.repo.FindByID(ctx, *input.ManagerID); err != nil {
			return nil, err
		}
	}

	hash, err := s.passwordHasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	role := model.RoleSalesExecutive
	if input.Role != "" {
		role = model.UserRole(input.Role)
	}

	user := &model.User{
		Email:        input.Email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: hash,
		Role:         role,
		TeamID:       input.TeamID,
		ManagerID:    input.ManagerID,
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "user created", "userID", user.ID, "role", user.Role)
	return user, nil
}

// ListUsers returns a page of users. Every authenticated user may list
// users so assignees can be picked.
func (s *UserService) ListUsers(ctx context.Context, offset, limit int) ([]*model.User, int64, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.FindAllPaginated(ctx, offset, limit)
}

// Me returns the caller's own user record.
func (s *UserService) Me(ctx context.Context, p policy.Principal) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, p.ID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}
	return user, nil
}

// FindByEmail looks a user up by email, case-insensitively.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

func (s *UserService) deny(ctx context.Context, p policy.Principal, reason string) {
	err := s.auditLog.LogAccessDecision(ctx, audit.Decision{
		Action: model.ActionAdminister,
		Actor:  p,
		Reason: reason,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "failed to write access audit entry", "error", err)
	}
}
