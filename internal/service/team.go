// internal/service/team.go
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dangerclosesec/crm/internal/audit"
	"github.com/dangerclosesec/crm/internal/domain"
	"github.com/dangerclosesec/crm/internal/model"
	"github.com/dangerclosesec/crm/internal/policy"
	"github.com/dangerclosesec/crm/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// TeamService resolves the manager hierarchy and owns the admin operations
// that change it.
type TeamService struct {
	users    repository.UserRepositoryIface
	teams    repository.TeamRepositoryIface
	auditLog audit.Logger
	logger   *slog.Logger
	validate *validator.Validate
}

func NewTeamService(
	users repository.UserRepositoryIface,
	teams repository.TeamRepositoryIface,
	auditLog audit.Logger,
	logger *slog.Logger,
) *TeamService {
	if auditLog == nil {
		auditLog = &audit.NoOpLogger{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TeamService{
		users:    users,
		teams:    teams,
		auditLog: auditLog,
		logger:   logger,
		validate: validator.New(),
	}
}

// TeamMemberIDs returns everyone who reports to managerID directly or
// through intermediate managers. The manager is not included and a manager
// without reports gets an empty slice. Reporting cycles terminate.
func (s *TeamService) TeamMemberIDs(ctx context.Context, managerID uuid.UUID) ([]uuid.UUID, error) {
	seen := map[uuid.UUID]struct{}{managerID: {}}
	members := []uuid.UUID{}

	frontier := []uuid.UUID{managerID}
	for len(frontier) > 0 {
		reports, err := s.users.FindReportIDs(ctx, frontier)
		if err != nil {
			return nil, fmt.Errorf("resolving team of %s: %w", managerID, err)
		}

		next := make([]uuid.UUID, 0, len(reports))
		for _, id := range reports {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			members = append(members, id)
			next = append(next, id)
		}
		frontier = next
	}

	return members, nil
}

// TeamMembers returns the users managed by managerID. Admins may look at any
// manager, managers only at themselves.
func (s *TeamService) TeamMembers(ctx context.Context, p policy.Principal, managerID uuid.UUID) ([]*model.User, error) {
	if !policy.CanViewTeam(p, managerID) {
		s.deny(ctx, p, model.ActionRead, managerID, "team view requires admin or the manager")
		return nil, domain.ErrPermissionDenied
	}

	ids, err := s.TeamMemberIDs(ctx, managerID)
	if err != nil {
		return nil, err
	}
	return s.users.FindByIDs(ctx, ids)
}

type CreateTeamInput struct {
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description" validate:"max=2000"`
}

func (s *TeamService) CreateTeam(ctx context.Context, p policy.Principal, input CreateTeamInput) (*model.Team, error) {
	if !policy.CanManageUsers(p) {
		s.deny(ctx, p, model.ActionAdminister, uuid.Nil, "create team")
		return nil, domain.ErrPermissionDenied
	}
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	team := &model.Team{Name: input.Name, Description: input.Description}
	if err := s.teams.Create(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

func (s *TeamService) ListTeams(ctx context.Context) ([]*model.Team, error) {
	return s.teams.FindAll(ctx)
}

// SetManager points userID at a new manager, or detaches it when managerID
// is nil. A change that would make userID its own indirect manager is
// refused with ErrManagerCycle.
func (s *TeamService) SetManager(ctx context.Context, p policy.Principal, userID uuid.UUID, managerID *uuid.UUID) (*model.User, error) {
	if !policy.CanManageUsers(p) {
		s.deny(ctx, p, model.ActionAdminister, userID, "set manager")
		return nil, domain.ErrPermissionDenied
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if managerID != nil {
		if err := s.checkManagerChain(ctx, userID, *managerID); err != nil {
			return nil, err
		}
	}

	user.ManagerID = managerID
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("updating manager: %w", err)
	}

	s.logger.InfoContext(ctx, "manager changed",
		"userID", userID,
		"managerID", managerID,
		"actorID", p.ID,
	)
	return user, nil
}

// checkManagerChain walks upward from managerID and fails if it reaches
// userID.
func (s *TeamService) checkManagerChain(ctx context.Context, userID, managerID uuid.UUID) error {
	visited := map[uuid.UUID]struct{}{}
	current := &managerID
	for current != nil {
		if *current == userID {
			return domain.ErrManagerCycle
		}
		if _, ok := visited[*current]; ok {
			// An existing cycle above us that does not involve userID.
			return nil
		}
		visited[*current] = struct{}{}

		manager, err := s.users.FindByID(ctx, *current)
		if err != nil {
			return err
		}
		current = manager.ManagerID
	}
	return nil
}

// SetTeam changes the reporting team of a user. Visibility does not depend
// on it.
func (s *TeamService) SetTeam(ctx context.Context, p policy.Principal, userID uuid.UUID, teamID *uuid.UUID) (*model.User, error) {
	if !policy.CanManageUsers(p) {
		s.deny(ctx, p, model.ActionAdminister, userID, "set team")
		return nil, domain.ErrPermissionDenied
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if teamID != nil {
		if _, err := s.teams.FindByID(ctx, *teamID); err != nil {
			return nil, err
		}
	}

	user.TeamID = teamID
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("updating team: %w", err)
	}
	return user, nil
}

// SetActive enables or disables login for a user. Users are never deleted.
func (s *TeamService) SetActive(ctx context.Context, p policy.Principal, userID uuid.UUID, active bool) (*model.User, error) {
	if !policy.CanManageUsers(p) {
		s.deny(ctx, p, model.ActionAdminister, userID, "set active")
		return nil, domain.ErrPermissionDenied
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.IsActive = active
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("updating active flag: %w", err)
	}
	return user, nil
}

func (s *TeamService) deny(ctx context.Context, p policy.Principal, action string, target uuid.UUID, reason string) {
	decision := audit.Decision{
		Action: action,
		Actor:  p,
		Reason: reason,
	}
	if target != uuid.Nil {
		decision.TargetID = target.String()
	}
	if err := s.auditLog.LogAccessDecision(ctx, decision); err != nil {
		s.logger.WarnContext(ctx, "failed to write access audit entry", "error", err, "action", action)
	}
}
