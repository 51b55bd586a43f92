// internal/repository/team.go
package repository

import (
	"context"
	"fmt"

	"github.com/dangerclosesec/crm/internal/domain"
	"github.com/dangerclosesec/crm/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TeamRepositoryIface interface {
	Create(ctx context.Context, team *model.Team) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Team, error)
	FindAll(ctx context.Context) ([]*model.Team, error)
	FindTeamDrift(ctx context.Context, kind model.ResourceKind, after uuid.UUID, limit int) ([]TeamDrift, error)
	SetRecordTeam(ctx context.Context, kind model.ResourceKind, id uuid.UUID, teamID *uuid.UUID) error
}

type TeamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

// FindAll returns all teams
func (r *TeamRepository) FindAll(ctx context.Context) ([]*model.Team, error) {
	var teams []*model.Team
	result := r.db.WithContext(ctx).Order("name").Find(&teams)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find all teams: %w", result.Error)
	}
	return teams, nil
}

func (r *TeamRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Team, error) {
	var team model.Team
	result := r.db.WithContext(ctx).First(&team, "id = ?", id)
	if result.Error != nil {
		return nil, wrapNotFound(result.Error, domain.ErrTeamNotFound, "find team")
	}
	return &team, nil
}

func (r *TeamRepository) Create(ctx context.Context, team *model.Team) error {
	if err := r.db.WithContext(ctx).Create(team).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: team name already exists", domain.ErrInvalidInput)
		}
		return fmt.Errorf("failed to create team: %w", err)
	}
	return nil
}

// TeamDrift is an assigned record whose team_id no longer matches its
// assignee's team.
type TeamDrift struct {
	RecordID     uuid.UUID  `gorm:"column:record_id"`
	RecordTeamID *uuid.UUID `gorm:"column:record_team_id"`
	AssigneeID   uuid.UUID  `gorm:"column:assignee_id"`
	AssigneeTeam *uuid.UUID `gorm:"column:assignee_team_id"`
}

// driftTables are the tables carrying a reporting team_id next to assigned_to.
var driftTables = map[model.ResourceKind]string{
	model.KindLead:        "leads",
	model.KindOpportunity: "opportunities",
}

// FindTeamDrift returns up to limit drifted records of kind with id greater
// than after, ordered by id so callers can page with the last id seen.
func (r *TeamRepository) FindTeamDrift(ctx context.Context, kind model.ResourceKind, after uuid.UUID, limit int) ([]TeamDrift, error) {
	table, ok := driftTables[kind]
	if !ok {
		return nil, domain.ErrNotAssignable
	}

	var drift []TeamDrift
	result := r.db.WithContext(ctx).
		Table(table+" AS r").
		Select("r.id AS record_id, r.team_id AS record_team_id, u.id AS assignee_id, u.team_id AS assignee_team_id").
		Joins("JOIN users u ON u.id = r.assigned_to").
		Where("r.team_id IS DISTINCT FROM u.team_id").
		Where("r.id > ?", after).
		Order("r.id").
		Limit(limit).
		Scan(&drift)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find %s team drift: %w", kind, result.Error)
	}
	return drift, nil
}

// SetRecordTeam rewrites the reporting team of one record. assigned_to is
// never touched.
func (r *TeamRepository) SetRecordTeam(ctx context.Context, kind model.ResourceKind, id uuid.UUID, teamID *uuid.UUID) error {
	table, ok := driftTables[kind]
	if !ok {
		return domain.ErrNotAssignable
	}
	result := r.db.WithContext(ctx).Table(table).Where("id = ?", id).Update("team_id", teamID)
	if result.Error != nil {
		return fmt.Errorf("failed to update %s team: %w", kind, result.Error)
	}
	return nil
}
