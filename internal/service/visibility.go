// internal/service/visibility.go
package service

import (
	"context"
	"fmt"

	"github.com/dangerclosesec/crm/internal/domain"
	"github.com/dangerclosesec/crm/internal/model"
	"github.com/dangerclosesec/crm/internal/policy"
	"github.com/dangerclosesec/crm/internal/repository"
	"github.com/google/uuid"
)

// TeamResolver returns the users a manager may see records of.
type TeamResolver interface {
	TeamMemberIDs(ctx context.Context, managerID uuid.UUID) ([]uuid.UUID, error)
}

// VisibilityService turns a principal into the scope of one resource kind.
// Nothing is cached; every call reflects current assignments.
type VisibilityService struct {
	team    TeamResolver
	sources []repository.ReferenceSourceIface
}

// NewVisibilityService takes the lead and opportunity stores as the
// reference sources for contacts and companies.
func NewVisibilityService(team TeamResolver, sources ...repository.ReferenceSourceIface) *VisibilityService {
	return &VisibilityService{team: team, sources: sources}
}

// referenceColumns maps the kinds whose visibility follows references to
// the column leads and opportunities point at them with.
var referenceColumns = map[model.ResourceKind]string{
	model.KindContact: "contact_id",
	model.KindCompany: "company_id",
}

// ScopeFor resolves the visibility scope of p over kind.
func (s *VisibilityService) ScopeFor(ctx context.Context, p policy.Principal, kind model.ResourceKind) (policy.Scope, error) {
	recordVisibility(kind, p.Role)

	if p.IsAdmin() {
		return policy.ScopeFor(p, nil), nil
	}

	var team []uuid.UUID
	if p.IsManager() {
		var err error
		if team, err = s.team.TeamMemberIDs(ctx, p.ID); err != nil {
			return policy.Scope{}, err
		}
	}
	scope := policy.ScopeFor(p, team)

	column, ok := referenceColumns[kind]
	if !ok {
		return scope, nil
	}

	// Leads and opportunities are owned through assigned_to, so the same
	// scope selects the ones visible to p.
	var refs []uuid.UUID
	for _, src := range s.sources {
		ids, err := src.ReferencedIDs(ctx, scope, column)
		if err != nil {
			return policy.Scope{}, fmt.Errorf("resolving %s references: %w", kind, err)
		}
		refs = append(refs, ids...)
	}
	return scope.WithReferences(refs), nil
}

// TeamScopeFor is the scope of the team view: records assigned to managerID
// or anyone under them, unassigned records excluded.
func (s *VisibilityService) TeamScopeFor(ctx context.Context, p policy.Principal, managerID uuid.UUID) (policy.Scope, error) {
	if !policy.CanViewTeam(p, managerID) {
		return policy.Scope{}, domain.ErrPermissionDenied
	}

	team, err := s.team.TeamMemberIDs(ctx, managerID)
	if err != nil {
		return policy.Scope{}, err
	}
	return policy.TeamScope(managerID, team), nil
}
