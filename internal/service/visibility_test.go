package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dangerclosesec/crm/internal/domain"
	"github.com/dangerclosesec/crm/internal/mocks"
	"github.com/dangerclosesec/crm/internal/model"
	"github.com/dangerclosesec/crm/internal/policy"
	"github.com/dangerclosesec/crm/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// staticTeam resolves every manager to the same members.
type staticTeam struct {
	members []uuid.UUID
	err     error
	calls   int
}

func (s *staticTeam) TeamMemberIDs(_ context.Context, _ uuid.UUID) ([]uuid.UUID, error) {
	s.calls++
	return s.members, s.err
}

func TestScopeForAdminSkipsTeamResolution(t *testing.T) {
	team := &staticTeam{}
	svc := service.NewVisibilityService(team)

	scope, err := svc.ScopeFor(context.Background(), policy.Principal{ID: uuid.New(), Role: policy.RoleAdmin}, model.KindContact)
	require.NoError(t, err)
	assert.True(t, scope.All)
	assert.Zero(t, team.calls)
}

func TestScopeForExecutiveLeads(t *testing.T) {
	team := &staticTeam{}
	svc := service.NewVisibilityService(team)
	p := policy.Principal{ID: uuid.New(), Role: policy.RoleSalesExecutive}

	scope, err := svc.ScopeFor(context.Background(), p, model.KindLead)
	require.NoError(t, err)
	assert.Equal(t, policy.Scope{Owners: []uuid.UUID{p.ID}, Unowned: true}, scope)
	assert.Zero(t, team.calls)
}

func TestScopeForManagerIncludesTeam(t *testing.T) {
	rep1, rep2 := uuid.New(), uuid.New()
	team := &staticTeam{members: []uuid.UUID{rep1, rep2}}
	svc := service.NewVisibilityService(team)
	p := policy.Principal{ID: uuid.New(), Role: policy.RoleSalesManager}

	scope, err := svc.ScopeFor(context.Background(), p, model.KindOpportunity)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{p.ID, rep1, rep2}, scope.Owners)
	assert.True(t, scope.Unowned)
	assert.Equal(t, 1, team.calls)
}

func TestScopeForManagerTeamFailure(t *testing.T) {
	team := &staticTeam{err: errors.New("db down")}
	svc := service.NewVisibilityService(team)

	_, err := svc.ScopeFor(context.Background(), policy.Principal{ID: uuid.New(), Role: policy.RoleSalesManager}, model.KindLead)
	assert.Error(t, err)
}

func TestScopeForContactsFollowsReferences(t *testing.T) {
	ctrl := gomock.NewController(t)
	leads := mocks.NewMockReferenceSourceIface(ctrl)
	opps := mocks.NewMockReferenceSourceIface(ctrl)

	p := policy.Principal{ID: uuid.New(), Role: policy.RoleSalesExecutive}
	base := policy.Scope{Owners: []uuid.UUID{p.ID}, Unowned: true}
	viaLead, viaOpp := uuid.New(), uuid.New()

	leads.EXPECT().ReferencedIDs(gomock.Any(), base, "contact_id").Return([]uuid.UUID{viaLead}, nil)
	opps.EXPECT().ReferencedIDs(gomock.Any(), base, "contact_id").Return([]uuid.UUID{viaOpp}, nil)

	svc := service.NewVisibilityService(&staticTeam{}, leads, opps)
	scope, err := svc.ScopeFor(context.Background(), p, model.KindContact)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{viaLead, viaOpp}, scope.Referenced)
	assert.Equal(t, base.Owners, scope.Owners)
}

func TestScopeForCompaniesUsesCompanyColumn(t *testing.T) {
	ctrl := gomock.NewController(t)
	leads := mocks.NewMockReferenceSourceIface(ctrl)

	p := policy.Principal{ID: uuid.New(), Role: policy.RoleSalesExecutive}
	leads.EXPECT().ReferencedIDs(gomock.Any(), gomock.Any(), "company_id").Return(nil, nil)

	svc := service.NewVisibilityService(&staticTeam{}, leads)
	scope, err := svc.ScopeFor(context.Background(), p, model.KindCompany)
	require.NoError(t, err)
	assert.Empty(t, scope.Referenced)
}

func TestScopeForTasksIgnoresReferences(t *testing.T) {
	ctrl := gomock.NewController(t)
	leads := mocks.NewMockReferenceSourceIface(ctrl)

	svc := service.NewVisibilityService(&staticTeam{}, leads)
	_, err := svc.ScopeFor(context.Background(), policy.Principal{ID: uuid.New()}, model.KindTask)
	require.NoError(t, err)
}

func TestTeamScopeFor(t *testing.T) {
	rep := uuid.New()
	team := &staticTeam{members: []uuid.UUID{rep}}
	svc := service.NewVisibilityService(team)
	manager := policy.Principal{ID: uuid.New(), Role: policy.RoleSalesManager}

	scope, err := svc.TeamScopeFor(context.Background(), manager, manager.ID)
	require.NoError(t, err)
	assert.False(t, scope.Unowned)
	assert.Equal(t, []uuid.UUID{manager.ID, rep}, scope.Owners)

	_, err = svc.TeamScopeFor(context.Background(), manager, uuid.New())
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	exec := policy.Principal{ID: uuid.New(), Role: policy.RoleSalesExecutive}
	_, err = svc.TeamScopeFor(context.Background(), exec, exec.ID)
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
}
