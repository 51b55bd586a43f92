package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/dangerclosesec/crm/internal/domain"
	"github.com/dangerclosesec/crm/internal/mocks"
	"github.com/dangerclosesec/crm/internal/model"
	"github.com/dangerclosesec/crm/internal/policy"
	"github.com/dangerclosesec/crm/internal/repository"
	"github.com/dangerclosesec/crm/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// fixedScopes resolves every principal to the role table without a team.
type fixedScopes struct{}

func (fixedScopes) ScopeFor(_ context.Context, p policy.Principal, _ model.ResourceKind) (policy.Scope, error) {
	return policy.ScopeFor(p, nil), nil
}

// recordingAssigner captures assignments routed out of Update along with
// the record as it stood when handed over.
type recordingAssigner struct {
	calls   []service.AssignInput
	records []model.Lead
}

func (a *recordingAssigner) UpdateAndAssign(_ context.Context, _ policy.Principal, rec model.Assignable, input service.AssignInput) (model.Assignable, error) {
	a.calls = append(a.calls, input)
	lead := *rec.(*model.Lead)
	a.records = append(a.records, lead)

	target := input.AssigneeID
	lead.AssignedTo = &target
	return &lead, nil
}

type leadFixture struct {
	repo     *mocks.MockRecordRepositoryIface[model.Lead, *model.Lead]
	users    *mocks.MockUserRepositoryIface
	auditLog *mocks.MockLogger
	assigner *recordingAssigner
	svc      *service.RecordService[model.Lead, *model.Lead]
}

func newLeadFixture(t *testing.T) *leadFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &leadFixture{
		repo:     mocks.NewMockRecordRepositoryIface[model.Lead, *model.Lead](ctrl),
		users:    mocks.NewMockUserRepositoryIface(ctrl),
		auditLog: mocks.NewMockLogger(ctrl),
		assigner: &recordingAssigner{},
	}
	f.svc = service.NewRecordService[model.Lead, *model.Lead](f.repo, f.users, fixedScopes{}, f.assigner, f.auditLog, nil)
	return f
}

func TestRecordServiceKind(t *testing.T) {
	f := newLeadFixture(t)
	assert.Equal(t, model.KindLead, f.svc.Kind())
}

func TestGetInvisibleLeadIsNotFound(t *testing.T) {
	f := newLeadFixture(t)
	p := policy.Principal{ID: uuid.New(), Role: policy.RoleSalesExecutive}
	id := uuid.New()

	f.repo.EXPECT().FindByID(gomock.Any(), policy.ScopeFor(p, nil), id).Return(nil, domain.ErrNotFound)

	_, err := f.svc.Get(context.Background(), p, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListDropsRowsOutsideScope(t *testing.T) {
	f := newLeadFixture(t)
	p := policy.Principal{ID: uuid.New(), Role: policy.RoleSalesExecutive}
	other := uuid.New()

	mine := &model.Lead{Base: model.Base{ID: uuid.New()}, AssignedTo: &p.ID}
	open := &model.Lead{Base: model.Base{ID: uuid.New()}}
	leaked := &model.Lead{Base: model.Base{ID: uuid.New()}, AssignedTo: &other}

	f.repo.EXPECT().List(gomock.Any(), gomock.Any(), repository.ListParams{}).
		Return([]*model.Lead{mine, open, leaked}, int64(3), nil)

	got, _, err := f.svc.List(context.Background(), p, repository.ListParams{})
	require.NoError(t, err)
	assert.Equal(t, []*model.Lead{mine, open}, got)
}

func TestCreateStampsCreator(t *testing.T) {
	f := newLeadFixture(t)
	p := policy.Principal{ID: uuid.New(), Role: policy.RoleSalesExecutive}
	forged := uuid.New()

	lead := &model.Lead{
		Base:       model.Base{ID: uuid.New(), CreatedBy: forged, CreatedAt: time.Unix(0, 0)},
		FirstName:  "Ada",
		AssignedTo: &p.ID,
	}

	f.users.EXPECT().FindByID(gomock.Any(), p.ID).Return(&model.User{ID: p.ID}, nil)
	f.repo.EXPECT().Create(gomock.Any(), lead).Return(nil)

	got, err := f.svc.Create(context.Background(), p, lead)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.CreatedBy)
	assert.Equal(t, uuid.Nil, got.ID)
	assert.True(t, got.CreatedAt.IsZero())
}

func TestCreateAssignedToOtherNeedsAssigner(t *testing.T) {
	f := newLeadFixture(t)
	p := policy.Principal{ID: uuid.New(), Role: policy.RoleSalesExecutive}
	other := uuid.New()

	f.auditLog.EXPECT().LogAccessDecision(gomock.Any(), gomock.Any()).Return(nil)

	_, err := f.svc.Create(context.Background(), p, &model.Lead{FirstName: "Ada", AssignedTo: &other})
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
}

func TestCreateWithUnknownAssignee(t *testing.T) {
	f := newLeadFixture(t)
	p := policy.Principal{ID: uuid.New(), Role: policy.RoleSalesManager}
	ghost := uuid.New()

	f.users.EXPECT().FindByID(gomock.Any(), ghost).Return(nil, domain.ErrUserNotFound)

	_, err := f.svc.Create(context.Background(), p, &model.Lead{FirstName: "Ada", AssignedTo: &ghost})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUpdatePinsMetadata(t *testing.T) {
	f := newLeadFixture(t)
	p := policy.Principal{ID: uuid.New(), Role: policy.RoleSalesExecutive}
	creator := uuid.New()
	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	lead := &model.Lead{
		Base:       model.Base{ID: uuid.New(), CreatedBy: creator, CreatedAt: created},
		Status:     model.LeadStatusNew,
		AssignedTo: &p.ID,
	}

	f.repo.EXPECT().FindByID(gomock.Any(), gomock.Any(), lead.ID).Return(lead, nil)
	f.repo.EXPECT().Update(gomock.Any(), lead).Return(nil)

	patch := []byte(`{"status":"contacted","created_by":"` + uuid.NewString() + `","created_at":"2030-01-01T00:00:00Z"}`)
	got, err := f.svc.Update(context.Background(), p, lead.ID, patch)
	require.NoError(t, err)
	assert.Equal(t, model.LeadStatusContacted, got.Status)
	assert.Equal(t, creator, got.CreatedBy)
	assert.Equal(t, created, got.CreatedAt)
	assert.Empty(t, f.assigner.calls)
}

func TestUpdateRejectsUnknownFields(t *testing.T) {
	f := newLeadFixture(t)
	p := policy.Principal{ID: uuid.New(), Role: policy.RoleAdmin}
	lead := &model.Lead{Base: model.Base{ID: uuid.New()}}

	f.repo.EXPECT().FindByID(gomock.Any(), gomock.Any(), lead.ID).Return(lead, nil)

	_, err := f.svc.Update(context.Background(), p, lead.ID, []byte(`{"owner":"me"}`))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateRoutesAssigneeChange(t *testing.T) {
	f := newLeadFixture(t)
	p := policy.Principal{ID: uuid.New(), Role: policy.RoleSalesManager}
	target := uuid.New()
	owner := p.ID
	lead := &model.Lead{Base: model.Base{ID: uuid.New()}, Status: model.LeadStatusContacted, AssignedTo: &owner}

	f.repo.EXPECT().FindByID(gomock.Any(), gomock.Any(), lead.ID).Return(lead, nil)
	f.users.EXPECT().FindByID(gomock.Any(), target).Return(&model.User{ID: target}, nil)

	patch := []byte(`{"notes":"call back","assigned_to":"` + target.String() + `"}`)
	got, err := f.svc.Update(context.Background(), p, lead.ID, patch)
	require.NoError(t, err)
	assert.Equal(t, target, *got.AssignedTo)
	assert.Equal(t, p.ID, owner, "decoding must not write through the loaded pointer")

	require.Len(t, f.assigner.calls, 1)
	assert.Equal(t, target, f.assigner.calls[0].AssigneeID)

	// The field edit travels with the assignment; assigned_to still holds
	// the previous owner until the assignment applies.
	handed := f.assigner.records[0]
	assert.Equal(t, "call back", handed.Notes)
	require.NotNil(t, handed.AssignedTo)
	assert.Equal(t, p.ID, *handed.AssignedTo)
}

func TestUpdateWithUnknownAssigneeWritesNothing(t *testing.T) {
	f := newLeadFixture(t)
	p := policy.Principal{ID: uuid.New(), Role: policy.RoleAdmin}
	owner, ghost := uuid.New(), uuid.New()
	lead := &model.Lead{Base: model.Base{ID: uuid.New()}, Status: model.LeadStatusContacted, AssignedTo: &owner}

	// No repo.Update expectation: any write fails the test.
	f.repo.EXPECT().FindByID(gomock.Any(), gomock.Any(), lead.ID).Return(lead, nil)
	f.users.EXPECT().FindByID(gomock.Any(), ghost).Return(nil, domain.ErrUserNotFound)

	patch := []byte(`{"notes":"new","status":"lost","assigned_to":"` + ghost.String() + `"}`)
	_, err := f.svc.Update(context.Background(), p, lead.ID, patch)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.Empty(t, f.assigner.calls)
}

func TestUpdateAssigneeChangeByExecutiveDenied(t *testing.T) {
	f := newLeadFixture(t)
	p := policy.Principal{ID: uuid.New(), Role: policy.RoleSalesExecutive}
	lead := &model.Lead{Base: model.Base{ID: uuid.New()}, AssignedTo: &p.ID}

	f.repo.EXPECT().FindByID(gomock.Any(), gomock.Any(), lead.ID).Return(lead, nil)
	f.auditLog.EXPECT().LogAccessDecision(gomock.Any(), gomock.Any()).Return(nil)

	_, err := f.svc.Update(context.Background(), p, lead.ID, []byte(`{"assigned_to":"`+uuid.NewString()+`"}`))
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	assert.Empty(t, f.assigner.calls)
}

func TestUpdateCannotClearAssignee(t *testing.T) {
	f := newLeadFixture(t)
	p := policy.Principal{ID: uuid.New(), Role: policy.RoleAdmin}
	owner := uuid.New()
	lead := &model.Lead{Base: model.Base{ID: uuid.New()}, AssignedTo: &owner}

	f.repo.EXPECT().FindByID(gomock.Any(), gomock.Any(), lead.ID).Return(lead, nil)

	_, err := f.svc.Update(context.Background(), p, lead.ID, []byte(`{"assigned_to":null}`))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDeleteGates(t *testing.T) {
	exec := policy.Principal{ID: uuid.New(), Role: policy.RoleSalesExecutive}

	t.Run("creator may delete", func(t *testing.T) {
		f := newLeadFixture(t)
		lead := &model.Lead{Base: model.Base{ID: uuid.New(), CreatedBy: exec.ID}}
		f.repo.EXPECT().FindByID(gomock.Any(), gomock.Any(), lead.ID).Return(lead, nil)
		f.repo.EXPECT().Delete(gomock.Any(), lead.ID).Return(nil)

		assert.NoError(t, f.svc.Delete(context.Background(), exec, lead.ID))
	})

	t.Run("executive cannot delete what others created", func(t *testing.T) {
		f := newLeadFixture(t)
		lead := &model.Lead{Base: model.Base{ID: uuid.New(), CreatedBy: uuid.New()}, AssignedTo: &exec.ID}
		f.repo.EXPECT().FindByID(gomock.Any(), gomock.Any(), lead.ID).Return(lead, nil)
		f.auditLog.EXPECT().LogAccessDecision(gomock.Any(), gomock.Any()).Return(nil)

		assert.ErrorIs(t, f.svc.Delete(context.Background(), exec, lead.ID), domain.ErrPermissionDenied)
	})

	t.Run("invisible lead is not found", func(t *testing.T) {
		f := newLeadFixture(t)
		id := uuid.New()
		f.repo.EXPECT().FindByID(gomock.Any(), gomock.Any(), id).Return(nil, domain.ErrNotFound)

		assert.ErrorIs(t, f.svc.Delete(context.Background(), exec, id), domain.ErrNotFound)
	})
}

func TestAssignmentActivitiesAreImmutable(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRecordRepositoryIface[model.Activity, *model.Activity](ctrl)
	svc := service.NewRecordService[model.Activity, *model.Activity](repo, nil, fixedScopes{}, nil, nil, nil)

	admin := policy.Principal{ID: uuid.New(), Role: policy.RoleAdmin}
	activity := &model.Activity{Base: model.Base{ID: uuid.New()}, Type: model.ActivityAssignment}

	repo.EXPECT().FindByID(gomock.Any(), gomock.Any(), activity.ID).Return(activity, nil).Times(2)

	_, err := svc.Update(context.Background(), admin, activity.ID, []byte(`{"title":"edited"}`))
	assert.ErrorIs(t, err, domain.ErrImmutableRecord)
	assert.ErrorIs(t, svc.Delete(context.Background(), admin, activity.ID), domain.ErrImmutableRecord)

	_, err = svc.Create(context.Background(), admin, &model.Activity{Type: model.ActivityAssignment, Title: "forged"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNoteCannotBecomeAssignmentActivity(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRecordRepositoryIface[model.Activity, *model.Activity](ctrl)
	svc := service.NewRecordService[model.Activity, *model.Activity](repo, nil, fixedScopes{}, nil, nil, nil)

	p := policy.Principal{ID: uuid.New(), Role: policy.RoleSalesExecutive}
	note := &model.Activity{Base: model.Base{ID: uuid.New(), CreatedBy: p.ID}, Type: model.ActivityNote}

	repo.EXPECT().FindByID(gomock.Any(), gomock.Any(), note.ID).Return(note, nil)

	_, err := svc.Update(context.Background(), p, note.ID, []byte(`{"type":"assignment"}`))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
