package service_test

import (
	"context"
	"testing"

	"github.com/dangerclosesec/crm/internal/audit"
	"github.com/dangerclosesec/crm/internal/config"
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

// runInTx makes the store mock hand every transaction to tx.
func runInTx(store *mocks.MockAssignmentStoreIface, tx *mocks.MockAssignmentTxIface) *gomock.Call {
	return store.EXPECT().
		WithinTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fn func(repository.AssignmentTxIface) error) error {
			return fn(tx)
		})
}

func newAssignmentService(store repository.AssignmentStoreIface, auditLog audit.Logger) *service.AssignmentService {
	cfg := &config.Config{}
	cfg.Assignment.BulkConcurrency = 2
	return service.NewAssignmentService(store, nil, auditLog, nil, cfg)
}

func TestAssignUnassignedLeadResetsStatus(t *testing.T) {
	ctrl := gomock.NewController(t)

	store := mocks.NewMockAssignmentStoreIface(ctrl)
	tx := mocks.NewMockAssignmentTxIface(ctrl)

	manager := policy.Principal{ID: uuid.New(), Role: policy.RoleSalesManager}
	rep := &model.User{ID: uuid.New(), FirstName: "Sam", LastName: "Rep"}
	lead := &model.Lead{Base: model.Base{ID: uuid.New()}, Status: model.LeadStatusContacted}

	var activity *model.Activity
	runInTx(store, tx)
	gomock.InOrder(
		tx.EXPECT().FindAssignable(gomock.Any(), model.KindLead, lead.ID).Return(lead, nil),
		tx.EXPECT().FindUser(gomock.Any(), rep.ID).Return(rep, nil),
		tx.EXPECT().SaveAssignment(gomock.Any(), lead).Return(nil),
		tx.EXPECT().AppendActivity(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, a *model.Activity) error {
				activity = a
				return nil
			}),
	)

	svc := newAssignmentService(store, nil)
	got, err := svc.Assign(context.Background(), manager, model.KindLead, lead.ID, service.AssignInput{
		AssigneeID: rep.ID,
		Notes:      "hot prospect",
	})
	require.NoError(t, err)

	assigned := got.(*model.Lead)
	require.NotNil(t, assigned.AssignedTo)
	assert.Equal(t, rep.ID, *assigned.AssignedTo)
	assert.Equal(t, model.LeadStatusNew, assigned.Status)

	require.NotNil(t, activity)
	assert.Equal(t, model.ActivityAssignment, activity.Type)
	assert.Equal(t, model.KindLead, activity.RelatedTo)
	require.NotNil(t, activity.RelatedID)
	assert.Equal(t, lead.ID, *activity.RelatedID)
	assert.Equal(t, manager.ID, activity.CreatedBy)
	assert.Contains(t, activity.Description, "hot prospect")
}

func TestReassignLeadKeepsStatus(t *testing.T) {
	ctrl := gomock.NewController(t)

	store := mocks.NewMockAssignmentStoreIface(ctrl)
	tx := mocks.NewMockAssignmentTxIface(ctrl)

	previous := uuid.New()
	rep := &model.User{ID: uuid.New(), FirstName: "Sam"}
	lead := &model.Lead{Base: model.Base{ID: uuid.New()}, Status: model.LeadStatusQualified, AssignedTo: &previous}

	runInTx(store, tx)
	tx.EXPECT().FindAssignable(gomock.Any(), model.KindLead, lead.ID).Return(lead, nil)
	tx.EXPECT().FindUser(gomock.Any(), rep.ID).Return(rep, nil)
	tx.EXPECT().SaveAssignment(gomock.Any(), lead).Return(nil)
	tx.EXPECT().AppendActivity(gomock.Any(), gomock.Any()).Return(nil)

	svc := newAssignmentService(store, nil)
	got, err := svc.Assign(context.Background(), policy.Principal{ID: uuid.New(), Role: policy.RoleAdmin},
		model.KindLead, lead.ID, service.AssignInput{AssigneeID: rep.ID})
	require.NoError(t, err)
	assert.Equal(t, model.LeadStatusQualified, got.(*model.Lead).Status)
}

func TestReassignToSameUserStillRecordsActivity(t *testing.T) {
	ctrl := gomock.NewController(t)

	store := mocks.NewMockAssignmentStoreIface(ctrl)
	tx := mocks.NewMockAssignmentTxIface(ctrl)

	rep := &model.User{ID: uuid.New(), FirstName: "Sam"}
	owner := rep.ID
	opp := &model.Opportunity{Base: model.Base{ID: uuid.New()}, Stage: model.StageProposal, AssignedTo: &owner}

	runInTx(store, tx)
	tx.EXPECT().FindAssignable(gomock.Any(), model.KindOpportunity, opp.ID).Return(opp, nil)
	tx.EXPECT().FindUser(gomock.Any(), rep.ID).Return(rep, nil)
	tx.EXPECT().SaveAssignment(gomock.Any(), opp).Return(nil)
	tx.EXPECT().AppendActivity(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	svc := newAssignmentService(store, nil)
	_, err := svc.Assign(context.Background(), policy.Principal{ID: uuid.New(), Role: policy.RoleSalesManager},
		model.KindOpportunity, opp.ID, service.AssignInput{AssigneeID: rep.ID})
	require.NoError(t, err)
	assert.Equal(t, model.StageProposal, opp.Stage)
}

func TestExecutiveCannotAssign(t *testing.T) {
	ctrl := gomock.NewController(t)

	// No store expectations: any transaction fails the test.
	store := mocks.NewMockAssignmentStoreIface(ctrl)
	auditLog := mocks.NewMockLogger(ctrl)

	exec := policy.Principal{ID: uuid.New()}
	leadID := uuid.New()

	auditLog.EXPECT().
		LogAccessDecision(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, d audit.Decision) error {
			assert.Equal(t, model.ActionAssign, d.Action)
			assert.False(t, d.Allowed)
			assert.Equal(t, leadID.String(), d.ResourceID)
			assert.Equal(t, exec.ID, d.Actor.ID)
			return nil
		})

	svc := newAssignmentService(store, auditLog)
	_, err := svc.Assign(context.Background(), exec, model.KindLead, leadID, service.AssignInput{AssigneeID: exec.ID})
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
}

func TestUnknownRoleCannotBulkAssign(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockAssignmentStoreIface(ctrl)

	p := policy.Principal{ID: uuid.New(), Role: policy.ParseRole("intern")}
	svc := newAssignmentService(store, nil)

	_, err := svc.BulkAssign(context.Background(), p, model.KindLead, service.BulkAssignInput{
		IDs:        []uuid.UUID{uuid.New()},
		AssigneeID: uuid.New(),
	})
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
}

func TestAssignMissingAssignee(t *testing.T) {
	ctrl := gomock.NewController(t)

	store := mocks.NewMockAssignmentStoreIface(ctrl)
	tx := mocks.NewMockAssignmentTxIface(ctrl)
	lead := &model.Lead{Base: model.Base{ID: uuid.New()}}
	missing := uuid.New()

	runInTx(store, tx)
	tx.EXPECT().FindAssignable(gomock.Any(), model.KindLead, lead.ID).Return(lead, nil)
	tx.EXPECT().FindUser(gomock.Any(), missing).Return(nil, domain.ErrUserNotFound)

	svc := newAssignmentService(store, nil)
	_, err := svc.Assign(context.Background(), policy.Principal{ID: uuid.New(), Role: policy.RoleAdmin},
		model.KindLead, lead.ID, service.AssignInput{AssigneeID: missing})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.Nil(t, lead.AssignedTo)
}

func TestAssignRequiresAssignee(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockAssignmentStoreIface(ctrl)

	svc := newAssignmentService(store, nil)
	_, err := svc.Assign(context.Background(), policy.Principal{ID: uuid.New(), Role: policy.RoleAdmin},
		model.KindLead, uuid.New(), service.AssignInput{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBulkAssignPartialFailure(t *testing.T) {
	ctrl := gomock.NewController(t)

	store := mocks.NewMockAssignmentStoreIface(ctrl)
	tx := mocks.NewMockAssignmentTxIface(ctrl)

	rep := &model.User{ID: uuid.New(), FirstName: "Sam"}
	a := &model.Lead{Base: model.Base{ID: uuid.New()}, Status: model.LeadStatusContacted}
	b := uuid.New()
	c := &model.Lead{Base: model.Base{ID: uuid.New()}, Status: model.LeadStatusContacted}

	runInTx(store, tx).Times(3)
	tx.EXPECT().FindAssignable(gomock.Any(), model.KindLead, a.ID).Return(a, nil)
	tx.EXPECT().FindAssignable(gomock.Any(), model.KindLead, b).Return(nil, domain.ErrNotFound)
	tx.EXPECT().FindAssignable(gomock.Any(), model.KindLead, c.ID).Return(c, nil)
	tx.EXPECT().FindUser(gomock.Any(), rep.ID).Return(rep, nil).Times(2)
	tx.EXPECT().SaveAssignment(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	tx.EXPECT().AppendActivity(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	svc := newAssignmentService(store, nil)
	res, err := svc.BulkAssign(context.Background(), policy.Principal{ID: uuid.New(), Role: policy.RoleAdmin},
		model.KindLead, service.BulkAssignInput{IDs: []uuid.UUID{a.ID, b, c.ID}, AssigneeID: rep.ID})
	require.NoError(t, err)

	assert.False(t, res.Success)
	require.Len(t, res.Results, 3)
	assert.Equal(t, service.BulkItemResult{ID: a.ID, Success: true}, res.Results[0])
	assert.Equal(t, service.BulkItemResult{ID: b, Success: false, Error: "Lead not found"}, res.Results[1])
	assert.Equal(t, service.BulkItemResult{ID: c.ID, Success: true}, res.Results[2])

	assert.Equal(t, rep.ID, *a.AssignedTo)
	assert.Equal(t, rep.ID, *c.AssignedTo)
}

func TestBulkAssignReportsMissingUserPerRecord(t *testing.T) {
	ctrl := gomock.NewController(t)

	store := mocks.NewMockAssignmentStoreIface(ctrl)
	tx := mocks.NewMockAssignmentTxIface(ctrl)

	missing := uuid.New()
	lead := &model.Lead{Base: model.Base{ID: uuid.New()}}

	runInTx(store, tx)
	tx.EXPECT().FindAssignable(gomock.Any(), model.KindLead, lead.ID).Return(lead, nil)
	tx.EXPECT().FindUser(gomock.Any(), missing).Return(nil, domain.ErrUserNotFound)

	svc := newAssignmentService(store, nil)
	res, err := svc.BulkAssign(context.Background(), policy.Principal{ID: uuid.New(), Role: policy.RoleSalesManager},
		model.KindLead, service.BulkAssignInput{IDs: []uuid.UUID{lead.ID}, AssigneeID: missing})
	require.NoError(t, err)

	assert.False(t, res.Success)
	assert.Equal(t, "User not found", res.Results[0].Error)
}

func TestBulkAssignAllSucceed(t *testing.T) {
	ctrl := gomock.NewController(t)

	store := mocks.NewMockAssignmentStoreIface(ctrl)
	tx := mocks.NewMockAssignmentTxIface(ctrl)

	rep := &model.User{ID: uuid.New(), FirstName: "Sam"}
	ids := make([]uuid.UUID, 5)
	for i := range ids {
		lead := &model.Lead{Base: model.Base{ID: uuid.New()}}
		ids[i] = lead.ID
		tx.EXPECT().FindAssignable(gomock.Any(), model.KindLead, lead.ID).Return(lead, nil)
	}

	runInTx(store, tx).Times(len(ids))
	tx.EXPECT().FindUser(gomock.Any(), rep.ID).Return(rep, nil).Times(len(ids))
	tx.EXPECT().SaveAssignment(gomock.Any(), gomock.Any()).Return(nil).Times(len(ids))
	tx.EXPECT().AppendActivity(gomock.Any(), gomock.Any()).Return(nil).Times(len(ids))

	svc := newAssignmentService(store, nil)
	res, err := svc.BulkAssign(context.Background(), policy.Principal{ID: uuid.New(), Role: policy.RoleAdmin},
		model.KindLead, service.BulkAssignInput{IDs: ids, AssigneeID: rep.ID})
	require.NoError(t, err)

	assert.True(t, res.Success)
	for i, r := range res.Results {
		assert.Equal(t, ids[i], r.ID)
		assert.True(t, r.Success)
	}
}

func TestUpdateAndAssignWritesFieldsInsideTheAssignment(t *testing.T) {
	ctrl := gomock.NewController(t)

	store := mocks.NewMockAssignmentStoreIface(ctrl)
	tx := mocks.NewMockAssignmentTxIface(ctrl)

	previous := uuid.New()
	rep := &model.User{ID: uuid.New(), FirstName: "Sam"}
	edited := &model.Lead{Base: model.Base{ID: uuid.New()}, Notes: "call back", Status: model.LeadStatusQualified, AssignedTo: &previous}
	stored := *edited

	store.EXPECT().WithinTransaction(gomock.Any(), gomock.Any()).Times(1).
		DoAndReturn(func(_ context.Context, fn func(repository.AssignmentTxIface) error) error {
			return fn(tx)
		})
	gomock.InOrder(
		tx.EXPECT().UpdateFields(gomock.Any(), edited).Return(nil),
		tx.EXPECT().FindAssignable(gomock.Any(), model.KindLead, edited.ID).Return(&stored, nil),
		tx.EXPECT().FindUser(gomock.Any(), rep.ID).Return(rep, nil),
		tx.EXPECT().SaveAssignment(gomock.Any(), &stored).Return(nil),
		tx.EXPECT().AppendActivity(gomock.Any(), gomock.Any()).Return(nil),
	)

	svc := newAssignmentService(store, nil)
	got, err := svc.UpdateAndAssign(context.Background(), policy.Principal{ID: uuid.New(), Role: policy.RoleSalesManager},
		edited, service.AssignInput{AssigneeID: rep.ID})
	require.NoError(t, err)

	lead := got.(*model.Lead)
	assert.Equal(t, rep.ID, *lead.AssignedTo)
	assert.Equal(t, "call back", lead.Notes)
	assert.Equal(t, model.LeadStatusQualified, lead.Status)
}

func TestUpdateAndAssignFailureReturnsTransactionError(t *testing.T) {
	ctrl := gomock.NewController(t)

	store := mocks.NewMockAssignmentStoreIface(ctrl)
	tx := mocks.NewMockAssignmentTxIface(ctrl)

	edited := &model.Lead{Base: model.Base{ID: uuid.New()}, Status: model.LeadStatusLost}
	ghost := uuid.New()

	runInTx(store, tx)
	tx.EXPECT().UpdateFields(gomock.Any(), edited).Return(nil)
	tx.EXPECT().FindAssignable(gomock.Any(), model.KindLead, edited.ID).Return(edited, nil)
	tx.EXPECT().FindUser(gomock.Any(), ghost).Return(nil, domain.ErrUserNotFound)

	svc := newAssignmentService(store, nil)
	_, err := svc.UpdateAndAssign(context.Background(), policy.Principal{ID: uuid.New(), Role: policy.RoleAdmin},
		edited, service.AssignInput{AssigneeID: ghost})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUpdateAndAssignByExecutiveIsDeniedBeforeAnyWrite(t *testing.T) {
	ctrl := gomock.NewController(t)

	store := mocks.NewMockAssignmentStoreIface(ctrl)
	auditLog := mocks.NewMockLogger(ctrl)
	auditLog.EXPECT().LogAccessDecision(gomock.Any(), gomock.Any()).Return(nil)

	svc := newAssignmentService(store, auditLog)
	_, err := svc.UpdateAndAssign(context.Background(), policy.Principal{ID: uuid.New(), Role: policy.RoleSalesExecutive},
		&model.Lead{Base: model.Base{ID: uuid.New()}}, service.AssignInput{AssigneeID: uuid.New()})
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
}
