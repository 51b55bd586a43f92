package service_test

import (
	"context"
	"testing"

	"github.com/dangerclosesec/crm/internal/audit"
	"github.com/dangerclosesec/crm/internal/mocks"
	"github.com/dangerclosesec/crm/internal/model"
	"github.com/dangerclosesec/crm/internal/policy"
	"github.com/dangerclosesec/crm/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestLogAccessDecisionStampsRequestMeta(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockAccessAuditLogRepositoryIface(ctrl)

	actor := policy.Principal{ID: uuid.New(), Role: policy.RoleSalesExecutive}
	leadID := uuid.New()

	var saved *model.AccessAuditLog
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, log *model.AccessAuditLog) error {
		saved = log
		return nil
	})

	ctx := audit.WithRequestMeta(context.Background(), audit.RequestMeta{
		RequestID: "req-1",
		ClientIP:  "10.0.0.1:5050",
		UserAgent: "curl/8",
	})

	svc := service.NewAccessAuditService(repo)
	err := svc.LogAccessDecision(ctx, audit.Decision{
		Action:     model.ActionAssign,
		Kind:       model.KindLead,
		ResourceID: leadID.String(),
		Actor:      actor,
		Reason:     "role cannot assign",
	})
	require.NoError(t, err)

	require.NotNil(t, saved)
	assert.Equal(t, "req-1", saved.RequestID)
	assert.Equal(t, "10.0.0.1:5050", saved.ClientIP)
	assert.Equal(t, "curl/8", saved.UserAgent)
	assert.Equal(t, actor.ID.String(), saved.ActorID)
	assert.Equal(t, "sales_executive", saved.ActorRole)
	assert.Equal(t, model.KindLead, saved.ResourceKind)
	require.NotNil(t, saved.Allowed)
	assert.False(t, *saved.Allowed)
	assert.False(t, saved.Timestamp.IsZero())
}

func TestLogAccessDecisionWithoutRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockAccessAuditLogRepositoryIface(ctrl)

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, log *model.AccessAuditLog) error {
		assert.Empty(t, log.RequestID)
		return nil
	})

	svc := service.NewAccessAuditService(repo)
	require.NoError(t, svc.LogAccessDecision(context.Background(), audit.Decision{Action: model.ActionAdminister}))
}
