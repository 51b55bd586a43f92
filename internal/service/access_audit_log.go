package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dangerclosesec/crm/internal/audit"
	"github.com/dangerclosesec/crm/internal/model"
	"github.com/dangerclosesec/crm/internal/repository"
	"github.com/google/uuid"
)

// Ensure AccessAuditService implements the audit.Logger interface
var _ audit.Logger = (*AccessAuditService)(nil)

// AccessAuditService handles operations related to access audit logs
type AccessAuditService struct {
	repo repository.AccessAuditLogRepositoryIface
}

// NewAccessAuditService creates a new AccessAuditService
func NewAccessAuditService(repo repository.AccessAuditLogRepositoryIface) *AccessAuditService {
	return &AccessAuditService{
		repo: repo,
	}
}

// LogAccessDecision persists one decision with the request metadata found
// on ctx.
func (s *AccessAuditService) LogAccessDecision(ctx context.Context, d audit.Decision) error {
	allowed := d.Allowed
	meta := audit.RequestMetaFrom(ctx)

	log := &model.AccessAuditLog{
		Action:       d.Action,
		Allowed:      &allowed,
		ResourceKind: d.Kind,
		ResourceID:   d.ResourceID,
		ActorID:      d.Actor.ID.String(),
		ActorRole:    d.Actor.Role.String(),
		TargetID:     d.TargetID,
		Reason:       d.Reason,
		Context:      model.JSONMap(d.Context),
		RequestID:    meta.RequestID,
		ClientIP:     meta.ClientIP,
		UserAgent:    meta.UserAgent,
		Timestamp:    time.Now().UTC(),
	}

	return s.repo.Create(ctx, log)
}

// GetAuditLogs retrieves audit logs based on query parameters
func (s *AccessAuditService) GetAuditLogs(
	ctx context.Context,
	params repository.AuditQueryParams,
) ([]model.AccessAuditLog, int64, error) {
	return s.repo.Query(ctx, params)
}

// GetAuditLogByID retrieves an audit log by ID
func (s *AccessAuditService) GetAuditLogByID(
	ctx context.Context,
	id uuid.UUID,
) (*model.AccessAuditLog, error) {
	log, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get audit log by ID: %w", err)
	}

	return log, nil
}
