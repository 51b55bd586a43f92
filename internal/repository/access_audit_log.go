package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/dangerclosesec/crm/internal/domain"
	"github.com/dangerclosesec/crm/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AccessAuditLogRepositoryIface interface {
	Create(ctx context.Context, log *model.AccessAuditLog) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.AccessAuditLog, error)
	Query(ctx context.Context, params AuditQueryParams) ([]model.AccessAuditLog, int64, error)
}

// AccessAuditLogRepository handles database operations for access audit logs
type AccessAuditLogRepository struct {
	db *gorm.DB
}

// NewAccessAuditLogRepository creates a new AccessAuditLogRepository
func NewAccessAuditLogRepository(db *gorm.DB) *AccessAuditLogRepository {
	return &AccessAuditLogRepository{
		db: db,
	}
}

// Create inserts a new audit log entry
func (r *AccessAuditLogRepository) Create(ctx context.Context, log *model.AccessAuditLog) error {
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}

	if log.Timestamp.IsZero() {
		log.Timestamp = time.Now().UTC()
	}

	result := r.db.WithContext(ctx).Create(log)
	if result.Error != nil {
		return fmt.Errorf("failed to create access audit log: %w", result.Error)
	}

	return nil
}

// FindByID retrieves an audit log entry by its ID
func (r *AccessAuditLogRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.AccessAuditLog, error) {
	var log model.AccessAuditLog
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&log)
	if result.Error != nil {
		return nil, wrapNotFound(result.Error, domain.ErrNotFound, "find access audit log")
	}

	return &log, nil
}

// AuditQueryParams holds parameters for querying audit logs
type AuditQueryParams struct {
	Action       string
	ResourceKind string
	ResourceID   string
	ActorID      string
	Allowed      *bool
	StartTime    time.Time
	EndTime      time.Time
	Limit        int
	Offset       int
}

// Query retrieves audit logs based on the provided query parameters
func (r *AccessAuditLogRepository) Query(ctx context.Context, params AuditQueryParams) ([]model.AccessAuditLog, int64, error) {
	var logs []model.AccessAuditLog
	var count int64

	query := r.db.WithContext(ctx).Model(&model.AccessAuditLog{})

	// Apply filters
	if params.Action != "" {
		query = query.Where("action = ?", params.Action)
	}
	if params.ResourceKind != "" {
		query = query.Where("resource_kind = ?", params.ResourceKind)
	}
	if params.ResourceID != "" {
		query = query.Where("resource_id = ?", params.ResourceID)
	}
	if params.ActorID != "" {
		query = query.Where("actor_id = ?", params.ActorID)
	}
	if params.Allowed != nil {
		query = query.Where("allowed = ?", *params.Allowed)
	}
	if !params.StartTime.IsZero() {
		query = query.Where("timestamp >= ?", params.StartTime)
	}
	if !params.EndTime.IsZero() {
		query = query.Where("timestamp <= ?", params.EndTime)
	}

	// Get total count for pagination
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count access audit logs: %w", err)
	}

	// Apply pagination
	if params.Limit > 0 {
		query = query.Limit(params.Limit)
	} else {
		query = query.Limit(100) // Default limit
	}

	if params.Offset > 0 {
		query = query.Offset(params.Offset)
	}

	// Execute query with pagination and ordering
	result := query.Order("timestamp DESC").Find(&logs)
	if result.Error != nil {
		return nil, 0, fmt.Errorf("failed to query access audit logs: %w", result.Error)
	}

	return logs, count, nil
}
