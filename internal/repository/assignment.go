// internal/repository/assignment.go
package repository

import (
	"context"
	"fmt"

	"github.com/dangerclosesec/crm/internal/domain"
	"github.com/dangerclosesec/crm/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AssignmentStoreIface scopes every assignment to one database transaction
// so a record is never left assigned without its audit activity.
type AssignmentStoreIface interface {
	WithinTransaction(ctx context.Context, fn func(tx AssignmentTxIface) error) error
}

// AssignmentTxIface is the set of reads and writes one assignment performs.
type AssignmentTxIface interface {
	FindAssignable(ctx context.Context, kind model.ResourceKind, id uuid.UUID) (model.Assignable, error)
	FindUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	UpdateFields(ctx context.Context, rec model.Assignable) error
	SaveAssignment(ctx context.Context, rec model.Assignable) error
	AppendActivity(ctx context.Context, activity *model.Activity) error
}

type AssignmentStore struct {
	db *gorm.DB
}

func NewAssignmentStore(db *gorm.DB) *AssignmentStore {
	return &AssignmentStore{db: db}
}

// WithinTransaction runs fn in a transaction that commits when fn returns
// nil and rolls back on error or panic.
func (s *AssignmentStore) WithinTransaction(ctx context.Context, fn func(tx AssignmentTxIface) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&assignmentTx{tx: tx})
	})
}

type assignmentTx struct {
	tx *gorm.DB
}

// NewAssignable returns an empty model for an assignable kind.
func NewAssignable(kind model.ResourceKind) (model.Assignable, error) {
	switch kind {
	case model.KindLead:
		return &model.Lead{}, nil
	case model.KindOpportunity:
		return &model.Opportunity{}, nil
	default:
		return nil, domain.ErrNotAssignable
	}
}

func (t *assignmentTx) FindAssignable(ctx context.Context, kind model.ResourceKind, id uuid.UUID) (model.Assignable, error) {
	rec, err := NewAssignable(kind)
	if err != nil {
		return nil, err
	}
	if err := t.tx.WithContext(ctx).First(rec, "id = ?", id).Error; err != nil {
		return nil, wrapNotFound(err, domain.ErrNotFound, "find "+kind.Label())
	}
	return rec, nil
}

func (t *assignmentTx) FindUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := t.tx.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, wrapNotFound(err, domain.ErrUserNotFound, "find user")
	}
	return &user, nil
}

// UpdateFields writes every column of rec except the pinned ones, so the
// edit commits or rolls back with the assignment that follows it.
func (t *assignmentTx) UpdateFields(ctx context.Context, rec model.Assignable) error {
	result := t.tx.WithContext(ctx).
		Model(rec).
		Select("*").
		Omit(pinnedColumns...).
		Updates(rec)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return fmt.Errorf("%w: duplicate %s", domain.ErrInvalidInput, rec.Kind().Label())
		}
		return fmt.Errorf("failed to update %s: %w", rec.Kind(), result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SaveAssignment writes only the columns an assignment owns.
func (t *assignmentTx) SaveAssignment(ctx context.Context, rec model.Assignable) error {
	updates := map[string]any{"assigned_to": rec.AssignedUser()}
	if lead, ok := rec.(*model.Lead); ok {
		updates["status"] = lead.Status
	}

	result := t.tx.WithContext(ctx).Model(rec).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to save %s assignment: %w", rec.Kind(), result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (t *assignmentTx) AppendActivity(ctx context.Context, activity *model.Activity) error {
	if err := t.tx.WithContext(ctx).Create(activity).Error; err != nil {
		return fmt.Errorf("failed to append activity: %w", err)
	}
	return nil
}
