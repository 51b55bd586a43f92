// internal/repository/record.go
package repository

import (
	"context"
	"fmt"

	"github.com/dangerclosesec/crm/internal/domain"
	"github.com/dangerclosesec/crm/internal/model"
	"github.com/dangerclosesec/crm/internal/policy"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecordRepositoryIface is the store contract shared by every ownable
// resource. Reads take the caller's visibility scope so invisible rows are
// never loaded.
type RecordRepositoryIface[T any, PT model.RecordPtr[T]] interface {
	List(ctx context.Context, scope policy.Scope, params ListParams) ([]PT, int64, error)
	FindByID(ctx context.Context, scope policy.Scope, id uuid.UUID) (PT, error)
	Create(ctx context.Context, rec PT) error
	Update(ctx context.Context, rec PT) error
	Delete(ctx context.Context, id uuid.UUID) error
	ReferencedIDs(ctx context.Context, scope policy.Scope, column string) ([]uuid.UUID, error)
}

// ReferenceSourceIface exposes the foreign keys of visible records so
// visibility can follow references onto contacts and companies.
type ReferenceSourceIface interface {
	ReferencedIDs(ctx context.Context, scope policy.Scope, column string) ([]uuid.UUID, error)
}

// Columns Update never writes. assigned_to only moves through the
// assignment store.
var pinnedColumns = []string{"id", "created_by", "created_at", "assigned_to"}

type RecordRepository[T any, PT model.RecordPtr[T]] struct {
	db *gorm.DB
}

func NewRecordRepository[T any, PT model.RecordPtr[T]](db *gorm.DB) *RecordRepository[T, PT] {
	return &RecordRepository[T, PT]{db: db}
}

func (r *RecordRepository[T, PT]) newRecord() PT {
	return PT(new(T))
}

func (r *RecordRepository[T, PT]) label() string {
	return r.newRecord().Kind().Label()
}

// List returns one page of visible records, newest first, and the total
// number of visible records matching the filters.
func (r *RecordRepository[T, PT]) List(ctx context.Context, scope policy.Scope, params ListParams) ([]PT, int64, error) {
	var (
		records []PT
		count   int64
	)

	sample := r.newRecord()
	query := ApplyScope(r.db.WithContext(ctx).Model(sample), scope, sample.OwnerColumn())
	for column, value := range params.Filters {
		query = query.Where(column+" = ?", value)
	}
	// Count and Find each get their own copy of the statement.
	query = query.Session(&gorm.Session{})

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count %s records: %w", sample.Kind(), err)
	}

	result := query.
		Order("created_at DESC").
		Offset(params.Offset).
		Limit(params.limit()).
		Find(&records)
	if result.Error != nil {
		return nil, 0, fmt.Errorf("failed to list %s records: %w", sample.Kind(), result.Error)
	}

	return records, count, nil
}

// FindByID loads one record inside the scope. A record outside the scope is
// reported exactly like a missing one.
func (r *RecordRepository[T, PT]) FindByID(ctx context.Context, scope policy.Scope, id uuid.UUID) (PT, error) {
	rec := r.newRecord()
	query := ApplyScope(r.db.WithContext(ctx), scope, rec.OwnerColumn())
	if err := query.First(rec, "id = ?", id).Error; err != nil {
		return nil, wrapNotFound(err, domain.ErrNotFound, "find "+r.label())
	}
	return rec, nil
}

func (r *RecordRepository[T, PT]) Create(ctx context.Context, rec PT) error {
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: duplicate %s", domain.ErrInvalidInput, r.label())
		}
		return fmt.Errorf("failed to create %s: %w", rec.Kind(), err)
	}
	return nil
}

// Update writes every column except the pinned ones.
func (r *RecordRepository[T, PT]) Update(ctx context.Context, rec PT) error {
	result := r.db.WithContext(ctx).
		Model(rec).
		Select("*").
		Omit(pinnedColumns...).
		Updates(rec)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return fmt.Errorf("%w: duplicate %s", domain.ErrInvalidInput, r.label())
		}
		return fmt.Errorf("failed to update %s: %w", rec.Kind(), result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *RecordRepository[T, PT]) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(r.newRecord(), "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete %s: %w", r.label(), result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ReferencedIDs returns the distinct non-null values of column over the
// records inside the scope. Used to propagate lead and opportunity
// visibility onto contacts and companies.
func (r *RecordRepository[T, PT]) ReferencedIDs(ctx context.Context, scope policy.Scope, column string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	sample := r.newRecord()
	result := ApplyScope(r.db.WithContext(ctx).Model(sample), scope, sample.OwnerColumn()).
		Where(column+" IS NOT NULL").
		Distinct().
		Pluck(column, &ids)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to collect %s references: %w", column, result.Error)
	}
	return ids, nil
}
