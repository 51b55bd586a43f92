// internal/service/record.go
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dangerclosesec/crm/internal/audit"
	"github.com/dangerclosesec/crm/internal/domain"
	"github.com/dangerclosesec/crm/internal/model"
	"github.com/dangerclosesec/crm/internal/policy"
	"github.com/dangerclosesec/crm/internal/repository"
	"github.com/google/uuid"
)

// ScopeResolver produces the visibility scope of a principal over a kind.
type ScopeResolver interface {
	ScopeFor(ctx context.Context, p policy.Principal, kind model.ResourceKind) (policy.Scope, error)
}

// Assigner moves an edited record to a new user. The field edit and the
// assignment commit together.
type Assigner interface {
	UpdateAndAssign(ctx context.Context, p policy.Principal, rec model.Assignable, input AssignInput) (model.Assignable, error)
}

// RecordService is the visibility-checked CRUD shared by every ownable
// resource. Records a principal may not see behave as if they did not exist.
type RecordService[T any, PT model.RecordPtr[T]] struct {
	repo     repository.RecordRepositoryIface[T, PT]
	users    repository.UserRepositoryIface
	scopes   ScopeResolver
	assigner Assigner
	auditLog audit.Logger
	logger   *slog.Logger
}

func NewRecordService[T any, PT model.RecordPtr[T]](
	repo repository.RecordRepositoryIface[T, PT],
	users repository.UserRepositoryIface,
	scopes ScopeResolver,
	assigner Assigner,
	auditLog audit.Logger,
	logger *slog.Logger,
) *RecordService[T, PT] {
	if auditLog == nil {
		auditLog = &audit.NoOpLogger{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RecordService[T, PT]{
		repo:     repo,
		users:    users,
		scopes:   scopes,
		assigner: assigner,
		auditLog: auditLog,
		logger:   logger,
	}
}

func (s *RecordService[T, PT]) kind() model.ResourceKind {
	return PT(new(T)).Kind()
}

// Kind reports the resource kind this service manages.
func (s *RecordService[T, PT]) Kind() model.ResourceKind {
	return s.kind()
}

// List returns one page of the records p may see and the total visible count.
func (s *RecordService[T, PT]) List(ctx context.Context, p policy.Principal, params repository.ListParams) ([]PT, int64, error) {
	scope, err := s.scopes.ScopeFor(ctx, p, s.kind())
	if err != nil {
		return nil, 0, err
	}
	return s.listScoped(ctx, scope, params)
}

// ListInScope lists records under a scope the caller already resolved, such
// as a team view.
func (s *RecordService[T, PT]) ListInScope(ctx context.Context, scope policy.Scope, params repository.ListParams) ([]PT, int64, error) {
	return s.listScoped(ctx, scope, params)
}

func (s *RecordService[T, PT]) listScoped(ctx context.Context, scope policy.Scope, params repository.ListParams) ([]PT, int64, error) {
	records, total, err := s.repo.List(ctx, scope, params)
	if err != nil {
		return nil, 0, err
	}

	visible := policy.FilterVisible(scope, records)
	if len(visible) != len(records) {
		s.logger.ErrorContext(ctx, "store returned records outside the visibility scope",
			"kind", s.kind(),
			"returned", len(records),
			"visible", len(visible),
		)
	}
	return visible, total, nil
}

// Get returns one visible record or domain.ErrNotFound.
func (s *RecordService[T, PT]) Get(ctx context.Context, p policy.Principal, id uuid.UUID) (PT, error) {
	scope, err := s.scopes.ScopeFor(ctx, p, s.kind())
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, scope, id)
}

// Create stores rec as a new record created by p. Any client supplied id,
// creator or timestamps are discarded.
func (s *RecordService[T, PT]) Create(ctx context.Context, p policy.Principal, rec PT) (PT, error) {
	*rec.Meta() = model.Base{CreatedBy: p.ID}

	if locked, ok := any(rec).(model.Lockable); ok && locked.Locked() {
		return nil, fmt.Errorf("%w: %s records of this type are system generated", domain.ErrInvalidInput, s.kind())
	}

	if a, ok := any(rec).(model.Assignable); ok {
		assignee := a.AssignedUser()
		if !policy.CanSetAssigneeOnCreate(p, assignee) {
			s.deny(ctx, p, model.ActionCreate, "", "only managers may assign on create")
			return nil, domain.ErrPermissionDenied
		}
		if assignee != nil {
			if _, err := s.users.FindByID(ctx, *assignee); err != nil {
				return nil, err
			}
		}
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Update merges a partial JSON document into a visible record. id,
// created_by and created_at never change. A new assigned_to goes through
// the assignment policy.
func (s *RecordService[T, PT]) Update(ctx context.Context, p policy.Principal, id uuid.UUID, patch []byte) (PT, error) {
	rec, err := s.Get(ctx, p, id)
	if err != nil {
		return nil, err
	}

	if locked, ok := any(rec).(model.Lockable); ok && locked.Locked() {
		return nil, domain.ErrImmutableRecord
	}

	pinned := *rec.Meta()
	var previous *uuid.UUID
	assignable, isAssignable := any(rec).(model.Assignable)
	if isAssignable {
		previous = cloneUUID(assignable.AssignedUser())
		// Decode into a private copy; the loaded pointer may be shared.
		assignable.SetAssignedUser(previous)
	}

	dec := json.NewDecoder(bytes.NewReader(patch))
	dec.DisallowUnknownFields()
	if err := dec.Decode(rec); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	meta := rec.Meta()
	meta.ID, meta.CreatedBy, meta.CreatedAt = pinned.ID, pinned.CreatedBy, pinned.CreatedAt

	if locked, ok := any(rec).(model.Lockable); ok && locked.Locked() {
		return nil, fmt.Errorf("%w: %s records of this type are system generated", domain.ErrInvalidInput, s.kind())
	}

	var target *uuid.UUID
	if isAssignable {
		next := assignable.AssignedUser()
		switch {
		case next == nil && previous != nil:
			return nil, fmt.Errorf("%w: assigned_to cannot be cleared", domain.ErrInvalidInput)
		case next != nil && (previous == nil || *next != *previous):
			if err := policy.AuthorizeAssignment(p); err != nil {
				s.deny(ctx, p, model.ActionUpdate, id.String(), "assigned_to changed by a non-assigning role")
				return nil, err
			}
			target = cloneUUID(next)
		}
		assignable.SetAssignedUser(previous)
	}

	if target == nil {
		if err := s.repo.Update(ctx, rec); err != nil {
			return nil, err
		}
		return rec, nil
	}

	// Nothing is written until the assignee is known to exist.
	if _, err := s.users.FindByID(ctx, *target); err != nil {
		return nil, err
	}

	assigned, err := s.assigner.UpdateAndAssign(ctx, p, assignable, AssignInput{AssigneeID: *target})
	if err != nil {
		return nil, err
	}
	out, ok := assigned.(PT)
	if !ok {
		return nil, fmt.Errorf("unexpected %T returned for %s assignment", assigned, s.kind())
	}
	return out, nil
}

// Delete removes a visible record. Admins and managers may delete anything
// they see, everyone else only what they created.
func (s *RecordService[T, PT]) Delete(ctx context.Context, p policy.Principal, id uuid.UUID) error {
	rec, err := s.Get(ctx, p, id)
	if err != nil {
		return err
	}

	if locked, ok := any(rec).(model.Lockable); ok && locked.Locked() {
		return domain.ErrImmutableRecord
	}

	if !policy.CanDelete(p, rec.Meta().CreatedBy) {
		s.deny(ctx, p, model.ActionDelete, id.String(), "only the creator or a manager may delete")
		return domain.ErrPermissionDenied
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("deleting %s: %w", s.kind(), err)
	}
	return nil
}

func (s *RecordService[T, PT]) deny(ctx context.Context, p policy.Principal, action, resourceID, reason string) {
	err := s.auditLog.LogAccessDecision(ctx, audit.Decision{
		Action:     action,
		Kind:       s.kind(),
		ResourceID: resourceID,
		Actor:      p,
		Reason:     reason,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "failed to write access audit entry", "error", err, "action", action)
	}
}

func cloneUUID(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
