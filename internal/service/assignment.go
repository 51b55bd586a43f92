// internal/service/assignment.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dangerclosesec/crm/internal/audit"
	"github.com/dangerclosesec/crm/internal/config"
	"github.com/dangerclosesec/crm/internal/domain"
	"github.com/dangerclosesec/crm/internal/email"
	"github.com/dangerclosesec/crm/internal/email/mailer"
	"github.com/dangerclosesec/crm/internal/model"
	"github.com/dangerclosesec/crm/internal/policy"
	"github.com/dangerclosesec/crm/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const defaultBulkConcurrency = 8

// AssignmentService applies the assignment policy to leads and
// opportunities, one record or many at a time.
type AssignmentService struct {
	store        repository.AssignmentStoreIface
	emailService *email.Service
	auditLog     audit.Logger
	logger       *slog.Logger
	config       *config.Config
	concurrency  int
	validate     *validator.Validate
}

// NewAssignmentService wires the service. emailService may be nil, in which
// case no notifications are sent.
func NewAssignmentService(
	store repository.AssignmentStoreIface,
	emailService *email.Service,
	auditLog audit.Logger,
	logger *slog.Logger,
	cfg *config.Config,
) *AssignmentService {
	if auditLog == nil {
		auditLog = &audit.NoOpLogger{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		cfg = &config.Config{}
	}

	concurrency := cfg.Assignment.BulkConcurrency
	if concurrency <= 0 {
		concurrency = defaultBulkConcurrency
	}

	return &AssignmentService{
		store:        store,
		emailService: emailService,
		auditLog:     auditLog,
		logger:       logger,
		config:       cfg,
		concurrency:  concurrency,
		validate:     validator.New(),
	}
}

// AssignInput names the new assignee of one record. Notes end up on the
// assignment activity and in the notification.
type AssignInput struct {
	AssigneeID uuid.UUID `json:"assigned_to" validate:"required"`
	Notes      string    `json:"notes" validate:"max=2000"`
}

// BulkAssignInput assigns up to 500 records of one kind to the same user.
type BulkAssignInput struct {
	IDs        []uuid.UUID `json:"ids" validate:"required,min=1,max=500"`
	AssigneeID uuid.UUID   `json:"assigned_to" validate:"required"`
	Notes      string      `json:"notes" validate:"max=2000"`
}

// BulkItemResult is the outcome for one id of a bulk request.
type BulkItemResult struct {
	ID      uuid.UUID `json:"id"`
	Success bool      `json:"success"`
	Error   string    `json:"error,omitempty"`
}

// BulkResult reports every id in request order. Success is true only when
// every item succeeded.
type BulkResult struct {
	Success bool             `json:"success"`
	Results []BulkItemResult `json:"results"`
}

// Assign moves one record to input.AssigneeID. The record update, the
// optional status reset and the assignment activity commit together.
func (s *AssignmentService) Assign(ctx context.Context, p policy.Principal, kind model.ResourceKind, id uuid.UUID, input AssignInput) (model.Assignable, error) {
	if err := policy.AuthorizeAssignment(p); err != nil {
		s.deny(ctx, p, model.ActionAssign, kind, id.String(), input.AssigneeID)
		recordAssignment(kind, err)
		return nil, err
	}
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	rec, assignee, err := s.assignOne(ctx, p, kind, id, input.AssigneeID, input.Notes)
	recordAssignment(kind, err)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, p, kind, assignee, []uuid.UUID{rec.RecordID()}, input.Notes)
	return rec, nil
}

// BulkAssign applies Assign to every id. Failures are reported per id and
// never stop the remaining ids. The role gate runs once, before any work.
func (s *AssignmentService) BulkAssign(ctx context.Context, p policy.Principal, kind model.ResourceKind, input BulkAssignInput) (*BulkResult, error) {
	if err := policy.AuthorizeAssignment(p); err != nil {
		s.deny(ctx, p, model.ActionBulkAssign, kind, "", input.AssigneeID)
		recordAssignment(kind, err)
		return nil, err
	}
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	start := time.Now()
	defer func() { recordBulkLatency(kind, time.Since(start)) }()

	results := make([]BulkItemResult, len(input.IDs))
	assigned := make([]*model.User, len(input.IDs))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, id := range input.IDs {
		g.Go(func() error {
			_, assignee, err := s.assignOne(ctx, p, kind, id, input.AssigneeID, input.Notes)
			recordAssignment(kind, err)

			results[i] = BulkItemResult{ID: id, Success: err == nil}
			if err != nil {
				results[i].Error = bulkErrorMessage(kind, err)
				s.logger.WarnContext(ctx, "bulk assignment item failed",
					"kind", kind,
					"recordID", id,
					"assigneeID", input.AssigneeID,
					"error", err,
				)
				return nil
			}
			assigned[i] = assignee
			return nil
		})
	}
	// Workers never return an error.
	_ = g.Wait()

	out := &BulkResult{Success: true, Results: results}
	var (
		assignee *model.User
		ids      []uuid.UUID
	)
	for i, r := range results {
		if !r.Success {
			out.Success = false
			continue
		}
		assignee = assigned[i]
		ids = append(ids, r.ID)
	}

	if assignee != nil {
		s.notify(ctx, p, kind, assignee, ids, input.Notes)
	}
	return out, nil
}

// UpdateAndAssign writes the edited fields of rec and moves it to
// input.AssigneeID in one transaction. Either both commit or neither does.
func (s *AssignmentService) UpdateAndAssign(ctx context.Context, p policy.Principal, rec model.Assignable, input AssignInput) (model.Assignable, error) {
	kind := rec.Kind()
	if err := policy.AuthorizeAssignment(p); err != nil {
		s.deny(ctx, p, model.ActionAssign, kind, rec.RecordID().String(), input.AssigneeID)
		recordAssignment(kind, err)
		return nil, err
	}
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	var (
		assigned model.Assignable
		assignee *model.User
	)
	err := s.store.WithinTransaction(ctx, func(tx repository.AssignmentTxIface) error {
		if err := tx.UpdateFields(ctx, rec); err != nil {
			return err
		}
		var err error
		assigned, assignee, err = s.assignInTx(ctx, tx, p, kind, rec.RecordID(), input.AssigneeID, input.Notes)
		return err
	})
	recordAssignment(kind, err)
	if err != nil {
		return nil, err
	}

	s.logAssigned(ctx, p, kind, rec.RecordID(), input.AssigneeID)
	s.notify(ctx, p, kind, assignee, []uuid.UUID{assigned.RecordID()}, input.Notes)
	return assigned, nil
}

// assignOne runs a single assignment in its own transaction.
func (s *AssignmentService) assignOne(ctx context.Context, p policy.Principal, kind model.ResourceKind, id, assigneeID uuid.UUID, notes string) (model.Assignable, *model.User, error) {
	var (
		rec      model.Assignable
		assignee *model.User
	)

	err := s.store.WithinTransaction(ctx, func(tx repository.AssignmentTxIface) error {
		var err error
		rec, assignee, err = s.assignInTx(ctx, tx, p, kind, id, assigneeID, notes)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	s.logAssigned(ctx, p, kind, id, assigneeID)
	return rec, assignee, nil
}

// assignInTx loads the record and the assignee, applies the plan and
// appends the activity, all on tx.
func (s *AssignmentService) assignInTx(ctx context.Context, tx repository.AssignmentTxIface, p policy.Principal, kind model.ResourceKind, id, assigneeID uuid.UUID, notes string) (model.Assignable, *model.User, error) {
	rec, err := tx.FindAssignable(ctx, kind, id)
	if err != nil {
		return nil, nil, err
	}

	assignee, err := tx.FindUser(ctx, assigneeID)
	if err != nil {
		return nil, nil, err
	}

	plan := policy.PlanAssignment(rec.AssignedUser(), assignee.ID)
	rec.ApplyAssignment(plan)

	if err := tx.SaveAssignment(ctx, rec); err != nil {
		return nil, nil, err
	}
	if err := tx.AppendActivity(ctx, assignmentActivity(p, kind, rec.RecordID(), assignee, plan, notes)); err != nil {
		return nil, nil, err
	}
	return rec, assignee, nil
}

func (s *AssignmentService) logAssigned(ctx context.Context, p policy.Principal, kind model.ResourceKind, id, assigneeID uuid.UUID) {
	s.logger.InfoContext(ctx, "record assigned",
		"kind", kind,
		"recordID", id,
		"assigneeID", assigneeID,
		"actorID", p.ID,
	)
}

func assignmentActivity(p policy.Principal, kind model.ResourceKind, id uuid.UUID, assignee *model.User, plan policy.AssignmentPlan, notes string) *model.Activity {
	recordID := id

	description := fmt.Sprintf("%s assigned to %s", kind.Label(), assignee.FullName())
	if plan.Previous != nil {
		description = fmt.Sprintf("%s reassigned from user %s to %s", kind.Label(), plan.Previous, assignee.FullName())
	}
	if notes != "" {
		description += ". Notes: " + notes
	}

	return &model.Activity{
		Base:        model.Base{CreatedBy: p.ID},
		Type:        model.ActivityAssignment,
		Title:       fmt.Sprintf("%s assigned to %s", kind.Label(), assignee.FullName()),
		Description: description,
		RelatedTo:   kind,
		RelatedID:   &recordID,
		OccurredAt:  time.Now().UTC(),
	}
}

// bulkErrorMessage renders an item failure without leaking internals.
func bulkErrorMessage(kind model.ResourceKind, err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return kind.Label() + " not found"
	case errors.Is(err, domain.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, domain.ErrNotAssignable):
		return kind.Label() + " cannot be assigned"
	default:
		return "Failed to assign " + kind.Label()
	}
}

// notify emails the assignee. Delivery failures are logged and dropped.
func (s *AssignmentService) notify(ctx context.Context, p policy.Principal, kind model.ResourceKind, assignee *model.User, ids []uuid.UUID, notes string) {
	if s.emailService == nil || assignee == nil || len(ids) == 0 {
		return
	}

	links := make([]string, len(ids))
	for i, id := range ids {
		links[i] = fmt.Sprintf("%s/%s/%s", s.config.BaseURL, kind, id)
	}

	data := mailer.AssignmentTemplateData{
		FirstName:    assignee.FirstName,
		AssignerName: assignerName(p),
		KindLabel:    kind.Label(),
		Count:        len(ids),
		Links:        links,
		Notes:        notes,
	}
	if err := mailer.SendAssignmentNotification(s.emailService, assignee.Email, s.config.Email.FromName, data); err != nil {
		s.logger.WarnContext(ctx, "failed to send assignment notification",
			"assigneeID", assignee.ID,
			"kind", kind,
			"error", err,
		)
	}
}

func assignerName(p policy.Principal) string {
	if p.IsAdmin() {
		return "An administrator"
	}
	return "Your sales manager"
}

func (s *AssignmentService) deny(ctx context.Context, p policy.Principal, action string, kind model.ResourceKind, resourceID string, assigneeID uuid.UUID) {
	err := s.auditLog.LogAccessDecision(ctx, audit.Decision{
		Action:     action,
		Allowed:    false,
		Kind:       kind,
		ResourceID: resourceID,
		Actor:      p,
		TargetID:   assigneeID.String(),
		Reason:     "assignment requires admin or sales_manager",
	})
	if err != nil {
		s.logger.WarnContext(ctx, "failed to write access audit entry", "error", err, "action", action)
	}
}
