package policy

import (
	"github.com/dangerclosesec/crm/internal/domain"
	"github.com/google/uuid"
)

// AuthorizeAssignment is the role gate for single and bulk assignment.
// Sales executives can never assign, whatever the record or target.
func AuthorizeAssignment(p Principal) error {
	switch p.Role {
	case RoleAdmin, RoleSalesManager:
		return nil
	default:
		return domain.ErrPermissionDenied
	}
}

// AssignmentPlan describes the writes one assignment must perform.
type AssignmentPlan struct {
	Previous *uuid.UUID
	Target   uuid.UUID
	// ResetStatus is set when the record had no assignee before. Only
	// resources with a workflow status act on it.
	ResetStatus bool
}

// PlanAssignment computes the effects of moving a record from previous to
// target. Reassigning to the current assignee is still a full assignment.
func PlanAssignment(previous *uuid.UUID, target uuid.UUID) AssignmentPlan {
	plan := AssignmentPlan{Target: target, ResetStatus: previous == nil}
	if previous != nil {
		prev := *previous
		plan.Previous = &prev
	}
	return plan
}

// CanSetAssigneeOnCreate reports whether p may create a record already
// assigned to assignee. Roles that cannot assign may only claim for themselves.
func CanSetAssigneeOnCreate(p Principal, assignee *uuid.UUID) bool {
	if assignee == nil || *assignee == p.ID {
		return true
	}
	return AuthorizeAssignment(p) == nil
}

// CanDelete reports whether p may delete a record it can already see.
func CanDelete(p Principal, createdBy uuid.UUID) bool {
	if p.Role == RoleAdmin || p.Role == RoleSalesManager {
		return true
	}
	return createdBy == p.ID
}

// CanManageUsers gates user and team administration.
func CanManageUsers(p Principal) bool { return p.Role == RoleAdmin }

// CanReadAccessAudit gates the access audit log.
func CanReadAccessAudit(p Principal) bool { return p.Role == RoleAdmin }

// CanViewTeam reports whether p may look at managerID's team book.
func CanViewTeam(p Principal, managerID uuid.UUID) bool {
	switch p.Role {
	case RoleAdmin:
		return true
	case RoleSalesManager:
		return managerID == p.ID
	default:
		return false
	}
}
