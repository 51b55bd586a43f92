package policy

import "github.com/google/uuid"

// Record is anything the visibility policy can filter. OwnerID returns the
// resource's owner field (assigned_to, created_by or the appointment
// attendee) or nil when the record is unowned.
type Record interface {
	RecordID() uuid.UUID
	OwnerID() *uuid.UUID
}

// Scope is the visibility decision for one principal over one resource kind.
// A record is visible when any clause holds.
type Scope struct {
	// All short-circuits every other clause.
	All bool
	// Owners is the set of owner ids whose records are visible.
	Owners []uuid.UUID
	// Unowned makes records with a null owner field visible. New and
	// unclaimed leads must stay discoverable by every role.
	Unowned bool
	// Referenced holds record ids visible through a lead or opportunity
	// the principal can already see (contacts and companies only).
	Referenced []uuid.UUID
}

// ScopeFor applies the role decision table. teamMemberIDs is only consulted
// for sales managers; admins bypass team resolution entirely.
func ScopeFor(p Principal, teamMemberIDs []uuid.UUID) Scope {
	switch p.Role {
	case RoleAdmin:
		return Scope{All: true}
	case RoleSalesManager:
		owners := make([]uuid.UUID, 0, len(teamMemberIDs)+1)
		owners = append(owners, p.ID)
		for _, id := range teamMemberIDs {
			if id != p.ID {
				owners = append(owners, id)
			}
		}
		return Scope{Owners: owners, Unowned: true}
	default:
		return Scope{Owners: []uuid.UUID{p.ID}, Unowned: true}
	}
}

// TeamScope is the team view: records owned by the manager or anyone under
// them. Unassigned records are not part of a team's book.
func TeamScope(managerID uuid.UUID, teamMemberIDs []uuid.UUID) Scope {
	s := ScopeFor(Principal{ID: managerID, Role: RoleSalesManager}, teamMemberIDs)
	s.Unowned = false
	return s
}

// WithReferences widens a restricted scope with ids reachable through
// visible leads and opportunities. An unrestricted scope is returned as is.
func (s Scope) WithReferences(ids []uuid.UUID) Scope {
	if s.All || len(ids) == 0 {
		return s
	}
	out := s
	out.Referenced = append(append([]uuid.UUID(nil), s.Referenced...), ids...)
	return out
}

// Allows reports whether rec falls inside the scope.
func (s Scope) Allows(rec Record) bool {
	if s.All {
		return true
	}
	owner := rec.OwnerID()
	if owner == nil {
		if s.Unowned {
			return true
		}
	} else if containsID(s.Owners, *owner) {
		return true
	}
	return containsID(s.Referenced, rec.RecordID())
}

// FilterVisible returns the records inside the scope, preserving order.
func FilterVisible[T Record](s Scope, records []T) []T {
	if s.All {
		return records
	}
	out := make([]T, 0, len(records))
	for _, rec := range records {
		if s.Allows(rec) {
			out = append(out, rec)
		}
	}
	return out
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
