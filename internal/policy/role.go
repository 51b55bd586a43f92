// Package policy holds the role-scoped visibility and assignment decisions
// every CRM resource handler consumes. Nothing here touches the store; callers
// resolve team membership and hand the result in.
package policy

import (
	"strings"

	"github.com/google/uuid"
)

// Role is the closed set of roles the policy understands. The zero value is
// the most restrictive role so an unset or unknown role fails closed.
type Role int

const (
	// RoleSalesExecutive sees its own records plus unassigned ones. It
	// cannot assign.
	RoleSalesExecutive Role = iota
	// RoleSalesManager sees its team's records plus unassigned ones and may
	// assign.
	RoleSalesManager
	// RoleAdmin sees everything and may assign.
	RoleAdmin
)

// ParseRole maps a stored role string onto Role. Anything unrecognised,
// including the empty string, becomes RoleSalesExecutive.
func ParseRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin
	case "sales_manager":
		return RoleSalesManager
	default:
		return RoleSalesExecutive
	}
}

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleSalesManager:
		return "sales_manager"
	default:
		return "sales_executive"
	}
}

// Principal is the authenticated caller.
type Principal struct {
	ID        uuid.UUID
	Role      Role
	TeamID    *uuid.UUID
	ManagerID *uuid.UUID
}

// IsAdmin reports whether the principal sees everything.
func (p Principal) IsAdmin() bool { return p.Role == RoleAdmin }

// IsManager reports whether the principal manages a team.
func (p Principal) IsManager() bool { return p.Role == RoleSalesManager }
