// internal/model/user.go
package model

import (
	"time"

	"github.com/dangerclosesec/crm/internal/policy"
	"github.com/google/uuid"
)

type UserRole string

const (
	RoleAdmin          UserRole = "admin"
	RoleSalesManager   UserRole = "sales_manager"
	RoleSalesExecutive UserRole = "sales_executive"
)

type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Email        string     `gorm:"type:citext;uniqueIndex;not null" json:"email"`
	FirstName    string     `gorm:"type:text;not null" json:"first_name"`
	LastName     string     `gorm:"type:text" json:"last_name"`
	PasswordHash string     `gorm:"type:text;not null" json:"-"`
	Role         UserRole   `gorm:"type:text;not null;default:'sales_executive'" json:"role"`
	TeamID       *uuid.UUID `gorm:"type:uuid;index" json:"team_id"`
	ManagerID    *uuid.UUID `gorm:"type:uuid;index" json:"manager_id"`
	IsActive     bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	Team *Team `gorm:"foreignKey:TeamID" json:"team,omitempty"`
}

// FullName joins first and last name.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Principal converts the stored user into the caller identity the policy
// works with. The stored role string is parsed fail-closed.
func (u *User) Principal() policy.Principal {
	return policy.Principal{
		ID:        u.ID,
		Role:      policy.ParseRole(string(u.Role)),
		TeamID:    cloneID(u.TeamID),
		ManagerID: cloneID(u.ManagerID),
	}
}
