// internal/model/lead.go
package model

import (
	"github.com/dangerclosesec/crm/internal/policy"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type LeadStatus string

const (
	LeadStatusNew         LeadStatus = "new"
	LeadStatusContacted   LeadStatus = "contacted"
	LeadStatusQualified   LeadStatus = "qualified"
	LeadStatusUnqualified LeadStatus = "unqualified"
	LeadStatusConverted   LeadStatus = "converted"
	LeadStatusLost        LeadStatus = "lost"
)

type Lead struct {
	Base
	FirstName      string         `gorm:"type:text;not null" json:"first_name"`
	LastName       string         `gorm:"type:text" json:"last_name"`
	Email          string         `gorm:"type:text" json:"email"`
	Phone          string         `gorm:"type:text" json:"phone"`
	Title          string         `gorm:"type:text" json:"title"`
	Organization   string         `gorm:"type:text" json:"organization"`
	Source         string         `gorm:"type:text" json:"source"`
	Status         LeadStatus     `gorm:"type:text;not null;default:'new'" json:"status"`
	EstimatedValue float64        `gorm:"type:numeric(14,2);default:0" json:"estimated_value"`
	Tags           pq.StringArray `gorm:"type:text[]" json:"tags"`
	Notes          string         `gorm:"type:text" json:"notes"`
	AssignedTo     *uuid.UUID     `gorm:"type:uuid;index" json:"assigned_to"`
	TeamID         *uuid.UUID     `gorm:"type:uuid;index" json:"team_id"`
	ContactID      *uuid.UUID     `gorm:"type:uuid;index" json:"contact_id"`
	CompanyID      *uuid.UUID     `gorm:"type:uuid;index" json:"company_id"`
}

func (*Lead) Kind() ResourceKind    { return KindLead }
func (*Lead) OwnerColumn() string   { return "assigned_to" }
func (l *Lead) OwnerID() *uuid.UUID { return l.AssignedTo }

func (l *Lead) AssignedUser() *uuid.UUID      { return l.AssignedTo }
func (l *Lead) SetAssignedUser(id *uuid.UUID) { l.AssignedTo = cloneID(id) }

// ApplyAssignment moves the lead to plan.Target. A lead picked up for the
// first time restarts its workflow at "new".
func (l *Lead) ApplyAssignment(plan policy.AssignmentPlan) {
	target := plan.Target
	l.AssignedTo = &target
	if plan.ResetStatus {
		l.Status = LeadStatusNew
	}
}
