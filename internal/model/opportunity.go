// internal/model/opportunity.go
package model

import (
	"time"

	"github.com/dangerclosesec/crm/internal/policy"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type OpportunityStage string

const (
	StageProspecting   OpportunityStage = "prospecting"
	StageQualification OpportunityStage = "qualification"
	StageProposal      OpportunityStage = "proposal"
	StageNegotiation   OpportunityStage = "negotiation"
	StageClosedWon     OpportunityStage = "closed_won"
	StageClosedLost    OpportunityStage = "closed_lost"
)

type Opportunity struct {
	Base
	Name              string           `gorm:"type:text;not null" json:"name"`
	Stage             OpportunityStage `gorm:"type:text;not null;default:'prospecting'" json:"stage"`
	Amount            float64          `gorm:"type:numeric(14,2);default:0" json:"amount"`
	Probability       int              `gorm:"default:0" json:"probability"`
	ExpectedCloseDate *time.Time       `json:"expected_close_date"`
	ProductLine       string           `gorm:"type:text" json:"product_line"`
	Tags              pq.StringArray   `gorm:"type:text[]" json:"tags"`
	AssignedTo        *uuid.UUID       `gorm:"type:uuid;index" json:"assigned_to"`
	TeamID            *uuid.UUID       `gorm:"type:uuid;index" json:"team_id"`
	LeadID            *uuid.UUID       `gorm:"type:uuid;index" json:"lead_id"`
	ContactID         *uuid.UUID       `gorm:"type:uuid;index" json:"contact_id"`
	CompanyID         *uuid.UUID       `gorm:"type:uuid;index" json:"company_id"`
}

func (*Opportunity) Kind() ResourceKind    { return KindOpportunity }
func (*Opportunity) OwnerColumn() string   { return "assigned_to" }
func (o *Opportunity) OwnerID() *uuid.UUID { return o.AssignedTo }

func (o *Opportunity) AssignedUser() *uuid.UUID      { return o.AssignedTo }
func (o *Opportunity) SetAssignedUser(id *uuid.UUID) { o.AssignedTo = cloneID(id) }

// ApplyAssignment moves the opportunity to plan.Target. Stages are never
// reset by assignment.
func (o *Opportunity) ApplyAssignment(plan policy.AssignmentPlan) {
	target := plan.Target
	o.AssignedTo = &target
}
