// internal/model/record.go
package model

import (
	"time"

	"github.com/dangerclosesec/crm/internal/policy"
	"github.com/google/uuid"
)

// ResourceKind names an ownable resource type. The value doubles as the
// related_to marker on activities.
type ResourceKind string

const (
	KindLead        ResourceKind = "lead"
	KindContact     ResourceKind = "contact"
	KindCompany     ResourceKind = "company"
	KindOpportunity ResourceKind = "opportunity"
	KindQuotation   ResourceKind = "quotation"
	KindSalesOrder  ResourceKind = "sales_order"
	KindTask        ResourceKind = "task"
	KindActivity    ResourceKind = "activity"
	KindAppointment ResourceKind = "appointment"
)

// Label is the human readable name used in messages.
func (k ResourceKind) Label() string {
	switch k {
	case KindLead:
		return "Lead"
	case KindContact:
		return "Contact"
	case KindCompany:
		return "Company"
	case KindOpportunity:
		return "Opportunity"
	case KindQuotation:
		return "Quotation"
	case KindSalesOrder:
		return "Sales order"
	case KindTask:
		return "Task"
	case KindActivity:
		return "Activity"
	case KindAppointment:
		return "Appointment"
	default:
		return string(k)
	}
}

// Base carries the columns shared by every ownable record. CreatedBy is
// stamped at creation and never changes.
type Base struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CreatedBy uuid.UUID `gorm:"type:uuid;not null;index" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Base) RecordID() uuid.UUID { return b.ID }

// Meta exposes the shared columns so generic code can pin them.
func (b *Base) Meta() *Base { return b }

// Record is implemented by pointers to every ownable model.
type Record interface {
	policy.Record
	Kind() ResourceKind
	// OwnerColumn is the SQL expression the visibility scope is applied to.
	OwnerColumn() string
	Meta() *Base
}

// RecordPtr constrains generic stores to the pointer type of a model.
type RecordPtr[T any] interface {
	*T
	Record
}

// Assignable records carry an assigned_to that only the assignment policy
// may change.
type Assignable interface {
	Record
	AssignedUser() *uuid.UUID
	SetAssignedUser(id *uuid.UUID)
	ApplyAssignment(plan policy.AssignmentPlan)
}

// Lockable records refuse updates and deletes once Locked reports true.
type Lockable interface {
	Locked() bool
}

// AllModels lists every table the application owns, in migration order.
func AllModels() []any {
	return []any{
		&Team{},
		&User{},
		&Company{},
		&Contact{},
		&Lead{},
		&Opportunity{},
		&Quotation{},
		&SalesOrder{},
		&Task{},
		&Activity{},
		&Appointment{},
		&AccessAuditLog{},
	}
}

func cloneID(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
