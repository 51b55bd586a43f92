// internal/model/sales.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type QuotationStatus string

const (
	QuotationDraft    QuotationStatus = "draft"
	QuotationSent     QuotationStatus = "sent"
	QuotationAccepted QuotationStatus = "accepted"
	QuotationRejected QuotationStatus = "rejected"
	QuotationExpired  QuotationStatus = "expired"
)

type Quotation struct {
	Base
	QuoteNumber   string          `gorm:"type:text;uniqueIndex;not null" json:"quote_number"`
	Status        QuotationStatus `gorm:"type:text;not null;default:'draft'" json:"status"`
	OpportunityID *uuid.UUID      `gorm:"type:uuid;index" json:"opportunity_id"`
	CompanyID     *uuid.UUID      `gorm:"type:uuid;index" json:"company_id"`
	ContactID     *uuid.UUID      `gorm:"type:uuid;index" json:"contact_id"`
	Subtotal      float64         `gorm:"type:numeric(14,2);default:0" json:"subtotal"`
	Tax           float64         `gorm:"type:numeric(14,2);default:0" json:"tax"`
	Discount      float64         `gorm:"type:numeric(14,2);default:0" json:"discount"`
	Total         float64         `gorm:"type:numeric(14,2);default:0" json:"total"`
	ValidUntil    *time.Time      `json:"valid_until"`
	Terms         string          `gorm:"type:text" json:"terms"`
}

func (*Quotation) Kind() ResourceKind    { return KindQuotation }
func (*Quotation) OwnerColumn() string   { return "created_by" }
func (q *Quotation) OwnerID() *uuid.UUID { return &q.CreatedBy }

type SalesOrderStatus string

const (
	OrderPending   SalesOrderStatus = "pending"
	OrderConfirmed SalesOrderStatus = "confirmed"
	OrderInvoiced  SalesOrderStatus = "invoiced"
	OrderPaid      SalesOrderStatus = "paid"
	OrderCancelled SalesOrderStatus = "cancelled"
)

// SalesOrder doubles as the invoice once InvoiceNumber is set.
type SalesOrder struct {
	Base
	OrderNumber   string           `gorm:"type:text;uniqueIndex;not null" json:"order_number"`
	Status        SalesOrderStatus `gorm:"type:text;not null;default:'pending'" json:"status"`
	QuotationID   *uuid.UUID       `gorm:"type:uuid;index" json:"quotation_id"`
	CompanyID     *uuid.UUID       `gorm:"type:uuid;index" json:"company_id"`
	ContactID     *uuid.UUID       `gorm:"type:uuid;index" json:"contact_id"`
	Total         float64          `gorm:"type:numeric(14,2);default:0" json:"total"`
	InvoiceNumber string           `gorm:"type:text" json:"invoice_number"`
	InvoiceDate   *time.Time       `json:"invoice_date"`
	DueDate       *time.Time       `json:"due_date"`
	PaidAt        *time.Time       `json:"paid_at"`
}

func (*SalesOrder) TableName() string { return "sales_orders" }

func (*SalesOrder) Kind() ResourceKind    { return KindSalesOrder }
func (*SalesOrder) OwnerColumn() string   { return "created_by" }
func (o *SalesOrder) OwnerID() *uuid.UUID { return &o.CreatedBy }
