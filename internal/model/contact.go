// internal/model/contact.go
package model

import "github.com/google/uuid"

type Contact struct {
	Base
	FirstName  string     `gorm:"type:text;not null" json:"first_name"`
	LastName   string     `gorm:"type:text" json:"last_name"`
	Email      string     `gorm:"type:text" json:"email"`
	Phone      string     `gorm:"type:text" json:"phone"`
	Title      string     `gorm:"type:text" json:"title"`
	Department string     `gorm:"type:text" json:"department"`
	CompanyID  *uuid.UUID `gorm:"type:uuid;index" json:"company_id"`
}

func (*Contact) Kind() ResourceKind    { return KindContact }
func (*Contact) OwnerColumn() string   { return "created_by" }
func (c *Contact) OwnerID() *uuid.UUID { return &c.CreatedBy }
