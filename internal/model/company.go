// internal/model/company.go
package model

import "github.com/google/uuid"

type Company struct {
	Base
	Name          string `gorm:"type:text;not null" json:"name"`
	Industry      string `gorm:"type:text" json:"industry"`
	FacilityType  string `gorm:"type:text" json:"facility_type"`
	BedCount      int    `gorm:"default:0" json:"bed_count"`
	Website       string `gorm:"type:text" json:"website"`
	Phone         string `gorm:"type:text" json:"phone"`
	Address       string `gorm:"type:text" json:"address"`
	City          string `gorm:"type:text" json:"city"`
	State         string `gorm:"type:text" json:"state"`
	Country       string `gorm:"type:text" json:"country"`
	EmployeeCount int    `gorm:"default:0" json:"employee_count"`
}

func (*Company) Kind() ResourceKind    { return KindCompany }
func (*Company) OwnerColumn() string   { return "created_by" }
func (c *Company) OwnerID() *uuid.UUID { return &c.CreatedBy }
