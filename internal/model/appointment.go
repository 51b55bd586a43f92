// internal/model/appointment.go
package model

import (
	"time"

	"github.com/google/uuid"
)

const AttendeeUser = "user"

type Appointment struct {
	Base
	Title        string       `gorm:"type:text;not null" json:"title"`
	Description  string       `gorm:"type:text" json:"description"`
	Location     string       `gorm:"type:text" json:"location"`
	StartTime    time.Time    `gorm:"not null" json:"start_time"`
	EndTime      time.Time    `gorm:"not null" json:"end_time"`
	AttendeeID   *uuid.UUID   `gorm:"type:uuid;index" json:"attendee_id"`
	AttendeeType string       `gorm:"type:text" json:"attendee_type"`
	RelatedTo    ResourceKind `gorm:"type:text" json:"related_to"`
	RelatedID    *uuid.UUID   `gorm:"type:uuid" json:"related_id"`
}

func (*Appointment) Kind() ResourceKind { return KindAppointment }

// OwnerColumn mirrors OwnerID: a user attendee owns the appointment,
// otherwise its creator does.
func (*Appointment) OwnerColumn() string {
	return "COALESCE(CASE WHEN attendee_type = 'user' THEN attendee_id END, created_by)"
}

func (a *Appointment) OwnerID() *uuid.UUID {
	if a.AttendeeType == AttendeeUser && a.AttendeeID != nil {
		return a.AttendeeID
	}
	return &a.CreatedBy
}
