// internal/model/activity.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type ActivityType string

const (
	ActivityCall       ActivityType = "call"
	ActivityEmail      ActivityType = "email"
	ActivityMeeting    ActivityType = "meeting"
	ActivityNote       ActivityType = "note"
	ActivityAssignment ActivityType = "assignment"
)

type Activity struct {
	Base
	Type        ActivityType `gorm:"type:text;not null;index" json:"type"`
	Title       string       `gorm:"type:text;not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	RelatedTo   ResourceKind `gorm:"type:text;index:idx_activity_related" json:"related_to"`
	RelatedID   *uuid.UUID   `gorm:"type:uuid;index:idx_activity_related" json:"related_id"`
	OccurredAt  time.Time    `json:"occurred_at"`
}

func (*Activity) TableName() string { return "activities" }

func (*Activity) Kind() ResourceKind    { return KindActivity }
func (*Activity) OwnerColumn() string   { return "created_by" }
func (a *Activity) OwnerID() *uuid.UUID { return &a.CreatedBy }

// Locked keeps the assignment audit trail append-only.
func (a *Activity) Locked() bool { return a.Type == ActivityAssignment }
