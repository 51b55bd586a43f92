// internal/model/task.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type TaskStatus string

const (
	TaskOpen       TaskStatus = "open"
	TaskInProgress TaskStatus = "in_progress"
	TaskDone       TaskStatus = "done"
)

type Task struct {
	Base
	Title       string       `gorm:"type:text;not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	Status      TaskStatus   `gorm:"type:text;not null;default:'open'" json:"status"`
	Priority    string       `gorm:"type:text;default:'medium'" json:"priority"`
	DueDate     *time.Time   `json:"due_date"`
	RelatedTo   ResourceKind `gorm:"type:text" json:"related_to"`
	RelatedID   *uuid.UUID   `gorm:"type:uuid;index" json:"related_id"`
}

func (*Task) Kind() ResourceKind    { return KindTask }
func (*Task) OwnerColumn() string   { return "created_by" }
func (t *Task) OwnerID() *uuid.UUID { return &t.CreatedBy }
