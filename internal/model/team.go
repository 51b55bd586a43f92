// internal/model/team.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Team groups users for reporting. Visibility is decided by the manager
// chain, not by team membership.
type Team struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name        string    `gorm:"type:text;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
