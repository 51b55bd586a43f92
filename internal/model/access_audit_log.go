package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// AccessAuditLog records an access decision taken by the policy: denied
// mutations, assignments and visibility refusals on direct reads.
type AccessAuditLog struct {
	ID           uuid.UUID    `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Timestamp    time.Time    `json:"timestamp" gorm:"index;default:CURRENT_TIMESTAMP"`
	Action       string       `json:"action" gorm:"type:text;index"`
	Allowed      *bool        `json:"allowed"`
	ResourceKind ResourceKind `json:"resource_kind" gorm:"type:text"`
	ResourceID   string       `json:"resource_id" gorm:"type:text"`
	ActorID      string       `json:"actor_id" gorm:"type:text;index"`
	ActorRole    string       `json:"actor_role" gorm:"type:text"`
	TargetID     string       `json:"target_id" gorm:"type:text"`
	Reason       string       `json:"reason" gorm:"type:text"`
	Context      JSONMap      `json:"context" gorm:"type:jsonb"`
	RequestID    string       `json:"request_id"`
	ClientIP     string       `json:"client_ip"`
	UserAgent    string       `json:"user_agent"`
	CreatedAt    time.Time    `json:"created_at" gorm:"default:CURRENT_TIMESTAMP"`
}

// TableName specifies the table name for AccessAuditLog
func (AccessAuditLog) TableName() string {
	return "access_audit_logs"
}

// JSONMap represents a generic map stored as JSONB in the database
type JSONMap map[string]interface{}

// Value implements the driver.Valuer interface for JSONMap
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements the sql.Scanner interface for JSONMap
func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = make(JSONMap)
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("type assertion failed: failed to decode JSONB")
	}

	return json.Unmarshal(bytes, m)
}

// Access audit actions
const (
	ActionAssign     = "assign"
	ActionBulkAssign = "bulk_assign"
	ActionCreate     = "create"
	ActionUpdate     = "update"
	ActionDelete     = "delete"
	ActionRead       = "read"
	ActionAdminister = "administer"
)
