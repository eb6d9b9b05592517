package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// QueryAudit records every statement executed through the query console.
// The console is deliberately unrestricted, so the audit trail is the only
// record of who ran what.
type QueryAudit struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     int            `gorm:"index" json:"user_id"`
	SQL        string         `gorm:"column:sql;type:text;not null" json:"sql"`
	RowCount   int            `json:"row_count"`
	DurationMs int            `json:"duration_ms"`
	Success    bool           `json:"success"`
	Error      string         `gorm:"type:text" json:"error"`
	Meta       datatypes.JSON `gorm:"type:jsonb" json:"meta"`
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`
}
