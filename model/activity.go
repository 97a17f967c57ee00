package model

import (
	"time"

	"gorm.io/datatypes"
)

// ActivityLog records every admin console action for audit.
type ActivityLog struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	AdminID   uint           `json:"admin_id"`
	Action    string         `json:"action"` // e.g. "fee.assign", "admin.import_csv"
	Details   datatypes.JSON `json:"details"`
	CreatedAt time.Time      `json:"created_at"`
}
