package models

import (
	"time"
)

type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatorID *string   `gorm:"size:36;index" json:"creator_id"`
	Action    string    `gorm:"size:50;not null" json:"action"` // e.g. "CREATE_QRCODE", "DELETE_QRCODE"
	EntityID  string    `gorm:"size:50" json:"entity_id"`
	Details   string    `gorm:"type:text" json:"details"`
	IPAddress string    `gorm:"size:45" json:"ip_address"`
	Timestamp time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"timestamp"`
}
