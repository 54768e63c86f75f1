package models

import (
	"time"
)

// Creator is the boundary identity a dashboard request is scoped to. Account
// lifecycle (registration, passwords) lives outside this service; the API key
// is the only credential the middleware checks.
type Creator struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:120;not null" json:"name"`
	Email     string    `gorm:"unique;not null;size:120" json:"email"`
	APIKey    string    `gorm:"unique;index;size:36" json:"api_key"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	QRCodes   []QRCode  `gorm:"foreignKey:CreatorID" json:"qr_codes,omitempty"`
}
