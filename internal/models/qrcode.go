package models

import (
	"time"
)

type QRCode struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	CreatorID   string     `gorm:"size:36;not null;index" json:"creator_id"`
	Creator     *Creator   `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Name        string     `gorm:"size:120;not null" json:"name"`
	TargetURL   string     `gorm:"not null;type:text" json:"target_url"`
	TotalScans  int64      `gorm:"default:0" json:"total_scans"`
	UniqueScans int64      `gorm:"default:0" json:"unique_scans"`
	LastScanAt  *time.Time `json:"last_scan_at,omitempty"`
	CreatedAt   time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	Scans []Scan `gorm:"foreignKey:QRID;constraint:OnDelete:CASCADE" json:"scans,omitempty"`
}

func (QRCode) TableName() string {
	return "qr_codes"
}
