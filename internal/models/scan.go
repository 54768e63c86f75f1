package models

import (
	"time"
)

// Scan is a single resolution of a QR code. Rows are written once by the
// ingestion path and never updated; IsUnique is decided at insert time and
// stays as written even if later scans share the fingerprint.
type Scan struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	QRID        string    `gorm:"size:36;not null;index" json:"qr_id"`
	Fingerprint string    `gorm:"size:128;not null;index" json:"fingerprint"`
	UserAgent   string    `gorm:"size:255" json:"user_agent"`
	IPAddress   string    `gorm:"size:45" json:"ip_address,omitempty"`
	Country     *string   `gorm:"size:100" json:"country,omitempty"`
	Region      *string   `gorm:"size:100" json:"region,omitempty"`
	City        *string   `gorm:"size:100" json:"city,omitempty"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	DeviceType  string    `gorm:"size:50" json:"device_type"`
	OS          string    `gorm:"size:100" json:"os"`
	Browser     string    `gorm:"size:100" json:"browser"`
	IsUnique    bool      `gorm:"not null" json:"is_unique"`
	Timestamp   time.Time `gorm:"default:CURRENT_TIMESTAMP;index" json:"timestamp"`
}

// ScanVisitor records the first visit of a fingerprint to a code. The
// composite unique index is what makes the uniqueness decision race-free:
// concurrent scans with the same pair both try the insert inside their
// transaction and exactly one of them lands the row.
type ScanVisitor struct {
	QRID        string `gorm:"size:36;not null;uniqueIndex:idx_scan_visitor" json:"qr_id"`
	Fingerprint string `gorm:"size:128;not null;uniqueIndex:idx_scan_visitor" json:"fingerprint"`
}
