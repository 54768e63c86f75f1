package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"qrpulse/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrQRCodeNotFound   = errors.New("qr code not found")
	ErrUnknownDimension = errors.New("unknown scan dimension")
)

// Dimension enumerates the scan columns a rollup may group by. Anything
// outside this set is rejected instead of being spliced into SQL.
type Dimension int

const (
	DimensionDeviceType Dimension = iota
	DimensionRegion
	DimensionCountry
	DimensionCity
	DimensionBrowser
)

func (d Dimension) column() (string, bool) {
	switch d {
	case DimensionDeviceType:
		return "device_type", true
	case DimensionRegion:
		return "region", true
	case DimensionCountry:
		return "country", true
	case DimensionCity:
		return "city", true
	case DimensionBrowser:
		return "browser", true
	}
	return "", false
}

// QRCodeOrder enumerates the supported list orderings.
type QRCodeOrder int

const (
	OrderByCreatedAtDesc QRCodeOrder = iota
	OrderByTotalScansDesc
)

func (o QRCodeOrder) clause() string {
	if o == OrderByTotalScansDesc {
		return "total_scans desc"
	}
	return "created_at desc"
}

// ScanFilter narrows scan queries. Zero values mean "no constraint".
type ScanFilter struct {
	CreatorID  string
	QRID       string
	UniqueOnly bool
	Since      *time.Time
	Until      *time.Time
}

type QRCodeFilter struct {
	CreatorID    string
	CreatedSince *time.Time
}

// QRCodeUpdate carries the mutable metadata fields. Counters are not here on
// purpose: they only move inside RecordScan's transaction.
type QRCodeUpdate struct {
	Name      *string
	TargetURL *string
}

type GroupBucket struct {
	Label string
	Count int64
}

// ScanStore is the persistence boundary for scan events and QR code counters.
type ScanStore interface {
	RecordScan(ctx context.Context, scan *models.Scan) (bool, error)
	CountScans(ctx context.Context, filter ScanFilter) (int64, error)
	ListScans(ctx context.Context, filter ScanFilter, limit int) ([]models.Scan, error)
	ListScanTimes(ctx context.Context, filter ScanFilter) ([]time.Time, error)
	GroupScans(ctx context.Context, dim Dimension, filter ScanFilter) ([]GroupBucket, error)

	CreateQRCode(ctx context.Context, code *models.QRCode) error
	UpdateQRCode(ctx context.Context, id string, update QRCodeUpdate) (*models.QRCode, error)
	DeleteQRCode(ctx context.Context, id string) error
	FindQRCode(ctx context.Context, id string) (*models.QRCode, error)
	ListQRCodes(ctx context.Context, filter QRCodeFilter, order QRCodeOrder, limit int) ([]models.QRCode, error)
	CountQRCodes(ctx context.Context, filter QRCodeFilter) (int64, error)
}

type GormScanStore struct {
	db *gorm.DB
}

func NewGormScanStore(db *gorm.DB) *GormScanStore {
	return &GormScanStore{db: db}
}

// RecordScan inserts the scan and bumps the owning code's counters in one
// transaction. Uniqueness is decided by the conflict-insert on scan_visitors,
// not by a prior read, so two concurrent scans with the same fingerprint
// cannot both come back unique.
func (s *GormScanStore) RecordScan(ctx context.Context, scan *models.Scan) (bool, error) {
	isUnique := false

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var code models.QRCode
		if err := tx.Where("id = ?", scan.QRID).First(&code).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrQRCodeNotFound
			}
			return fmt.Errorf("failed to load qr code %s: %w", scan.QRID, err)
		}

		visitor := models.ScanVisitor{QRID: scan.QRID, Fingerprint: scan.Fingerprint}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&visitor)
		if res.Error != nil {
			return fmt.Errorf("failed to register visitor: %w", res.Error)
		}
		isUnique = res.RowsAffected == 1

		scan.IsUnique = isUnique
		if scan.Timestamp.IsZero() {
			scan.Timestamp = time.Now().UTC()
		}
		if err := tx.Create(scan).Error; err != nil {
			return fmt.Errorf("failed to create scan: %w", err)
		}

		updates := map[string]interface{}{
			"total_scans":  gorm.Expr("total_scans + 1"),
			"last_scan_at": scan.Timestamp,
		}
		if isUnique {
			updates["unique_scans"] = gorm.Expr("unique_scans + 1")
		}
		if err := tx.Model(&models.QRCode{}).Where("id = ?", scan.QRID).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to increment counters: %w", err)
		}

		return nil
	})
	if err != nil {
		return false, err
	}

	return isUnique, nil
}

func (s *GormScanStore) scanQuery(ctx context.Context, filter ScanFilter) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&models.Scan{})
	if filter.CreatorID != "" {
		q = q.Joins("JOIN qr_codes ON qr_codes.id = scans.qr_id").
			Where("qr_codes.creator_id = ?", filter.CreatorID)
	}
	if filter.QRID != "" {
		q = q.Where("scans.qr_id = ?", filter.QRID)
	}
	if filter.UniqueOnly {
		q = q.Where("scans.is_unique = ?", true)
	}
	if filter.Since != nil {
		q = q.Where("scans.timestamp >= ?", *filter.Since)
	}
	if filter.Until != nil {
		q = q.Where("scans.timestamp < ?", *filter.Until)
	}
	return q
}

func (s *GormScanStore) CountScans(ctx context.Context, filter ScanFilter) (int64, error) {
	var count int64
	if err := s.scanQuery(ctx, filter).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count scans: %w", err)
	}
	return count, nil
}

// ListScans returns matching scans newest first.
func (s *GormScanStore) ListScans(ctx context.Context, filter ScanFilter, limit int) ([]models.Scan, error) {
	var scans []models.Scan
	q := s.scanQuery(ctx, filter).Order("scans.timestamp desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&scans).Error; err != nil {
		return nil, fmt.Errorf("failed to list scans: %w", err)
	}
	return scans, nil
}

// ListScanTimes fetches only the timestamps, which is all the histogram
// builders need.
func (s *GormScanStore) ListScanTimes(ctx context.Context, filter ScanFilter) ([]time.Time, error) {
	var times []time.Time
	if err := s.scanQuery(ctx, filter).Pluck("scans.timestamp", &times).Error; err != nil {
		return nil, fmt.Errorf("failed to list scan timestamps: %w", err)
	}
	return times, nil
}

func (s *GormScanStore) GroupScans(ctx context.Context, dim Dimension, filter ScanFilter) ([]GroupBucket, error) {
	column, ok := dim.column()
	if !ok {
		return nil, ErrUnknownDimension
	}

	var buckets []GroupBucket
	err := s.scanQuery(ctx, filter).
		Select(fmt.Sprintf("COALESCE(scans.%s, '') as label, count(*) as count", column)).
		Group("label").
		Order("count desc").
		Scan(&buckets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to group scans by %s: %w", column, err)
	}
	return buckets, nil
}

func (s *GormScanStore) CreateQRCode(ctx context.Context, code *models.QRCode) error {
	if err := s.db.WithContext(ctx).Create(code).Error; err != nil {
		return fmt.Errorf("failed to create qr code: %w", err)
	}
	return nil
}

func (s *GormScanStore) UpdateQRCode(ctx context.Context, id string, update QRCodeUpdate) (*models.QRCode, error) {
	updates := map[string]interface{}{}
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.TargetURL != nil {
		updates["target_url"] = *update.TargetURL
	}

	var code models.QRCode
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&code).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrQRCodeNotFound
			}
			return err
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&code).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return &code, nil
}

// DeleteQRCode removes the code together with its scans and visitor rows, so
// no orphaned events survive the parent.
func (s *GormScanStore) DeleteQRCode(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&models.QRCode{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete qr code: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrQRCodeNotFound
		}
		if err := tx.Where("qr_id = ?", id).Delete(&models.Scan{}).Error; err != nil {
			return fmt.Errorf("failed to delete scans: %w", err)
		}
		if err := tx.Where("qr_id = ?", id).Delete(&models.ScanVisitor{}).Error; err != nil {
			return fmt.Errorf("failed to delete scan visitors: %w", err)
		}
		return nil
	})
}

func (s *GormScanStore) FindQRCode(ctx context.Context, id string) (*models.QRCode, error) {
	var code models.QRCode
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQRCodeNotFound
		}
		return nil, fmt.Errorf("failed to find qr code: %w", err)
	}
	return &code, nil
}

func (s *GormScanStore) codeQuery(ctx context.Context, filter QRCodeFilter) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&models.QRCode{})
	if filter.CreatorID != "" {
		q = q.Where("creator_id = ?", filter.CreatorID)
	}
	if filter.CreatedSince != nil {
		q = q.Where("created_at >= ?", *filter.CreatedSince)
	}
	return q
}

func (s *GormScanStore) ListQRCodes(ctx context.Context, filter QRCodeFilter, order QRCodeOrder, limit int) ([]models.QRCode, error) {
	var codes []models.QRCode
	q := s.codeQuery(ctx, filter).Order(order.clause())
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&codes).Error; err != nil {
		return nil, fmt.Errorf("failed to list qr codes: %w", err)
	}
	return codes, nil
}

func (s *GormScanStore) CountQRCodes(ctx context.Context, filter QRCodeFilter) (int64, error) {
	var count int64
	if err := s.codeQuery(ctx, filter).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count qr codes: %w", err)
	}
	return count, nil
}
