package services

import (
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"qrpulse/internal/models"
	"qrpulse/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

var testDBSeq int

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	testDBSeq++
	dsn := fmt.Sprintf("file:services_test_%d?mode=memory&cache=shared", testDBSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.Creator{}, &models.QRCode{}, &models.Scan{}, &models.ScanVisitor{}, &models.AuditLog{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	return db
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func seedCode(t *testing.T, db *gorm.DB, id, creatorID string) *models.QRCode {
	t.Helper()
	code := &models.QRCode{
		ID:        id,
		CreatorID: creatorID,
		Name:      "Code " + id,
		TargetURL: "https://example.com/" + id,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.Create(code).Error; err != nil {
		t.Fatalf("failed to seed qr code: %v", err)
	}
	return code
}

// Boundary stubs: geography and classification are external concerns, the
// services only consume their output.

type stubGeo struct {
	loc Location
}

func (s stubGeo) Resolve(string) Location { return s.loc }

type stubClassifier struct {
	info DeviceInfo
}

func (s stubClassifier) Classify(string) DeviceInfo { return s.info }

func strPtr(s string) *string       { return &s }
func floatPtr(f float64) *float64   { return &f }
func newStore(db *gorm.DB) *repository.GormScanStore {
	return repository.NewGormScanStore(db)
}
