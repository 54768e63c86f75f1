package handlers

import (
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"qrpulse/internal/config"
	"qrpulse/internal/models"
	"qrpulse/internal/repository"
	"qrpulse/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

var testDBSeq int

// Boundary stubs so handler tests do not depend on a GeoIP database or real
// user agents.
type stubGeo struct{}

func (stubGeo) Resolve(string) services.Location { return services.Location{} }

type stubClassifier struct{}

func (stubClassifier) Classify(string) services.DeviceInfo {
	return services.DeviceInfo{DeviceType: "Desktop", OS: "Linux", Browser: "Firefox 126"}
}

func setupTestHandler(t *testing.T) (*Handler, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	testDBSeq++
	dsn := fmt.Sprintf("file:handlers_test_%d?mode=memory&cache=shared", testDBSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.Creator{}, &models.QRCode{}, &models.Scan{}, &models.ScanVisitor{}, &models.AuditLog{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	cfg := config.Config{}

	store := repository.NewGormScanStore(db)
	audit := services.NewAuditService(db, logger)
	scanService := services.NewScanService(store, logger, stubGeo{}, stubClassifier{})
	dashboardService := services.NewDashboardService(store, logger)
	qrCodeService := services.NewQRCodeService(store, nil, logger, audit)

	h := NewHandler(cfg, logger, db, scanService, dashboardService, qrCodeService)
	return h, db
}

func setupTestRouter(h *Handler) *gin.Engine {
	return h.SetupRouter(nil)
}

func seedCreator(t *testing.T, db *gorm.DB, id, apiKey string) *models.Creator {
	t.Helper()
	creator := &models.Creator{ID: id, Name: "Test", Email: id + "@example.com", APIKey: apiKey}
	if err := db.Create(creator).Error; err != nil {
		t.Fatalf("failed to seed creator: %v", err)
	}
	return creator
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
