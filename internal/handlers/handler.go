package handlers

import (
	"log/slog"

	"qrpulse/internal/config"
	"qrpulse/internal/services"

	"gorm.io/gorm"
)

type Handler struct {
	cfg              config.Config
	logger           *slog.Logger
	db               *gorm.DB
	scanService      *services.ScanService
	dashboardService *services.DashboardService
	qrCodeService    *services.QRCodeService
}

func NewHandler(
	cfg config.Config,
	logger *slog.Logger,
	db *gorm.DB,
	scanService *services.ScanService,
	dashboardService *services.DashboardService,
	qrCodeService *services.QRCodeService,
) *Handler {
	return &Handler{
		cfg:              cfg,
		logger:           logger,
		db:               db,
		scanService:      scanService,
		dashboardService: dashboardService,
		qrCodeService:    qrCodeService,
	}
}
