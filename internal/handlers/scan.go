package handlers

import (
	"errors"
	"net/http"

	"qrpulse/internal/repository"
	"qrpulse/internal/services"

	"github.com/gin-gonic/gin"
)

type TrackScanRequest struct {
	QRID        string   `json:"qr_id" binding:"required"`
	Fingerprint string   `json:"fingerprint" binding:"required"`
	Lat         *float64 `json:"lat,omitempty"`
	Lon         *float64 `json:"lon,omitempty"`
}

// TrackScan ingests one scan event. The user agent and IP come off the
// request itself, not the body.
func (h *Handler) TrackScan(c *gin.Context) {
	var req TrackScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	scan, isUnique, err := h.scanService.TrackScan(c.Request.Context(), services.TrackScanInput{
		QRID:        req.QRID,
		Fingerprint: req.Fingerprint,
		UserAgent:   c.Request.UserAgent(),
		IPAddress:   c.ClientIP(),
		Lat:         req.Lat,
		Lon:         req.Lon,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingScanIdentifiers):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, repository.ErrQRCodeNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			h.logger.Error("Failed to track scan", "qr_id", req.QRID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record scan"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"is_unique": isUnique,
		"scan":      scan,
	})
}

// ScanSettings is the public lookup a scanning client performs to find the
// target URL. Served from cache when Redis is around.
func (h *Handler) ScanSettings(c *gin.Context) {
	settings, err := h.qrCodeService.ScanSettings(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrQRCodeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "qr code not found"})
			return
		}
		h.logger.Error("Failed to load scan settings", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load scan settings"})
		return
	}

	c.JSON(http.StatusOK, settings)
}
