package handlers

import (
	"errors"
	"net/http"

	"qrpulse/internal/repository"
	"qrpulse/internal/services"

	"github.com/gin-gonic/gin"
)

type CreateQRCodeRequest struct {
	Name      string `json:"name" binding:"required"`
	TargetURL string `json:"target_url" binding:"required,url"`
}

type UpdateQRCodeRequest struct {
	Name      *string `json:"name,omitempty"`
	TargetURL *string `json:"target_url,omitempty" binding:"omitempty,url"`
}

func (h *Handler) CreateQRCode(c *gin.Context) {
	var req CreateQRCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	code, err := h.qrCodeService.Create(c.Request.Context(), services.CreateQRCodeDTO{
		CreatorID: creatorID(c),
		Name:      req.Name,
		TargetURL: req.TargetURL,
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		h.logger.Error("Failed to create qr code", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create qr code"})
		return
	}

	c.JSON(http.StatusCreated, code)
}

func (h *Handler) UpdateQRCode(c *gin.Context) {
	var req UpdateQRCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	code, err := h.qrCodeService.Update(c.Request.Context(), c.Param("id"), services.UpdateQRCodeDTO{
		Name:      req.Name,
		TargetURL: req.TargetURL,
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		h.respondQRCodeError(c, err, "failed to update qr code")
		return
	}

	c.JSON(http.StatusOK, code)
}

func (h *Handler) DeleteQRCode(c *gin.Context) {
	if err := h.qrCodeService.Delete(c.Request.Context(), c.Param("id"), c.ClientIP()); err != nil {
		h.respondQRCodeError(c, err, "failed to delete qr code")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "qr code deleted"})
}

func (h *Handler) ListQRCodes(c *gin.Context) {
	codes, err := h.qrCodeService.ListByCreator(c.Request.Context(), creatorID(c))
	if err != nil {
		h.logger.Error("Failed to list qr codes", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list qr codes"})
		return
	}

	c.JSON(http.StatusOK, codes)
}

func (h *Handler) ShowQRCodeReport(c *gin.Context) {
	report, err := h.dashboardService.CodeReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondQRCodeError(c, err, "failed to build qr code report")
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *Handler) respondQRCodeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrMissingQRCodeID):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrQRCodeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "qr code not found"})
	default:
		h.logger.Error(fallback, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
