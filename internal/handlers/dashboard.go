package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ShowDashboardStats(c *gin.Context) {
	summary, err := h.dashboardService.Summary(c.Request.Context(), creatorID(c))
	if err != nil {
		h.logger.Error("Failed to build dashboard summary", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build dashboard"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *Handler) ShowDashboardAnalytics(c *gin.Context) {
	report, err := h.dashboardService.Analytics(c.Request.Context(), creatorID(c))
	if err != nil {
		h.logger.Error("Failed to build dashboard analytics", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build analytics"})
		return
	}

	c.JSON(http.StatusOK, report)
}
