package handlers

import (
	"qrpulse/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *Handler) SetupRouter(rateLimiter *services.IPRateLimiter) *gin.Engine {
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})

	// Public scan path: what a phone hits when it resolves a code.
	public := r.Group("/api/v1")
	if rateLimiter != nil {
		public.Use(h.RateLimitMiddleware(rateLimiter))
	}
	{
		public.POST("/scan", h.TrackScan)
		public.GET("/qrcodes/:id/scan-settings", h.ScanSettings)
	}

	// Creator-scoped dashboard and management API.
	authorized := r.Group("/api/v1")
	authorized.Use(h.APIKeyAuth())
	{
		authorized.GET("/dashboard/stats", h.ShowDashboardStats)
		authorized.GET("/dashboard/analytics", h.ShowDashboardAnalytics)
		authorized.GET("/qrcodes", h.ListQRCodes)
		authorized.POST("/qrcodes", h.CreateQRCode)
		authorized.PATCH("/qrcodes/:id", h.UpdateQRCode)
		authorized.DELETE("/qrcodes/:id", h.DeleteQRCode)
		authorized.GET("/qrcodes/:id/report", h.ShowQRCodeReport)
	}

	return r
}
