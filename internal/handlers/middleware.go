package handlers

import (
	"net/http"

	"qrpulse/internal/models"
	"qrpulse/internal/services"

	"github.com/gin-gonic/gin"
)

const creatorIDKey = "creator_id"

// APIKeyAuth resolves the X-API-Key header to a creator and scopes the
// request to it. Account lifecycle lives elsewhere; this is the whole auth
// surface of the service.
func (h *Handler) APIKeyAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader("X-API-Key")
		if apiKey == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "API Key required"})
			c.Abort()
			return
		}

		var creator models.Creator
		if err := h.db.Where("api_key = ?", apiKey).First(&creator).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid API Key"})
			c.Abort()
			return
		}

		c.Set(creatorIDKey, creator.ID)
		c.Next()
	}
}

func (h *Handler) RateLimitMiddleware(limiter *services.IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		l := limiter.GetLimiter(ip)
		if !l.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			return
		}
		c.Next()
	}
}

func creatorID(c *gin.Context) string {
	if val, exists := c.Get(creatorIDKey); exists {
		if id, ok := val.(string); ok {
			return id
		}
	}
	return ""
}
