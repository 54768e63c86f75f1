package services

import (
	"context"
	"testing"
	"time"

	"qrpulse/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestAuditService(t *testing.T) {
	t.Run("Logged actions are persisted by the worker", func(t *testing.T) {
		db := setupTestDB(t)
		service := NewAuditService(db, testLogger())

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go service.Start(ctx)

		creator := "creator-1"
		service.LogAction(&creator, "CREATE_QRCODE", "q1", map[string]interface{}{"name": "Menu"}, "1.2.3.4")

		assert.Eventually(t, func() bool {
			var count int64
			db.Model(&models.AuditLog{}).Count(&count)
			return count == 1
		}, 2*time.Second, 10*time.Millisecond)

		var entry models.AuditLog
		db.First(&entry)
		assert.Equal(t, "CREATE_QRCODE", entry.Action)
		assert.Equal(t, "q1", entry.EntityID)
		assert.Contains(t, entry.Details, "Menu")
	})

	t.Run("Full channel drops instead of blocking", func(t *testing.T) {
		db := setupTestDB(t)
		service := NewAuditService(db, testLogger())

		// No worker running: fill the channel past its buffer.
		for i := 0; i < 150; i++ {
			service.LogAction(nil, "DELETE_QRCODE", "q", nil, "")
		}
		// Reaching here without deadlock is the assertion.
	})
}
