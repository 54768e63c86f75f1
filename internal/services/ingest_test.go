package services

import (
	"context"
	"testing"

	"qrpulse/internal/models"
	"qrpulse/internal/repository"

	"github.com/stretchr/testify/assert"
)

func TestTrackScan(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing identifiers are rejected before any write", func(t *testing.T) {
		db := setupTestDB(t)
		service := NewScanService(newStore(db), testLogger(), stubGeo{}, stubClassifier{})

		_, _, err := service.TrackScan(ctx, TrackScanInput{Fingerprint: "f1"})
		assert.ErrorIs(t, err, ErrMissingScanIdentifiers)

		_, _, err = service.TrackScan(ctx, TrackScanInput{QRID: "q1"})
		assert.ErrorIs(t, err, ErrMissingScanIdentifiers)

		var count int64
		db.Model(&models.Scan{}).Count(&count)
		assert.Zero(t, count)
	})

	t.Run("Unknown code is not-found", func(t *testing.T) {
		db := setupTestDB(t)
		service := NewScanService(newStore(db), testLogger(), stubGeo{}, stubClassifier{})

		_, _, err := service.TrackScan(ctx, TrackScanInput{QRID: "ghost", Fingerprint: "f1"})
		assert.ErrorIs(t, err, repository.ErrQRCodeNotFound)
	})

	t.Run("First scan is unique, second is not", func(t *testing.T) {
		db := setupTestDB(t)
		seedCode(t, db, "q1", "creator-1")
		service := NewScanService(newStore(db), testLogger(), stubGeo{}, stubClassifier{})

		_, isUnique, err := service.TrackScan(ctx, TrackScanInput{QRID: "q1", Fingerprint: "f1"})
		assert.NoError(t, err)
		assert.True(t, isUnique)

		_, isUnique, err = service.TrackScan(ctx, TrackScanInput{QRID: "q1", Fingerprint: "f1"})
		assert.NoError(t, err)
		assert.False(t, isUnique)

		var code models.QRCode
		db.First(&code, "id = ?", "q1")
		assert.Equal(t, int64(2), code.TotalScans)
		assert.Equal(t, int64(1), code.UniqueScans)
	})

	t.Run("Resolved geo and device land on the event", func(t *testing.T) {
		db := setupTestDB(t)
		seedCode(t, db, "q1", "creator-1")

		geo := stubGeo{loc: Location{
			Country:  strPtr("Germany"),
			Region:   strPtr("Bavaria"),
			City:     strPtr("Munich"),
			Latitude: floatPtr(48.13), Longitude: floatPtr(11.58),
		}}
		ua := stubClassifier{info: DeviceInfo{DeviceType: "Mobile", OS: "iOS", Browser: "Safari 17"}}
		service := NewScanService(newStore(db), testLogger(), geo, ua)

		scan, _, err := service.TrackScan(ctx, TrackScanInput{
			QRID:        "q1",
			Fingerprint: "f1",
			UserAgent:   "some agent",
			IPAddress:   "1.2.3.4",
		})
		assert.NoError(t, err)
		assert.Equal(t, "Germany", *scan.Country)
		assert.Equal(t, "Bavaria", *scan.Region)
		assert.Equal(t, "Munich", *scan.City)
		assert.Equal(t, 48.13, *scan.Latitude)
		assert.Equal(t, "Mobile", scan.DeviceType)
		assert.Equal(t, "Safari 17", scan.Browser)
		assert.Equal(t, "1.2.3.4", scan.IPAddress)
	})

	t.Run("Explicit coordinates override the resolver", func(t *testing.T) {
		db := setupTestDB(t)
		seedCode(t, db, "q1", "creator-1")

		geo := stubGeo{loc: Location{Latitude: floatPtr(1), Longitude: floatPtr(2)}}
		service := NewScanService(newStore(db), testLogger(), geo, stubClassifier{})

		scan, _, err := service.TrackScan(ctx, TrackScanInput{
			QRID:        "q1",
			Fingerprint: "f1",
			Lat:         floatPtr(52.52),
			Lon:         floatPtr(13.4),
		})
		assert.NoError(t, err)
		assert.Equal(t, 52.52, *scan.Latitude)
		assert.Equal(t, 13.4, *scan.Longitude)
	})

	t.Run("Failed resolution leaves geography absent", func(t *testing.T) {
		db := setupTestDB(t)
		seedCode(t, db, "q1", "creator-1")
		service := NewScanService(newStore(db), testLogger(), stubGeo{}, stubClassifier{info: DeviceInfo{DeviceType: "Unknown", OS: "Unknown", Browser: "Unknown"}})

		scan, isUnique, err := service.TrackScan(ctx, TrackScanInput{QRID: "q1", Fingerprint: "f1"})
		assert.NoError(t, err)
		assert.True(t, isUnique)
		assert.Nil(t, scan.Country)
		assert.Nil(t, scan.Region)
		assert.Nil(t, scan.City)
		assert.Nil(t, scan.Latitude)
	})
}
