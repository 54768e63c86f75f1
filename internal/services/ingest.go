package services

import (
	"context"
	"log/slog"

	"qrpulse/internal/models"
	"qrpulse/internal/repository"
)

// TrackScanInput is everything the boundary hands us for one scan. Lat/Lon
// are the client's own reading and take precedence over whatever the geo
// resolver comes up with.
type TrackScanInput struct {
	QRID        string
	Fingerprint string
	UserAgent   string
	IPAddress   string
	Lat         *float64
	Lon         *float64
}

// ScanService is the ingestion path: validate, enrich, and hand the store one
// atomic write. Enrichment failures degrade to absent values; only missing
// identifiers or store failures reach the caller.
type ScanService struct {
	store      repository.ScanStore
	logger     *slog.Logger
	geo        GeoResolver
	classifier UAClassifier
}

func NewScanService(store repository.ScanStore, logger *slog.Logger, geo GeoResolver, classifier UAClassifier) *ScanService {
	return &ScanService{
		store:      store,
		logger:     logger,
		geo:        geo,
		classifier: classifier,
	}
}

func (s *ScanService) TrackScan(ctx context.Context, input TrackScanInput) (*models.Scan, bool, error) {
	if input.QRID == "" || input.Fingerprint == "" {
		return nil, false, ErrMissingScanIdentifiers
	}

	location := s.geo.Resolve(input.IPAddress)
	device := s.classifier.Classify(input.UserAgent)

	scan := &models.Scan{
		QRID:        input.QRID,
		Fingerprint: input.Fingerprint,
		UserAgent:   input.UserAgent,
		IPAddress:   input.IPAddress,
		Country:     location.Country,
		Region:      location.Region,
		City:        location.City,
		Latitude:    location.Latitude,
		Longitude:   location.Longitude,
		DeviceType:  device.DeviceType,
		OS:          device.OS,
		Browser:     device.Browser,
	}
	if input.Lat != nil {
		scan.Latitude = input.Lat
	}
	if input.Lon != nil {
		scan.Longitude = input.Lon
	}

	isUnique, err := s.store.RecordScan(ctx, scan)
	if err != nil {
		return nil, false, err
	}

	s.logger.Debug("Scan recorded", "qr_id", scan.QRID, "unique", isUnique)
	return scan, isUnique, nil
}
