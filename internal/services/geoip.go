package services

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"qrpulse/internal/config"

	"github.com/oschwald/geoip2-golang"
)

// GeoIPService resolves scan source IPs against a local MaxMind City
// database. A missing or stale database never fails a lookup; callers just
// get an empty Location.
type GeoIPService struct {
	cfg       config.Config
	logger    *slog.Logger
	geoReader *geoip2.Reader
	geoLock   sync.RWMutex
}

func NewGeoIPService(cfg config.Config, logger *slog.Logger) *GeoIPService {
	return &GeoIPService{
		cfg:    cfg,
		logger: logger,
	}
}

func (s *GeoIPService) Init() {
	dbPath := s.cfg.GeoIPDBPath

	if s.cfg.MaxMindAccountID != "" && s.cfg.MaxMindLicenseKey != "" {
		dbDir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			s.logger.Error("GeoIP: Failed to create directory", "dir", dbDir, "error", err)
			return
		}

		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			s.logger.Info("GeoIP: Database missing, downloading...")
			if err := s.updateGeoDB(); err != nil {
				s.logger.Error("GeoIP: Initial download failed", "error", err)
			}
		}
	}

	s.reloadReader(dbPath)
}

func (s *GeoIPService) StartUpdater(ctx context.Context) {
	if s.cfg.MaxMindAccountID == "" {
		return
	}

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.logger.Info("GeoIP: Running scheduled update...")
			if err := s.updateGeoDB(); err != nil {
				s.logger.Error("GeoIP: Update failed", "error", err)
				continue
			}
			s.reloadReader(s.cfg.GeoIPDBPath)
		case <-ctx.Done():
			s.logger.Info("GeoIP: Updater stopping")
			return
		}
	}
}

func (s *GeoIPService) updateGeoDB() error {
	dbDir := filepath.Dir(s.cfg.GeoIPDBPath)
	confPath := filepath.Join(dbDir, "GeoIP.conf")

	content := fmt.Sprintf("AccountID %s\nLicenseKey %s\nEditionIDs %s\nDatabaseDirectory %s\n",
		s.cfg.MaxMindAccountID, s.cfg.MaxMindLicenseKey, s.cfg.MaxMindEditionIDs, dbDir)

	if err := os.WriteFile(confPath, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write GeoIP.conf: %w", err)
	}
	defer os.Remove(confPath)

	cmd := exec.Command("geoipupdate", "-v", "-f", confPath, "-d", dbDir)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("geoipupdate failed: %w, output: %s", err, string(output))
	}

	s.logger.Info("GeoIP: Database updated successfully")
	return nil
}

func (s *GeoIPService) reloadReader(path string) {
	s.geoLock.Lock()
	defer s.geoLock.Unlock()

	if s.geoReader != nil {
		s.geoReader.Close()
	}

	reader, err := geoip2.Open(path)
	if err != nil {
		s.logger.Warn("GeoIP: Failed to open database, lookups disabled", "path", path, "error", err)
		s.geoReader = nil
		return
	}
	s.geoReader = reader

	meta := reader.Metadata()
	s.logger.Info("GeoIP: Loaded database", "epoch", meta.BuildEpoch)
}

// Resolve implements GeoResolver. Every failure mode maps to an empty
// Location so ingestion proceeds with the geography simply absent.
func (s *GeoIPService) Resolve(ipStr string) Location {
	if ipStr == "127.0.0.1" || ipStr == "::1" {
		return Location{}
	}

	s.geoLock.RLock()
	reader := s.geoReader
	s.geoLock.RUnlock()

	if reader == nil {
		return Location{}
	}

	ip := net.ParseIP(ipStr)
	if ip == nil {
		return Location{}
	}

	record, err := reader.City(ip)
	if err != nil {
		s.logger.Error("GeoIP: Lookup error", "ip", ipStr, "error", err)
		return Location{}
	}

	var loc Location

	country := record.Country.Names["en"]
	if country == "" {
		country = record.Country.IsoCode
	}
	if country != "" {
		loc.Country = &country
	}

	if len(record.Subdivisions) > 0 {
		if name := record.Subdivisions[0].Names["en"]; name != "" {
			loc.Region = &name
		}
	}

	if name := record.City.Names["en"]; name != "" {
		loc.City = &name
	}

	if record.Location.Latitude != 0 || record.Location.Longitude != 0 {
		lat, lon := record.Location.Latitude, record.Location.Longitude
		loc.Latitude = &lat
		loc.Longitude = &lon
	}

	return loc
}
