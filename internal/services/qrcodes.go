package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"qrpulse/internal/models"
	"qrpulse/internal/repository"
	"qrpulse/pkg/utils"

	"github.com/redis/go-redis/v9"
)

const scanSettingsTTL = 10 * time.Minute

type CreateQRCodeDTO struct {
	CreatorID string
	Name      string
	TargetURL string
	IPAddress string // for the audit trail
}

type UpdateQRCodeDTO struct {
	Name      *string
	TargetURL *string
	IPAddress string
}

// ScanSettings is the slim payload a scanning client fetches before being
// redirected: just the code's identity and where it points.
type ScanSettings struct {
	ID        string `json:"id"`
	TargetURL string `json:"target_url"`
}

// QRCodeService owns code metadata. Counters are off limits here; they only
// move through the ingestion transaction.
type QRCodeService struct {
	store  repository.ScanStore
	rdb    *redis.Client
	logger *slog.Logger
	audit  *AuditService
}

func NewQRCodeService(store repository.ScanStore, rdb *redis.Client, logger *slog.Logger, audit *AuditService) *QRCodeService {
	return &QRCodeService{
		store:  store,
		rdb:    rdb,
		logger: logger,
		audit:  audit,
	}
}

func (s *QRCodeService) Create(ctx context.Context, dto CreateQRCodeDTO) (*models.QRCode, error) {
	code := &models.QRCode{
		ID:        utils.NewID(),
		CreatorID: dto.CreatorID,
		Name:      dto.Name,
		TargetURL: dto.TargetURL,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.store.CreateQRCode(ctx, code); err != nil {
		return nil, err
	}

	s.audit.LogAction(&dto.CreatorID, "CREATE_QRCODE", code.ID, map[string]interface{}{
		"name":       dto.Name,
		"target_url": dto.TargetURL,
	}, dto.IPAddress)

	return code, nil
}

func (s *QRCodeService) Update(ctx context.Context, id string, dto UpdateQRCodeDTO) (*models.QRCode, error) {
	if id == "" {
		return nil, ErrMissingQRCodeID
	}

	code, err := s.store.UpdateQRCode(ctx, id, repository.QRCodeUpdate{
		Name:      dto.Name,
		TargetURL: dto.TargetURL,
	})
	if err != nil {
		return nil, err
	}

	s.invalidateSettings(ctx, id)
	s.audit.LogAction(&code.CreatorID, "UPDATE_QRCODE", id, map[string]interface{}{
		"name":       dto.Name,
		"target_url": dto.TargetURL,
	}, dto.IPAddress)

	return code, nil
}

func (s *QRCodeService) Delete(ctx context.Context, id string, ip string) error {
	if id == "" {
		return ErrMissingQRCodeID
	}

	if err := s.store.DeleteQRCode(ctx, id); err != nil {
		return err
	}

	s.invalidateSettings(ctx, id)
	s.audit.LogAction(nil, "DELETE_QRCODE", id, nil, ip)
	return nil
}

func (s *QRCodeService) ListByCreator(ctx context.Context, creatorID string) ([]models.QRCode, error) {
	return s.store.ListQRCodes(ctx, repository.QRCodeFilter{CreatorID: creatorID}, repository.OrderByCreatedAtDesc, 0)
}

// ScanSettings resolves a code to its target through the cache. This is the
// hot path a phone hits on every scan, so cache misses are backfilled.
func (s *QRCodeService) ScanSettings(ctx context.Context, id string) (*ScanSettings, error) {
	if id == "" {
		return nil, ErrMissingQRCodeID
	}

	if s.rdb != nil {
		if val, err := s.rdb.Get(ctx, settingsKey(id)).Result(); err == nil {
			var settings ScanSettings
			if err := json.Unmarshal([]byte(val), &settings); err == nil {
				return &settings, nil
			}
		}
	}

	code, err := s.store.FindQRCode(ctx, id)
	if err != nil {
		return nil, err
	}

	settings := &ScanSettings{ID: code.ID, TargetURL: code.TargetURL}
	if s.rdb != nil {
		if data, err := json.Marshal(settings); err == nil {
			if err := s.rdb.Set(ctx, settingsKey(id), data, scanSettingsTTL).Err(); err != nil {
				s.logger.Warn("Failed to cache scan settings", "qr_id", id, "error", err)
			}
		}
	}

	return settings, nil
}

func (s *QRCodeService) invalidateSettings(ctx context.Context, id string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, settingsKey(id)).Err(); err != nil {
		s.logger.Warn("Failed to invalidate scan settings cache", "qr_id", id, "error", err)
	}
}

func settingsKey(id string) string {
	return "qr:" + id
}
