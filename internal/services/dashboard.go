package services

import (
	"context"
	"log/slog"
	"time"

	"qrpulse/internal/analytics"
	"qrpulse/internal/models"
	"qrpulse/internal/repository"
)

type RecentScan struct {
	ID        uint      `json:"id"`
	Location  string    `json:"location"`
	Device    string    `json:"device"`
	Timestamp time.Time `json:"timestamp"`
}

type TopQRCode struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	TotalScans int64  `json:"total_scans"`
}

// SummaryReport is the lightweight dashboard payload.
type SummaryReport struct {
	TotalQRCodes   analytics.Comparison   `json:"total_qr_codes"`
	TotalScans     analytics.Comparison   `json:"total_scans"`
	UniqueVisitors analytics.Comparison   `json:"unique_visitors"`
	ScansLast7Days analytics.Comparison   `json:"scans_last_7_days"`
	ScanActivity   []analytics.DayCount   `json:"scan_activity"`
	RecentScans    []RecentScan           `json:"recent_scans"`
	TopQRCodes     []TopQRCode            `json:"top_qr_codes"`
	ScanByDevice   []analytics.LabelCount `json:"scan_by_device"`
	ScanByLocation []analytics.LabelCount `json:"scan_by_location"`
}

// AnalyticsReport is the deep variant: everything in the summary plus
// geography drill-downs, browser distribution and the trailing-24h series.
type AnalyticsReport struct {
	SummaryReport
	TopCountries        []analytics.LabelCount `json:"top_countries"`
	TopCities           []analytics.LabelCount `json:"top_cities"`
	BrowserDistribution []analytics.LabelCount `json:"browser_distribution"`
	ScansOverTime       []analytics.HourCount  `json:"scans_over_time"`
	Last24HrScans       analytics.Comparison   `json:"last_24hr_scans"`
}

// CodeReport aggregates the full event history of a single code.
type CodeReport struct {
	QRCode         *models.QRCode         `json:"qr_code"`
	TotalScans     int64                  `json:"total_scans"`
	ScanActivity   []analytics.DayCount   `json:"scan_activity"`
	ScansOverTime  []analytics.HourCount  `json:"scans_over_time"`
	ScanByDevice   []analytics.LabelCount `json:"scan_by_device"`
	ScanByLocation []analytics.LabelCount `json:"scan_by_location"`
	RecentScans    []RecentScan           `json:"recent_scans"`
}

const activityWindowDays = 30

// DashboardService builds read-only rollups. "Now" is read once per request
// so every histogram and delta in a response shares the same instant, and
// tests can pin it.
type DashboardService struct {
	store  repository.ScanStore
	logger *slog.Logger
	now    func() time.Time
}

func NewDashboardService(store repository.ScanStore, logger *slog.Logger) *DashboardService {
	return &DashboardService{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

func (s *DashboardService) Summary(ctx context.Context, creatorID string) (*SummaryReport, error) {
	return s.buildSummary(ctx, creatorID, s.now().UTC())
}

func (s *DashboardService) buildSummary(ctx context.Context, creatorID string, now time.Time) (*SummaryReport, error) {
	weekAgo := now.AddDate(0, 0, -7)
	twoWeeksAgo := now.AddDate(0, 0, -14)
	monthAgo := now.AddDate(0, 0, -activityWindowDays)
	scope := repository.ScanFilter{CreatorID: creatorID}

	totalCodes, err := s.store.CountQRCodes(ctx, repository.QRCodeFilter{CreatorID: creatorID})
	if err != nil {
		return nil, err
	}
	codesThisWeek, err := s.store.CountQRCodes(ctx, repository.QRCodeFilter{CreatorID: creatorID, CreatedSince: &weekAgo})
	if err != nil {
		return nil, err
	}

	totalScans, err := s.store.CountScans(ctx, scope)
	if err != nil {
		return nil, err
	}
	monthScans, err := s.store.CountScans(ctx, repository.ScanFilter{CreatorID: creatorID, Since: &monthAgo})
	if err != nil {
		return nil, err
	}
	uniqueVisitors, err := s.store.CountScans(ctx, repository.ScanFilter{CreatorID: creatorID, UniqueOnly: true})
	if err != nil {
		return nil, err
	}
	monthUnique, err := s.store.CountScans(ctx, repository.ScanFilter{CreatorID: creatorID, UniqueOnly: true, Since: &monthAgo})
	if err != nil {
		return nil, err
	}

	weekScans, err := s.store.CountScans(ctx, repository.ScanFilter{CreatorID: creatorID, Since: &weekAgo})
	if err != nil {
		return nil, err
	}
	prevWeekScans, err := s.store.CountScans(ctx, repository.ScanFilter{CreatorID: creatorID, Since: &twoWeeksAgo, Until: &weekAgo})
	if err != nil {
		return nil, err
	}

	activityTimes, err := s.store.ListScanTimes(ctx, repository.ScanFilter{CreatorID: creatorID, Since: &monthAgo})
	if err != nil {
		return nil, err
	}

	recent, err := s.recentScans(ctx, scope, 3)
	if err != nil {
		return nil, err
	}

	topCodes, err := s.store.ListQRCodes(ctx, repository.QRCodeFilter{CreatorID: creatorID}, repository.OrderByTotalScansDesc, 5)
	if err != nil {
		return nil, err
	}
	top := make([]TopQRCode, 0, len(topCodes))
	for _, c := range topCodes {
		top = append(top, TopQRCode{ID: c.ID, Name: c.Name, TotalScans: c.TotalScans})
	}

	byDevice, err := s.groupWithPercentages(ctx, repository.DimensionDeviceType, scope)
	if err != nil {
		return nil, err
	}
	byRegion, err := s.groupWithPercentages(ctx, repository.DimensionRegion, scope)
	if err != nil {
		return nil, err
	}

	return &SummaryReport{
		TotalQRCodes:   analytics.Compare(totalCodes, totalCodes-codesThisWeek),
		TotalScans:     analytics.ShareOfTotal(monthScans, totalScans),
		UniqueVisitors: analytics.ShareOfTotal(monthUnique, uniqueVisitors),
		ScansLast7Days: analytics.Compare(weekScans, prevWeekScans),
		ScanActivity:   analytics.DailyHistogram(activityTimes, now, activityWindowDays),
		RecentScans:    recent,
		TopQRCodes:     top,
		ScanByDevice:   byDevice,
		ScanByLocation: byRegion,
	}, nil
}

func (s *DashboardService) Analytics(ctx context.Context, creatorID string) (*AnalyticsReport, error) {
	now := s.now().UTC()
	scope := repository.ScanFilter{CreatorID: creatorID}

	summary, err := s.buildSummary(ctx, creatorID, now)
	if err != nil {
		return nil, err
	}

	countries, err := s.groupWithPercentages(ctx, repository.DimensionCountry, scope)
	if err != nil {
		return nil, err
	}
	cities, err := s.groupWithPercentages(ctx, repository.DimensionCity, scope)
	if err != nil {
		return nil, err
	}
	browsers, err := s.groupWithPercentages(ctx, repository.DimensionBrowser, scope)
	if err != nil {
		return nil, err
	}

	dayAgo := now.Add(-24 * time.Hour)
	recentTimes, err := s.store.ListScanTimes(ctx, repository.ScanFilter{CreatorID: creatorID, Since: &dayAgo})
	if err != nil {
		return nil, err
	}
	scansOverTime := analytics.TrailingHourlyHistogram(recentTimes, now)

	var last24 int64
	for _, bucket := range scansOverTime {
		last24 += bucket.Scans
	}

	return &AnalyticsReport{
		SummaryReport:       *summary,
		TopCountries:        analytics.TopK(countries, 10),
		TopCities:           analytics.TopK(cities, 10),
		BrowserDistribution: browsers,
		ScansOverTime:       scansOverTime,
		Last24HrScans: analytics.Comparison{
			Count:           last24,
			DeltaPercentage: analytics.Percentage(last24, summary.TotalScans.Count),
		},
	}, nil
}

func (s *DashboardService) CodeReport(ctx context.Context, qrID string) (*CodeReport, error) {
	now := s.now().UTC()

	code, err := s.store.FindQRCode(ctx, qrID)
	if err != nil {
		return nil, err
	}

	scope := repository.ScanFilter{QRID: qrID}
	times, err := s.store.ListScanTimes(ctx, scope)
	if err != nil {
		return nil, err
	}

	byDevice, err := s.groupWithPercentages(ctx, repository.DimensionDeviceType, scope)
	if err != nil {
		return nil, err
	}
	byRegion, err := s.groupWithPercentages(ctx, repository.DimensionRegion, scope)
	if err != nil {
		return nil, err
	}

	recent, err := s.recentScans(ctx, scope, 5)
	if err != nil {
		return nil, err
	}

	return &CodeReport{
		QRCode:         code,
		TotalScans:     int64(len(times)),
		ScanActivity:   analytics.DailyHistogram(times, now, activityWindowDays),
		ScansOverTime:  analytics.HourOfDayHistogram(times),
		ScanByDevice:   byDevice,
		ScanByLocation: byRegion,
		RecentScans:    recent,
	}, nil
}

func (s *DashboardService) groupWithPercentages(ctx context.Context, dim repository.Dimension, scope repository.ScanFilter) ([]analytics.LabelCount, error) {
	buckets, err := s.store.GroupScans(ctx, dim, scope)
	if err != nil {
		return nil, err
	}
	counts := make([]analytics.LabelCount, 0, len(buckets))
	for _, b := range buckets {
		counts = append(counts, analytics.LabelCount{Label: b.Label, Count: b.Count})
	}
	return analytics.WithPercentages(counts), nil
}

func (s *DashboardService) recentScans(ctx context.Context, scope repository.ScanFilter, limit int) ([]RecentScan, error) {
	scans, err := s.store.ListScans(ctx, scope, limit)
	if err != nil {
		return nil, err
	}

	recent := make([]RecentScan, 0, len(scans))
	for _, scan := range scans {
		location := analytics.UnknownLabel
		if scan.Region != nil && *scan.Region != "" {
			location = *scan.Region
		}
		device := scan.DeviceType
		if device == "" {
			device = analytics.UnknownLabel
		}
		recent = append(recent, RecentScan{
			ID:        scan.ID,
			Location:  location,
			Device:    device,
			Timestamp: scan.Timestamp,
		})
	}
	return recent, nil
}
