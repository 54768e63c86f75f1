// Package analytics holds the pure rollup arithmetic behind the dashboard:
// calendar bucketing, categorical group-counts with integer percentages, and
// period-over-period deltas. Everything in here is deterministic for a given
// input set and reference instant; "now" is always a parameter, never read
// from the wall clock.
package analytics

import (
	"time"
)

// Reporting buckets use a fixed timezone so a scan lands on the same calendar
// day no matter which node aggregates it.
var reportingZone = time.UTC

const dayFormat = "2006-01-02"

type DayCount struct {
	Date  string `json:"date"`
	Scans int64  `json:"scans"`
}

type HourCount struct {
	Hour  string `json:"hour"`
	Scans int64  `json:"scans"`
}

// DailyHistogram buckets timestamps into the trailing windowDays calendar
// days ending on now's day, inclusive, ascending. Every day of the window is
// present, zero-filled, so the result length always equals windowDays.
func DailyHistogram(times []time.Time, now time.Time, windowDays int) []DayCount {
	counts := make(map[string]int64, len(times))
	for _, t := range times {
		counts[t.In(reportingZone).Format(dayFormat)]++
	}

	out := make([]DayCount, 0, windowDays)
	today := now.In(reportingZone)
	for i := windowDays - 1; i >= 0; i-- {
		date := today.AddDate(0, 0, -i).Format(dayFormat)
		out = append(out, DayCount{Date: date, Scans: counts[date]})
	}
	return out
}

func hourLabel(hour int) string {
	return time.Date(0, 1, 1, hour, 0, 0, 0, time.UTC).Format("15:04")
}

// HourOfDayHistogram aggregates by hour of day across the full input,
// regardless of date. 24 buckets labeled "00:00".."23:00", always.
func HourOfDayHistogram(times []time.Time) []HourCount {
	var counts [24]int64
	for _, t := range times {
		counts[t.In(reportingZone).Hour()]++
	}

	out := make([]HourCount, 24)
	for h := 0; h < 24; h++ {
		out[h] = HourCount{Hour: hourLabel(h), Scans: counts[h]}
	}
	return out
}

// TrailingHourlyHistogram buckets the trailing 24 hours ending at now into
// hourly slots labeled by wall-clock hour, oldest first. Timestamps outside
// the window are dropped.
func TrailingHourlyHistogram(times []time.Time, now time.Time) []HourCount {
	end := now.In(reportingZone).Truncate(time.Hour)
	start := end.Add(-23 * time.Hour)

	var counts [24]int64
	for _, t := range times {
		slot := t.In(reportingZone).Truncate(time.Hour)
		if slot.Before(start) || slot.After(end) {
			continue
		}
		counts[int(slot.Sub(start).Hours())]++
	}

	out := make([]HourCount, 24)
	for i := 0; i < 24; i++ {
		out[i] = HourCount{Hour: hourLabel(start.Add(time.Duration(i) * time.Hour).Hour()), Scans: counts[i]}
	}
	return out
}
