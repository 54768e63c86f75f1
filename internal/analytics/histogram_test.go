package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)

func TestDailyHistogram(t *testing.T) {
	t.Run("Empty input is zero-filled to window length", func(t *testing.T) {
		hist := DailyHistogram(nil, testNow, 30)

		assert.Len(t, hist, 30)
		for _, day := range hist {
			assert.Zero(t, day.Scans)
		}
		assert.Equal(t, "2025-05-17", hist[0].Date)
		assert.Equal(t, "2025-06-15", hist[29].Date)
	})

	t.Run("Counts land on their calendar day", func(t *testing.T) {
		times := []time.Time{
			time.Date(2025, 6, 15, 0, 0, 1, 0, time.UTC),
			time.Date(2025, 6, 15, 23, 59, 59, 0, time.UTC),
			time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC),
		}
		hist := DailyHistogram(times, testNow, 7)

		assert.Len(t, hist, 7)
		assert.Equal(t, DayCount{Date: "2025-06-15", Scans: 2}, hist[6])
		assert.Equal(t, DayCount{Date: "2025-06-10", Scans: 1}, hist[1])
	})

	t.Run("Events outside the window are dropped", func(t *testing.T) {
		times := []time.Time{
			time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		}
		hist := DailyHistogram(times, testNow, 7)

		var total int64
		for _, day := range hist {
			total += day.Scans
		}
		assert.Zero(t, total)
	})

	t.Run("Deterministic for fixed now", func(t *testing.T) {
		times := []time.Time{testNow.Add(-2 * time.Hour), testNow.Add(-26 * time.Hour)}
		first := DailyHistogram(times, testNow, 30)
		second := DailyHistogram(times, testNow, 30)

		assert.Equal(t, first, second)
	})
}

func TestHourOfDayHistogram(t *testing.T) {
	t.Run("24 buckets with padded labels", func(t *testing.T) {
		hist := HourOfDayHistogram(nil)

		assert.Len(t, hist, 24)
		assert.Equal(t, "00:00", hist[0].Hour)
		assert.Equal(t, "09:00", hist[9].Hour)
		assert.Equal(t, "23:00", hist[23].Hour)
	})

	t.Run("Aggregates across dates", func(t *testing.T) {
		times := []time.Time{
			time.Date(2025, 6, 1, 9, 15, 0, 0, time.UTC),
			time.Date(2025, 6, 14, 9, 45, 0, 0, time.UTC),
			time.Date(2024, 1, 1, 23, 0, 0, 0, time.UTC),
		}
		hist := HourOfDayHistogram(times)

		assert.Equal(t, int64(2), hist[9].Scans)
		assert.Equal(t, int64(1), hist[23].Scans)
	})
}

func TestTrailingHourlyHistogram(t *testing.T) {
	t.Run("Window ends at now's hour", func(t *testing.T) {
		hist := TrailingHourlyHistogram(nil, testNow)

		assert.Len(t, hist, 24)
		assert.Equal(t, "15:00", hist[0].Hour) // 23h before 14:00
		assert.Equal(t, "14:00", hist[23].Hour)
	})

	t.Run("Only trailing 24 hours are counted", func(t *testing.T) {
		times := []time.Time{
			testNow.Add(-30 * time.Minute), // newest bucket
			testNow.Add(-23 * time.Hour),   // oldest bucket
			testNow.Add(-25 * time.Hour),   // before the window
			testNow.Add(time.Hour),         // after the window
		}
		hist := TrailingHourlyHistogram(times, testNow)

		assert.Equal(t, int64(1), hist[23].Scans)
		assert.Equal(t, int64(1), hist[0].Scans)

		var total int64
		for _, bucket := range hist {
			total += bucket.Scans
		}
		assert.Equal(t, int64(2), total)
	})
}
