package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentage(t *testing.T) {
	assert.Equal(t, 75, Percentage(3, 4))
	assert.Equal(t, 25, Percentage(1, 4))
	assert.Equal(t, 33, Percentage(1, 3))
	assert.Equal(t, 67, Percentage(2, 3))
	assert.Equal(t, 0, Percentage(5, 0))
	assert.Equal(t, 100, Percentage(4, 4))
}

func TestWithPercentages(t *testing.T) {
	t.Run("Device split", func(t *testing.T) {
		result := WithPercentages([]LabelCount{
			{Label: "Mobile", Count: 3},
			{Label: "Desktop", Count: 1},
		})

		assert.Equal(t, []LabelCount{
			{Label: "Mobile", Count: 3, Percentage: 75},
			{Label: "Desktop", Count: 1, Percentage: 25},
		}, result)
	})

	t.Run("Blank labels fold into Unknown", func(t *testing.T) {
		result := WithPercentages([]LabelCount{
			{Label: "", Count: 2},
			{Label: "Europe", Count: 2},
		})

		assert.Len(t, result, 2)
		assert.Equal(t, LabelCount{Label: "Europe", Count: 2, Percentage: 50}, result[0])
		assert.Equal(t, LabelCount{Label: UnknownLabel, Count: 2, Percentage: 50}, result[1])
	})

	t.Run("Counts sum to total and percentages to ~100", func(t *testing.T) {
		result := WithPercentages([]LabelCount{
			{Label: "a", Count: 1},
			{Label: "b", Count: 1},
			{Label: "c", Count: 1},
		})

		var count int64
		pct := 0
		for _, b := range result {
			count += b.Count
			pct += b.Percentage
		}
		assert.Equal(t, int64(3), count)
		assert.InDelta(t, 100, pct, 2)
	})

	t.Run("Empty input", func(t *testing.T) {
		result := WithPercentages(nil)
		assert.Empty(t, result)
	})
}

func TestTopK(t *testing.T) {
	buckets := []LabelCount{
		{Label: "c", Count: 1},
		{Label: "a", Count: 5},
		{Label: "b", Count: 3},
	}

	t.Run("Sorted descending and truncated", func(t *testing.T) {
		top := TopK(buckets, 2)

		assert.Len(t, top, 2)
		assert.Equal(t, "a", top[0].Label)
		assert.Equal(t, "b", top[1].Label)
	})

	t.Run("k larger than input keeps everything", func(t *testing.T) {
		assert.Len(t, TopK(buckets, 10), 3)
	})

	t.Run("Input is not mutated", func(t *testing.T) {
		TopK(buckets, 1)
		assert.Equal(t, "c", buckets[0].Label)
	})
}
