package analytics

import (
	"math"
	"sort"
)

// UnknownLabel stands in for absent categorical values so they are counted
// rather than dropped.
const UnknownLabel = "Unknown"

type LabelCount struct {
	Label      string `json:"label"`
	Count      int64  `json:"count"`
	Percentage int    `json:"percentage"`
}

// Percentage is the integer share of part in total, rounded half away from
// zero. Zero total yields zero rather than dividing.
func Percentage(part, total int64) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(total)))
}

// WithPercentages fills in each bucket's share of the summed counts. Blank
// labels are folded into UnknownLabel first.
func WithPercentages(buckets []LabelCount) []LabelCount {
	merged := make([]LabelCount, 0, len(buckets))
	unknown := int64(0)
	var total int64
	for _, b := range buckets {
		total += b.Count
		if b.Label == "" {
			unknown += b.Count
			continue
		}
		merged = append(merged, b)
	}
	if unknown > 0 {
		merged = append(merged, LabelCount{Label: UnknownLabel, Count: unknown})
	}

	for i := range merged {
		merged[i].Percentage = Percentage(merged[i].Count, total)
	}
	return merged
}

// TopK sorts count-descending (stable) and keeps the first k buckets.
// k <= 0 keeps everything.
func TopK(buckets []LabelCount, k int) []LabelCount {
	sorted := make([]LabelCount, len(buckets))
	copy(sorted, buckets)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Count > sorted[j].Count
	})
	if k > 0 && len(sorted) > k {
		sorted = sorted[:k]
	}
	return sorted
}
