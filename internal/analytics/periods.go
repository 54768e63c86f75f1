package analytics

// Comparison is a headline metric with its movement against the preceding
// period of the same length.
type Comparison struct {
	Count           int64 `json:"count"`
	Delta           int64 `json:"delta,omitempty"`
	DeltaPercentage int   `json:"diff_percentage"`
}

// Compare computes current minus previous and the percent change relative to
// previous. A zero previous period reports 0 rather than an undefined ratio.
func Compare(current, previous int64) Comparison {
	return Comparison{
		Count:           current,
		Delta:           current - previous,
		DeltaPercentage: Percentage(current-previous, previous),
	}
}

// ShareOfTotal reports how much of the all-time count the recent period
// accounts for. This intentionally measures "share of total", not "percent
// change"; the monthly scan and unique-visitor cards have always shown the
// ratio-of-subset figure.
func ShareOfTotal(recent, total int64) Comparison {
	return Comparison{
		Count:           total,
		DeltaPercentage: Percentage(recent, total),
	}
}
