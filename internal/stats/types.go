package stats

import (
	"fmt"
	"strings"

	"flip-mcp/internal/comps"
)

// StatMode selects the central-tendency statistic used for ARV.
type StatMode string

const (
	StatMedian  StatMode = "median"
	StatAverage StatMode = "average"
)

// ParseStatMode accepts "median" or "average" (case-insensitive). Empty means median.
func ParseStatMode(s string) (StatMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "median":
		return StatMedian, nil
	case "average", "mean":
		return StatAverage, nil
	default:
		return "", fmt.Errorf("unknown stat mode %q (want median or average)", s)
	}
}

// BucketMode selects how time buckets partition comps.
type BucketMode string

const (
	BucketExclusive  BucketMode = "exclusive"
	BucketCumulative BucketMode = "cumulative"
)

// ParseBucketMode accepts "exclusive" or "cumulative" (case-insensitive). Empty means exclusive.
func ParseBucketMode(s string) (BucketMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "exclusive":
		return BucketExclusive, nil
	case "cumulative":
		return BucketCumulative, nil
	default:
		return "", fmt.Errorf("unknown bucket mode %q (want exclusive or cumulative)", s)
	}
}

// AggregateStatistics summarizes the active comps of a set.
// All numeric fields are zero when Count is zero.
type AggregateStatistics struct {
	MedianDaysOnMarket  float64 `json:"medianDom"`
	AverageDaysOnMarket float64 `json:"averageDom"`
	MedianPrice         float64 `json:"medianPrice"`
	AveragePrice        float64 `json:"averagePrice"`
	MedianPricePerSqft  float64 `json:"medianPricePerSqft"`
	AveragePricePerSqft float64 `json:"averagePricePerSqft"`
	Count               int     `json:"count"`
}

// PricePerSqft returns the price/sqft statistic selected by mode.
func (a AggregateStatistics) PricePerSqft(mode StatMode) float64 {
	if mode == StatAverage {
		return a.AveragePricePerSqft
	}
	return a.MedianPricePerSqft
}

// TimeBucket is a day-age window of comps with its own statistics.
type TimeBucket struct {
	Label   string                 `json:"label"`
	MinDays int                    `json:"minDays"` // exclusive lower bound
	MaxDays int                    `json:"maxDays"` // inclusive upper bound
	Comps   []comps.ComparableSale `json:"comps"`
	Stats   AggregateStatistics    `json:"stats"`
}

// Contains reports whether daysAgo falls inside the bucket's window.
func (b TimeBucket) Contains(daysAgo int) bool {
	return daysAgo > b.MinDays && daysAgo <= b.MaxDays
}
