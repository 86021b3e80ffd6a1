package stats

import (
	"fmt"

	"flip-mcp/internal/comps"
)

// TimeThresholds are the ascending day-age upper bounds of the time buckets.
var TimeThresholds = []int{30, 60, 90, 120, 180}

// BuildTimeBuckets partitions sales into one bucket per threshold, in ascending order.
//
// Exclusive buckets hold sales with previous < DaysAgo <= threshold; cumulative
// buckets hold 0 < DaysAgo <= threshold. Each bucket's Stats honour Excluded.
func BuildTimeBuckets(sales []comps.ComparableSale, mode BucketMode) []TimeBucket {
	buckets := make([]TimeBucket, 0, len(TimeThresholds))

	previous := 0
	for _, threshold := range TimeThresholds {
		buckets = append(buckets, newBucket(sales, mode, previous, threshold))
		previous = threshold
	}
	return buckets
}

func newBucket(sales []comps.ComparableSale, mode BucketMode, previous, threshold int) TimeBucket {
	minDays := 0
	if mode != BucketCumulative {
		minDays = previous
	}

	b := TimeBucket{
		Label:   bucketLabel(mode, minDays, threshold),
		MinDays: minDays,
		MaxDays: threshold,
		Comps:   []comps.ComparableSale{},
	}
	for _, c := range sales {
		if b.Contains(c.DaysAgo) {
			b.Comps = append(b.Comps, c)
		}
	}
	b.Stats = ComputeAggregateStatistics(b.Comps)
	return b
}

func bucketLabel(mode BucketMode, minDays, maxDays int) string {
	if mode == BucketCumulative || minDays == 0 {
		return fmt.Sprintf("0–%d days", maxDays)
	}
	return fmt.Sprintf("%d–%d days", minDays+1, maxDays)
}
