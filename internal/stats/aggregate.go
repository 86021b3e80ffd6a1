package stats

import "flip-mcp/internal/comps"

// ComputeAggregateStatistics rolls up days on market, sale price and price per
// square foot over the non-excluded sales. An empty active set yields the zero value.
func ComputeAggregateStatistics(sales []comps.ComparableSale) AggregateStatistics {
	active := comps.Active(sales)
	if len(active) == 0 {
		return AggregateStatistics{}
	}

	doms := make([]float64, len(active))
	prices := make([]float64, len(active))
	ppsf := make([]float64, len(active))
	for i, c := range active {
		doms[i] = float64(c.DaysOnMarket)
		prices[i] = c.SalesPrice
		ppsf[i] = c.PricePerSqft
	}

	return AggregateStatistics{
		MedianDaysOnMarket:  Median(doms),
		AverageDaysOnMarket: Average(doms),
		MedianPrice:         Median(prices),
		AveragePrice:        Average(prices),
		MedianPricePerSqft:  Median(ppsf),
		AveragePricePerSqft: Average(ppsf),
		Count:               len(active),
	}
}
