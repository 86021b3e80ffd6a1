package visuals

import (
	"fmt"
	"math"
	"strings"

	"flip-mcp/internal/calculator"
	"flip-mcp/internal/stats"
)

// GenerateBucketChart creates a Mermaid xychart-beta of price per square foot
// across the time buckets: bars for the median, a line for the average.
func GenerateBucketChart(buckets []stats.TimeBucket) string {
	if len(buckets) == 0 {
		return ""
	}

	var labels []string
	var medians []string
	var averages []string
	maxVal := 0.0
	populated := 0

	for _, b := range buckets {
		labels = append(labels, fmt.Sprintf("\"%s\"", b.Label))
		medians = append(medians, fmt.Sprintf("%.2f", b.Stats.MedianPricePerSqft))
		averages = append(averages, fmt.Sprintf("%.2f", b.Stats.AveragePricePerSqft))
		maxVal = math.Max(maxVal, math.Max(b.Stats.MedianPricePerSqft, b.Stats.AveragePricePerSqft))
		if b.Stats.Count > 0 {
			populated++
		}
	}
	if populated == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Price per Sqft by Sale Age\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"$ / sqft\" 0 --> %d\n", int(math.Ceil(maxVal*1.2))))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(medians, ", ")))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(averages, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// GenerateCostBreakdownChart creates a Mermaid pie chart of where the ARV goes.
// Negative components (an unprofitable deal) cannot be drawn and yield no chart.
func GenerateCostBreakdownChart(res calculator.Result) string {
	b := res.Breakdown
	slices := []struct {
		label string
		value float64
	}{
		{"Purchase price", res.MaxOffer},
		{"Repairs", b.RepairCosts},
		{"Desired profit", b.DesiredProfit},
		{"Agent fees", b.AgentFees},
		{"Closing (sale)", b.ClosingCostsAtSale},
		{"Closing (buy)", b.ClosingCostsAtBuy},
		{"Loan interest", b.LoanInterest},
		{"Points", b.Points},
		{"Holding", b.HoldingCosts},
	}

	total := 0.0
	for _, s := range slices {
		if s.value < 0 {
			return ""
		}
		total += s.value
	}
	if total == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("pie showData\n")
	sb.WriteString("    title \"ARV Breakdown\"\n")
	for _, s := range slices {
		if s.value == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("    \"%s\" : %.2f\n", s.label, s.value))
	}
	sb.WriteString("```")
	return sb.String()
}
