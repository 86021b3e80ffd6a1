package analysis

import (
	"flip-mcp/internal/calculator"
	"flip-mcp/internal/comps"
	"flip-mcp/internal/stats"
)

// Report is the full, derived view of a workspace.
type Report struct {
	Subject     comps.Subject             `json:"subject"`
	StatMode    stats.StatMode            `json:"statMode"`
	BucketMode  stats.BucketMode          `json:"bucketMode"`
	Comps       []comps.ComparableSale    `json:"comps"`
	Aggregate   stats.AggregateStatistics `json:"aggregate"`
	Buckets     []stats.TimeBucket        `json:"buckets"`
	Arv         float64                   `json:"arv"`
	ArvIsManual bool                      `json:"arvIsManual"`
	DerivedArv  float64                   `json:"derivedArv"`
	Inputs      calculator.Params         `json:"inputs"`
	Offer       calculator.Result         `json:"offer"`
	Warnings    []string                  `json:"warnings,omitempty"`
}

// Build computes every statistic and the offer for the workspace.
func (w Workspace) Build() Report {
	agg := stats.ComputeAggregateStatistics(w.sales)

	return Report{
		Subject:     w.subject,
		StatMode:    w.statMode,
		BucketMode:  w.bucketMode,
		Comps:       clone(w.sales),
		Aggregate:   agg,
		Buckets:     stats.BuildTimeBuckets(w.sales, w.bucketMode),
		Arv:         w.inputs.Arv.Value,
		ArvIsManual: w.inputs.Arv.IsManual(),
		DerivedArv:  stats.ComputeArv(w.sales, w.subject.Sqft, w.statMode),
		Inputs:      calculator.ParamsFrom(w.inputs),
		Offer:       calculator.CalculateMaxOffer(w.inputs),
		Warnings:    w.warnings(agg),
	}
}

func (w Workspace) warnings(agg stats.AggregateStatistics) []string {
	var warnings []string
	if agg.Count == 0 {
		warnings = append(warnings, "No active comps: ARV cannot be derived and defaults to zero unless overridden.")
	} else if agg.Count < 3 {
		warnings = append(warnings, "Fewer than 3 active comps: the ARV estimate is fragile.")
	}
	if w.subject.Sqft == 0 && !w.inputs.Arv.IsManual() {
		warnings = append(warnings, "Subject square footage is unknown: derived ARV is zero.")
	}
	if err := w.inputs.Validate(); err != nil {
		warnings = append(warnings, "Assumptions out of range: "+err.Error())
	}
	if stale := countOlderThan(w.sales, comps.MaxTimePeriodDays); stale > 0 {
		warnings = append(warnings, "Some comps are older than 180 days and fall outside every time bucket.")
	}
	return warnings
}

func countOlderThan(sales []comps.ComparableSale, days int) int {
	n := 0
	for _, c := range sales {
		if c.DaysAgo > days {
			n++
		}
	}
	return n
}
