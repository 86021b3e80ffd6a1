// Package simulation bootstraps the comps to show how uncertain the ARV and
// the resulting max offer are.
package simulation

import (
	"math/rand"
	"sort"

	"flip-mcp/internal/calculator"
	"flip-mcp/internal/comps"
	"flip-mcp/internal/stats"
)

// DefaultTrials is used when Run is asked for a non-positive number of trials.
const DefaultTrials = 10000

// Engine performs the Monte-Carlo resampling.
type Engine struct {
	ppsf []float64
	rng  *rand.Rand
}

// Range holds the 10th, 50th and 90th percentile of a simulated quantity.
type Range struct {
	P10 float64 `json:"p10"`
	P50 float64 `json:"p50"`
	P90 float64 `json:"p90"`
}

// Result holds the percentiles of the simulation.
type Result struct {
	Trials   int      `json:"trials"`
	Comps    int      `json:"comps"`
	Arv      Range    `json:"arv"`
	MaxOffer Range    `json:"maxOffer"`
	NoDeal   float64  `json:"noDeal"` // share of trials whose max offer is not positive
	Warnings []string `json:"warnings,omitempty"`
}

// NewEngine creates an engine over the active sales.
func NewEngine(sales []comps.ComparableSale, seed int64) *Engine {
	active := comps.Active(sales)
	ppsf := make([]float64, len(active))
	for i, c := range active {
		ppsf[i] = c.PricePerSqft
	}
	return &Engine{
		ppsf: ppsf,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// Run performs the requested number of trials. Each trial resamples the
// comps with replacement, derives an ARV for the subject and solves the offer
// under in. A manual ARV in in is ignored.
func (e *Engine) Run(trials int, subjectSqft float64, mode stats.StatMode, in calculator.Inputs) Result {
	if trials <= 0 {
		trials = DefaultTrials
	}
	res := Result{Trials: trials, Comps: len(e.ppsf)}

	if len(e.ppsf) == 0 {
		res.Warnings = append(res.Warnings, "No active comps to resample; the ARV range is undefined.")
		return res
	}
	if subjectSqft <= 0 {
		res.Warnings = append(res.Warnings, "Subject square footage is unknown; every simulated ARV is zero.")
	}
	if len(e.ppsf) < 5 {
		res.Warnings = append(res.Warnings, "Fewer than 5 active comps: resampling understates the real spread.")
	}

	arvs := make([]float64, trials)
	offers := make([]float64, trials)
	sample := make([]float64, len(e.ppsf))
	noDeal := 0

	for i := 0; i < trials; i++ {
		for j := range sample {
			sample[j] = e.ppsf[e.rng.Intn(len(e.ppsf))]
		}
		arv := stats.Central(sample, mode) * subjectSqft

		trial := in
		trial.Arv = calculator.AutoArv(arv)
		offer := calculator.CalculateMaxOffer(trial).MaxOffer
		if offer <= 0 {
			noDeal++
		}
		arvs[i] = arv
		offers[i] = offer
	}

	res.Arv = percentiles(arvs)
	res.MaxOffer = percentiles(offers)
	res.NoDeal = float64(noDeal) / float64(trials)
	return res
}

func percentiles(values []float64) Range {
	sort.Float64s(values)
	return Range{
		P10: at(values, 0.10),
		P50: at(values, 0.50),
		P90: at(values, 0.90),
	}
}

func at(sorted []float64, p float64) float64 {
	idx := int(float64(len(sorted)) * p)
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
