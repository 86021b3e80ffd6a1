package calculator

import "fmt"

// ArvSource tags where an ARV value came from.
type ArvSource int

const (
	// ArvAuto values are derived from comps and replaced on every recomputation.
	ArvAuto ArvSource = iota
	// ArvManual values were typed in by the user and survive recomputation.
	ArvManual
)

func (s ArvSource) String() string {
	if s == ArvManual {
		return "manual"
	}
	return "auto"
}

// Arv is an after-repair value tagged with its source.
type Arv struct {
	Source ArvSource
	Value  float64
}

// AutoArv wraps a comp-derived value.
func AutoArv(v float64) Arv { return Arv{Source: ArvAuto, Value: v} }

// ManualArv wraps a user override.
func ManualArv(v float64) Arv { return Arv{Source: ArvManual, Value: v} }

// IsManual reports whether the value is a user override.
func (a Arv) IsManual() bool { return a.Source == ArvManual }

// Refresh replaces an Auto value with derived and leaves a Manual value untouched.
func (a Arv) Refresh(derived float64) Arv {
	if a.IsManual() {
		return a
	}
	return AutoArv(derived)
}

// Inputs are the cost and financing assumptions of a flip.
// Percentages are whole-number percent: 5 means 5%.
type Inputs struct {
	Arv                 Arv
	ClosingCostsSalePct float64
	AgentFeesPct        float64
	DesiredProfit       float64
	HoldTimeMonths      int
	LoanInterestRate    float64
	PointsPct           float64
	RepairCosts         float64
	MonthlyHoldingCosts float64
	ClosingCostsBuyPct  float64
}

// DefaultInputs returns the stock assumptions with an Auto ARV of zero.
func DefaultInputs() Inputs {
	return Inputs{
		Arv:                 AutoArv(0),
		ClosingCostsSalePct: 2,
		AgentFeesPct:        5,
		DesiredProfit:       60000,
		HoldTimeMonths:      6,
		LoanInterestRate:    13,
		PointsPct:           2,
		RepairCosts:         85000,
		MonthlyHoldingCosts: 125,
		ClosingCostsBuyPct:  2,
	}
}

// Validate rejects assumptions outside the ranges callers are expected to enforce.
// CalculateMaxOffer itself never validates.
func (in Inputs) Validate() error {
	if in.HoldTimeMonths < 1 {
		return fmt.Errorf("hold time must be at least 1 month, got %d", in.HoldTimeMonths)
	}
	rates := []struct {
		name  string
		value float64
	}{
		{"closing costs at sale", in.ClosingCostsSalePct},
		{"agent fees", in.AgentFeesPct},
		{"loan interest", in.LoanInterestRate},
		{"points", in.PointsPct},
		{"closing costs at buy", in.ClosingCostsBuyPct},
	}
	for _, r := range rates {
		if r.value < 0 {
			return fmt.Errorf("%s rate must not be negative, got %v", r.name, r.value)
		}
	}
	if in.RepairCosts < 0 || in.MonthlyHoldingCosts < 0 {
		return fmt.Errorf("costs must not be negative")
	}
	return nil
}
