package calculator

// Breakdown itemizes every dollar of the ARV once the offer is solved.
type Breakdown struct {
	Arv                float64 `json:"arv"`
	ClosingCostsAtSale float64 `json:"closingCostsAtSale"`
	AgentFees          float64 `json:"agentFees"`
	DesiredProfit      float64 `json:"desiredProfit"`
	RepairCosts        float64 `json:"repairCosts"`
	HoldingCosts       float64 `json:"holdingCosts"`
	LoanInterest       float64 `json:"loanInterest"`
	Points             float64 `json:"points"`
	ClosingCostsAtBuy  float64 `json:"closingCostsAtBuy"`
}

// Costs sums every cost component, profit included.
func (b Breakdown) Costs() float64 {
	return b.ClosingCostsAtSale + b.AgentFees + b.DesiredProfit + b.HoldingCosts +
		b.RepairCosts + b.LoanInterest + b.Points + b.ClosingCostsAtBuy
}

// Total is the amount the breakdown accounts for when paired with maxOffer.
// For a solved Result it equals Arv up to floating-point rounding.
func (b Breakdown) Total(maxOffer float64) float64 {
	return b.Costs() + maxOffer
}

// Result is the solved purchase price and its cost breakdown.
type Result struct {
	MaxOffer  float64   `json:"maxOffer"`
	Breakdown Breakdown `json:"breakdown"`
}

// CalculateMaxOffer solves for the purchase price P that leaves exactly the
// desired profit after all costs:
//
//	arv = saleCosts + agentFees + profit + holding + repairs + P + buyPct*P
//	      + (monthlyInterest*months + pointsPct) * (P + repairs)
//
// Repairs are financed for the whole hold period. A non-positive denominator
// (negative rates) is not guarded.
func CalculateMaxOffer(in Inputs) Result {
	arv := in.Arv.Value
	months := float64(in.HoldTimeMonths)

	salePct := in.ClosingCostsSalePct / 100
	agentPct := in.AgentFeesPct / 100
	buyPct := in.ClosingCostsBuyPct / 100
	pointsPct := in.PointsPct / 100
	monthlyInterest := in.LoanInterestRate / 100 / 12

	closingCostsAtSale := arv * salePct
	agentFees := arv * agentPct
	holdingCosts := in.MonthlyHoldingCosts * months
	fixedCosts := closingCostsAtSale + agentFees + in.DesiredProfit + holdingCosts + in.RepairCosts
	net := arv - fixedCosts

	repairFinancingCost := (monthlyInterest*months + pointsPct) * in.RepairCosts
	denominator := 1 + buyPct + monthlyInterest*months + pointsPct
	maxOffer := (net - repairFinancingCost) / denominator

	totalLoan := maxOffer + in.RepairCosts

	return Result{
		MaxOffer: maxOffer,
		Breakdown: Breakdown{
			Arv:                arv,
			ClosingCostsAtSale: closingCostsAtSale,
			AgentFees:          agentFees,
			DesiredProfit:      in.DesiredProfit,
			RepairCosts:        in.RepairCosts,
			HoldingCosts:       holdingCosts,
			LoanInterest:       totalLoan * monthlyInterest * months,
			Points:             totalLoan * pointsPct,
			ClosingCostsAtBuy:  maxOffer * buyPct,
		},
	}
}
