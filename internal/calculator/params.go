package calculator

// Params is the wire form of Inputs used by the CLI, MCP tools and HTTP API.
type Params struct {
	Arv                 float64 `json:"arv" jsonschema:"after-repair value in dollars"`
	ArvIsManual         bool    `json:"arvIsManual,omitempty" jsonschema:"true when arv is a user override that comp changes must not replace"`
	ClosingCostsSalePct float64 `json:"closingCostsSalePct" jsonschema:"closing costs at sale, whole percent of ARV"`
	AgentFeesPct        float64 `json:"agentFeesPct" jsonschema:"agent fees, whole percent of ARV"`
	DesiredProfit       float64 `json:"desiredProfit" jsonschema:"target profit in dollars"`
	HoldTimeMonths      int     `json:"holdTimeMonths" jsonschema:"months between purchase and resale, at least 1"`
	LoanInterestRate    float64 `json:"loanInterestRate" jsonschema:"annual loan interest, whole percent"`
	PointsPct           float64 `json:"pointsPct" jsonschema:"loan origination points, whole percent of principal"`
	RepairCosts         float64 `json:"repairCosts" jsonschema:"renovation budget in dollars"`
	MonthlyHoldingCosts float64 `json:"monthlyHoldingCosts" jsonschema:"taxes, insurance and utilities per month"`
	ClosingCostsBuyPct  float64 `json:"closingCostsBuyPct" jsonschema:"closing costs at purchase, whole percent of price"`
}

// Inputs converts the wire form.
func (p Params) Inputs() Inputs {
	arv := AutoArv(p.Arv)
	if p.ArvIsManual {
		arv = ManualArv(p.Arv)
	}
	return Inputs{
		Arv:                 arv,
		ClosingCostsSalePct: p.ClosingCostsSalePct,
		AgentFeesPct:        p.AgentFeesPct,
		DesiredProfit:       p.DesiredProfit,
		HoldTimeMonths:      p.HoldTimeMonths,
		LoanInterestRate:    p.LoanInterestRate,
		PointsPct:           p.PointsPct,
		RepairCosts:         p.RepairCosts,
		MonthlyHoldingCosts: p.MonthlyHoldingCosts,
		ClosingCostsBuyPct:  p.ClosingCostsBuyPct,
	}
}

// ParamsFrom converts Inputs to the wire form.
func ParamsFrom(in Inputs) Params {
	return Params{
		Arv:                 in.Arv.Value,
		ArvIsManual:         in.Arv.IsManual(),
		ClosingCostsSalePct: in.ClosingCostsSalePct,
		AgentFeesPct:        in.AgentFeesPct,
		DesiredProfit:       in.DesiredProfit,
		HoldTimeMonths:      in.HoldTimeMonths,
		LoanInterestRate:    in.LoanInterestRate,
		PointsPct:           in.PointsPct,
		RepairCosts:         in.RepairCosts,
		MonthlyHoldingCosts: in.MonthlyHoldingCosts,
		ClosingCostsBuyPct:  in.ClosingCostsBuyPct,
	}
}
