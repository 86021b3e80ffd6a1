package stats

import "flip-mcp/internal/comps"

// ComputeArv estimates the after-repair value of a subject of subjectSqft square
// feet from the central price per square foot of the active sales. It returns 0
// when there is nothing to derive from. No rounding is applied.
func ComputeArv(sales []comps.ComparableSale, subjectSqft float64, mode StatMode) float64 {
	active := comps.Active(sales)
	if len(active) == 0 || subjectSqft == 0 {
		return 0
	}

	ppsf := make([]float64, len(active))
	for i, c := range active {
		ppsf[i] = c.PricePerSqft
	}
	return Central(ppsf, mode) * subjectSqft
}
