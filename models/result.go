package models

// PricingResult is produced once per pricing call.
type PricingResult struct {
	Price         float64 `json:"price"`
	Delta         float64 `json:"delta"`
	Gamma         float64 `json:"gamma"`
	Vega          float64 `json:"vega"`
	StandardError float64 `json:"standardError"` // Base price estimate only
}

// VarianceReductionReport compares plain and antithetic sampling at equal path counts.
type VarianceReductionReport struct {
	AvgStandardErrorWithout float64 `json:"avgStandardErrorWithout"`
	AvgStandardErrorWith    float64 `json:"avgStandardErrorWith"`
	ReductionPercent        float64 `json:"reductionPercent"`
	ConvergenceSpeedup      float64 `json:"convergenceSpeedup"` // Path-count ratio for equal error
}

func NewVarianceReductionReport(avgWithout, avgWith float64) VarianceReductionReport {
	report := VarianceReductionReport{
		AvgStandardErrorWithout: avgWithout,
		AvgStandardErrorWith:    avgWith,
	}
	if avgWithout > 0 {
		report.ReductionPercent = (1 - avgWith/avgWithout) * 100
	}
	if avgWith > 0 {
		ratio := avgWithout / avgWith
		report.ConvergenceSpeedup = ratio * ratio
	}
	return report
}
