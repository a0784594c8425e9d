package models

// Greeks holds finite-difference sensitivities.
type Greeks struct {
	Delta float64
	Gamma float64
	Vega  float64
}

// EstimateGreeks applies central differences to the five scenario prices,
// indexed like ScenarioSet.Scenarios.
func EstimateGreeks(set ScenarioSet, prices [ScenarioCount]float64) Greeks {
	p0 := prices[ScenarioBase]
	up, down := prices[ScenarioSpotUp], prices[ScenarioSpotDown]
	vUp, vDown := prices[ScenarioVolUp], prices[ScenarioVolDown]

	return Greeks{
		Delta: (up - down) / (2 * set.SpotEpsilon),
		Gamma: (up - 2*p0 + down) / (set.SpotEpsilon * set.SpotEpsilon),
		Vega:  (vUp - vDown) / (2 * set.VolEpsilon),
	}
}

// NewPricingResult combines the base estimate with the Greeks.
func NewPricingResult(price, standardError float64, g Greeks) PricingResult {
	return PricingResult{
		Price:         price,
		Delta:         g.Delta,
		Gamma:         g.Gamma,
		Vega:          g.Vega,
		StandardError: standardError,
	}
}
