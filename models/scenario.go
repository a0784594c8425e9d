package models

const (
	SpotBumpFraction = 0.01   // Spot epsilon as a fraction of spot
	VolEpsilon       = 0.0001 // Absolute volatility bump
)

// Scenario positions inside a ScenarioSet.
const (
	ScenarioBase = iota
	ScenarioSpotUp
	ScenarioSpotDown
	ScenarioVolUp
	ScenarioVolDown

	ScenarioCount
)

var scenarioNames = [ScenarioCount]string{"base", "spot-up", "spot-down", "vol-up", "vol-down"}

func ScenarioName(i int) string {
	if i < 0 || i >= ScenarioCount {
		return "unknown"
	}
	return scenarioNames[i]
}

// ScenarioSet holds the five parameter sets needed for central differences.
type ScenarioSet struct {
	Scenarios   [ScenarioCount]OptionParameters
	SpotEpsilon float64
	VolEpsilon  float64
}

// BuildScenarios derives the bumped scenarios from a validated base.
func BuildScenarios(base Validated) ScenarioSet {
	p := base.Params()
	spotEps := p.SpotPrice * SpotBumpFraction

	set := ScenarioSet{SpotEpsilon: spotEps, VolEpsilon: VolEpsilon}
	for i := range set.Scenarios {
		set.Scenarios[i] = p
	}
	set.Scenarios[ScenarioSpotUp].SpotPrice = p.SpotPrice + spotEps
	set.Scenarios[ScenarioSpotDown].SpotPrice = p.SpotPrice - spotEps
	set.Scenarios[ScenarioVolUp].Volatility = p.Volatility + VolEpsilon
	set.Scenarios[ScenarioVolDown].Volatility = p.Volatility - VolEpsilon
	return set
}
