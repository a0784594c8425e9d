package pricing

import (
	"sync"

	"github.com/bcdannyboy/mcgreeks/models"
)

var defaultEngine = sync.OnceValue(func() *Engine {
	return NewEngine()
})

// Validate reports whether p may enter simulation.
func Validate(p models.OptionParameters) error {
	_, err := models.Validate(p)
	return err
}

func PriceScalar(p models.OptionParameters, paths int, antithetic bool) (models.PricingResult, error) {
	return defaultEngine().PriceScalar(p, paths, antithetic)
}

func PriceVectorized(p models.OptionParameters, paths int, antithetic bool) (models.PricingResult, error) {
	return defaultEngine().PriceVectorized(p, paths, antithetic)
}

// PriceParallel uses hardware parallelism when workers <= 0.
func PriceParallel(p models.OptionParameters, paths int, antithetic bool, workers int) (models.PricingResult, error) {
	return defaultEngine().PriceParallel(p, paths, antithetic, workers)
}

func PricePortfolio(options []models.OptionParameters, pathsPerOption int, antithetic bool) ([]models.PricingResult, error) {
	return defaultEngine().PricePortfolio(options, pathsPerOption, antithetic)
}

func MeasureVarianceReduction(p models.OptionParameters, paths, iterations int) (models.VarianceReductionReport, error) {
	return defaultEngine().MeasureVarianceReduction(p, paths, iterations)
}
