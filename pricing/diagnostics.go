package pricing

import (
	"go.uber.org/zap"

	"github.com/bcdannyboy/mcgreeks/models"
)

// MeasureVarianceReduction prices the base scenario iterations times with and
// without antithetic pairing at the same path count and averages the standard
// errors.
func (e *Engine) MeasureVarianceReduction(p models.OptionParameters, paths, iterations int) (models.VarianceReductionReport, error) {
	v, err := models.Validate(p)
	if err == nil {
		err = models.ValidatePathCount(paths)
	}
	if err == nil && iterations <= 0 {
		err = models.NewInvalidParameter(models.FieldIterations, models.MustBePositive, float64(iterations))
	}
	if err != nil {
		e.logger.Warn("rejected variance reduction request", zap.Error(err))
		return models.VarianceReductionReport{}, err
	}

	k := e.vectorKernel()
	g := models.NewGBM(v.Params())
	antiPaths, anti := effectivePaths(paths, true)

	var sumWithout, sumWith float64
	for i := 0; i < iterations; i++ {
		plain, _ := simulate(g, paths, false, k, e.sampler(2*i))
		paired, _ := simulate(g, antiPaths, anti, k, e.sampler(2*i+1))

		_, seWithout := plain.Estimate(e.method)
		_, seWith := paired.Estimate(e.method)
		sumWithout += seWithout
		sumWith += seWith
	}

	report := models.NewVarianceReductionReport(sumWithout/float64(iterations), sumWith/float64(iterations))
	e.logger.Debug("measured variance reduction",
		zap.Int("paths", paths),
		zap.Int("iterations", iterations),
		zap.Float64("reductionPercent", report.ReductionPercent),
	)
	return report, nil
}
