package pricing

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/bcdannyboy/mcgreeks/kernel"
	"github.com/bcdannyboy/mcgreeks/models"
	"github.com/bcdannyboy/mcgreeks/probability"
)

// PriceScalar runs every scenario on one goroutine with the scalar kernel.
func (e *Engine) PriceScalar(p models.OptionParameters, paths int, antithetic bool) (models.PricingResult, error) {
	return e.priceSequential(strategyScalar, kernel.Scalar(), p, paths, antithetic, 0)
}

// PriceVectorized runs on one goroutine with the widest detected vector
// kernel, falling back to the scalar kernel without a usable vector unit.
func (e *Engine) PriceVectorized(p models.OptionParameters, paths int, antithetic bool) (models.PricingResult, error) {
	return e.priceSequential(strategyVectorized, e.vectorKernel(), p, paths, antithetic, 0)
}

func (e *Engine) priceSequential(strategy string, k kernel.Kernel, p models.OptionParameters, paths int, antithetic bool, stream int) (models.PricingResult, error) {
	v, n, anti, err := e.prepare(strategy, p, paths, antithetic)
	if err != nil {
		return models.PricingResult{}, err
	}

	start := time.Now()
	set := models.BuildScenarios(v)
	accs, kind := simulateScenarios(set, n, anti, e.common, k, e.sampler(stream))
	result := e.finish(set, accs)

	e.logger.Debug("priced option",
		zap.String("strategy", strategy),
		zap.String("kernel", k.Name()),
		zap.Int("paths", paths),
		zap.Int("effectivePaths", n),
		zap.Bool("antithetic", anti),
		zap.Bool("commonRandomNumbers", e.common),
		zap.Stringer("buffer", kind),
		zap.Duration("elapsed", time.Since(start)),
	)
	return result, nil
}

// PriceParallel partitions the paths across workers. Each worker prices all
// five scenarios over its slice with its own generator and buffers; the
// per-scenario accumulators are merged once every worker has finished.
// workers <= 0 uses the engine default.
func (e *Engine) PriceParallel(p models.OptionParameters, paths int, antithetic bool, workers int) (models.PricingResult, error) {
	v, n, anti, err := e.prepare(strategyParallel, p, paths, antithetic)
	if err != nil {
		return models.PricingResult{}, err
	}
	if workers <= 0 {
		workers = e.defaultWorkers()
	}

	start := time.Now()
	k := e.vectorKernel()
	set := models.BuildScenarios(v)
	counts := partitionPaths(n, workers, anti)

	// one slot per partition, read only after wg.Wait
	slots := make([][models.ScenarioCount]probability.Accumulator, len(counts))

	var wg sync.WaitGroup
	for w, count := range counts {
		if count == 0 {
			continue
		}
		wg.Add(1)
		go func(w, count int) {
			defer wg.Done()
			slots[w], _ = simulateScenarios(set, count, anti, e.common, k, e.sampler(w))
		}(w, count)
	}
	wg.Wait()

	var accs [models.ScenarioCount]probability.Accumulator
	for _, slot := range slots {
		for i := range accs {
			accs[i] = probability.Merge(accs[i], slot[i])
		}
	}
	result := e.finish(set, accs)

	e.logger.Debug("priced option",
		zap.String("strategy", strategyParallel),
		zap.String("kernel", k.Name()),
		zap.Int("paths", paths),
		zap.Int("effectivePaths", n),
		zap.Bool("antithetic", anti),
		zap.Int("workers", workers),
		zap.Ints("partitions", counts),
		zap.Duration("elapsed", time.Since(start)),
	)
	return result, nil
}
