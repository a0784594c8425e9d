package pricing

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bcdannyboy/mcgreeks/models"
)

// PricePortfolio prices independent options concurrently with the vectorized
// strategy. Results keep the input order. Every option is validated before any
// simulation starts.
func (e *Engine) PricePortfolio(options []models.OptionParameters, pathsPerOption int, antithetic bool) ([]models.PricingResult, error) {
	if err := models.ValidatePathCount(pathsPerOption); err != nil {
		return nil, err
	}
	for i, p := range options {
		if _, err := models.Validate(p); err != nil {
			e.logger.Warn("rejected portfolio option", zap.Int("index", i), zap.Error(err))
			return nil, errors.Wrapf(err, "option %d", i)
		}
	}

	results := make([]models.PricingResult, len(options))
	k := e.vectorKernel()

	var g errgroup.Group
	g.SetLimit(e.defaultWorkers())
	for i, p := range options {
		i, p := i, p
		g.Go(func() error {
			r, err := e.priceSequential(strategyVectorized, k, p, pathsPerOption, antithetic, i)
			if err != nil {
				return errors.Wrapf(err, "option %d", i)
			}
			results[i] = r
			if e.onPriced != nil {
				e.onPriced(i)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
