// Package pricing prices a European call and its Greeks by Monte Carlo
// simulation through three strategies that share one numeric pipeline:
// scalar, vectorized, and parallel-vectorized.
package pricing

import (
	"runtime"

	"go.uber.org/zap"

	"github.com/bcdannyboy/mcgreeks/kernel"
	"github.com/bcdannyboy/mcgreeks/models"
	"github.com/bcdannyboy/mcgreeks/probability"
)

const (
	strategyScalar     = "scalar"
	strategyVectorized = "vectorized"
	strategyParallel   = "parallel"
)

// Engine holds the configuration shared by the pricing strategies. It keeps
// no state between calls and is safe for concurrent use.
type Engine struct {
	logger      *zap.Logger
	workers     int
	method      probability.VarianceMethod
	forceScalar bool
	common      bool
	seeded      bool
	seed        uint64
	onPriced    func(index int)
	caps        kernel.Capabilities
}

type Option func(*Engine)

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithWorkers sets the default worker count for the parallel strategy and the
// portfolio fan-out. Zero or less means hardware parallelism.
func WithWorkers(n int) Option {
	return func(e *Engine) { e.workers = n }
}

func WithVarianceMethod(m probability.VarianceMethod) Option {
	return func(e *Engine) { e.method = m }
}

// WithVectorDisabled forces the scalar kernel inside the vectorized and
// parallel strategies.
func WithVectorDisabled(disabled bool) Option {
	return func(e *Engine) { e.forceScalar = disabled }
}

// WithCommonRandomNumbers reuses one set of deviates for the base and bumped
// scenarios of a call. Off by default: each scenario is sampled independently,
// which leaves the finite-difference Greeks noisier.
func WithCommonRandomNumbers(enabled bool) Option {
	return func(e *Engine) { e.common = enabled }
}

// WithSeed makes runs reproducible: every random stream is derived from seed
// and its stream id instead of fresh entropy.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.seeded = true
		e.seed = seed
	}
}

// WithPortfolioProgress registers fn to run after each portfolio option is
// priced. fn is called from worker goroutines.
func WithPortfolioProgress(fn func(index int)) Option {
	return func(e *Engine) { e.onPriced = fn }
}

func withCapabilities(c kernel.Capabilities) Option {
	return func(e *Engine) { e.caps = c }
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		logger: zap.NewNop(),
		method: probability.SinglePass,
		caps:   kernel.Detect(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Capabilities reports what the engine detected at construction.
func (e *Engine) Capabilities() kernel.Capabilities { return e.caps }

func (e *Engine) defaultWorkers() int {
	if e.workers > 0 {
		return e.workers
	}
	if e.caps.LogicalCores > 0 {
		return e.caps.LogicalCores
	}
	return runtime.GOMAXPROCS(0)
}

func (e *Engine) vectorKernel() kernel.Kernel {
	return kernel.Select(e.caps, e.forceScalar)
}

// sampler returns a generator owned by the caller for one stream.
func (e *Engine) sampler(stream int) *probability.Sampler {
	if e.seeded {
		return probability.NewSampler(probability.StreamSeed(e.seed, stream))
	}
	return probability.NewEntropySampler()
}

// prepare validates a request and returns the effective path count.
func (e *Engine) prepare(strategy string, p models.OptionParameters, paths int, antithetic bool) (models.Validated, int, bool, error) {
	v, err := models.Validate(p)
	if err == nil {
		err = models.ValidatePathCount(paths)
	}
	if err != nil {
		e.logger.Warn("rejected pricing request", zap.String("strategy", strategy), zap.Error(err))
		return models.Validated{}, 0, false, err
	}
	n, anti := effectivePaths(paths, antithetic)
	return v, n, anti, nil
}

// finish turns per-scenario statistics into a result. Only the base scenario's
// standard error is reported.
func (e *Engine) finish(set models.ScenarioSet, accs [models.ScenarioCount]probability.Accumulator) models.PricingResult {
	var prices [models.ScenarioCount]float64
	for i, acc := range accs {
		prices[i] = acc.Mean()
	}
	_, se := accs[models.ScenarioBase].Estimate(e.method)
	return models.NewPricingResult(prices[models.ScenarioBase], se, models.EstimateGreeks(set, prices))
}
