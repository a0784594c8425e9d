package pricing

import (
	"math"
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
	"github.com/smartystreets/goconvey/convey"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/bcdannyboy/mcgreeks/kernel"
	"github.com/bcdannyboy/mcgreeks/models"
	"github.com/bcdannyboy/mcgreeks/probability"
)

const testPaths = 100000

func atm() models.OptionParameters {
	return models.OptionParameters{SpotPrice: 100, StrikePrice: 100, TimeToMaturity: 1, RiskFreeRate: 0.05, Volatility: 0.2}
}

func blackScholes(p models.OptionParameters) models.PricingResult {
	v, err := models.Validate(p)
	if err != nil {
		panic(err)
	}
	return models.BlackScholesCall(v)
}

type strategy struct {
	name string
	run  func(e *Engine, p models.OptionParameters, paths int, antithetic bool) (models.PricingResult, error)
}

var strategies = []strategy{
	{"scalar", func(e *Engine, p models.OptionParameters, paths int, anti bool) (models.PricingResult, error) {
		return e.PriceScalar(p, paths, anti)
	}},
	{"vectorized", func(e *Engine, p models.OptionParameters, paths int, anti bool) (models.PricingResult, error) {
		return e.PriceVectorized(p, paths, anti)
	}},
	{"parallel", func(e *Engine, p models.OptionParameters, paths int, anti bool) (models.PricingResult, error) {
		return e.PriceParallel(p, paths, anti, 4)
	}},
}

func TestRejection(t *testing.T) {
	convey.Convey("Every strategy rejects the same inputs", t, func() {
		core, logs := observer.New(zapcore.WarnLevel)
		e := NewEngine(WithLogger(zap.New(core)), WithSeed(1))

		bad := []struct {
			field  string
			mutate func(p *models.OptionParameters)
		}{
			{models.FieldSpotPrice, func(p *models.OptionParameters) { p.SpotPrice = 0 }},
			{models.FieldStrikePrice, func(p *models.OptionParameters) { p.StrikePrice = -1 }},
			{models.FieldTimeToMaturity, func(p *models.OptionParameters) { p.TimeToMaturity = 0 }},
			{models.FieldRiskFreeRate, func(p *models.OptionParameters) { p.RiskFreeRate = -0.01 }},
			{models.FieldVolatility, func(p *models.OptionParameters) { p.Volatility = 0 }},
		}

		for _, s := range strategies {
			for _, b := range bad {
				p := atm()
				b.mutate(&p)
				_, err := s.run(e, p, 1000, true)

				var ipe *models.InvalidParameterError
				convey.So(errors.As(err, &ipe), convey.ShouldBeTrue)
				convey.So(ipe.Field, convey.ShouldEqual, b.field)
			}

			_, err := s.run(e, atm(), 0, false)
			var ipe *models.InvalidParameterError
			convey.So(errors.As(err, &ipe), convey.ShouldBeTrue)
			convey.So(ipe.Field, convey.ShouldEqual, models.FieldPathCount)
		}

		convey.So(logs.FilterMessage("rejected pricing request").Len(), convey.ShouldEqual, len(strategies)*(len(bad)+1))
		convey.So(Validate(atm()), convey.ShouldBeNil)
		convey.So(errors.Is(Validate(models.OptionParameters{}), models.ErrInvalidParameter), convey.ShouldBeTrue)
	})
}

func TestAgreement(t *testing.T) {
	convey.Convey("Strategies agree with each other and with Black-Scholes", t, func() {
		e := NewEngine(WithSeed(20240601))
		bs := blackScholes(atm())

		var results []models.PricingResult
		for _, s := range strategies {
			r, err := s.run(e, atm(), testPaths, true)
			convey.So(err, convey.ShouldBeNil)
			convey.So(r.StandardError, convey.ShouldBeGreaterThan, 0.0)
			convey.So(math.Abs(r.Price-bs.Price), convey.ShouldBeLessThan, 5*r.StandardError)
			results = append(results, r)
		}

		for i := 1; i < len(results); i++ {
			a, b := results[0], results[i]
			tol := 5 * math.Hypot(a.StandardError, b.StandardError)
			convey.So(math.Abs(a.Price-b.Price), convey.ShouldBeLessThan, tol)
		}
	})

	convey.Convey("The package-level functions use entropy seeding", t, func() {
		r, err := PriceVectorized(atm(), testPaths, true)
		convey.So(err, convey.ShouldBeNil)
		convey.So(math.Abs(r.Price-blackScholes(atm()).Price), convey.ShouldBeLessThan, 6*r.StandardError)
	})
}

func TestGreeks(t *testing.T) {
	convey.Convey("Greeks from independent scenarios", t, func() {
		e := NewEngine(WithSeed(99))
		r, err := e.PriceVectorized(atm(), testPaths, true)
		convey.So(err, convey.ShouldBeNil)
		convey.So(r.Delta, convey.ShouldAlmostEqual, blackScholes(atm()).Delta, 0.12)

		convey.Convey("deep in the money delta approaches one", func() {
			p := atm()
			p.SpotPrice = 150
			r, err := e.PriceVectorized(p, testPaths, true)
			convey.So(err, convey.ShouldBeNil)
			convey.So(r.Delta, convey.ShouldBeGreaterThan, 0.8)
		})

		convey.Convey("deep out of the money delta approaches zero", func() {
			p := atm()
			p.SpotPrice = 50
			r, err := e.PriceVectorized(p, testPaths, true)
			convey.So(err, convey.ShouldBeNil)
			convey.So(r.Delta, convey.ShouldBeLessThan, 0.2)
		})
	})

	convey.Convey("Greeks with common random numbers", t, func() {
		e := NewEngine(WithSeed(7), WithCommonRandomNumbers(true))
		bs := blackScholes(atm())

		for _, s := range strategies {
			r, err := s.run(e, atm(), testPaths, true)
			convey.So(err, convey.ShouldBeNil)
			convey.So(r.Delta, convey.ShouldAlmostEqual, bs.Delta, 0.02)
			convey.So(r.Gamma, convey.ShouldBeGreaterThan, 0.0)
			convey.So(r.Gamma, convey.ShouldAlmostEqual, bs.Gamma, 0.005)
			convey.So(r.Vega, convey.ShouldBeGreaterThan, 0.0)
			convey.So(r.Vega, convey.ShouldAlmostEqual, bs.Vega, 2)
		}
	})
}

func TestMonotonicity(t *testing.T) {
	convey.Convey("Price rises with volatility, maturity and spot", t, func() {
		e := NewEngine(WithSeed(3))
		price := func(mutate func(p *models.OptionParameters)) float64 {
			p := atm()
			mutate(&p)
			r, err := e.PriceParallel(p, testPaths, true, 0)
			convey.So(err, convey.ShouldBeNil)
			return r.Price
		}
		base := price(func(*models.OptionParameters) {})

		convey.So(price(func(p *models.OptionParameters) { p.Volatility = 0.3 }), convey.ShouldBeGreaterThan, base)
		convey.So(price(func(p *models.OptionParameters) { p.TimeToMaturity = 2 }), convey.ShouldBeGreaterThan, base)
		convey.So(price(func(p *models.OptionParameters) { p.SpotPrice = 110 }), convey.ShouldBeGreaterThan, base)
	})
}

func TestParallel(t *testing.T) {
	convey.Convey("The worker count does not bias the estimate", t, func() {
		e := NewEngine(WithSeed(11))
		bs := blackScholes(atm())
		for _, workers := range []int{1, 2, 4, 8} {
			r, err := e.PriceParallel(atm(), testPaths, true, workers)
			convey.So(err, convey.ShouldBeNil)
			convey.So(math.Abs(r.Price-bs.Price), convey.ShouldBeLessThan, 5*r.StandardError)
		}
	})

	convey.Convey("More workers than paths leaves idle partitions", t, func() {
		r, err := NewEngine(WithSeed(2)).PriceParallel(atm(), 3, false, 8)
		convey.So(err, convey.ShouldBeNil)
		convey.So(r.Price, convey.ShouldBeGreaterThanOrEqualTo, 0.0)
	})

	convey.Convey("One worker reproduces the vectorized strategy", t, func() {
		e := NewEngine(WithSeed(17))
		seq, err := e.PriceVectorized(atm(), 20000, true)
		convey.So(err, convey.ShouldBeNil)
		par, err := e.PriceParallel(atm(), 20000, true, 1)
		convey.So(err, convey.ShouldBeNil)
		convey.So(par, convey.ShouldResemble, seq)
	})
}

func TestReproducibility(t *testing.T) {
	convey.Convey("Seeded scalar and vectorized strategies are bit-identical", t, func() {
		for _, anti := range []bool{false, true} {
			for _, paths := range []int{1, 999, 8192, 9001} {
				e := NewEngine(WithSeed(42))
				s, err := e.PriceScalar(atm(), paths, anti)
				convey.So(err, convey.ShouldBeNil)
				v, err := e.PriceVectorized(atm(), paths, anti)
				convey.So(err, convey.ShouldBeNil)
				convey.So(v, convey.ShouldResemble, s)
			}
		}
	})

	convey.Convey("Without a vector unit the vectorized strategy runs scalar", t, func() {
		for _, e := range []*Engine{
			NewEngine(WithSeed(5), withCapabilities(kernel.Capabilities{LogicalCores: 2})),
			NewEngine(WithSeed(5), WithVectorDisabled(true)),
		} {
			convey.So(e.vectorKernel().Name(), convey.ShouldEqual, "scalar")
			s, _ := e.PriceScalar(atm(), 5000, true)
			v, _ := e.PriceVectorized(atm(), 5000, true)
			convey.So(v, convey.ShouldResemble, s)
		}
	})

	convey.Convey("Antithetic pricing of a single path does not pair", t, func() {
		r, err := NewEngine(WithSeed(1), WithVarianceMethod(probability.TwoPass)).PriceScalar(atm(), 1, true)
		convey.So(err, convey.ShouldBeNil)
		convey.So(r.StandardError, convey.ShouldEqual, 0.0)
	})
}

func TestVarianceMethods(t *testing.T) {
	convey.Convey("Single-pass and two-pass errors differ only by the N-1 correction", t, func() {
		single, err := NewEngine(WithSeed(8)).PriceScalar(atm(), 50000, false)
		convey.So(err, convey.ShouldBeNil)
		two, err := NewEngine(WithSeed(8), WithVarianceMethod(probability.TwoPass)).PriceScalar(atm(), 50000, false)
		convey.So(err, convey.ShouldBeNil)

		convey.So(two.Price, convey.ShouldEqual, single.Price)
		convey.So(two.StandardError/single.StandardError, convey.ShouldAlmostEqual, math.Sqrt(50000.0/49999.0), 1e-6)
	})
}

func TestMeasureVarianceReduction(t *testing.T) {
	convey.Convey("Antithetic pairing lowers the standard error", t, func() {
		report, err := NewEngine(WithSeed(12)).MeasureVarianceReduction(atm(), 5000, 10)
		convey.So(err, convey.ShouldBeNil)
		convey.So(report.AvgStandardErrorWith, convey.ShouldBeLessThan, report.AvgStandardErrorWithout)
		convey.So(report.ReductionPercent, convey.ShouldBeGreaterThan, 0.0)
		convey.So(report.ConvergenceSpeedup, convey.ShouldBeGreaterThan, 1.0)
	})

	convey.Convey("Rejects bad iteration counts", t, func() {
		for _, n := range []int{0, -1} {
			_, err := MeasureVarianceReduction(atm(), 1000, n)
			var ipe *models.InvalidParameterError
			convey.So(errors.As(err, &ipe), convey.ShouldBeTrue)
			convey.So(ipe.Field, convey.ShouldEqual, models.FieldIterations)
		}
		_, err := MeasureVarianceReduction(atm(), 0, 10)
		convey.So(errors.Is(err, models.ErrInvalidParameter), convey.ShouldBeTrue)
	})
}

func TestPricePortfolio(t *testing.T) {
	convey.Convey("Given a portfolio", t, func() {
		options := []models.OptionParameters{atm(), atm(), atm(), atm()}
		options[0].SpotPrice = 80
		options[2].SpotPrice = 120
		options[3].Volatility = 0.4

		convey.Convey("results keep the input order", func() {
			var priced atomic.Int64
			e := NewEngine(WithSeed(4), WithWorkers(2), WithPortfolioProgress(func(int) { priced.Add(1) }))

			results, err := e.PricePortfolio(options, 50000, true)
			convey.So(err, convey.ShouldBeNil)
			convey.So(len(results), convey.ShouldEqual, len(options))
			convey.So(priced.Load(), convey.ShouldEqual, int64(len(options)))

			for i, r := range results {
				bs := blackScholes(options[i])
				convey.So(math.Abs(r.Price-bs.Price), convey.ShouldBeLessThan, 5*r.StandardError)
			}
			convey.So(results[0].Price, convey.ShouldBeLessThan, results[1].Price)
			convey.So(results[1].Price, convey.ShouldBeLessThan, results[2].Price)
		})

		convey.Convey("an invalid option fails the whole call with its index", func() {
			options[2].Volatility = -1
			results, err := PricePortfolio(options, 1000, true)
			convey.So(results, convey.ShouldBeNil)
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(err.Error(), convey.ShouldStartWith, "option 2")
			convey.So(errors.Is(err, models.ErrInvalidParameter), convey.ShouldBeTrue)
		})

		convey.Convey("a bad path count is rejected", func() {
			_, err := PricePortfolio(options, 0, true)
			convey.So(errors.Is(err, models.ErrInvalidParameter), convey.ShouldBeTrue)
		})

		convey.Convey("an empty portfolio prices nothing", func() {
			results, err := PricePortfolio(nil, 1000, true)
			convey.So(err, convey.ShouldBeNil)
			convey.So(results, convey.ShouldBeEmpty)
		})
	})
}
