package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	mpb "github.com/vbauerster/mpb/v7"
	"github.com/vbauerster/mpb/v7/decor"
	"github.com/xhhuango/json"
	"go.uber.org/zap"

	"github.com/bcdannyboy/mcgreeks/config"
	"github.com/bcdannyboy/mcgreeks/kernel"
	"github.com/bcdannyboy/mcgreeks/models"
	"github.com/bcdannyboy/mcgreeks/pricing"
)

type app struct {
	cfg    config.Config
	logger *zap.Logger

	paths      int
	antithetic bool
	workers    int
	params     models.OptionParameters
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "mcgreeks",
		Short:        "Monte Carlo pricing of a European call and its Greeks",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().IntVar(&a.paths, "paths", 0, "paths per pricing call (default from MCGREEKS_PATHS)")
	root.PersistentFlags().BoolVar(&a.antithetic, "antithetic", true, "pair every draw with its negation")
	root.PersistentFlags().IntVar(&a.workers, "workers", 0, "parallel workers, 0 for hardware parallelism")

	root.AddCommand(a.priceCmd(), a.portfolioCmd(), a.varianceCmd(), a.capsCmd())
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.paths > 0 {
		cfg.Paths = a.paths
	}
	if cmd.Flags().Changed("antithetic") {
		cfg.Antithetic = a.antithetic
	}
	if a.workers > 0 {
		cfg.Workers = a.workers
	}
	a.cfg = cfg

	a.logger, err = newLogger(cfg.LogLevel)
	return err
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, errors.Wrap(err, "log level")
	}
	zc := zap.NewProductionConfig()
	zc.Level = lvl
	return zc.Build()
}

func (a *app) engine(extra ...pricing.Option) *pricing.Engine {
	opts := []pricing.Option{
		pricing.WithLogger(a.logger),
		pricing.WithWorkers(a.cfg.Workers),
		pricing.WithVarianceMethod(a.cfg.VarianceMethod),
		pricing.WithVectorDisabled(a.cfg.DisableVector),
		pricing.WithCommonRandomNumbers(a.cfg.CommonRandom),
	}
	if a.cfg.Seeded {
		opts = append(opts, pricing.WithSeed(a.cfg.Seed))
	}
	return pricing.NewEngine(append(opts, extra...)...)
}

func addOptionFlags(cmd *cobra.Command, p *models.OptionParameters) {
	cmd.Flags().Float64Var(&p.SpotPrice, "spot", 100, "spot price")
	cmd.Flags().Float64Var(&p.StrikePrice, "strike", 100, "strike price")
	cmd.Flags().Float64Var(&p.TimeToMaturity, "maturity", 1, "time to maturity in years")
	cmd.Flags().Float64Var(&p.RiskFreeRate, "rate", 0.05, "risk-free rate")
	cmd.Flags().Float64Var(&p.Volatility, "vol", 0.2, "volatility")
}

func (a *app) priceCmd() *cobra.Command {
	var strategy, out string
	cmd := &cobra.Command{
		Use:   "price",
		Short: "Price one option with one or all strategies",
		RunE: func(cmd *cobra.Command, args []string) error {
			e := a.engine()
			type run struct {
				name string
				fn   func() (models.PricingResult, error)
			}
			runs := []run{
				{"scalar", func() (models.PricingResult, error) { return e.PriceScalar(a.params, a.cfg.Paths, a.cfg.Antithetic) }},
				{"vectorized", func() (models.PricingResult, error) { return e.PriceVectorized(a.params, a.cfg.Paths, a.cfg.Antithetic) }},
				{"parallel", func() (models.PricingResult, error) {
					return e.PriceParallel(a.params, a.cfg.Paths, a.cfg.Antithetic, a.cfg.Workers)
				}},
			}

			results := make(map[string]models.PricingResult)
			for _, r := range runs {
				if strategy != "all" && strategy != r.name {
					continue
				}
				start := time.Now()
				res, err := r.fn()
				if err != nil {
					return err
				}
				results[r.name] = res
				printResult(r.name, res, time.Since(start))
			}
			if len(results) == 0 {
				return errors.Errorf("unknown strategy %q", strategy)
			}

			v, _ := models.Validate(a.params)
			printResult("black-scholes", models.BlackScholesCall(v), 0)
			return writeJSON(out, results)
		},
	}
	addOptionFlags(cmd, &a.params)
	cmd.Flags().StringVar(&strategy, "strategy", "all", "scalar, vectorized, parallel or all")
	cmd.Flags().StringVar(&out, "out", "", "write results as JSON to this file")
	return cmd
}

func (a *app) portfolioCmd() *cobra.Command {
	var in, out string
	cmd := &cobra.Command{
		Use:   "portfolio",
		Short: "Price a JSON array of options concurrently",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(in)
			if err != nil {
				return errors.Wrapf(err, "reading %s", in)
			}
			var options []models.OptionParameters
			if err := json.Unmarshal(raw, &options); err != nil {
				return errors.Wrapf(err, "decoding %s", in)
			}
			if len(options) == 0 {
				fmt.Println("No options to price.")
				return nil
			}

			p := mpb.New(mpb.WithWidth(64))
			bar := p.AddBar(int64(len(options)),
				mpb.PrependDecorators(
					decor.Name("Pricing"),
					decor.Percentage(decor.WCSyncSpace),
				),
				mpb.AppendDecorators(
					decor.CountersNoUnit("(%d / %d)", decor.WCSyncSpace),
				),
			)

			e := a.engine(pricing.WithPortfolioProgress(func(int) { bar.Increment() }))
			results, err := e.PricePortfolio(options, a.cfg.Paths, a.cfg.Antithetic)
			if err != nil {
				bar.Abort(false)
				p.Wait()
				return err
			}
			p.Wait()

			for i, r := range results {
				printResult(fmt.Sprintf("option %d", i), r, 0)
			}
			return writeJSON(out, results)
		},
	}
	cmd.Flags().StringVar(&in, "in", "portfolio.json", "JSON array of option parameters")
	cmd.Flags().StringVar(&out, "out", "", "write results as JSON to this file")
	return cmd
}

func (a *app) varianceCmd() *cobra.Command {
	var iterations int
	cmd := &cobra.Command{
		Use:   "variance",
		Short: "Measure the standard error reduction from antithetic pairing",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := a.engine().MeasureVarianceReduction(a.params, a.cfg.Paths, iterations)
			if err != nil {
				return err
			}
			fmt.Printf("Avg standard error without antithetic: %s\n", fixed(report.AvgStandardErrorWithout, 6))
			fmt.Printf("Avg standard error with antithetic:    %s\n", fixed(report.AvgStandardErrorWith, 6))
			fmt.Printf("Reduction: %s%%\n", fixed(report.ReductionPercent, 2))
			fmt.Printf("Convergence speedup: %sx\n", fixed(report.ConvergenceSpeedup, 2))
			return nil
		},
	}
	addOptionFlags(cmd, &a.params)
	cmd.Flags().IntVar(&iterations, "iterations", 10, "repetitions to average over")
	return cmd
}

func (a *app) capsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "caps",
		Short: "Show detected CPU capabilities",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := kernel.Detect()
			if model := kernel.CPUModel(); model != "" {
				fmt.Printf("CPU: %s\n", model)
			}
			fmt.Printf("Logical cores: %d\n", c.LogicalCores)
			fmt.Printf("Vector width: %d doubles\n", c.VectorWidth)
			fmt.Printf("Features: %s\n", strings.Join(c.Features, ", "))
			fmt.Printf("Vectorized kernel: %s\n", kernel.Select(c, a.cfg.DisableVector).Name())
			return nil
		},
	}
}

func fixed(f float64, places int32) string {
	return decimal.NewFromFloat(f).StringFixed(places)
}

func printResult(name string, r models.PricingResult, elapsed time.Duration) {
	fmt.Printf("%-14s price=%s se=%s delta=%s gamma=%s vega=%s",
		name, fixed(r.Price, 4), fixed(r.StandardError, 4),
		fixed(r.Delta, 4), fixed(r.Gamma, 4), fixed(r.Vega, 4))
	if elapsed > 0 {
		fmt.Printf(" (%v)", elapsed)
	}
	fmt.Println()
}

func writeJSON(path string, v interface{}) error {
	if path == "" {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "marshalling results")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	fmt.Printf("Wrote results to %s\n", path)
	return nil
}
