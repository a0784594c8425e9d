package probability

import (
	"math"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

type VarianceMethod int

const (
	// SinglePass uses the population form sum(x^2)/N - mean^2.
	SinglePass VarianceMethod = iota
	// TwoPass uses sum((x-mean)^2)/(N-1), accumulated per partition.
	TwoPass
)

func (m VarianceMethod) String() string {
	if m == TwoPass {
		return "two-pass"
	}
	return "single-pass"
}

func ParseVarianceMethod(s string) (VarianceMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "single-pass", "singlepass":
		return SinglePass, nil
	case "two-pass", "twopass":
		return TwoPass, nil
	}
	return SinglePass, errors.Errorf("unknown variance method %q", s)
}

// Accumulator is the partial statistic of one partition. Merge is commutative
// and associative, so partitions can be combined in any order.
type Accumulator struct {
	Count int
	Sum   float64 // sum of discounted payoffs
	SumSq float64 // sum of squared discounted payoffs
	M2    float64 // sum of squared deviations from the partition mean
}

// AddDiscounted discounts payoffs in place and folds them into a.
func (a *Accumulator) AddDiscounted(payoffs []float64, discount float64) {
	if len(payoffs) == 0 {
		return
	}
	floats.Scale(discount, payoffs)
	a.Add(payoffs)
}

// Add folds already discounted values into a.
func (a *Accumulator) Add(x []float64) {
	if len(x) == 0 {
		return
	}
	b := Accumulator{
		Count: len(x),
		Sum:   floats.Sum(x),
		SumSq: floats.Dot(x, x),
	}
	if len(x) > 1 {
		_, variance := stat.MeanVariance(x, nil)
		b.M2 = variance * float64(len(x)-1)
	}
	*a = Merge(*a, b)
}

func (a Accumulator) Mean() float64 {
	if a.Count == 0 {
		return 0
	}
	return a.Sum / float64(a.Count)
}

// Variance returns the estimator variance of a single sample under m.
func (a Accumulator) Variance(m VarianceMethod) float64 {
	if a.Count == 0 {
		return 0
	}
	n := float64(a.Count)
	if m == TwoPass {
		if a.Count < 2 {
			return 0
		}
		return a.M2 / (n - 1)
	}
	mean := a.Sum / n
	v := a.SumSq/n - mean*mean
	if v < 0 {
		return 0
	}
	return v
}

// Estimate returns the mean and its standard error sqrt(variance/N).
func (a Accumulator) Estimate(m VarianceMethod) (mean, standardError float64) {
	if a.Count == 0 {
		return 0, 0
	}
	return a.Mean(), math.Sqrt(a.Variance(m) / float64(a.Count))
}

// Merge combines two partial statistics.
func Merge(a, b Accumulator) Accumulator {
	if a.Count == 0 {
		return b
	}
	if b.Count == 0 {
		return a
	}
	na, nb := float64(a.Count), float64(b.Count)
	n := na + nb
	delta := b.Sum/nb - a.Sum/na
	return Accumulator{
		Count: a.Count + b.Count,
		Sum:   a.Sum + b.Sum,
		SumSq: a.SumSq + b.SumSq,
		M2:    a.M2 + b.M2 + delta*delta*na*nb/n,
	}
}

// MergeAll folds the accumulators in slice order.
func MergeAll(parts []Accumulator) Accumulator {
	var total Accumulator
	for _, p := range parts {
		total = Merge(total, p)
	}
	return total
}

// Reduce discounts payoffs in place and returns the mean and standard error.
func Reduce(payoffs []float64, discount float64, m VarianceMethod) (mean, standardError float64) {
	var acc Accumulator
	acc.AddDiscounted(payoffs, discount)
	return acc.Estimate(m)
}
