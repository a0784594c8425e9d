package probability

import (
	"math"

	"golang.org/x/exp/rand"
)

// Sampler fills buffers with standard-normal deviates using Box-Muller.
// A Sampler owns its generator and must not be shared between goroutines.
type Sampler struct {
	rng *rand.Rand
}

func NewSampler(seed uint64) *Sampler {
	return &Sampler{rng: rand.New(rand.NewSource(seed))}
}

// NewEntropySampler seeds a fresh generator from the operating system.
func NewEntropySampler() *Sampler {
	return NewSampler(EntropySeed())
}

// uniform draws from (0, 1).
func (s *Sampler) uniform() float64 {
	for {
		u := s.rng.Float64()
		if u > 0 {
			return u
		}
	}
}

// Normal returns one deviate: sqrt(-2 ln u1) * cos(2 pi u2).
func (s *Sampler) Normal() float64 {
	u1 := s.uniform()
	u2 := s.uniform()
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

// Fill writes len(buf) deviates. With antithetic pairing the length must be
// even: the first half holds independent draws and buf[n/2+i] = -buf[i].
func (s *Sampler) Fill(buf []float64, antithetic bool) {
	if !antithetic {
		for i := range buf {
			buf[i] = s.Normal()
		}
		return
	}

	if len(buf)%2 != 0 {
		panic("probability: antithetic fill requires an even buffer length")
	}
	half := len(buf) / 2
	lo, hi := buf[:half], buf[half:]
	for i := range lo {
		z := s.Normal()
		lo[i] = z
		hi[i] = -z
	}
}

// FoldAntithetic averages the payoffs of each antithetic pair in place and
// returns the first half, one observation per pair. The pair averages are
// independent, so their variance is the estimator variance.
func FoldAntithetic(payoffs []float64) []float64 {
	half := len(payoffs) / 2
	lo, hi := payoffs[:half], payoffs[half:2*half]
	for i := range lo {
		lo[i] = 0.5 * (lo[i] + hi[i])
	}
	return lo
}
