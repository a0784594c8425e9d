// Package kernel maps standard-normal deviates to discounted-payoff inputs.
// Every kernel produces bit-identical payoffs for identical deviates; the
// vector kernels only change how many lanes are processed per iteration.
package kernel

import "github.com/bcdannyboy/mcgreeks/models"

type Kernel interface {
	Name() string
	// Width is the number of float64 lanes processed together, 1 for scalar.
	Width() int
	// Payoffs writes the undiscounted call payoff for z[i] into dst[i].
	// dst must be at least as long as z.
	Payoffs(dst, z []float64, g models.GBM)
}

type scalarKernel struct{}

func Scalar() Kernel { return scalarKernel{} }

func (scalarKernel) Name() string { return "scalar" }

func (scalarKernel) Width() int { return 1 }

func (scalarKernel) Payoffs(dst, z []float64, g models.GBM) {
	scalarPayoffs(dst, z, g)
}

func scalarPayoffs(dst, z []float64, g models.GBM) {
	dst = dst[:len(z)]
	for i, zi := range z {
		dst[i] = g.Payoff(zi)
	}
}

// Select returns the vector kernel matching c, or the scalar kernel when no
// vector unit is usable or forceScalar is set.
func Select(c Capabilities, forceScalar bool) Kernel {
	if forceScalar || c.VectorWidth < 2 {
		return Scalar()
	}
	return NewVector(c.VectorWidth)
}
