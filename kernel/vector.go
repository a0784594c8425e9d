package kernel

import (
	"fmt"
	"math"

	"github.com/bcdannyboy/mcgreeks/models"
)

type vectorKernel struct {
	width int
}

// NewVector returns a lane kernel of the given width. Widths other than 8 and
// 4 run two lanes at a time.
func NewVector(width int) Kernel {
	switch width {
	case 8, 4:
	default:
		width = 2
	}
	return vectorKernel{width: width}
}

func (k vectorKernel) Name() string { return fmt.Sprintf("vector-x%d", k.width) }

func (k vectorKernel) Width() int { return k.width }

func (k vectorKernel) Payoffs(dst, z []float64, g models.GBM) {
	dst = dst[:len(z)]

	var done int
	switch k.width {
	case 8:
		done = lanes8(dst, z, g)
	case 4:
		done = lanes4(dst, z, g)
	default:
		done = lanes2(dst, z, g)
	}

	// remainder
	scalarPayoffs(dst[done:], z[done:], g)
}

// The lane functions keep the scalar operation order: drift + float64(diffusion*z),
// then spot*exp per lane, then the payoff. exp stays a per-lane scalar call.

func lanes8(dst, z []float64, g models.GBM) int {
	drift, diffusion, spot, strike := g.Drift, g.Diffusion, g.Spot, g.Strike
	i := 0
	for ; i+8 <= len(z); i += 8 {
		in := (*[8]float64)(z[i : i+8])
		out := (*[8]float64)(dst[i : i+8])

		var e [8]float64
		for l := range e {
			e[l] = drift + float64(diffusion*in[l])
		}
		for l := range e {
			e[l] = spot * math.Exp(e[l])
		}
		for l := range e {
			out[l] = models.CallPayoff(e[l], strike)
		}
	}
	return i
}

func lanes4(dst, z []float64, g models.GBM) int {
	drift, diffusion, spot, strike := g.Drift, g.Diffusion, g.Spot, g.Strike
	i := 0
	for ; i+4 <= len(z); i += 4 {
		in := (*[4]float64)(z[i : i+4])
		out := (*[4]float64)(dst[i : i+4])

		e := [4]float64{
			drift + float64(diffusion*in[0]),
			drift + float64(diffusion*in[1]),
			drift + float64(diffusion*in[2]),
			drift + float64(diffusion*in[3]),
		}
		for l := range e {
			e[l] = spot * math.Exp(e[l])
		}
		out[0] = models.CallPayoff(e[0], strike)
		out[1] = models.CallPayoff(e[1], strike)
		out[2] = models.CallPayoff(e[2], strike)
		out[3] = models.CallPayoff(e[3], strike)
	}
	return i
}

func lanes2(dst, z []float64, g models.GBM) int {
	drift, diffusion, spot, strike := g.Drift, g.Diffusion, g.Spot, g.Strike
	i := 0
	for ; i+2 <= len(z); i += 2 {
		in := (*[2]float64)(z[i : i+2])
		out := (*[2]float64)(dst[i : i+2])

		e0 := drift + float64(diffusion*in[0])
		e1 := drift + float64(diffusion*in[1])
		out[0] = models.CallPayoff(spot*math.Exp(e0), strike)
		out[1] = models.CallPayoff(spot*math.Exp(e1), strike)
	}
	return i
}
