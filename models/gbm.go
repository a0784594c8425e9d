package models

import "math"

// GBM is the risk-neutral terminal-price map for one option scenario.
type GBM struct {
	Spot      float64 // Initial price
	Strike    float64 // Call strike
	Drift     float64 // (r - sigma^2/2) * T
	Diffusion float64 // sigma * sqrt(T)
	Discount  float64 // exp(-r * T)
}

func NewGBM(p OptionParameters) GBM {
	t := p.TimeToMaturity
	sigma := p.Volatility
	return GBM{
		Spot:      p.SpotPrice,
		Strike:    p.StrikePrice,
		Drift:     (p.RiskFreeRate - 0.5*sigma*sigma) * t,
		Diffusion: sigma * math.Sqrt(t),
		Discount:  math.Exp(-p.RiskFreeRate * t),
	}
}

// Exponent returns drift + diffusion*z. The explicit conversion keeps the
// compiler from fusing the multiply-add, so every kernel rounds identically.
func (g GBM) Exponent(z float64) float64 {
	return g.Drift + float64(g.Diffusion*z)
}

// TerminalPrice maps a standard-normal deviate to S_T.
func (g GBM) TerminalPrice(z float64) float64 {
	return g.Spot * math.Exp(g.Exponent(z))
}

func (g GBM) Payoff(z float64) float64 {
	return CallPayoff(g.TerminalPrice(z), g.Strike)
}

// CallPayoff is max(s - k, 0).
func CallPayoff(s, k float64) float64 {
	if s > k {
		return s - k
	}
	return 0
}
