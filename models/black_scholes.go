package models

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// BlackScholesCall returns the closed-form price and Greeks for the same
// contract the simulation prices. StandardError is zero.
func BlackScholesCall(v Validated) PricingResult {
	p := v.Params()
	S, K, T, r, sigma := p.SpotPrice, p.StrikePrice, p.TimeToMaturity, p.RiskFreeRate, p.Volatility

	sqrtT := math.Sqrt(T)
	d1 := (math.Log(S/K) + (r+0.5*sigma*sigma)*T) / (sigma * sqrtT)
	d2 := d1 - sigma*sqrtT

	n := distuv.UnitNormal
	return PricingResult{
		Price: S*n.CDF(d1) - K*math.Exp(-r*T)*n.CDF(d2),
		Delta: n.CDF(d1),
		Gamma: n.Prob(d1) / (S * sigma * sqrtT),
		Vega:  S * n.Prob(d1) * sqrtT,
	}
}
