package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// ZVal returns the two-tailed Z-value associated with a specific confidence interval.
// The interval is a number from 0 to 100 percent.
func ZVal(confidenceInterval float64) float64 {
	dist := distuv.Normal{
		Mu:    0,
		Sigma: 1,
	}
	area := (1 + (confidenceInterval / 100)) / 2
	return dist.Quantile(area)
}

// WinRate returns the observed rate of wins out of n games and its Wilson
// score interval at the given confidence (0 to 100).
func WinRate(wins, n int, confidenceInterval float64) (rate, low, high float64) {
	if n == 0 {
		return 0, 0, 1
	}
	z := ZVal(confidenceInterval)
	p := float64(wins) / float64(n)
	nf := float64(n)
	denom := 1 + z*z/nf
	center := (p + z*z/(2*nf)) / denom
	margin := z / denom * math.Sqrt(p*(1-p)/nf+z*z/(4*nf*nf))
	return p, math.Max(0, center-margin), math.Min(1, center+margin)
}
