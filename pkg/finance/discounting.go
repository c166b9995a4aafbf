// Package finance provides discounting and compounding primitives.
package finance

import "math"

// NPV computes the net present value of a cash flow series using the standard
// discounted-cash-flow formula: sum of flows[t] / (1+rate)^t for t = 0..N.
// Index 0 is undiscounted. The rate must be greater than -1.
func NPV(rate float64, flows []float64) float64 {
	total := 0.00
	for t, flow := range flows {
		total += flow / math.Pow(1.00+rate, float64(t))
	}
	return total
}

// Compound returns base grown at the given annual rate over a whole number of
// periods, i.e. base * (1+rate)^periods.
func Compound(base, rate float64, periods int) float64 {
	if periods <= 0 {
		return base
	}
	return base * math.Pow(1.00+rate, float64(periods))
}

// Sum returns the arithmetic sum of a cash flow series.
func Sum(flows []float64) float64 {
	total := 0.00
	for _, flow := range flows {
		total += flow
	}
	return total
}
