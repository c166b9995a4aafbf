// Package stampduty computes the progressive band tax due on a property purchase.
package stampduty

import (
	"math"

	"github.com/ostolop/rent-vs-buy/pkg/mathutil"
)

// Band is one tier of a progressive tax table. The slice of the purchase
// price above Lower and at most Upper is taxed at Rate.
type Band struct {
	Lower float64
	Upper float64
	Rate  float64
}

// StandardBands is the table for a buyer's only or main residence.
var StandardBands = []Band{
	{Lower: 0, Upper: 250000, Rate: 0.00},
	{Lower: 250000, Upper: 925000, Rate: 0.05},
	{Lower: 925000, Upper: 1500000, Rate: 0.10},
	{Lower: 1500000, Upper: math.Inf(1), Rate: 0.12},
}

// SecondHomeBands is the table carrying the additional-property surcharge.
var SecondHomeBands = []Band{
	{Lower: 0, Upper: 125000, Rate: 0.05},
	{Lower: 125000, Upper: 250000, Rate: 0.07},
	{Lower: 250000, Upper: math.Inf(1), Rate: 0.10},
}

// Bands returns the table selected by the second-home flag.
func Bands(secondHome bool) []Band {
	if secondHome {
		return SecondHomeBands
	}
	return StandardBands
}

// Calculate returns the stamp duty due on a purchase at the given price.
// Standard marginal computation: each band taxes only the portion of the
// price falling within it, so every band below the price is always charged
// in full at its own rate. No rounding is applied here; rounding is a
// display concern.
func Calculate(propertyValue float64, secondHome bool) float64 {
	duty := 0.00
	for _, band := range Bands(secondHome) {
		if propertyValue <= band.Lower {
			break
		}
		portion := mathutil.Min(propertyValue, band.Upper) - band.Lower
		duty += portion * band.Rate
	}
	return duty
}
