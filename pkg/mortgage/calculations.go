// Package mortgage provides fixed-rate mortgage amortization utilities.
package mortgage

import (
	"math"

	"github.com/ostolop/rent-vs-buy/pkg/constants"
	"github.com/ostolop/rent-vs-buy/pkg/mathutil"
)

// Payment holds the values for one year of an amortization schedule.
type Payment struct {
	Payment            float64
	Principal          float64
	Interest           float64
	RemainingPrincipal float64
}

// MonthlyPayment calculates the monthly payment for a fixed-rate loan using
// the standard annuity formula. Rates are annual decimal fractions (0.045
// for 4.5%). A zero rate divides the principal evenly across the term.
func MonthlyPayment(principal, annualRate float64, termYears int) float64 {
	termMonths := termYears * constants.MonthsPerYear
	if termMonths <= 0 || principal <= 0 {
		return 0
	}
	if annualRate == 0 {
		// For zero interest, simply divide the principal by term
		return principal / float64(termMonths)
	}

	periodicRate := annualRate / constants.MonthsPerYear
	power := math.Pow(1.00+periodicRate, float64(termMonths))
	discountFactor := (power - 1.00) / power
	return principal * periodicRate / discountFactor
}

// AnnualInterest returns the interest charged for one year on the balance at
// the start of that year. Interest accrues once per year on the opening
// balance rather than compounding monthly.
func AnnualInterest(balance, annualRate float64) float64 {
	return balance * annualRate
}

// AnnualSchedule generates the year-by-year amortization schedule across the
// full loan term. Each year pays twelve monthly payments with the interest
// and principal split of AnnualInterest. The final scheduled year settles
// whatever balance remains so the schedule always closes at exactly zero.
func AnnualSchedule(principal, annualRate float64, termYears int) []Payment {
	if termYears <= 0 || principal <= 0 {
		return nil
	}

	annualPayment := MonthlyPayment(principal, annualRate, termYears) * constants.MonthsPerYear
	schedule := make([]Payment, 0, termYears)
	balance := principal

	for year := 1; year <= termYears; year++ {
		interest := AnnualInterest(balance, annualRate)
		principalPaid := annualPayment - interest
		if year == termYears || mathutil.Round(balance-principalPaid) <= 0 {
			// Settle the remainder; machine error must not leave a
			// residual balance past maturity.
			principalPaid = balance
		}

		payment := Payment{
			Payment:            interest + principalPaid,
			Principal:          principalPaid,
			Interest:           interest,
			RemainingPrincipal: balance - principalPaid,
		}
		if mathutil.IsZero(payment.RemainingPrincipal) {
			payment.RemainingPrincipal = 0.00
		}
		schedule = append(schedule, payment)

		balance = payment.RemainingPrincipal
		if balance == 0 {
			break
		}
	}

	return schedule
}
