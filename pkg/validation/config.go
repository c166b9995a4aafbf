// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"
)

// ValidateOccupancyWindow warns when the occupancy window extends past the
// sale horizon, since the extra years can never take effect.
func ValidateOccupancyWindow(childLivingYears, sellAfterYears int) string {
	if childLivingYears > sellAfterYears {
		return fmt.Sprintf("Occupancy window of %d years extends past the %d-year sale horizon - the extra years have no effect",
			childLivingYears, sellAfterYears)
	}
	return ""
}

// ValidateLoanTerm warns when the mortgage matures before the sale, leaving
// later years with no mortgage payment line.
func ValidateLoanTerm(loanTermYears, sellAfterYears int) string {
	if loanTermYears > 0 && loanTermYears < sellAfterYears {
		return fmt.Sprintf("Loan term of %d years matures before the %d-year sale horizon - later years carry no mortgage payment",
			loanTermYears, sellAfterYears)
	}
	return ""
}

// ValidateCGTConfig warns when a capital gains tax rate is configured for a
// primary residence that the default policy exempts.
func ValidateCGTConfig(cgtRatePercent float64, secondHome bool, cgtPolicy string) string {
	if cgtRatePercent > 0 && !secondHome && cgtPolicy != "always" {
		return fmt.Sprintf("cgtRate of %.2f%% is configured but a primary residence is exempt under the secondHomeOnly policy",
			cgtRatePercent)
	}
	return ""
}

// ValidateRoomRental warns when room rental is configured with no occupancy
// window, which puts the property in full-house letting from year one.
func ValidateRoomRental(roomRentalConfigured bool, childLivingYears int) string {
	if roomRentalConfigured && childLivingYears == 0 {
		return "Room rental is configured with childLivingYears of 0 - the property lets as a full house from year one"
	}
	return ""
}
