package projection

import (
	"fmt"
	"math"

	"github.com/ostolop/rent-vs-buy/pkg/format"
	"github.com/ostolop/rent-vs-buy/pkg/mathutil"
)

// Verdict values for Recommendation.Verdict and Recommendation.NPVVerdict.
const (
	VerdictBuy  = "buy"
	VerdictRent = "rent"
)

// buildRecommendation compares the two final positions and assembles the
// narrative summary. The balance verdict and the NPV verdict are reported
// independently; when they disagree the summary says so.
func buildRecommendation(buy BuyScenario, common CommonParams, policy Policy, result *Result, breakEvenYear int) Recommendation {
	buyFinal := finalPosition(result.Buy, policy)
	rentFinal := result.Rent[len(result.Rent)-1].BankBalance

	rec := Recommendation{
		BalanceAdvantage: buyFinal - rentFinal,
		NPVAdvantage:     result.BuyNPV - result.RentNPV,
		BreakEvenYear:    breakEvenYear,
	}
	rec.Verdict = VerdictRent
	if mathutil.IsPositive(rec.BalanceAdvantage) {
		rec.Verdict = VerdictBuy
	}
	rec.NPVVerdict = VerdictRent
	if mathutil.IsPositive(rec.NPVAdvantage) {
		rec.NPVVerdict = VerdictBuy
	}
	rec.Summary = buildSummary(buy, common, result, rec)
	return rec
}

func buildSummary(buy BuyScenario, common CommonParams, result *Result, rec Recommendation) []string {
	lines := make([]string, 0, 8)

	switch {
	case mathutil.IsPositive(rec.BalanceAdvantage):
		lines = append(lines, fmt.Sprintf("Buying leaves you %s better off than renting after %d years.",
			format.Currency(rec.BalanceAdvantage), common.SellAfterYears))
	case mathutil.IsNegative(rec.BalanceAdvantage):
		lines = append(lines, fmt.Sprintf("Renting leaves you %s better off than buying after %d years.",
			format.Currency(-rec.BalanceAdvantage), common.SellAfterYears))
	default:
		lines = append(lines, fmt.Sprintf("Buying and renting come out level after %d years.",
			common.SellAfterYears))
	}

	lines = append(lines, fmt.Sprintf("The property appreciates from %s to %s before selling costs.",
		format.Currency(buy.PropertyValue), format.Currency(result.Sale.SellingPrice)))

	finalRent := result.Rent[len(result.Rent)-1]
	lines = append(lines, fmt.Sprintf("Investing the %s deposit instead grows it to %s.",
		format.Currency(buy.Deposit), format.Currency(finalRent.InvestmentBalance)))

	totalInterest := 0.00
	for _, record := range result.Buy {
		totalInterest += record.InterestPaid
	}
	lines = append(lines, fmt.Sprintf("The mortgage costs %s per month and %s in interest over the period.",
		format.Currency(result.MonthlyMortgagePayment), format.Currency(totalInterest)))

	if buy.RoomRental != nil {
		totalLetting := 0.00
		for _, record := range result.Buy {
			totalLetting += record.Components["rental_income"]
		}
		lines = append(lines, fmt.Sprintf("Letting income contributes %s towards the purchase.",
			format.Currency(totalLetting)))
	}

	if mathutil.IsPositive(result.Sale.CapitalGainsTax) {
		lines = append(lines, fmt.Sprintf("The sale incurs %s capital gains tax on a taxable gain of %s.",
			format.Currency(result.Sale.CapitalGainsTax), format.Currency(result.Sale.TaxableGain)))
	}

	npvSide := "renting"
	if rec.NPVVerdict == VerdictBuy {
		npvSide = "buying"
	}
	if rec.NPVVerdict == rec.Verdict {
		lines = append(lines, fmt.Sprintf("Net present value agrees, favouring %s by %s.",
			npvSide, format.Currency(math.Abs(rec.NPVAdvantage))))
	} else {
		lines = append(lines, fmt.Sprintf("Net present value disagrees with the balance comparison, favouring %s by %s.",
			npvSide, format.Currency(math.Abs(rec.NPVAdvantage))))
	}

	if rec.BreakEvenYear > 0 {
		lines = append(lines, fmt.Sprintf("Buying catches up with renting in year %d.", rec.BreakEvenYear))
	} else {
		lines = append(lines, fmt.Sprintf("Buying does not catch up with renting within %d years.",
			common.SellAfterYears))
	}

	return lines
}
