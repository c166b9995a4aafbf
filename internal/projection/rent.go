package projection

import (
	"github.com/ostolop/rent-vs-buy/pkg/constants"
	"github.com/ostolop/rent-vs-buy/pkg/finance"
	"go.uber.org/zap"
)

// rentTrajectory builds the renting-side records for years 0..SellAfterYears.
// The deposit that buying would consume is invested instead; each year's
// return is computed on the untouched compounding balance and credited to the
// renter's cash flow. Rent is only due while the child lives there, matching
// the buy side's occupancy window; utilities are due every year.
func rentTrajectory(logger *zap.Logger, buy BuyScenario, rent RentScenario, common CommonParams) []YearRecord {
	horizon := common.SellAfterYears
	records := make([]YearRecord, 0, horizon+1)
	records = append(records, YearRecord{
		Year:              0,
		Components:        map[string]float64{},
		BankBalance:       buy.Deposit,
		InvestmentBalance: buy.Deposit,
	})

	annualUtilities := common.MonthlyUtilities * constants.MonthsPerYear
	investmentBalance := buy.Deposit

	for year := 1; year <= horizon; year++ {
		builder := newYearBuilder()

		investmentReturn := investmentBalance * buy.InvestmentReturnRate
		investmentBalance += investmentReturn
		builder.add("investment_returns", investmentReturn)

		if year <= common.ChildLivingYears {
			annualRent := finance.Compound(rent.MonthlyRent, rent.AnnualIncrease, year-1) * constants.MonthsPerYear
			builder.add("rent", -annualRent)
		}
		builder.add("utilities", -annualUtilities)

		record := YearRecord{
			Year:              year,
			CashFlow:          builder.cashFlow,
			Components:        builder.components,
			InvestmentBalance: investmentBalance,
		}
		record.BankBalance = records[year-1].BankBalance + record.CashFlow
		records = append(records, record)
	}

	logger.Debug("rent trajectory complete",
		zap.String("op", "projection.rentTrajectory"),
		zap.Float64("finalInvestmentBalance", investmentBalance),
		zap.Float64("finalBankBalance", records[horizon].BankBalance),
	)
	return records
}
