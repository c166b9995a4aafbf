package projection

import (
	"github.com/ostolop/rent-vs-buy/pkg/constants"
	"github.com/ostolop/rent-vs-buy/pkg/finance"
	"github.com/ostolop/rent-vs-buy/pkg/mathutil"
	"github.com/ostolop/rent-vs-buy/pkg/mortgage"
	"go.uber.org/zap"
)

// buyTrajectory builds the purchase-side records for years 0..SellAfterYears,
// ending with the terminal sale of the property.
func buyTrajectory(logger *zap.Logger, buy BuyScenario, common CommonParams, policy Policy) ([]YearRecord, SaleSummary) {
	horizon := common.SellAfterYears
	records := make([]YearRecord, 0, horizon+1)
	records = append(records, buyYearZero(buy, policy))

	schedule := mortgage.AnnualSchedule(buy.LoanAmount, buy.MortgageRate, buy.LoanTermYears)
	annualUtilities := common.MonthlyUtilities * constants.MonthsPerYear

	propertyValue := buy.PropertyValue
	mortgageBalance := buy.LoanAmount
	cumulativeInterest := 0.00
	var sale SaleSummary

	for year := 1; year <= horizon; year++ {
		builder := newYearBuilder()
		propertyValue *= 1.00 + buy.AppreciationRate

		var interestPaid, principalPaid float64
		if year <= len(schedule) {
			payment := schedule[year-1]
			interestPaid = payment.Interest
			principalPaid = payment.Principal
			mortgageBalance = payment.RemainingPrincipal
			cumulativeInterest += interestPaid
			builder.add("mortgage_payments", -payment.Payment)
		}

		builder.add("home_insurance", -buy.AnnualInsurance)
		builder.add("utilities", -annualUtilities)
		if buy.RoomRental != nil {
			builder.add("rental_income",
				rentalIncome(*buy.RoomRental, year, common.ChildLivingYears))
		}

		if year == horizon {
			sale = sellProperty(logger, buy, policy, propertyValue, mortgageBalance, cumulativeInterest)
			builder.add("sale_proceeds",
				sale.SellingPrice-sale.AgentFees-sale.MortgageRepaid)
			builder.add("capital_gains_tax", -sale.CapitalGainsTax)
		}

		record := YearRecord{
			Year:            year,
			CashFlow:        builder.cashFlow,
			Components:      builder.components,
			PropertyValue:   propertyValue,
			MortgageBalance: mortgageBalance,
			Equity:          propertyValue - mortgageBalance,
			InterestPaid:    interestPaid,
			PrincipalPaid:   principalPaid,
		}
		record.BankBalance = records[year-1].BankBalance + record.CashFlow
		records = append(records, record)
	}

	return records, sale
}

// buyYearZero records the purchase itself. The full outlay leaves as cash
// flow; whether it also opens the bank balance in deficit is a policy choice.
func buyYearZero(buy BuyScenario, policy Policy) YearRecord {
	builder := newYearBuilder()
	builder.add("deposit", -buy.Deposit)
	builder.add("conveyancing_fees", -buy.ConveyancingFees)
	builder.add("stamp_duty", -buy.StampDuty)
	builder.add("upfront_renovation", -buy.RenovationCost)
	builder.add("upfront_furniture", -buy.FurnitureCost)

	record := YearRecord{
		Year:            0,
		CashFlow:        builder.cashFlow,
		Components:      builder.components,
		PropertyValue:   buy.PropertyValue,
		MortgageBalance: buy.LoanAmount,
		Equity:          buy.PropertyValue - buy.LoanAmount,
	}
	if policy.BalanceConvention == BalanceConventionDeficit {
		record.BankBalance = record.CashFlow
	}
	return record
}

// rentalIncome returns the letting income for one year. While the child
// still lives in the property a single room is let for the configured months;
// afterwards the whole house is let to two tenants year-round.
func rentalIncome(rental RoomRental, year, childLivingYears int) float64 {
	monthlyRent := finance.Compound(rental.MonthlyRent, rental.AnnualIncrease, year-1)
	if year <= childLivingYears {
		return monthlyRent * float64(rental.MonthsPerYear)
	}
	return monthlyRent * constants.MonthsPerYear * constants.FullHouseTenants
}

// sellProperty liquidates the property at the end of the horizon. The capital
// gain is measured against the full acquisition cost, reduced by relief on a
// share of the mortgage interest paid, and taxed only when the policy says so.
func sellProperty(logger *zap.Logger, buy BuyScenario, policy Policy, sellingPrice, remainingMortgage, cumulativeInterest float64) SaleSummary {
	agentFees := sellingPrice * buy.SellingAgentFeeRate
	originalCost := buy.PropertyValue + buy.ConveyancingFees + buy.StampDuty
	capitalGain := sellingPrice - originalCost
	interestDeduction := constants.InterestReliefRate * cumulativeInterest
	taxableGain := mathutil.Max(0, capitalGain-interestDeduction)

	capitalGainsTax := 0.00
	if policy.CGT == CGTAlways || buy.SecondHome {
		capitalGainsTax = taxableGain * buy.CGTRate
	}

	summary := SaleSummary{
		SellingPrice:      sellingPrice,
		AgentFees:         agentFees,
		MortgageRepaid:    remainingMortgage,
		OriginalCost:      originalCost,
		CapitalGain:       capitalGain,
		InterestDeduction: interestDeduction,
		TaxableGain:       taxableGain,
		CapitalGainsTax:   capitalGainsTax,
		NetProceeds:       sellingPrice - agentFees - remainingMortgage - capitalGainsTax,
	}

	logger.Debug("terminal sale",
		zap.String("op", "projection.sellProperty"),
		zap.Float64("sellingPrice", sellingPrice),
		zap.Float64("capitalGainsTax", capitalGainsTax),
		zap.Float64("netProceeds", summary.NetProceeds),
	)
	return summary
}
