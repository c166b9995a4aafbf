// Package config defines conversion utilities for configuration objects.
package config

import (
	"fmt"

	"github.com/ostolop/rent-vs-buy/internal/projection"
	"github.com/ostolop/rent-vs-buy/pkg/constants"
	"github.com/ostolop/rent-vs-buy/pkg/mathutil"
)

// percentToRate converts a human-friendly percentage (4.5 for 4.5%) to the
// decimal fraction the engine works in (0.045).
func percentToRate(percent float64) float64 {
	return percent / constants.PercentageMultiplier
}

// ToBuyScenario converts the purchase-side configuration into engine inputs,
// resolving the deposit and deriving the loan amount when omitted.
func (b *BuyConfig) ToBuyScenario() (projection.BuyScenario, error) {
	deposit := b.Deposit
	if b.DepositPercent != 0 {
		if b.Deposit != 0 {
			return projection.BuyScenario{}, fmt.Errorf("deposit and depositPercent are both set; configure one")
		}
		deposit = mathutil.ApplyPercentage(b.PropertyValue, b.DepositPercent)
	}

	loanAmount := b.LoanAmount
	if loanAmount == 0 {
		loanAmount = b.PropertyValue - deposit
	}

	scenario := projection.BuyScenario{
		PropertyValue:        b.PropertyValue,
		Deposit:              deposit,
		LoanAmount:           loanAmount,
		MortgageRate:         percentToRate(b.MortgageRate),
		LoanTermYears:        b.LoanTermYears,
		ConveyancingFees:     b.ConveyancingFees,
		SellingAgentFeeRate:  percentToRate(b.SellingAgentFee),
		AppreciationRate:     percentToRate(b.AppreciationRate),
		InvestmentReturnRate: percentToRate(b.InvestmentReturnRate),
		RenovationCost:       b.RenovationCost,
		FurnitureCost:        b.FurnitureCost,
		AnnualInsurance:      b.AnnualInsurance,
		SecondHome:           b.SecondHome,
		CGTRate:              percentToRate(b.CGTRate),
	}
	if b.RoomRental != nil {
		scenario.RoomRental = &projection.RoomRental{
			MonthlyRent:    b.RoomRental.MonthlyRent,
			AnnualIncrease: percentToRate(b.RoomRental.AnnualIncrease),
			MonthsPerYear:  b.RoomRental.MonthsPerYear,
		}
	}

	return scenario, nil
}

// ToRentScenario converts the renting-side configuration into engine inputs.
func (r *RentConfig) ToRentScenario() projection.RentScenario {
	return projection.RentScenario{
		MonthlyRent:    r.MonthlyRent,
		AnnualIncrease: percentToRate(r.AnnualIncrease),
	}
}

// ToCommonParams converts the shared configuration into engine inputs.
func (c *CommonConfig) ToCommonParams() projection.CommonParams {
	return projection.CommonParams{
		MonthlyUtilities: c.MonthlyUtilities,
		SellAfterYears:   c.SellAfterYears,
		ChildLivingYears: c.ChildLivingYears,
	}
}

// ToPolicy converts the policy strings into engine values. Unknown strings
// pass through so the engine reports them as validation failures.
func (p *PolicyConfig) ToPolicy() projection.Policy {
	return projection.Policy{
		BalanceConvention: projection.BalanceConvention(p.BalanceConvention),
		CGT:               projection.CGTPolicy(p.CGT),
		EquityInVerdict:   p.EquityInVerdict,
	}
}

// ToProjectionInputs converts a full scenario configuration into the four
// engine input groups.
func (s *ScenarioConfig) ToProjectionInputs() (projection.BuyScenario, projection.RentScenario, projection.CommonParams, projection.Policy, error) {
	buy, err := s.Buy.ToBuyScenario()
	if err != nil {
		return projection.BuyScenario{}, projection.RentScenario{}, projection.CommonParams{}, projection.Policy{}, err
	}
	return buy, s.Rent.ToRentScenario(), s.Common.ToCommonParams(), s.Policy.ToPolicy(), nil
}
