// Package projection defines the data structures for a buy-versus-rent
// comparison and computes the year-indexed projection for both strategies.
package projection

import (
	"fmt"

	"github.com/ostolop/rent-vs-buy/pkg/constants"
	"github.com/ostolop/rent-vs-buy/pkg/finance"
	"github.com/ostolop/rent-vs-buy/pkg/mortgage"
	"github.com/ostolop/rent-vs-buy/pkg/stampduty"
	"go.uber.org/zap"
)

// RoomRental configures letting part of the property while it is occupied.
// The triple is modelled as one optional struct: either the whole block is
// configured or none of it is.
type RoomRental struct {
	MonthlyRent    float64
	AnnualIncrease float64
	MonthsPerYear  int
}

// BuyScenario holds the purchase-side inputs. All rates are annual decimal
// fractions (0.045 for 4.5%).
type BuyScenario struct {
	PropertyValue        float64
	Deposit              float64
	LoanAmount           float64
	MortgageRate         float64
	LoanTermYears        int
	ConveyancingFees     float64
	StampDuty            float64 // derived; any supplied value is overwritten
	SellingAgentFeeRate  float64
	AppreciationRate     float64
	InvestmentReturnRate float64
	RenovationCost       float64
	FurnitureCost        float64
	AnnualInsurance      float64
	RoomRental           *RoomRental
	SecondHome           bool
	CGTRate              float64 // zero means the default rate
}

// RentScenario holds the renting-side inputs.
type RentScenario struct {
	MonthlyRent    float64
	AnnualIncrease float64
}

// CommonParams holds inputs shared by both strategies.
type CommonParams struct {
	MonthlyUtilities float64
	SellAfterYears   int
	ChildLivingYears int
}

// BalanceConvention selects how the buy strategy's year-zero bank balance
// treats the initial outlay.
type BalanceConvention string

const (
	// BalanceConventionSpent starts the buyer at zero: the outlay is money
	// already gone, tracked only in year-zero cash flow.
	BalanceConventionSpent BalanceConvention = "spent"

	// BalanceConventionDeficit starts the buyer at the negative of the
	// initial outlay.
	BalanceConventionDeficit BalanceConvention = "deficit"
)

// CGTPolicy selects when capital gains tax applies to the terminal sale.
type CGTPolicy string

const (
	// CGTSecondHomeOnly exempts a main residence from capital gains tax.
	CGTSecondHomeOnly CGTPolicy = "secondHomeOnly"

	// CGTAlways taxes the gain regardless of residence status.
	CGTAlways CGTPolicy = "always"
)

// Policy collects the accounting conventions the projection applies. The
// zero value selects the defaults: spent balance convention, second-home-only
// CGT, and a verdict based on liquid balances alone.
type Policy struct {
	BalanceConvention BalanceConvention
	CGT               CGTPolicy
	EquityInVerdict   bool
}

func (p Policy) withDefaults() Policy {
	if p.BalanceConvention == "" {
		p.BalanceConvention = BalanceConventionSpent
	}
	if p.CGT == "" {
		p.CGT = CGTSecondHomeOnly
	}
	return p
}

func (p Policy) validate() error {
	switch p.BalanceConvention {
	case BalanceConventionSpent, BalanceConventionDeficit:
	default:
		return fmt.Errorf("unknown balance convention %q", p.BalanceConvention)
	}
	switch p.CGT {
	case CGTSecondHomeOnly, CGTAlways:
	default:
		return fmt.Errorf("unknown CGT policy %q", p.CGT)
	}
	return nil
}

// YearRecord holds the projected figures for one strategy in one year.
// Records are built once per invocation and never mutated afterwards.
// Components maps a named line item to its signed amount; the component
// amounts always sum to CashFlow.
type YearRecord struct {
	Year        int
	CashFlow    float64
	Components  map[string]float64
	BankBalance float64

	// Buy strategy only.
	PropertyValue   float64
	MortgageBalance float64
	Equity          float64
	InterestPaid    float64
	PrincipalPaid   float64

	// Rent strategy only.
	InvestmentBalance float64
}

// SaleSummary details the terminal-year liquidation of the property.
type SaleSummary struct {
	SellingPrice      float64
	AgentFees         float64
	MortgageRepaid    float64
	OriginalCost      float64
	CapitalGain       float64
	InterestDeduction float64
	TaxableGain       float64
	CapitalGainsTax   float64
	NetProceeds       float64
}

// Recommendation compares the two strategies. The balance verdict and the
// NPV verdict can disagree; both are surfaced rather than reconciled.
type Recommendation struct {
	Verdict          string
	BalanceAdvantage float64
	NPVVerdict       string
	NPVAdvantage     float64
	BreakEvenYear    int
	Summary          []string
}

// Result holds both trajectories plus derived aggregates. It is owned by
// the caller; the engine keeps no state between invocations.
type Result struct {
	Buy  []YearRecord
	Rent []YearRecord

	StampDuty              float64
	MonthlyMortgagePayment float64
	TotalBuyCashFlow       float64
	TotalRentCashFlow      float64
	BuyNPV                 float64
	RentNPV                float64

	Sale           SaleSummary
	Recommendation Recommendation
}

// Run computes the full projection for both strategies. The computation is
// deterministic and shares no state across calls, so concurrent callers need
// no locking. Invalid input fails fast with no partial result.
func Run(logger *zap.Logger, buy BuyScenario, rent RentScenario, common CommonParams, policy Policy) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	policy = policy.withDefaults()
	buy = buy.normalized()
	if err := policy.validate(); err != nil {
		return nil, err
	}
	if err := validateInputs(buy, rent, common); err != nil {
		return nil, err
	}

	result := runProjection(logger, buy, rent, common, policy)

	breakEven := breakEvenWithin(logger, buy, rent, common, policy)
	result.Recommendation = buildRecommendation(buy, common, policy, result, breakEven)

	logger.Debug("projection complete",
		zap.String("op", "projection.Run"),
		zap.Int("horizonYears", common.SellAfterYears),
		zap.String("verdict", result.Recommendation.Verdict),
		zap.Float64("balanceAdvantage", result.Recommendation.BalanceAdvantage),
	)

	return result, nil
}

// runProjection computes trajectories and aggregates for pre-validated
// inputs. The recommendation is attached by the caller once the break-even
// search has run.
func runProjection(logger *zap.Logger, buy BuyScenario, rent RentScenario, common CommonParams, policy Policy) *Result {
	buy.StampDuty = stampduty.Calculate(buy.PropertyValue, buy.SecondHome)

	buyYears, sale := buyTrajectory(logger, buy, common, policy)
	rentYears := rentTrajectory(logger, buy, rent, common)

	result := &Result{
		Buy:                    buyYears,
		Rent:                   rentYears,
		StampDuty:              buy.StampDuty,
		MonthlyMortgagePayment: mortgage.MonthlyPayment(buy.LoanAmount, buy.MortgageRate, buy.LoanTermYears),
		Sale:                   sale,
	}

	buyFlows := cashFlows(buyYears)
	rentFlows := cashFlows(rentYears)
	result.TotalBuyCashFlow = finance.Sum(buyFlows)
	result.TotalRentCashFlow = finance.Sum(rentFlows)
	result.BuyNPV = finance.NPV(buy.InvestmentReturnRate, buyFlows)
	result.RentNPV = finance.NPV(buy.InvestmentReturnRate, rentFlows)

	return result
}

// normalized applies zero-value defaults to optional fields.
func (b BuyScenario) normalized() BuyScenario {
	if b.CGTRate == 0 {
		b.CGTRate = constants.DefaultCGTRate
	}
	return b
}

func validateInputs(buy BuyScenario, rent RentScenario, common CommonParams) error {
	if buy.PropertyValue <= 0 {
		return fmt.Errorf("propertyValue must be positive, got %.2f", buy.PropertyValue)
	}
	if buy.Deposit < 0 {
		return fmt.Errorf("deposit cannot be negative, got %.2f", buy.Deposit)
	}
	if buy.LoanAmount < 0 {
		return fmt.Errorf("loanAmount cannot be negative, got %.2f", buy.LoanAmount)
	}
	if buy.LoanTermYears < 1 {
		return fmt.Errorf("loanTermYears must be at least 1, got %d", buy.LoanTermYears)
	}
	if buy.MortgageRate < 0 {
		return fmt.Errorf("mortgageRate cannot be negative, got %.4f", buy.MortgageRate)
	}
	if buy.AppreciationRate < 0 {
		return fmt.Errorf("appreciationRate cannot be negative, got %.4f", buy.AppreciationRate)
	}
	if buy.InvestmentReturnRate < 0 {
		return fmt.Errorf("investmentReturnRate cannot be negative, got %.4f", buy.InvestmentReturnRate)
	}
	if buy.SellingAgentFeeRate < 0 || buy.SellingAgentFeeRate >= 1 {
		return fmt.Errorf("sellingAgentFeeRate must be within [0, 1), got %.4f", buy.SellingAgentFeeRate)
	}
	if buy.CGTRate < 0 || buy.CGTRate >= 1 {
		return fmt.Errorf("cgtRate must be within [0, 1), got %.4f", buy.CGTRate)
	}
	if buy.ConveyancingFees < 0 || buy.RenovationCost < 0 || buy.FurnitureCost < 0 || buy.AnnualInsurance < 0 {
		return fmt.Errorf("purchase fees and upfront costs cannot be negative")
	}
	if rental := buy.RoomRental; rental != nil {
		if rental.MonthlyRent <= 0 {
			return fmt.Errorf("roomRental monthlyRent must be positive, got %.2f", rental.MonthlyRent)
		}
		if rental.AnnualIncrease < 0 {
			return fmt.Errorf("roomRental annualIncrease cannot be negative, got %.4f", rental.AnnualIncrease)
		}
		if rental.MonthsPerYear < 1 || rental.MonthsPerYear > constants.MonthsPerYear {
			return fmt.Errorf("roomRental monthsPerYear must be within 1..%d, got %d",
				constants.MonthsPerYear, rental.MonthsPerYear)
		}
	}
	if rent.MonthlyRent < 0 {
		return fmt.Errorf("rent monthlyRent cannot be negative, got %.2f", rent.MonthlyRent)
	}
	if rent.AnnualIncrease < 0 {
		return fmt.Errorf("rent annualIncrease cannot be negative, got %.4f", rent.AnnualIncrease)
	}
	if common.MonthlyUtilities < 0 {
		return fmt.Errorf("monthlyUtilities cannot be negative, got %.2f", common.MonthlyUtilities)
	}
	if common.SellAfterYears < 1 {
		return fmt.Errorf("sellAfterYears must be at least 1, got %d", common.SellAfterYears)
	}
	if common.ChildLivingYears < 0 {
		return fmt.Errorf("childLivingYears cannot be negative, got %d", common.ChildLivingYears)
	}
	return nil
}

// yearBuilder accumulates the named cash flow lines for one year. The total
// is summed in the order lines are added, never by iterating the map, so
// identical inputs always produce bit-identical cash flows.
type yearBuilder struct {
	components map[string]float64
	cashFlow   float64
}

func newYearBuilder() *yearBuilder {
	return &yearBuilder{components: make(map[string]float64)}
}

// add records a named signed amount, skipping zero-valued lines so the
// breakdown carries only items that move money. Repeated names accumulate.
func (b *yearBuilder) add(name string, amount float64) {
	if amount == 0 {
		return
	}
	b.components[name] += amount
	b.cashFlow += amount
}

func cashFlows(records []YearRecord) []float64 {
	flows := make([]float64, len(records))
	for i, record := range records {
		flows[i] = record.CashFlow
	}
	return flows
}

// finalPosition is the figure the verdict compares: the closing bank balance,
// plus the recorded year-N equity when the policy opts it in.
func finalPosition(records []YearRecord, policy Policy) float64 {
	final := records[len(records)-1]
	position := final.BankBalance
	if policy.EquityInVerdict {
		position += final.Equity
	}
	return position
}
