package projection

import (
	"go.uber.org/zap"
)

// BreakEvenYear searches for the earliest sale horizon at which buying's
// final position matches or beats renting's. Horizons 1..SellAfterYears are
// tried in order; the projection for each shorter horizon includes its own
// terminal sale. Returns 0 when buying never catches up within the window.
func BreakEvenYear(logger *zap.Logger, buy BuyScenario, rent RentScenario, common CommonParams, policy Policy) (int, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	policy = policy.withDefaults()
	buy = buy.normalized()
	if err := policy.validate(); err != nil {
		return 0, err
	}
	if err := validateInputs(buy, rent, common); err != nil {
		return 0, err
	}

	return breakEvenWithin(logger, buy, rent, common, policy), nil
}

// breakEvenWithin runs the search on inputs that have already been validated
// and normalized.
func breakEvenWithin(logger *zap.Logger, buy BuyScenario, rent RentScenario, common CommonParams, policy Policy) int {
	for horizon := 1; horizon <= common.SellAfterYears; horizon++ {
		trimmed := common
		trimmed.SellAfterYears = horizon

		result := runProjection(zap.NewNop(), buy, rent, trimmed, policy)
		buyFinal := finalPosition(result.Buy, policy)
		rentFinal := result.Rent[len(result.Rent)-1].BankBalance
		if buyFinal >= rentFinal {
			logger.Debug("break-even horizon found",
				zap.String("op", "projection.breakEvenWithin"),
				zap.Int("horizonYears", horizon),
				zap.Float64("buyFinal", buyFinal),
				zap.Float64("rentFinal", rentFinal),
			)
			return horizon
		}
	}
	return 0
}
