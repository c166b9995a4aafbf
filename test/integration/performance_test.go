package integration

import (
	"os"
	"testing"
	"time"

	"github.com/ostolop/rent-vs-buy/internal/config"
	"github.com/ostolop/rent-vs-buy/internal/projection"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	code := m.Run()
	os.Exit(code)
}

// TestPerformance tests performance characteristics of a full analysis.
func TestPerformance(t *testing.T) {
	logger := zap.NewNop()

	start := time.Now()

	conf, err := config.LoadConfiguration("../test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration failed: %v", err)
	}
	loadTime := time.Since(start)

	start = time.Now()
	buy, rent, common, policy, err := conf.Scenario.ToProjectionInputs()
	if err != nil {
		t.Fatalf("ToProjectionInputs failed: %v", err)
	}
	convertTime := time.Since(start)

	start = time.Now()
	result, err := projection.Run(logger, buy, rent, common, policy)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	runTime := time.Since(start)

	totalTime := loadTime + convertTime + runTime

	t.Logf("Performance metrics:")
	t.Logf("  Load config: %v", loadTime)
	t.Logf("  Convert inputs: %v", convertTime)
	t.Logf("  Run projection: %v", runTime)
	t.Logf("  Total time: %v", totalTime)

	if totalTime > 10*time.Second {
		t.Errorf("total processing time %v exceeds 10 second threshold", totalTime)
	}

	if len(result.Buy) != 6 {
		t.Errorf("expected 6 buy records, got %d", len(result.Buy))
	}
}

// TestLongHorizonPerformance runs a 50-year projection repeatedly to make
// sure the longer amortization and trajectory loops stay cheap.
func TestLongHorizonPerformance(t *testing.T) {
	logger := zap.NewNop()

	conf, err := config.LoadConfiguration("../test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration failed: %v", err)
	}
	conf.Scenario.Common.SellAfterYears = 50

	buy, rent, common, policy, err := conf.Scenario.ToProjectionInputs()
	if err != nil {
		t.Fatalf("ToProjectionInputs failed: %v", err)
	}

	start := time.Now()
	iterations := 200

	var result *projection.Result
	for i := 0; i < iterations; i++ {
		result, err = projection.Run(logger, buy, rent, common, policy)
		if err != nil {
			t.Fatalf("Run failed on iteration %d: %v", i, err)
		}
	}
	elapsed := time.Since(start)

	t.Logf("%d runs over a 50-year horizon took %v", iterations, elapsed)

	if elapsed > 10*time.Second {
		t.Errorf("%d iterations took %v, exceeding 10 second threshold", iterations, elapsed)
	}

	if len(result.Buy) != 51 {
		t.Errorf("expected 51 buy records, got %d", len(result.Buy))
	}
	if len(result.Rent) != 51 {
		t.Errorf("expected 51 rent records, got %d", len(result.Rent))
	}
}

// TestMemoryUsage performs basic memory usage validation.
func TestMemoryUsage(t *testing.T) {
	logger := zap.NewNop()

	for i := 0; i < 10; i++ {
		conf, err := config.LoadConfiguration("../test_config.yaml")
		if err != nil {
			t.Fatalf("LoadConfiguration failed on iteration %d: %v", i, err)
		}

		buy, rent, common, policy, err := conf.Scenario.ToProjectionInputs()
		if err != nil {
			t.Fatalf("ToProjectionInputs failed on iteration %d: %v", i, err)
		}

		if _, err := projection.Run(logger, buy, rent, common, policy); err != nil {
			t.Fatalf("Run failed on iteration %d: %v", i, err)
		}
	}

	t.Log("Successfully completed 10 iterations without memory issues")
}
