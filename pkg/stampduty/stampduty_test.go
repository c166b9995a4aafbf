package stampduty

import (
	"math"
	"testing"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name          string
		propertyValue float64
		secondHome    bool
		expected      float64
	}{
		{
			name:          "Zero value",
			propertyValue: 0,
			secondHome:    false,
			expected:      0,
		},
		{
			name:          "Below standard threshold",
			propertyValue: 240000,
			secondHome:    false,
			expected:      0,
		},
		{
			name:          "Typical purchase",
			propertyValue: 300000,
			secondHome:    false,
			expected:      2500, // 50000 * 5%
		},
		{
			name:          "Upper end of 5% band",
			propertyValue: 925000,
			secondHome:    false,
			expected:      33750, // 675000 * 5%
		},
		{
			name:          "Into the 10% band",
			propertyValue: 1000000,
			secondHome:    false,
			expected:      41250, // 33750 + 75000 * 10%
		},
		{
			name:          "Into the top band",
			propertyValue: 2000000,
			secondHome:    false,
			expected:      151250, // 33750 + 57500 + 500000 * 12%
		},
		{
			name:          "Second home small purchase",
			propertyValue: 100000,
			secondHome:    true,
			expected:      5000, // 100000 * 5%
		},
		{
			name:          "Second home first band boundary",
			propertyValue: 125000,
			secondHome:    true,
			expected:      6250, // 125000 * 5%
		},
		{
			name:          "Second home typical purchase",
			propertyValue: 300000,
			secondHome:    true,
			expected:      20000, // 6250 + 8750 + 50000 * 10%
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Calculate(tt.propertyValue, tt.secondHome)
			if math.Abs(result-tt.expected) > 0.01 {
				t.Errorf("Calculate(%.0f, %t) = %.2f, expected %.2f",
					tt.propertyValue, tt.secondHome, result, tt.expected)
			}
		})
	}
}

// The marginal algorithm must charge nothing at the standard nil-rate
// boundary and exactly the marginal rate on the first pound above it.
func TestCalculateBandBoundary(t *testing.T) {
	atThreshold := Calculate(250000, false)
	if atThreshold != 0 {
		t.Errorf("Calculate(250000, false) = %.4f, expected 0", atThreshold)
	}

	justAbove := Calculate(250001, false)
	if math.Abs(justAbove-0.05) > 1e-9 {
		t.Errorf("Calculate(250001, false) = %.4f, expected 0.05", justAbove)
	}
}

// Duty must never decrease as the purchase price increases.
func TestCalculateMonotonic(t *testing.T) {
	for _, secondHome := range []bool{false, true} {
		previous := -1.0
		for value := 0.0; value <= 2500000; value += 12500 {
			duty := Calculate(value, secondHome)
			if duty < previous {
				t.Fatalf("duty decreased at value %.0f (secondHome=%t): %.2f < %.2f",
					value, secondHome, duty, previous)
			}
			previous = duty
		}
	}
}

func TestBands(t *testing.T) {
	if len(Bands(false)) != 4 {
		t.Errorf("expected 4 standard bands, got %d", len(Bands(false)))
	}
	if len(Bands(true)) != 3 {
		t.Errorf("expected 3 second-home bands, got %d", len(Bands(true)))
	}
	if !math.IsInf(Bands(false)[3].Upper, 1) {
		t.Errorf("top standard band should be unbounded")
	}
}
