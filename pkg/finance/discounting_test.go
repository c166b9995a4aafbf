package finance

import (
	"math"
	"testing"
)

func TestNPV(t *testing.T) {
	tests := []struct {
		name     string
		rate     float64
		flows    []float64
		expected float64
	}{
		{
			name:     "Single undiscounted flow",
			rate:     0.07,
			flows:    []float64{-72000},
			expected: -72000,
		},
		{
			name:     "Two flows at 10%",
			rate:     0.10,
			flows:    []float64{-100, 110},
			expected: 0.0, // 110/1.1 = 100 exactly offsets the outlay
		},
		{
			name:     "Three flows at 7%",
			rate:     0.07,
			flows:    []float64{-1000, 500, 600},
			expected: -1000 + 500/1.07 + 600/(1.07*1.07),
		},
		{
			name:     "Empty series",
			rate:     0.05,
			flows:    nil,
			expected: 0.0,
		},
		{
			name:     "All negative outflows",
			rate:     0.03,
			flows:    []float64{-100, -100, -100},
			expected: -100 - 100/1.03 - 100/(1.03*1.03),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NPV(tt.rate, tt.flows)
			if math.Abs(result-tt.expected) > 0.01 {
				t.Errorf("NPV(%v, %v) = %.4f, expected %.4f", tt.rate, tt.flows, result, tt.expected)
			}
		})
	}
}

// NPV at a zero discount rate must reduce to the plain sum of the series.
func TestNPVZeroRateEqualsSum(t *testing.T) {
	series := [][]float64{
		{-72000, -18000, -17500, -16900, -16200, 240000},
		{0, -16200, -16686, -17186, -1800, -1800},
		{},
		{42},
	}

	for _, flows := range series {
		npv := NPV(0, flows)
		sum := Sum(flows)
		if math.Abs(npv-sum) > 1e-9 {
			t.Errorf("NPV(0, %v) = %.6f, Sum = %.6f; expected equality", flows, npv, sum)
		}
	}
}

func TestCompound(t *testing.T) {
	tests := []struct {
		name     string
		base     float64
		rate     float64
		periods  int
		expected float64
	}{
		{
			name:     "One year at 7%",
			base:     60000,
			rate:     0.07,
			periods:  1,
			expected: 64200,
		},
		{
			name:     "Five years at 3%",
			base:     300000,
			rate:     0.03,
			periods:  5,
			expected: 300000 * math.Pow(1.03, 5),
		},
		{
			name:     "Zero periods returns base",
			base:     1200,
			rate:     0.05,
			periods:  0,
			expected: 1200,
		},
		{
			name:     "Zero rate returns base",
			base:     500,
			rate:     0,
			periods:  10,
			expected: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Compound(tt.base, tt.rate, tt.periods)
			if math.Abs(result-tt.expected) > 0.01 {
				t.Errorf("Compound(%v, %v, %d) = %.4f, expected %.4f",
					tt.base, tt.rate, tt.periods, result, tt.expected)
			}
		})
	}
}

func TestSum(t *testing.T) {
	tests := []struct {
		name     string
		flows    []float64
		expected float64
	}{
		{"Mixed signs", []float64{-100, 50, 75}, 25},
		{"Empty", nil, 0},
		{"Single", []float64{-72000}, -72000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Sum(tt.flows)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("Sum(%v) = %.4f, expected %.4f", tt.flows, result, tt.expected)
			}
		})
	}
}
