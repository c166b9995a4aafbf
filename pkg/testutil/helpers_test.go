package testutil

import (
	"testing"

	"github.com/ostolop/rent-vs-buy/internal/projection"
)

func TestFindYear(t *testing.T) {
	records := []projection.YearRecord{
		{Year: 0, CashFlow: -72000.00},
		{Year: 1, CashFlow: -18000.00},
		{Year: 2, CashFlow: -18500.00},
	}

	tests := []struct {
		name         string
		year         int
		expectFound  bool
		expectedFlow float64
	}{
		{
			name:         "Find year zero",
			year:         0,
			expectFound:  true,
			expectedFlow: -72000.00,
		},
		{
			name:         "Find a middle year",
			year:         1,
			expectFound:  true,
			expectedFlow: -18000.00,
		},
		{
			name:        "Year past the horizon",
			year:        7,
			expectFound: false,
		},
		{
			name:        "Negative year",
			year:        -1,
			expectFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := FindYear(records, tt.year)

			if !tt.expectFound {
				if record != nil {
					t.Errorf("FindYear() expected nil for year %d, got record for year %d", tt.year, record.Year)
				}
				return
			}
			if record == nil {
				t.Fatalf("FindYear() expected to find year %d but got nil", tt.year)
			}
			if record.CashFlow != tt.expectedFlow {
				t.Errorf("FindYear() returned cash flow %v, expected %v", record.CashFlow, tt.expectedFlow)
			}
		})
	}
}

func TestFindYearReturnsPointer(t *testing.T) {
	records := []projection.YearRecord{
		{Year: 0, Components: map[string]float64{"deposit": -60000.00}},
	}

	found := FindYear(records, 0)
	if found == nil {
		t.Fatalf("FindYear() returned nil")
	}
	if &records[0] != found {
		t.Errorf("FindYear() should return a pointer to the original element")
	}
}

func TestFindYearEmptyRecords(t *testing.T) {
	if record := FindYear(nil, 0); record != nil {
		t.Errorf("FindYear() with nil records should return nil, got %v", record)
	}
	if record := FindYear([]projection.YearRecord{}, 0); record != nil {
		t.Errorf("FindYear() with empty records should return nil, got %v", record)
	}
}

func TestComponent(t *testing.T) {
	record := projection.YearRecord{
		Year:       0,
		Components: map[string]float64{"deposit": -60000.00},
	}

	if got := Component(&record, "deposit"); got != -60000.00 {
		t.Errorf("Component() = %v, expected -60000.00", got)
	}
	if got := Component(&record, "missing"); got != 0 {
		t.Errorf("Component() for a missing line = %v, expected 0", got)
	}
	if got := Component(nil, "deposit"); got != 0 {
		t.Errorf("Component() on a nil record = %v, expected 0", got)
	}
}
