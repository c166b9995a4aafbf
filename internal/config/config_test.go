package config

import (
	"strings"
	"testing"
)

func TestLoadConfiguration(t *testing.T) {
	tests := []struct {
		name       string
		configPath string
		wantError  bool
	}{
		{
			name:       "Non-existent config file",
			configPath: "nonexistent.yaml",
			wantError:  true,
		},
		{
			name:       "Test fixture",
			configPath: "../../test/test_config.yaml",
			wantError:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfiguration(tt.configPath)
			if tt.wantError {
				if err == nil {
					t.Errorf("LoadConfiguration() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("LoadConfiguration() error = %v", err)
				return
			}
			if config == nil {
				t.Errorf("LoadConfiguration() returned nil config")
			}
		})
	}
}

func TestLoadConfigurationStructure(t *testing.T) {
	config, err := LoadConfiguration("../../test/test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	buy := config.Scenario.Buy
	if buy.PropertyValue != 300000.00 {
		t.Errorf("Expected PropertyValue = 300000.00, got %v", buy.PropertyValue)
	}
	if buy.Deposit != 60000.00 {
		t.Errorf("Expected Deposit = 60000.00, got %v", buy.Deposit)
	}
	if buy.MortgageRate != 4.5 {
		t.Errorf("Expected MortgageRate = 4.5, got %v", buy.MortgageRate)
	}
	if buy.LoanTermYears != 25 {
		t.Errorf("Expected LoanTermYears = 25, got %v", buy.LoanTermYears)
	}
	if buy.RoomRental == nil {
		t.Fatalf("Expected a roomRental block")
	}
	if buy.RoomRental.MonthsPerYear != 9 {
		t.Errorf("Expected MonthsPerYear = 9, got %v", buy.RoomRental.MonthsPerYear)
	}

	if config.Scenario.Rent.MonthlyRent != 1200.00 {
		t.Errorf("Expected rent MonthlyRent = 1200.00, got %v", config.Scenario.Rent.MonthlyRent)
	}
	if config.Scenario.Common.SellAfterYears != 5 {
		t.Errorf("Expected SellAfterYears = 5, got %v", config.Scenario.Common.SellAfterYears)
	}
	if config.Scenario.Policy.BalanceConvention != "spent" {
		t.Errorf("Expected BalanceConvention = spent, got %v", config.Scenario.Policy.BalanceConvention)
	}

	if config.Logging.Level != "info" {
		t.Errorf("Expected logging level = info, got %v", config.Logging.Level)
	}
	if config.Output.Format != "pretty" {
		t.Errorf("Expected output format = pretty, got %v", config.Output.Format)
	}
}

func TestLoadConfigurationFromReader(t *testing.T) {
	yamlConfig := `
scenario:
  buy:
    propertyValue: 250000
    depositPercent: 10
    mortgageRate: 5.0
    loanTermYears: 30
  rent:
    monthlyRent: 950
  common:
    sellAfterYears: 10
`

	config, err := LoadConfigurationFromReader(strings.NewReader(yamlConfig))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}

	if config.Scenario.Buy.PropertyValue != 250000.00 {
		t.Errorf("Expected PropertyValue = 250000.00, got %v", config.Scenario.Buy.PropertyValue)
	}
	if config.Scenario.Buy.DepositPercent != 10.00 {
		t.Errorf("Expected DepositPercent = 10.00, got %v", config.Scenario.Buy.DepositPercent)
	}
	if config.Scenario.Buy.RoomRental != nil {
		t.Errorf("Expected no roomRental block when absent from the YAML")
	}
	if config.Scenario.Common.SellAfterYears != 10 {
		t.Errorf("Expected SellAfterYears = 10, got %v", config.Scenario.Common.SellAfterYears)
	}
}

func TestLoadConfigurationFromReaderRejectsGarbage(t *testing.T) {
	_, err := LoadConfigurationFromReader(strings.NewReader("scenario: ["))
	if err == nil {
		t.Errorf("Expected an error for malformed YAML")
	}
}

func TestValidateConfiguration(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*Configuration)
		expectWarning string
	}{
		{
			name:          "Clean configuration",
			mutate:        func(*Configuration) {},
			expectWarning: "",
		},
		{
			name: "Occupancy window past the horizon",
			mutate: func(conf *Configuration) {
				conf.Scenario.Common.ChildLivingYears = 10
			},
			expectWarning: "extends past",
		},
		{
			name: "Loan matures before the sale",
			mutate: func(conf *Configuration) {
				conf.Scenario.Buy.LoanTermYears = 3
			},
			expectWarning: "matures before",
		},
		{
			name: "CGT rate on an exempt residence",
			mutate: func(conf *Configuration) {
				conf.Scenario.Buy.CGTRate = 28.0
			},
			expectWarning: "exempt",
		},
		{
			name: "Room rental with no occupancy window",
			mutate: func(conf *Configuration) {
				conf.Scenario.Common.ChildLivingYears = 0
			},
			expectWarning: "full house",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := testConfiguration()
			tt.mutate(conf)

			warnings := conf.ValidateConfiguration()
			if tt.expectWarning == "" {
				if len(warnings) != 0 {
					t.Errorf("Expected no warnings, got %v", warnings)
				}
				return
			}

			found := false
			for _, warning := range warnings {
				if strings.Contains(warning, tt.expectWarning) {
					found = true
				}
			}
			if !found {
				t.Errorf("Expected a warning containing %q, got %v", tt.expectWarning, warnings)
			}
		})
	}
}

func testConfiguration() *Configuration {
	return &Configuration{
		Scenario: ScenarioConfig{
			Buy: BuyConfig{
				PropertyValue: 300000.0,
				Deposit:       60000.0,
				MortgageRate:  4.5,
				LoanTermYears: 25,
				RoomRental: &RoomRentalConfig{
					MonthlyRent:   500.0,
					MonthsPerYear: 9,
				},
			},
			Rent: RentConfig{MonthlyRent: 1200.0},
			Common: CommonConfig{
				MonthlyUtilities: 150.0,
				SellAfterYears:   5,
				ChildLivingYears: 3,
			},
		},
	}
}
