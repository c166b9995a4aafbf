// Package config defines the data structures related to configuration and
// includes functions for loading and converting the config.
package config

import (
	"fmt"
	"io"

	"github.com/ostolop/rent-vs-buy/pkg/validation"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Configuration holds all configuration for a rent-vs-buy analysis.
type Configuration struct {
	Scenario ScenarioConfig `yaml:"scenario"`
	Logging  LoggingConfig  `yaml:"logging,omitempty"`
	Output   OutputConfig   `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// ScenarioConfig groups the inputs for one buy-versus-rent comparison.
type ScenarioConfig struct {
	Buy    BuyConfig    `yaml:"buy"`
	Rent   RentConfig   `yaml:"rent"`
	Common CommonConfig `yaml:"common"`
	Policy PolicyConfig `yaml:"policy,omitempty"`
}

// BuyConfig holds the purchase-side inputs. Rates are human-friendly
// percentages (4.5 means 4.5%) and are converted to decimal fractions when
// handed to the engine. At most one of Deposit and DepositPercent may be set;
// LoanAmount is derived from the property value and deposit when omitted.
type BuyConfig struct {
	PropertyValue        float64           `yaml:"propertyValue"`
	Deposit              float64           `yaml:"deposit,omitempty"`
	DepositPercent       float64           `yaml:"depositPercent,omitempty"`
	LoanAmount           float64           `yaml:"loanAmount,omitempty"`
	MortgageRate         float64           `yaml:"mortgageRate"`
	LoanTermYears        int               `yaml:"loanTermYears"`
	ConveyancingFees     float64           `yaml:"conveyancingFees,omitempty"`
	SellingAgentFee      float64           `yaml:"sellingAgentFee,omitempty"`
	AppreciationRate     float64           `yaml:"appreciationRate,omitempty"`
	InvestmentReturnRate float64           `yaml:"investmentReturnRate,omitempty"`
	RenovationCost       float64           `yaml:"renovationCost,omitempty"`
	FurnitureCost        float64           `yaml:"furnitureCost,omitempty"`
	AnnualInsurance      float64           `yaml:"annualInsurance,omitempty"`
	RoomRental           *RoomRentalConfig `yaml:"roomRental,omitempty"`
	SecondHome           bool              `yaml:"secondHome,omitempty"`
	CGTRate              float64           `yaml:"cgtRate,omitempty"`
}

// RoomRentalConfig configures letting part of the property. The block is all
// or nothing; a partially filled block fails engine validation.
type RoomRentalConfig struct {
	MonthlyRent    float64 `yaml:"monthlyRent"`
	AnnualIncrease float64 `yaml:"annualIncrease,omitempty"`
	MonthsPerYear  int     `yaml:"monthsPerYear"`
}

// RentConfig holds the renting-side inputs.
type RentConfig struct {
	MonthlyRent    float64 `yaml:"monthlyRent"`
	AnnualIncrease float64 `yaml:"annualIncrease,omitempty"`
}

// CommonConfig holds inputs shared by both strategies.
type CommonConfig struct {
	MonthlyUtilities float64 `yaml:"monthlyUtilities,omitempty"`
	SellAfterYears   int     `yaml:"sellAfterYears"`
	ChildLivingYears int     `yaml:"childLivingYears,omitempty"`
}

// PolicyConfig selects the accounting conventions; empty fields pick the
// engine defaults.
type PolicyConfig struct {
	BalanceConvention string `yaml:"balanceConvention,omitempty"` // spent, deficit
	CGT               string `yaml:"cgt,omitempty"`               // secondHomeOnly, always
	EquityInVerdict   bool   `yaml:"equityInVerdict,omitempty"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// LoadConfigurationFromReader parses a YAML-formatted configuration from an
// arbitrary reader, e.g. an uploaded request body.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading configuration, %w", err)
	}

	var configuration Configuration
	if err := yaml.Unmarshal(data, &configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// ValidateConfiguration returns advisory warnings for configurations that
// parse and compute fine but probably do not mean what the user intended.
// Hard validation lives in the engine.
func (conf *Configuration) ValidateConfiguration() []string {
	var warnings []string

	scenario := conf.Scenario
	if warning := validation.ValidateOccupancyWindow(scenario.Common.ChildLivingYears, scenario.Common.SellAfterYears); warning != "" {
		warnings = append(warnings, warning)
	}
	if warning := validation.ValidateLoanTerm(scenario.Buy.LoanTermYears, scenario.Common.SellAfterYears); warning != "" {
		warnings = append(warnings, warning)
	}
	if warning := validation.ValidateCGTConfig(scenario.Buy.CGTRate, scenario.Buy.SecondHome, scenario.Policy.CGT); warning != "" {
		warnings = append(warnings, warning)
	}
	if warning := validation.ValidateRoomRental(scenario.Buy.RoomRental != nil, scenario.Common.ChildLivingYears); warning != "" {
		warnings = append(warnings, warning)
	}

	return warnings
}
