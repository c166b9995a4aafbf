package main

import (
	"flag"
	"fmt"

	"github.com/ostolop/rent-vs-buy/internal/config"
	"github.com/ostolop/rent-vs-buy/internal/logging"
	"github.com/ostolop/rent-vs-buy/internal/projection"
	"github.com/ostolop/rent-vs-buy/pkg/constants"
	"github.com/ostolop/rent-vs-buy/pkg/output"
	"github.com/ostolop/rent-vs-buy/pkg/validation"
	"go.uber.org/zap"
)

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s, start from %s\", \"error\": \"%v\"}\n", *configLocation, constants.ExampleConfigFile, err)
		return
	}

	// Initialize logging based on config and CLI override
	logger, err := logging.Initialize(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	err = validation.ValidateOutputFormat(outputFormat)
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	// Validate configuration and display any warnings
	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	// Convert the percent-based configuration into engine inputs.
	buy, rent, common, policy, err := conf.Scenario.ToProjectionInputs()
	if err != nil {
		logger.Fatal("failed to convert configuration",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	// Run the comparison for both strategies.
	result, err := projection.Run(logger, buy, rent, common, policy)
	if err != nil {
		logger.Fatal("failed to compute projection",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	// Handle output.
	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(result)
	case constants.OutputFormatCSV:
		output.CsvFormat(result)
	}
}
