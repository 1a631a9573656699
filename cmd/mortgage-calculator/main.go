package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/iwvelando/mortgage-calculator/internal/calculator"
	"github.com/iwvelando/mortgage-calculator/internal/config"
	"github.com/iwvelando/mortgage-calculator/internal/logging"
	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/format"
	"github.com/iwvelando/mortgage-calculator/pkg/mortgage"
	"github.com/iwvelando/mortgage-calculator/pkg/output"
	"github.com/iwvelando/mortgage-calculator/pkg/validation"
	"go.uber.org/zap"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one calculation and returns the process exit code: 0 on
// success, 1 on failure and 2 when the inputs fail validation.
func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("mortgage-calculator", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configLocation := flags.String("config", constants.DefaultConfigFile, "path to configuration file")
	amount := flags.String("amount", "", "mortgage amount")
	term := flags.String("term", "", "mortgage term in years")
	rate := flags.String("rate", "", "annual interest rate in percent")
	mortgageType := flags.String("type", "", "mortgage type: repayment, interest-only")
	outputFormatFlag := flags.String("output-format", "", "type of output override: pretty, csv, json")
	logLevel := flags.String("log-level", "", "log level override (debug, info, warn, error)")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	conf, err := loadConfiguration(*configLocation, isFlagSet(flags, "config"))
	if err != nil {
		fmt.Fprintf(stdout, "{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return 1
	}

	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		fmt.Fprintf(stdout, "{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return 1
	}
	defer func() {
		_ = logger.Sync()
	}()

	// CLI override takes precedence over config
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Error(err.Error(),
			zap.String("op", "main"),
		)
		return 1
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	formatter, err := conf.Formatter()
	if err != nil {
		formatter = format.Default()
	}

	raw := conf.MergeLoan(mortgage.RawInputs{
		Amount: *amount,
		Term:   *term,
		Rate:   *rate,
		Type:   *mortgageType,
	})

	outcome, err := calculator.Calculate(logger, raw)
	if err != nil {
		logger.Error("failed to compute repayment",
			zap.String("op", "main"),
			zap.Error(err),
		)
		return 1
	}
	if !outcome.Valid() {
		_ = output.ValidationErrors(stderr, outcome.Errors)
		return 2
	}

	report := output.Report{Inputs: outcome.Inputs, Result: outcome.Result}
	if err := output.Write(stdout, outputFormat, formatter, report); err != nil {
		logger.Error("failed to write output",
			zap.String("op", "main"),
			zap.Error(err),
		)
		return 1
	}

	return 0
}

// loadConfiguration reads the config file. A missing default file is not an
// error since every input can come from flags or the environment.
func loadConfiguration(path string, explicit bool) (*config.Configuration, error) {
	if !explicit {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return config.LoadConfiguration("")
		}
	}
	return config.LoadConfiguration(path)
}

func isFlagSet(flags *flag.FlagSet, name string) bool {
	set := false
	flags.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
