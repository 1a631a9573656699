// Package config defines the data structures related to configuration and
// includes functions for loading and checking it.
package config

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/format"
	"github.com/iwvelando/mortgage-calculator/pkg/mortgage"
	"github.com/iwvelando/mortgage-calculator/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for mortgage-calculator.
type Configuration struct {
	Logging LoggingConfig      `yaml:"logging,omitempty"`
	Output  OutputConfig       `yaml:"output,omitempty"`
	Loan    mortgage.RawInputs `yaml:"loan,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format         string `yaml:"format,omitempty"`         // pretty, csv, json
	Locale         string `yaml:"locale,omitempty"`         // BCP 47 tag used for grouping
	CurrencySymbol string `yaml:"currencySymbol,omitempty"` // prefixed to amounts
}

// envKeys are bound explicitly so environment overrides apply even when the
// key is absent from the file.
var envKeys = []string{
	"logging.level",
	"logging.format",
	"logging.outputFile",
	"output.format",
	"output.locale",
	"output.currencySymbol",
	"loan.amount",
	"loan.term",
	"loan.rate",
	"loan.type",
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range envKeys {
		// BindEnv only fails when called without a key.
		_ = v.BindEnv(key)
	}

	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("output.locale", constants.DefaultLocale)
	v.SetDefault("output.currencySymbol", constants.DefaultCurrencySymbol)
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. An empty path loads defaults and environment
// overrides only.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file, %s", err)
		}
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	if r == nil {
		return nil, errors.New("error reading config data, nil reader")
	}

	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return decode(v)
}

// Formatter builds the currency formatter described by the output section.
func (c *Configuration) Formatter() (*format.Formatter, error) {
	return format.NewFormatter(c.Output.Locale, c.Output.CurrencySymbol)
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if c.Output.Format != "" {
		if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
			warnings = append(warnings, err.Error())
		}
	}

	if _, err := c.Formatter(); err != nil {
		warnings = append(warnings, fmt.Sprintf("%v; falling back to %s", err, constants.DefaultLocale))
	}

	if c.Loan.Type != "" && !mortgage.MortgageType(c.Loan.Type).Valid() {
		warnings = append(warnings, fmt.Sprintf("loan type %q is not one of %s or %s",
			c.Loan.Type, mortgage.Repayment, mortgage.InterestOnly))
	}

	return warnings
}

// MergeLoan overlays non-empty fields of override onto the configured loan
// inputs and returns the result.
func (c *Configuration) MergeLoan(override mortgage.RawInputs) mortgage.RawInputs {
	merged := c.Loan
	if override.Amount != "" {
		merged.Amount = override.Amount
	}
	if override.Term != "" {
		merged.Term = override.Term
	}
	if override.Rate != "" {
		merged.Rate = override.Rate
	}
	if override.Type != "" {
		merged.Type = override.Type
	}
	return merged
}
