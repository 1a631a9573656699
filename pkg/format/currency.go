// Package format renders calculated amounts for display.
package format

import (
	"fmt"
	"math"

	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders currency amounts for a locale.
type Formatter struct {
	printer *message.Printer
	symbol  string
}

// NewFormatter returns a Formatter for the BCP 47 locale tag and currency symbol.
// Empty values fall back to en-GB and the pound sign.
func NewFormatter(locale, symbol string) (*Formatter, error) {
	if locale == "" {
		locale = constants.DefaultLocale
	}
	if symbol == "" {
		symbol = constants.DefaultCurrencySymbol
	}

	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}

	return &Formatter{printer: message.NewPrinter(tag), symbol: symbol}, nil
}

// Default returns the en-GB pound formatter.
func Default() *Formatter {
	return &Formatter{
		printer: message.NewPrinter(language.BritishEnglish),
		symbol:  constants.DefaultCurrencySymbol,
	}
}

// Currency returns the amount with the currency symbol and thousands
// separators (e.g., "-£1,234.56").
func (f *Formatter) Currency(amount float64) string {
	rounded := RoundCurrency(amount)
	formatted := f.printer.Sprintf("%.2f", math.Abs(rounded))
	if rounded < 0 {
		return "-" + f.symbol + formatted
	}
	return f.symbol + formatted
}

// Symbol returns the configured currency symbol.
func (f *Formatter) Symbol() string {
	return f.symbol
}

// RoundCurrency rounds half away from zero to whole pence using the decimal
// representation of the value, so 1.005 becomes 1.01.
func RoundCurrency(amount float64) float64 {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return amount
	}
	return decimal.NewFromFloat(amount).Round(constants.DecimalPlaces).InexactFloat64()
}

// Plain returns the amount rounded to pence without symbol or separators
// (e.g., "-1234.56"), for machine-readable output.
func Plain(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Sprintf("%v", amount)
	}
	return decimal.NewFromFloat(amount).StringFixed(constants.DecimalPlaces)
}
