// Package mortgage provides the repayment calculation engine and the
// validation of raw form inputs that gates it.
package mortgage

import (
	"fmt"
)

// MortgageType selects the amortization model.
type MortgageType string

const (
	// Repayment pays interest and principal each month, retiring the loan by term end.
	Repayment MortgageType = "repayment"

	// InterestOnly pays interest each month; the principal is due at term end.
	InterestOnly MortgageType = "interest-only"
)

// ParseMortgageType converts a label into a MortgageType.
func ParseMortgageType(label string) (MortgageType, error) {
	switch t := MortgageType(label); t {
	case Repayment, InterestOnly:
		return t, nil
	default:
		return "", fmt.Errorf("%w: unrecognized mortgage type %q", ErrInvalidInput, label)
	}
}

// Valid reports whether t is one of the recognized variants.
func (t MortgageType) Valid() bool {
	return t == Repayment || t == InterestOnly
}

// String implements fmt.Stringer.
func (t MortgageType) String() string {
	return string(t)
}

// RawInputs holds the unparsed form values.
type RawInputs struct {
	Amount string `json:"amount" mapstructure:"amount" yaml:"amount"`
	Term   string `json:"term" mapstructure:"term" yaml:"term"`
	Rate   string `json:"rate" mapstructure:"rate" yaml:"rate"`
	Type   string `json:"type" mapstructure:"type" yaml:"type"`
}

// LoanInputs holds the parsed values a calculation runs on.
type LoanInputs struct {
	Principal         float64
	TermYears         float64
	AnnualRatePercent float64
	Type              MortgageType
}

// RepaymentResult holds the outcome of one calculation. No rounding is applied.
type RepaymentResult struct {
	MonthlyPayment float64 `json:"monthlyPayment"`
	TotalRepayment float64 `json:"totalRepayment"`
}
