package mortgage

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/iwvelando/mortgage-calculator/pkg/constants"
)

// ErrInvalidInput is returned when a calculation is requested on values that
// could not have passed validation.
var ErrInvalidInput = errors.New("invalid input")

// ParseInputs converts validated raw inputs into LoanInputs.
func ParseInputs(raw RawInputs) (LoanInputs, error) {
	var inputs LoanInputs
	var err error

	if inputs.Principal, err = parseNumber(constants.FieldAmount, raw.Amount); err != nil {
		return LoanInputs{}, err
	}
	if inputs.TermYears, err = parseNumber(constants.FieldTerm, raw.Term); err != nil {
		return LoanInputs{}, err
	}
	if inputs.AnnualRatePercent, err = parseNumber(constants.FieldRate, raw.Rate); err != nil {
		return LoanInputs{}, err
	}
	if inputs.Type, err = ParseMortgageType(raw.Type); err != nil {
		return LoanInputs{}, err
	}

	return inputs, nil
}

func parseNumber(field, value string) (float64, error) {
	n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a number", ErrInvalidInput, field, value)
	}
	return n, nil
}

// Check verifies the numeric preconditions of Compute.
func (in LoanInputs) Check() error {
	switch {
	case !isFinite(in.Principal) || in.Principal < 0:
		return fmt.Errorf("%w: principal must be a finite non-negative number, got %v", ErrInvalidInput, in.Principal)
	case !isFinite(in.TermYears) || in.TermYears <= 0:
		return fmt.Errorf("%w: term must be a finite positive number of years, got %v", ErrInvalidInput, in.TermYears)
	case !isFinite(in.AnnualRatePercent) || in.AnnualRatePercent < 0:
		return fmt.Errorf("%w: rate must be a finite non-negative percentage, got %v", ErrInvalidInput, in.AnnualRatePercent)
	case !in.Type.Valid():
		return fmt.Errorf("%w: unrecognized mortgage type %q", ErrInvalidInput, in.Type)
	}
	return nil
}

// Months returns the term in months. Fractional years are kept.
func (in LoanInputs) Months() float64 {
	return in.TermYears * constants.MonthsPerYear
}

// MonthlyRate returns the periodic rate as a fraction.
func (in LoanInputs) MonthlyRate() float64 {
	return (in.AnnualRatePercent / constants.PercentageMultiplier) / constants.MonthsPerYear
}

// Compute calculates the monthly payment and total repayment for inputs.
func Compute(inputs LoanInputs) (RepaymentResult, error) {
	if err := inputs.Check(); err != nil {
		return RepaymentResult{}, err
	}

	months := inputs.Months()
	monthlyRate := inputs.MonthlyRate()

	var result RepaymentResult
	switch inputs.Type {
	case Repayment:
		result.MonthlyPayment = annuityPayment(inputs.Principal, monthlyRate, months)
		result.TotalRepayment = result.MonthlyPayment * months
	case InterestOnly:
		result.MonthlyPayment = inputs.Principal * monthlyRate
		// The explicit conversion keeps the product rounded before the add
		// on architectures that would otherwise fuse it.
		result.TotalRepayment = float64(result.MonthlyPayment*months) + inputs.Principal
	}

	if !isFinite(result.MonthlyPayment) || !isFinite(result.TotalRepayment) {
		return RepaymentResult{}, fmt.Errorf("%w: calculation overflowed for principal %v, term %v, rate %v",
			ErrInvalidInput, inputs.Principal, inputs.TermYears, inputs.AnnualRatePercent)
	}

	return result, nil
}

// annuityPayment evaluates the standard amortization formula. The growth
// factor is computed once and reused in numerator and denominator.
func annuityPayment(principal, monthlyRate, months float64) float64 {
	factor := math.Pow(1+monthlyRate, months)
	if monthlyRate == 0 || factor == 1 {
		// The formula tends to straight-line repayment as the growth factor
		// approaches 1; evaluating it there divides by zero.
		return principal / months
	}
	return principal * monthlyRate * factor / (factor - 1)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
