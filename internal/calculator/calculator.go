// Package calculator runs the validate, parse and compute flow on one set of
// raw form inputs.
package calculator

import (
	"github.com/iwvelando/mortgage-calculator/pkg/mortgage"
	"go.uber.org/zap"
)

// Outcome holds the result of one submission. Exactly one of Errors and
// Result is meaningful: when Errors is non-empty no calculation was attempted.
type Outcome struct {
	Errors mortgage.ValidationErrors
	Inputs mortgage.LoanInputs
	Result mortgage.RepaymentResult
}

// Valid reports whether the submission passed validation.
func (o Outcome) Valid() bool {
	return o.Errors.Valid()
}

// Calculate validates raw and, only when every field passes, parses and
// computes the repayment figures. A returned error wraps
// mortgage.ErrInvalidInput.
func Calculate(logger *zap.Logger, raw mortgage.RawInputs) (Outcome, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	errs := mortgage.Validate(raw)
	if !errs.Valid() {
		logger.Debug("inputs failed validation",
			zap.String("op", "calculator.Calculate"),
			zap.Strings("fields", errs.Fields()),
		)
		return Outcome{Errors: errs}, nil
	}

	inputs, err := mortgage.ParseInputs(raw)
	if err != nil {
		logger.Debug("inputs could not be parsed",
			zap.String("op", "calculator.Calculate"),
			zap.Error(err),
		)
		return Outcome{Errors: errs}, err
	}

	result, err := mortgage.Compute(inputs)
	if err != nil {
		logger.Debug("inputs rejected by calculator",
			zap.String("op", "calculator.Calculate"),
			zap.Error(err),
		)
		return Outcome{Errors: errs, Inputs: inputs}, err
	}

	logger.Debug("repayment calculated",
		zap.String("op", "calculator.Calculate"),
		zap.Stringer("type", inputs.Type),
		zap.Float64("principal", inputs.Principal),
		zap.Float64("termYears", inputs.TermYears),
		zap.Float64("ratePercent", inputs.AnnualRatePercent),
		zap.Float64("monthlyPayment", result.MonthlyPayment),
		zap.Float64("totalRepayment", result.TotalRepayment),
	)

	return Outcome{Errors: errs, Inputs: inputs, Result: result}, nil
}

// Reset returns an empty form and an empty error set.
func Reset() (mortgage.RawInputs, mortgage.ValidationErrors) {
	return mortgage.RawInputs{}, mortgage.ClearErrors()
}
