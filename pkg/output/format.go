// Package output provides utilities for formatting and displaying calculation results.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/format"
	"github.com/iwvelando/mortgage-calculator/pkg/mortgage"
)

// Report pairs the inputs of a calculation with its result.
type Report struct {
	Inputs mortgage.LoanInputs
	Result mortgage.RepaymentResult
}

// Write renders the report in the named output format.
func Write(w io.Writer, outputFormat string, f *format.Formatter, report Report) error {
	if f == nil {
		f = format.Default()
	}

	switch outputFormat {
	case constants.OutputFormatPretty:
		return PrettyFormat(w, f, report)
	case constants.OutputFormatCSV:
		return CsvFormat(w, report)
	case constants.OutputFormatJSON:
		return JSONFormat(w, f, report)
	default:
		return fmt.Errorf("unsupported output format %q", outputFormat)
	}
}

// PrettyFormat outputs a human-readable rather than machine-readable summary.
func PrettyFormat(w io.Writer, f *format.Formatter, report Report) error {
	in := report.Inputs
	lines := []string{
		"--- Your results ---",
		fmt.Sprintf("Mortgage amount   | %s", f.Currency(in.Principal)),
		fmt.Sprintf("Mortgage term     | %g years", in.TermYears),
		fmt.Sprintf("Interest rate     | %g%%", in.AnnualRatePercent),
		fmt.Sprintf("Mortgage type     | %s", in.Type),
		fmt.Sprintf("Monthly repayment | %s", f.Currency(report.Result.MonthlyPayment)),
		fmt.Sprintf("Total repayment   | %s", f.Currency(report.Result.TotalRepayment)),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// CsvFormat outputs a header row and one value row.
func CsvFormat(w io.Writer, report Report) error {
	writer := csv.NewWriter(w)
	records := [][]string{
		{"amount", "term", "rate", "type", "monthly repayment", "total repayment"},
		{
			format.Plain(report.Inputs.Principal),
			fmt.Sprintf("%g", report.Inputs.TermYears),
			fmt.Sprintf("%g", report.Inputs.AnnualRatePercent),
			report.Inputs.Type.String(),
			format.Plain(report.Result.MonthlyPayment),
			format.Plain(report.Result.TotalRepayment),
		},
	}
	if err := writer.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

// JSONReport is the document emitted by JSONFormat and the HTTP API.
type JSONReport struct {
	Amount         float64         `json:"amount"`
	TermYears      float64         `json:"termYears"`
	RatePercent    float64         `json:"ratePercent"`
	Type           string          `json:"type"`
	MonthlyPayment float64         `json:"monthlyPayment"`
	TotalRepayment float64         `json:"totalRepayment"`
	Formatted      FormattedAmount `json:"formatted"`
}

// FormattedAmount holds display strings for the result figures.
type FormattedAmount struct {
	CurrencySymbol string `json:"currencySymbol"`
	MonthlyPayment string `json:"monthlyPayment"`
	TotalRepayment string `json:"totalRepayment"`
}

// NewJSONReport builds the JSON document for a report. Raw figures are not rounded.
func NewJSONReport(f *format.Formatter, report Report) JSONReport {
	if f == nil {
		f = format.Default()
	}
	return JSONReport{
		Amount:         report.Inputs.Principal,
		TermYears:      report.Inputs.TermYears,
		RatePercent:    report.Inputs.AnnualRatePercent,
		Type:           report.Inputs.Type.String(),
		MonthlyPayment: report.Result.MonthlyPayment,
		TotalRepayment: report.Result.TotalRepayment,
		Formatted: FormattedAmount{
			CurrencySymbol: f.Symbol(),
			MonthlyPayment: f.Currency(report.Result.MonthlyPayment),
			TotalRepayment: f.Currency(report.Result.TotalRepayment),
		},
	}
}

// JSONFormat outputs the report as an indented JSON document.
func JSONFormat(w io.Writer, f *format.Formatter, report Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(NewJSONReport(f, report)); err != nil {
		return fmt.Errorf("failed to write json: %w", err)
	}
	return nil
}

// ValidationErrors outputs one line per failing field in field order.
func ValidationErrors(w io.Writer, errs mortgage.ValidationErrors) error {
	for _, field := range errs.Fields() {
		if _, err := fmt.Fprintf(w, "%s: %s\n", field, errs[field]); err != nil {
			return err
		}
	}
	return nil
}
