package mortgage

import (
	"errors"
	"math"
	"testing"

	"github.com/iwvelando/mortgage-calculator/pkg/constants"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name            string
		inputs          LoanInputs
		expectedMonthly float64
		expectedTotal   float64
		monthlyTol      float64
		totalTol        float64
	}{
		{
			name:            "Standard 25-year repayment",
			inputs:          LoanInputs{Principal: 100000, TermYears: 25, AnnualRatePercent: 4.5, Type: Repayment},
			expectedMonthly: 555.83,
			expectedTotal:   166749,
			monthlyTol:      constants.CurrencyTolerance,
			totalTol:        1,
		},
		{
			name:            "Interest only",
			inputs:          LoanInputs{Principal: 100000, TermYears: 25, AnnualRatePercent: 4.5, Type: InterestOnly},
			expectedMonthly: 375.00,
			expectedTotal:   212500,
		},
		{
			name:            "Zero rate repayment is straight line",
			inputs:          LoanInputs{Principal: 120000, TermYears: 10, AnnualRatePercent: 0, Type: Repayment},
			expectedMonthly: 1000,
			expectedTotal:   120000,
		},
		{
			name:            "Zero rate interest only repays principal at end",
			inputs:          LoanInputs{Principal: 120000, TermYears: 10, AnnualRatePercent: 0, Type: InterestOnly},
			expectedMonthly: 0,
			expectedTotal:   120000,
		},
		{
			name:            "Zero principal",
			inputs:          LoanInputs{Principal: 0, TermYears: 30, AnnualRatePercent: 6, Type: Repayment},
			expectedMonthly: 0,
			expectedTotal:   0,
		},
		{
			name:            "Fractional term",
			inputs:          LoanInputs{Principal: 6000, TermYears: 0.5, AnnualRatePercent: 0, Type: Repayment},
			expectedMonthly: 1000,
			expectedTotal:   6000,
		},
		{
			name:            "Rate too small to move the growth factor",
			inputs:          LoanInputs{Principal: 100000, TermYears: 25, AnnualRatePercent: 1e-14, Type: Repayment},
			expectedMonthly: 100000.0 / 300,
			expectedTotal:   100000,
			monthlyTol:      constants.CurrencyTolerance,
			totalTol:        constants.CurrencyTolerance,
		},
		{
			name:            "Zero principal at a negligible rate",
			inputs:          LoanInputs{Principal: 0, TermYears: 25, AnnualRatePercent: 1e-14, Type: Repayment},
			expectedMonthly: 0,
			expectedTotal:   0,
		},
		{
			name:            "30-year mortgage",
			inputs:          LoanInputs{Principal: 175000, TermYears: 30, AnnualRatePercent: 4.5, Type: Repayment},
			expectedMonthly: 886.70,
			expectedTotal:   319212,
			monthlyTol:      constants.CurrencyTolerance,
			totalTol:        5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Compute(tt.inputs)
			if err != nil {
				t.Fatalf("Compute() unexpected error = %v", err)
			}
			if math.Abs(result.MonthlyPayment-tt.expectedMonthly) > tt.monthlyTol {
				t.Errorf("Compute() monthly = %v, expected %v", result.MonthlyPayment, tt.expectedMonthly)
			}
			if math.Abs(result.TotalRepayment-tt.expectedTotal) > tt.totalTol {
				t.Errorf("Compute() total = %v, expected %v", result.TotalRepayment, tt.expectedTotal)
			}
			if result.MonthlyPayment < 0 || result.TotalRepayment < 0 {
				t.Errorf("Compute() produced a negative figure: %+v", result)
			}
		})
	}
}

func TestComputeMatchesFormulaBitForBit(t *testing.T) {
	inputs := LoanInputs{Principal: 100000, TermYears: 25, AnnualRatePercent: 4.5, Type: Repayment}

	principal, years, rate := 100000.0, 25.0, 4.5
	months := years * 12
	monthlyRate := (rate / 100) / 12
	factor := math.Pow(1+monthlyRate, months)
	expected := principal * monthlyRate * factor / (factor - 1)

	result, err := Compute(inputs)
	if err != nil {
		t.Fatalf("Compute() unexpected error = %v", err)
	}
	if result.MonthlyPayment != expected {
		t.Errorf("Compute() monthly = %v, expected exactly %v", result.MonthlyPayment, expected)
	}
	if result.TotalRepayment != expected*months {
		t.Errorf("Compute() total = %v, expected exactly %v", result.TotalRepayment, expected*months)
	}
}

func TestComputeVanishingTerm(t *testing.T) {
	inputs := LoanInputs{Principal: 100000, TermYears: 1e-300, AnnualRatePercent: 4.5, Type: Repayment}

	result, err := Compute(inputs)
	if err != nil {
		t.Fatalf("Compute() unexpected error = %v", err)
	}
	if result.MonthlyPayment < 0 || math.IsInf(result.MonthlyPayment, 0) {
		t.Errorf("Compute() monthly = %v, expected a finite non-negative figure", result.MonthlyPayment)
	}
	if math.Abs(result.TotalRepayment-100000) > constants.CurrencyTolerance {
		t.Errorf("Compute() total = %v, expected %v", result.TotalRepayment, 100000.0)
	}
}

func TestComputeInterestOnlyMatchesFormulaBitForBit(t *testing.T) {
	inputs := LoanInputs{Principal: 250000, TermYears: 35, AnnualRatePercent: 5.25, Type: InterestOnly}

	principal, years, rate := 250000.0, 35.0, 5.25
	months := years * 12
	monthly := principal * ((rate / 100) / 12)
	total := float64(monthly*months) + principal

	result, err := Compute(inputs)
	if err != nil {
		t.Fatalf("Compute() unexpected error = %v", err)
	}
	if result.MonthlyPayment != monthly {
		t.Errorf("Compute() monthly = %v, expected exactly %v", result.MonthlyPayment, monthly)
	}
	if result.TotalRepayment != total {
		t.Errorf("Compute() total = %v, expected exactly %v", result.TotalRepayment, total)
	}
}

func TestComputeIsIdempotent(t *testing.T) {
	inputs := LoanInputs{Principal: 250000, TermYears: 35, AnnualRatePercent: 5.25, Type: Repayment}

	first, err := Compute(inputs)
	if err != nil {
		t.Fatalf("Compute() unexpected error = %v", err)
	}
	second, err := Compute(inputs)
	if err != nil {
		t.Fatalf("Compute() unexpected error = %v", err)
	}
	if math.Float64bits(first.MonthlyPayment) != math.Float64bits(second.MonthlyPayment) ||
		math.Float64bits(first.TotalRepayment) != math.Float64bits(second.TotalRepayment) {
		t.Errorf("Compute() not bit-identical: %+v vs %+v", first, second)
	}
}

func TestComputeInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		inputs LoanInputs
	}{
		{"Zero term", LoanInputs{Principal: 100000, TermYears: 0, AnnualRatePercent: 4.5, Type: Repayment}},
		{"Negative term", LoanInputs{Principal: 100000, TermYears: -5, AnnualRatePercent: 4.5, Type: Repayment}},
		{"Negative principal", LoanInputs{Principal: -1, TermYears: 25, AnnualRatePercent: 4.5, Type: Repayment}},
		{"Negative rate", LoanInputs{Principal: 100000, TermYears: 25, AnnualRatePercent: -0.5, Type: InterestOnly}},
		{"NaN principal", LoanInputs{Principal: math.NaN(), TermYears: 25, AnnualRatePercent: 4.5, Type: Repayment}},
		{"Infinite term", LoanInputs{Principal: 100000, TermYears: math.Inf(1), AnnualRatePercent: 4.5, Type: Repayment}},
		{"Infinite rate", LoanInputs{Principal: 100000, TermYears: 25, AnnualRatePercent: math.Inf(1), Type: Repayment}},
		{"Unrecognized type", LoanInputs{Principal: 100000, TermYears: 25, AnnualRatePercent: 4.5, Type: "offset"}},
		{"Empty type", LoanInputs{Principal: 100000, TermYears: 25, AnnualRatePercent: 4.5}},
		{"Overflowing growth factor", LoanInputs{Principal: 100000, TermYears: 1e6, AnnualRatePercent: 1e6, Type: Repayment}},
		{"Overflowing total", LoanInputs{Principal: math.MaxFloat64, TermYears: 25, AnnualRatePercent: 1200, Type: InterestOnly}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Compute(tt.inputs)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("Compute() error = %v, expected ErrInvalidInput", err)
			}
			if result != (RepaymentResult{}) {
				t.Errorf("Compute() returned %+v alongside an error", result)
			}
		})
	}
}

func TestParseInputs(t *testing.T) {
	tests := []struct {
		name      string
		raw       RawInputs
		expected  LoanInputs
		wantError bool
	}{
		{
			name:     "Valid repayment",
			raw:      RawInputs{Amount: "100000", Term: "25", Rate: "4.5", Type: "repayment"},
			expected: LoanInputs{Principal: 100000, TermYears: 25, AnnualRatePercent: 4.5, Type: Repayment},
		},
		{
			name:     "Whitespace around numbers",
			raw:      RawInputs{Amount: " 2500.50 ", Term: "2.5", Rate: "0", Type: "interest-only"},
			expected: LoanInputs{Principal: 2500.50, TermYears: 2.5, AnnualRatePercent: 0, Type: InterestOnly},
		},
		{
			name:      "Non-numeric amount",
			raw:       RawInputs{Amount: "lots", Term: "25", Rate: "4.5", Type: "repayment"},
			wantError: true,
		},
		{
			name:      "Non-numeric rate",
			raw:       RawInputs{Amount: "100000", Term: "25", Rate: "4.5%", Type: "repayment"},
			wantError: true,
		},
		{
			name:      "Unknown type",
			raw:       RawInputs{Amount: "100000", Term: "25", Rate: "4.5", Type: "Repayment"},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseInputs(tt.raw)
			if tt.wantError {
				if !errors.Is(err, ErrInvalidInput) {
					t.Errorf("ParseInputs() error = %v, expected ErrInvalidInput", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseInputs() unexpected error = %v", err)
			}
			if result != tt.expected {
				t.Errorf("ParseInputs() = %+v, expected %+v", result, tt.expected)
			}
		})
	}
}

func TestParseMortgageType(t *testing.T) {
	for _, label := range []string{"repayment", "interest-only"} {
		mt, err := ParseMortgageType(label)
		if err != nil {
			t.Errorf("ParseMortgageType(%q) error = %v", label, err)
		}
		if mt.String() != label {
			t.Errorf("ParseMortgageType(%q) = %q", label, mt)
		}
	}

	if _, err := ParseMortgageType(""); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("ParseMortgageType(\"\") error = %v, expected ErrInvalidInput", err)
	}
}
