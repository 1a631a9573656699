package mortgage

import (
	"fmt"
	"sort"
	"strings"

	"github.com/iwvelando/mortgage-calculator/pkg/constants"
)

// ValidationErrors maps a field name to its message. An empty set means the
// inputs are valid.
type ValidationErrors map[string]string

// Validate checks every field of raw and reports all failures in one pass.
func Validate(raw RawInputs) ValidationErrors {
	errs := make(ValidationErrors)

	if raw.Amount == "" {
		errs[constants.FieldAmount] = constants.MessageRequired
	}
	if raw.Term == "" {
		errs[constants.FieldTerm] = constants.MessageRequired
	}
	if raw.Rate == "" {
		errs[constants.FieldRate] = constants.MessageRequired
	}
	if !MortgageType(raw.Type).Valid() {
		errs[constants.FieldType] = constants.MessageSelectType
	}

	return errs
}

// ClearErrors returns an empty error set.
func ClearErrors() ValidationErrors {
	return make(ValidationErrors)
}

// Clear removes the entry for a single field, if present.
func (v ValidationErrors) Clear(field string) {
	delete(v, field)
}

// Valid reports whether the set holds no errors.
func (v ValidationErrors) Valid() bool {
	return len(v) == 0
}

// Fields returns the failing field names in sorted order.
func (v ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// Error implements the error interface so a non-empty set can be returned
// where an error is expected.
func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, field := range v.Fields() {
		parts = append(parts, fmt.Sprintf("%s: %s", field, v[field]))
	}
	return "invalid inputs: " + strings.Join(parts, "; ")
}
