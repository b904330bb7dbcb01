// Package validation performs semantic, submission-time validation of
// course and schedule data: regex/enum/range rules plus cross-field
// consistency checks, independent of the structural base schema.
//
// Findings split into errors and warnings. Errors mean the record
// cannot be trusted (malformed identifiers, impossible time ranges,
// out-of-range counts); warnings flag plausible-but-unusual data
// (overbooked sections, stale status flags, format drift) that should
// reach a human reviewer without blocking ingestion.
package validation

import (
	"fmt"
	"strings"
)

// FieldError is one validation error tied to a field path. Value holds
// the offending input when available.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Warning is a non-fatal finding; it never affects validity.
type Warning struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result aggregates errors and warnings across a validation run.
type Result struct {
	Errors     []FieldError `json:"errors"`
	Warnings   []Warning    `json:"warnings"`
	ValidCount int          `json:"valid_count"`
	TotalCount int          `json:"total_count"`
}

// IsValid reports whether the run produced no errors. Warnings do not
// count against validity.
func (r *Result) IsValid() bool {
	return len(r.Errors) == 0
}

// AddError records a validation error.
func (r *Result) AddError(field, message string, value any) {
	r.Errors = append(r.Errors, FieldError{Field: field, Message: message, Value: value})
}

// AddWarning records a non-fatal warning.
func (r *Result) AddWarning(field, message string) {
	r.Warnings = append(r.Warnings, Warning{Field: field, Message: message})
}

// Merge folds another result into r, prefixing every field path so the
// origin of each finding stays traceable in batch runs.
func (r *Result) Merge(other *Result, prefix string) {
	for _, e := range other.Errors {
		e.Field = prefix + "." + e.Field
		r.Errors = append(r.Errors, e)
	}
	for _, w := range other.Warnings {
		w.Field = prefix + "." + w.Field
		r.Warnings = append(r.Warnings, w)
	}
}

// Summary renders a short human-readable report.
func (r *Result) Summary() string {
	status := "Validation passed"
	if !r.IsValid() {
		status = "Validation failed"
	}
	return strings.Join([]string{
		status,
		fmt.Sprintf("Total items: %d", r.TotalCount),
		fmt.Sprintf("Valid items: %d", r.ValidCount),
		fmt.Sprintf("Errors: %d", len(r.Errors)),
		fmt.Sprintf("Warnings: %d", len(r.Warnings)),
	}, "\n")
}

// ErrorStrings flattens errors to "field: message" lines.
func (r *Result) ErrorStrings() []string {
	out := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		out[i] = e.Error()
	}
	return out
}

// WarningStrings flattens warnings to "field: message" lines.
func (r *Result) WarningStrings() []string {
	out := make([]string, len(r.Warnings))
	for i, w := range r.Warnings {
		out[i] = fmt.Sprintf("%s: %s", w.Field, w.Message)
	}
	return out
}
