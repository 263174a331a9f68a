package diagnostic

import (
	"fmt"
	"strings"

	"github.com/lhaig/predterm/internal/ir"
)

// Severity represents the severity level of a diagnostic message
type Severity int

const (
	Error Severity = iota
	Warning
	Info
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info:
		return "info"
	default:
		return "unknown"
	}
}

// Kind groups diagnostics by the stage that produced them.
type Kind string

const (
	Consistency Kind = "consistency" // missing background declarations
	Validation  Kind = "validation"  // malformed program
	Lint        Kind = "lint"
	Load        Kind = "load"
)

// Diagnostic represents a single error, warning, or info message
type Diagnostic struct {
	Severity Severity
	Kind     Kind
	Message  string
	Pos      ir.Position
	Hint     string // optional suggestion
}

// Diagnostics is a pass-wide diagnostic sink. It is not safe for concurrent
// use; give every concurrent run its own sink.
type Diagnostics struct {
	items []Diagnostic
}

// New creates a new empty Diagnostics collection
func New() *Diagnostics {
	return &Diagnostics{
		items: make([]Diagnostic, 0),
	}
}

// Report appends a diagnostic.
func (d *Diagnostics) Report(item Diagnostic) {
	d.items = append(d.items, item)
}

// Errorf adds an error diagnostic with formatted message
func (d *Diagnostics) Errorf(kind Kind, pos ir.Position, format string, args ...interface{}) {
	d.Report(Diagnostic{
		Severity: Error,
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
		Pos:      pos,
	})
}

// Warningf adds a warning diagnostic with formatted message
func (d *Diagnostics) Warningf(kind Kind, pos ir.Position, format string, args ...interface{}) {
	d.Report(Diagnostic{
		Severity: Warning,
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
		Pos:      pos,
	})
}

// WarningWithHint adds a warning diagnostic with an optional hint
func (d *Diagnostics) WarningWithHint(kind Kind, pos ir.Position, msg, hint string) {
	d.Report(Diagnostic{
		Severity: Warning,
		Kind:     kind,
		Message:  msg,
		Pos:      pos,
		Hint:     hint,
	})
}

// Append copies every diagnostic of other into d.
func (d *Diagnostics) Append(other *Diagnostics) {
	if other == nil {
		return
	}
	d.items = append(d.items, other.items...)
}

// HasErrors returns true if there are any error-level diagnostics
func (d *Diagnostics) HasErrors() bool {
	for _, item := range d.items {
		if item.Severity == Error {
			return true
		}
	}
	return false
}

// Errors returns only the error-level diagnostics
func (d *Diagnostics) Errors() []Diagnostic {
	errors := make([]Diagnostic, 0)
	for _, item := range d.items {
		if item.Severity == Error {
			errors = append(errors, item)
		}
	}
	return errors
}

// OfKind returns the diagnostics of one kind.
func (d *Diagnostics) OfKind(kind Kind) []Diagnostic {
	var out []Diagnostic
	for _, item := range d.items {
		if item.Kind == kind {
			out = append(out, item)
		}
	}
	return out
}

// All returns all diagnostics regardless of severity
func (d *Diagnostics) All() []Diagnostic {
	return d.items
}

// Count returns the total number of diagnostics
func (d *Diagnostics) Count() int {
	return len(d.items)
}

// ErrorCount returns the number of error-level diagnostics
func (d *Diagnostics) ErrorCount() int {
	return len(d.Errors())
}

// WarningCount returns the number of warning-level diagnostics
func (d *Diagnostics) WarningCount() int {
	count := 0
	for _, item := range d.items {
		if item.Severity == Warning {
			count++
		}
	}
	return count
}

// Format returns human-readable messages, one per line. filename is used
// for diagnostics whose position carries no file.
//
//	error[list.yaml:3:10]: nestedPredicates function is needed but not declared.
//	warning[list.yaml:5:1]: predicate tree is never unfolded
//	  hint: remove it or unfold it
func (d *Diagnostics) Format(filename string) string {
	if len(d.items) == 0 {
		return ""
	}

	var builder strings.Builder
	for i, item := range d.items {
		pos := item.Pos
		if pos.File == "" {
			pos.File = filename
		}

		fmt.Fprintf(&builder, "%s[%s]: %s", item.Severity, pos, item.Message)

		if item.Hint != "" {
			fmt.Fprintf(&builder, "\n  hint: %s", item.Hint)
		}

		if i < len(d.items)-1 {
			builder.WriteString("\n")
		}
	}

	return builder.String()
}
