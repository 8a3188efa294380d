package ccgen

import "fmt"

// DiagnosticKind is the user-visible taxonomy of errors the core can
// raise, per spec.md §7. It is a closed set, not a bare string, so
// callers can branch on it without string matching.
type DiagnosticKind int

const (
	TypeError DiagnosticKind = iota
	AccessError
	CapacityError
	ScopeError
	ShapeError
)

func (k DiagnosticKind) String() string {
	switch k {
	case TypeError:
		return "TypeError"
	case AccessError:
		return "AccessError"
	case CapacityError:
		return "CapacityError"
	case ScopeError:
		return "ScopeError"
	case ShapeError:
		return "ShapeError"
	default:
		return "UnknownError"
	}
}

// Diagnostic is the single concrete error type every validator in this
// module throws. The dispatcher catches it per statement and re-wraps it
// with the enclosing statement's span if the validator didn't already
// attach one (spec.md §4.11/§7).
type Diagnostic struct {
	Kind       DiagnosticKind
	Message    string
	Suggestion string
	Span       Span
}

func NewDiagnostic(kind DiagnosticKind, span Span, format string, args ...any) *Diagnostic {
	return &Diagnostic{Kind: kind, Message: fmt.Sprintf(format, args...), Span: span}
}

// WithSuggestion attaches a remediation hint (e.g. "try expr[0, 8]") to a
// diagnostic and returns it for chaining.
func (d *Diagnostic) WithSuggestion(format string, args ...any) *Diagnostic {
	d.Suggestion = fmt.Sprintf(format, args...)
	return d
}

func (d *Diagnostic) Error() string {
	if d.Suggestion != "" {
		return fmt.Sprintf("%s %s (%s)", d.Span.Start, d.Message, d.Suggestion)
	}
	return fmt.Sprintf("%s %s", d.Span.Start, d.Message)
}

// wrapWithLine re-wraps err with the statement-level span prefix if err is
// a *Diagnostic that doesn't yet carry location info (Span is the zero
// value). Non-diagnostic errors are returned unchanged: the core performs
// no silent recovery of user errors (spec.md §7).
func wrapWithLine(err error, span Span) error {
	if err == nil {
		return nil
	}
	d, ok := err.(*Diagnostic)
	if !ok {
		return err
	}
	if d.Span == (Span{}) {
		d.Span = span
	}
	return d
}
