package ccgen

import "fmt"

// StringDeclHelper renders the declaration (and optional literal
// initializer) of a bounded string variable: capacity+1 bytes of
// storage, validated against any string-literal initializer at
// declaration time (spec.md §4.8).
//
// Grounded on typegen.go's declareString, split out here because
// initializer validation is a distinct concern from bare type spelling.
type StringDeclHelper struct {
	typegen *TypeGenerationHelper
}

func NewStringDeclHelper(typegen *TypeGenerationHelper) *StringDeclHelper {
	return &StringDeclHelper{typegen: typegen}
}

// Declare renders the full declaration statement (without trailing
// semicolon) for a bounded-string variable, including a string-literal
// initializer when present.
func (h *StringDeclHelper) Declare(t TypeContext, varName string, initializer *StringLiteralExpr) (string, error) {
	decl, err := h.typegen.declareString(t, varName)
	if err != nil {
		return "", err
	}
	if initializer == nil {
		return decl, nil
	}
	if !t.StringCapacity.Resolved {
		return "", NewDiagnostic(ShapeError, initializer.Span(), "cannot validate string literal against unresolved capacity for %q", varName)
	}
	if len(initializer.Value) > t.StringCapacity.Value {
		return "", NewDiagnostic(CapacityError, initializer.Span(),
			"string literal of length %d exceeds declared capacity %d for %q", len(initializer.Value), t.StringCapacity.Value, varName).
			WithSuggestion("declare %s as string<%d> or shorter", varName, len(initializer.Value))
	}
	return fmt.Sprintf("%s = %q", decl, initializer.Value), nil
}
