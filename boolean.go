package ccgen

import "fmt"

// BooleanHelper folds boolean literals to 0/1 integers and wraps
// expressions in a ternary when an arbitrary expression needs coercion
// to an integer 0/1 representation (spec.md §2).
//
// Grounded on the teacher's ternary-shaped Choice(...) emission in
// gen_go.go's visitOptionalNode, repurposed here from "try A else nil"
// to "condition ? 1 : 0".
type BooleanHelper struct{}

func NewBooleanHelper() *BooleanHelper { return &BooleanHelper{} }

// FoldLiteral renders a Go bool value as its C/C++ literal spelling:
// still "1"/"0" per spec.md's fold-to-integer rule (both dialects accept
// integer bool literals; `true`/`false` keywords are reserved for the
// typed-bool context by BooleanHelper.Keyword).
func (h *BooleanHelper) FoldLiteral(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

// Keyword renders the dialect's literal `bool` keyword spelling, used
// where the surrounding context is already typed as bool.
func (h *BooleanHelper) Keyword(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

// Ternary wraps expr in `(expr ? 1 : 0)`, used when a non-literal boolean
// expression must be materialized as an integer value.
func (h *BooleanHelper) Ternary(expr string) string {
	return fmt.Sprintf("(%s ? 1 : 0)", expr)
}
