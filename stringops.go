package ccgen

import "fmt"

// StringOperationsHelper lowers bounded-string concatenation and
// substring expressions to strncpy/strncat statement sequences,
// validating declared capacities at each step (spec.md §4.8).
//
// Grounded on google/wuffs's cgen/expr.go low_bits lowering pattern —
// one abstract operation expands to a short, fixed sequence of C
// statements — generalized here from bit masking to bounded-string
// library calls.
type StringOperationsHelper struct {
	state *State
}

func NewStringOperationsHelper(state *State) *StringOperationsHelper {
	return &StringOperationsHelper{state: state}
}

// ValidateConcatCapacity rejects a concatenation whose operands' declared
// capacities cannot be proven to fit within destCapacity (spec.md §4.8:
// "concatenation is rejected at the declared-capacity level, not at
// runtime"). Unbounded operands (capacity < 0, i.e. `const string`
// parameters) cannot be validated statically and are always accepted,
// deferring to the strncat truncation semantics at runtime.
func (h *StringOperationsHelper) ValidateConcatCapacity(leftCapacity, rightCapacity, destCapacity int, sp Span) error {
	if leftCapacity < 0 || rightCapacity < 0 {
		return nil
	}
	if leftCapacity+rightCapacity > destCapacity {
		return NewDiagnostic(CapacityError, sp,
			"String concatenation requires capacity %d, but string<%d>", leftCapacity+rightCapacity, destCapacity).
			WithSuggestion("increase destination capacity to at least %d", leftCapacity+rightCapacity)
	}
	return nil
}

// EmitConcat returns the statement sequence assigning `left + right`
// into dest, using strncpy to seed dest from left and strncat to append
// right, both bounded by dest's declared storage dimension.
func (h *StringOperationsHelper) EmitConcat(dest, left, right string, destStorage int) []string {
	h.state.RequireHeader(HeaderCstring)
	return []string{
		fmt.Sprintf("strncpy(%s, %s, %d);", dest, left, destStorage-1),
		fmt.Sprintf("%s[%d] = '\\0';", dest, destStorage-1),
		fmt.Sprintf("strncat(%s, %s, %d - strlen(%s) - 1);", dest, right, destStorage, dest),
	}
}

// ValidateSubstringCapacity rejects a substring assignment whose length
// operand is a resolvable constant exceeding destCapacity.
func (h *StringOperationsHelper) ValidateSubstringCapacity(length ArrayDimension, destCapacity int, sp Span) error {
	if !length.Resolved {
		return nil
	}
	if length.Value > destCapacity {
		return NewDiagnostic(CapacityError, sp,
			"substring length %d exceeds destination capacity %d", length.Value, destCapacity).
			WithSuggestion("increase destination capacity to at least %d", length.Value)
	}
	return nil
}

// EmitSubstring returns the statement sequence copying length bytes of
// source starting at start into dest and terminating it.
func (h *StringOperationsHelper) EmitSubstring(dest, source, start, length string, destStorage int) []string {
	h.state.RequireHeader(HeaderCstring)
	return []string{
		fmt.Sprintf("strncpy(%s, %s + %s, %s);", dest, source, start, length),
		fmt.Sprintf("%s[%s < %d ? %s : %d] = '\\0';", dest, length, destStorage-1, length, destStorage-1),
	}
}
