package ccgen

import (
	"fmt"
	"strings"
)

// CastValidator classifies types and decides whether a cast between them
// is narrowing, sign-changing, or requires float-clamping (spec.md §4.3).
//
// Grounded on other_examples/c2go's transpiler/operators.go, which calls
// through a single types.CastExpr at every conversion point, and on
// google/wuffs's cgen/expr.go low_bits masking — the direct ancestor of
// the mask math in bitrange.go that this validator's narrowing wrap
// composes with.
type CastValidator struct{}

func NewCastValidator() *CastValidator { return &CastValidator{} }

func (v *CastValidator) IsNarrowing(sourceWidth, targetWidth int) bool {
	return targetWidth < sourceWidth
}

func (v *CastValidator) IsSignChange(sourceType, targetType string) bool {
	if !IsInteger(sourceType) || !IsInteger(targetType) {
		return false
	}
	return IsSignedInt(sourceType) != IsSignedInt(targetType)
}

// RequiresFloatClamp reports whether converting from sourceType to
// targetType crosses the float->integer boundary, which spec.md §4.3
// requires a runtime-clamping helper for.
func (v *CastValidator) RequiresFloatClamp(sourceType, targetType string) bool {
	return IsFloat(sourceType) && IsInteger(targetType)
}

// ValidateAssignabilityWithoutBitRange rejects narrowing or sign-changing
// casts between integer types unless performed through an explicit
// bit-range extraction (spec.md §4.3 "Rejected casts"). Call this only
// when the source expression is NOT itself a BitRangeExpr/SubstringExpr
// result — a bit-range read already carries its narrowing cast from
// BitRangeHelper.ReadInt.
func (v *CastValidator) ValidateAssignabilityWithoutBitRange(sourceType, targetType string, sp Span) error {
	if !IsInteger(sourceType) || !IsInteger(targetType) {
		return nil
	}
	sw, tw := TypeWidth[sourceType], TypeWidth[targetType]
	if v.IsNarrowing(sw, tw) {
		return NewDiagnostic(TypeError, sp, "Cannot cast %s to %s (narrowing)", sourceType, targetType).
			WithSuggestion("try expr[0, %d]", tw)
	}
	if v.IsSignChange(sourceType, targetType) {
		return NewDiagnostic(TypeError, sp, "Cannot cast %s to %s (sign change)", sourceType, targetType).
			WithSuggestion("try expr[0, %d]", tw)
	}
	return nil
}

// NarrowingCastHelper wraps an expression with the correct cast (C-style
// or static_cast) when the essential target type differs from the
// promoted source type (spec.md §4.3's essential-type rule). This is the
// canonical form; spec.md §9 Open Questions resolves the
// ArrayAccessHelper-internal duplicate in favor of this implementation
// (see DESIGN.md).
type NarrowingCastHelper struct {
	mode *ModeDispatcher
}

func NewNarrowingCastHelper(mode *ModeDispatcher) *NarrowingCastHelper {
	return &NarrowingCastHelper{mode: mode}
}

// Wrap emits expr wrapped with a cast to targetType if targetType is
// narrower than the C `int` promotion width (32 bits) or is bool;
// otherwise expr is returned unchanged.
func (h *NarrowingCastHelper) Wrap(expr string, targetType string) string {
	if IsBool(targetType) {
		boolForm := fmt.Sprintf("((%s) != 0U)", expr)
		if strings.HasSuffix(expr, ") != 0U)") {
			// Already the canonical bool form: composing with
			// identity at a matching width is identity.
			return expr
		}
		return boolForm
	}
	width, ok := TypeWidth[targetType]
	if !ok || width >= 32 {
		return expr
	}
	cast := h.mode.Cast(h.cTypeName(targetType), expr)
	if strings.HasPrefix(expr, castPrefix(h.mode.CppMode, h.cTypeName(targetType))) {
		return expr
	}
	return cast
}

func castPrefix(cppMode bool, cType string) string {
	if cppMode {
		return fmt.Sprintf("static_cast<%s>", cType)
	}
	return fmt.Sprintf("(%s)", cType)
}

func (h *NarrowingCastHelper) cTypeName(targetType string) string {
	if IsSignedInt(targetType) {
		return CIntType(TypeWidth[targetType])
	}
	return CUIntType(TypeWidth[targetType], h.mode.CppMode)
}

// Idempotent reapplies Wrap to an already-wrapped expression for the
// same target type and asserts the result is unchanged, i.e. composing
// the mode-selected cast with itself at a matching width is identity
// (spec.md §8 "Cast idempotence"). Exposed for tests, not used at
// runtime.
func (h *NarrowingCastHelper) Idempotent(expr, targetType string) bool {
	once := h.Wrap(expr, targetType)
	twice := h.Wrap(once, targetType)
	return once == twice
}
