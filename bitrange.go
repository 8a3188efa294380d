package ccgen

import "fmt"

// BitRangeHelper builds integer and float bit-range read expressions and
// names shadow variables (spec.md §4.4).
//
// Grounded on other_examples/google-wuffs's cmd/wuffs-c/internal/cgen/
// expr.go low_bits lowering: `x.low_bits(n)` in C is
// `((x) & ((1 << (n)) - 1))`. This module generalizes that to an
// arbitrary start offset and an exact-width unsigned mask literal.
type BitRangeHelper struct {
	cast *NarrowingCastHelper
	mode *ModeDispatcher
}

func NewBitRangeHelper(cast *NarrowingCastHelper, mode *ModeDispatcher) *BitRangeHelper {
	return &BitRangeHelper{cast: cast, mode: mode}
}

// Mask returns the unsigned literal mask of the minimum width containing
// width bits, spelled with the C "U" suffix (spec.md §4.4: "The mask is
// an unsigned literal of the minimum width containing `width` bits; `U`
// suffix in C mode"). The suffix is kept in C++ mode too, since `U` is a
// valid (and MISRA-friendly) suffix in both dialects.
func (h *BitRangeHelper) Mask(width int) string {
	if width <= 0 {
		return "0U"
	}
	if width >= 64 {
		return "0xFFFFFFFFFFFFFFFFULL"
	}
	m := (uint64(1) << uint(width)) - 1
	return fmt.Sprintf("0x%XU", m)
}

// ReadInt builds the integer bit-range read expression for `v[start,
// width]` (spec.md §4.4):
//   - width 0 is a caller error (ShapeError), not representable here.
//   - start 0 => `((v) & mask(width))`
//   - otherwise => `((v >> start) & mask(width))`
//
// If targetType is non-empty, the result is wrapped with the narrowing
// cast rule (spec.md §4.4 "If a narrower target type is known, wrap with
// the narrowing-cast rule above").
func (h *BitRangeHelper) ReadInt(v string, start, width int, targetType string) (string, error) {
	if width <= 0 {
		return "", NewDiagnostic(ShapeError, Span{}, "bit-range width must be greater than zero")
	}
	var expr string
	if start == 0 {
		expr = fmt.Sprintf("((%s) & %s)", v, h.Mask(width))
	} else {
		expr = fmt.Sprintf("((%s >> %d) & %s)", v, start, h.Mask(width))
	}
	if targetType != "" {
		expr = h.cast.Wrap(expr, targetType)
	}
	return expr, nil
}

// WriteIntMask builds the read-modify-write mask expression used to set
// bits [start, start+width) of v to the low `width` bits of value,
// leaving the rest of v untouched:
//   (v & ~(mask(width) << start)) | ((value & mask(width)) << start)
func (h *BitRangeHelper) WriteIntMask(v, value string, start, width int) string {
	mask := h.Mask(width)
	if start == 0 {
		return fmt.Sprintf("((%s & ~%s) | (%s & %s))", v, mask, value, mask)
	}
	return fmt.Sprintf("((%s & ~(%s << %d)) | ((%s & %s) << %d))", v, mask, start, value, mask, start)
}

// ShadowName returns the name of the union-typed shadow variable for a
// float variable named varName (spec.md §4.4: `__bits_<varName>`).
func ShadowName(varName string) string {
	return fmt.Sprintf("__bits_%s", varName)
}
