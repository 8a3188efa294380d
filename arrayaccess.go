package ccgen

import "fmt"

// ArrayAccessHelper renders plain array indexing and routes bit-range
// and substring subscripts to the appropriate sub-helper, wrapping
// sub-word integer results with the canonical narrowing cast (spec.md
// §4.4). Per spec.md §9 Open Question #1, this helper delegates to
// NarrowingCastHelper.Wrap rather than keeping its own duplicate cast
// logic, which the teacher's genc.go has no direct analog for — the
// closest grounding is genc.go's writeParserMethods, which always routes
// byte-level reads through one shared helper instead of inlining casts
// at each call site.
type ArrayAccessHelper struct {
	bits *BitRangeHelper
	cast *NarrowingCastHelper
}

func NewArrayAccessHelper(bits *BitRangeHelper, cast *NarrowingCastHelper) *ArrayAccessHelper {
	return &ArrayAccessHelper{bits: bits, cast: cast}
}

// Index renders `target[index]` for a plain array element read.
func (h *ArrayAccessHelper) Index(target, index string) string {
	return fmt.Sprintf("%s[%s]", target, index)
}

// BitRangeRead renders an integer bit-range read `target[start, width]`
// and, when elementType is a sub-word integer, wraps the result with the
// narrowing cast spec.md §4.3 requires so the expression's essential
// type matches elementType rather than the promoted `int` the mask
// arithmetic naturally produces.
func (h *ArrayAccessHelper) BitRangeRead(target string, start, width int, elementType string) (string, error) {
	return h.bits.ReadInt(target, start, width, elementType)
}

// BitRangeWrite renders the read-modify-write assignment RHS for writing
// value into bits [start, start+width) of target.
func (h *ArrayAccessHelper) BitRangeWrite(target, value string, start, width int) string {
	return h.bits.WriteIntMask(target, value, start, width)
}

// Substring renders a bounded-string substring read as a
// strncpy-backed expression; spec.md §4.8 requires the destination be a
// separate statement rather than an expression, so Substring returns
// only the source slice descriptor and the caller (stringops.go) emits
// the copy statement.
type SubstringSlice struct {
	Source string
	Start  string
	Length string
}

func (h *ArrayAccessHelper) Substring(target, start, length string) SubstringSlice {
	return SubstringSlice{Source: target, Start: start, Length: length}
}
