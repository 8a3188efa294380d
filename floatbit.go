package ccgen

import "fmt"

// FloatBitHelper implements the float bit-range read/write protocol
// spec.md §4.4 requires: a `union { float f; uint32_t u; }` shadow
// variable per float lvalue, declared once, synced from the float
// before its first bit-level read or write, and invalidated whenever the
// float is assigned to directly (outside the shadow). This keeps every
// punning access behind a union member access rather than a memcpy or
// pointer cast, which is what MISRA C:2012 rule 21.15 requires.
//
// Grounded on the teacher's genc.go writeParserStruct, which declares a
// C union once per backing field and threads reads/writes through named
// member accesses rather than raw casts; generalized here from the
// parser's byte-union to a float/uint32 punning union plus the
// declare-once/sync-before-use/invalidate-on-write bookkeeping spec.md
// §4.4 adds on top.
type FloatBitHelper struct {
	bits  *BitRangeHelper
	state *State
}

func NewFloatBitHelper(bits *BitRangeHelper, state *State) *FloatBitHelper {
	return &FloatBitHelper{bits: bits, state: state}
}

// shadowIntType returns the unsigned integer type backing the shadow
// union for a given float primitive width.
func shadowIntType(floatType string) string {
	if floatType == "f64" {
		return "uint64_t"
	}
	return "uint32_t"
}

// ensureDeclared queues the union declaration for varName, followed by
// the initial copy of the float into it, the first time it is needed; a
// no-op on every subsequent call (spec.md §4.4 "declared once").
func (h *FloatBitHelper) ensureDeclared(varName, floatType string) {
	if h.state.IsShadowDeclared(varName) {
		return
	}
	h.state.RequireHeader(HeaderStdint)
	shadow := ShadowName(varName)
	decl := fmt.Sprintf("union { %s f; %s u; } %s;", CFloatType(floatType), shadowIntType(floatType), shadow)
	h.state.QueueTempDeclaration(decl)
	h.state.QueueTempDeclaration(fmt.Sprintf("%s.f = %s;", shadow, varName))
	h.state.DeclareShadow(varName)
}

// ensureCurrent queues a resync (`__bits_v.f = v;`) when the shadow is
// stale relative to the last direct assignment to varName, a no-op
// otherwise (spec.md §4.4 "read-before-first-use").
func (h *FloatBitHelper) ensureCurrent(varName string) {
	if h.state.IsShadowCurrent(varName) {
		return
	}
	shadow := ShadowName(varName)
	h.state.QueueTempDeclaration(fmt.Sprintf("%s.f = %s;", shadow, varName))
	h.state.MarkShadowCurrent(varName)
}

// InvalidateOnAssignment marks varName's shadow stale. Callers
// (assignment.go) must invoke this whenever varName is the target of a
// plain, non-bit-range assignment (spec.md §4.4 "invalidate-on-write").
func (h *FloatBitHelper) InvalidateOnAssignment(varName string) {
	h.state.InvalidateShadow(varName)
}

// ReadBits renders the expression for reading bits [start, start+width)
// of the float variable varName's representation, queuing any
// declare/sync statements needed first.
func (h *FloatBitHelper) ReadBits(varName, floatType string, start, width int) (string, error) {
	h.ensureDeclared(varName, floatType)
	h.ensureCurrent(varName)
	shadow := ShadowName(varName) + ".u"
	return h.bits.ReadInt(shadow, start, width, "")
}

// WriteBits queues the statements that set bits [start, start+width) of
// varName's representation to value and writes the result back into
// varName, leaving the shadow current afterward (it now mirrors the new
// value written entirely through itself).
func (h *FloatBitHelper) WriteBits(varName, floatType, value string, start, width int) {
	h.ensureDeclared(varName, floatType)
	h.ensureCurrent(varName)
	shadow := ShadowName(varName)
	newU := h.bits.WriteIntMask(shadow+".u", value, start, width)
	h.state.QueueTempDeclaration(fmt.Sprintf("%s.u = %s;", shadow, newU))
	h.state.QueueTempDeclaration(fmt.Sprintf("%s = %s.f;", varName, shadow))
	h.state.MarkShadowCurrent(varName)
}
