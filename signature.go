package ccgen

import (
	"fmt"
	"strings"
)

// ParameterInputAdapter normalizes a parser-level Parameter into the
// ParameterInfo record the state and every downstream helper consult
// (spec.md §4.6 "parameter-passing calculus").
//
// Grounded on the teacher's writeConstructor in gen_go.go, which walks a
// definition's raw fields once and produces the flags-plus-name records
// every other emitter method reads back out.
type ParameterInputAdapter struct {
	typegen *TypeGenerationHelper
	state   *State
}

func NewParameterInputAdapter(typegen *TypeGenerationHelper, state *State) *ParameterInputAdapter {
	return &ParameterInputAdapter{typegen: typegen, state: state}
}

// Adapt classifies a single parser-level Parameter into a ParameterInfo,
// applying spec.md §4.6's pass-by rule:
//   - callback, string, array, struct: classified by IsCallback,
//     IsString, IsArray or IsStruct respectively; IsPassByValue stays
//     false for them, and SignatureBuilder spells each by its own rule.
//   - float, enum, bitmap: IsPassByValue is set.
//   - every other primitive (plain integers, bool): pass-by-reference,
//     since the function may write through it and the source has no
//     separate out-parameter syntax.
func (a *ParameterInputAdapter) Adapt(p Parameter) (ParameterInfo, TypeInfo) {
	typ := a.typegen.ToTypeInfo(p.Type)
	typ.IsConst = p.IsConst || typ.IsConst

	info := ParameterInfo{
		Name:     p.Name,
		BaseType: p.Type.Name,
		IsArray:  p.Type.IsArray,
		IsConst:  typ.IsConst,
	}

	if p.IsCallback {
		info.IsCallback = true
		info.CallbackTypedef = p.CallbackTypedef
		return info, typ
	}

	if p.Type.StringCapacity != nil {
		info.IsString = true
		if p.Type.StringCapacity.Resolved {
			info.StringCapacity = p.Type.StringCapacity.Value
		} else {
			info.IsUnboundedString = true
		}
		return info, typ
	}

	if p.Type.IsArray {
		info.IsArray = true
		info.ArrayDimensions = p.Type.Dimensions
		return info, typ
	}

	if a.state.Symbols.IsStruct(p.Type.Name) {
		info.IsStruct = true
		return info, typ
	}

	if IsFloat(p.Type.Name) || a.state.Symbols.IsEnum(p.Type.Name) || a.state.Symbols.IsBitmap(p.Type.Name) {
		info.IsPassByValue = true
		return info, typ
	}

	// Plain integer/bool primitive: pass by reference (spec.md §4.6
	// "primitive with explicit address semantics") so the callee can
	// write through it; rendered as `T *name` (C) / `T &name` (C++) and
	// read back through IdentifierResolver's deref form.
	return info, typ
}

// ApplyAutoConst marks info as auto-const when the transitive
// modification propagator (modprop.go) has proven the parameter is
// never written within the function it belongs to and it is not
// already declared const (spec.md §4.6 "auto-const").
func ApplyAutoConst(info ParameterInfo) ParameterInfo {
	if !info.IsConst && !info.IsPassByValue {
		info.IsAutoConst = true
	}
	return info
}

// SignatureBuilder renders a function's C/C++ signature line from its
// declared return type, name, and parameter list, applying the
// parameter-passing and separator rules spec.md §4.6 fixes.
//
// Grounded on the teacher's writeParserStruct field-by-field signature
// assembly in genc.go.
type SignatureBuilder struct {
	mode    *ModeDispatcher
	typegen *TypeGenerationHelper
	adapter *ParameterInputAdapter
}

func NewSignatureBuilder(mode *ModeDispatcher, typegen *TypeGenerationHelper, adapter *ParameterInputAdapter) *SignatureBuilder {
	return &SignatureBuilder{mode: mode, typegen: typegen, adapter: adapter}
}

// Build renders "ReturnType name(params...)" with no trailing
// semicolon or brace, leaving statement termination to the caller.
func (b *SignatureBuilder) Build(fn FunctionDeclaration, params []ParameterInfo) string {
	ret := b.typegen.ReturnTypeName(fn.ReturnType, fn.IsVoid)
	var parts []string
	for _, p := range params {
		parts = append(parts, b.renderParam(p))
	}
	return fmt.Sprintf("%s %s(%s)", ret, fn.Name, strings.Join(parts, ", "))
}

// renderParam spells one parameter per spec.md §4.6:
//   - by-value (float/enum/bitmap): "[const] Type name"
//   - array (both dialects): "[const] Type name[]"; the dimensions are
//     not part of the parameter spelling.
//   - struct: "[const] Type *name" in C, "[const] Type &name" in C++
//   - callback: the typedef'd function-pointer type name, "TypedefName name"
//   - bounded string: "[const] char name[]" (array decay; capacity is
//     not part of the parameter type)
//   - unbounded const string: "const char *name"
//   - any other primitive (by reference): "[const] Type *name" in C,
//     "[const] Type &name" in C++ unless ForcePointerSyntax is set.
func (b *SignatureBuilder) renderParam(p ParameterInfo) string {
	constPrefix := ""
	if p.IsConst || p.IsAutoConst {
		constPrefix = "const "
	}

	if p.IsCallback {
		return fmt.Sprintf("%s %s", p.CallbackTypedef, p.Name)
	}

	if p.IsString {
		if p.IsUnboundedString {
			return fmt.Sprintf("const char *%s", p.Name)
		}
		return fmt.Sprintf("%schar %s[]", constPrefix, p.Name)
	}

	base := b.typegen.BaseTypeName(p.BaseType)

	if p.IsArray {
		if b.mode.CppMode {
			return fmt.Sprintf("%s%s %s[]", constPrefix, base, p.Name)
		}
		return fmt.Sprintf("%s%s %s[]", constPrefix, base, p.Name)
	}

	if p.IsStruct {
		if b.mode.CppMode {
			return fmt.Sprintf("%s%s &%s", constPrefix, base, p.Name)
		}
		return fmt.Sprintf("%s%s *%s", constPrefix, base, p.Name)
	}

	if p.IsPassByValue {
		return fmt.Sprintf("%s%s %s", constPrefix, base, p.Name)
	}

	// Plain primitive, pass-by-reference (spec.md §4.6): "T *name" in C,
	// "T &name" in C++ unless a callback typedef forces pointer syntax.
	if b.mode.CppMode && !p.ForcePointerSyntax {
		return fmt.Sprintf("%s%s &%s", constPrefix, base, p.Name)
	}
	return fmt.Sprintf("%s%s *%s", constPrefix, base, p.Name)
}
