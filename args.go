package ccgen

import "fmt"

// ArgumentGenerator renders one call-site argument against the callee's
// declared ParameterInfo for that position, choosing among: a callback
// reference, a compound literal that must be materialized into a
// temporary first, a struct by address/reference, an array or string
// passed through, and the scalar handling of renderScalarArg (by-value
// passthrough, address-of, string-subscript cast, or compound literal).
//
// Grounded on other_examples/c2go's transpileConditionalOperator, which
// routes every value through a single types.CastExpr call at the
// conversion boundary; ArgumentGenerator generalizes that single
// dispatch point to call-site argument passing instead of casts.
type ArgumentGenerator struct {
	mode    *ModeDispatcher
	state   *State
	typegen *TypeGenerationHelper
}

func NewArgumentGenerator(mode *ModeDispatcher, state *State, typegen *TypeGenerationHelper) *ArgumentGenerator {
	return &ArgumentGenerator{mode: mode, state: state, typegen: typegen}
}

// Render returns the C/C++ text for passing argExpr (whose already-
// generated scalar text is argText) to a parameter described by param.
func (g *ArgumentGenerator) Render(argExpr Expression, argText string, param ParameterInfo) (string, error) {
	switch {
	case param.IsCallback:
		return g.renderCallback(argExpr, argText)

	case isCompoundLiteral(argExpr) && (param.IsStruct || param.IsArray):
		return g.renderMaterializedLiteral(argExpr, argText, param)

	case param.IsStruct:
		return g.renderStructArg(argExpr, argText)

	case param.IsArray || param.IsString:
		// Arrays and bounded strings already decay to a pointer at the
		// use site; no address-of or dereference syntax is added.
		return argText, nil

	default:
		return g.renderScalarArg(argExpr, argText, param)
	}
}

// renderScalarArg handles spec.md §4.5's remaining branches for a
// pointer/reference-expecting scalar parameter: a simple identifier
// (already-owned pointer, array decay, or a plain lvalue needing
// address-of in C), a string-subscript argument against an integer
// target, a member-access lvalue, and the rvalue fallback that
// materializes a compound literal in C mode.
func (g *ArgumentGenerator) renderScalarArg(argExpr Expression, argText string, param ParameterInfo) (string, error) {
	if param.IsPassByValue {
		return argText, nil
	}

	if idx, ok := argExpr.(*IndexExpr); ok {
		if id, isID := idx.Target.(*IdentifierExpr); isID {
			if t, known := g.state.LookupType(id.Name); known && t.IsString && IsInteger(param.BaseType) {
				cType := g.typegen.BaseTypeName(param.BaseType) + "*"
				return g.mode.ReinterpretCast(cType, g.mode.AddressOf()+argText), nil
			}
		}
	}

	if id, ok := argExpr.(*IdentifierExpr); ok {
		if p, isParam := g.state.Parameter(id.Name); isParam && !p.IsPassByValue {
			// Already a pointer/reference at this call site.
			return argText, nil
		}
		if g.state.IsLocalArray(id.Name) {
			return argText, nil
		}
		if g.mode.CppMode {
			return argText, nil
		}
		return g.mode.AddressOf() + argText, nil
	}

	if _, ok := argExpr.(*MemberAccessExpr); ok {
		if g.mode.CppMode {
			return argText, nil
		}
		return g.mode.AddressOf() + argText, nil
	}

	// Rvalue argument: C mode adapts it to pointer semantics via a
	// compound literal bound to the parameter's base type; C++ binds the
	// rvalue directly to a const reference (spec.md §4.5.4).
	if g.mode.CppMode {
		return argText, nil
	}
	cType := g.typegen.BaseTypeName(param.BaseType)
	return fmt.Sprintf("%s(%s){%s}", g.mode.AddressOf(), cType, argText), nil
}

// renderCallback passes a bare function name through unchanged: a
// function designator converts to a function pointer in both dialects
// without an explicit address-of (spec.md §4.5.4).
func (g *ArgumentGenerator) renderCallback(argExpr Expression, argText string) (string, error) {
	if _, ok := argExpr.(*IdentifierExpr); !ok {
		return "", NewDiagnostic(TypeError, argExpr.Span(), "callback argument must be a bare function name, got %s", argText)
	}
	return argText, nil
}

// renderMaterializedLiteral queues a named temporary declaration for a
// `{...}` compound literal passed where a pointer/reference parameter is
// expected (spec.md §4.5.2: "a compound literal cannot have its address
// taken directly in C; it is first bound to a named temporary"), then
// returns the address (C) or name (C++) of that temporary.
func (g *ArgumentGenerator) renderMaterializedLiteral(argExpr Expression, argText string, param ParameterInfo) (string, error) {
	tmp := g.state.NextTempVar()
	cType := param.BaseType
	decl := fmt.Sprintf("%s %s = %s;", cType, tmp, argText)
	g.state.QueueTempDeclaration(decl)
	if g.mode.CppMode {
		return tmp, nil
	}
	return g.mode.AddressOf() + tmp, nil
}

// renderStructArg passes a struct lvalue by address (C) or by reference
// binding, which requires no syntax at the call site (C++).
func (g *ArgumentGenerator) renderStructArg(argExpr Expression, argText string) (string, error) {
	if g.mode.CppMode {
		return argText, nil
	}
	return g.mode.AddressOf() + argText, nil
}

func isCompoundLiteral(e Expression) bool {
	_, ok := e.(*CompoundLiteralExpr)
	return ok
}
