package ccgen

import "fmt"

// VariableDeclHelper orchestrates emitting a single local variable
// declaration statement: resolving its type, validating and rendering
// its initializer, registering it with State, and producing the final
// declaration text.
//
// Grounded on the teacher's writeParserConstructor in genc.go, which
// assembles a declaration's full text (type, name, initializer) in one
// method rather than leaving the caller to stitch the pieces together.
type VariableDeclHelper struct {
	typegen    *TypeGenerationHelper
	stringdecl *StringDeclHelper
	arrayinit  *ArrayInitHelper
	cast       *CastValidator
	state      *State
}

func NewVariableDeclHelper(
	typegen *TypeGenerationHelper,
	stringdecl *StringDeclHelper,
	arrayinit *ArrayInitHelper,
	cast *CastValidator,
	state *State,
) *VariableDeclHelper {
	return &VariableDeclHelper{typegen: typegen, stringdecl: stringdecl, arrayinit: arrayinit, cast: cast, state: state}
}

// Declare renders decl.Name's full declaration statement text
// (including trailing semicolon) and registers it as a local variable on
// State. initText, when non-empty, is the already-generated C text of
// decl.Initializer's scalar form (callers generate expression text
// through the dispatcher before calling in, so this helper stays free of
// expression-generation concerns).
func (h *VariableDeclHelper) Declare(decl VariableDeclaration, initText string, initElements []string) (string, error) {
	if decl.Type.StringCapacity != nil {
		var lit *StringLiteralExpr
		if decl.Initializer != nil {
			lit, _ = decl.Initializer.(*StringLiteralExpr)
		}
		text, err := h.stringdecl.Declare(decl.Type, decl.Name, lit)
		if err != nil {
			return "", err
		}
		h.registerLocal(decl)
		return text + ";", nil
	}

	base, err := h.typegen.DeclareType(decl.Type, decl.Name)
	if err != nil {
		return "", err
	}

	h.registerLocal(decl)

	if decl.Initializer == nil {
		return base + ";", nil
	}

	if fill, ok := decl.Initializer.(*FillAllExpr); ok {
		_ = fill
		count := 0
		if len(decl.Type.Dimensions) == 1 && decl.Type.Dimensions[0].Resolved {
			count = decl.Type.Dimensions[0].Value
		}
		isZero := initText == "0" || initText == "0U" || initText == "0.0f" || initText == "0.0"
		list := h.arrayinit.RenderFillAll(initText, count, isZero)
		return fmt.Sprintf("%s = %s;", base, list), nil
	}

	if decl.Type.IsArray {
		list := h.arrayinit.RenderList(initElements)
		return fmt.Sprintf("%s = %s;", base, list), nil
	}

	return fmt.Sprintf("%s = %s;", base, initText), nil
}

func (h *VariableDeclHelper) registerLocal(decl VariableDeclaration) {
	h.state.DeclareLocal(decl.Name, decl.Type.IsArray)
	h.state.RegisterType(decl.Name, h.typegen.ToTypeInfo(decl.Type))
}
