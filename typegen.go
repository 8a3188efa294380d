package ccgen

import (
	"fmt"
	"strconv"
	"strings"
)

// TypeGenerationHelper renders a TypeContext or TypeInfo to its C/C++
// spelling: base type name, const qualifier, and array suffix (spec.md
// §4.1).
//
// Grounded on the teacher's writeParserStruct in genc.go, which
// assembles a C type name plus pointer/array decoration field by field
// rather than through a templating library.
type TypeGenerationHelper struct {
	mode  *ModeDispatcher
	state *State
}

func NewTypeGenerationHelper(mode *ModeDispatcher, state *State) *TypeGenerationHelper {
	return &TypeGenerationHelper{mode: mode, state: state}
}

// BaseTypeName renders the C/C++ spelling of a primitive, enum, bitmap,
// struct, or string base type name, ignoring array/const decoration
// (spec.md §4.1).
func (h *TypeGenerationHelper) BaseTypeName(typeName string) string {
	switch {
	case IsSignedInt(typeName):
		h.state.RequireHeader(HeaderStdint)
		return CIntType(TypeWidth[typeName])
	case IsUnsignedInt(typeName):
		h.state.RequireHeader(HeaderStdint)
		return CUIntType(TypeWidth[typeName], h.mode.CppMode)
	case IsFloat(typeName):
		return CFloatType(typeName)
	case IsBool(typeName):
		if !h.mode.CppMode {
			h.state.RequireHeader(HeaderStdbool)
		}
		return "bool"
	default:
		// Struct, enum, bitmap, or register type: passed through as the
		// user-declared name (spec.md §4.1 "user types are emitted under
		// their declared name, unchanged").
		return typeName
	}
}

// DeclareType renders the full declaration-site spelling of a type
// context for a variable named varName: "const uint8_t x", "float
// samples[8]", or a bounded-string buffer declaration.
func (h *TypeGenerationHelper) DeclareType(t TypeContext, varName string) (string, error) {
	if t.StringCapacity != nil {
		return h.declareString(t, varName)
	}

	base := h.BaseTypeName(t.Name)
	prefix := ""
	if t.IsConst {
		prefix = "const "
	}

	if !t.IsArray {
		return fmt.Sprintf("%s%s %s", prefix, base, varName), nil
	}

	dims, err := h.renderDimensions(t.Dimensions)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%s %s%s", prefix, base, varName, dims), nil
}

// declareString renders a bounded-string buffer declaration: capacity+1
// bytes of storage, per spec.md §4.8 ("Storage dimension is capacity +
// 1").
func (h *TypeGenerationHelper) declareString(t TypeContext, varName string) (string, error) {
	if !t.StringCapacity.Resolved {
		return "", NewDiagnostic(ShapeError, t.sp, "string capacity for %q must be a resolvable constant, got %q", varName, t.StringCapacity.Text)
	}
	storage := t.StringCapacity.Value + 1
	prefix := ""
	if t.IsConst {
		prefix = "const "
	}
	return fmt.Sprintf("%schar %s[%d]", prefix, varName, storage), nil
}

func (h *TypeGenerationHelper) renderDimensions(dims []ArrayDimension) (string, error) {
	var b strings.Builder
	for _, d := range dims {
		if d.Resolved {
			b.WriteString("[" + strconv.Itoa(d.Value) + "]")
		} else {
			if d.Text == "" {
				return "", NewDiagnostic(ShapeError, d.sp, "array dimension could not be resolved")
			}
			if h.state.Config.RejectUnknownDimensions {
				return "", NewDiagnostic(ShapeError, d.sp, "array dimension %q could not be resolved", d.Text)
			}
			b.WriteString("[" + d.Text + "]")
		}
	}
	return b.String(), nil
}

// ReturnTypeName renders a function return type spelling: "void" for
// IsVoid, otherwise the base type name. Only t.Name is rendered; array
// and bounded-string return types are not checked here or in
// SignatureBuilder.
func (h *TypeGenerationHelper) ReturnTypeName(t TypeContext, isVoid bool) string {
	if isVoid {
		return "void"
	}
	return h.BaseTypeName(t.Name)
}

// ToTypeInfo resolves a TypeContext into a TypeInfo, copying its array
// dimensions as given and taking the overflow default from Config
// (SPEC_FULL.md §12). An unresolved string capacity becomes -1, the
// "no declared capacity" marker.
func (h *TypeGenerationHelper) ToTypeInfo(t TypeContext) TypeInfo {
	info := TypeInfo{
		BaseType:         t.Name,
		IsArray:          t.IsArray,
		ArrayDimensions:  t.Dimensions,
		IsConst:          t.IsConst,
		OverflowBehavior: h.state.Config.DefaultOverflowBehavior,
	}
	if w, ok := TypeWidth[t.Name]; ok {
		info.BitWidth = w
	}
	if t.StringCapacity != nil {
		info.IsString = true
		if t.StringCapacity.Resolved {
			info.StringCapacity = t.StringCapacity.Value
		} else {
			info.StringCapacity = -1
		}
	}
	if h.state.Symbols.IsEnum(t.Name) {
		info.IsEnum = true
		info.EnumTypeName = t.Name
	}
	if h.state.Symbols.IsBitmap(t.Name) {
		info.IsBitmap = true
		info.BitmapTypeName = t.Name
	}
	return info
}
