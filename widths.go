package ccgen

import "strings"

// TypeWidth is the constant map from source primitive names to bit
// widths (spec.md §2). Grounded on the teacher's flat instruction-size
// constant tables in vm_instructions.go.
var TypeWidth = map[string]int{
	"u8": 8, "u16": 16, "u32": 32, "u64": 64,
	"i8": 8, "i16": 16, "i32": 32, "i64": 64,
	"f32": 32, "f64": 64,
	"bool": 8,
}

// IsPrimitive reports whether name is a key of TypeWidth.
func IsPrimitive(name string) bool {
	_, ok := TypeWidth[name]
	return ok
}

// IsSignedInt reports whether name is a signed integer primitive
// (spec.md §4.3: "Signed iff name starts with `i`").
func IsSignedInt(name string) bool {
	return strings.HasPrefix(name, "i") && IsPrimitive(name) && name != "i" && name != "int"
}

// IsUnsignedInt reports whether name is an unsigned integer primitive
// (spec.md §4.3: "unsigned iff starts with `u`").
func IsUnsignedInt(name string) bool {
	return strings.HasPrefix(name, "u") && IsPrimitive(name)
}

// IsFloat reports whether name is a floating-point primitive
// (spec.md §4.3: "float iff f32|f64").
func IsFloat(name string) bool {
	return name == "f32" || name == "f64"
}

// IsInteger reports whether name is a signed or unsigned integer
// primitive; note floats share the width table but are never integers
// (spec.md §9 Open Questions).
func IsInteger(name string) bool {
	return IsSignedInt(name) || IsUnsignedInt(name)
}

// IsBool reports whether name is the boolean primitive.
func IsBool(name string) bool {
	return name == "bool"
}

// CUIntType returns the exact-width unsigned C integer type name for a
// given bit width, used for masks and float shadow variables.
func CUIntType(width int, cppMode bool) string {
	switch width {
	case 8:
		return "uint8_t"
	case 16:
		return "uint16_t"
	case 32:
		return "uint32_t"
	case 64:
		return "uint64_t"
	default:
		return "uint32_t"
	}
}

// CIntType returns the exact-width signed C integer type name.
func CIntType(width int) string {
	switch width {
	case 8:
		return "int8_t"
	case 16:
		return "int16_t"
	case 32:
		return "int32_t"
	case 64:
		return "int64_t"
	default:
		return "int32_t"
	}
}

// CFloatType returns the C spelling for a float primitive.
func CFloatType(name string) string {
	if name == "f64" {
		return "double"
	}
	return "float"
}
