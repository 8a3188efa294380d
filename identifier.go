package ccgen

import "fmt"

// IdentifierResolver implements the bare-identifier resolution order
// spec.md §4.2 names: a plain name in source is resolved against a
// fixed sequence of tables, and the first table that claims it decides
// both its emitted spelling and its role.
//
// Grounded on the teacher's query_pipeline.go symbol-lookup chaining
// (deleted from this tree as an LSP-only concern, but its "walk a fixed
// list of tables, first match wins" shape is exactly what spec.md §4.2
// calls for), adapted here to the four-table order the spec fixes:
// local variable, parameter, constant, global variable/enum member.
type IdentifierResolver struct {
	state *State
	mode  *ModeDispatcher
}

func NewIdentifierResolver(state *State, mode *ModeDispatcher) *IdentifierResolver {
	return &IdentifierResolver{state: state, mode: mode}
}

// ResolvedIdentifier is the outcome of resolving a bare name: its
// emitted spelling and the role that drove the spelling choice.
type ResolvedIdentifier struct {
	Spelling string
	Role     IdentifierRole
}

type IdentifierRole int

const (
	RoleLocalVariable IdentifierRole = iota
	RoleParameter
	RoleConstant
	RoleGlobal
	RoleEnumMember
	RoleUnknown
)

// Resolve applies the four-step order spec.md §4.2 fixes:
//  1. a local variable or local array in the current function — emitted
//     as-is.
//  2. a parameter — emitted as-is if by-value, dereferenced if the
//     parameter is pass-by-pointer (spec.md §4.6).
//  3. a named constant — emitted as its literal value's text, not the
//     name (constants never appear as identifiers in output).
//  4. a global variable or enum member name — emitted as-is; enum
//     members additionally carry RoleEnumMember so the dispatcher can
//     qualify them when spec.md §4.10 requires it. Bitmap field names
//     are not looked up.
//
// An identifier claimed by none of the four tables is a ScopeError: the
// resolver never falls through to "assume it's a global".
func (r *IdentifierResolver) Resolve(name string, sp Span) (ResolvedIdentifier, error) {
	if r.state.IsLocal(name) {
		return ResolvedIdentifier{Spelling: name, Role: RoleLocalVariable}, nil
	}

	if p, ok := r.state.Parameter(name); ok {
		return r.resolveParameter(p), nil
	}

	if v, ok := r.state.ConstValue(name); ok {
		return ResolvedIdentifier{Spelling: fmt.Sprintf("%d", v), Role: RoleConstant}, nil
	}

	if _, ok := r.state.LookupType(name); ok {
		return ResolvedIdentifier{Spelling: name, Role: RoleGlobal}, nil
	}

	for _, enum := range r.state.Symbols.Enums {
		if _, ok := enum.Values[name]; ok {
			return ResolvedIdentifier{Spelling: name, Role: RoleEnumMember}, nil
		}
	}

	return ResolvedIdentifier{}, NewDiagnostic(ScopeError, sp, "undefined identifier %q", name)
}

// resolveParameter applies spec.md §4.6's by-value/by-pointer/
// by-reference read convention: pass-by-value parameters are read
// as-is; in C mode only plain scalar by-pointer parameters are
// dereferenced at a bare use, while array, string, callback and struct
// parameters keep their bare name; C++-mode reference parameters need
// no dereference syntax at all.
func (r *IdentifierResolver) resolveParameter(p ParameterInfo) ResolvedIdentifier {
	if p.IsPassByValue {
		return ResolvedIdentifier{Spelling: p.Name, Role: RoleParameter}
	}
	// Arrays, strings, callbacks, and structs are already spelled as
	// their natural pointer/reference form at a bare-name use site — an
	// array or string parameter decays to its pointer in C and binds
	// directly in C++; a struct pointer's bare name IS the pointer
	// memberaccess.go's "->"  rendering expects, not something to
	// dereference first. Only a plain by-pointer scalar out-parameter
	// needs the explicit dereference to read its pointed-to value.
	if p.IsArray || p.IsString || p.IsCallback || p.IsStruct || r.mode.CppMode {
		return ResolvedIdentifier{Spelling: p.Name, Role: RoleParameter}
	}
	// Plain primitive, pass-by-reference in C (spec.md §4.6): the
	// parameter is a pointer at the declaration site, so a bare use must
	// dereference it to read the pointed-to value.
	return ResolvedIdentifier{Spelling: r.mode.Deref(p.Name), Role: RoleParameter}
}
