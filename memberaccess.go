package ccgen

import "fmt"

// TargetKind classifies what a MemberAccessExpr's target resolves to,
// which in turn decides the separator MemberSeparatorResolver chooses.
type TargetKind int

const (
	TargetStructInstance TargetKind = iota
	TargetStructPointer
	TargetScope
	TargetEnum
	TargetBitmap
)

// MemberSeparatorResolver picks the `.`/`->`/`_`/`::` separator for a
// member-access expression, per spec.md §4.10: struct instance access
// follows the existing pointer-vs-value convention; scope, enum, and
// bitmap member access — which have no C++ class backing a `.`/`->`
// choice — flatten to `Scope_Member` in C and qualify to `Scope::Member`
// in C++.
//
// Grounded on other_examples/fidlgen_cpp's name_transforms.go
// memberContext.transform, which likewise branches member spelling on
// both the member's declaration kind and the active target dialect
// rather than using one fixed separator everywhere.
type MemberSeparatorResolver struct {
	mode *ModeDispatcher
}

func NewMemberSeparatorResolver(mode *ModeDispatcher) *MemberSeparatorResolver {
	return &MemberSeparatorResolver{mode: mode}
}

// Render spells `target.Member` per the target's kind.
func (r *MemberSeparatorResolver) Render(target string, member string, kind TargetKind) string {
	switch kind {
	case TargetStructInstance:
		return fmt.Sprintf("%s%s%s", target, r.mode.MemberOp(false), member)
	case TargetStructPointer:
		return fmt.Sprintf("%s%s%s", target, r.mode.MemberOp(true), member)
	case TargetScope, TargetEnum, TargetBitmap:
		if r.mode.CppMode {
			return fmt.Sprintf("%s::%s", target, member)
		}
		return fmt.Sprintf("%s_%s", target, member)
	default:
		return fmt.Sprintf("%s.%s", target, member)
	}
}

// MemberAccessValidator enforces visibility and self-scope-reference
// rules on a member-access expression before MemberSeparatorResolver is
// asked to spell it (spec.md §4.10).
//
// Grounded on fidlgen_cpp's declarationTransform/memberTransform split:
// the transform that picks spelling and the check that decides whether
// the access is even legal are kept as two distinct collaborators
// rather than one combined method, per spec.md §9's capability-interface
// guidance.
type MemberAccessValidator struct {
	symbols *ScopeTables
}

func NewMemberAccessValidator(symbols *ScopeTables) *MemberAccessValidator {
	return &MemberAccessValidator{symbols: symbols}
}

// ValidateScopeMember rejects:
//   - a reference to a private scope member from outside that scope
//     (AccessError).
//   - a scope referencing its own name as a member target, which is
//     never well-formed (spec.md §4.10 "self-scope-reference rejection").
func (v *MemberAccessValidator) ValidateScopeMember(scopeName, memberName, currentScope string, sp Span) error {
	if scopeName == currentScope {
		return NewDiagnostic(ScopeError, sp, "Cannot reference own scope '%s' by name. Use 'this.%s'", scopeName, memberName)
	}
	scope, ok := v.symbols.Scopes[scopeName]
	if !ok {
		return NewDiagnostic(ScopeError, sp, "undefined scope %q", scopeName)
	}
	visibility, ok := scope.Members[memberName]
	if !ok {
		return NewDiagnostic(ScopeError, sp, "scope %q has no member %q", scopeName, memberName)
	}
	if visibility == VisibilityPrivate && currentScope != scopeName {
		return NewDiagnostic(AccessError, sp, "member %q of scope %q is private", memberName, scopeName)
	}
	return nil
}

// ValidateStructMember rejects access to an unknown struct field.
func (v *MemberAccessValidator) ValidateStructMember(structName, field string, sp Span) error {
	s, ok := v.symbols.Structs[structName]
	if !ok {
		return NewDiagnostic(ScopeError, sp, "undefined struct %q", structName)
	}
	if _, ok := s.Members[field]; !ok {
		return NewDiagnostic(ScopeError, sp, "struct %q has no member %q", structName, field)
	}
	return nil
}

// ValidateRegisterField rejects access to an undeclared register field
// or a write to a read-only one / read from a write-only one.
func (v *MemberAccessValidator) ValidateRegisterField(registerName, field string, wantWrite bool, sp Span) error {
	reg, ok := v.symbols.Registers[registerName]
	if !ok {
		return NewDiagnostic(ScopeError, sp, "undefined register %q", registerName)
	}
	f, ok := reg.Fields[field]
	if !ok {
		return NewDiagnostic(ScopeError, sp, "register %q has no field %q", registerName, field)
	}
	if wantWrite && !f.Access.Writable() {
		return NewDiagnostic(AccessError, sp, "register field %s.%s is read-only", registerName, field)
	}
	if !wantWrite && !f.Access.Readable() {
		return NewDiagnostic(AccessError, sp, "register field %s.%s is write-only", registerName, field)
	}
	return nil
}
