package ccgen

// AssignmentExpectedTypeResolver determines the type an assignment
// target expects its right-hand side to satisfy, independent of what
// the right-hand side actually is — a separate step from validation so
// the two concerns can be tested and reused on their own (spec.md §4.7
// step 1, and §9's capability-interface guidance).
//
// Grounded on the teacher's query_pipeline.go type-inference pass
// (deleted from this tree as an LSP concern, but its "infer the
// expected type at a site, then separately check the value against it"
// split is exactly the shape spec.md §4.7 asks for).
type AssignmentExpectedTypeResolver struct {
	state   *State
	symbols *ScopeTables
}

func NewAssignmentExpectedTypeResolver(state *State, symbols *ScopeTables) *AssignmentExpectedTypeResolver {
	return &AssignmentExpectedTypeResolver{state: state, symbols: symbols}
}

// Resolve returns the TypeInfo the assignment target expects, per
// target expression kind.
func (r *AssignmentExpectedTypeResolver) Resolve(target Expression) (TypeInfo, error) {
	switch t := target.(type) {
	case *IdentifierExpr:
		info, ok := r.state.LookupType(t.Name)
		if !ok {
			return TypeInfo{}, NewDiagnostic(ScopeError, t.Span(), "undefined assignment target %q", t.Name)
		}
		return info, nil

	case *IndexExpr:
		return r.resolveElementType(t.Target, t.Span())

	case *BitRangeExpr:
		return r.resolveElementType(t.Target, t.Span())

	case *MemberAccessExpr:
		return r.resolveMemberType(t)

	default:
		return TypeInfo{}, NewDiagnostic(ShapeError, target.Span(), "expression is not a valid assignment target")
	}
}

func (r *AssignmentExpectedTypeResolver) resolveElementType(target Expression, sp Span) (TypeInfo, error) {
	id, ok := target.(*IdentifierExpr)
	if !ok {
		return TypeInfo{}, NewDiagnostic(ShapeError, sp, "array/bit-range target must be a bare identifier")
	}
	info, ok := r.state.LookupType(id.Name)
	if !ok {
		return TypeInfo{}, NewDiagnostic(ScopeError, sp, "undefined identifier %q", id.Name)
	}
	elem := info
	elem.IsArray = false
	elem.ArrayDimensions = nil
	return elem, nil
}

func (r *AssignmentExpectedTypeResolver) resolveMemberType(t *MemberAccessExpr) (TypeInfo, error) {
	id, ok := t.Target.(*IdentifierExpr)
	if !ok {
		return TypeInfo{}, NewDiagnostic(ShapeError, t.Span(), "member-access target must resolve to a bare name")
	}
	if info, ok := r.state.LookupType(id.Name); ok && r.symbols.IsStruct(info.BaseType) {
		s := r.symbols.Structs[info.BaseType]
		if m, ok := s.Members[t.Member]; ok {
			return m, nil
		}
	}
	return TypeInfo{}, NewDiagnostic(ScopeError, t.Span(), "cannot resolve member %q", t.Member)
}

// ModificationRecorder is implemented by modprop.go's propagator and
// notified of every write to a parameter, feeding the transitive
// modification fixed-point computation (spec.md §4.9).
type ModificationRecorder interface {
	RecordWrite(funcName, paramName string)
}

// AssignmentValidator runs the ordered validation pipeline spec.md §4.7
// fixes for a `<-` assignment statement:
//  1. resolve the target's expected type.
//  2. reject assignment to a const-qualified target.
//  3. if the source type differs from the expected type, validate the
//     implicit cast (narrowing/sign-change rules); a source that is
//     itself a bit-range/substring read is exempt, since the narrowing
//     cast was already applied at the read site.
//  4. if the target is a string, validate that the source's declared
//     capacity fits the target's (an unbounded source is accepted).
//  5. if the target is a parameter, record the write for the transitive
//     modification propagator.
//  6. if the target is a float variable and the source is not itself a
//     bit-range write through the shadow, invalidate that float's shadow
//     coherence state.
type AssignmentValidator struct {
	expected  *AssignmentExpectedTypeResolver
	cast      *CastValidator
	strings   *StringOperationsHelper
	floatbits *FloatBitHelper
	state     *State
	recorder  ModificationRecorder
}

func NewAssignmentValidator(
	expected *AssignmentExpectedTypeResolver,
	cast *CastValidator,
	strs *StringOperationsHelper,
	floatbits *FloatBitHelper,
	state *State,
	recorder ModificationRecorder,
) *AssignmentValidator {
	return &AssignmentValidator{expected: expected, cast: cast, strings: strs, floatbits: floatbits, state: state, recorder: recorder}
}

// Validate runs steps 1-6. sourceType is the already-inferred type of
// the right-hand-side expression; sourceIsBitRangeResult and
// sourceIsShadowWrite let the caller tell the validator which branches
// of steps 3 and 6 to skip, since those facts come from how the RHS was
// generated, not from its type alone.
func (v *AssignmentValidator) Validate(stmt AssignmentStatement, sourceType TypeInfo, sourceIsBitRangeResult, sourceIsShadowWrite bool) error {
	expected, err := v.expected.Resolve(stmt.Target)
	if err != nil {
		return err
	}

	if expected.IsConst {
		return NewDiagnostic(AccessError, stmt.Span(), "cannot assign to const target")
	}

	if !sourceIsBitRangeResult && expected.BaseType != sourceType.BaseType {
		if err := v.cast.ValidateAssignabilityWithoutBitRange(sourceType.BaseType, expected.BaseType, stmt.Span()); err != nil {
			return err
		}
	}

	if expected.IsString {
		if err := v.strings.ValidateConcatCapacity(sourceType.StringCapacity, 0, expected.StringCapacity, stmt.Span()); err != nil {
			return err
		}
	}

	if id, ok := stmt.Target.(*IdentifierExpr); ok {
		if v.recorder != nil && v.state.IsParameter(id.Name) {
			v.recorder.RecordWrite(v.state.CurrentFunctionName(), id.Name)
		}
		if IsFloat(expected.BaseType) && !sourceIsShadowWrite {
			v.floatbits.InvalidateOnAssignment(id.Name)
		}
	}

	return nil
}
