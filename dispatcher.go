package ccgen

import (
	"fmt"
	"strconv"
	"strings"
)

// Dispatcher is the outer depth-first walk over a TranslationUnit: it
// owns every collaborator this package defines, wires them together
// once at construction, and is the single entry point spec.md §5 names
// (GenerateUnit). Every exhaustive type-switch over Node/Expression/
// Statement in this file lives here rather than on the node types
// themselves, per spec.md §9's preference for pattern matching over a
// double-dispatch Visitor.
//
// Grounded on the teacher's api.go GrammarFromBytes/GrammarTransformations
// orchestration, and on gen_go.go's visit(node AstNode) switch — the
// single place that reads "what kind of node is this" and routes to the
// right emission method.
type Dispatcher struct {
	state *State
	mode  *ModeDispatcher

	typegen      *TypeGenerationHelper
	identifier   *IdentifierResolver
	literal      *LiteralEvaluator
	cast         *CastValidator
	narrowing    *NarrowingCastHelper
	boolhelper   *BooleanHelper
	bitrange     *BitRangeHelper
	floatbits    *FloatBitHelper
	arrayaccess  *ArrayAccessHelper
	arraydim     *ArrayDimensionParser
	arrayinit    *ArrayInitHelper
	stringdecl   *StringDeclHelper
	stringops    *StringOperationsHelper
	memberresolve *MemberSeparatorResolver
	membervalidate *MemberAccessValidator
	assignexpected *AssignmentExpectedTypeResolver
	assignvalidate *AssignmentValidator
	args         *ArgumentGenerator
	paraminput   *ParameterInputAdapter
	signature    *SignatureBuilder
	vardecl      *VariableDeclHelper
	funcctx      *FunctionContextManager
	modprop      *TransitiveModificationPropagator
	exprCollect  *StatementExpressionCollector
	stmtCollect  *ChildStatementCollector

	funcSignatures map[string][]ParameterInfo
	funcReturnType map[string]FunctionDeclaration
}

// NewDispatcher constructs a Dispatcher and every collaborator it needs,
// wired against a single shared State (spec.md §5 "one process-wide
// state object, threaded explicitly").
func NewDispatcher(cfg *Config, symbols *ScopeTables) *Dispatcher {
	state := NewState(cfg, symbols)
	mode := NewModeDispatcher(cfg.CppMode)

	cast := NewCastValidator()
	narrowing := NewNarrowingCastHelper(mode)
	typegen := NewTypeGenerationHelper(mode, state)
	literal := NewLiteralEvaluator()
	bitrange := NewBitRangeHelper(narrowing, mode)
	boolhelper := NewBooleanHelper()
	floatbits := NewFloatBitHelper(bitrange, state)
	arrayaccess := NewArrayAccessHelper(bitrange, narrowing)
	arraydim := NewArrayDimensionParser(literal)
	arrayinit := NewArrayInitHelper(state.Out())
	stringdecl := NewStringDeclHelper(typegen)
	stringops := NewStringOperationsHelper(state)
	memberresolve := NewMemberSeparatorResolver(mode)
	membervalidate := NewMemberAccessValidator(symbols)
	identifier := NewIdentifierResolver(state, mode)
	modprop := NewTransitiveModificationPropagator()
	assignexpected := NewAssignmentExpectedTypeResolver(state, symbols)
	assignvalidate := NewAssignmentValidator(assignexpected, cast, stringops, floatbits, state, modprop)
	args := NewArgumentGenerator(mode, state, typegen)
	paraminput := NewParameterInputAdapter(typegen, state)
	signature := NewSignatureBuilder(mode, typegen, paraminput)
	vardecl := NewVariableDeclHelper(typegen, stringdecl, arrayinit, cast, state)
	funcctx := NewFunctionContextManager(state, paraminput, modprop)

	return &Dispatcher{
		state: state, mode: mode,
		typegen: typegen, identifier: identifier, literal: literal,
		cast: cast, narrowing: narrowing, boolhelper: boolhelper,
		bitrange: bitrange, floatbits: floatbits, arrayaccess: arrayaccess,
		arraydim: arraydim, arrayinit: arrayinit,
		stringdecl: stringdecl, stringops: stringops,
		memberresolve: memberresolve, membervalidate: membervalidate,
		assignexpected: assignexpected, assignvalidate: assignvalidate,
		args: args, paraminput: paraminput, signature: signature,
		vardecl: vardecl, funcctx: funcctx, modprop: modprop,
		exprCollect: NewStatementExpressionCollector(),
		stmtCollect: NewChildStatementCollector(),

		funcSignatures: map[string][]ParameterInfo{},
		funcReturnType: map[string]FunctionDeclaration{},
	}
}

// GenerateUnit is the top-level entry point (spec.md §5): it registers
// every global and function signature, runs the transitive modification
// fixed point over the whole call graph, then emits globals followed by
// function bodies in declaration order.
func (d *Dispatcher) GenerateUnit(unit TranslationUnit) (string, error) {
	for _, fn := range unit.Functions {
		d.registerSignature(fn)
	}
	if err := d.analyzeModifications(unit); err != nil {
		return "", err
	}
	d.modprop.Propagate()

	for _, g := range unit.Globals {
		if err := d.emitGlobal(g); err != nil {
			return "", wrapWithLine(err, g.Span())
		}
	}
	for _, fn := range unit.Functions {
		if err := d.emitFunction(fn); err != nil {
			return "", wrapWithLine(err, fn.Span())
		}
	}
	return d.state.Out().String(), nil
}

// registerSignature adapts fn's parameters once, ahead of body
// emission, so call sites anywhere in the unit can look up the callee's
// ParameterInfo order regardless of declaration order.
func (d *Dispatcher) registerSignature(fn FunctionDeclaration) {
	var infos []ParameterInfo
	var names []string
	for _, raw := range fn.Params.Params {
		info, _ := d.paraminput.Adapt(raw)
		infos = append(infos, info)
		names = append(names, info.Name)
	}
	d.funcSignatures[fn.Name] = infos
	d.funcReturnType[fn.Name] = fn
	d.modprop.DeclareFunction(fn.Name, names)
}

// analyzeModifications walks every function body collecting call sites
// and direct writes to bare parameter names for modprop.go's fixed
// point, ahead of any emission.
func (d *Dispatcher) analyzeModifications(unit TranslationUnit) error {
	for _, fn := range unit.Functions {
		callerParams := map[string]ParameterInfo{}
		for _, p := range d.funcSignatures[fn.Name] {
			callerParams[p.Name] = p
		}
		d.walkBlockForCalls(fn.Name, fn.Body, callerParams)
	}
	return nil
}

func (d *Dispatcher) walkBlockForCalls(funcName string, b Block, callerParams map[string]ParameterInfo) {
	for _, stmt := range b.Statements {
		if a, ok := stmt.(*AssignmentStatement); ok {
			if id, isID := a.Target.(*IdentifierExpr); isID {
				if _, isParam := callerParams[id.Name]; isParam {
					d.modprop.RecordWrite(funcName, id.Name)
				}
			}
		}
		for _, expr := range d.exprCollect.Collect(stmt) {
			for _, call := range CallExpressions(expr) {
				if site, ok := BuildCallSite(call, callerParams); ok {
					d.modprop.RecordCall(funcName, site)
				}
			}
		}
		for _, child := range d.stmtCollect.Collect(stmt) {
			d.walkBlockForCalls(funcName, child, callerParams)
		}
	}
}

// ---- globals ----

func (d *Dispatcher) emitGlobal(g GlobalDeclaration) error {
	d.state.RegisterType(g.Name, d.typegen.ToTypeInfo(g.Type))
	if g.IsConst {
		if lit, ok := g.Initializer.(*IntLiteralExpr); ok {
			lv, err := d.literal.Eval(lit.Text)
			if err != nil {
				return NewDiagnostic(TypeError, lit.Span(), "%s", err)
			}
			d.state.SetConstValue(g.Name, lv.Value)
		}
	}

	base, err := d.typegen.DeclareType(g.Type, g.Name)
	if err != nil {
		return err
	}
	if g.Initializer == nil {
		d.state.Out().writeil(base + ";")
		return nil
	}
	text, _, err := d.genExpr(g.Initializer)
	if err != nil {
		return err
	}
	d.state.Out().writeil(fmt.Sprintf("%s = %s;", base, text))
	return nil
}

// ---- functions ----

func (d *Dispatcher) emitFunction(fn FunctionDeclaration) error {
	params := d.funcctx.Enter(fn)
	defer d.funcctx.Exit()

	sig := d.signature.Build(fn, params)
	d.state.Out().writeil(sig + " {")
	d.state.Indent()
	if err := d.emitBlock(fn.Body); err != nil {
		d.state.Unindent()
		return err
	}
	d.state.Unindent()
	d.state.Out().writeil("}")
	d.state.Out().writel("")
	return nil
}

func (d *Dispatcher) emitBlock(b Block) error {
	for _, stmt := range b.Statements {
		if err := d.emitStatement(stmt); err != nil {
			return wrapWithLine(err, stmt.Span())
		}
	}
	return nil
}

// ---- statements ----

func (d *Dispatcher) emitStatement(stmt Statement) error {
	switch s := stmt.(type) {
	case *VariableDeclaration:
		return d.emitVarDecl(s)
	case *AssignmentStatement:
		return d.emitAssignment(s)
	case *ExpressionStatement:
		text, _, err := d.genExpr(s.Expr)
		if err != nil {
			return err
		}
		d.state.FlushPending()
		d.state.Out().writeil(text + ";")
		return nil
	case *IfStatement:
		return d.emitIf(s)
	case *WhileStatement:
		return d.emitWhile(s)
	case *DoWhileStatement:
		return d.emitDoWhile(s)
	case *ForStatement:
		return d.emitFor(s)
	case *SwitchStatement:
		return d.emitSwitch(s)
	case *ReturnStatement:
		return d.emitReturn(s)
	default:
		return NewDiagnostic(ShapeError, stmt.Span(), "unsupported statement kind")
	}
}

func (d *Dispatcher) emitVarDecl(s *VariableDeclaration) error {
	if s.Type.StringCapacity != nil {
		if bin, ok := s.Initializer.(*BinaryExpr); ok && bin.Op == "+" {
			return d.emitStringConcatDecl(s, bin)
		}
		if sub, ok := s.Initializer.(*SubstringExpr); ok {
			return d.emitStringSubstringDecl(s, sub)
		}
	}

	var initText string
	var initElements []string
	if s.Initializer != nil {
		if lit, ok := s.Initializer.(*CompoundLiteralExpr); ok {
			for _, el := range lit.Elements {
				t, _, err := d.genExpr(el)
				if err != nil {
					return err
				}
				initElements = append(initElements, t)
			}
		} else {
			t, _, err := d.genExpr(s.Initializer)
			if err != nil {
				return err
			}
			initText = t
		}
	}
	text, err := d.vardecl.Declare(*s, initText, initElements)
	if err != nil {
		return err
	}
	d.state.FlushPending()
	d.state.Out().writeil(text)
	return nil
}

func (d *Dispatcher) emitAssignment(s *AssignmentStatement) error {
	if sub, ok := s.Value.(*SubstringExpr); ok {
		return d.emitSubstringAssignment(s, sub)
	}
	if bin, ok := s.Value.(*BinaryExpr); ok && bin.Op == "+" {
		if handled, err := d.tryConcatAssignment(s, bin); handled {
			return err
		}
	}

	targetText, _, err := d.genExpr(s.Target)
	if err != nil {
		return err
	}
	valueText, valueType, err := d.genExpr(s.Value)
	if err != nil {
		return err
	}

	_, isBitRange := s.Value.(*BitRangeExpr)
	if err := d.assignvalidate.Validate(*s, valueType, isBitRange, false); err != nil {
		return err
	}

	d.state.FlushPending()
	d.state.Out().writeil(fmt.Sprintf("%s = %s;", targetText, valueText))
	return nil
}

func (d *Dispatcher) tryConcatAssignment(s *AssignmentStatement, bin *BinaryExpr) (bool, error) {
	id, ok := s.Target.(*IdentifierExpr)
	if !ok {
		return false, nil
	}
	destType, ok := d.state.LookupType(id.Name)
	if !ok || !destType.IsString {
		return false, nil
	}
	leftText, leftType, err := d.genExpr(bin.Left)
	if err != nil {
		return true, err
	}
	rightText, rightType, err := d.genExpr(bin.Right)
	if err != nil {
		return true, err
	}
	if err := d.stringops.ValidateConcatCapacity(leftType.StringCapacity, rightType.StringCapacity, destType.StringCapacity, s.Span()); err != nil {
		return true, err
	}
	lines := d.stringops.EmitConcat(id.Name, leftText, rightText, destType.StorageDimension())
	d.state.FlushPending()
	for _, l := range lines {
		d.state.Out().writeil(l)
	}
	return true, nil
}

func (d *Dispatcher) emitSubstringAssignment(s *AssignmentStatement, sub *SubstringExpr) error {
	id, ok := s.Target.(*IdentifierExpr)
	if !ok {
		return NewDiagnostic(ShapeError, s.Span(), "substring assignment target must be a bare identifier")
	}
	destType, ok := d.state.LookupType(id.Name)
	if !ok || !destType.IsString {
		return NewDiagnostic(TypeError, s.Span(), "substring assignment target %q is not a bounded string", id.Name)
	}
	sourceText, _, err := d.genExpr(sub.Target)
	if err != nil {
		return err
	}
	startText, _, err := d.genExpr(sub.Start)
	if err != nil {
		return err
	}
	lengthText, _, err := d.genExpr(sub.Length)
	if err != nil {
		return err
	}
	if lit, ok := sub.Length.(*IntLiteralExpr); ok {
		lv, err := d.literal.Eval(lit.Text)
		if err == nil {
			dim := ResolvedDimension(lit.Span(), int(lv.Value))
			if err := d.stringops.ValidateSubstringCapacity(dim, destType.StringCapacity, s.Span()); err != nil {
				return err
			}
		}
	}
	lines := d.stringops.EmitSubstring(id.Name, sourceText, startText, lengthText, destType.StorageDimension())
	d.state.FlushPending()
	for _, l := range lines {
		d.state.Out().writeil(l)
	}
	return nil
}

// emitStringConcatDecl lowers a bounded-string declaration initialized
// by concatenation (`string<N> d <- a + b;`) the same way
// tryConcatAssignment lowers the assignment form: declare the bare
// buffer first, then validate combined capacity and emit the
// strncpy/strncat sequence in place (spec.md §4.8).
func (d *Dispatcher) emitStringConcatDecl(s *VariableDeclaration, bin *BinaryExpr) error {
	bare := *s
	bare.Initializer = nil
	text, err := d.vardecl.Declare(bare, "", nil)
	if err != nil {
		return err
	}
	d.state.FlushPending()
	d.state.Out().writeil(text)

	destType, _ := d.state.LookupType(s.Name)
	leftText, leftType, err := d.genExpr(bin.Left)
	if err != nil {
		return err
	}
	rightText, rightType, err := d.genExpr(bin.Right)
	if err != nil {
		return err
	}
	if err := d.stringops.ValidateConcatCapacity(leftType.StringCapacity, rightType.StringCapacity, destType.StringCapacity, s.Span()); err != nil {
		return err
	}
	lines := d.stringops.EmitConcat(s.Name, leftText, rightText, destType.StorageDimension())
	d.state.FlushPending()
	for _, l := range lines {
		d.state.Out().writeil(l)
	}
	return nil
}

// emitStringSubstringDecl lowers a bounded-string declaration
// initialized by a substring expression the same way
// emitSubstringAssignment lowers the assignment form.
func (d *Dispatcher) emitStringSubstringDecl(s *VariableDeclaration, sub *SubstringExpr) error {
	bare := *s
	bare.Initializer = nil
	text, err := d.vardecl.Declare(bare, "", nil)
	if err != nil {
		return err
	}
	d.state.FlushPending()
	d.state.Out().writeil(text)

	destType, _ := d.state.LookupType(s.Name)
	sourceText, _, err := d.genExpr(sub.Target)
	if err != nil {
		return err
	}
	startText, _, err := d.genExpr(sub.Start)
	if err != nil {
		return err
	}
	lengthText, _, err := d.genExpr(sub.Length)
	if err != nil {
		return err
	}
	if lit, ok := sub.Length.(*IntLiteralExpr); ok {
		lv, err := d.literal.Eval(lit.Text)
		if err == nil {
			dim := ResolvedDimension(lit.Span(), int(lv.Value))
			if err := d.stringops.ValidateSubstringCapacity(dim, destType.StringCapacity, s.Span()); err != nil {
				return err
			}
		}
	}
	lines := d.stringops.EmitSubstring(s.Name, sourceText, startText, lengthText, destType.StorageDimension())
	d.state.FlushPending()
	for _, l := range lines {
		d.state.Out().writeil(l)
	}
	return nil
}

func (d *Dispatcher) emitIf(s *IfStatement) error {
	cond, _, err := d.genExpr(s.Cond)
	if err != nil {
		return err
	}
	d.state.FlushPending()
	d.state.Out().writeil(fmt.Sprintf("if (%s) {", cond))
	d.state.Indent()
	if err := d.emitBlock(s.Then); err != nil {
		return err
	}
	d.state.Unindent()
	if s.Else != nil {
		d.state.Out().writeil("} else {")
		d.state.Indent()
		if err := d.emitBlock(*s.Else); err != nil {
			return err
		}
		d.state.Unindent()
	}
	d.state.Out().writeil("}")
	return nil
}

func (d *Dispatcher) emitWhile(s *WhileStatement) error {
	cond, _, err := d.genExpr(s.Cond)
	if err != nil {
		return err
	}
	d.state.FlushPending()
	d.state.Out().writeil(fmt.Sprintf("while (%s) {", cond))
	d.state.Indent()
	if err := d.emitBlock(s.Body); err != nil {
		return err
	}
	d.state.Unindent()
	d.state.Out().writeil("}")
	return nil
}

func (d *Dispatcher) emitDoWhile(s *DoWhileStatement) error {
	d.state.FlushPending()
	d.state.Out().writeil("do {")
	d.state.Indent()
	if err := d.emitBlock(s.Body); err != nil {
		return err
	}
	d.state.Unindent()
	cond, _, err := d.genExpr(s.Cond)
	if err != nil {
		return err
	}
	d.state.Out().writeil(fmt.Sprintf("} while (%s);", cond))
	return nil
}

func (d *Dispatcher) emitFor(s *ForStatement) error {
	initText := ""
	if s.Init != nil {
		if v, ok := s.Init.(*VariableDeclaration); ok {
			t, err := d.vardecl.Declare(*v, "", nil)
			if err != nil {
				return err
			}
			initText = strings.TrimSuffix(t, ";")
		}
	}
	condText := ""
	if s.Cond != nil {
		t, _, err := d.genExpr(s.Cond)
		if err != nil {
			return err
		}
		condText = t
	}
	postText := ""
	if a, ok := s.Post.(*AssignmentStatement); ok {
		tt, _, err := d.genExpr(a.Target)
		if err != nil {
			return err
		}
		vt, _, err := d.genExpr(a.Value)
		if err != nil {
			return err
		}
		postText = fmt.Sprintf("%s = %s", tt, vt)
	}
	d.state.FlushPending()
	d.state.Out().writeil(fmt.Sprintf("for (%s; %s; %s) {", initText, condText, postText))
	d.state.Indent()
	if err := d.emitBlock(s.Body); err != nil {
		return err
	}
	d.state.Unindent()
	d.state.Out().writeil("}")
	return nil
}

func (d *Dispatcher) emitSwitch(s *SwitchStatement) error {
	subject, _, err := d.genExpr(s.Subject)
	if err != nil {
		return err
	}
	d.state.FlushPending()
	d.state.Out().writeil(fmt.Sprintf("switch (%s) {", subject))
	for _, c := range s.Cases {
		if c.Value == nil {
			d.state.Out().writeil("default:")
		} else {
			vt, _, err := d.genExpr(c.Value)
			if err != nil {
				return err
			}
			d.state.Out().writeil(fmt.Sprintf("case %s:", vt))
		}
		d.state.Indent()
		if err := d.emitBlock(c.Body); err != nil {
			return err
		}
		d.state.Out().writeil("break;")
		d.state.Unindent()
	}
	d.state.Out().writeil("}")
	return nil
}

func (d *Dispatcher) emitReturn(s *ReturnStatement) error {
	if s.Value == nil {
		d.state.FlushPending()
		d.state.Out().writeil("return;")
		return nil
	}
	text, _, err := d.genExpr(s.Value)
	if err != nil {
		return err
	}
	d.state.FlushPending()
	d.state.Out().writeil(fmt.Sprintf("return %s;", text))
	return nil
}

// ---- expressions ----

// genExpr renders expr's C/C++ text and returns its inferred TypeInfo,
// the single exhaustive expression dispatch point (spec.md §9).
func (d *Dispatcher) genExpr(expr Expression) (string, TypeInfo, error) {
	switch e := expr.(type) {
	case *IdentifierExpr:
		resolved, err := d.identifier.Resolve(e.Name, e.Span())
		if err != nil {
			return "", TypeInfo{}, err
		}
		typ, _ := d.state.LookupType(e.Name)
		return resolved.Spelling, typ, nil

	case *IntLiteralExpr:
		lv, err := d.literal.Eval(e.Text)
		if err != nil {
			return "", TypeInfo{}, NewDiagnostic(TypeError, e.Span(), "%s", err)
		}
		typ := TypeInfo{BaseType: lv.Type, BitWidth: TypeWidth[lv.Type]}
		return e.Text, typ, nil

	case *BoolLiteralExpr:
		return d.boolhelper.FoldLiteral(e.Value), TypeInfo{BaseType: "bool", BitWidth: 8}, nil

	case *FloatLiteralExpr:
		typ := TypeInfo{BaseType: "f32", BitWidth: 32}
		if strings.HasSuffix(e.Text, "f64") {
			typ.BaseType = "f64"
			typ.BitWidth = 64
		}
		return e.Text, typ, nil

	case *StringLiteralExpr:
		return strconv.Quote(e.Value), TypeInfo{IsString: true, StringCapacity: -1}, nil

	case *UnaryExpr:
		operand, typ, err := d.genExpr(e.Operand)
		if err != nil {
			return "", TypeInfo{}, err
		}
		return fmt.Sprintf("(%s%s)", e.Op, operand), typ, nil

	case *BinaryExpr:
		return d.genBinary(e)

	case *IndexExpr:
		return d.genIndex(e)

	case *BitRangeExpr:
		return d.genBitRange(e)

	case *MemberAccessExpr:
		return d.genMember(e)

	case *CallExpr:
		return d.genCall(e)

	case *CompoundLiteralExpr:
		var parts []string
		for _, el := range e.Elements {
			t, _, err := d.genExpr(el)
			if err != nil {
				return "", TypeInfo{}, err
			}
			parts = append(parts, t)
		}
		return d.arrayinit.RenderList(parts), TypeInfo{BaseType: e.TypeName, IsArray: true}, nil

	case *FillAllExpr:
		t, typ, err := d.genExpr(e.Value)
		if err != nil {
			return "", TypeInfo{}, err
		}
		return t, typ, nil

	default:
		return "", TypeInfo{}, NewDiagnostic(ShapeError, expr.Span(), "unsupported expression kind")
	}
}

func (d *Dispatcher) genBinary(e *BinaryExpr) (string, TypeInfo, error) {
	left, leftType, err := d.genExpr(e.Left)
	if err != nil {
		return "", TypeInfo{}, err
	}
	right, rightType, err := d.genExpr(e.Right)
	if err != nil {
		return "", TypeInfo{}, err
	}
	resultType := leftType
	if leftType.BitWidth < rightType.BitWidth {
		resultType = rightType
	}
	return fmt.Sprintf("(%s %s %s)", left, e.Op, right), resultType, nil
}

func (d *Dispatcher) genIndex(e *IndexExpr) (string, TypeInfo, error) {
	target, targetType, err := d.genExpr(e.Target)
	if err != nil {
		return "", TypeInfo{}, err
	}
	index, _, err := d.genExpr(e.Index)
	if err != nil {
		return "", TypeInfo{}, err
	}
	elemType := targetType
	elemType.IsArray = false
	elemType.ArrayDimensions = nil
	return d.arrayaccess.Index(target, index), elemType, nil
}

func (d *Dispatcher) genBitRange(e *BitRangeExpr) (string, TypeInfo, error) {
	id, ok := e.Target.(*IdentifierExpr)
	if !ok {
		return "", TypeInfo{}, NewDiagnostic(ShapeError, e.Span(), "bit-range target must be a bare identifier")
	}
	targetType, ok := d.state.LookupType(id.Name)
	if !ok {
		return "", TypeInfo{}, NewDiagnostic(ScopeError, e.Span(), "undefined identifier %q", id.Name)
	}
	startDim := d.arraydim.Resolve(e.Start, d.state.ConstValues())
	widthDim := d.arraydim.Resolve(e.Width, d.state.ConstValues())
	if !startDim.Resolved || !widthDim.Resolved {
		return "", TypeInfo{}, NewDiagnostic(ShapeError, e.Span(), "bit-range start/width must be resolvable constants")
	}

	if IsFloat(targetType.BaseType) {
		spelling, err := d.floatbits.ReadBits(id.Name, targetType.BaseType, startDim.Value, widthDim.Value)
		if err != nil {
			return "", TypeInfo{}, err
		}
		return spelling, TypeInfo{BaseType: "u32", BitWidth: 32}, nil
	}

	elementType := narrowestUnsignedFor(widthDim.Value)
	spelling, err := d.arrayaccess.BitRangeRead(id.Name, startDim.Value, widthDim.Value, elementType)
	if err != nil {
		return "", TypeInfo{}, err
	}
	return spelling, TypeInfo{BaseType: elementType, BitWidth: TypeWidth[elementType]}, nil
}

func narrowestUnsignedFor(width int) string {
	switch {
	case width <= 8:
		return "u8"
	case width <= 16:
		return "u16"
	case width <= 32:
		return "u32"
	default:
		return "u64"
	}
}

func (d *Dispatcher) genMember(e *MemberAccessExpr) (string, TypeInfo, error) {
	id, ok := e.Target.(*IdentifierExpr)
	if !ok {
		target, _, err := d.genExpr(e.Target)
		if err != nil {
			return "", TypeInfo{}, err
		}
		return d.memberresolve.Render(target, e.Member, TargetStructInstance), TypeInfo{}, nil
	}

	if d.state.Symbols.IsScope(id.Name) {
		if err := d.membervalidate.ValidateScopeMember(id.Name, e.Member, d.state.CurrentScope(), e.Span()); err != nil {
			return "", TypeInfo{}, err
		}
		return d.memberresolve.Render(id.Name, e.Member, TargetScope), TypeInfo{}, nil
	}
	if d.state.Symbols.IsEnum(id.Name) {
		enum := d.state.Symbols.Enums[id.Name]
		if v, ok := enum.Values[e.Member]; ok {
			return fmt.Sprintf("%d", v), TypeInfo{BaseType: "u32", IsEnum: true, EnumTypeName: id.Name}, nil
		}
		return "", TypeInfo{}, NewDiagnostic(ScopeError, e.Span(), "enum %q has no member %q", id.Name, e.Member)
	}
	if d.state.Symbols.IsRegister(id.Name) {
		if err := d.membervalidate.ValidateRegisterField(id.Name, e.Member, false, e.Span()); err != nil {
			return "", TypeInfo{}, err
		}
		return d.memberresolve.Render(id.Name, e.Member, TargetScope), TypeInfo{}, nil
	}

	typ, ok := d.state.LookupType(id.Name)
	if !ok {
		return "", TypeInfo{}, NewDiagnostic(ScopeError, e.Span(), "undefined identifier %q", id.Name)
	}
	if err := d.membervalidate.ValidateStructMember(typ.BaseType, e.Member, e.Span()); err != nil {
		return "", TypeInfo{}, err
	}
	targetText, _, err := d.genExpr(e.Target)
	if err != nil {
		return "", TypeInfo{}, err
	}
	p, isParam := d.state.Parameter(id.Name)
	kind := TargetStructInstance
	if isParam && !p.IsPassByValue {
		kind = TargetStructPointer
	}
	memberType := d.state.Symbols.Structs[typ.BaseType].Members[e.Member]
	return d.memberresolve.Render(targetText, e.Member, kind), memberType, nil
}

func (d *Dispatcher) genCall(e *CallExpr) (string, TypeInfo, error) {
	id, ok := e.Callee.(*IdentifierExpr)
	if !ok {
		return "", TypeInfo{}, NewDiagnostic(ShapeError, e.Span(), "call target must be a bare function name")
	}
	params := d.funcSignatures[id.Name]
	var rendered []string
	for i, argExpr := range e.Args {
		argText, _, err := d.genExpr(argExpr)
		if err != nil {
			return "", TypeInfo{}, err
		}
		if i < len(params) {
			wrapped, err := d.args.Render(argExpr, argText, params[i])
			if err != nil {
				return "", TypeInfo{}, err
			}
			rendered = append(rendered, wrapped)
		} else {
			rendered = append(rendered, argText)
		}
	}
	text := fmt.Sprintf("%s(%s)", id.Name, strings.Join(rendered, ", "))
	fn, ok := d.funcReturnType[id.Name]
	if !ok || fn.IsVoid {
		return text, TypeInfo{}, nil
	}
	return text, d.typegen.ToTypeInfo(fn.ReturnType), nil
}
