package ccgen

import "strconv"

// State is the single process-wide code-generation state object spec.md
// §3 describes. It is initialized once per translation unit, mutated
// only via its own methods, and torn down at end of unit.
//
// Grounded on the teacher's `compiler` struct in grammar_compiler.go —
// one struct holding every piece of cross-cutting mutable state,
// populated incrementally and read by every Visit* method. Per spec.md
// §9 Design Notes ("thread the state through helpers as an explicit
// parameter bundle, not ambient global state"), every helper in this
// module receives *State explicitly rather than closing over a package
// global, which is the one deliberate departure from the teacher's own
// receiver-bound emitter structs.
type State struct {
	Config *Config

	// typeRegistry: globals plus the currently active parameter set;
	// overlays removed on function exit (spec.md §3 Lifecycle).
	typeRegistry map[string]TypeInfo

	constValues map[string]int64

	localVariables map[string]struct{}
	localArrays    map[string]struct{}

	// currentParameters is an ordered map: insertion order matters for
	// signature rendering (spec.md §4.6).
	paramOrder      []string
	currentParameters map[string]ParameterInfo

	currentFunctionName       string
	currentFunctionReturnType string
	currentScope              string
	inFunctionBody            bool

	indentLevel int

	floatBitShadows   map[string]struct{}
	floatShadowCurrent map[string]struct{}

	pendingTempDeclarations    []string
	pendingCppClassAssignments []string

	tempVarCounter int

	lastArrayInitCount  int
	lastArrayFillValue  string

	mainArgsName string

	includesRequired *HeaderSet

	// callbackFieldTypes maps "Struct.field" -> typedef name.
	callbackFieldTypes map[string]string

	Symbols *ScopeTables

	out *outputWriter
}

// NewState initializes a fresh State for one translation unit, per
// spec.md §5: "The spec requires it to be reset to defaults at the start
// of every translation unit; mixing units on the same state without
// reset is undefined." Callers should always construct a new State
// rather than reuse one across units.
func NewState(cfg *Config, symbols *ScopeTables) *State {
	if cfg == nil {
		cfg = NewConfig()
	}
	if symbols == nil {
		symbols = NewScopeTables()
	}
	return &State{
		Config:             cfg,
		typeRegistry:       map[string]TypeInfo{},
		constValues:        map[string]int64{},
		localVariables:     map[string]struct{}{},
		localArrays:        map[string]struct{}{},
		currentParameters:  map[string]ParameterInfo{},
		floatBitShadows:    map[string]struct{}{},
		floatShadowCurrent: map[string]struct{}{},
		includesRequired:   newHeaderSet(),
		callbackFieldTypes: map[string]string{},
		Symbols:            symbols,
		out:                newOutputWriter(cfg.indentString()),
	}
}

func (s *State) CppMode() bool { return s.Config.CppMode }

// ---- type registry ----

func (s *State) RegisterType(name string, info TypeInfo) {
	s.typeRegistry[name] = info
}

func (s *State) LookupType(name string) (TypeInfo, bool) {
	t, ok := s.typeRegistry[name]
	return t, ok
}

func (s *State) UnregisterType(name string) {
	delete(s.typeRegistry, name)
}

// ---- const values ----

func (s *State) SetConstValue(name string, v int64) { s.constValues[name] = v }
func (s *State) ConstValue(name string) (int64, bool) {
	v, ok := s.constValues[name]
	return v, ok
}
func (s *State) ConstValues() map[string]int64 { return s.constValues }

// ---- locals ----

func (s *State) DeclareLocal(name string, isArray bool) {
	s.localVariables[name] = struct{}{}
	if isArray {
		s.localArrays[name] = struct{}{}
	}
}

func (s *State) IsLocal(name string) bool {
	_, ok := s.localVariables[name]
	return ok
}

func (s *State) IsLocalArray(name string) bool {
	_, ok := s.localArrays[name]
	return ok
}

// ---- parameters (invariant 3: paired insert/remove with typeRegistry) ----

// AddParameter inserts name into currentParameters and a mirrored,
// isParameter=true entry into typeRegistry, satisfying spec.md §3
// invariant 3 ("Every entry added to currentParameters produces a paired
// entry in typeRegistry... removal is paired").
func (s *State) AddParameter(info ParameterInfo, typ TypeInfo) {
	if _, exists := s.currentParameters[info.Name]; !exists {
		s.paramOrder = append(s.paramOrder, info.Name)
	}
	s.currentParameters[info.Name] = info
	typ.IsParameter = true
	s.typeRegistry[info.Name] = typ
}

func (s *State) Parameter(name string) (ParameterInfo, bool) {
	p, ok := s.currentParameters[name]
	return p, ok
}

func (s *State) IsParameter(name string) bool {
	_, ok := s.currentParameters[name]
	return ok
}

func (s *State) OrderedParameters() []ParameterInfo {
	out := make([]ParameterInfo, 0, len(s.paramOrder))
	for _, n := range s.paramOrder {
		out = append(out, s.currentParameters[n])
	}
	return out
}

// clearParameters removes every current parameter from both tables in
// lockstep (the paired removal half of invariant 3).
func (s *State) clearParameters() {
	for _, n := range s.paramOrder {
		delete(s.currentParameters, n)
		delete(s.typeRegistry, n)
	}
	s.paramOrder = nil
}

// ---- float shadows (invariant 2) ----

func (s *State) DeclareShadow(name string) {
	s.floatBitShadows[name] = struct{}{}
	s.floatShadowCurrent[name] = struct{}{}
}

func (s *State) IsShadowDeclared(name string) bool {
	_, ok := s.floatBitShadows[name]
	return ok
}

func (s *State) IsShadowCurrent(name string) bool {
	_, ok := s.floatShadowCurrent[name]
	return ok
}

func (s *State) MarkShadowCurrent(name string)   { s.floatShadowCurrent[name] = struct{}{} }
func (s *State) InvalidateShadow(name string)    { delete(s.floatShadowCurrent, name) }

// clearShadows empties both shadow sets, as required on function-body
// exit (spec.md §3 invariant 2 / Lifecycle).
func (s *State) clearShadows() {
	s.floatBitShadows = map[string]struct{}{}
	s.floatShadowCurrent = map[string]struct{}{}
}

// ---- pending temporaries ----

func (s *State) QueueTempDeclaration(line string) {
	s.pendingTempDeclarations = append(s.pendingTempDeclarations, line)
}

func (s *State) QueueCppClassAssignment(line string) {
	s.pendingCppClassAssignments = append(s.pendingCppClassAssignments, line)
}

// FlushPending writes out and clears both pending queues, which must
// happen before the enclosing statement is emitted (spec.md §3
// invariant 5).
func (s *State) FlushPending() {
	for _, line := range s.pendingTempDeclarations {
		s.out.writeil(line)
	}
	s.pendingTempDeclarations = nil
	for _, line := range s.pendingCppClassAssignments {
		s.out.writeil(line)
	}
	s.pendingCppClassAssignments = nil
}

// ---- temp var counter ----

func (s *State) NextTempVar() string {
	s.tempVarCounter++
	return fmtTemp(s.tempVarCounter)
}

func fmtTemp(n int) string {
	return "_cnx_tmp_" + strconv.Itoa(n)
}

// ---- indent ----

func (s *State) Indent()   { s.indentLevel++; s.out.indent() }
func (s *State) Unindent() { s.indentLevel--; s.out.unindent() }
func (s *State) IndentLevel() int { return s.indentLevel }

// ---- output ----

func (s *State) Out() *outputWriter { return s.out }

// ---- function lifecycle (invariant 1, 2, 3, 4) ----

// EnterFunction sets up per-function state. Callers must call
// ExitFunction when the body's block ends.
func (s *State) EnterFunction(name, returnType, scope string) {
	s.currentFunctionName = name
	s.currentFunctionReturnType = returnType
	s.currentScope = scope
	s.inFunctionBody = true
	s.tempVarCounter = 0
}

// ExitFunction tears down per-function state: parameters, locals, float
// shadows, and pending queues are all cleared, matching spec.md §3's
// Lifecycle section.
func (s *State) ExitFunction() {
	s.clearParameters()
	s.localVariables = map[string]struct{}{}
	s.localArrays = map[string]struct{}{}
	s.clearShadows()
	s.pendingTempDeclarations = nil
	s.pendingCppClassAssignments = nil
	s.currentFunctionName = ""
	s.currentFunctionReturnType = ""
	s.currentScope = ""
	s.inFunctionBody = false
}

func (s *State) CurrentFunctionName() string       { return s.currentFunctionName }
func (s *State) CurrentFunctionReturnType() string  { return s.currentFunctionReturnType }
func (s *State) CurrentScope() string               { return s.currentScope }
func (s *State) InFunctionBody() bool               { return s.inFunctionBody }

func (s *State) SetMainArgsName(name string) { s.mainArgsName = name }
func (s *State) MainArgsName() string        { return s.mainArgsName }

func (s *State) RequireHeader(tag HeaderTag) { s.includesRequired.Add(tag) }
func (s *State) RequiredHeaders() *HeaderSet { return s.includesRequired }

func (s *State) SetCallbackFieldType(structField, typedefName string) {
	s.callbackFieldTypes[structField] = typedefName
}

func (s *State) CallbackFieldType(structField string) (string, bool) {
	t, ok := s.callbackFieldTypes[structField]
	return t, ok
}

func (s *State) SetLastArrayInit(count int, fillValue string) {
	s.lastArrayInitCount = count
	s.lastArrayFillValue = fillValue
}

func (s *State) LastArrayInit() (int, string) {
	return s.lastArrayInitCount, s.lastArrayFillValue
}
