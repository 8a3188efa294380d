package ccgen

// CallSite records one call a function makes to another, aligning the
// caller's argument expressions with the callee's parameter positions,
// so the propagator can ask "if the callee writes parameter i, does
// that writing reach back to one of the caller's own parameters?"
type CallSite struct {
	Callee string
	// ArgParamNames[i] is the caller's own parameter name passed as
	// argument i, or "" if argument i is not a bare reference to one of
	// the caller's parameters (a literal, a local, an expression — none
	// of those can carry a write back to the caller).
	ArgParamNames []string
}

// TransitiveModificationPropagator computes, to a fixed point over the
// call graph, which of each function's non-const parameters are ever
// written — directly, or transitively through a callee that writes the
// corresponding argument (spec.md §4.9). The result feeds
// ApplyAutoConst in signature.go: a parameter never found to be written
// by this computation gets the auto-const signature treatment.
//
// Grounded on the teacher's grammar_import.go findDefinitionDeps, a
// seen-set-guarded DFS over a name-keyed dependency graph; generalized
// here from "which grammar rules does this rule depend on" to "which
// parameters does this function's write-set transitively reach",
// iterated to a fixed point instead of a single DFS pass since a
// parameter's written-ness can still change after its first discovery
// (a later-processed callee might turn out to write back into it).
type TransitiveModificationPropagator struct {
	// paramOrder[funcName] lists that function's parameter names in
	// declaration order, matching CallSite.ArgParamNames positions.
	paramOrder map[string][]string

	written map[string]map[string]bool

	calls map[string][]CallSite
}

func NewTransitiveModificationPropagator() *TransitiveModificationPropagator {
	return &TransitiveModificationPropagator{
		paramOrder: map[string][]string{},
		written:    map[string]map[string]bool{},
		calls:      map[string][]CallSite{},
	}
}

// DeclareFunction registers a function's parameter order, required
// before Propagate can resolve argument positions against it.
func (p *TransitiveModificationPropagator) DeclareFunction(funcName string, paramNames []string) {
	p.paramOrder[funcName] = paramNames
	if p.written[funcName] == nil {
		p.written[funcName] = map[string]bool{}
	}
}

// RecordWrite implements ModificationRecorder: assignment.go calls this
// for every direct write to a parameter.
func (p *TransitiveModificationPropagator) RecordWrite(funcName, paramName string) {
	if p.written[funcName] == nil {
		p.written[funcName] = map[string]bool{}
	}
	p.written[funcName][paramName] = true
}

// RecordCall registers one call site within funcName, to be walked by
// Propagate. Build argParamNames with IdentifierExpr arguments resolved
// against funcName's own parameters ahead of time (BuildCallSite does
// this), passing "" for every argument that isn't a bare reference to
// one of funcName's parameters.
func (p *TransitiveModificationPropagator) RecordCall(funcName string, site CallSite) {
	p.calls[funcName] = append(p.calls[funcName], site)
}

// Propagate runs the fixed-point pass: repeatedly scan every call site
// and mark a caller's parameter written whenever the corresponding
// callee parameter is (now) known to be written, until a full scan
// produces no new marks. Bounded by the total number of (function,
// parameter) pairs, so a call cycle (direct or mutual recursion) cannot
// loop forever — each pass can only ever add marks, never remove them,
// and there are finitely many to add.
func (p *TransitiveModificationPropagator) Propagate() {
	for {
		changed := false
		for funcName, sites := range p.calls {
			for _, site := range sites {
				calleeParams := p.paramOrder[site.Callee]
				calleeWritten := p.written[site.Callee]
				for i, callerParam := range site.ArgParamNames {
					if callerParam == "" || i >= len(calleeParams) {
						continue
					}
					calleeParam := calleeParams[i]
					if !calleeWritten[calleeParam] {
						continue
					}
					if p.written[funcName] == nil {
						p.written[funcName] = map[string]bool{}
					}
					if !p.written[funcName][callerParam] {
						p.written[funcName][callerParam] = true
						changed = true
					}
				}
			}
		}
		if !changed {
			return
		}
	}
}

// IsWritten reports whether paramName within funcName was found to be
// written, directly or transitively, after Propagate has run.
func (p *TransitiveModificationPropagator) IsWritten(funcName, paramName string) bool {
	return p.written[funcName][paramName]
}

// BuildCallSite resolves a CallExpr's arguments against the calling
// function's own parameter set, producing the ArgParamNames
// IdentifierResolver-free positional mapping RecordCall needs.
func BuildCallSite(call *CallExpr, callerParams map[string]ParameterInfo) (CallSite, bool) {
	calleeID, ok := call.Callee.(*IdentifierExpr)
	if !ok {
		return CallSite{}, false
	}
	names := make([]string, len(call.Args))
	for i, arg := range call.Args {
		if id, ok := arg.(*IdentifierExpr); ok {
			if _, isParam := callerParams[id.Name]; isParam {
				names[i] = id.Name
			}
		}
	}
	return CallSite{Callee: calleeID.Name, ArgParamNames: names}, true
}
