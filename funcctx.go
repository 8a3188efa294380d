package ccgen

// FunctionContextManager orchestrates entering and leaving a function
// body: registering parameters on State (with their auto-const
// resolution already applied), and tearing the per-function overlay
// down again on exit (spec.md §3 Lifecycle, §4.6).
//
// Grounded on the teacher's writeConstructor/writeParserMethods split in
// gen_go.go: one method assembles the per-definition bookkeeping before
// the body is walked, a matching step tears it down after.
type FunctionContextManager struct {
	state    *State
	adapter  *ParameterInputAdapter
	modprop  *TransitiveModificationPropagator
}

func NewFunctionContextManager(state *State, adapter *ParameterInputAdapter, modprop *TransitiveModificationPropagator) *FunctionContextManager {
	return &FunctionContextManager{state: state, adapter: adapter, modprop: modprop}
}

// Enter registers fn's parameters on state, resolving each one's
// auto-const status from the propagator's already-computed fixed point
// (Propagate must have run before any function body is emitted, since
// auto-const is a whole-unit property, not a per-function one).
func (m *FunctionContextManager) Enter(fn FunctionDeclaration) []ParameterInfo {
	m.state.EnterFunction(fn.Name, fn.ReturnType.Name, fn.Scope)

	var infos []ParameterInfo
	for _, raw := range fn.Params.Params {
		info, typ := m.adapter.Adapt(raw)
		if m.modprop != nil && !info.IsConst && !info.IsPassByValue {
			if !m.modprop.IsWritten(fn.Name, info.Name) {
				info = ApplyAutoConst(info)
			}
		}
		m.state.AddParameter(info, typ)
		infos = append(infos, info)
	}
	return infos
}

// Exit tears down the per-function overlay State.EnterFunction set up.
func (m *FunctionContextManager) Exit() {
	m.state.ExitFunction()
}
