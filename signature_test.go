package ccgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newSigBuilder(cppMode bool, state *State) (*ParameterInputAdapter, *SignatureBuilder) {
	mode := NewModeDispatcher(cppMode)
	typegen := NewTypeGenerationHelper(mode, state)
	adapter := NewParameterInputAdapter(typegen, state)
	return adapter, NewSignatureBuilder(mode, typegen, adapter)
}

func TestSignatureBuilder_StructParameter_CMode(t *testing.T) {
	state := NewState(NewConfig(), NewScopeTables())
	state.Symbols.Structs["MotorState"] = &StructInfo{Name: "MotorState", Members: map[string]TypeInfo{}}
	adapter, sb := newSigBuilder(false, state)

	p := Parameter{Name: "m", Type: TypeContext{Name: "MotorState"}}
	info, _ := adapter.Adapt(p)
	assert.True(t, info.IsStruct)
	rendered := sb.renderParam(info)
	assert.Equal(t, "MotorState *m", rendered)
}

func TestSignatureBuilder_StructParameter_CppMode(t *testing.T) {
	state := NewState(&Config{CppMode: true, TabWidth: 4}, NewScopeTables())
	state.Symbols.Structs["MotorState"] = &StructInfo{Name: "MotorState", Members: map[string]TypeInfo{}}
	adapter, sb := newSigBuilder(true, state)

	p := Parameter{Name: "m", Type: TypeContext{Name: "MotorState"}}
	info, _ := adapter.Adapt(p)
	rendered := sb.renderParam(info)
	assert.Equal(t, "MotorState &m", rendered)
}

func TestSignatureBuilder_BoundedStringParameter(t *testing.T) {
	state := NewState(NewConfig(), NewScopeTables())
	adapter, sb := newSigBuilder(false, state)

	p := Parameter{Name: "label", Type: TypeContext{Name: "string", StringCapacity: &ArrayDimension{Resolved: true, Value: 16}}}
	info, _ := adapter.Adapt(p)
	assert.True(t, info.IsString)
	assert.False(t, info.IsUnboundedString)
	rendered := sb.renderParam(info)
	assert.Equal(t, "char label[]", rendered)
}

func TestSignatureBuilder_UnboundedConstStringParameter(t *testing.T) {
	state := NewState(NewConfig(), NewScopeTables())
	adapter, sb := newSigBuilder(false, state)

	p := Parameter{
		Name:    "msg",
		Type:    TypeContext{Name: "string", IsConst: true},
		IsConst: true,
	}
	// Unbounded is signaled by a StringCapacity field that is non-nil
	// but unresolved, representing `const string` with no declared N.
	p.Type.StringCapacity = &ArrayDimension{Resolved: false, Text: ""}
	info, _ := adapter.Adapt(p)
	assert.True(t, info.IsUnboundedString)
	rendered := sb.renderParam(info)
	assert.Equal(t, "const char *msg", rendered)
}

func TestSignatureBuilder_CallbackParameter(t *testing.T) {
	state := NewState(NewConfig(), NewScopeTables())
	adapter, sb := newSigBuilder(false, state)

	p := Parameter{Name: "onTick", IsCallback: true, CallbackTypedef: "TickHandler"}
	info, _ := adapter.Adapt(p)
	assert.True(t, info.IsCallback)
	rendered := sb.renderParam(info)
	assert.Equal(t, "TickHandler onTick", rendered)
}

func TestSignatureBuilder_Build_VoidReturn(t *testing.T) {
	state := NewState(NewConfig(), NewScopeTables())
	_, sb := newSigBuilder(false, state)

	fn := FunctionDeclaration{Name: "tick", ReturnType: TypeContext{Name: "void"}, IsVoid: true}
	sig := sb.Build(fn, nil)
	assert.Equal(t, "void tick()", sig)
}
