package ccgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringOperationsHelper_ConcatCapacityRejected(t *testing.T) {
	state := NewState(NewConfig(), NewScopeTables())
	h := NewStringOperationsHelper(state)

	err := h.ValidateConcatCapacity(5, 5, 8, Span{})
	require.Error(t, err)
	var diag *Diagnostic
	require.ErrorAs(t, err, &diag)
	assert.Equal(t, CapacityError, diag.Kind)
}

func TestStringOperationsHelper_ConcatCapacityAccepted(t *testing.T) {
	state := NewState(NewConfig(), NewScopeTables())
	h := NewStringOperationsHelper(state)

	assert.NoError(t, h.ValidateConcatCapacity(3, 3, 8, Span{}))
}

func TestStringOperationsHelper_UnboundedOperandsSkipValidation(t *testing.T) {
	state := NewState(NewConfig(), NewScopeTables())
	h := NewStringOperationsHelper(state)

	assert.NoError(t, h.ValidateConcatCapacity(-1, 3, 2, Span{}))
}

func TestStringOperationsHelper_EmitConcatRequiresCstring(t *testing.T) {
	state := NewState(NewConfig(), NewScopeTables())
	h := NewStringOperationsHelper(state)

	lines := h.EmitConcat("dest", "a", "b", 9)
	assert.Len(t, lines, 3)
	assert.True(t, state.RequiredHeaders().Has(HeaderCstring))
}

func TestStringDeclHelper_LiteralExceedsCapacityRejected(t *testing.T) {
	state := NewState(NewConfig(), NewScopeTables())
	typegen := NewTypeGenerationHelper(NewModeDispatcher(false), state)
	h := NewStringDeclHelper(typegen)

	typeCtx := TypeContext{Name: "string", StringCapacity: &ArrayDimension{Resolved: true, Value: 3}}
	_, err := h.Declare(typeCtx, "label", NewStringLiteralExpr(Span{}, "toolong"))
	require.Error(t, err)
	var diag *Diagnostic
	require.ErrorAs(t, err, &diag)
	assert.Equal(t, CapacityError, diag.Kind)
}

func TestStringDeclHelper_LiteralWithinCapacityAccepted(t *testing.T) {
	state := NewState(NewConfig(), NewScopeTables())
	typegen := NewTypeGenerationHelper(NewModeDispatcher(false), state)
	h := NewStringDeclHelper(typegen)

	typeCtx := TypeContext{Name: "string", StringCapacity: &ArrayDimension{Resolved: true, Value: 8}}
	decl, err := h.Declare(typeCtx, "label", NewStringLiteralExpr(Span{}, "ok"))
	require.NoError(t, err)
	assert.Equal(t, `char label[9] = "ok"`, decl)
}
