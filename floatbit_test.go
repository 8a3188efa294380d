package ccgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloatBitHelper_ShadowCoherenceProtocol(t *testing.T) {
	state := NewState(NewConfig(), NewScopeTables())
	mode := NewModeDispatcher(false)
	cast := NewNarrowingCastHelper(mode)
	bits := NewBitRangeHelper(cast, mode)
	h := NewFloatBitHelper(bits, state)

	require.False(t, state.IsShadowDeclared("sensor"))

	_, err := h.ReadBits("sensor", "f32", 0, 1)
	require.NoError(t, err)

	assert.True(t, state.IsShadowDeclared("sensor"))
	assert.True(t, state.IsShadowCurrent("sensor"))

	// A direct assignment to the float invalidates the shadow.
	h.InvalidateOnAssignment("sensor")
	assert.False(t, state.IsShadowCurrent("sensor"))

	// The next read re-syncs it.
	_, err = h.ReadBits("sensor", "f32", 0, 1)
	require.NoError(t, err)
	assert.True(t, state.IsShadowCurrent("sensor"))
}

func TestFloatBitHelper_DeclareOnlyOnce(t *testing.T) {
	state := NewState(NewConfig(), NewScopeTables())
	mode := NewModeDispatcher(false)
	cast := NewNarrowingCastHelper(mode)
	bits := NewBitRangeHelper(cast, mode)
	h := NewFloatBitHelper(bits, state)

	_, err := h.ReadBits("sensor", "f32", 0, 1)
	require.NoError(t, err)
	firstPending := len(state.pendingTempDeclarations)

	_, err = h.ReadBits("sensor", "f32", 1, 1)
	require.NoError(t, err)
	// Still declared, still current: the second read queues nothing new.
	assert.Equal(t, firstPending, len(state.pendingTempDeclarations))
}

func TestFloatBitHelper_WriteBitsLeavesShadowCurrent(t *testing.T) {
	state := NewState(NewConfig(), NewScopeTables())
	mode := NewModeDispatcher(false)
	cast := NewNarrowingCastHelper(mode)
	bits := NewBitRangeHelper(cast, mode)
	h := NewFloatBitHelper(bits, state)

	h.WriteBits("sensor", "f32", "1U", 0, 1)
	assert.True(t, state.IsShadowCurrent("sensor"))
	assert.NotEmpty(t, state.pendingTempDeclarations)
}
