package ccgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCastValidator_NarrowingRejected(t *testing.T) {
	v := NewCastValidator()
	err := v.ValidateAssignabilityWithoutBitRange("u32", "u8", Span{})
	require.Error(t, err)
	var diag *Diagnostic
	require.ErrorAs(t, err, &diag)
	assert.Equal(t, TypeError, diag.Kind)
	assert.Contains(t, diag.Suggestion, "expr[0,")
}

func TestCastValidator_SignChangeRejected(t *testing.T) {
	v := NewCastValidator()
	err := v.ValidateAssignabilityWithoutBitRange("i32", "u32", Span{})
	require.Error(t, err)
}

func TestCastValidator_WideningAccepted(t *testing.T) {
	v := NewCastValidator()
	err := v.ValidateAssignabilityWithoutBitRange("u8", "u32", Span{})
	assert.NoError(t, err)
}

func TestNarrowingCastHelper_Idempotent(t *testing.T) {
	mode := NewModeDispatcher(false)
	h := NewNarrowingCastHelper(mode)

	cases := []struct {
		name   string
		expr   string
		target string
	}{
		{"narrow unsigned", "x + y", "u8"},
		{"narrow signed", "a - b", "i16"},
		{"bool", "a > b", "bool"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, h.Idempotent(tc.expr, tc.target))
		})
	}
}

func TestNarrowingCastHelper_CppUsesStaticCast(t *testing.T) {
	mode := NewModeDispatcher(true)
	h := NewNarrowingCastHelper(mode)
	wrapped := h.Wrap("x + y", "u8")
	assert.Contains(t, wrapped, "static_cast<uint8_t>")
	assert.Equal(t, wrapped, h.Wrap(wrapped, "u8"))
}

func TestNarrowingCastHelper_WideTargetUnchanged(t *testing.T) {
	mode := NewModeDispatcher(false)
	h := NewNarrowingCastHelper(mode)
	assert.Equal(t, "x + y", h.Wrap("x + y", "u32"))
}
