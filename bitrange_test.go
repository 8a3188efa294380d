package ccgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitRangeHelper_MaskRoundTrip(t *testing.T) {
	mode := NewModeDispatcher(false)
	cast := NewNarrowingCastHelper(mode)
	h := NewBitRangeHelper(cast, mode)

	for width := 1; width <= 32; width++ {
		mask := h.Mask(width)
		assert.NotEmpty(t, mask)
	}
	assert.Equal(t, "0xFFU", h.Mask(8))
	assert.Equal(t, "0x3U", h.Mask(2))
}

func TestBitRangeHelper_ReadInt_ZeroWidthRejected(t *testing.T) {
	mode := NewModeDispatcher(false)
	cast := NewNarrowingCastHelper(mode)
	h := NewBitRangeHelper(cast, mode)

	_, err := h.ReadInt("v", 0, 0, "")
	assert.Error(t, err)
}

func TestBitRangeHelper_ReadInt_StartZeroOmitsShift(t *testing.T) {
	mode := NewModeDispatcher(false)
	cast := NewNarrowingCastHelper(mode)
	h := NewBitRangeHelper(cast, mode)

	expr, err := h.ReadInt("v", 0, 4, "")
	assert.NoError(t, err)
	assert.Equal(t, "((v) & 0xFU)", expr)
}

func TestBitRangeHelper_ReadInt_NonzeroStartShifts(t *testing.T) {
	mode := NewModeDispatcher(false)
	cast := NewNarrowingCastHelper(mode)
	h := NewBitRangeHelper(cast, mode)

	expr, err := h.ReadInt("v", 4, 4, "")
	assert.NoError(t, err)
	assert.Equal(t, "((v >> 4) & 0xFU)", expr)
}

func TestBitRangeHelper_WriteIntMask_PreservesOtherBits(t *testing.T) {
	mode := NewModeDispatcher(false)
	cast := NewNarrowingCastHelper(mode)
	h := NewBitRangeHelper(cast, mode)

	expr := h.WriteIntMask("v", "value", 4, 4)
	assert.Equal(t, "((v & ~(0xFU << 4)) | ((value & 0xFU) << 4))", expr)
}

func TestShadowName(t *testing.T) {
	assert.Equal(t, "__bits_sensorReading", ShadowName("sensorReading"))
}
