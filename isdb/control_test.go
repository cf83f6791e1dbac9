package isdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		b    byte
		kind CommandKind
	}{
		{0x00, KindNUL},
		{0x0C, KindCS},
		{0x0E, KindLS1},
		{0x0F, KindLS0},
		{0x16, KindPAPF},
		{0x1C, KindAPS},
		{0x1D, KindSS3},
		{0x20, KindSpace},
		{0x41, KindText},
		{0x7F, KindDelete},
		{0x80, KindForeground},
		{0x87, KindForeground},
		{0x88, KindSSZ},
		{0x89, KindMSZ},
		{0x8A, KindNSZ},
		{0x8B, KindSZX},
		{0x90, KindCOL},
		{0x9B, KindCSI},
		{0x9D, KindTIME},
		{0x9E, KindUnknown},
		{0xA0, KindReserved},
		{0xA1, KindText},
		{0xE3, KindText},
		{0xFF, KindReserved},
	}

	for _, tt := range tests {
		cmd := Classify(tt.b)
		assert.Equal(t, tt.kind, cmd.Kind, "byte 0x%02x", tt.b)
		assert.Equal(t, tt.b, cmd.Code)
	}
	assert.Equal(t, "CSI", KindCSI.String())
	assert.True(t, KindNUL.IsControl())
	assert.False(t, KindDelete.IsControl())
}

func TestControl_Colors(t *testing.T) {
	d := NewDecoder()

	body := []byte{
		0x81,       // red foreground
		0x90, 0x51, // red background
		0x90, 0x62, // half foreground
		0x90, 0x74, // half background
	}
	require.NoError(t, d.parseStatement(body))

	s := d.Context().State
	assert.Equal(t, PaletteEntry(ColorRed), s.FG)
	assert.Equal(t, PaletteEntry(ColorRed), s.BG)
	assert.Equal(t, PaletteEntry(ColorGreen), s.HalfFG)
	assert.Equal(t, PaletteEntry(ColorBlue), s.HalfBG)
}

func TestControl_Sizes(t *testing.T) {
	tests := []struct {
		code  byte
		scale FontScale
	}{
		{0x88, FontScale{X: 50, Y: 50}},
		{0x89, FontScale{X: 200, Y: 200}},
		{0x8A, FontScale{X: 100, Y: 100}},
	}

	for _, tt := range tests {
		d := NewDecoder()
		require.NoError(t, d.parseStatement([]byte{0x88, tt.code}))
		assert.Equal(t, tt.scale, d.Context().State.Layout.FontScale)
	}
}

func TestControl_ParametersSkipped(t *testing.T) {
	d := NewDecoder()

	body := []byte{
		0x16, 0x41, // PAPF
		0x8B, 0x60, // SZX
		0x91, 0x40, // FLC
		0x92, 0x20, 0x40, 0x40, // CDC
		0x93, 0x40, // POL
		0x94, 0x40, 0x40, 0x40, // WMM
		0x95, 0x40, // MACRO
		0x97, 0x40, // HLC
		0x98, 0x40, // RPC
		0x99, 0x9A, // SPL, STL
		0x9D, 0x20, 0x40, // TIME
		0x00, 0x07, 0x09, 0x0C, 0x0D, 0x18, 0x1E, 0x1F, // logged only
		'o', 'k',
	}
	require.NoError(t, d.parseStatement(body))
	assert.Equal(t, "ok", d.Context().Text.String())
}

func TestControl_TruncatedParameter(t *testing.T) {
	for _, body := range [][]byte{
		{0x1C, 0x41},
		{0x94, 0x40},
		{0x90},
		{0x90, 0x20},
		{0x8B},
	} {
		d := NewDecoder()
		assert.ErrorIs(t, d.parseStatement(body), ErrTruncatedField, "body % x", body)
	}
}

func TestControl_APS(t *testing.T) {
	d := NewDecoder()

	require.NoError(t, d.parseStatement([]byte{'a', 0x1C, 0x42, 0x40, 'b'}))
	c := d.Context()
	assert.Equal(t, "a\r\nb", c.Text.String())
	assert.Equal(t, 3, c.State.Layout.PrevBreakIdx)
	// two pixels of left spacing, then one cell
	assert.Equal(t, 42, c.State.Layout.LineWidth)
}

func TestControl_Designation(t *testing.T) {
	d := NewDecoder()

	require.NoError(t, d.parseStatement([]byte{0x0E}))
	assert.Equal(t, 1, d.Context().State.Designation.GL)

	require.NoError(t, d.parseStatement([]byte{0x0F, 0x19}))
	assert.Equal(t, 0, d.Context().State.Designation.GL)
	assert.Equal(t, 2, d.Context().State.Designation.SingleShift)

	// a single shift only holds for the next character
	require.NoError(t, d.parseStatement([]byte{'a'}))
	assert.Equal(t, 0, d.Context().State.Designation.SingleShift)
}
