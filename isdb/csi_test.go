package isdb

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSI_SDFRoundTrip(t *testing.T) {
	d := NewDecoder()

	for w := 0; w <= 9999; w += 101 {
		for _, h := range []int{0, 1, 540, 1080, 9999} {
			require.NoError(t, d.parseStatement(csi(fmt.Sprintf("%d;%d", w, h), csiSDF)))
			area := d.Context().State.Layout.DisplayArea
			assert.Equal(t, w, area.W)
			assert.Equal(t, h, area.H)
		}
	}
}

func TestCSI_SWF(t *testing.T) {
	tests := []struct {
		name   string
		body   []byte
		format WritingFormat
		class  FontSizeClass
		chars  int
		lines  int
	}{
		{
			name:   "bare",
			body:   csi("7", csiSWF),
			format: FormatHorizontal960x540,
		},
		{
			name:   "bare two digits",
			body:   csi("12", csiSWF),
			format: FormatVertical1280x720,
		},
		{
			name:   "format and characters",
			body:   []byte{0x9B, 0x32, 0x3B, 0x31, 0x20, 0x53},
			format: FormatHorizontalHiDensity,
			chars:  1,
		},
		{
			name:   "full form",
			body:   csi("5;1;20;10", csiSWF),
			format: FormatHorizontal1920x1080,
			class:  FontSizeMiddle,
			chars:  20,
			lines:  10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDecoder()

			require.NoError(t, d.parseStatement(tt.body))
			c := d.Context()
			assert.Equal(t, tt.format, c.State.Layout.Format)
			assert.Equal(t, tt.class, c.State.Layout.FontSizeClass)
			assert.Equal(t, tt.chars, c.NbChar)
			assert.Equal(t, tt.lines, c.NbLine)
		})
	}
}

func TestCSI_LayoutCommands(t *testing.T) {
	d := NewDecoder()

	var body []byte
	body = append(body, csi("2", csiCCC)...)
	body = append(body, csi("24;24", csiSSM)...)
	body = append(body, csi("120;60", csiSDP)...)
	body = append(body, csi("8", csiSHS)...)
	body = append(body, csi("16", csiSVS)...)
	body = append(body, csi("3;4", csiACPS)...)
	require.NoError(t, d.parseStatement(body))

	ls := d.Context().State.Layout
	assert.Equal(t, CompositionAND, ls.CCC)
	assert.Equal(t, 24, ls.FontSize)
	assert.Equal(t, 120, ls.DisplayArea.X)
	assert.Equal(t, 60, ls.DisplayArea.Y)
	assert.Equal(t, Spacing{Col: 8, Row: 16}, ls.CellSpacing)
	assert.Equal(t, [2]int{3, 4}, ls.ACPS)
}

func TestCSI_RasterColorUsesBank(t *testing.T) {
	d := NewDecoder()

	body := []byte{0x90, colPaletteBank, 0x43}
	body = append(body, csi("5", csiRCS)...)
	require.NoError(t, d.parseStatement(body))

	c := d.Context()
	assert.Equal(t, uint8(3), c.State.ClutHighIdx)
	assert.Equal(t, PaletteColor(3, 5), c.RasterColor)
}

func TestCSI_RasterColorOutOfRange(t *testing.T) {
	d := NewDecoder()
	before := d.Context().RasterColor

	for _, v := range []string{"16", "261"} {
		require.NoError(t, d.parseStatement(csi(v, csiRCS)))
		assert.Equal(t, before, d.Context().RasterColor, v)
	}

	require.NoError(t, d.parseStatement(csi("15", csiRCS)))
	assert.Equal(t, PaletteColor(0, 15), d.Context().RasterColor)
}

func TestCSI_MalformedParametersSkipCommand(t *testing.T) {
	d := NewDecoder()
	before := d.Context().State.Layout.DisplayArea

	body := csi("a;2", csiSDF)
	body = append(body, csi("7", csiSDF)...)
	body = append(body, 'x')
	require.NoError(t, d.parseStatement(body))

	assert.Equal(t, before, d.Context().State.Layout.DisplayArea)
	assert.Equal(t, "x", d.Context().Text.String())
}

func TestCSI_UnsupportedCommandSkipped(t *testing.T) {
	d := NewDecoder()

	body := csi("1", csiGSM)
	body = append(body, csi("", 0x7A)...)
	body = append(body, 'y')
	require.NoError(t, d.parseStatement(body))
	assert.Equal(t, "y", d.Context().Text.String())
}

func TestCSI_Bounds(t *testing.T) {
	tests := []struct {
		name string
		body []byte
		err  error
	}{
		{name: "nine parameter bytes fit", body: csi("9999;9999", csiSDF)},
		{name: "ten parameter bytes overflow", body: csi("1234567890", csiSDF), err: ErrParameterOverflow},
		{name: "overflow without terminator", body: []byte("\x9b12345678901234"), err: ErrParameterOverflow},
		{name: "missing terminator", body: []byte("\x9b12;34"), err: ErrTruncatedField},
		{name: "missing final byte", body: []byte("\x9b12 "), err: ErrTruncatedField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDecoder()
			err := d.parseStatement(tt.body)
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestParseNumericParams(t *testing.T) {
	ps, err := parseNumericParams([]byte("12;;034"))
	require.NoError(t, err)
	assert.Equal(t, []int{12, 0, 34}, ps)

	ps, err = parseNumericParams(nil)
	require.NoError(t, err)
	assert.Empty(t, ps)

	_, err = parseNumericParams([]byte("1:2"))
	assert.Error(t, err)
}
