package isdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLayout() LayoutState {
	var s RenderState
	s.reset()
	return s.Layout
}

func assertLineReset(t *testing.T, ls LayoutState) {
	t.Helper()
	assert.Equal(t, 0, ls.LineWidth)
	assert.Equal(t, 0, ls.LineHeight)
	assert.Equal(t, 0, ls.LineDesc)
	assert.Equal(t, 0, ls.LinesepUpper)
	assert.False(t, ls.ShiftBaseline)
}

func TestLayout_Advance(t *testing.T) {
	ls := newLayout()

	ls.Advance()
	assert.Equal(t, 36, ls.LineHeight)
	assert.Equal(t, 12, ls.LinesepUpper)
	assert.Equal(t, 12, ls.LineDesc)
	assert.Equal(t, 40, ls.LineWidth)
	assert.Equal(t, 4, ls.PrevCharSep)
	assert.Equal(t, 12, ls.BlockOffsetV)

	ls.Advance()
	assert.Equal(t, 36, ls.LineHeight)
	assert.Equal(t, 80, ls.LineWidth)
}

func TestLayout_AdvanceHalfHeight(t *testing.T) {
	ls := newLayout()
	ls.FontScale = FontScale{X: 50, Y: 50}

	ls.Advance()
	assert.True(t, ls.ShiftBaseline)
	assert.Equal(t, 20, ls.LineWidth)

	ls.FontScale = FontScale{X: 100, Y: 100}
	ls.Advance()
	assert.False(t, ls.ShiftBaseline)
}

func TestLayout_AdvanceVertical(t *testing.T) {
	ls := newLayout()
	ls.Format = FormatVertical960x540

	ls.Advance()
	assert.False(t, ls.ShiftBaseline)
	assert.Equal(t, 40, ls.LineWidth)
	assert.Equal(t, 0, ls.BlockOffsetV)
	assert.Greater(t, ls.BlockOffsetH, 0)
}

func TestLayout_AdvanceVerticalRaisesLineHeight(t *testing.T) {
	ls := newLayout()
	ls.Format = FormatVertical960x540
	// the ascent (30) fits, the upper half of the glyph (18) does not
	ls.LineHeight = 10
	ls.LinesepUpper = 30

	ls.Advance()
	assert.Equal(t, 18, ls.LineHeight)
	assert.Equal(t, 22, ls.LinesepUpper)
	assert.Equal(t, 30, ls.LineDesc)
}

func TestLayout_AdvanceByPixels(t *testing.T) {
	ls := newLayout()

	ls.AdvanceByPixels(100)
	assert.Equal(t, 100, ls.LineWidth)
	assert.Equal(t, 4, ls.PrevCharSep)
	assert.Equal(t, 0, ls.LineHeight)
	assert.Equal(t, 0, ls.LinesepUpper)
}

func TestLayout_DoLineBreakResetsMetrics(t *testing.T) {
	tests := []struct {
		name    string
		scale   FontScale
		format  WritingFormat
		advance int
	}{
		{name: "empty line", scale: FontScale{X: 100, Y: 100}, format: FormatHorizontal960x540},
		{name: "normal", scale: FontScale{X: 100, Y: 100}, format: FormatHorizontal960x540, advance: 5},
		{name: "half height", scale: FontScale{X: 50, Y: 50}, format: FormatHorizontal960x540, advance: 3},
		{name: "double", scale: FontScale{X: 200, Y: 200}, format: FormatHorizontal960x540, advance: 2},
		{name: "vertical", scale: FontScale{X: 100, Y: 100}, format: FormatVertical960x540, advance: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ls := newLayout()
			ls.FontScale = tt.scale
			ls.Format = tt.format
			text := NewTextBuffer(0)

			for n := 0; n < tt.advance; n++ {
				require.NoError(t, text.AppendChar('a'))
				ls.Advance()
			}
			require.NoError(t, ls.DoLineBreak(text))
			assertLineReset(t, ls)
			assert.Greater(t, ls.PrevLineBottom, 0)
			assert.Equal(t, text.Len(), ls.PrevBreakIdx)

			// a second break on an empty line still reserves height
			bottom := ls.PrevLineBottom
			require.NoError(t, ls.DoLineBreak(text))
			assertLineReset(t, ls)
			assert.Greater(t, ls.PrevLineBottom, bottom)
		})
	}
}

func TestLayout_DoLineBreakText(t *testing.T) {
	ls := newLayout()
	text := NewTextBuffer(0)

	require.NoError(t, text.AppendChar('a'))
	ls.Advance()
	require.NoError(t, ls.DoLineBreak(text))
	assert.Equal(t, "a\r\n", text.String())
	assert.Equal(t, 3, ls.PrevBreakIdx)
}

func TestLayout_FixupLinesep(t *testing.T) {
	ls := newLayout()
	assert.Equal(t, 0, ls.FixupLinesep())

	ls.PrevBreakIdx = 3
	ls.ShiftBaseline = true
	ls.LinesepUpper = 10
	ls.LineDesc = 10
	assert.Equal(t, 6, ls.FixupLinesep())
	assert.Equal(t, 16, ls.LinesepUpper)
	assert.Equal(t, 4, ls.LineDesc)
}

func TestLayout_MovePenPosition(t *testing.T) {
	ls := newLayout()
	text := NewTextBuffer(0)

	// first position opens the block
	move, err := ls.SetPosition(text, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, PenMoveNewLine, move)
	assert.Equal(t, 60, ls.PrevLineBottom)
	assert.Equal(t, -12, ls.LinesepUpper)
	assert.Equal(t, 0, ls.LineWidth)

	// same row, further right: append in place
	move, err = ls.SetPosition(text, 0, 5)
	require.NoError(t, err)
	assert.Equal(t, PenMoveForward, move)
	assert.Equal(t, 200, ls.LineWidth)

	// backward is not supported and leaves the pen untouched
	before := ls
	move, err = ls.SetPosition(text, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, PenMoveUnsupported, move)
	assert.Equal(t, before, ls)

	// two rows down breaks the line
	move, err = ls.SetPosition(text, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, PenMoveNewLine, move)
	assert.Equal(t, 48, ls.PrevLineBottom)
	assert.Equal(t, 120, ls.LinesepUpper)
	assert.Equal(t, 0, ls.LineWidth)
}

func TestPenMove_String(t *testing.T) {
	assert.Equal(t, "new-line", PenMoveNewLine.String())
	assert.Equal(t, "forward", PenMoveForward.String())
	assert.Equal(t, "unsupported", PenMoveUnsupported.String())
}
