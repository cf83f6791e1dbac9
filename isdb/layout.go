package isdb

// PenMove is the outcome of moving the pen to an absolute position.
type PenMove int

const (
	// PenMoveNewLine broke the current line and advanced to the target column.
	PenMoveNewLine PenMove = iota
	// PenMoveForward stayed on the current line and advanced to the target column.
	PenMoveForward
	// PenMoveUnsupported left the state untouched, the target is behind the pen.
	PenMoveUnsupported
)

func (m PenMove) String() string {
	switch m {
	case PenMoveNewLine:
		return "new-line"
	case PenMoveForward:
		return "forward"
	}
	return "unsupported"
}

// cellScale is the font scale along the character path.
func (ls *LayoutState) cellScale() int {
	if ls.Format.IsHorizontal() {
		return ls.FontScale.X
	}
	return ls.FontScale.Y
}

// Advance accounts for one character cell: it raises the line metrics to fit
// the glyph and moves the pen along the character path.
func (ls *LayoutState) Advance() {
	var h, asc, desc int
	cscale := ls.cellScale()

	if ls.Format.IsHorizontal() {
		h = ls.FontSize * ls.FontScale.Y / 100
		if ls.FontScale.Y == 200 {
			desc = ls.CellSpacing.Row / 2
		} else {
			desc = ls.CellSpacing.Row * ls.FontScale.Y / 200
		}
		asc = ls.CellSpacing.Row*ls.FontScale.Y/100 - desc + h

		if asc > ls.LineHeight+ls.LinesepUpper {
			if h > ls.LineHeight {
				ls.LineHeight = h
			}
			ls.LinesepUpper = asc - ls.LineHeight
		} else if h > ls.LineHeight {
			ls.LinesepUpper = ls.LineHeight + ls.LinesepUpper - h
			ls.LineHeight = h
		}

		if ls.PrevLineBottom == 0 && ls.LinesepUpper > ls.BlockOffsetV {
			ls.BlockOffsetV = ls.LinesepUpper
		}
		// the baseline shift only holds while every glyph of the line is half height
		if ls.LineWidth == 0 {
			ls.ShiftBaseline = ls.FontScale.Y == 50
		} else if ls.FontScale.Y != 50 {
			ls.ShiftBaseline = false
		}
	} else {
		h = ls.FontSize * ls.FontScale.X / 100
		lsp := ls.CellSpacing.Row * ls.FontScale.X / 100
		upper := h - h/2
		desc = h/2 + lsp/2
		asc = upper + lsp - lsp/2

		if asc > ls.LineHeight+ls.LinesepUpper {
			if upper > ls.LineHeight {
				ls.LineHeight = upper
			}
			ls.LinesepUpper = asc - ls.LineHeight
		} else if upper > ls.LineHeight {
			ls.LinesepUpper = ls.LineHeight + ls.LinesepUpper - upper
			ls.LineHeight = upper
		}

		if ls.PrevLineBottom == 0 && ls.LinesepUpper > ls.BlockOffsetH {
			ls.BlockOffsetH = ls.LinesepUpper
		}
		ls.ShiftBaseline = false
	}

	if desc > ls.LineDesc {
		ls.LineDesc = desc
	}

	csp := ls.CellSpacing.Col * cscale / 100
	ls.LineWidth += ls.FontSize*cscale/100 + csp
	ls.PrevCharSep = csp
}

// AdvanceByPixels moves the pen px pixels along the character path without
// touching the line height metrics.
func (ls *LayoutState) AdvanceByPixels(px int) {
	ls.LineWidth += px
	ls.PrevCharSep = ls.CellSpacing.Col * ls.cellScale() / 100
}

// FixupLinesep shifts the baseline down by a quarter of the row spacing when
// every glyph of the finished line was half height.
func (ls *LayoutState) FixupLinesep() int {
	if ls.PrevBreakIdx <= 0 {
		return 0
	}
	if !ls.ShiftBaseline || !ls.Format.IsHorizontal() {
		return 0
	}
	delta := ls.CellSpacing.Row / 4
	ls.LinesepUpper += delta
	ls.LineDesc -= delta
	return delta
}

// DoLineBreak terminates the current line with a "\r\n" marker and resets
// the running line metrics. An empty line still reserves one cell of height.
func (ls *LayoutState) DoLineBreak(text *TextBuffer) error {
	csp := ls.CellSpacing.Col * ls.cellScale() / 100

	if ls.LineWidth == 0 {
		if ls.PrevLineBottom == 0 {
			if ls.Format.IsHorizontal() {
				ls.BlockOffsetH = csp / 2
			} else {
				ls.BlockOffsetV = csp / 2
			}
		}
		ls.Advance()
	}

	if err := text.AppendChar('\r'); err != nil {
		return err
	}
	if err := text.AppendChar('\n'); err != nil {
		return err
	}
	ls.FixupLinesep()

	ls.PrevBreakIdx = text.Len()
	ls.PrevLineDesc = ls.LineDesc
	ls.PrevLineBottom += ls.LinesepUpper + ls.LineHeight + ls.LineDesc
	ls.PrevCharSep = csp
	ls.LineHeight = 0
	ls.LineWidth = 0
	ls.LineDesc = 0
	ls.LinesepUpper = 0
	ls.ShiftBaseline = false
	return nil
}

// ResetPen starts a new text block: the running line metrics and block
// offsets go back to zero, styling and format are left as they are.
func (ls *LayoutState) ResetPen() {
	ls.PrevCharSep = 0
	ls.PrevLineDesc = 0
	ls.PrevLineBottom = 0
	ls.LineDesc = 0
	ls.LinesepUpper = 0
	ls.LineHeight = 0
	ls.LineWidth = 0
	ls.PrevBreakIdx = 0
	ls.ShiftBaseline = false
	ls.BlockOffsetH = 0
	ls.BlockOffsetV = 0
}

// MovePenPosition moves the pen to (col, row), relative to the top left of
// the display area. In vertical layouts the coordinates are rotated by 90
// degrees on the top right of the area. Cells include the spacing on both
// sides. Only forward moves are supported.
func (ls *LayoutState) MovePenPosition(text *TextBuffer, col, row int) (PenMove, error) {
	var cellHeight, cellDesc, cspL, colOfs int

	if ls.Format.IsHorizontal() {
		cellHeight = (ls.FontSize + ls.CellSpacing.Row) * ls.FontScale.Y / 100
		if ls.FontScale.Y == 200 {
			cellDesc = ls.CellSpacing.Row / 2
		} else {
			cellDesc = ls.CellSpacing.Row * ls.FontScale.Y / 200
		}
		// upper left of the cell
		row -= cellHeight

		cspL = ls.CellSpacing.Col * ls.FontScale.X / 200
		if ls.LineWidth == 0 && ls.PrevLineBottom == 0 {
			ls.BlockOffsetH = cspL
		}
		colOfs = ls.BlockOffsetH
	} else {
		cellHeight = (ls.FontSize + ls.CellSpacing.Row) * ls.FontScale.X / 100
		cellDesc = cellHeight / 2
		row -= cellHeight - cellDesc

		cspL = ls.CellSpacing.Col * ls.FontScale.Y / 200
		if ls.LineWidth == 0 && ls.PrevLineBottom == 0 {
			ls.BlockOffsetV = cspL
		}
		colOfs = ls.BlockOffsetV
	}

	curBottom := ls.PrevLineBottom + ls.LinesepUpper + ls.LineHeight + ls.LineDesc

	// the target may sit up to half a cell off the current line bottom
	switch {
	case row+cellHeight/2 > curBottom:
		if err := ls.DoLineBreak(text); err != nil {
			return PenMoveUnsupported, err
		}
		ls.LinesepUpper = row + cellHeight - cellDesc - ls.PrevLineBottom
		ls.LineHeight = 0
		ls.AdvanceByPixels(col + cspL - colOfs)
		return PenMoveNewLine, nil
	case row+cellHeight*3/2 > curBottom && col+cspL > colOfs+ls.LineWidth:
		ls.AdvanceByPixels(col + cspL - (colOfs + ls.LineWidth))
		return PenMoveForward, nil
	}
	return PenMoveUnsupported, nil
}

// SetPosition converts a character grid position (row p1, column p2) to
// pixels and moves the pen there. The pen reference point is the bottom left
// of the cell in horizontal layouts and its middle left in vertical ones.
func (ls *LayoutState) SetPosition(text *TextBuffer, p1, p2 int) (PenMove, error) {
	var cw, ch, col, row int

	if ls.Format.IsHorizontal() {
		cw = (ls.FontSize + ls.CellSpacing.Col) * ls.FontScale.X / 100
		ch = (ls.FontSize + ls.CellSpacing.Row) * ls.FontScale.Y / 100
		col = p2 * cw
		row = p1*ch + ch
	} else {
		cw = (ls.FontSize + ls.CellSpacing.Col) * ls.FontScale.Y / 100
		ch = (ls.FontSize + ls.CellSpacing.Row) * ls.FontScale.X / 100
		col = p2 * cw
		row = p1*ch + ch/2
	}
	return ls.MovePenPosition(text, col, row)
}
