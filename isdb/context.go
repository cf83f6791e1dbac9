package isdb

import (
	"image/color"
	"math"
)

// WritingFormat is the orientation/density profile selected by SWF.
type WritingFormat int

const (
	FormatHorizontalStdDensity WritingFormat = 0
	FormatVerticalStdDensity   WritingFormat = 1
	FormatHorizontalHiDensity  WritingFormat = 2
	FormatVerticalHiDensity    WritingFormat = 3
	FormatHorizontalWestern    WritingFormat = 4
	FormatHorizontal1920x1080  WritingFormat = 5
	FormatVertical1920x1080    WritingFormat = 6
	FormatHorizontal960x540    WritingFormat = 7
	FormatVertical960x540      WritingFormat = 8
	FormatHorizontal720x480    WritingFormat = 9
	FormatVertical720x480      WritingFormat = 10
	FormatHorizontal1280x720   WritingFormat = 11
	FormatVertical1280x720     WritingFormat = 12
	FormatHorizontalCustom     WritingFormat = 100
	FormatNone                 WritingFormat = 101
)

// IsHorizontal reports whether text is laid out in rows.
func (f WritingFormat) IsHorizontal() bool {
	switch f {
	case FormatHorizontalStdDensity,
		FormatHorizontalHiDensity,
		FormatHorizontalWestern,
		FormatHorizontal1920x1080,
		FormatHorizontal960x540,
		FormatHorizontal720x480,
		FormatHorizontal1280x720,
		FormatHorizontalCustom:
		return true
	}
	return false
}

// FontSizeClass is the character size selector of the extended SWF form.
type FontSizeClass int

const (
	FontSizeSmall FontSizeClass = iota
	FontSizeMiddle
	FontSizeStandard
)

// Composition is the combining character mode set by CCC.
type Composition int

const (
	CompositionNone Composition = 0
	CompositionAND  Composition = 2
	CompositionOR   Composition = 3
	CompositionXOR  Composition = 4
)

type ScrollDirection int

const (
	ScrollNone ScrollDirection = iota
	ScrollColumn
	ScrollRow
)

type Scroll struct {
	Direction ScrollDirection
	Rollout   bool
	Speed     int // pixel/sec
}

// Rect is the display area, in pixels.
type Rect struct {
	X, Y int
	W, H int
}

// FontScale is expressed in percent.
type FontScale struct {
	X, Y int
}

type Spacing struct {
	Col, Row int
}

// LayoutState tracks the pen. Running metrics are reset at every line break;
// block offsets only move while the first line of the block is being laid out.
// Each emitted cue starts a new block.
type LayoutState struct {
	Format        WritingFormat
	ProfileC      bool // "1seg", see ARIB TR-B14 3-4
	DisplayArea   Rect
	FontSize      int // 16, 20, 24, 30 or 36 per TR-B14/B15
	FontSizeClass FontSizeClass
	FontScale     FontScale
	CellSpacing   Spacing
	CCC           Composition
	ACPS          [2]int
	Scroll        Scroll
	RepeatCount   int // -1: none, 0: until EOL, n: repeat next char n times
	InCombining   bool

	PrevCharSep    int
	PrevLineDesc   int
	PrevLineBottom int // offset from DisplayArea.Y
	LineDesc       int
	LinesepUpper   int
	LineHeight     int
	LineWidth      int // pen x position
	PrevBreakIdx   int // text offset right after the previous line break
	ShiftBaseline  bool

	BlockOffsetH int
	BlockOffsetV int
}

// CodeSet is the final byte of a graphic set designation.
type CodeSet byte

const (
	CodeSetMosaicC        CodeSet = 0x34
	CodeSetMosaicD        CodeSet = 0x35
	CodeSetHiragana       CodeSet = 0x30
	CodeSetKatakana       CodeSet = 0x31
	CodeSetPropHiragana   CodeSet = 0x37
	CodeSetPropKatakana   CodeSet = 0x38
	CodeSetAdditional     CodeSet = 0x3B
	CodeSetAlphanumeric   CodeSet = 0x4A
	CodeSetKanji          CodeSet = 0x42
	CodeSetJISX0201Kana   CodeSet = 0x49
	CodeSetJISX0213Plane1 CodeSet = 0x51
	CodeSetJISX0213Plane2 CodeSet = 0x50
	CodeSetMacro          CodeSet = 0x70
)

// Designation tracks which code sets are designated to G0..G3 and which of
// them are invoked into the left (GL) and right (GR) graphic areas.
type Designation struct {
	G           [4]CodeSet
	GL          int
	GR          int
	SingleShift int // 0, 2 (SS2) or 3 (SS3)
}

// RenderState is the current styling. Commands mutate it in place.
type RenderState struct {
	AutoDisplay bool
	RollupMode  bool
	ClutHighIdx uint8

	FG     color.RGBA
	BG     color.RGBA
	HalfFG color.RGBA
	HalfBG color.RGBA

	Layout      LayoutState
	Designation Designation
}

// ClockMode is the time control mode (TMD) of a data group.
type ClockMode uint8

const (
	ClockModeFree       ClockMode = 0
	ClockModeRealTime   ClockMode = 1
	ClockModeOffsetTime ClockMode = 2
)

func (m ClockMode) String() string {
	switch m {
	case ClockModeFree:
		return "free"
	case ClockModeRealTime:
		return "real-time"
	case ClockModeOffsetTime:
		return "offset-time"
	}
	return "reserved"
}

type OffsetTime struct {
	Hour        int
	Minute      int
	Second      int
	Millisecond int
}

// Language is one entry of the caption management language loop.
type Language struct {
	Tag                 uint8 // language_tag, 0..7
	DMF                 uint8 // display mode flag
	DisplayCondition    uint8
	HasDisplayCondition bool
	Code                string // ISO 639-2
	Format              uint8
	TCS                 uint8 // 0: 8-bit code, 1: UCS
	RollupMode          uint8
}

// Context is the per session decoder state, kept across Decode calls.
type Context struct {
	Text *TextBuffer

	Timestamp     uint64
	PrevTimestamp uint64

	ClockMode  ClockMode
	OffsetTime OffsetTime
	NbLang     int
	Languages  []Language
	DMF        uint8
	DC         uint8

	RasterColor color.RGBA
	NbChar      int
	NbLine      int

	State RenderState
}

const (
	defaultFontSize   = 36
	defaultColSpacing = 4
	defaultRowSpacing = 24
	defaultAreaWidth  = 960
	defaultAreaHeight = 540
)

func newContext(maxText int) *Context {
	c := &Context{
		Text:          NewTextBuffer(maxText),
		PrevTimestamp: math.MaxUint64,
	}
	c.State.reset()
	return c
}

func (s *RenderState) reset() {
	*s = RenderState{
		FG:     PaletteEntry(ColorWhite),
		BG:     PaletteEntry(ColorTransparent),
		HalfFG: PaletteEntry(ColorTransparent),
		HalfBG: PaletteEntry(ColorTransparent),
		Layout: LayoutState{
			Format:      FormatHorizontal960x540,
			DisplayArea: Rect{W: defaultAreaWidth, H: defaultAreaHeight},
			FontSize:    defaultFontSize,
			FontScale:   FontScale{X: 100, Y: 100},
			CellSpacing: Spacing{Col: defaultColSpacing, Row: defaultRowSpacing},
			RepeatCount: -1,
		},
		Designation: Designation{
			G:  [4]CodeSet{CodeSetKanji, CodeSetAlphanumeric, CodeSetHiragana, CodeSetMacro},
			GL: 0,
			GR: 2,
		},
	}
}
