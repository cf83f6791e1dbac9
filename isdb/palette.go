package isdb

import "image/color"

// Basic ARIB colors, addressable without a CLUT bank.
const (
	ColorBlack uint8 = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorTransparent
	ColorHalfRed
	ColorHalfGreen
	ColorHalfYellow
	ColorHalfBlue
	ColorHalfMagenta
	ColorHalfCyan
	ColorHalfWhite
)

// PaletteSize is the number of entries in the default CLUT.
const PaletteSize = 128

// maxPaletteColumn is the highest color index within a palette bank.
const maxPaletteColumn = 0x0F

func rgba(r, g, b, a uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: a}
}

// defaultCLUT holds the ARIB STD-B24 fixed colors 0..64. Entries 65..127
// repeat colors 1..63 at half opacity.
var defaultCLUT = func() [PaletteSize]color.RGBA {
	table := [PaletteSize]color.RGBA{
		// 0-7
		rgba(0, 0, 0, 255), rgba(255, 0, 0, 255), rgba(0, 255, 0, 255), rgba(255, 255, 0, 255),
		rgba(0, 0, 255, 255), rgba(255, 0, 255, 255), rgba(0, 255, 255, 255), rgba(255, 255, 255, 255),
		// 8-15
		rgba(0, 0, 0, 0), rgba(170, 0, 0, 255), rgba(0, 170, 0, 255), rgba(170, 170, 0, 255),
		rgba(0, 0, 170, 255), rgba(170, 0, 170, 255), rgba(0, 170, 170, 255), rgba(170, 170, 170, 255),
		// 16-23
		rgba(0, 0, 85, 255), rgba(0, 85, 0, 255), rgba(0, 85, 85, 255), rgba(0, 85, 170, 255),
		rgba(0, 85, 255, 255), rgba(0, 170, 85, 255), rgba(0, 170, 255, 255), rgba(0, 255, 85, 255),
		// 24-31
		rgba(0, 255, 170, 255), rgba(85, 0, 0, 255), rgba(85, 0, 85, 255), rgba(85, 0, 170, 255),
		rgba(85, 0, 255, 255), rgba(85, 85, 0, 255), rgba(85, 85, 85, 255), rgba(85, 85, 170, 255),
		// 32-39
		rgba(85, 85, 255, 255), rgba(85, 170, 0, 255), rgba(85, 170, 85, 255), rgba(85, 170, 170, 255),
		rgba(85, 170, 255, 255), rgba(85, 255, 0, 255), rgba(85, 255, 85, 255), rgba(85, 255, 170, 255),
		// 40-47
		rgba(85, 255, 255, 255), rgba(170, 0, 85, 255), rgba(170, 0, 255, 255), rgba(170, 85, 0, 255),
		rgba(170, 85, 85, 255), rgba(170, 85, 170, 255), rgba(170, 85, 255, 255), rgba(170, 170, 85, 255),
		// 48-55
		rgba(170, 170, 255, 255), rgba(170, 255, 0, 255), rgba(170, 255, 85, 255), rgba(170, 255, 170, 255),
		rgba(170, 255, 255, 255), rgba(255, 0, 85, 255), rgba(255, 0, 170, 255), rgba(255, 85, 0, 255),
		// 56-63
		rgba(255, 85, 85, 255), rgba(255, 85, 170, 255), rgba(255, 85, 255, 255), rgba(255, 170, 0, 255),
		rgba(255, 170, 85, 255), rgba(255, 170, 170, 255), rgba(255, 170, 255, 255), rgba(255, 255, 85, 255),
		// 64
		rgba(255, 255, 170, 255),
	}
	for i := 65; i < PaletteSize; i++ {
		c := table[i-64]
		c.A = 128
		table[i] = c
	}
	return table
}()

// PaletteColor returns the CLUT entry addressed by a bank (high index) and a
// 4-bit low index. Out of range bits are masked, so the lookup never fails.
func PaletteColor(high, low uint8) color.RGBA {
	return defaultCLUT[int(high&0x07)<<4|int(low&0x0F)]
}

// PaletteEntry returns the CLUT entry at a flat 7-bit index.
func PaletteEntry(idx uint8) color.RGBA {
	return defaultCLUT[idx&0x7F]
}
