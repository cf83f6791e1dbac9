package isdb

import (
	"bytes"
	"fmt"

	"github.com/asticode/go-astikit"
)

const (
	// parameter bytes plus the terminator
	csiParamCapacity   = 10
	csiParamTerminator = 0x20
	csiParamSeparator  = 0x3B
)

// CSI final bytes
const (
	csiGSM  = 0x42
	csiSWF  = 0x53
	csiCCC  = 0x54
	csiSDF  = 0x56
	csiSSM  = 0x57
	csiSHS  = 0x58
	csiSVS  = 0x59
	csiPLD  = 0x5B
	csiPLU  = 0x5C
	csiGAA  = 0x5D
	csiSRC  = 0x5E
	csiSDP  = 0x5F
	csiACPS = 0x61
	csiTCC  = 0x62
	csiORN  = 0x63
	csiMDF  = 0x64
	csiCFS  = 0x65
	csiXCS  = 0x66
	csiPRA  = 0x68
	csiACS  = 0x69
	csiRCS  = 0x6E
	csiSCS  = 0x6F
)

var csiNames = map[byte]string{
	csiGSM:  "GSM",
	csiSWF:  "SWF",
	csiCCC:  "CCC",
	csiSDF:  "SDF",
	csiSSM:  "SSM",
	csiSHS:  "SHS",
	csiSVS:  "SVS",
	csiPLD:  "PLD",
	csiPLU:  "PLU",
	csiGAA:  "GAA",
	csiSRC:  "SRC",
	csiSDP:  "SDP",
	csiACPS: "ACPS",
	csiTCC:  "TCC",
	csiORN:  "ORN",
	csiMDF:  "MDF",
	csiCFS:  "CFS",
	csiXCS:  "XCS",
	csiPRA:  "PRA",
	csiACS:  "ACS",
	csiRCS:  "RCS",
	csiSCS:  "SCS",
}

func csiName(f byte) string {
	if n, ok := csiNames[f]; ok {
		return n
	}
	return fmt.Sprintf("0x%02x", f)
}

// minimum number of numeric parameters per command
var csiArity = map[byte]int{
	csiCCC:  1,
	csiSDF:  2,
	csiSSM:  1,
	csiSDP:  2,
	csiRCS:  1,
	csiSHS:  1,
	csiSVS:  1,
	csiACPS: 2,
}

// readCSIParams copies the parameter bytes preceding the terminator. The
// returned slice excludes the terminator.
func readCSIParams(i *astikit.BytesIterator) ([]byte, error) {
	arg := make([]byte, 0, csiParamCapacity)
	for {
		b, err := nextByte(i, "CSI parameter")
		if err != nil {
			return nil, err
		}
		if b == csiParamTerminator {
			return arg, nil
		}
		if len(arg) == csiParamCapacity-1 {
			return nil, fmt.Errorf("isdb: CSI parameters exceed %d bytes: %w", csiParamCapacity-1, ErrParameterOverflow)
		}
		arg = append(arg, b)
	}
}

// parseNumericParams splits arg into decimal digit runs separated by ';'.
// An empty run counts as zero.
func parseNumericParams(arg []byte) ([]int, error) {
	if len(arg) == 0 {
		return nil, nil
	}
	runs := bytes.Split(arg, []byte{csiParamSeparator})
	ps := make([]int, 0, len(runs))
	for _, r := range runs {
		v := 0
		for _, b := range r {
			if b < '0' || b > '9' {
				return nil, fmt.Errorf("isdb: invalid CSI parameter byte 0x%02x", b)
			}
			v = v*10 + int(b-'0')
		}
		ps = append(ps, v)
	}
	return ps, nil
}

// parseCSI reads a control sequence and runs it. Only a parameter overflow or
// a truncated sequence fail the statement, malformed parameters skip the
// command.
func (d *Decoder) parseCSI(i *astikit.BytesIterator) error {
	arg, err := readCSIParams(i)
	if err != nil {
		return err
	}
	f, err := nextByte(i, "CSI final byte")
	if err != nil {
		return err
	}

	if f == csiSWF {
		if err = d.setWritingFormat(arg); err != nil {
			d.l.Debugw("skipping CSI command",
				"name", csiName(f),
				"error", err,
			)
		}
		return nil
	}

	n, ok := csiArity[f]
	if !ok {
		d.l.Debugw("unsupported CSI command",
			"name", csiName(f),
			"parameters", string(arg),
		)
		return nil
	}

	ps, err := parseNumericParams(arg)
	if err == nil && len(ps) < n {
		err = fmt.Errorf("isdb: %s expects %d parameters, got %d", csiName(f), n, len(ps))
	}
	if err != nil {
		d.l.Debugw("skipping CSI command",
			"name", csiName(f),
			"error", err,
		)
		return nil
	}

	if f == csiRCS && ps[0] > maxPaletteColumn {
		d.l.Debugw("skipping CSI command",
			"name", csiName(f),
			"error", fmt.Errorf("isdb: raster color %d out of range", ps[0]),
		)
		return nil
	}

	c := d.ctx
	ls := &c.State.Layout
	switch f {
	case csiCCC:
		ls.CCC = Composition(ps[0])
	case csiSDF:
		ls.DisplayArea.W = ps[0]
		ls.DisplayArea.H = ps[1]
	case csiSSM:
		ls.FontSize = ps[0]
	case csiSDP:
		ls.DisplayArea.X = ps[0]
		ls.DisplayArea.Y = ps[1]
	case csiRCS:
		c.RasterColor = PaletteColor(c.State.ClutHighIdx, uint8(ps[0]))
	case csiSHS:
		ls.CellSpacing.Col = ps[0]
	case csiSVS:
		ls.CellSpacing.Row = ps[0]
	case csiACPS:
		ls.ACPS = [2]int{ps[0], ps[1]}
	}
	d.l.Debugw("command",
		"name", csiName(f),
		"parameters", ps,
	)
	return nil
}

// setWritingFormat handles both SWF forms: a bare "P1" selects a canonical
// format, "P1;[P2;]P3[;P4]" adds the character size class and the number of
// characters per line and of lines.
func (d *Decoder) setWritingFormat(arg []byte) error {
	c := d.ctx
	ls := &c.State.Layout

	ps, err := parseNumericParams(arg)
	if err != nil {
		return err
	}
	if len(ps) == 0 {
		return fmt.Errorf("isdb: SWF without parameters")
	}
	ls.Format = WritingFormat(ps[0])
	if len(ps) == 1 {
		d.l.Debugw("command",
			"name", "SWF",
			"format", ls.Format,
		)
		return nil
	}

	rest := ps[1:]
	if len(rest) >= 3 {
		ls.FontSizeClass = FontSizeClass(rest[0])
		rest = rest[1:]
	}
	c.NbChar = rest[0]
	if len(rest) > 1 {
		c.NbLine = rest[1]
	}
	d.l.Debugw("command",
		"name", "SWF",
		"format", ls.Format,
		"font_size_class", ls.FontSizeClass,
		"characters", c.NbChar,
		"lines", c.NbLine,
	)
	return nil
}
