package isdb

import (
	"fmt"

	"github.com/asticode/go-astikit"
)

// COL parameter introducing a CLUT bank selection
const colPaletteBank = 0x20

// execCommand runs one control code. Parameter bytes are taken from i; a
// missing parameter fails the statement with ErrTruncatedField.
func (d *Decoder) execCommand(i *astikit.BytesIterator, cmd Command) error {
	c := d.ctx
	ls := &c.State.Layout

	switch cmd.Kind {
	case KindNUL, KindBEL:
	case KindAPB, KindAPF, KindAPD, KindAPU, KindCS, KindAPR, KindCAN, KindRS, KindUS, KindESC:
		d.l.Debugw("command",
			"name", cmd.Kind.String(),
		)
	case KindLS0:
		c.State.Designation.GL = 0
		d.l.Debugw("command",
			"name", cmd.Kind.String(),
		)
	case KindLS1:
		c.State.Designation.GL = 1
		d.l.Debugw("command",
			"name", cmd.Kind.String(),
		)
	case KindSS2:
		c.State.Designation.SingleShift = 2
		d.l.Debugw("command",
			"name", cmd.Kind.String(),
		)
	case KindSS3:
		c.State.Designation.SingleShift = 3
		d.l.Debugw("command",
			"name", cmd.Kind.String(),
		)

	case KindAPS:
		bs, err := nextBytes(i, paramBytes[cmd.Kind], "APS parameters")
		if err != nil {
			return err
		}
		p1, p2 := int(bs[0]&0x3F), int(bs[1]&0x3F)
		move, err := ls.SetPosition(c.Text, p1, p2)
		if err != nil {
			return err
		}
		d.l.Debugw("command",
			"name", cmd.Kind.String(),
			"row", p1,
			"column", p2,
			"pen_move", move.String(),
		)

	case KindForeground:
		c.State.FG = PaletteEntry(cmd.Low())
	case KindSSZ:
		ls.FontScale = FontScale{X: 50, Y: 50}
	case KindMSZ:
		ls.FontScale = FontScale{X: 200, Y: 200}
	case KindNSZ:
		ls.FontScale = FontScale{X: 100, Y: 100}

	case KindCOL:
		return d.execCOL(i)
	case KindCSI:
		return d.parseCSI(i)

	case KindPAPF, KindSZX, KindFLC, KindCDC, KindPOL, KindWMM, KindMACRO, KindHLC, KindRPC, KindTIME:
		if err := skip(i, paramBytes[cmd.Kind], cmd.Kind.String()+" parameters"); err != nil {
			return err
		}
		d.l.Debugw("command",
			"name", cmd.Kind.String(),
		)
	case KindSPL, KindSTL:
		d.l.Debugw("command",
			"name", cmd.Kind.String(),
		)

	default:
		d.l.Debugw("unknown command",
			"code", fmt.Sprintf("0x%02x", cmd.Code),
		)
	}
	return nil
}

func (d *Decoder) execCOL(i *astikit.BytesIterator) error {
	s := &d.ctx.State

	b, err := nextByte(i, "COL parameter")
	if err != nil {
		return err
	}
	if b == colPaletteBank {
		if b, err = nextByte(i, "COL palette"); err != nil {
			return err
		}
		s.ClutHighIdx = b & 0x0F
		d.l.Debugw("command",
			"name", "COL",
			"palette", s.ClutHighIdx,
		)
		return nil
	}

	col := PaletteEntry(b & 0x0F)
	switch b >> 4 {
	case 0x4:
		s.FG = col
	case 0x5:
		s.BG = col
	case 0x6:
		s.HalfFG = col
	case 0x7:
		s.HalfBG = col
	default:
		d.l.Debugw("unknown COL parameter",
			"parameter", fmt.Sprintf("0x%02x", b),
		)
	}
	return nil
}
