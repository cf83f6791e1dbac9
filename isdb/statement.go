package isdb

import (
	"fmt"

	"github.com/asticode/go-astikit"
)

const (
	unitSeparator = 0x1F

	// data unit parameter of a statement body, other units (DRCS, bitmaps,
	// geometric) are skipped
	unitStatementBody = 0x20
)

// STM: presentation start time, 9 BCD digits
const statementTimeLength = 5

func (d *Decoder) parseCaptionStatementData(i *astikit.BytesIterator, lang uint8) error {
	b, err := nextByte(i, "TMD")
	if err != nil {
		return err
	}
	tmd := ClockMode(b >> 6)
	if tmd == ClockModeRealTime || tmd == ClockModeOffsetTime {
		if err = skip(i, statementTimeLength, "STM"); err != nil {
			return err
		}
	}

	n, err := nextUint24(i, "data_unit_loop_length")
	if err != nil {
		return err
	}
	loop, err := nextBytes(i, n, "data unit loop")
	if err != nil {
		return err
	}
	return d.parseDataUnits(astikit.NewBytesIterator(loop))
}

func (d *Decoder) parseDataUnits(i *astikit.BytesIterator) error {
	for bytesLeft(i) > 0 {
		if err := d.parseDataUnit(i); err != nil {
			return err
		}
	}
	return nil
}

func (d *Decoder) parseDataUnit(i *astikit.BytesIterator) error {
	bs, err := nextBytes(i, 2, "data unit header")
	if err != nil {
		return err
	}
	if bs[0] != unitSeparator {
		d.l.Debugw("unexpected unit separator",
			"unit_separator", bs[0],
		)
	}
	param := bs[1]

	n, err := nextUint24(i, "data_unit_size")
	if err != nil {
		return err
	}
	body, err := nextBytes(i, n, "data unit body")
	if err != nil {
		return err
	}

	switch param {
	case unitStatementBody:
		return d.parseStatement(body)
	default:
		d.l.Debugw("skipping data unit",
			"data_unit_parameter", fmt.Sprintf("0x%02x", param),
			"size", n,
		)
	}
	return nil
}

// parseStatement runs the command interpreter over a statement body.
func (d *Decoder) parseStatement(body []byte) error {
	i := astikit.NewBytesIterator(body)
	for bytesLeft(i) > 0 {
		b, _ := i.NextByte()
		cmd := Classify(b)

		switch {
		case cmd.Kind == KindReserved:
			d.l.Debugw("skipping reserved code",
				"code", fmt.Sprintf("0x%02x", b),
			)
		case cmd.Kind.IsControl():
			if err := d.execCommand(i, cmd); err != nil {
				return err
			}
		default:
			if err := d.appendText(b); err != nil {
				return err
			}
		}
	}
	return nil
}

// appendText passes a text byte through and moves the pen once per
// character, continuation bytes of a UTF-8 sequence do not move it.
func (d *Decoder) appendText(b byte) error {
	c := d.ctx
	if err := c.Text.AppendChar(b); err != nil {
		return err
	}
	if b < 0x80 || b >= 0xC0 {
		c.State.Layout.Advance()
		c.State.Designation.SingleShift = 0
	}
	return nil
}
