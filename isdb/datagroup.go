package isdb

import (
	"fmt"

	"github.com/asticode/go-astikit"
)

const (
	cueLanguage       = "NA"
	cueSource         = "ISDB"
	superimposeSource = "ISDB-superimpose"
	cueEncoding       = "UTF-8"

	// widens zero length cues so they stay displayable
	cueMinDuration = 2
)

// DataGroupHeader is the fixed part of a caption data group.
type DataGroupHeader struct {
	ID             uint8 // 6 bits
	Version        uint8 // 2 bits
	LinkNumber     uint8
	LastLinkNumber uint8
	Size           int
}

// Language returns the low nibble of the id: 0 is caption management data,
// 1..7 are caption statement languages.
func (h DataGroupHeader) Language() uint8 {
	return h.ID & 0x0F
}

// GroupB reports whether the group belongs to the B set (ids 0x20..0x28).
func (h DataGroupHeader) GroupB() bool {
	return h.ID&0x20 != 0
}

func parseDataGroupHeader(i *astikit.BytesIterator) (h DataGroupHeader, err error) {
	var bs []byte
	if bs, err = nextBytes(i, 3, "data group header"); err != nil {
		return
	}
	h.ID = bs[0] >> 2
	h.Version = bs[0] & 0x03
	h.LinkNumber = bs[1]
	h.LastLinkNumber = bs[2]

	if h.Size, err = nextUint16(i, "data group size"); err != nil {
		return
	}
	return
}

func (d *Decoder) parseDataGroup(i *astikit.BytesIterator) (*Cue, error) {
	h, err := parseDataGroupHeader(i)
	if err != nil {
		return nil, err
	}

	d.l.Debugw("data group",
		"id", h.ID,
		"group_b", h.GroupB(),
		"version", h.Version,
		"link_number", h.LinkNumber,
		"last_link_number", h.LastLinkNumber,
		"size", h.Size,
	)

	body, err := nextBytes(i, h.Size, "data group body")
	if err != nil {
		return nil, err
	}

	if d.ctx.PrevTimestamp > d.ctx.Timestamp {
		d.ctx.PrevTimestamp = d.ctx.Timestamp
	}

	// sub-parsers work on the declared group only, the outer cursor is
	// already past it whatever they consume
	bi := astikit.NewBytesIterator(body)
	switch lang := h.Language(); {
	case lang == 0:
		err = d.parseCaptionManagementData(bi)
	case lang < 8:
		d.l.Debugw("caption statement data",
			"language", lang,
		)
		err = d.parseCaptionStatementData(bi, lang)
	default:
		d.l.Infow("ignoring data group",
			"error", fmt.Errorf("%w: 0x%02x", ErrInvalidDataGroup, h.ID),
		)
	}

	cue := d.flush()
	if err != nil {
		return cue, fmt.Errorf("isdb: parsing data group 0x%02x failed: %w", h.ID, err)
	}

	// TODO: verify the CRC_16 once the check polynomial is wired in
	if _, crcErr := i.NextBytesNoCopy(2); crcErr != nil {
		d.l.Debugw("data group without CRC")
	}
	return cue, nil
}

// flush turns the accumulated text into a cue.
func (d *Decoder) flush() *Cue {
	c := d.ctx
	if c.Text.Len() == 0 {
		return nil
	}

	cue := &Cue{
		Text:     c.Text.String(),
		Start:    c.PrevTimestamp,
		End:      c.Timestamp,
		Language: cueLanguage,
		Source:   d.source,
		Encoding: cueEncoding,
	}
	if cue.Start == cue.End {
		cue.End += cueMinDuration
	}

	c.Text.Reset()
	c.State.Layout.ResetPen()
	c.PrevTimestamp = c.Timestamp

	if d.collector != nil {
		d.collector.Collect(*cue)
	}
	return cue
}
