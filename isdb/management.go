package isdb

import (
	"github.com/asticode/go-astikit"
)

// display mode flags announcing a display condition byte
const (
	dmfConditionalA = 0xC
	dmfConditionalB = 0xD
	dmfConditionalC = 0xE
)

// display condition: attenuation due to rain
const displayConditionRain = 0x00

func bcd(b byte) int {
	return int(b>>4)*10 + int(b&0x0F)
}

func (d *Decoder) parseCaptionManagementData(i *astikit.BytesIterator) error {
	c := d.ctx

	b, err := nextByte(i, "TMD")
	if err != nil {
		return err
	}
	c.ClockMode = ClockMode(b >> 6)
	d.l.Debugw("caption management data",
		"tmd", c.ClockMode.String(),
	)

	if c.ClockMode == ClockModeOffsetTime {
		// 9 BCD digits: hh mm ss mmm, the last nibble pair's high digit is reserved
		bs, err := nextBytes(i, 5, "OTM")
		if err != nil {
			return err
		}
		c.OffsetTime = OffsetTime{
			Hour:        bcd(bs[0]),
			Minute:      bcd(bs[1]),
			Second:      bcd(bs[2]),
			Millisecond: int(bs[3]>>4)*100 + int(bs[3]&0x0F)*10 + int(bs[4]&0x0F),
		}
		d.l.Debugw("offset time",
			"hour", c.OffsetTime.Hour,
			"minute", c.OffsetTime.Minute,
			"second", c.OffsetTime.Second,
			"millisecond", c.OffsetTime.Millisecond,
		)
	}

	if b, err = nextByte(i, "num_languages"); err != nil {
		return err
	}
	c.NbLang = int(b)
	c.Languages = c.Languages[:0]

	for n := 0; n < c.NbLang; n++ {
		lang, err := d.parseLanguage(i)
		if err != nil {
			return err
		}
		c.Languages = append(c.Languages, lang)
		d.l.Debugw("caption language",
			"tag", lang.Tag,
			"dmf", lang.DMF,
			"code", lang.Code,
			"format", lang.Format,
			"tcs", lang.TCS,
			"rollup_mode", lang.RollupMode,
		)

		if n == 0 {
			// display on reception: 00 automatic display
			c.State.AutoDisplay = lang.DMF>>2 == 0
			c.State.RollupMode = lang.RollupMode == 1
		}
	}
	return nil
}

func (d *Decoder) parseLanguage(i *astikit.BytesIterator) (lang Language, err error) {
	c := d.ctx

	var b byte
	if b, err = nextByte(i, "language descriptor"); err != nil {
		return
	}
	lang.Tag = b >> 5
	lang.DMF = b & 0x0F
	c.DMF = lang.DMF

	switch lang.DMF {
	case dmfConditionalA, dmfConditionalB, dmfConditionalC:
		if b, err = nextByte(i, "DC"); err != nil {
			return
		}
		lang.DisplayCondition = b
		lang.HasDisplayCondition = true
		c.DC = b
		if b == displayConditionRain {
			d.l.Debugw("display condition: attenuation due to rain")
		}
	}

	var bs []byte
	if bs, err = nextBytes(i, 3, "ISO_639_language_code"); err != nil {
		return
	}
	lang.Code = string(bs)

	if b, err = nextByte(i, "format"); err != nil {
		return
	}
	lang.Format = b >> 4
	lang.TCS = (b >> 2) & 0x03
	lang.RollupMode = b & 0x03
	return
}
