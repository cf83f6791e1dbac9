package isdb

// CommandKind is the closed set of byte classes found in a statement body.
type CommandKind uint8

const (
	// text
	KindText CommandKind = iota
	KindSpace
	KindDelete
	KindReserved

	// C0
	KindNUL
	KindBEL
	KindAPB
	KindAPF
	KindAPD
	KindAPU
	KindCS
	KindAPR
	KindLS1
	KindLS0

	// C1 (0x1x)
	KindPAPF
	KindCAN
	KindSS2
	KindESC
	KindAPS
	KindSS3
	KindRS
	KindUS

	// colors and sizes (0x8x)
	KindForeground
	KindSSZ
	KindMSZ
	KindNSZ
	KindSZX

	// extended (0x9x)
	KindCOL
	KindFLC
	KindCDC
	KindPOL
	KindWMM
	KindMACRO
	KindHLC
	KindRPC
	KindSPL
	KindSTL
	KindCSI
	KindTIME

	KindUnknown
)

var kindNames = [...]string{
	KindText:       "TEXT",
	KindSpace:      "SP",
	KindDelete:     "DEL",
	KindReserved:   "RESERVED",
	KindNUL:        "NUL",
	KindBEL:        "BEL",
	KindAPB:        "APB",
	KindAPF:        "APF",
	KindAPD:        "APD",
	KindAPU:        "APU",
	KindCS:         "CS",
	KindAPR:        "APR",
	KindLS1:        "LS1",
	KindLS0:        "LS0",
	KindPAPF:       "PAPF",
	KindCAN:        "CAN",
	KindSS2:        "SS2",
	KindESC:        "ESC",
	KindAPS:        "APS",
	KindSS3:        "SS3",
	KindRS:         "RS",
	KindUS:         "US",
	KindForeground: "FG",
	KindSSZ:        "SSZ",
	KindMSZ:        "MSZ",
	KindNSZ:        "NSZ",
	KindSZX:        "SZX",
	KindCOL:        "COL",
	KindFLC:        "FLC",
	KindCDC:        "CDC",
	KindPOL:        "POL",
	KindWMM:        "WMM",
	KindMACRO:      "MACRO",
	KindHLC:        "HLC",
	KindRPC:        "RPC",
	KindSPL:        "SPL",
	KindSTL:        "STL",
	KindCSI:        "CSI",
	KindTIME:       "TIME",
	KindUnknown:    "UNKNOWN",
}

func (k CommandKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "UNKNOWN"
}

// IsControl reports whether the kind is dispatched to the command interpreter.
func (k CommandKind) IsControl() bool {
	return k >= KindNUL
}

// paramBytes is the number of fixed-width parameter bytes following a code.
// COL and CSI have variable-length parameters and are handled separately.
var paramBytes = map[CommandKind]int{
	KindPAPF:  1,
	KindAPS:   2,
	KindSZX:   1,
	KindFLC:   1,
	KindCDC:   3,
	KindPOL:   1,
	KindWMM:   3,
	KindMACRO: 1,
	KindHLC:   1,
	KindRPC:   1,
	KindTIME:  2,
}

// Command is one classified statement byte.
type Command struct {
	Kind CommandKind
	Code byte
}

// Low returns the low nibble of the code.
func (c Command) Low() uint8 {
	return c.Code & 0x0F
}

var c0Kinds = [16]CommandKind{
	0x0: KindNUL,
	0x1: KindUnknown, 0x2: KindUnknown, 0x3: KindUnknown, 0x4: KindUnknown,
	0x5: KindUnknown, 0x6: KindUnknown,
	0x7: KindBEL,
	0x8: KindAPB,
	0x9: KindAPF,
	0xA: KindAPD,
	0xB: KindAPU,
	0xC: KindCS,
	0xD: KindAPR,
	0xE: KindLS1,
	0xF: KindLS0,
}

var c1Kinds = [16]CommandKind{
	0x0: KindUnknown, 0x1: KindUnknown, 0x2: KindUnknown, 0x3: KindUnknown,
	0x4: KindUnknown, 0x5: KindUnknown,
	0x6: KindPAPF,
	0x7: KindUnknown,
	0x8: KindCAN,
	0x9: KindSS2,
	0xA: KindUnknown,
	0xB: KindESC,
	0xC: KindAPS,
	0xD: KindSS3,
	0xE: KindRS,
	0xF: KindUS,
}

var sizeKinds = [16]CommandKind{
	0x0: KindForeground, 0x1: KindForeground, 0x2: KindForeground, 0x3: KindForeground,
	0x4: KindForeground, 0x5: KindForeground, 0x6: KindForeground, 0x7: KindForeground,
	0x8: KindSSZ,
	0x9: KindMSZ,
	0xA: KindNSZ,
	0xB: KindSZX,
	0xC: KindUnknown, 0xD: KindUnknown, 0xE: KindUnknown, 0xF: KindUnknown,
}

var extKinds = [16]CommandKind{
	0x0: KindCOL,
	0x1: KindFLC,
	0x2: KindCDC,
	0x3: KindPOL,
	0x4: KindWMM,
	0x5: KindMACRO,
	0x6: KindUnknown,
	0x7: KindHLC,
	0x8: KindRPC,
	0x9: KindSPL,
	0xA: KindSTL,
	0xB: KindCSI,
	0xC: KindUnknown,
	0xD: KindTIME,
	0xE: KindUnknown,
	0xF: KindUnknown,
}

// Classify maps a statement byte to its command kind.
func Classify(b byte) Command {
	c := Command{Code: b}
	lo := b & 0x0F

	switch b >> 4 {
	case 0x0:
		c.Kind = c0Kinds[lo]
	case 0x1:
		c.Kind = c1Kinds[lo]
	case 0x8:
		c.Kind = sizeKinds[lo]
	case 0x9:
		c.Kind = extKinds[lo]
	default:
		switch b {
		case 0x20:
			c.Kind = KindSpace
		case 0x7F:
			c.Kind = KindDelete
		case 0xA0, 0xFF:
			c.Kind = KindReserved
		default:
			c.Kind = KindText
		}
	}
	return c
}
