package teststreaming

// PES data payloads carrying ARIB STD-B24 data groups.

const (
	dataIdentifierSync  = 0x80
	dataIdentifierAsync = 0x81
	privateStreamID     = 0xFF
	unitSeparator       = 0x1F
	unitStatementBody   = 0x20

	groupManagement = 0x00
	groupStatement  = 0x01
)

func u24(n int) []byte {
	return []byte{byte(n >> 16), byte(n >> 8), byte(n)}
}

func dataGroup(id byte, body []byte) []byte {
	bs := []byte{
		dataIdentifierSync, privateStreamID, 0xF0,
		id << 2, 0x00, 0x00, byte(len(body) >> 8), byte(len(body)),
	}
	bs = append(bs, body...)
	// CRC_16 is not checked by the decoder
	return append(bs, 0x00, 0x00)
}

// ManagementPES announces a single language in free time mode.
func ManagementPES(lang string) []byte {
	body := []byte{0x00, 0x01, 0x00}
	body = append(body, lang[:3]...)
	// 8-bit code, no roll-up
	body = append(body, 0x00)
	return dataGroup(groupManagement, body)
}

// StatementPES carries text as a single statement body data unit.
func StatementPES(text string) []byte {
	unit := append([]byte{unitSeparator, unitStatementBody}, u24(len(text))...)
	unit = append(unit, text...)

	body := append([]byte{0x00}, u24(len(unit))...)
	body = append(body, unit...)
	return dataGroup(groupStatement, body)
}

// SuperimposePES is StatementPES for an asynchronous superimpose stream.
func SuperimposePES(text string) []byte {
	bs := StatementPES(text)
	bs[0] = dataIdentifierAsync
	return bs
}
