package isdb

// Builders for synthetic synchronized PES payloads.

func u24(n int) []byte {
	return []byte{byte(n >> 16), byte(n >> 8), byte(n)}
}

func dataUnit(param byte, body []byte) []byte {
	bs := append([]byte{unitSeparator, param}, u24(len(body))...)
	return append(bs, body...)
}

func statementData(units ...[]byte) []byte {
	var loop []byte
	for _, u := range units {
		loop = append(loop, u...)
	}
	bs := append([]byte{0x00}, u24(len(loop))...)
	return append(bs, loop...)
}

func dataGroup(id byte, body []byte) []byte {
	bs := []byte{id << 2, 0x00, 0x00, byte(len(body) >> 8), byte(len(body))}
	bs = append(bs, body...)
	// CRC
	return append(bs, 0x00, 0x00)
}

func pesPayload(group []byte) []byte {
	return append([]byte{dataIdentifierSync, privateStreamID, 0xF0}, group...)
}

// statementPayload wraps a single statement body for language 1.
func statementPayload(body []byte) []byte {
	return pesPayload(dataGroup(0x01, statementData(dataUnit(unitStatementBody, body))))
}

func managementPayload(body []byte) []byte {
	return pesPayload(dataGroup(0x00, body))
}

func csi(params string, final byte) []byte {
	bs := append([]byte{0x9B}, params...)
	return append(bs, csiParamTerminator, final)
}
