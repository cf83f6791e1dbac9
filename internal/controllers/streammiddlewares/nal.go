package streammiddlewares

import (
	"bytes"
	"errors"
)

// Rec. ITU-T H.264 (08/2021) p.65
const nalUnitTypeSEI = 6

// user_data_registered_itu_t_t35, carries CEA-708 captions
// ref ANSI/SCTE 128-1 2020
const seiPayloadTypeUserDataRegistered = 4

var errForbiddenZeroBit = errors.New("forbidden_zero_bit is not 0")
var errTruncatedSEI = errors.New("truncated sei message")

var startCode = []byte{0x00, 0x00, 0x01}

// splitNALUs splits an Annex B byte stream into NAL units.
func splitNALUs(data []byte) [][]byte {
	raw := bytes.Split(data, startCode)
	if len(raw) < 2 {
		return nil
	}
	var nalus [][]byte
	for _, nal := range raw[1:] {
		if len(nal) > 0 {
			nalus = append(nalus, nal)
		}
	}
	return nalus
}

func nalUnitType(nal []byte) (byte, error) {
	if nal[0]>>7&0x01 != 0 {
		return 0, errForbiddenZeroBit
	}
	return nal[0] & 0x1f, nil
}

// rbsp drops the header byte and the emulation prevention bytes.
func rbsp(nal []byte) []byte {
	out := make([]byte, 0, len(nal))
	for i := 1; i < len(nal); i++ {
		if i+2 < len(nal) && nal[i] == 0x00 && nal[i+1] == 0x00 && nal[i+2] == 0x03 {
			out = append(out, 0x00, 0x00)
			i += 2
			continue
		}
		out = append(out, nal[i])
	}
	return out
}

type seiMessage struct {
	payloadType int
	payload     []byte
}

// readSEIValue reads a ff-extended value of the sei message header.
func readSEIValue(b []byte, offset int) (int, int, error) {
	v := 0
	for {
		if offset >= len(b) {
			return 0, 0, errTruncatedSEI
		}
		v += int(b[offset])
		if b[offset] != 0xff {
			return v, offset + 1, nil
		}
		offset++
	}
}

// parseSEI reads the first sei message of a sei rbsp.
func parseSEI(b []byte) (seiMessage, error) {
	payloadType, offset, err := readSEIValue(b, 0)
	if err != nil {
		return seiMessage{}, err
	}
	payloadSize, offset, err := readSEIValue(b, offset)
	if err != nil {
		return seiMessage{}, err
	}
	end := offset + payloadSize
	if end > len(b) {
		end = len(b)
	}
	return seiMessage{payloadType: payloadType, payload: b[offset:end]}, nil
}
