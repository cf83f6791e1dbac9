package streammiddlewares

import (
	"testing"

	"github.com/asticode/go-astits"
	"github.com/flavioribeiro/isdbcc/internal/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSplitNALUs(t *testing.T) {
	data := []byte{
		0x00, 0x00, 0x00, 0x01, 0x09, 0xF0,
		0x00, 0x00, 0x01, 0x06, 0x05, 0x01, 0xAA, 0x80,
	}

	nalus := splitNALUs(data)
	require.Len(t, nalus, 2)
	assert.Equal(t, []byte{0x09, 0xF0}, nalus[0])
	assert.Equal(t, []byte{0x06, 0x05, 0x01, 0xAA, 0x80}, nalus[1])

	assert.Nil(t, splitNALUs([]byte{0x01, 0x02}))
}

func TestNALUnitType(t *testing.T) {
	typ, err := nalUnitType([]byte{0x06})
	require.NoError(t, err)
	assert.Equal(t, byte(nalUnitTypeSEI), typ)

	_, err = nalUnitType([]byte{0x86})
	assert.ErrorIs(t, err, errForbiddenZeroBit)
}

func TestRBSP(t *testing.T) {
	assert.Equal(t, []byte{0x00, 0x00, 0x01, 0x02}, rbsp([]byte{0x06, 0x00, 0x00, 0x03, 0x01, 0x02}))
	assert.Equal(t, []byte{0x01}, rbsp([]byte{0x06, 0x01}))
}

func TestParseSEI(t *testing.T) {
	tests := []struct {
		name        string
		data        []byte
		payloadType int
		payload     []byte
		err         error
	}{
		{
			name:        "user data registered",
			data:        []byte{0x04, 0x03, 0xB5, 0x00, 0x31, 0x80},
			payloadType: 4,
			payload:     []byte{0xB5, 0x00, 0x31},
		},
		{
			name:        "extended payload type",
			data:        []byte{0xFF, 0x01, 0x01, 0xAA},
			payloadType: 256,
			payload:     []byte{0xAA},
		},
		{
			name:        "payload size beyond the rbsp",
			data:        []byte{0x05, 0x10, 0xAA},
			payloadType: 5,
			payload:     []byte{0xAA},
		},
		{
			name: "missing payload size",
			data: []byte{0x04},
			err:  errTruncatedSEI,
		},
		{
			name: "truncated payload type",
			data: []byte{0xFF, 0xFF},
			err:  errTruncatedSEI,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			sei, err := parseSEI(tt.data)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.payloadType, sei.payloadType)
			assert.Equal(t, tt.payload, sei.payload)
		})
	}
}

func TestEIA608_ActWithoutCaptions(t *testing.T) {
	mw := newEIA608Middleware(zap.NewNop().Sugar(), newTestMapper(t))

	called := false
	sp := &entities.StreamParameters{
		ServerStreamInfo: &entities.StreamInfo{Streams: []entities.Stream{
			{Codec: entities.H264, Type: entities.VideoType, Id: 256},
		}},
		OnCue: func(entities.Cue) error {
			called = true
			return nil
		},
	}

	// access unit delimiter and a non caption sei
	data := &astits.DemuxerData{
		PID: 256,
		PES: &astits.PESData{
			Header: &astits.PESHeader{},
			Data: []byte{
				0x00, 0x00, 0x00, 0x01, 0x09, 0xF0,
				0x00, 0x00, 0x01, 0x06, 0x05, 0x01, 0xAA, 0x80,
			},
		},
	}
	require.NoError(t, mw.Act(data, sp))
	assert.False(t, called)
}

func TestEIA608_ActForbiddenBit(t *testing.T) {
	mw := newEIA608Middleware(zap.NewNop().Sugar(), newTestMapper(t))
	sp := &entities.StreamParameters{
		ServerStreamInfo: &entities.StreamInfo{Streams: []entities.Stream{
			{Codec: entities.H264, Type: entities.VideoType, Id: 256},
		}},
	}

	data := &astits.DemuxerData{
		PID: 256,
		PES: &astits.PESData{Header: &astits.PESHeader{}, Data: []byte{0x00, 0x00, 0x01, 0x86}},
	}
	assert.ErrorIs(t, mw.Act(data, sp), errForbiddenZeroBit)
}
