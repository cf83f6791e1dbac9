package teststreaming

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/asticode/go-astits"
	"github.com/flavioribeiro/isdbcc/internal/entities"
)

const (
	streamIDPrivate1 = 0xBD
	streamIDAudio    = 0xC0
	streamIDVideo    = 0xE0

	streamTypePrivateData astits.StreamType = 0x06
)

// access unit delimiter
var h264AccessUnit = []byte{0x00, 0x00, 0x00, 0x01, 0x09, 0xF0}

// Caption is a statement sent at PTS At.
type Caption struct {
	At   time.Duration
	Text string
}

type testStream struct {
	file     string
	es       []astits.PMTElementaryStream
	language string
	// management data group is sent at this PTS
	managementAt time.Duration
	captions     []Caption

	expectedStreams []entities.Stream
	expectedCues    []entities.Cue
}

// Generate muxes the stream into dir and returns the file path.
func (t *testStream) Generate(dir string) (string, error) {
	path := filepath.Join(dir, t.file)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	mx := astits.NewMuxer(context.Background(), f)
	for _, es := range t.es {
		if err := mx.AddElementaryStream(es); err != nil {
			return "", err
		}
	}
	mx.SetPCRPID(t.es[0].ElementaryPID)

	if _, err := mx.WriteTables(); err != nil {
		return "", err
	}

	for _, es := range t.es {
		if err := t.writeStream(mx, es); err != nil {
			return "", err
		}
	}
	return path, nil
}

func (t *testStream) writeStream(mx *astits.Muxer, es astits.PMTElementaryStream) error {
	switch {
	case es.StreamType == streamTypePrivateData:
		if t.language != "" {
			if err := writePES(mx, es.ElementaryPID, streamIDPrivate1, t.managementAt, ManagementPES(t.language)); err != nil {
				return err
			}
		}
		for _, c := range t.captions {
			if err := writePES(mx, es.ElementaryPID, streamIDPrivate1, c.At, StatementPES(c.Text)); err != nil {
				return err
			}
		}
	case es.StreamType.IsVideo():
		return writePES(mx, es.ElementaryPID, streamIDVideo, t.managementAt, h264AccessUnit)
	case es.StreamType.IsAudio():
		return writePES(mx, es.ElementaryPID, streamIDAudio, t.managementAt, []byte{0xFF, 0xF1, 0x50, 0x80, 0x01, 0x7F, 0xFC})
	}
	return nil
}

func writePES(mx *astits.Muxer, pid uint16, streamID uint8, pts time.Duration, data []byte) error {
	_, err := mx.WriteData(&astits.MuxerData{
		PID: pid,
		PES: &astits.PESData{
			Header: &astits.PESHeader{
				StreamID: streamID,
				OptionalHeader: &astits.PESOptionalHeader{
					MarkerBits:      2,
					PTSDTSIndicator: astits.PTSDTSIndicatorOnlyPTS,
					PTS:             &astits.ClockReference{Base: pts.Milliseconds() * 90},
				},
			},
			Data: data,
		},
	})
	return err
}

func (t *testStream) ExpectedStreams() []entities.Stream {
	return t.expectedStreams
}

func (t *testStream) ExpectedCues() []entities.Cue {
	return t.expectedCues
}
