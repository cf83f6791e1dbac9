package streammiddlewares

import (
	"testing"

	"github.com/asticode/go-astits"
	"github.com/flavioribeiro/isdbcc/internal/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamInfo_Act(t *testing.T) {
	mw := NewStreamInfo(newTestMapper(t)).StreamInfoMiddleware

	var msgs []entities.Message
	sp := &entities.StreamParameters{
		OnMessage: func(m entities.Message) error {
			msgs = append(msgs, m)
			return nil
		},
	}

	require.NoError(t, mw.Act(&astits.DemuxerData{PID: 256, PES: &astits.PESData{}}, sp))
	assert.Empty(t, msgs)

	require.NoError(t, mw.Act(&astits.DemuxerData{
		PID: 4096,
		PMT: &astits.PMTData{
			ElementaryStreams: []*astits.PMTElementaryStream{
				{ElementaryPID: 256, StreamType: astits.StreamTypeH264Video},
				{ElementaryPID: 257, StreamType: astits.StreamTypeAACAudio},
			},
		},
	}, sp))

	assert.Equal(t, []entities.Message{
		{Type: entities.MessageTypeMetadata, Message: "h264 video (pid 256)"},
		{Type: entities.MessageTypeMetadata, Message: "aac audio (pid 257)"},
	}, msgs)
}
