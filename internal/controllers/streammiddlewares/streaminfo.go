package streammiddlewares

import (
	"github.com/asticode/go-astits"
	"github.com/flavioribeiro/isdbcc/internal/entities"
	"github.com/flavioribeiro/isdbcc/internal/mapper"
	"go.uber.org/fx"
)

type streamInfoMiddleware struct {
	m *mapper.Mapper
}

type StreamInfoResponse struct {
	fx.Out
	StreamInfoMiddleware entities.StreamMiddleware `group:"middlewares"`
}

// NewStreamInfo creates a new StreamInfo middleware
func NewStreamInfo(m *mapper.Mapper) StreamInfoResponse {
	return StreamInfoResponse{
		StreamInfoMiddleware: &streamInfoMiddleware{m: m},
	}
}

// Act sends the streams of every PMT as metadata messages
func (s *streamInfoMiddleware) Act(mpegTSDemuxData *astits.DemuxerData, sp *entities.StreamParameters) error {
	if mpegTSDemuxData.PMT == nil || sp.OnMessage == nil {
		return nil
	}

	msgs := s.m.FromStreamInfoToEntityMessages(s.m.FromPMTToStreamInfo(mpegTSDemuxData.PMT))
	for _, m := range msgs {
		if err := sp.OnMessage(m); err != nil {
			return err
		}
	}
	return nil
}
