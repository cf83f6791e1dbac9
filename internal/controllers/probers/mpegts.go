package probers

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/asticode/go-astits"
	"github.com/flavioribeiro/isdbcc/internal/entities"
	"github.com/flavioribeiro/isdbcc/internal/mapper"
	"go.uber.org/zap"
)

// mpegTSProbe demuxes an MPEG-TS until the first PMT.
type mpegTSProbe struct {
	l *zap.SugaredLogger
	m *mapper.Mapper
}

// streamInfo reads at most maxData demuxed data from r, zero means until the
// end of the stream.
func (p *mpegTSProbe) streamInfo(ctx context.Context, r io.Reader, maxData int) (*entities.StreamInfo, error) {
	p.l.Infow("probing has started demuxing")

	mpegTSDemuxer := astits.NewDemuxer(ctx, r)
	for n := 0; maxData == 0 || n < maxData; n++ {
		select {
		case <-ctx.Done():
			p.l.Errorw("probing has stopped",
				"error", ctx.Err(),
			)
			return nil, entities.ErrMpegTSNoProgram
		default:
		}

		mpegTSDemuxData, err := mpegTSDemuxer.NextData()
		if err != nil {
			if errors.Is(err, astits.ErrNoMorePackets) || errors.Is(err, context.Canceled) {
				break
			}
			p.l.Errorw("failed to demux mpeg-ts",
				"error", err,
			)
			return nil, fmt.Errorf("%w: %s", entities.ErrMpegTS, err)
		}

		if mpegTSDemuxData.PMT != nil {
			si := p.m.FromPMTToStreamInfo(mpegTSDemuxData.PMT)
			p.l.Infow("done probing",
				"streams", len(si.Streams),
				"captions", len(si.CaptionStreams()),
			)
			return si, nil
		}
	}
	return nil, entities.ErrMpegTSNoProgram
}
