package streamers

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/asticode/go-astits"
	"github.com/flavioribeiro/isdbcc/internal/entities"
	"github.com/pion/webrtc/v3/pkg/media"
	"go.uber.org/zap"
)

// mpegTSDemux feeds every demuxed data of an MPEG-TS to the video track and
// the middlewares.
type mpegTSDemux struct {
	l *zap.SugaredLogger

	middlewares []entities.StreamMiddleware
}

func (c *mpegTSDemux) stream(sp *entities.StreamParameters, r io.Reader) {
	// reading from the mpeg-ts reader to the demuxer
	mpegTSDemuxer := astits.NewDemuxer(sp.Ctx, r)

	c.l.Infow("streaming has started")

	for {
		select {
		case <-sp.Ctx.Done():
			if errors.Is(sp.Ctx.Err(), context.Canceled) {
				c.l.Infow("streaming has stopped due cancellation")
				return
			}
			c.l.Errorw("streaming has stopped due errors",
				"error", sp.Ctx.Err(),
			)
			return
		default:
			// fetching mpeg-ts data
			// ref https://tsduck.io/download/docs/mpegts-introduction.pdf
			mpegTSDemuxData, err := mpegTSDemuxer.NextData()
			if err != nil {
				if errors.Is(err, astits.ErrNoMorePackets) {
					c.l.Infow("streaming has finished")
					return
				}
				c.l.Errorw("failed to demux mpeg-ts",
					"error", err,
				)
				return
			}

			if err := c.writeVideo(mpegTSDemuxData, sp); err != nil {
				c.l.Errorw("failed to write an mpeg-ts to web rtc",
					"error", err,
				)
				return
			}

			// calling all registered middlewares
			for _, m := range c.middlewares {
				if err := m.Act(mpegTSDemuxData, sp); err != nil {
					c.l.Errorw("middleware error",
						"error", err,
					)
				}
			}
		}
	}
}

// writeVideo writes h264 access units to the webrtc video track, if any.
func (c *mpegTSDemux) writeVideo(mpegTSDemuxData *astits.DemuxerData, sp *entities.StreamParameters) error {
	if sp.VideoTrack == nil || mpegTSDemuxData.PES == nil || sp.ServerStreamInfo == nil {
		return nil
	}

	for _, v := range sp.ServerStreamInfo.VideoStreams() {
		if v.Id != mpegTSDemuxData.PID || v.Codec != entities.H264 {
			continue
		}

		if err := sp.VideoTrack.WriteSample(media.Sample{Data: mpegTSDemuxData.PES.Data, Duration: time.Second / 30}); err != nil {
			return err
		}
	}
	return nil
}

func closeSession(sp *entities.StreamParameters) {
	if sp.WebRTCConn != nil {
		sp.WebRTCConn.Close()
	}
	sp.Cancel()
}
