package streamers

import (
	"io"

	"github.com/flavioribeiro/isdbcc/internal/controllers"
	"github.com/flavioribeiro/isdbcc/internal/entities"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type SRTMpegTSStreamer struct {
	c             *entities.Config
	l             *zap.SugaredLogger
	srtController *controllers.SRTController
	d             *mpegTSDemux
}

type SRTMpegTSStreamerParams struct {
	fx.In
	C             *entities.Config
	L             *zap.SugaredLogger
	SRTController *controllers.SRTController

	Middlewares []entities.StreamMiddleware `group:"middlewares"`
}

type ResultSRTMpegTSStreamer struct {
	fx.Out
	SRTMpegTSStreamer Streamer `group:"streamers"`
}

func NewSRTMpegTSStreamer(p SRTMpegTSStreamerParams) ResultSRTMpegTSStreamer {
	return ResultSRTMpegTSStreamer{
		SRTMpegTSStreamer: &SRTMpegTSStreamer{
			c:             p.C,
			l:             p.L,
			srtController: p.SRTController,
			d:             &mpegTSDemux{l: p.L, middlewares: p.Middlewares},
		},
	}
}

func (c *SRTMpegTSStreamer) Match(req *entities.RequestParams) bool {
	return req.TSPath == "" && req.SRTHost != ""
}

func (c *SRTMpegTSStreamer) Stream(sp *entities.StreamParameters) {
	defer closeSession(sp)

	srtConnection, err := c.srtController.Connect(sp.Cancel, sp.RequestParams)
	if err != nil {
		c.l.Errorw("streaming has stopped due errors",
			"error", err,
		)
		return
	}
	r, w := io.Pipe()
	defer r.Close()

	go c.srtController.Pipe(srtConnection, w, 0)

	c.d.stream(sp, r)
}
