package probers

import (
	"context"
	"io"

	"github.com/flavioribeiro/isdbcc/internal/controllers"
	"github.com/flavioribeiro/isdbcc/internal/entities"
	"github.com/flavioribeiro/isdbcc/internal/mapper"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type SrtMpegTs struct {
	c             *entities.Config
	l             *zap.SugaredLogger
	srtController *controllers.SRTController
	p             *mpegTSProbe
}

type ResultSrtMpegTs struct {
	fx.Out
	SrtMpegTsProber Prober `group:"probers"`
}

func NewSrtMpegTs(c *entities.Config, l *zap.SugaredLogger, srtController *controllers.SRTController, m *mapper.Mapper) ResultSrtMpegTs {
	return ResultSrtMpegTs{
		SrtMpegTsProber: &SrtMpegTs{
			c:             c,
			l:             l,
			srtController: srtController,
			p:             &mpegTSProbe{l: l, m: m},
		},
	}
}

func (c *SrtMpegTs) Match(req *entities.RequestParams) bool {
	return req.TSPath == "" && req.SRTHost != ""
}

// StreamInfo connects to the SRT stream and probe N packets to discovery the media properties.
func (c *SrtMpegTs) StreamInfo(req *entities.RequestParams) (*entities.StreamInfo, error) {
	r, w := io.Pipe()
	defer r.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srtConnection, err := c.srtController.Connect(cancel, req)
	if err != nil {
		w.Close()
		return nil, err
	}

	go c.srtController.Pipe(srtConnection, w, c.c.ProbingSize)

	return c.p.streamInfo(ctx, r, 0)
}
