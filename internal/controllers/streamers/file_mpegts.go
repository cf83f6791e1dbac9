package streamers

import (
	"bufio"
	"os"

	"github.com/asticode/go-astikit"
	"github.com/flavioribeiro/isdbcc/internal/entities"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type FileMpegTSStreamer struct {
	c *entities.Config
	l *zap.SugaredLogger
	d *mpegTSDemux
}

type FileMpegTSStreamerParams struct {
	fx.In
	C *entities.Config
	L *zap.SugaredLogger

	Middlewares []entities.StreamMiddleware `group:"middlewares"`
}

type ResultFileMpegTSStreamer struct {
	fx.Out
	FileMpegTSStreamer Streamer `group:"streamers"`
}

func NewFileMpegTSStreamer(p FileMpegTSStreamerParams) ResultFileMpegTSStreamer {
	return ResultFileMpegTSStreamer{
		FileMpegTSStreamer: &FileMpegTSStreamer{
			c: p.C,
			l: p.L,
			d: &mpegTSDemux{l: p.L, middlewares: p.Middlewares},
		},
	}
}

func (c *FileMpegTSStreamer) Match(req *entities.RequestParams) bool {
	return req.TSPath != ""
}

// Stream demuxes the whole file, it returns at the end of the file or on cancellation.
func (c *FileMpegTSStreamer) Stream(sp *entities.StreamParameters) {
	closer := astikit.NewCloser()
	defer closer.Close()
	defer closeSession(sp)

	path, err := c.c.TSFile(sp.RequestParams.TSPath)
	if err != nil {
		c.l.Errorw("refusing mpeg-ts file",
			"error", err,
		)
		return
	}

	f, err := os.Open(path)
	if err != nil {
		c.l.Errorw("failed to open mpeg-ts file",
			"error", err,
		)
		return
	}
	closer.Add(func() { f.Close() })

	c.d.stream(sp, bufio.NewReaderSize(f, c.c.TSReadBufferSizeBytes))
}
