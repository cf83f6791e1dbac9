package probers

import (
	"bufio"
	"context"
	"os"

	"github.com/asticode/go-astikit"
	"github.com/flavioribeiro/isdbcc/internal/entities"
	"github.com/flavioribeiro/isdbcc/internal/mapper"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type FileMpegTs struct {
	c *entities.Config
	l *zap.SugaredLogger
	p *mpegTSProbe
}

type ResultFileMpegTs struct {
	fx.Out
	FileMpegTsProber Prober `group:"probers"`
}

// NewFileMpegTs creates a prober for local MPEG-TS files
func NewFileMpegTs(c *entities.Config, l *zap.SugaredLogger, m *mapper.Mapper) ResultFileMpegTs {
	return ResultFileMpegTs{
		FileMpegTsProber: &FileMpegTs{
			c: c,
			l: l,
			p: &mpegTSProbe{l: l, m: m},
		},
	}
}

func (c *FileMpegTs) Match(req *entities.RequestParams) bool {
	return req.TSPath != ""
}

// StreamInfo reads the first PMT of the file.
func (c *FileMpegTs) StreamInfo(req *entities.RequestParams) (*entities.StreamInfo, error) {
	if err := req.Valid(); err != nil {
		return nil, err
	}

	closer := astikit.NewCloser()
	defer closer.Close()

	path, err := c.c.TSFile(req.TSPath)
	if err != nil {
		c.l.Errorw("refusing mpeg-ts file",
			"error", err,
		)
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		c.l.Errorw("failed to open mpeg-ts file",
			"error", err,
		)
		return nil, err
	}
	closer.Add(func() { f.Close() })

	r := bufio.NewReaderSize(f, c.c.TSReadBufferSizeBytes)
	return c.p.streamInfo(context.Background(), r, c.c.ProbingSize)
}
