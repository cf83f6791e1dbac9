package controllers

import (
	"context"
	"io"

	astisrt "github.com/asticode/go-astisrt/pkg"
	"github.com/flavioribeiro/isdbcc/internal/entities"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type SRTController struct {
	c *entities.Config
	l *zap.SugaredLogger
}

func NewSRTController(c *entities.Config, l *zap.SugaredLogger, lc fx.Lifecycle) (*SRTController, error) {
	// Handle logs
	astisrt.SetLogLevel(astisrt.LogLevel(astisrt.LogLevelNotice))
	astisrt.SetLogHandler(func(ll astisrt.LogLevel, file, area, msg string, line int) {
		l.Debugw("SRT",
			"ll", ll,
			"msg", msg,
		)
	})

	if err := astisrt.Startup(); err != nil {
		l.Errorw("failed to start up srt",
			"error", err,
		)
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if err := astisrt.CleanUp(); err != nil {
				l.Errorw("failed to clean up srt",
					"error", err,
				)
				return err
			}
			return nil
		},
	})

	return &SRTController{
		c: c,
		l: l,
	}, nil
}

// Connect dials the SRT source of params, cancel is called on disconnection.
func (c *SRTController) Connect(cancel context.CancelFunc, params *entities.RequestParams) (*astisrt.Connection, error) {
	if err := params.Valid(); err != nil {
		return nil, err
	}

	c.l.Infow("connecting to srt",
		"request", params.String(),
	)

	conn, err := astisrt.Dial(astisrt.DialOptions{
		ConnectionOptions: []astisrt.ConnectionOption{
			astisrt.WithLatency(c.c.SRTConnectionLatencyMS),
			astisrt.WithStreamid(params.SRTStreamID),
			astisrt.WithCongestion("live"),
			astisrt.WithTranstype(astisrt.Transtype(astisrt.TranstypeLive)),
		},

		OnDisconnect: func(conn *astisrt.Connection, err error) {
			c.l.Infow("canceling srt",
				"error", err,
			)
			cancel()
		},

		Host: params.SRTHost,
		Port: params.SRTPort,
	})
	if err != nil {
		c.l.Errorw("failed to connect srt",
			"error", err,
		)
		return nil, err
	}
	c.l.Infow("connected to srt")
	return conn, nil
}

// Pipe copies MPEG-TS packets from conn into w until either side fails or
// limit reads are done. A limit of zero reads forever.
func (c *SRTController) Pipe(conn *astisrt.Connection, w *io.PipeWriter, limit int) {
	defer w.Close()
	defer conn.Close()

	inboundMpegTsPacket := make([]byte, c.c.SRTReadBufferSizeBytes)

	for i := 0; limit == 0 || i < limit; i++ {
		n, err := conn.Read(inboundMpegTsPacket)
		if err != nil {
			c.l.Errorw("srt conn failed to read data",
				"error", err,
			)
			return
		}

		if _, err := w.Write(inboundMpegTsPacket[:n]); err != nil {
			c.l.Errorw("failed to write mpeg-ts into the pipe",
				"error", err,
			)
			return
		}
	}
}
