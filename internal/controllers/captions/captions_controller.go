package captions

import (
	"context"
	"sync"

	"github.com/flavioribeiro/isdbcc/internal/controllers/engine"
	"github.com/flavioribeiro/isdbcc/internal/entities"
	"go.uber.org/zap"
)

// CaptionsController runs a stream through the middlewares without any
// WebRTC session and hands over the decoded cues.
type CaptionsController struct {
	l                *zap.SugaredLogger
	engineController *engine.EngineController
}

func NewCaptionsController(l *zap.SugaredLogger, engineController *engine.EngineController) *CaptionsController {
	return &CaptionsController{
		l:                l,
		engineController: engineController,
	}
}

// Each calls fn for every cue until the stream ends or ctx is done. An error
// returned by fn stops the stream.
func (c *CaptionsController) Each(ctx context.Context, req *entities.RequestParams, fn func(cue entities.Cue) error) error {
	if err := req.Valid(); err != nil {
		return err
	}

	e, err := c.engineController.EngineFor(req)
	if err != nil {
		return err
	}

	serverStreamInfo, err := e.ServerStreamInfo()
	if err != nil {
		return err
	}
	if !hasCaptions(serverStreamInfo) {
		return entities.ErrMissingCompatibleStreams
	}

	c.l.Infow("extracting captions",
		"request", req.String(),
		"caption_streams", len(serverStreamInfo.CaptionStreams()),
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var mu sync.Mutex
	var fnErr error
	e.Serve(&entities.StreamParameters{
		Ctx:              ctx,
		Cancel:           cancel,
		RequestParams:    req,
		ServerStreamInfo: serverStreamInfo,
		OnCue: func(cue entities.Cue) error {
			mu.Lock()
			defer mu.Unlock()
			if fnErr != nil {
				return fnErr
			}
			if fnErr = fn(cue); fnErr != nil {
				cancel()
			}
			return fnErr
		},
	})

	mu.Lock()
	defer mu.Unlock()
	return fnErr
}

// Extract returns all the cues of a finite stream.
func (c *CaptionsController) Extract(ctx context.Context, req *entities.RequestParams) ([]entities.Cue, error) {
	cues := []entities.Cue{}
	err := c.Each(ctx, req, func(cue entities.Cue) error {
		cues = append(cues, cue)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cues, nil
}

// hasCaptions reports whether a stream may carry ISDB or EIA-608 captions.
func hasCaptions(si *entities.StreamInfo) bool {
	if len(si.CaptionStreams()) > 0 {
		return true
	}
	for _, v := range si.VideoStreams() {
		if v.Codec == entities.H264 {
			return true
		}
	}
	return false
}
