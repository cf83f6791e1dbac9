package engine

import (
	"fmt"

	"github.com/flavioribeiro/isdbcc/internal/controllers/probers"
	"github.com/flavioribeiro/isdbcc/internal/controllers/streamers"
	"github.com/flavioribeiro/isdbcc/internal/entities"
	"github.com/flavioribeiro/isdbcc/internal/mapper"
	"go.uber.org/fx"
)

type Engine interface {
	ServerStreamInfo() (*entities.StreamInfo, error)
	ClientStreamInfo() (*entities.StreamInfo, error)
	Serve(sp *entities.StreamParameters)
}

type EngineParams struct {
	fx.In
	Streamers []streamers.Streamer `group:"streamers"`
	Probers   []probers.Prober     `group:"probers"`
	Mapper    *mapper.Mapper
}

type EngineController struct {
	p EngineParams
}

func NewEngineController(p EngineParams) *EngineController {
	return &EngineController{p}
}

func (c *EngineController) EngineFor(req *entities.RequestParams) (Engine, error) {
	prober := selectFor(c.p.Probers, req)
	if prober == nil {
		return nil, fmt.Errorf("request %v: not fulfilled error %w", req, entities.ErrMissingProber)
	}

	streamer := selectFor(c.p.Streamers, req)
	if streamer == nil {
		return nil, fmt.Errorf("request %v: not fulfilled error %w", req, entities.ErrMissingStreamer)
	}

	return &engine{
		prober:   prober,
		streamer: streamer,
		mapper:   c.p.Mapper,
		req:      req,
	}, nil
}

type matcher interface {
	Match(req *entities.RequestParams) bool
}

func selectFor[T matcher](candidates []T, req *entities.RequestParams) T {
	var none T
	for _, c := range candidates {
		if c.Match(req) {
			return c
		}
	}
	return none
}

type engine struct {
	prober   probers.Prober
	streamer streamers.Streamer
	mapper   *mapper.Mapper
	req      *entities.RequestParams
}

func (e *engine) ServerStreamInfo() (*entities.StreamInfo, error) {
	return e.prober.StreamInfo(e.req)
}

func (e *engine) ClientStreamInfo() (*entities.StreamInfo, error) {
	if e.req.Offer.SDP == "" {
		return nil, entities.ErrMissingRemoteOffer
	}
	return e.mapper.FromWebRTCSessionDescriptionToStreamInfo(e.req.Offer)
}

func (e *engine) Serve(sp *entities.StreamParameters) {
	e.streamer.Stream(sp)
}
