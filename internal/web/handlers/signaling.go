package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/flavioribeiro/isdbcc/internal/controllers"
	"github.com/flavioribeiro/isdbcc/internal/controllers/engine"
	"github.com/flavioribeiro/isdbcc/internal/entities"
	"github.com/pion/webrtc/v3"
	"go.uber.org/zap"
)

type SignalingHandler struct {
	c                *entities.Config
	l                *zap.SugaredLogger
	webRTCController *controllers.WebRTCController
	engineController *engine.EngineController
}

func NewSignalingHandler(
	c *entities.Config,
	log *zap.SugaredLogger,
	webRTCController *controllers.WebRTCController,
	engineController *engine.EngineController,
) *SignalingHandler {
	return &SignalingHandler{
		c:                c,
		l:                log,
		webRTCController: webRTCController,
		engineController: engineController,
	}
}

func (h *SignalingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) error {
	params, err := h.createAndValidateParams(r)
	if err != nil {
		return err
	}

	e, err := h.engineController.EngineFor(&params)
	if err != nil {
		return err
	}

	serverStreamInfo, err := e.ServerStreamInfo()
	if err != nil {
		return err
	}
	clientStreamInfo, err := e.ClientStreamInfo()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	peer, err := h.webRTCController.CreatePeerConnection(cancel)
	if err != nil {
		cancel()
		return err
	}

	sp, err := h.prepareSession(peer, &params, serverStreamInfo, clientStreamInfo)
	if err != nil {
		cancel()
		peer.Close()
		return err
	}
	sp.Ctx = ctx
	sp.Cancel = cancel

	localDescription, err := h.webRTCController.GatheringWebRTC(peer)
	if err != nil {
		h.l.Errorw("error while preparing a local web rtc description",
			"error", err,
		)
		cancel()
		peer.Close()
		return err
	}

	go e.Serve(sp)

	return WriteJson(w, *localDescription)
}

func (h *SignalingHandler) prepareSession(
	peer *webrtc.PeerConnection,
	params *entities.RequestParams,
	serverStreamInfo, clientStreamInfo *entities.StreamInfo,
) (*entities.StreamParameters, error) {
	sp := &entities.StreamParameters{
		RequestParams:    params,
		ServerStreamInfo: serverStreamInfo,
		ClientStreamInfo: clientStreamInfo,
		WebRTCConn:       peer,
	}

	if video, ok := compatibleVideo(serverStreamInfo, clientStreamInfo); ok {
		videoTrack, err := h.webRTCController.CreateTrack(peer, video, "video", params.SRTStreamID)
		if err != nil {
			h.l.Errorw("error while creating a web rtc track",
				"error", err,
			)
			return nil, err
		}
		sp.VideoTrack = videoTrack
	} else {
		h.l.Infow("no compatible video, sending captions only")
	}

	metadataSender, err := h.webRTCController.CreateDataChannel(peer, entities.MetadataChannelID)
	if err != nil {
		h.l.Errorw("error while creating a web rtc data channel",
			"error", err,
		)
		return nil, err
	}
	sp.OnCue = func(c entities.Cue) error {
		return h.webRTCController.SendJSON(metadataSender, c)
	}
	sp.OnMessage = func(m entities.Message) error {
		return h.webRTCController.SendJSON(metadataSender, m)
	}

	if err := h.webRTCController.SetRemoteDescription(peer, params.Offer); err != nil {
		h.l.Errorw("error while setting a remote web rtc description",
			"error", err,
		)
		return nil, err
	}
	return sp, nil
}

func (h *SignalingHandler) createAndValidateParams(r *http.Request) (entities.RequestParams, error) {
	if r.Method != http.MethodPost {
		return entities.RequestParams{}, entities.ErrHTTPPostOnly
	}

	params := entities.RequestParams{}
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		return entities.RequestParams{}, err
	}
	if err := params.Valid(); err != nil {
		return entities.RequestParams{}, err
	}
	if params.Offer.SDP == "" {
		return entities.RequestParams{}, entities.ErrMissingRemoteOffer
	}
	return params, nil
}

// compatibleVideo returns the server h264 stream when the client can play it.
func compatibleVideo(server, client *entities.StreamInfo) (entities.Stream, bool) {
	clientH264 := false
	for _, v := range client.VideoStreams() {
		if v.Codec == entities.H264 {
			clientH264 = true
		}
	}
	if !clientH264 {
		return entities.Stream{}, false
	}
	for _, v := range server.VideoStreams() {
		if v.Codec == entities.H264 {
			return v, true
		}
	}
	return entities.Stream{}, false
}
