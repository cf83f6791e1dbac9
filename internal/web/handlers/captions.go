package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/flavioribeiro/isdbcc/internal/controllers/captions"
	"github.com/flavioribeiro/isdbcc/internal/entities"
	"go.uber.org/zap"
)

type CaptionsHandler struct {
	l                  *zap.SugaredLogger
	captionsController *captions.CaptionsController
}

func NewCaptionsHandler(
	l *zap.SugaredLogger,
	captionsController *captions.CaptionsController,
) *CaptionsHandler {
	return &CaptionsHandler{
		l:                  l,
		captionsController: captionsController,
	}
}

// ServeHTTP decodes all the captions of a local MPEG-TS file.
func (h *CaptionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) error {
	if r.Method != http.MethodPost {
		h.l.Errorw("unexpected method")
		return entities.ErrHTTPPostOnly
	}

	params := entities.RequestParams{}
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		h.l.Errorw("error while decoding request params json",
			"error", err,
		)
		return err
	}
	// live sources never end
	if params.TSPath == "" {
		return entities.ErrMissingTSPath
	}

	cues, err := h.captionsController.Extract(r.Context(), &params)
	if err != nil {
		h.l.Errorw("error while extracting captions",
			"error", err,
		)
		return err
	}

	return WriteJson(w, cues)
}
