package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/flavioribeiro/isdbcc/internal/entities"
)

func SetSuccessJson(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
}

func WriteJson(w http.ResponseWriter, v interface{}) error {
	SetSuccessJson(w)
	return json.NewEncoder(w).Encode(v)
}

var badRequests = []error{
	entities.ErrMissingRequestParams,
	entities.ErrMissingSRTHost,
	entities.ErrMissingSRTPort,
	entities.ErrMissingSRTStreamID,
	entities.ErrMissingTSPath,
	entities.ErrTSPathOutsideRoot,
	entities.ErrMissingRemoteOffer,
}

var unprocessable = []error{
	entities.ErrMissingProber,
	entities.ErrMissingStreamer,
	entities.ErrMissingCompatibleStreams,
	entities.ErrMpegTS,
}

// StatusFor maps handler errors to http status codes.
func StatusFor(err error) int {
	if errors.Is(err, entities.ErrHTTPGetOnly) || errors.Is(err, entities.ErrHTTPPostOnly) {
		return http.StatusMethodNotAllowed
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return http.StatusBadRequest
	}
	for _, e := range badRequests {
		if errors.Is(err, e) {
			return http.StatusBadRequest
		}
	}
	for _, e := range unprocessable {
		if errors.Is(err, e) {
			return http.StatusUnprocessableEntity
		}
	}
	return http.StatusInternalServerError
}
