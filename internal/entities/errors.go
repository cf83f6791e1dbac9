package entities

import (
	"errors"
	"fmt"
)

var ErrHTTPGetOnly = errors.New("you must use http GET verb")
var ErrHTTPPostOnly = errors.New("you must use http POST verb")

var ErrMissingSRTHost = errors.New("SRTHost must not be nil")
var ErrMissingSRTPort = errors.New("SRTPort must be valid")
var ErrMissingSRTStreamID = errors.New("SRTStreamID must not be empty")
var ErrMissingTSPath = errors.New("TSPath must not be empty")
var ErrTSPathOutsideRoot = errors.New("TSPath is outside of the allowed directory")

var ErrMissingRemoteOffer = errors.New("nil offer, in order to connect one must pass a valid offer")
var ErrMissingRequestParams = errors.New("RequestParams must not be nil")

var ErrMissingProber = errors.New("there is no prober")
var ErrMissingStreamer = errors.New("there is no streamer")
var ErrMissingCompatibleStreams = errors.New("there is no compatible streams")

var ErrUnsupportedCharset = errors.New("unsupported caption charset")

// MPEG-TS
var ErrMpegTS = errors.New("mpeg-ts error")
var ErrMpegTSNoProgram = fmt.Errorf("%w no program map table found while probing", ErrMpegTS)
