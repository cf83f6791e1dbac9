package entities

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/asticode/go-astits"
	"github.com/pion/webrtc/v3"
)

const (
	MetadataChannelID string = "metadata"
)

type RequestParams struct {
	SRTHost     string
	SRTPort     uint16 `json:",string"`
	SRTStreamID string

	// TSPath is a local MPEG-TS file, used instead of an SRT source.
	TSPath string

	Offer webrtc.SessionDescription
}

func (p *RequestParams) Valid() error {
	if p == nil {
		return ErrMissingRequestParams
	}

	if p.TSPath != "" {
		return nil
	}

	if p.SRTHost == "" {
		return ErrMissingSRTHost
	}

	if p.SRTPort == 0 {
		return ErrMissingSRTPort
	}

	if p.SRTStreamID == "" {
		return ErrMissingSRTStreamID
	}

	return nil
}

func (p *RequestParams) String() string {
	if p == nil {
		return ""
	}
	if p.TSPath != "" {
		return fmt.Sprintf("RequestParams file://%v", p.TSPath)
	}
	return fmt.Sprintf("RequestParams srt://%v:%v/%v", p.SRTHost, p.SRTPort, p.SRTStreamID)
}

type MessageType string

const (
	MessageTypeMetadata MessageType = "metadata"
	MessageTypeCaptions MessageType = "captions"
)

type Message struct {
	Type    MessageType
	Message string
}

type Codec string
type MediaType string

const (
	UnknownCodec    Codec = "unknownCodec"
	H264            Codec = "h264"
	H265            Codec = "h265"
	VP9             Codec = "vp9"
	AV1             Codec = "av1"
	AAC             Codec = "aac"
	Opus            Codec = "opus"
	ISDBCaption     Codec = "isdb-caption"
	ISDBSuperimpose Codec = "isdb-superimpose"
)

const (
	UnknownType MediaType = "unknownMediaType"
	VideoType   MediaType = "video"
	AudioType   MediaType = "audio"
	CaptionType MediaType = "caption"
)

type Stream struct {
	Codec Codec
	Type  MediaType
	Id    uint16
	Index uint16
	// ComponentTag comes from the stream identifier descriptor, ISDB
	// captions use 0x30..0x37.
	ComponentTag uint8
}

type StreamInfo struct {
	Streams []Stream
}

func (s *StreamInfo) streamsOf(t MediaType) []Stream {
	var result []Stream
	for _, s := range s.Streams {
		if s.Type == t {
			result = append(result, s)
		}
	}
	return result
}

func (s *StreamInfo) VideoStreams() []Stream {
	return s.streamsOf(VideoType)
}

func (s *StreamInfo) AudioStreams() []Stream {
	return s.streamsOf(AudioType)
}

func (s *StreamInfo) CaptionStreams() []Stream {
	return s.streamsOf(CaptionType)
}

// Cue is a caption sent to clients. Times are in milliseconds.
type Cue struct {
	Type      MessageType
	Source    string
	StartTime int64
	EndTime   int64
	Language  string
	Text      string
}

type StreamParameters struct {
	Cancel context.CancelFunc
	Ctx    context.Context

	RequestParams    *RequestParams
	ServerStreamInfo *StreamInfo
	ClientStreamInfo *StreamInfo

	// WebRTC session, both are nil when captions are only collected
	WebRTCConn *webrtc.PeerConnection
	VideoTrack *webrtc.TrackLocalStaticSample

	OnCue     func(c Cue) error
	OnMessage func(m Message) error
}

// StreamMiddleware is called for every demuxed MPEG-TS data of a stream.
type StreamMiddleware interface {
	Act(mpegTSDemuxData *astits.DemuxerData, sp *StreamParameters) error
}

type Config struct {
	HTTPPort       int32  `required:"true" default:"8080"`
	HTTPHost       string `required:"true" default:"0.0.0.0"`
	PproffHTTPPort int32  `required:"true" default:"6060"`

	TCPICEPort         int      `required:"true" default:"8081"`
	UDPICEPort         int      `required:"true" default:"8081"`
	ICEReadBufferSize  int      `required:"true" default:"8"`
	ICEExternalIPsDNAT []string `required:"true" default:"127.0.0.1"`
	EnableICEMux       bool     `require:"true" default:"false"`
	StunServers        []string `required:"true" default:"stun:stun.l.google.com:19302,stun:stun1.l.google.com:19302,stun:stun2.l.google.com:19302,stun:stun4.l.google.com:19302"`

	SRTConnectionLatencyMS int32 `required:"true" default:"300"`
	// MPEG-TS consists of single units of 188 bytes. Multiplying 188*7 we get 1316,
	// which is the maximum product of 188 that is less than MTU 1500 (188*8=1504)
	// ref https://github.com/Haivision/srt/blob/master/docs/features/live-streaming.md#transmitting-mpeg-ts-binary-protocol-over-srt
	SRTReadBufferSizeBytes int `required:"true" default:"1316"`
	TSReadBufferSizeBytes  int `required:"true" default:"65536"`
	// TSPath requests are confined to this directory
	TSRootDir string `default:"."`

	// number of demuxed data read while probing
	ProbingSize int `required:"true" default:"120"`

	// zero keeps the caption text buffer unbounded
	CaptionMaxTextBytes int `default:"4096"`
	// utf-8 or euc-jp
	CaptionCharset string `default:"utf-8"`

	Debug bool `default:"false"`
}

// TSFile resolves a requested TSPath against TSRootDir. Relative paths are
// taken from the root, paths leaving it are rejected. Symlinks are not
// followed.
func (c *Config) TSFile(p string) (string, error) {
	if p == "" {
		return "", ErrMissingTSPath
	}
	root, err := filepath.Abs(c.TSRootDir)
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(root, p)
	}
	p = filepath.Clean(p)

	rel, err := filepath.Rel(root, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrTSPathOutsideRoot, p)
	}
	return p, nil
}
