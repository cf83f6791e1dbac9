package mapper

import (
	"fmt"
	"strings"

	"github.com/asticode/go-astits"
	"github.com/flavioribeiro/isdbcc/internal/entities"
	"github.com/flavioribeiro/isdbcc/isdb"
	"github.com/pion/webrtc/v3"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
)

// PES private data, ARIB STD-B24 captions are carried with this stream type
const StreamTypePrivateData astits.StreamType = 0x06

// component tags of the stream identifier descriptor, ARIB TR-B14
const (
	componentTagCaptionFirst     = 0x30
	componentTagCaptionLast      = 0x37
	componentTagSuperimposeFirst = 0x38
	componentTagSuperimposeLast  = 0x3F
)

const (
	CharsetUTF8  = "utf-8"
	CharsetEUCJP = "euc-jp"
)

type Mapper struct {
	l       *zap.SugaredLogger
	charset encoding.Encoding
}

func NewMapper(c *entities.Config, l *zap.SugaredLogger) (*Mapper, error) {
	m := &Mapper{l: l}
	switch strings.ToLower(c.CaptionCharset) {
	case "", CharsetUTF8:
	case CharsetEUCJP:
		m.charset = japanese.EUCJP
	default:
		return nil, fmt.Errorf("%w: %s", entities.ErrUnsupportedCharset, c.CaptionCharset)
	}
	return m, nil
}

func (m *Mapper) FromTrackToRTPCodecCapability(track entities.Stream) webrtc.RTPCodecCapability {
	response := webrtc.RTPCodecCapability{}

	if track.Codec == entities.H264 {
		response.MimeType = webrtc.MimeTypeH264
	} else if track.Codec == entities.H265 {
		response.MimeType = webrtc.MimeTypeH265
	} else {
		m.l.Infow("no rtp codec for track",
			"codec", track.Codec,
		)
	}

	return response
}

func (m *Mapper) FromMpegTsStreamTypeToCodec(st astits.StreamType) entities.Codec {
	if st == astits.StreamTypeH264Video {
		return entities.H264
	}
	if st == astits.StreamTypeH265Video {
		return entities.H265
	}
	if st == astits.StreamTypeAACAudio {
		return entities.AAC
	}
	m.l.Debugw("no codec for mpeg-ts stream type",
		"stream_type", st,
	)
	return entities.UnknownCodec
}

func (m *Mapper) FromMpegTsStreamTypeToType(st astits.StreamType) entities.MediaType {
	if st.IsVideo() {
		return entities.VideoType
	}
	if st.IsAudio() {
		return entities.AudioType
	}
	return entities.UnknownType
}

func componentTag(es *astits.PMTElementaryStream) (uint8, bool) {
	for _, d := range es.ElementaryStreamDescriptors {
		if d.Tag == astits.DescriptorTagStreamIdentifier && d.StreamIdentifier != nil {
			return d.StreamIdentifier.ComponentTag, true
		}
	}
	return 0, false
}

func (m *Mapper) FromStreamTypeToEntityStream(es *astits.PMTElementaryStream) entities.Stream {
	s := entities.Stream{
		Codec: m.FromMpegTsStreamTypeToCodec(es.StreamType),
		Type:  m.FromMpegTsStreamTypeToType(es.StreamType),
		Id:    es.ElementaryPID,
	}

	tag, ok := componentTag(es)
	if !ok || es.StreamType != StreamTypePrivateData {
		return s
	}
	s.ComponentTag = tag
	switch {
	case tag >= componentTagCaptionFirst && tag <= componentTagCaptionLast:
		s.Codec = entities.ISDBCaption
		s.Type = entities.CaptionType
	case tag >= componentTagSuperimposeFirst && tag <= componentTagSuperimposeLast:
		s.Codec = entities.ISDBSuperimpose
		s.Type = entities.CaptionType
	}
	return s
}

func (m *Mapper) FromPMTToStreamInfo(pmt *astits.PMTData) *entities.StreamInfo {
	si := &entities.StreamInfo{}
	for i, es := range pmt.ElementaryStreams {
		s := m.FromStreamTypeToEntityStream(es)
		s.Index = uint16(i)
		si.Streams = append(si.Streams, s)
	}
	return si
}

func (m *Mapper) FromStreamInfoToEntityMessages(si *entities.StreamInfo) []entities.Message {
	var msgs []entities.Message

	for _, st := range si.Streams {
		msgs = append(msgs, entities.Message{
			Type:    entities.MessageTypeMetadata,
			Message: fmt.Sprintf("%s %s (pid %d)", st.Codec, st.Type, st.Id),
		})
	}

	return msgs
}

// FromISDBCueToEntityCue converts a decoded cue, its times are PTS milliseconds.
func (m *Mapper) FromISDBCueToEntityCue(c isdb.Cue, lang string) (entities.Cue, error) {
	text, err := m.FromCaptionText(c.Text)
	if err != nil {
		return entities.Cue{}, err
	}
	if lang == "" {
		lang = c.Language
	}
	return entities.Cue{
		Type:      entities.MessageTypeCaptions,
		Source:    c.Source,
		StartTime: int64(c.Start),
		EndTime:   int64(c.End),
		Language:  lang,
		Text:      text,
	}, nil
}

func (m *Mapper) FromEIA608ToEntityCue(pts *astits.ClockReference, text string) entities.Cue {
	start := pts.Duration().Milliseconds()
	return entities.Cue{
		Type:      entities.MessageTypeCaptions,
		Source:    "EIA-608",
		StartTime: start,
		EndTime:   start,
		Text:      text,
	}
}

// FromCaptionText decodes caption bytes with the configured charset.
func (m *Mapper) FromCaptionText(text string) (string, error) {
	if m.charset == nil {
		return text, nil
	}
	decoded, err := m.charset.NewDecoder().String(text)
	if err != nil {
		return "", fmt.Errorf("decoding caption text failed: %w", err)
	}
	return decoded, nil
}

func (m *Mapper) FromWebRTCSessionDescriptionToStreamInfo(desc webrtc.SessionDescription) (*entities.StreamInfo, error) {
	sdpDesc, err := desc.Unmarshal()
	if err != nil {
		return nil, err
	}
	result := &entities.StreamInfo{}
	unique := map[entities.Codec]entities.Stream{}

	for _, desc := range sdpDesc.MediaDescriptions {
		// Currently defined media (MediaName.Media) are "audio","video", "text", "application", and "message"
		// ref https://datatracker.ietf.org/doc/html/rfc4566#section-5.14
		var mediaType entities.MediaType
		switch desc.MediaName.Media {
		case "video":
			mediaType = entities.VideoType
		case "audio":
			mediaType = entities.AudioType
		default:
			m.l.Debugw("ignoring sdp media",
				"media", desc.MediaName.Media,
			)
			continue
		}

		for _, a := range desc.Attributes {
			if a.Key != "rtpmap" {
				continue
			}
			// Samples:
			// Key:rtpmap Value: 102 H264/90000
			// Key:rtpmap Value: 111 opus/48000/2
			codec := fromRTPMapToCodec(a.Value)
			if codec == entities.UnknownCodec {
				continue
			}
			unique[codec] = entities.Stream{
				Codec: codec,
				Type:  mediaType,
			}
		}
	}

	for _, v := range unique {
		result.Streams = append(result.Streams, v)
	}
	return result, nil
}

func fromRTPMapToCodec(v string) entities.Codec {
	switch {
	case strings.Contains(v, "H264"):
		return entities.H264
	case strings.Contains(v, "H265"):
		return entities.H265
	case strings.Contains(v, "VP9"):
		return entities.VP9
	case strings.Contains(v, "AV1"):
		return entities.AV1
	case strings.Contains(v, "opus"):
		return entities.Opus
	}
	return entities.UnknownCodec
}
