package streammiddlewares

import (
	"github.com/asticode/go-astits"
	"github.com/flavioribeiro/isdbcc/internal/entities"
	"github.com/flavioribeiro/isdbcc/internal/mapper"
	"github.com/flavioribeiro/isdbcc/isdb"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// isdbSession holds one decoder per caption PID.
type isdbSession struct {
	decoders map[uint16]*isdb.Decoder
}

type isdbMiddleware struct {
	c        *entities.Config
	l        *zap.SugaredLogger
	m        *mapper.Mapper
	sessions *sessions[*isdbSession]
}

type ISDBResponse struct {
	fx.Out
	ISDBMiddleware entities.StreamMiddleware `group:"middlewares"`
}

// NewISDB creates a new ARIB STD-B24 caption middleware
func NewISDB(c *entities.Config, l *zap.SugaredLogger, m *mapper.Mapper) ISDBResponse {
	return ISDBResponse{
		ISDBMiddleware: newISDBMiddleware(c, l, m),
	}
}

func newISDBMiddleware(c *entities.Config, l *zap.SugaredLogger, m *mapper.Mapper) *isdbMiddleware {
	return &isdbMiddleware{
		c: c,
		l: l,
		m: m,
		sessions: newSessions(func(*entities.StreamParameters) *isdbSession {
			return &isdbSession{decoders: map[uint16]*isdb.Decoder{}}
		}),
	}
}

// Act decodes ISDB caption PES and sends the cues to the stream
func (i *isdbMiddleware) Act(mpegTSDemuxData *astits.DemuxerData, sp *entities.StreamParameters) error {
	if mpegTSDemuxData.PES == nil || sp.ServerStreamInfo == nil {
		return nil
	}

	for _, s := range sp.ServerStreamInfo.CaptionStreams() {
		if s.Id != mpegTSDemuxData.PID {
			continue
		}

		dec := i.decoderFor(sp, s)

		if oh := mpegTSDemuxData.PES.Header.OptionalHeader; oh != nil && oh.PTS != nil {
			dec.SetTimestamp(uint64(oh.PTS.Duration().Milliseconds()))
		}

		if _, err := dec.Decode(mpegTSDemuxData.PES.Data); err != nil {
			i.l.Debugw("failed to decode isdb captions",
				"pid", s.Id,
				"error", err,
			)
		}
	}
	return nil
}

func (i *isdbMiddleware) decoderFor(sp *entities.StreamParameters, s entities.Stream) *isdb.Decoder {
	session := i.sessions.get(sp)
	if dec, ok := session.decoders[s.Id]; ok {
		return dec
	}

	var dec *isdb.Decoder
	opts := []isdb.Option{
		isdb.WithLogger(i.l.With("pid", s.Id)),
		isdb.WithMaxTextSize(i.c.CaptionMaxTextBytes),
		isdb.WithCollector(isdb.CueCollectorFunc(func(c isdb.Cue) {
			i.send(sp, c, languageOf(dec))
		})),
	}
	if s.Codec == entities.ISDBSuperimpose {
		opts = append(opts, isdb.WithSuperimpose())
	}
	dec = isdb.NewDecoder(opts...)
	session.decoders[s.Id] = dec
	return dec
}

func (i *isdbMiddleware) send(sp *entities.StreamParameters, c isdb.Cue, lang string) {
	cue, err := i.m.FromISDBCueToEntityCue(c, lang)
	if err != nil {
		i.l.Errorw("failed to map isdb cue",
			"error", err,
		)
		return
	}
	if sp.OnCue == nil {
		return
	}
	if err := sp.OnCue(cue); err != nil {
		i.l.Errorw("failed to send isdb cue",
			"error", err,
		)
	}
}

// languageOf returns the ISO 639 code of the first announced language.
func languageOf(dec *isdb.Decoder) string {
	if langs := dec.Context().Languages; len(langs) > 0 {
		return langs[0].Code
	}
	return ""
}
