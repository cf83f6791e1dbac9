package streammiddlewares

import (
	"github.com/asticode/go-astits"
	"github.com/flavioribeiro/isdbcc/internal/entities"
	"github.com/flavioribeiro/isdbcc/internal/mapper"
	gocaption "github.com/szatmary/gocaption"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type eia608Reader struct {
	frame gocaption.EIA608Frame
}

// parse returns the captions displayed once the PES was decoded, if any.
func (r *eia608Reader) parse(pes *astits.PESData) (string, error) {
	for _, nal := range splitNALUs(pes.Data) {
		t, err := nalUnitType(nal)
		if err != nil {
			return "", err
		}
		if t != nalUnitTypeSEI {
			continue
		}

		sei, err := parseSEI(rbsp(nal))
		if err != nil {
			return "", err
		}
		// ANSI/SCTE 128-1 2020
		// Caption, AFD and bar data shall be carried in the SEI raw byte sequence payload (RBSP)
		// syntax of the video Elementary Stream.
		if sei.payloadType != seiPayloadTypeUserDataRegistered {
			continue
		}

		ccData, err := gocaption.CEA708ToCCData(sei.payload)
		if err != nil {
			return "", err
		}
		for _, cc := range ccData {
			ready, err := r.frame.Decode(cc)
			if err != nil {
				return "", err
			}
			if ready {
				return r.frame.String(), nil
			}
		}
	}
	return "", nil
}

type eia608Middleware struct {
	l        *zap.SugaredLogger
	m        *mapper.Mapper
	sessions *sessions[*eia608Reader]
}

type EIA608Response struct {
	fx.Out
	EIA608Middleware entities.StreamMiddleware `group:"middlewares"`
}

// NewEIA608 creates a new EIA608 middleware
func NewEIA608(l *zap.SugaredLogger, m *mapper.Mapper) EIA608Response {
	return EIA608Response{
		EIA608Middleware: newEIA608Middleware(l, m),
	}
}

func newEIA608Middleware(l *zap.SugaredLogger, m *mapper.Mapper) *eia608Middleware {
	return &eia608Middleware{
		l: l,
		m: m,
		sessions: newSessions(func(*entities.StreamParameters) *eia608Reader {
			return &eia608Reader{}
		}),
	}
}

// Act parses eia608 data from h264 SEI and sends the cues to the stream
func (e *eia608Middleware) Act(mpegTSDemuxData *astits.DemuxerData, sp *entities.StreamParameters) error {
	if mpegTSDemuxData.PES == nil || sp.ServerStreamInfo == nil {
		return nil
	}

	for _, v := range sp.ServerStreamInfo.VideoStreams() {
		if v.Id != mpegTSDemuxData.PID || v.Codec != entities.H264 {
			continue
		}

		captions, err := e.sessions.get(sp).parse(mpegTSDemuxData.PES)
		if err != nil {
			return err
		}
		if captions == "" {
			continue
		}

		oh := mpegTSDemuxData.PES.Header.OptionalHeader
		if oh == nil || oh.PTS == nil || sp.OnCue == nil {
			continue
		}
		if err := sp.OnCue(e.m.FromEIA608ToEntityCue(oh.PTS, captions)); err != nil {
			return err
		}
	}
	return nil
}
