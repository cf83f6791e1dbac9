// Package isdb decodes ARIB STD-B24 closed captions carried in synchronized
// PES payloads into timed text cues.
package isdb

import (
	"fmt"

	"github.com/asticode/go-astikit"
	"go.uber.org/zap"
)

const (
	// synchronized PES data identifier, closed captions
	dataIdentifierSync = 0x80
	// asynchronous PES data identifier, superimposed text
	dataIdentifierAsync = 0x81
	// private_stream_id
	privateStreamID = 0xFF
)

// Cue is the text accumulated by one data group, with its display interval.
type Cue struct {
	Text     string
	Start    uint64
	End      uint64
	Language string
	Source   string
	Encoding string
}

// CueCollector receives every emitted cue.
type CueCollector interface {
	Collect(c Cue)
}

// CueCollectorFunc adapts a function to a CueCollector.
type CueCollectorFunc func(c Cue)

func (f CueCollectorFunc) Collect(c Cue) {
	f(c)
}

type Option func(d *Decoder)

// WithLogger sets the logger, commands are traced at debug level.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(d *Decoder) {
		d.l = l
	}
}

// WithMaxTextSize caps the text buffer. Zero keeps it unbounded.
func WithMaxTextSize(n int) Option {
	return func(d *Decoder) {
		d.maxText = n
	}
}

// WithCollector registers a collector called for every emitted cue.
func WithCollector(c CueCollector) Option {
	return func(d *Decoder) {
		d.collector = c
	}
}

// WithSuperimpose decodes superimposed text, carried in asynchronous PES
// payloads with the same data group layout as closed captions.
func WithSuperimpose() Option {
	return func(d *Decoder) {
		d.dataIdentifier = dataIdentifierAsync
		d.source = superimposeSource
	}
}

// Decoder holds one caption session. It is not safe for concurrent use; each
// caption stream needs its own Decoder.
type Decoder struct {
	l         *zap.SugaredLogger
	ctx       *Context
	collector CueCollector
	maxText   int

	dataIdentifier byte
	source         string
}

func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{
		l:              zap.NewNop().Sugar(),
		dataIdentifier: dataIdentifierSync,
		source:         cueSource,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.ctx = newContext(d.maxText)
	return d
}

// Context exposes the session state.
func (d *Decoder) Context() *Context {
	return d.ctx
}

// SetTimestamp sets the end of the interval of the next emitted cue.
func (d *Decoder) SetTimestamp(ts uint64) {
	d.ctx.Timestamp = ts
}

// Decode parses one PES data payload. It returns the cue
// emitted by the data group, if any. A cue can come with an error when the
// group failed after text was accumulated.
func (d *Decoder) Decode(payload []byte) (*Cue, error) {
	i := astikit.NewBytesIterator(payload)

	b, err := nextByte(i, "data identifier")
	if err != nil {
		return nil, err
	}
	if b != d.dataIdentifier {
		return nil, fmt.Errorf("%w: data identifier is 0x%02x", ErrMalformedEnvelope, b)
	}

	if b, err = nextByte(i, "private stream id"); err != nil {
		return nil, err
	}
	if b != privateStreamID {
		d.l.Debugw("unexpected private stream id",
			"private_stream_id", b,
		)
	}

	if b, err = nextByte(i, "PES data packet header length"); err != nil {
		return nil, err
	}
	if err = skip(i, int(b&0x0F), "PES data private data"); err != nil {
		return nil, err
	}

	return d.parseDataGroup(i)
}
