package isdb

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_MalformedEnvelope(t *testing.T) {
	d := NewDecoder()

	cue, err := d.Decode([]byte{0x81, 0xFF, 0xF0})
	assert.Nil(t, cue)
	assert.True(t, errors.Is(err, ErrMalformedEnvelope))

	cue, err = d.Decode(nil)
	assert.Nil(t, cue)
	assert.True(t, errors.Is(err, ErrTruncatedField))

	// the session survives a dropped payload
	d.SetTimestamp(10)
	cue, err = d.Decode(statementPayload([]byte("ok")))
	require.NoError(t, err)
	require.NotNil(t, cue)
	assert.Equal(t, "ok", cue.Text)
}

func TestDecode_TruncatedGroup(t *testing.T) {
	d := NewDecoder()

	payload := statementPayload([]byte("hello"))
	cue, err := d.Decode(payload[:len(payload)-6])
	assert.Nil(t, cue)
	assert.True(t, errors.Is(err, ErrTruncatedField))
	assert.Equal(t, 0, d.Context().Text.Len())
}

func TestDecode_TextPassThrough(t *testing.T) {
	var body []byte
	for b := byte(0x20); b <= 0x7E; b++ {
		body = append(body, b)
	}

	d := NewDecoder()
	d.SetTimestamp(90000)
	cue, err := d.Decode(statementPayload(body))
	require.NoError(t, err)
	require.NotNil(t, cue)

	assert.Equal(t, string(body), cue.Text)
	assert.Equal(t, "NA", cue.Language)
	assert.Equal(t, "ISDB", cue.Source)
	assert.Equal(t, "UTF-8", cue.Encoding)
	assert.Equal(t, 0, d.Context().Text.Len())
}

func TestDecode_ReservedCodesSkipped(t *testing.T) {
	d := NewDecoder()

	cue, err := d.Decode(statementPayload([]byte{'a', 0xA0, 'b', 0xFF, 'c'}))
	require.NoError(t, err)
	require.NotNil(t, cue)
	assert.Equal(t, "abc", cue.Text)
}

func TestDecode_CueTiming(t *testing.T) {
	var collected []Cue
	d := NewDecoder(WithCollector(CueCollectorFunc(func(c Cue) {
		collected = append(collected, c)
	})))

	// a management group sets the interval start without emitting
	d.SetTimestamp(50)
	cue, err := d.Decode(managementPayload([]byte{0x00, 0x00}))
	require.NoError(t, err)
	assert.Nil(t, cue)

	d.SetTimestamp(100)
	first, err := d.Decode(statementPayload([]byte("first")))
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, uint64(50), first.Start)
	assert.Equal(t, uint64(100), first.End)

	d.SetTimestamp(200)
	second, err := d.Decode(statementPayload([]byte("second")))
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, first.End, second.Start)
	assert.Equal(t, uint64(200), second.End)

	// same timestamp: the interval is widened
	third, err := d.Decode(statementPayload([]byte("third")))
	require.NoError(t, err)
	require.NotNil(t, third)
	assert.Equal(t, uint64(200), third.Start)
	assert.Equal(t, uint64(202), third.End)

	assert.Equal(t, []Cue{*first, *second, *third}, collected)
}

func TestDecode_TimestampGoingBackwards(t *testing.T) {
	d := NewDecoder()

	d.SetTimestamp(500)
	_, err := d.Decode(statementPayload([]byte("a")))
	require.NoError(t, err)

	d.SetTimestamp(100)
	cue, err := d.Decode(statementPayload([]byte("b")))
	require.NoError(t, err)
	require.NotNil(t, cue)
	assert.Equal(t, uint64(100), cue.Start)
	assert.Equal(t, uint64(102), cue.End)
}

func TestDecode_InvalidGroupIgnored(t *testing.T) {
	d := NewDecoder()

	body := statementData(dataUnit(unitStatementBody, []byte("dropped")))
	cue, err := d.Decode(pesPayload(dataGroup(0x09, body)))
	assert.NoError(t, err)
	assert.Nil(t, cue)
	assert.Equal(t, 0, d.Context().Text.Len())
}

func TestDecode_GroupB(t *testing.T) {
	d := NewDecoder()

	body := statementData(dataUnit(unitStatementBody, []byte("b set")))
	cue, err := d.Decode(pesPayload(dataGroup(0x21, body)))
	require.NoError(t, err)
	require.NotNil(t, cue)
	assert.Equal(t, "b set", cue.Text)
}

func TestDecode_MultipleDataUnits(t *testing.T) {
	d := NewDecoder()

	body := statementData(
		dataUnit(unitStatementBody, []byte("one ")),
		dataUnit(0x30, []byte{0x01, 0x02, 0x03}),
		dataUnit(unitStatementBody, []byte("two")),
	)
	cue, err := d.Decode(pesPayload(dataGroup(0x01, body)))
	require.NoError(t, err)
	require.NotNil(t, cue)
	assert.Equal(t, "one two", cue.Text)
}

func TestDecode_ParameterOverflowIsDeterministic(t *testing.T) {
	body := append([]byte("abc"), csi("1234567890", csiSDF)...)
	body = append(body, []byte("never")...)

	for n := 0; n < 3; n++ {
		d := NewDecoder()
		cue, err := d.Decode(statementPayload(body))
		assert.True(t, errors.Is(err, ErrParameterOverflow))
		// text accumulated before the failure is still emitted
		require.NotNil(t, cue)
		assert.Equal(t, "abc", cue.Text)
	}
}

func TestDecode_MaxTextSize(t *testing.T) {
	d := NewDecoder(WithMaxTextSize(4))

	cue, err := d.Decode(statementPayload([]byte("abcdef")))
	assert.True(t, errors.Is(err, ErrTextBufferFull))
	require.NotNil(t, cue)
	assert.Equal(t, "abc", cue.Text)
}

func TestDecode_LineBreaksAcrossCues(t *testing.T) {
	d := NewDecoder()
	body := []byte{0x1C, 0x41, 0x40, 'a', 0x1C, 0x42, 0x40, 'b'}

	for n := 0; n < 2; n++ {
		d.SetTimestamp(uint64(100 * (n + 1)))
		cue, err := d.Decode(statementPayload(body))
		require.NoError(t, err)
		require.NotNil(t, cue)
		assert.Equal(t, "a\r\nb", cue.Text)

		ls := d.Context().State.Layout
		assert.Equal(t, 0, ls.PrevLineBottom)
		assert.Equal(t, 0, ls.LineWidth)
	}
}

func TestDecode_Superimpose(t *testing.T) {
	d := NewDecoder(WithSuperimpose())

	group := dataGroup(0x01, statementData(dataUnit(unitStatementBody, []byte("news"))))
	cue, err := d.Decode(append([]byte{dataIdentifierAsync, privateStreamID, 0xF0}, group...))
	require.NoError(t, err)
	require.NotNil(t, cue)
	assert.Equal(t, "news", cue.Text)
	assert.Equal(t, "ISDB-superimpose", cue.Source)

	// closed caption payloads are rejected
	cue, err = d.Decode(statementPayload([]byte("cc")))
	assert.Nil(t, cue)
	assert.True(t, errors.Is(err, ErrMalformedEnvelope))
}
