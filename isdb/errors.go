package isdb

import "errors"

// ErrMalformedEnvelope is returned when a payload does not start with the
// synchronized PES data identifier. The payload should be dropped, the
// session stays usable.
var ErrMalformedEnvelope = errors.New("isdb: not a synchronized PES payload")

// ErrTruncatedField is returned when a fixed-width field runs past the end of
// the supplied bytes.
var ErrTruncatedField = errors.New("isdb: truncated field")

// ErrParameterOverflow is returned when a CSI parameter list does not fit the
// parameter buffer. It fails the enclosing statement.
var ErrParameterOverflow = errors.New("isdb: csi parameter overflow")

// ErrTextBufferFull is returned when the text buffer would grow past the
// configured maximum size.
var ErrTextBufferFull = errors.New("isdb: text buffer is full")

// ErrInvalidDataGroup is reported when a data group id is neither caption
// management nor a statement language. The group is ignored.
var ErrInvalidDataGroup = errors.New("isdb: invalid data group id")
