package isdb

import "fmt"

// textBlockSize is the growth granularity of the text buffer.
const textBlockSize = 128

// maxInsertLen bounds a single Insert call.
const maxInsertLen = 128

// TextBuffer accumulates decoded text and line break markers. Its capacity is
// always at least one byte larger than the used length so a terminator fits.
// Tail marks the end of visible text, excluding trailing line break markers.
type TextBuffer struct {
	buf  []byte
	used int
	tail int
	max  int
}

// NewTextBuffer allocates one block. A max of zero means unbounded growth.
func NewTextBuffer(max int) *TextBuffer {
	size := textBlockSize
	if max > 0 && max < size {
		size = max
	}
	return &TextBuffer{
		buf: make([]byte, size),
		max: max,
	}
}

func (t *TextBuffer) reserve(n int) error {
	if len(t.buf) >= t.used+n {
		return nil
	}

	blen := ((t.used + n + textBlockSize - 1) / textBlockSize) * textBlockSize
	if t.max > 0 && blen > t.max {
		if t.used+n > t.max {
			return fmt.Errorf("%w: %d bytes needed, max is %d", ErrTextBufferFull, t.used+n, t.max)
		}
		blen = t.max
	}

	grown := make([]byte, blen)
	copy(grown, t.buf[:t.used])
	t.buf = grown
	return nil
}

// AppendChar appends one byte. A line break byte at the start of an empty
// buffer is dropped.
func (t *TextBuffer) AppendChar(ch byte) error {
	if t.used == 0 && (ch == '\n' || ch == '\r') {
		return nil
	}
	if err := t.reserve(2); err != nil {
		return err
	}
	t.buf[t.used] = ch
	t.used++
	t.buf[t.used] = 0
	if ch != '\n' && ch != '\r' {
		t.tail = t.used
	}
	return nil
}

// Insert places s at offset begin, shifting the rest of the buffer. Empty
// strings and strings longer than 128 bytes are ignored.
func (t *TextBuffer) Insert(s string, begin int) error {
	if len(s) == 0 || len(s) > maxInsertLen {
		return nil
	}
	if begin < 0 || begin > t.used {
		return fmt.Errorf("isdb: insert offset %d out of range [0, %d]", begin, t.used)
	}
	if err := t.reserve(len(s) + 1); err != nil {
		return err
	}

	copy(t.buf[begin+len(s):], t.buf[begin:t.used])
	copy(t.buf[begin:], s)
	t.tail += len(s)
	t.used += len(s)
	t.buf[t.used] = 0
	return nil
}

func (t *TextBuffer) Len() int {
	return t.used
}

func (t *TextBuffer) Cap() int {
	return len(t.buf)
}

func (t *TextBuffer) Tail() int {
	return t.tail
}

// Bytes returns the used part of the buffer. The slice is only valid until
// the next mutation.
func (t *TextBuffer) Bytes() []byte {
	return t.buf[:t.used:t.used]
}

func (t *TextBuffer) String() string {
	return string(t.buf[:t.used])
}

// Reset empties the buffer and keeps its capacity.
func (t *TextBuffer) Reset() {
	t.used = 0
	t.tail = 0
	t.buf[0] = 0
}
