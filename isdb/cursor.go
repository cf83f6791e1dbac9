package isdb

import (
	"fmt"

	"github.com/asticode/go-astikit"
)

func nextByte(i *astikit.BytesIterator, field string) (byte, error) {
	b, err := i.NextByte()
	if err != nil {
		return 0, fmt.Errorf("isdb: reading %s failed: %w", field, ErrTruncatedField)
	}
	return b, nil
}

func nextBytes(i *astikit.BytesIterator, n int, field string) ([]byte, error) {
	bs, err := i.NextBytesNoCopy(n)
	if err != nil || len(bs) < n {
		return nil, fmt.Errorf("isdb: reading %d bytes of %s failed: %w", n, field, ErrTruncatedField)
	}
	return bs, nil
}

func nextUint16(i *astikit.BytesIterator, field string) (int, error) {
	bs, err := nextBytes(i, 2, field)
	if err != nil {
		return 0, err
	}
	return int(bs[0])<<8 | int(bs[1]), nil
}

func nextUint24(i *astikit.BytesIterator, field string) (int, error) {
	bs, err := nextBytes(i, 3, field)
	if err != nil {
		return 0, err
	}
	return int(bs[0])<<16 | int(bs[1])<<8 | int(bs[2]), nil
}

func skip(i *astikit.BytesIterator, n int, field string) error {
	_, err := nextBytes(i, n, field)
	return err
}

func bytesLeft(i *astikit.BytesIterator) int {
	return i.Len() - i.Offset()
}
