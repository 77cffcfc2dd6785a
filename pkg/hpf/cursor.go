package hpf

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// cursor provides typed reads over a chunk payload, advancing an offset.
// All multi-byte fields are little-endian. Reads past the end of the payload
// surface as ErrTruncatedChunk rather than panics.
type cursor struct {
	buf []byte
	pos int
}

func newCursor(payload []byte) *cursor {
	return &cursor{buf: payload}
}

func (c *cursor) need(n int) error {
	if c.pos+n > len(c.buf) {
		return fmt.Errorf("field at offset %d needs %d bytes, %d remain: %w",
			c.pos, n, len(c.buf)-c.pos, ErrTruncatedChunk)
	}
	return nil
}

func (c *cursor) skip(n int) error {
	if err := c.need(n); err != nil {
		return err
	}
	c.pos += n
	return nil
}

func (c *cursor) readI32() (int32, error) {
	if err := c.need(4); err != nil {
		return 0, err
	}
	v := int32(binary.LittleEndian.Uint32(c.buf[c.pos:]))
	c.pos += 4
	return v, nil
}

func (c *cursor) readI64() (int64, error) {
	if err := c.need(8); err != nil {
		return 0, err
	}
	v := int64(binary.LittleEndian.Uint64(c.buf[c.pos:]))
	c.pos += 8
	return v, nil
}

// readFourCC reads a four-character code such as "datx".
func (c *cursor) readFourCC() (string, error) {
	if err := c.need(4); err != nil {
		return "", err
	}
	s := string(c.buf[c.pos : c.pos+4])
	c.pos += 4
	return s, nil
}

// readCString reads a NUL-terminated byte string. The remainder of the
// payload without a terminator counts as the whole string; the instrument
// pads chunks past the terminator, so the cursor stops there.
func (c *cursor) readCString() ([]byte, error) {
	rest := c.buf[c.pos:]
	if i := bytes.IndexByte(rest, 0); i >= 0 {
		c.pos += i + 1
		return rest[:i], nil
	}
	c.pos = len(c.buf)
	return rest, nil
}

// slice returns payload bytes [off, off+n) without moving the cursor.
// Data chunks locate per-channel sample runs this way.
func (c *cursor) slice(off, n int) ([]byte, error) {
	if off < 0 || n < 0 || off+n > len(c.buf) {
		return nil, fmt.Errorf("region [%d,%d) outside chunk of %d bytes: %w",
			off, off+n, len(c.buf), ErrTruncatedChunk)
	}
	return c.buf[off : off+n], nil
}
