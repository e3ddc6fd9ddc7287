package xdr

import (
	"encoding/binary"
	"math"
)

// Cursor reads XDR data from an immutable byte buffer.  The buffer is
// owned by the caller; byte views handed out by VarBytes and
// FixedBytes alias it and are valid only as long as the buffer is.
//
// All methods detect malformed input and return an error instead of
// panicking, whatever the buffer contents.
type Cursor struct {
	buf []byte
	pos int
}

func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Pos returns the number of bytes consumed so far.
func (c *Cursor) Pos() int { return c.pos }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.buf) - c.pos }

// Need fails with ErrUnexpectedEOF unless at least n more bytes
// remain.  Decoders for fixed-size types call it once up front and
// then use the unchecked Get reads.
func (c *Cursor) Need(n uint64) error {
	if uint64(c.Remaining()) < n {
		return ErrUnexpectedEOF
	}
	return nil
}

// Get32 reads four bytes without a bounds check.  Callers must have
// reserved the bytes with Need; on a short buffer it returns 0 rather
// than reading out of bounds.
func (c *Cursor) Get32() uint32 {
	if c.Remaining() < 4 {
		c.pos = len(c.buf)
		return 0
	}
	v := binary.BigEndian.Uint32(c.buf[c.pos:])
	c.pos += 4
	return v
}

// Get64 is Get32's eight-byte counterpart.
func (c *Cursor) Get64() uint64 {
	if c.Remaining() < 8 {
		c.pos = len(c.buf)
		return 0
	}
	v := binary.BigEndian.Uint64(c.buf[c.pos:])
	c.pos += 8
	return v
}

// GetFloat and GetDouble are the unchecked float reads.
func (c *Cursor) GetFloat() float32  { return math.Float32frombits(c.Get32()) }
func (c *Cursor) GetDouble() float64 { return math.Float64frombits(c.Get64()) }

func (c *Cursor) Uint32() (uint32, error) {
	if err := c.Need(4); err != nil {
		return 0, err
	}
	return c.Get32(), nil
}

func (c *Cursor) Int32() (int32, error) {
	v, err := c.Uint32()
	return int32(v), err
}

func (c *Cursor) Uint64() (uint64, error) {
	if err := c.Need(8); err != nil {
		return 0, err
	}
	return c.Get64(), nil
}

func (c *Cursor) Int64() (int64, error) {
	v, err := c.Uint64()
	return int64(v), err
}

func (c *Cursor) Float() (float32, error) {
	v, err := c.Uint32()
	return math.Float32frombits(v), err
}

func (c *Cursor) Double() (float64, error) {
	v, err := c.Uint64()
	return math.Float64frombits(v), err
}

// Bool decodes an XDR boolean, which shares the enum representation:
// any value other than 0 or 1 is invalid.
func (c *Cursor) Bool() (bool, error) {
	v, err := c.Uint32()
	if err != nil {
		return false, err
	}
	if v > 1 {
		return false, InvalidEnumValueError{Enum: "bool", Value: int32(v)}
	}
	return v == 1, nil
}

// Flag decodes an optional-value presence flag, encoded as a bool.
func (c *Cursor) Flag() (bool, error) {
	return c.Bool()
}

// Length decodes the 4-byte count prefixing a variable-length
// construct and validates it against the declared bound before any
// element is decoded.
func (c *Cursor) Length(bound uint32) (uint32, error) {
	n, err := c.Uint32()
	if err != nil {
		return 0, err
	}
	if n > bound {
		return 0, LengthExceedsBoundError{Max: bound, Actual: n}
	}
	return n, nil
}

// SliceCap bounds the initial allocation for an n-element sequence of
// elements no smaller than elemMin bytes, so a hostile length prefix
// cannot force a huge allocation before element decoding fails.
func (c *Cursor) SliceCap(n uint32, elemMin uint64) int {
	if elemMin < 4 {
		elemMin = 4
	}
	if fit := uint64(c.Remaining()) / elemMin; uint64(n) > fit {
		return int(fit)
	}
	return int(n)
}

func (c *Cursor) pad(n uint32) error {
	if n&3 == 0 {
		return nil
	}
	pad := 4 - n&3
	if err := c.Need(uint64(pad)); err != nil {
		return err
	}
	for _, b := range c.buf[c.pos : c.pos+int(pad)] {
		if b != 0 {
			return ErrNonZeroPadding
		}
	}
	c.pos += int(pad)
	return nil
}

// FixedBytes returns a borrowed view of the next n data bytes and
// consumes the zero padding that aligns them.
func (c *Cursor) FixedBytes(n uint32) ([]byte, error) {
	if err := c.Need(uint64(n)); err != nil {
		return nil, err
	}
	v := c.buf[c.pos : c.pos+int(n) : c.pos+int(n)]
	c.pos += int(n)
	return v, c.pad(n)
}

// VarBytes decodes a length-prefixed opaque value as a borrowed view
// into the buffer.  No byte is copied.
func (c *Cursor) VarBytes(bound uint32) ([]byte, error) {
	n, err := c.Length(bound)
	if err != nil {
		return nil, err
	}
	return c.FixedBytes(n)
}

// String decodes a length-prefixed string.  Strings are materialized
// rather than borrowed because Go strings are immutable copies by
// construction.
func (c *Cursor) String(bound uint32) (string, error) {
	b, err := c.VarBytes(bound)
	return string(b), err
}
