package xdr

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorPrimitives(t *testing.T) {
	b := NewBuilder()
	b.PutInt32(-5)
	b.PutUint32(7)
	b.PutInt64(-1 << 40)
	b.PutUint64(1 << 40)
	b.PutFloat(1.5)
	b.PutDouble(-2.25)
	b.PutBool(true)

	c := NewCursor(b.Bytes())

	i32, err := c.Int32()
	require.NoError(t, err)
	assert.Equal(t, int32(-5), i32)

	u32, err := c.Uint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(7), u32)

	i64, err := c.Int64()
	require.NoError(t, err)
	assert.Equal(t, int64(-1<<40), i64)

	u64, err := c.Uint64()
	require.NoError(t, err)
	assert.Equal(t, uint64(1<<40), u64)

	f, err := c.Float()
	require.NoError(t, err)
	assert.Equal(t, float32(1.5), f)

	d, err := c.Double()
	require.NoError(t, err)
	assert.Equal(t, -2.25, d)

	v, err := c.Bool()
	require.NoError(t, err)
	assert.True(t, v)
	assert.Equal(t, 0, c.Remaining())
}

func TestCursorEOF(t *testing.T) {
	c := NewCursor([]byte{0, 0})
	_, err := c.Uint32()
	assert.ErrorIs(t, err, ErrUnexpectedEOF)

	c = NewCursor([]byte{0, 0, 0, 0, 0, 0})
	_, err = c.Uint64()
	assert.ErrorIs(t, err, ErrUnexpectedEOF)
}

func TestCursorBool(t *testing.T) {
	c := NewCursor([]byte{0, 0, 0, 2})
	_, err := c.Bool()
	var eerr InvalidEnumValueError
	require.ErrorAs(t, err, &eerr)
	assert.Equal(t, "bool", eerr.Enum)
	assert.Equal(t, int32(2), eerr.Value)
}

func TestLengthBound(t *testing.T) {
	c := NewCursor([]byte{0, 0, 0, 9})
	_, err := c.Length(8)
	var lerr LengthExceedsBoundError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, uint32(8), lerr.Max)
	assert.Equal(t, uint32(9), lerr.Actual)

	c = NewCursor([]byte{0, 0, 0, 9})
	n, err := c.Length(MaxBound)
	require.NoError(t, err)
	assert.Equal(t, uint32(9), n)
}

func TestSliceCapClamp(t *testing.T) {
	// Claims 1<<30 elements but holds almost nothing.
	c := NewCursor(make([]byte, 64))
	assert.Equal(t, 16, c.SliceCap(1<<30, 4))
	assert.Equal(t, 8, c.SliceCap(1<<30, 8))
	assert.Equal(t, 3, c.SliceCap(3, 4))
}

func TestFixedBytesBorrowsAndPads(t *testing.T) {
	buf := []byte{'h', 'i', 0, 0, 0xaa}
	c := NewCursor(buf)
	v, err := c.FixedBytes(2)
	require.NoError(t, err)
	assert.Equal(t, []byte("hi"), v)
	assert.Equal(t, 4, c.Pos())

	// The view aliases the input; appending must not clobber it.
	_ = append(v, 'X')
	assert.Equal(t, byte(0xaa), buf[4])
}

func TestNonZeroPadding(t *testing.T) {
	c := NewCursor([]byte{'h', 'i', 0, 1})
	_, err := c.FixedBytes(2)
	assert.ErrorIs(t, err, ErrNonZeroPadding)
}

func TestVarBytesRoundTrip(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.PutVarBytes(16, []byte("abcde")))
	assert.Equal(t, []byte{0, 0, 0, 5, 'a', 'b', 'c', 'd', 'e', 0, 0, 0}, b.Bytes())

	c := NewCursor(b.Bytes())
	v, err := c.VarBytes(16)
	require.NoError(t, err)
	assert.Equal(t, []byte("abcde"), v)
	assert.Equal(t, 0, c.Remaining())
}

func TestStringRoundTrip(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.PutString(8, "hey"))
	c := NewCursor(b.Bytes())
	s, err := c.String(8)
	require.NoError(t, err)
	assert.Equal(t, "hey", s)
}

func TestBuilderBoundChecks(t *testing.T) {
	b := NewBuilder()
	err := b.PutVarBytes(2, []byte("abc"))
	var lerr LengthExceedsBoundError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, uint32(2), lerr.Max)
	assert.Equal(t, uint32(3), lerr.Actual)

	assert.Error(t, b.PutString(1, "no"))
	assert.Error(t, b.PutLen(4, 5))
	assert.NoError(t, b.PutLen(4, 4))
}

func TestCanonicalFloatBits(t *testing.T) {
	b := NewBuilder()
	b.PutDouble(math.Pi)
	c := NewCursor(b.Bytes())
	bits, err := c.Uint64()
	require.NoError(t, err)
	assert.Equal(t, math.Float64bits(math.Pi), bits)
}

type pair struct {
	A, B uint32
}

func (p *pair) EncodeTo(b *Builder) error {
	b.PutUint32(p.A)
	b.PutUint32(p.B)
	return nil
}

func decodePair(c *Cursor) (pair, error) {
	var p pair
	var err error
	if p.A, err = c.Uint32(); err != nil {
		return p, err
	}
	if p.B, err = c.Uint32(); err != nil {
		return p, err
	}
	return p, nil
}

func TestMarshalUnmarshal(t *testing.T) {
	buf, err := Marshal(&pair{A: 1, B: 2})
	require.NoError(t, err)

	p, err := Unmarshal(buf, decodePair)
	require.NoError(t, err)
	assert.Equal(t, pair{A: 1, B: 2}, p)

	_, err = Unmarshal(append(buf, 0), decodePair)
	assert.ErrorIs(t, err, ErrTrailingData)
}
