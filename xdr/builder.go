package xdr

import (
	"encoding/binary"
	"math"
)

var zerofill = [4][]byte{{}, {0, 0, 0}, {0, 0}, {0}}

// Builder serializes values into canonical XDR: big-endian, 4-byte
// aligned, zero padded.  The zero Builder is ready to use; Bytes
// returns the freshly owned result.
type Builder struct {
	buf []byte
}

func NewBuilder() *Builder { return &Builder{} }

func (b *Builder) Bytes() []byte { return b.buf }

func (b *Builder) Len() int { return len(b.buf) }

func (b *Builder) PutUint32(v uint32) {
	b.buf = binary.BigEndian.AppendUint32(b.buf, v)
}

func (b *Builder) PutInt32(v int32) { b.PutUint32(uint32(v)) }

func (b *Builder) PutUint64(v uint64) {
	b.buf = binary.BigEndian.AppendUint64(b.buf, v)
}

func (b *Builder) PutInt64(v int64) { b.PutUint64(uint64(v)) }

func (b *Builder) PutFloat(v float32) { b.PutUint32(math.Float32bits(v)) }

func (b *Builder) PutDouble(v float64) { b.PutUint64(math.Float64bits(v)) }

func (b *Builder) PutBool(v bool) {
	if v {
		b.PutUint32(1)
	} else {
		b.PutUint32(0)
	}
}

// PutLen writes the count prefix of a variable-length construct,
// re-validating the declared bound so that an over-long value built
// programmatically cannot encode an undecodable message.
func (b *Builder) PutLen(bound, n uint32) error {
	if n > bound {
		return LengthExceedsBoundError{Max: bound, Actual: n}
	}
	b.PutUint32(n)
	return nil
}

// PutFixedBytes writes opaque data plus its alignment padding.
func (b *Builder) PutFixedBytes(p []byte) {
	b.buf = append(b.buf, p...)
	b.buf = append(b.buf, zerofill[len(p)&3]...)
}

func (b *Builder) PutVarBytes(bound uint32, p []byte) error {
	n, err := lenU32(len(p), bound)
	if err != nil {
		return err
	}
	b.PutUint32(n)
	b.PutFixedBytes(p)
	return nil
}

func (b *Builder) PutString(bound uint32, s string) error {
	n, err := lenU32(len(s), bound)
	if err != nil {
		return err
	}
	b.PutUint32(n)
	b.buf = append(b.buf, s...)
	b.buf = append(b.buf, zerofill[len(s)&3]...)
	return nil
}

func lenU32(n int, bound uint32) (uint32, error) {
	if uint64(n) > uint64(bound) {
		actual := uint32(MaxBound)
		if uint64(n) <= uint64(MaxBound) {
			actual = uint32(n)
		}
		return 0, LengthExceedsBoundError{Max: bound, Actual: actual}
	}
	return uint32(n), nil
}
