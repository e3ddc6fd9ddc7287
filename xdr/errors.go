// Package xdr is the runtime support library for generated XDR
// codecs: a bounds-checked decode cursor over a caller-owned buffer,
// an append-only big-endian builder, and the error values generated
// decoders report for malformed input.
//
// Decode and encode are pure functions of their inputs.  Any number
// of cursors may read the same underlying buffer concurrently;
// decoded values borrow from that buffer and never outlive it.
package xdr

import (
	"errors"
	"fmt"
)

// MaxBound marks an unbounded variable-length construct.  A declared
// bound of 0xffffffff is treated identically.
const MaxBound uint32 = 0xffffffff

var (
	// ErrUnexpectedEOF reports a buffer too short for the data it
	// claims to contain.
	ErrUnexpectedEOF = errors.New("xdr: unexpected end of input")

	// ErrNonZeroPadding reports alignment padding bytes that were not
	// zero-filled as the protocol mandates.
	ErrNonZeroPadding = errors.New("xdr: non-zero padding bytes")

	// ErrTrailingData reports bytes left over after Unmarshal decoded
	// a complete value.
	ErrTrailingData = errors.New("xdr: trailing bytes after value")
)

// InvalidUnionDiscriminantError reports a union discriminant that
// matches no declared case when the union has no default arm.
type InvalidUnionDiscriminantError struct {
	Union string
	Value int64
}

func (e InvalidUnionDiscriminantError) Error() string {
	return fmt.Sprintf("xdr: invalid discriminant %d for union %s",
		e.Value, e.Union)
}

// InvalidEnumValueError reports a decoded enum value outside the
// enum's declared labels.
type InvalidEnumValueError struct {
	Enum  string
	Value int32
}

func (e InvalidEnumValueError) Error() string {
	return fmt.Sprintf("xdr: invalid value %d for enum %s", e.Value, e.Enum)
}

// LengthExceedsBoundError reports a length, declared on the wire or
// present in a value being encoded, above the type's declared bound.
type LengthExceedsBoundError struct {
	Max    uint32
	Actual uint32
}

func (e LengthExceedsBoundError) Error() string {
	return fmt.Sprintf("xdr: length %d exceeds bound %d", e.Actual, e.Max)
}
