package testxdr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xdrgen/xdr"
)

func TestPointRoundTrip(t *testing.T) {
	buf, err := xdr.Marshal(&Point{X: 1, Y: 2})
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 1, 0, 0, 0, 2}, buf)

	v, err := xdr.Unmarshal(buf, DecodePoint)
	require.NoError(t, err)
	assert.Equal(t, Point{X: 1, Y: 2}, v)
}

func TestPointShortBuffer(t *testing.T) {
	_, err := xdr.Unmarshal([]byte{0, 0, 0, 1, 0, 0}, DecodePoint)
	assert.ErrorIs(t, err, xdr.ErrUnexpectedEOF)
}

func TestPointTrailingData(t *testing.T) {
	buf := []byte{0, 0, 0, 1, 0, 0, 0, 2, 0, 0, 0, 0}
	_, err := xdr.Unmarshal(buf, DecodePoint)
	assert.ErrorIs(t, err, xdr.ErrTrailingData)
}

func TestOpaquePadding(t *testing.T) {
	buf, err := xdr.Marshal(Short_id("abc"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 3, 'a', 'b', 'c', 0}, buf)

	v, err := xdr.Unmarshal(buf, DecodeShort_id)
	require.NoError(t, err)
	assert.Equal(t, Short_id("abc"), v)
}

func TestOpaqueNonZeroPadding(t *testing.T) {
	buf := []byte{0, 0, 0, 2, 'a', 'b', 0, 1}
	_, err := xdr.Unmarshal(buf, DecodeShort_id)
	assert.ErrorIs(t, err, xdr.ErrNonZeroPadding)
}

func TestOpaqueBound(t *testing.T) {
	_, err := xdr.Marshal(Short_id("abcde"))
	var lerr xdr.LengthExceedsBoundError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, uint32(4), lerr.Max)
	assert.Equal(t, uint32(5), lerr.Actual)

	buf := []byte{0, 0, 0, 5, 'a', 'b', 'c', 'd', 'e', 0, 0, 0}
	_, err = xdr.Unmarshal(buf, DecodeShort_id)
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, uint32(5), lerr.Actual)
}

func TestEnum(t *testing.T) {
	assert.Equal(t, "GREEN", GREEN.String())
	assert.Equal(t, "Color(5)", Color(5).String())
	assert.True(t, RED.Valid())
	assert.False(t, Color(5).Valid())

	_, err := xdr.Unmarshal([]byte{0, 0, 0, 5}, DecodeColor)
	var eerr xdr.InvalidEnumValueError
	require.ErrorAs(t, err, &eerr)
	assert.Equal(t, "Color", eerr.Enum)
	assert.Equal(t, int32(5), eerr.Value)
}

func TestEntryRoundTrip(t *testing.T) {
	in := Entry{
		Name:      "ab",
		Tint:      GREEN,
		Next_hint: &Point{X: 3, Y: 4},
		Weights:   []int32{7, -1},
	}
	buf, err := xdr.Marshal(&in)
	require.NoError(t, err)
	assert.Equal(t, []byte{
		0, 0, 0, 2, 'a', 'b', 0, 0, // name
		0, 0, 0, 1, // tint
		0, 0, 0, 1, 0, 0, 0, 3, 0, 0, 0, 4, // *next_hint
		0, 0, 0, 2, 0, 0, 0, 7, 0xff, 0xff, 0xff, 0xff, // weights
	}, buf)

	out, err := xdr.Unmarshal(buf, DecodeEntry)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestEntryAbsentOption(t *testing.T) {
	in := Entry{Name: "x", Tint: RED, Weights: []int32{1}}
	buf, err := xdr.Marshal(&in)
	require.NoError(t, err)

	out, err := xdr.Unmarshal(buf, DecodeEntry)
	require.NoError(t, err)
	assert.Nil(t, out.Next_hint)
	assert.Equal(t, in.Weights, out.Weights)
}

func TestEntryWeightsBound(t *testing.T) {
	in := Entry{Name: "x", Tint: RED, Weights: []int32{1, 2, 3, 4}}
	_, err := xdr.Marshal(&in)
	var lerr xdr.LengthExceedsBoundError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, uint32(3), lerr.Max)
}

func TestUnionRoundTrip(t *testing.T) {
	var u Shape
	u.Kind = RED
	*u.Center() = Point{X: 9, Y: 10}

	buf, err := xdr.Marshal(&u)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 9, 0, 0, 0, 10}, buf)

	out, err := xdr.Unmarshal(buf, DecodeShape)
	require.NoError(t, err)
	assert.Equal(t, RED, out.Kind)
	assert.Equal(t, Point{X: 9, Y: 10}, *out.Center())
}

func TestUnionVoidArm(t *testing.T) {
	buf, err := xdr.Marshal(&Shape{Kind: GREEN})
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 1}, buf)

	out, err := xdr.Unmarshal(buf, DecodeShape)
	require.NoError(t, err)
	assert.Equal(t, GREEN, out.Kind)
}

func TestUnionBadDiscriminant(t *testing.T) {
	_, err := xdr.Unmarshal([]byte{0, 0, 0, 2}, DecodeShape)
	var derr xdr.InvalidUnionDiscriminantError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "Shape", derr.Union)
	assert.Equal(t, int64(2), derr.Value)

	_, err = xdr.Marshal(&Shape{Kind: Color(2)})
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, int64(2), derr.Value)
}

func TestUnionWrongArmPanics(t *testing.T) {
	u := Shape{Kind: GREEN}
	assert.Panics(t, func() { u.Center() })
}
