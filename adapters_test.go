package swiftcodec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kadir-run/swiftcodec"
)

func TestUUIDEncoding(t *testing.T) {
	id := [16]byte{0x12, 0x3e, 0x45, 0x67, 0xe8, 0x9b, 0x12, 0xd3, 0xa4, 0x56, 0x42, 0x66, 0x14, 0x17, 0x40, 0x00}
	out, err := swiftcodec.Marshal(swiftcodec.NewUUID(id))
	require.NoError(t, err)
	assert.Equal(t, `"123e4567-e89b-12d3-a456-426614174000"`, string(out))
}

func TestDateTimeNaiveVsAware(t *testing.T) {
	aware := time.Date(2021, time.January, 2, 3, 4, 5, 678000000, time.UTC)
	out, err := swiftcodec.Marshal(swiftcodec.NewDateTime(swiftcodec.CalendarValue{T: aware}))
	require.NoError(t, err)
	assert.Equal(t, `"2021-01-02T03:04:05.678000+00:00"`, string(out))

	out, err = swiftcodec.MarshalOptions(swiftcodec.NewDateTime(swiftcodec.CalendarValue{T: aware}), swiftcodec.OptUTCZ)
	require.NoError(t, err)
	assert.Equal(t, `"2021-01-02T03:04:05.678000Z"`, string(out))

	naive := swiftcodec.CalendarValue{T: time.Date(2021, time.January, 2, 3, 4, 5, 0, time.UTC), Naive: true}
	out, err = swiftcodec.Marshal(swiftcodec.NewDateTime(naive))
	require.NoError(t, err)
	assert.Equal(t, `"2021-01-02T03:04:05"`, string(out))

	out, err = swiftcodec.MarshalOptions(swiftcodec.NewDateTime(naive), swiftcodec.OptNaiveUTC|swiftcodec.OptUTCZ)
	require.NoError(t, err)
	assert.Equal(t, `"2021-01-02T03:04:05Z"`, string(out))
}

func TestOmitMicroseconds(t *testing.T) {
	aware := swiftcodec.CalendarValue{T: time.Date(2021, time.January, 2, 3, 4, 5, 678000000, time.UTC)}
	out, err := swiftcodec.MarshalOptions(swiftcodec.NewDateTime(aware), swiftcodec.OptOmitMicroseconds|swiftcodec.OptUTCZ)
	require.NoError(t, err)
	assert.Equal(t, `"2021-01-02T03:04:05Z"`, string(out))
}

func TestDateAndTimeOnly(t *testing.T) {
	c := swiftcodec.CalendarValue{T: time.Date(2021, time.January, 2, 3, 4, 5, 0, time.UTC)}
	out, err := swiftcodec.Marshal(swiftcodec.NewDate(c))
	require.NoError(t, err)
	assert.Equal(t, `"2021-01-02"`, string(out))

	out, err = swiftcodec.Marshal(swiftcodec.NewTime(c))
	require.NoError(t, err)
	assert.Equal(t, `"03:04:05"`, string(out))
}

func TestNDArrayEncoding(t *testing.T) {
	data := []byte{1, 0, 0, 0, 2, 0, 0, 0, 3, 0, 0, 0, 4, 0, 0, 0}
	nd := &swiftcodec.NDArray{DType: swiftcodec.DTypeI32, Shape: []int{2, 2}, Data: data}
	out, err := swiftcodec.MarshalOptions(swiftcodec.NewNDArray(nd), swiftcodec.OptSerializeNumpy)
	require.NoError(t, err)
	assert.Equal(t, `[[1,2],[3,4]]`, string(out))
}

func TestNDArrayRejectsNonContiguous(t *testing.T) {
	data := make([]byte, 16)
	nd := &swiftcodec.NDArray{DType: swiftcodec.DTypeI32, Shape: []int{2, 2}, Strides: []int{1, 2}, Data: data}
	_, err := swiftcodec.MarshalOptions(swiftcodec.NewNDArray(nd), swiftcodec.OptSerializeNumpy)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not C contiguous")
}

func TestNDArrayRejectsScalar(t *testing.T) {
	nd := &swiftcodec.NDArray{DType: swiftcodec.DTypeI32, Shape: nil, Data: []byte{1, 0, 0, 0}}
	_, err := swiftcodec.MarshalOptions(swiftcodec.NewNDArray(nd), swiftcodec.OptSerializeNumpy)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "0-dim array")
}

func TestNDArrayRejectsPicosecondUnit(t *testing.T) {
	nd := &swiftcodec.NDArray{DType: swiftcodec.DTypeDateTime64, Unit: swiftcodec.UnitPicos, Shape: []int{1}, Data: make([]byte, 8)}
	_, err := swiftcodec.MarshalOptions(swiftcodec.NewNDArray(nd), swiftcodec.OptSerializeNumpy)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "picoseconds")
}

func TestNDArrayZeroLengthDimensionAllowed(t *testing.T) {
	nd := &swiftcodec.NDArray{DType: swiftcodec.DTypeI32, Shape: []int{0}, Data: nil}
	out, err := swiftcodec.MarshalOptions(swiftcodec.NewNDArray(nd), swiftcodec.OptSerializeNumpy)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(out))
}

func TestNonStrKeys(t *testing.T) {
	obj := swiftcodec.NewEmptyObject()
	obj.Append(swiftcodec.IntKey(42), swiftcodec.NewString("answer"))
	obj.Append(swiftcodec.BoolKey(true), swiftcodec.NewInt(1))
	_, err := swiftcodec.Marshal(swiftcodec.NewObject(obj))
	require.Error(t, err)
	var eerr *swiftcodec.EncodeError
	require.ErrorAs(t, err, &eerr)
	assert.Equal(t, swiftcodec.ReasonInvalidKey, eerr.Reason)

	out, err := swiftcodec.MarshalOptions(swiftcodec.NewObject(obj), swiftcodec.OptNonStrKeys)
	require.NoError(t, err)
	assert.Equal(t, `{"42":"answer","true":1}`, string(out))
}

func TestFragmentPassthrough(t *testing.T) {
	out, err := swiftcodec.Marshal(swiftcodec.NewArray(swiftcodec.NewFragment([]byte(`{"raw":true}`))))
	require.NoError(t, err)
	assert.Equal(t, `[{"raw":true}]`, string(out))
}
