package binwire

import (
	"encoding/binary"
	"errors"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalarRoundTrip(t *testing.T) {
	for _, order := range []binary.ByteOrder{binary.BigEndian, binary.LittleEndian} {
		w := NewBufferWriter(make([]byte, 128))
		e := NewEncoder(w, order)
		require.NoError(t, e.WriteBool(true))
		require.NoError(t, e.WriteI8(-5))
		require.NoError(t, e.WriteU16(65535))
		require.NoError(t, e.WriteI32(-123456))
		require.NoError(t, e.WriteU64(1<<63+17))
		require.NoError(t, e.WriteI64(-1))
		require.NoError(t, e.WriteU128(Uint128{Hi: 0xDEAD, Lo: 0xBEEF}))
		require.NoError(t, e.WriteI128(Int128{Hi: -1, Lo: 42}))
		require.NoError(t, e.WriteF32(12.25))
		require.NoError(t, e.WriteF64(-0.125))
		require.NoError(t, e.WriteRune('𐍈'))

		d := NewDecoder(NewSliceSource(w.Bytes()), order)
		b, err := d.ReadBool()
		require.NoError(t, err)
		assert.True(t, b)
		i8, err := d.ReadI8()
		require.NoError(t, err)
		assert.Equal(t, int8(-5), i8)
		u16, err := d.ReadU16()
		require.NoError(t, err)
		assert.Equal(t, uint16(65535), u16)
		i32, err := d.ReadI32()
		require.NoError(t, err)
		assert.Equal(t, int32(-123456), i32)
		u64, err := d.ReadU64()
		require.NoError(t, err)
		assert.Equal(t, uint64(1<<63+17), u64)
		i64, err := d.ReadI64()
		require.NoError(t, err)
		assert.Equal(t, int64(-1), i64)
		u128, err := d.ReadU128()
		require.NoError(t, err)
		assert.Equal(t, Uint128{Hi: 0xDEAD, Lo: 0xBEEF}, u128)
		i128, err := d.ReadI128()
		require.NoError(t, err)
		assert.Equal(t, Int128{Hi: -1, Lo: 42}, i128)
		f32, err := d.ReadF32()
		require.NoError(t, err)
		assert.Equal(t, float32(12.25), f32)
		f64, err := d.ReadF64()
		require.NoError(t, err)
		assert.Equal(t, -0.125, f64)
		r, err := d.ReadRune()
		require.NoError(t, err)
		assert.Equal(t, '𐍈', r)
	}
}

func TestReadBoolInvalid(t *testing.T) {
	d := NewDecoder(NewSliceSource([]byte{5}), binary.BigEndian)
	_, err := d.ReadBool()
	var boolErr InvalidBoolError
	require.ErrorAs(t, err, &boolErr)
	assert.Equal(t, byte(5), boolErr.Byte)
}

func TestReadOptionInvalid(t *testing.T) {
	d := NewDecoder(NewSliceSource([]byte{2}), binary.BigEndian)
	_, err := d.ReadOption()
	var optErr InvalidOptionError
	require.ErrorAs(t, err, &optErr)
	assert.Equal(t, byte(2), optErr.Byte)
}

func TestReadRuneInvalidLeadingByte(t *testing.T) {
	d := NewDecoder(NewSliceSource([]byte{0xC0}), binary.BigEndian)
	_, err := d.ReadRune()
	var runeErr InvalidRuneError
	require.ErrorAs(t, err, &runeErr)
	assert.Equal(t, byte(0xC0), runeErr.Byte)
}

func TestReadRuneMalformedTail(t *testing.T) {
	// valid three-byte leading byte followed by a non-continuation byte
	d := NewDecoder(NewSliceSource([]byte{0xE2, 0x28, 0xA1}), binary.BigEndian)
	_, err := d.ReadRune()
	require.ErrorIs(t, err, ErrInvalidUTF8)
}

func TestShortBufferNeverReadsPastEnd(t *testing.T) {
	cases := [][]byte{
		{},
		{0x01},
		{0x01, 0x02, 0x03},          // one byte short of a u32
		{0x00, 0x05, 'a', 'b', 'c'}, // string prefix larger than payload
		{0x00, 0x03, 0xAB},          // bytes prefix larger than payload
		{0xF0, 0x90, 0x8D},          // truncated four-byte rune
	}
	for _, buf := range cases {
		src := NewSliceSource(buf)
		d := NewDecoder(src, binary.BigEndian)
		var err error
		switch len(buf) {
		case 0:
			_, err = d.ReadBool()
		case 1:
			_, err = d.ReadU16()
		default:
			switch buf[0] {
			case 0xF0:
				_, err = d.ReadRune()
			case 0x00:
				if buf[1] == 0x05 {
					_, err = d.ReadString()
				} else {
					_, err = d.ReadBytes()
				}
			default:
				_, err = d.ReadU32()
			}
		}
		require.ErrorIs(t, err, ErrSourceExhausted, "buf %x", buf)
	}
}

func TestStringBorrowsInput(t *testing.T) {
	buf := []byte{0x00, 0x04, 't', 'e', 's', 't'}
	d := NewDecoder(NewSliceSource(buf), binary.BigEndian)
	s, err := d.ReadString()
	require.NoError(t, err)
	require.Equal(t, "test", s)
	assert.True(t, unsafe.StringData(s) == &buf[2], "decoded string must alias the input buffer")
}

func TestStringCopyOption(t *testing.T) {
	buf := []byte{0x00, 0x04, 't', 'e', 's', 't'}
	d := NewDecoderWithOptions(NewSliceSource(buf), binary.BigEndian, DecoderOptions{CopyStrings: true})
	s, err := d.ReadString()
	require.NoError(t, err)
	require.Equal(t, "test", s)
	assert.False(t, unsafe.StringData(s) == &buf[2])
}

func TestBytesBorrowInput(t *testing.T) {
	buf := []byte{0x00, 0x03, 7, 8, 9}
	d := NewDecoder(NewSliceSource(buf), binary.BigEndian)
	b, err := d.ReadBytes()
	require.NoError(t, err)
	require.Equal(t, []byte{7, 8, 9}, b)
	assert.Same(t, &buf[2], &b[0], "decoded bytes must alias the input buffer")
}

func TestStringInvalidUTF8(t *testing.T) {
	d := NewDecoder(NewSliceSource([]byte{0x00, 0x02, 0xFF, 0xFE}), binary.BigEndian)
	_, err := d.ReadString()
	require.ErrorIs(t, err, ErrInvalidUTF8)
}

func TestSeqCursorExhaustion(t *testing.T) {
	// count says two elements even though more bytes follow
	buf := []byte{0x00, 0x02, 0x0A, 0x0B, 0x0C, 0x0D}
	d := NewDecoder(NewSliceSource(buf), binary.BigEndian)
	s, err := d.BeginSeq()
	require.NoError(t, err)
	require.Equal(t, 2, s.Remaining())

	var got []uint8
	for s.Next() {
		v, err := d.ReadU8()
		require.NoError(t, err)
		got = append(got, v)
	}
	require.Equal(t, []uint8{0x0A, 0x0B}, got)
	assert.False(t, s.Next())
}

func TestMapRoundTrip(t *testing.T) {
	in := map[string]uint32{"a": 1, "bee": 2, "cee": 3}

	w := NewBufferWriter(make([]byte, 128))
	e := NewEncoder(w, binary.LittleEndian)
	require.NoError(t, EncodeMapOf(e, in, (*Encoder).WriteString, (*Encoder).WriteU32))

	d := NewDecoder(NewSliceSource(w.Bytes()), binary.LittleEndian)
	out, err := DecodeMapOf(d, (*Decoder).ReadString, (*Decoder).ReadU32)
	require.NoError(t, err)
	require.Equal(t, in, out)

	// pair count is a single byte
	assert.Equal(t, byte(3), w.Bytes()[0])
}

func TestLengthPrefixExactness(t *testing.T) {
	w := NewBufferWriter(make([]byte, 64))
	e := NewEncoder(w, binary.BigEndian)
	require.NoError(t, EncodeSeq(e, []uint16{10, 20, 30}, (*Encoder).WriteU16))

	buf := w.Bytes()
	require.Equal(t, uint16(3), binary.BigEndian.Uint16(buf[:2]))
	require.Len(t, buf, 2+3*2)

	d := NewDecoder(NewSliceSource(buf), binary.BigEndian)
	out, err := DecodeSeq(d, (*Decoder).ReadU16)
	require.NoError(t, err)
	require.Equal(t, []uint16{10, 20, 30}, out)
}

func TestDecodeZeroAllocations(t *testing.T) {
	w := NewBufferWriter(make([]byte, 64))
	e := NewEncoder(w, binary.BigEndian)
	require.NoError(t, e.WriteU32(7))
	require.NoError(t, e.WriteString("borrowed"))
	require.NoError(t, e.WriteBytes([]byte{1, 2, 3}))
	buf := w.Bytes()

	src := NewSliceSource(nil)
	d := NewDecoder(src, binary.BigEndian)
	allocs := testing.AllocsPerRun(200, func() {
		src.Reset(buf)
		if _, err := d.ReadU32(); err != nil {
			t.Fatal(err)
		}
		if _, err := d.ReadString(); err != nil {
			t.Fatal(err)
		}
		if _, err := d.ReadBytes(); err != nil {
			t.Fatal(err)
		}
	})
	assert.Zero(t, allocs)
}

func TestErrorsAbortWholeDecode(t *testing.T) {
	// a failed inner element surfaces from the generic path untouched
	buf := []byte{0x00, 0x02, 0x01, 0x05} // two bools, second byte invalid
	d := NewDecoder(NewSliceSource(buf), binary.BigEndian)
	_, err := DecodeSeq(d, (*Decoder).ReadBool)
	var boolErr InvalidBoolError
	require.ErrorAs(t, err, &boolErr)
	assert.Equal(t, byte(5), boolErr.Byte)
	assert.False(t, errors.Is(err, ErrSourceExhausted))
}
