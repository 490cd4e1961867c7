package binwire

import (
	"encoding/binary"
	"math"
	"unicode/utf8"
	"unsafe"

	"github.com/rawbytedev/binwire/internal/common"
)

// DecoderOptions control the decode-side borrowing trade-off.
type DecoderOptions struct {
	// CopyStrings makes ReadString allocate a copy instead of aliasing the
	// input buffer. Set it when decoded strings must outlive the buffer.
	CopyStrings bool
}

// Decoder reads values from a Source in the configured byte order. It is not
// self-describing: the caller's expected type drives every read, and only
// Option and enum decode inspect a discriminant byte.
//
// Strings and byte slices returned by the Decoder borrow from the input
// buffer unless CopyStrings is set; they are valid exactly as long as the
// buffer is.
type Decoder struct {
	r     Source
	order binary.ByteOrder
	be    bool
	opts  DecoderOptions
}

// NewDecoder builds a borrowing Decoder over r. The byte order must match
// the one used to encode.
func NewDecoder(r Source, order binary.ByteOrder) *Decoder {
	return &Decoder{r: r, order: order, be: isBigEndian(order)}
}

// NewDecoderWithOptions is NewDecoder with explicit options.
func NewDecoderWithOptions(r Source, order binary.ByteOrder, opts DecoderOptions) *Decoder {
	d := NewDecoder(r, order)
	d.opts = opts
	return d
}

// ByteOrder returns the order the Decoder was built with.
func (d *Decoder) ByteOrder() binary.ByteOrder { return d.order }

func (d *Decoder) ReadBool() (bool, error) {
	c, err := d.r.ReadByte()
	if err != nil {
		return false, err
	}
	switch c {
	case boolTrue:
		return true, nil
	case boolFalse:
		return false, nil
	}
	return false, InvalidBoolError{Byte: c}
}

func (d *Decoder) ReadU8() (uint8, error) { return d.r.ReadByte() }

func (d *Decoder) ReadI8() (int8, error) {
	c, err := d.r.ReadByte()
	return int8(c), err
}

func (d *Decoder) ReadU16() (uint16, error) {
	b, err := d.r.ReadExact(2)
	if err != nil {
		return 0, err
	}
	return d.order.Uint16(b), nil
}

func (d *Decoder) ReadI16() (int16, error) {
	v, err := d.ReadU16()
	return int16(v), err
}

func (d *Decoder) ReadU32() (uint32, error) {
	b, err := d.r.ReadExact(4)
	if err != nil {
		return 0, err
	}
	return d.order.Uint32(b), nil
}

func (d *Decoder) ReadI32() (int32, error) {
	v, err := d.ReadU32()
	return int32(v), err
}

func (d *Decoder) ReadU64() (uint64, error) {
	b, err := d.r.ReadExact(8)
	if err != nil {
		return 0, err
	}
	return d.order.Uint64(b), nil
}

func (d *Decoder) ReadI64() (int64, error) {
	v, err := d.ReadU64()
	return int64(v), err
}

func (d *Decoder) ReadU128() (Uint128, error) {
	b, err := d.r.ReadExact(16)
	if err != nil {
		return Uint128{}, err
	}
	if d.be {
		return Uint128{Hi: d.order.Uint64(b[:8]), Lo: d.order.Uint64(b[8:])}, nil
	}
	return Uint128{Hi: d.order.Uint64(b[8:]), Lo: d.order.Uint64(b[:8])}, nil
}

func (d *Decoder) ReadI128() (Int128, error) {
	v, err := d.ReadU128()
	return Int128{Hi: int64(v.Hi), Lo: v.Lo}, err
}

func (d *Decoder) ReadF32() (float32, error) {
	v, err := d.ReadU32()
	return math.Float32frombits(v), err
}

func (d *Decoder) ReadF64() (float64, error) {
	v, err := d.ReadU64()
	return math.Float64frombits(v), err
}

// ReadRune decodes one UTF-8 scalar. The leading byte selects the total
// width through a lookup table; a zero-width leading byte or a malformed
// tail is a decode error, never a panic.
func (d *Decoder) ReadRune() (rune, error) {
	c, err := d.r.ReadByte()
	if err != nil {
		return 0, err
	}
	width := common.Utf8CharWidth(c)
	if width == 0 {
		return 0, InvalidRuneError{Byte: c}
	}
	if width == 1 {
		return rune(c), nil
	}
	var buf [4]byte
	buf[0] = c
	rest, err := d.r.ReadExact(width - 1)
	if err != nil {
		return 0, err
	}
	copy(buf[1:], rest)
	r, size := utf8.DecodeRune(buf[:width])
	if r == utf8.RuneError && size <= 1 {
		return 0, ErrInvalidUTF8
	}
	return r, nil
}

// ReadBytes decodes a 16-bit length prefix and returns that many bytes
// borrowed from the input buffer.
func (d *Decoder) ReadBytes() ([]byte, error) {
	n, err := d.ReadU16()
	if err != nil {
		return nil, err
	}
	return d.r.ReadExact(int(n))
}

// ReadString decodes a 16-bit length prefix plus UTF-8 payload. Unless
// CopyStrings is set the result aliases the input buffer.
func (d *Decoder) ReadString() (string, error) {
	b, err := d.ReadBytes()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", ErrInvalidUTF8
	}
	if len(b) == 0 {
		return "", nil
	}
	if d.opts.CopyStrings {
		return string(b), nil
	}
	return unsafe.String(&b[0], len(b)), nil
}

// ReadOption decodes the presence discriminant. After a true result the
// caller decodes the payload.
func (d *Decoder) ReadOption() (bool, error) {
	c, err := d.r.ReadByte()
	if err != nil {
		return false, err
	}
	switch c {
	case tagSome:
		return true, nil
	case tagNone:
		return false, nil
	}
	return false, InvalidOptionError{Byte: c}
}

// ReadVariant decodes an enum discriminant. Matching it against the
// statically known variant list is the caller's job.
func (d *Decoder) ReadVariant() (uint8, error) { return d.r.ReadByte() }

// SeqDecoder iterates a sequence by its decoded element count. Next reports
// exhaustion once the count is consumed, regardless of bytes left in the
// source.
type SeqDecoder struct {
	remaining int
}

// BeginSeq reads the 16-bit element count and returns the element cursor.
func (d *Decoder) BeginSeq() (SeqDecoder, error) {
	n, err := d.ReadU16()
	if err != nil {
		return SeqDecoder{}, err
	}
	return SeqDecoder{remaining: int(n)}, nil
}

// Remaining reports how many elements are left to decode.
func (s *SeqDecoder) Remaining() int { return s.remaining }

// Next reports whether another element follows and consumes one count.
func (s *SeqDecoder) Next() bool {
	if s.remaining == 0 {
		return false
	}
	s.remaining--
	return true
}

// MapDecoder iterates a map by its decoded pair count.
type MapDecoder struct {
	remaining int
}

// BeginMap reads the 8-bit pair count itself and returns the pair cursor.
// The count travels through the same 8-bit scalar path used on encode.
func (d *Decoder) BeginMap() (MapDecoder, error) {
	n, err := d.ReadU8()
	if err != nil {
		return MapDecoder{}, err
	}
	return MapDecoder{remaining: int(n)}, nil
}

// Remaining reports how many pairs are left to decode.
func (m *MapDecoder) Remaining() int { return m.remaining }

// Next reports whether another key/value pair follows.
func (m *MapDecoder) Next() bool {
	if m.remaining == 0 {
		return false
	}
	m.remaining--
	return true
}
