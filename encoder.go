package binwire

import (
	"encoding/binary"
	"math"
	"unicode/utf8"
	"unsafe"

	"github.com/rawbytedev/binwire/internal/common"
)

// Encoder writes values to a Sink in the configured byte order. Encoding is
// streaming: compound counts are placed on the wire before any element, so
// sequence and map lengths must be known up front.
type Encoder struct {
	w       Sink
	order   binary.ByteOrder
	be      bool
	scratch [16]byte
}

// NewEncoder builds an Encoder over w. The byte order applies to every
// fixed-width scalar of the call; it is never written to the wire.
func NewEncoder(w Sink, order binary.ByteOrder) *Encoder {
	return &Encoder{w: w, order: order, be: isBigEndian(order)}
}

// ByteOrder returns the order the Encoder was built with.
func (e *Encoder) ByteOrder() binary.ByteOrder { return e.order }

// isBigEndian probes which end the most significant byte lands on.
func isBigEndian(order binary.ByteOrder) bool {
	var probe [2]byte
	order.PutUint16(probe[:], 0x0102)
	return probe[0] == 0x01
}

func (e *Encoder) writeScratch(n int) error {
	_, err := e.w.Write(e.scratch[:n])
	return err
}

func (e *Encoder) WriteBool(v bool) error {
	if v {
		return e.w.WriteByte(boolTrue)
	}
	return e.w.WriteByte(boolFalse)
}

func (e *Encoder) WriteU8(v uint8) error { return e.w.WriteByte(v) }

func (e *Encoder) WriteI8(v int8) error { return e.w.WriteByte(byte(v)) }

func (e *Encoder) WriteU16(v uint16) error {
	e.order.PutUint16(e.scratch[:2], v)
	return e.writeScratch(2)
}

func (e *Encoder) WriteI16(v int16) error { return e.WriteU16(uint16(v)) }

func (e *Encoder) WriteU32(v uint32) error {
	e.order.PutUint32(e.scratch[:4], v)
	return e.writeScratch(4)
}

func (e *Encoder) WriteI32(v int32) error { return e.WriteU32(uint32(v)) }

func (e *Encoder) WriteU64(v uint64) error {
	e.order.PutUint64(e.scratch[:8], v)
	return e.writeScratch(8)
}

func (e *Encoder) WriteI64(v int64) error { return e.WriteU64(uint64(v)) }

// WriteU128 writes v as a single 128-bit number: the high word leads in
// big-endian order, the low word in little-endian.
func (e *Encoder) WriteU128(v Uint128) error {
	if e.be {
		e.order.PutUint64(e.scratch[:8], v.Hi)
		e.order.PutUint64(e.scratch[8:16], v.Lo)
	} else {
		e.order.PutUint64(e.scratch[:8], v.Lo)
		e.order.PutUint64(e.scratch[8:16], v.Hi)
	}
	return e.writeScratch(16)
}

func (e *Encoder) WriteI128(v Int128) error {
	return e.WriteU128(Uint128{Hi: uint64(v.Hi), Lo: v.Lo})
}

func (e *Encoder) WriteF32(v float32) error { return e.WriteU32(math.Float32bits(v)) }

func (e *Encoder) WriteF64(v float64) error { return e.WriteU64(math.Float64bits(v)) }

// WriteRune writes the 1-4 byte UTF-8 encoding of r with no length prefix;
// the leading byte self-describes the width.
func (e *Encoder) WriteRune(r rune) error {
	if !utf8.ValidRune(r) {
		return ErrInvalidRune
	}
	buf := common.AppendRune(e.scratch[:0], r)
	_, err := e.w.Write(buf)
	return err
}

// WriteString writes a 16-bit byte-length prefix followed by the UTF-8 bytes
// of s. The bytes are handed to the sink without copying.
func (e *Encoder) WriteString(s string) error {
	if len(s) > MaxStrLen {
		return ErrTooLong
	}
	if err := e.WriteU16(uint16(len(s))); err != nil {
		return err
	}
	if len(s) == 0 {
		return nil
	}
	_, err := e.w.Write(unsafe.Slice(unsafe.StringData(s), len(s)))
	return err
}

// WriteBytes writes a 16-bit length prefix followed by p verbatim.
func (e *Encoder) WriteBytes(p []byte) error {
	if len(p) > MaxBytesLen {
		return ErrTooLong
	}
	if err := e.WriteU16(uint16(len(p))); err != nil {
		return err
	}
	if len(p) == 0 {
		return nil
	}
	_, err := e.w.Write(p)
	return err
}

// WriteOption writes the presence discriminant. After a true tag the caller
// writes the payload; a false tag stands alone.
func (e *Encoder) WriteOption(present bool) error {
	if present {
		return e.w.WriteByte(tagSome)
	}
	return e.w.WriteByte(tagNone)
}

// WriteVariant writes an enum discriminant. The variant's payload, if any,
// follows as a tuple or struct.
func (e *Encoder) WriteVariant(idx uint8) error { return e.w.WriteByte(idx) }

// Flush flushes the underlying sink when it buffers internally.
func (e *Encoder) Flush() error {
	if f, ok := e.w.(Flusher); ok {
		return f.Flush()
	}
	return nil
}

// SeqEncoder is the scope for one sequence. The element count is already on
// the wire when BeginSeq returns; Element accounts for each entry and End
// fails when the declared count was not met.
type SeqEncoder struct {
	remaining int
}

// BeginSeq writes the 16-bit element count and opens a sequence scope.
// Pass n < 0 when the length is unknown; the format cannot represent that
// and the call fails with ErrLengthUnknown.
func (e *Encoder) BeginSeq(n int) (SeqEncoder, error) {
	if n < 0 {
		return SeqEncoder{}, ErrLengthUnknown
	}
	if n > MaxSeqLen {
		return SeqEncoder{}, ErrTooLong
	}
	if err := e.WriteU16(uint16(n)); err != nil {
		return SeqEncoder{}, err
	}
	return SeqEncoder{remaining: n}, nil
}

// Element accounts for the next element; the caller writes its bytes through
// the Encoder afterwards.
func (s *SeqEncoder) Element() error {
	if s.remaining <= 0 {
		return ErrCountMismatch
	}
	s.remaining--
	return nil
}

// End closes the scope. Encoding is streaming, so nothing is flushed here;
// End only verifies the declared count was met.
func (s *SeqEncoder) End() error {
	if s.remaining != 0 {
		return ErrCountMismatch
	}
	return nil
}

// MapEncoder is the scope for one map, opened by BeginMap.
type MapEncoder struct {
	remaining int
}

// BeginMap writes the 8-bit pair count and opens a map scope. Pairs go on
// the wire in whatever order the caller supplies them.
func (e *Encoder) BeginMap(n int) (MapEncoder, error) {
	if n < 0 {
		return MapEncoder{}, ErrLengthUnknown
	}
	if n > MaxMapLen {
		return MapEncoder{}, ErrTooLong
	}
	if err := e.WriteU8(uint8(n)); err != nil {
		return MapEncoder{}, err
	}
	return MapEncoder{remaining: n}, nil
}

// Pair accounts for the next key/value pair; the caller writes the key then
// the value.
func (m *MapEncoder) Pair() error {
	if m.remaining <= 0 {
		return ErrCountMismatch
	}
	m.remaining--
	return nil
}

// End verifies the declared pair count was met.
func (m *MapEncoder) End() error {
	if m.remaining != 0 {
		return ErrCountMismatch
	}
	return nil
}
