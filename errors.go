package binwire

import (
	"errors"
	"fmt"
)

var (
	// ErrSinkFull is returned by BufferWriter when the output buffer has no
	// room left.
	ErrSinkFull = errors.New("sink capacity exhausted")
	// ErrSourceExhausted is returned when a read asks for more bytes than
	// remain in the source.
	ErrSourceExhausted = errors.New("source exhausted")
	// ErrLengthUnknown is returned when a sequence or map is encoded without
	// a known length. The count is the first thing on the wire, so lazy or
	// unbounded producers are not supported.
	ErrLengthUnknown = errors.New("sequence length unknown")
	// ErrTooLong is returned when a length does not fit its fixed-width
	// prefix.
	ErrTooLong = errors.New("length exceeds prefix range")
	// ErrCountMismatch is returned when a compound scope is closed with a
	// different number of elements than it declared.
	ErrCountMismatch = errors.New("element count does not match declared length")
	// ErrInvalidRune is returned when encoding a rune that is not a valid
	// unicode scalar.
	ErrInvalidRune = errors.New("invalid unicode scalar")
	// ErrInvalidUTF8 is returned when a decoded char or string payload is not
	// well-formed UTF-8.
	ErrInvalidUTF8 = errors.New("malformed utf-8 sequence")
)

// InvalidBoolError reports a bool byte other than 0 or 1.
type InvalidBoolError struct{ Byte byte }

func (e InvalidBoolError) Error() string {
	return fmt.Sprintf("invalid bool byte 0x%02x", e.Byte)
}

// InvalidOptionError reports an Option discriminant other than 0 or 1.
type InvalidOptionError struct{ Byte byte }

func (e InvalidOptionError) Error() string {
	return fmt.Sprintf("invalid option discriminant 0x%02x", e.Byte)
}

// InvalidRuneError reports a byte that cannot start a UTF-8 sequence.
type InvalidRuneError struct{ Byte byte }

func (e InvalidRuneError) Error() string {
	return fmt.Sprintf("invalid utf-8 leading byte 0x%02x", e.Byte)
}
