package binwire

import "math"

// Length-prefix widths and maxima are protocol parameters, not negotiated.
// Changing one is a format-breaking change and must land symmetrically on the
// encode and decode paths.
const (
	// MaxSeqLen is the largest element count a sequence prefix can carry.
	MaxSeqLen = math.MaxUint16
	// MaxStrLen is the largest byte length of an encoded string.
	MaxStrLen = math.MaxUint16
	// MaxBytesLen is the largest byte length of an encoded byte string.
	MaxBytesLen = math.MaxUint16
	// MaxMapLen is the largest pair count a map prefix can carry.
	MaxMapLen = math.MaxUint8
)

// Discriminant bytes. Any other value on the wire is a decode error.
const (
	tagNone = 0x00
	tagSome = 0x01

	boolFalse = 0x00
	boolTrue  = 0x01
)
