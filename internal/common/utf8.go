// Package common holds byte-level helpers shared by the encode and decode
// paths.
package common

// utf8CharWidth maps a UTF-8 leading byte to the total encoded width in
// bytes, or 0 for a byte that cannot start a sequence.
var utf8CharWidth = [256]uint8{
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 0x0F
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 0x1F
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 0x2F
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 0x3F
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 0x4F
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 0x5F
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 0x6F
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, // 0x7F
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, // 0x8F
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, // 0x9F
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, // 0xAF
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, // 0xBF
	0, 0, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, // 0xCF
	2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, // 0xDF
	3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, // 0xEF
	4, 4, 4, 4, 4, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, // 0xFF
}

// Utf8CharWidth returns the expected total width of the UTF-8 sequence
// starting with b, or 0 when b is not a valid leading byte.
func Utf8CharWidth(b byte) int {
	return int(utf8CharWidth[b])
}

const (
	tagCont   = 0b1000_0000
	tagTwoB   = 0b1100_0000
	tagThreeB = 0b1110_0000
	tagFourB  = 0b1111_0000

	maxOneB   = 0x80
	maxTwoB   = 0x800
	maxThreeB = 0x10000
)

// AppendRune appends the 1-4 byte UTF-8 encoding of r to dst. r must already
// be a valid unicode scalar; the caller validates.
func AppendRune(dst []byte, r rune) []byte {
	code := uint32(r)
	switch {
	case code < maxOneB:
		return append(dst, byte(code))
	case code < maxTwoB:
		return append(dst,
			byte(code>>6&0x1F)|tagTwoB,
			byte(code&0x3F)|tagCont)
	case code < maxThreeB:
		return append(dst,
			byte(code>>12&0x0F)|tagThreeB,
			byte(code>>6&0x3F)|tagCont,
			byte(code&0x3F)|tagCont)
	default:
		return append(dst,
			byte(code>>18&0x07)|tagFourB,
			byte(code>>12&0x3F)|tagCont,
			byte(code>>6&0x3F)|tagCont,
			byte(code&0x3F)|tagCont)
	}
}
