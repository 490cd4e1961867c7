package binwire

// Uint128 is a 128-bit unsigned integer. On the wire it is one fixed-width
// 16-byte number in the configured byte order, not two independent words.
type Uint128 struct {
	Hi uint64
	Lo uint64
}

// Int128 is a 128-bit signed integer in two's complement, with the sign
// carried by Hi.
type Int128 struct {
	Hi int64
	Lo uint64
}
