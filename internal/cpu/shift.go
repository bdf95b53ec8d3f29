package cpu

import "github.com/thelolagemann/gbcore/internal/types"

// shifted stores the outcome of a 0xCB shift: Z from computed,
// N and H reset and C from the bit shifted out.
func (c *CPU) shifted(computed uint8, out bool) uint8 {
	c.setFlags(computed == 0, false, false, out)
	return computed
}

// shiftLeftArithmetic moves every bit of n one place up. Bit 7
// falls into the carry flag and bit 0 becomes 0.
//
//	SLA n
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Old bit 7.
func (c *CPU) shiftLeftArithmetic(n uint8) uint8 {
	return c.shifted(n<<1, n&types.Bit7 != 0)
}

// shiftRightArithmetic moves every bit of n one place down while
// keeping the sign bit. Bit 0 falls into the carry flag.
//
//	SRA n
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Old bit 0.
func (c *CPU) shiftRightArithmetic(n uint8) uint8 {
	return c.shifted(uint8(int8(n)>>1), n&types.Bit0 != 0)
}

// shiftRightLogical is SRA with bit 7 cleared.
//
//	SRL n
func (c *CPU) shiftRightLogical(n uint8) uint8 {
	return c.shifted(n>>1, n&types.Bit0 != 0)
}

// swap exchanges the nibbles of n. Nothing is shifted out, so the
// carry flag is always reset.
//
//	SWAP n
func (c *CPU) swap(n uint8) uint8 {
	return c.shifted(n<<4|n>>4, false)
}
