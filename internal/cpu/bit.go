package cpu

import "github.com/thelolagemann/gbcore/internal/types"

// testBit tests the given bit of value.
//
//	BIT b, r
//	b = 0-7
//	r = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if bit b of r is 0.
//	N - Reset.
//	H - Set.
//	C - Not affected.
func (c *CPU) testBit(value uint8, b types.Bit) {
	c.setFlags(value&b != b, false, true, c.Carry)
}

// setBit sets the given bit of value.
//
//	SET b, r
//	b = 0-7
//	r = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Not affected.
//	N - Not affected.
//	H - Not affected.
//	C - Not affected.
func (c *CPU) setBit(value uint8, b types.Bit) uint8 {
	return value | b
}

// clearBit clears the given bit of value.
//
//	RES b, r
//	b = 0-7
//	r = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Not affected.
//	N - Not affected.
//	H - Not affected.
//	C - Not affected.
func (c *CPU) clearBit(value uint8, b types.Bit) uint8 {
	return value &^ b
}
