package cpu

// increment n by 1 and set the flags accordingly.
//
//	INC n
//	n = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Not affected.
func (c *CPU) increment(n uint8) uint8 {
	incremented := n + 0x01
	c.setFlags(incremented == 0, false, n&0x0F == 0x0F, c.Carry)
	return incremented
}

// decrement n by 1 and set the flags accordingly.
//
//	DEC n
//	n = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Not affected.
func (c *CPU) decrement(n uint8) uint8 {
	decremented := n - 0x01
	c.setFlags(decremented == 0, true, n&0x0F == 0x00, c.Carry)
	return decremented
}

// add adds n, and the carry flag if withCarry is set, to the A
// Register.
//
//	ADD A, n
//	ADC A, n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) add(n uint8, withCarry bool) {
	carry := uint16(0)
	if withCarry && c.Carry {
		carry = 1
	}
	sum := uint16(c.A) + uint16(n) + carry
	half := uint16(c.A&0x0F) + uint16(n&0x0F) + carry

	c.A = uint8(sum)
	c.setFlags(c.A == 0, false, half > 0x0F, sum > 0xFF)
}

// sub subtracts n, and the carry flag if withCarry is set, from
// the A Register.
//
//	SUB n
//	SBC A, n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func (c *CPU) sub(n uint8, withCarry bool) {
	carry := int16(0)
	if withCarry && c.Carry {
		carry = 1
	}
	diff := int16(c.A) - int16(n) - carry
	half := int16(c.A&0x0F) - int16(n&0x0F) - carry

	c.A = uint8(diff)
	c.setFlags(c.A == 0, true, half < 0, diff < 0)
}

// addHL adds n to the HL RegisterPair.
//
//	ADD HL, nn
//	nn = BC, DE, HL, SP
//
// Flags affected:
//
//	Z - Not affected.
//	N - Reset.
//	H - Set if carry from bit 11.
//	C - Set if carry from bit 15.
func (c *CPU) addHL(n uint16) {
	hl := c.HL()
	sum := uint32(hl.Uint16()) + uint32(n)
	c.setFlags(c.Zero, false, (hl.Uint16()&0x0FFF)+(n&0x0FFF) > 0x0FFF, sum > 0xFFFF)
	hl.SetUint16(uint16(sum))
}

// addSPSigned returns SP plus the signed offset. The carries are
// computed on the low byte, as an unsigned 8-bit addition.
//
//	ADD SP, e
//	LD HL, SP+e
//
// Flags affected:
//
//	Z - Reset.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) addSPSigned(offset int8) uint16 {
	result := uint16(int32(c.SP) + int32(offset))
	carries := c.SP ^ uint16(offset) ^ result
	c.setFlags(false, false, carries&0x10 == 0x10, carries&0x100 == 0x100)
	return result
}

// decimalAdjust corrects the A Register to a binary coded decimal
// after an addition or subtraction.
//
//	DAA
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Not affected.
//	H - Reset.
//	C - Set if the correction overflowed.
func (c *CPU) decimalAdjust() {
	carry := c.Carry
	if !c.Subtract {
		if c.Carry || c.A > 0x99 {
			c.A += 0x60
			carry = true
		}
		if c.HalfCarry || c.A&0x0F > 0x09 {
			c.A += 0x06
		}
	} else {
		if c.Carry {
			c.A -= 0x60
		}
		if c.HalfCarry {
			c.A -= 0x06
		}
	}
	c.setFlags(c.A == 0, c.Subtract, false, carry)
}

// complement flips every bit of the A Register.
//
//	CPL
//
// Flags affected:
//
//	Z - Not affected.
//	N - Set.
//	H - Set.
//	C - Not affected.
func (c *CPU) complement() {
	c.A = ^c.A
	c.setFlags(c.Zero, true, true, c.Carry)
}

// setCarryFlag sets the carry flag.
//
//	SCF
//
// Flags affected:
//
//	Z - Not affected.
//	N - Reset.
//	H - Reset.
//	C - Set.
func (c *CPU) setCarryFlag() {
	c.clearFlag(FlagSubtract)
	c.clearFlag(FlagHalfCarry)
	c.setFlag(FlagCarry)
}

// complementCarryFlag flips the carry flag.
//
//	CCF
//
// Flags affected:
//
//	Z - Not affected.
//	N - Reset.
//	H - Reset.
//	C - Complemented.
func (c *CPU) complementCarryFlag() {
	c.setFlags(c.Zero, false, false, !c.Carry)
}
