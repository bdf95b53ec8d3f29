package cpu

// registerNames are the operand names of the 3-bit register
// index used throughout the opcode map.
var registerNames = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

// indexHL is the register index that addresses memory at HL.
const indexHL = 6

// registerIndex returns a Register pointer for the given index,
// or nil for (HL).
func (c *CPU) registerIndex(index uint8) *Register {
	switch index & 0x7 {
	case 0:
		return &c.B
	case 1:
		return &c.C
	case 2:
		return &c.D
	case 3:
		return &c.E
	case 4:
		return &c.H
	case 5:
		return &c.L
	case 7:
		return &c.A
	}
	return nil
}

// getRegister returns the value of the register at index,
// reading memory at HL for (HL).
func (c *CPU) getRegister(index uint8) uint8 {
	if reg := c.registerIndex(index); reg != nil {
		return *reg
	}
	return c.readByte(c.HL().Uint16())
}

// setRegister stores value in the register at index, writing
// memory at HL for (HL).
func (c *CPU) setRegister(index uint8, value uint8) {
	if reg := c.registerIndex(index); reg != nil {
		*reg = value
		return
	}
	c.writeByte(c.HL().Uint16(), value)
}

// registerPair returns the register pair selected by bits 4-5 of
// an opcode (BC, DE, HL). SP and AF are handled by the caller.
func (c *CPU) registerPair(index uint8) RegisterPair {
	switch index & 0x3 {
	case 0:
		return c.BC()
	case 1:
		return c.DE()
	default:
		return c.HL()
	}
}

// loadMemoryToRegister loads the value at the given memory address
// into A.
//
//	LD A, (nn)
//	nn = BC, DE, HL+, HL-, a16
func (c *CPU) loadMemoryToRegister(address uint16) {
	c.A = c.readByte(address)
}

// loadRegisterToMemory stores A at the given memory address.
//
//	LD (nn), A
//	nn = BC, DE, HL, HL+, HL-, a16
func (c *CPU) loadRegisterToMemory(address uint16) {
	c.writeByte(address, c.A)
}

// loadRegisterToHardware stores A in high memory at 0xFF00 + n.
//
//	LDH (n), A
//	n = a8, C
func (c *CPU) loadRegisterToHardware(n uint8) {
	c.writeByte(0xFF00+uint16(n), c.A)
}

// loadHardwareToRegister loads A from high memory at 0xFF00 + n.
//
//	LDH A, (n)
//	n = a8, C
func (c *CPU) loadHardwareToRegister(n uint8) {
	c.A = c.readByte(0xFF00 + uint16(n))
}

// stepHL adds delta to HL with 16-bit wraparound, after a
// (HL+)/(HL-) access.
func (c *CPU) stepHL(delta uint16) {
	hl := c.HL()
	hl.SetUint16(hl.Uint16() + delta)
}
