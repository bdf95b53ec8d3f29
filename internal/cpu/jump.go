package cpu

import "github.com/thelolagemann/gbcore/pkg/utils"

// push pushes the high and low bytes onto the stack, high byte
// first at the higher address.
func (c *CPU) push(high, low uint8) {
	c.SP--
	c.writeByte(c.SP, high)
	c.SP--
	c.writeByte(c.SP, low)
}

// pop pops a 16-bit value off the stack.
func (c *CPU) pop() uint16 {
	low := c.readByte(c.SP)
	c.SP++
	high := c.readByte(c.SP)
	c.SP++
	return utils.BytesToUint16(high, low)
}

// jumpAbsolute jumps to the given address.
//
//	JP nn
//	nn = 16-bit immediate value
func (c *CPU) jumpAbsolute(address uint16) {
	c.PC = address
}

// jumpRelative jumps to the address relative to the current PC,
// which already points at the next instruction. The result
// wraps around the 16-bit address space.
//
//	JR e
//	e = 8-bit signed immediate value
func (c *CPU) jumpRelative(offset int8) {
	c.PC = uint16(int32(c.PC) + int32(offset))
}

// jumpRelativeConditional jumps to the address relative to the
// current PC if the given condition is true.
//
//	JR cc, e
//	cc = NZ, Z, NC, C
//	e = 8-bit signed immediate value
func (c *CPU) jumpRelativeConditional(condition bool, offset int8) {
	if condition {
		c.jumpRelative(offset)
	}
}

// call pushes the address of the next instruction onto the stack
// and jumps to the given address.
//
//	CALL nn
//	nn = 16-bit immediate value
func (c *CPU) call(address uint16) {
	c.push(utils.Uint16ToBytes(c.PC))
	c.PC = address
}

// ret pops the return address off the stack and jumps to it.
//
//	RET
func (c *CPU) ret() {
	c.PC = c.pop()
}
