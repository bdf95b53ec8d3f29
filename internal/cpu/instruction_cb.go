package cpu

import (
	"fmt"

	"github.com/thelolagemann/gbcore/internal/types"
)

func init() {
	// 0x00 - 0x3F - rotates, shifts and SWAP
	//
	//	00 ooo rrr
	for i, op := range cbOperations {
		fn := op.fn
		for r := uint8(0); r < 8; r++ {
			index := r
			DefineInstructionCB(uint8(i)<<3|index, fmt.Sprintf("%s %s", op.name, registerNames[index]), op.flags, func(c *CPU, _ Operands) {
				c.setRegister(index, fn(c, c.getRegister(index)))
			})
		}
	}

	// 0x40 - 0xFF - BIT, RES and SET b, r
	//
	//	01 bbb rrr	BIT
	//	10 bbb rrr	RES
	//	11 bbb rrr	SET
	for b := uint8(0); b < 8; b++ {
		for r := uint8(0); r < 8; r++ {
			bit, index := types.BitIndex(b), r
			DefineInstructionCB(0x40|b<<3|r, fmt.Sprintf("BIT %d, %s", b, registerNames[r]), "Z 0 1 -", func(c *CPU, _ Operands) {
				c.testBit(c.getRegister(index), bit)
			})
			DefineInstructionCB(0x80|b<<3|r, fmt.Sprintf("RES %d, %s", b, registerNames[r]), noFlags, func(c *CPU, _ Operands) {
				c.setRegister(index, c.clearBit(c.getRegister(index), bit))
			})
			DefineInstructionCB(0xC0|b<<3|r, fmt.Sprintf("SET %d, %s", b, registerNames[r]), noFlags, func(c *CPU, _ Operands) {
				c.setRegister(index, c.setBit(c.getRegister(index), bit))
			})
		}
	}
}
