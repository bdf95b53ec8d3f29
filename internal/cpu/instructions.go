package cpu

import "fmt"

func init() {
	// control
	DefineInstruction(0x00, "NOP", 0, noFlags, func(c *CPU, _ Operands) {})
	DefineInstruction(0x76, "HALT", 0, noFlags, func(c *CPU, _ Operands) {
		c.mode = ModeHalt
	})
	// nothing can wake the CPU from STOP, it halts like HALT
	DefineInstruction(0x10, "STOP", 1, noFlags, func(c *CPU, _ Operands) {
		c.mode = ModeHalt
	})
	DefineInstruction(0xF3, "DI", 0, noFlags, func(c *CPU, _ Operands) {
		c.IME = false
	})
	DefineInstruction(0xFB, "EI", 0, noFlags, func(c *CPU, _ Operands) {
		c.IME = true
	})
	DefineInstruction(prefixCB, "PREFIX CB", 0, noFlags, func(c *CPU, _ Operands) {
		panic("cpu: 0xCB prefix executed as an instruction")
	})

	// jumps, calls and returns
	DefineInstruction(0xC3, "JP a16", 2, noFlags, func(c *CPU, o Operands) {
		c.jumpAbsolute(o.D16())
	})
	DefineInstruction(0xE9, "JP HL", 0, noFlags, func(c *CPU, _ Operands) {
		c.jumpAbsolute(c.HL().Uint16())
	})
	DefineInstruction(0x18, "JR r8", 1, noFlags, func(c *CPU, o Operands) {
		c.jumpRelative(o.R8())
	})
	DefineInstruction(0xCD, "CALL a16", 2, noFlags, func(c *CPU, o Operands) {
		c.call(o.D16())
	})
	DefineInstruction(0xC9, "RET", 0, noFlags, func(c *CPU, _ Operands) {
		c.ret()
	})
	DefineInstruction(0xD9, "RETI", 0, noFlags, func(c *CPU, _ Operands) {
		c.ret()
		c.IME = true
	})
	for i, name := range conditionNames {
		cc := uint8(i) << 3

		// 0x20, 0x28, 0x30, 0x38 - JR cc, r8
		DefineInstruction(0x20|cc, fmt.Sprintf("JR %s, r8", name), 1, noFlags, func(c *CPU, o Operands) {
			c.jumpRelativeConditional(c.condition(cc), o.R8())
		})
		// 0xC2, 0xCA, 0xD2, 0xDA - JP cc, a16
		DefineInstruction(0xC2|cc, fmt.Sprintf("JP %s, a16", name), 2, noFlags, func(c *CPU, o Operands) {
			if c.condition(cc) {
				c.jumpAbsolute(o.D16())
			}
		})
		// 0xC4, 0xCC, 0xD4, 0xDC - CALL cc, a16
		DefineInstruction(0xC4|cc, fmt.Sprintf("CALL %s, a16", name), 2, noFlags, func(c *CPU, o Operands) {
			if c.condition(cc) {
				c.call(o.D16())
			}
		})
		// 0xC0, 0xC8, 0xD0, 0xD8 - RET cc
		DefineInstruction(0xC0|cc, fmt.Sprintf("RET %s", name), 0, noFlags, func(c *CPU, _ Operands) {
			if c.condition(cc) {
				c.ret()
			}
		})
	}
	// 0xC7, 0xCF, ... 0xFF - RST n
	for i := uint8(0); i < 8; i++ {
		vector := uint16(i) * 8
		DefineInstruction(0xC7|i<<3, fmt.Sprintf("RST %02XH", vector), 0, noFlags, func(c *CPU, _ Operands) {
			c.call(vector)
		})
	}

	// 16-bit loads and arithmetic
	for i, name := range [3]string{"BC", "DE", "HL"} {
		index := uint8(i)
		DefineInstruction(0x01|index<<4, fmt.Sprintf("LD %s, d16", name), 2, noFlags, func(c *CPU, o Operands) {
			c.registerPair(index).SetUint16(o.D16())
		})
		DefineInstruction(0x03|index<<4, fmt.Sprintf("INC %s", name), 0, noFlags, func(c *CPU, _ Operands) {
			p := c.registerPair(index)
			p.SetUint16(p.Uint16() + 1)
		})
		DefineInstruction(0x0B|index<<4, fmt.Sprintf("DEC %s", name), 0, noFlags, func(c *CPU, _ Operands) {
			p := c.registerPair(index)
			p.SetUint16(p.Uint16() - 1)
		})
		DefineInstruction(0x09|index<<4, fmt.Sprintf("ADD HL, %s", name), 0, "- 0 H C", func(c *CPU, _ Operands) {
			c.addHL(c.registerPair(index).Uint16())
		})
	}
	DefineInstruction(0x31, "LD SP, d16", 2, noFlags, func(c *CPU, o Operands) {
		c.SP = o.D16()
	})
	DefineInstruction(0x33, "INC SP", 0, noFlags, func(c *CPU, _ Operands) {
		c.SP++
	})
	DefineInstruction(0x3B, "DEC SP", 0, noFlags, func(c *CPU, _ Operands) {
		c.SP--
	})
	DefineInstruction(0x39, "ADD HL, SP", 0, "- 0 H C", func(c *CPU, _ Operands) {
		c.addHL(c.SP)
	})
	DefineInstruction(0x08, "LD (a16), SP", 2, noFlags, func(c *CPU, o Operands) {
		address := o.D16()
		c.writeByte(address, uint8(c.SP))
		c.writeByte(address+1, uint8(c.SP>>8))
	})
	DefineInstruction(0xF9, "LD SP, HL", 0, noFlags, func(c *CPU, _ Operands) {
		c.SP = c.HL().Uint16()
	})
	DefineInstruction(0xE8, "ADD SP, r8", 1, "0 0 H C", func(c *CPU, o Operands) {
		c.SP = c.addSPSigned(o.R8())
	})
	DefineInstruction(0xF8, "LD HL, SP+r8", 1, "0 0 H C", func(c *CPU, o Operands) {
		c.HL().SetUint16(c.addSPSigned(o.R8()))
	})

	// indirect loads and stores through a register pair
	DefineInstruction(0x02, "LD (BC), A", 0, noFlags, func(c *CPU, _ Operands) {
		c.loadRegisterToMemory(c.BC().Uint16())
	})
	DefineInstruction(0x12, "LD (DE), A", 0, noFlags, func(c *CPU, _ Operands) {
		c.loadRegisterToMemory(c.DE().Uint16())
	})
	DefineInstruction(0x22, "LD (HL+), A", 0, noFlags, func(c *CPU, _ Operands) {
		c.loadRegisterToMemory(c.HL().Uint16())
		c.stepHL(1)
	})
	DefineInstruction(0x32, "LD (HL-), A", 0, noFlags, func(c *CPU, _ Operands) {
		c.loadRegisterToMemory(c.HL().Uint16())
		c.stepHL(0xFFFF)
	})
	DefineInstruction(0x0A, "LD A, (BC)", 0, noFlags, func(c *CPU, _ Operands) {
		c.loadMemoryToRegister(c.BC().Uint16())
	})
	DefineInstruction(0x1A, "LD A, (DE)", 0, noFlags, func(c *CPU, _ Operands) {
		c.loadMemoryToRegister(c.DE().Uint16())
	})
	DefineInstruction(0x2A, "LD A, (HL+)", 0, noFlags, func(c *CPU, _ Operands) {
		c.loadMemoryToRegister(c.HL().Uint16())
		c.stepHL(1)
	})
	DefineInstruction(0x3A, "LD A, (HL-)", 0, noFlags, func(c *CPU, _ Operands) {
		c.loadMemoryToRegister(c.HL().Uint16())
		c.stepHL(0xFFFF)
	})
	DefineInstruction(0xEA, "LD (a16), A", 2, noFlags, func(c *CPU, o Operands) {
		c.loadRegisterToMemory(o.D16())
	})
	DefineInstruction(0xFA, "LD A, (a16)", 2, noFlags, func(c *CPU, o Operands) {
		c.loadMemoryToRegister(o.D16())
	})

	// high memory
	DefineInstruction(0xE0, "LDH (a8), A", 1, noFlags, func(c *CPU, o Operands) {
		c.loadRegisterToHardware(o.D8())
	})
	DefineInstruction(0xF0, "LDH A, (a8)", 1, noFlags, func(c *CPU, o Operands) {
		c.loadHardwareToRegister(o.D8())
	})
	DefineInstruction(0xE2, "LD (C), A", 0, noFlags, func(c *CPU, _ Operands) {
		c.loadRegisterToHardware(c.C)
	})
	DefineInstruction(0xF2, "LD A, (C)", 0, noFlags, func(c *CPU, _ Operands) {
		c.loadHardwareToRegister(c.C)
	})

	// accumulator
	DefineInstruction(0x07, "RLCA", 0, "0 0 0 C", func(c *CPU, _ Operands) {
		c.rotateAccumulator((*CPU).rotateLeftCarry)
	})
	DefineInstruction(0x0F, "RRCA", 0, "0 0 0 C", func(c *CPU, _ Operands) {
		c.rotateAccumulator((*CPU).rotateRightCarry)
	})
	DefineInstruction(0x17, "RLA", 0, "0 0 0 C", func(c *CPU, _ Operands) {
		c.rotateAccumulator((*CPU).rotateLeftThroughCarry)
	})
	DefineInstruction(0x1F, "RRA", 0, "0 0 0 C", func(c *CPU, _ Operands) {
		c.rotateAccumulator((*CPU).rotateRightThroughCarry)
	})
	DefineInstruction(0x27, "DAA", 0, "Z - 0 C", func(c *CPU, _ Operands) {
		c.decimalAdjust()
	})
	DefineInstruction(0x2F, "CPL", 0, "- 1 1 -", func(c *CPU, _ Operands) {
		c.complement()
	})
	DefineInstruction(0x37, "SCF", 0, "- 0 0 1", func(c *CPU, _ Operands) {
		c.setCarryFlag()
	})
	DefineInstruction(0x3F, "CCF", 0, "- 0 0 C", func(c *CPU, _ Operands) {
		c.complementCarryFlag()
	})

	// loop through each register (B, C, D, E, H, L, (HL), A)
	for i := uint8(0); i < 8; i++ {
		index := i
		name := registerNames[index]

		// 0x04, 0x0C, ... 0x3C - INC r
		DefineInstruction(0x04|index<<3, fmt.Sprintf("INC %s", name), 0, "Z 0 H -", func(c *CPU, _ Operands) {
			c.setRegister(index, c.increment(c.getRegister(index)))
		})
		// 0x05, 0x0D, ... 0x3D - DEC r
		DefineInstruction(0x05|index<<3, fmt.Sprintf("DEC %s", name), 0, "Z 1 H -", func(c *CPU, _ Operands) {
			c.setRegister(index, c.decrement(c.getRegister(index)))
		})
		// 0x06, 0x0E, ... 0x3E - LD r, d8
		DefineInstruction(0x06|index<<3, fmt.Sprintf("LD %s, d8", name), 1, noFlags, func(c *CPU, o Operands) {
			c.setRegister(index, o.D8())
		})

		// 0x40 - 0x7F - LD r, r'
		for j := uint8(0); j < 8; j++ {
			dst, src := index, j
			if dst == indexHL && src == indexHL {
				continue // 0x76 is HALT
			}
			DefineInstruction(0x40|dst<<3|src, fmt.Sprintf("LD %s, %s", registerNames[dst], registerNames[src]), 0, noFlags, func(c *CPU, _ Operands) {
				c.setRegister(dst, c.getRegister(src))
			})
		}
	}

	// 0x80 - 0xBF - ALU A, r and 0xC6, 0xCE, ... 0xFE - ALU A, d8
	for i, op := range aluOperations {
		fn := op.fn
		for r := uint8(0); r < 8; r++ {
			index := r
			DefineInstruction(0x80|uint8(i)<<3|index, fmt.Sprintf(op.name, registerNames[index]), 0, op.flags, func(c *CPU, _ Operands) {
				fn(c, c.getRegister(index))
			})
		}
		DefineInstruction(0xC6|uint8(i)<<3, fmt.Sprintf(op.name, "d8"), 1, op.flags, func(c *CPU, o Operands) {
			fn(c, o.D8())
		})
	}

	// stack
	for i, name := range [3]string{"BC", "DE", "HL"} {
		index := uint8(i)
		DefineInstruction(0xC5|index<<4, fmt.Sprintf("PUSH %s", name), 0, noFlags, func(c *CPU, _ Operands) {
			p := c.registerPair(index)
			c.push(*p.High, *p.Low)
		})
		DefineInstruction(0xC1|index<<4, fmt.Sprintf("POP %s", name), 0, noFlags, func(c *CPU, _ Operands) {
			c.registerPair(index).SetUint16(c.pop())
		})
	}
	DefineInstruction(0xF5, "PUSH AF", 0, noFlags, func(c *CPU, _ Operands) {
		c.push(c.A, c.F())
	})
	DefineInstruction(0xF1, "POP AF", 0, "Z N H C", func(c *CPU, _ Operands) {
		c.SetAF(c.pop())
	})
}
