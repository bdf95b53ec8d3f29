package cpu

import (
	"strings"
	"testing"
)

// testInstruction runs fn against a fresh CPU for the instruction
// defined at opcode, checking it carries the expected name.
func testInstruction(t *testing.T, name string, opcode uint8, fn func(t *testing.T, c *CPU, instruction *Instruction)) {
	t.Helper()
	instruction := InstructionSet[opcode]
	if instruction == nil {
		t.Errorf("instruction 0x%02X (%s) is not defined", opcode, name)
		return
	}
	if instruction.Name() != name {
		t.Errorf("expected instruction 0x%02X to be %s, got %s", opcode, name, instruction.Name())
	}
	t.Run(name, func(t *testing.T) {
		fn(t, newTestCPU(t, nil), instruction)
	})
}

// testInstructionCB is testInstruction for the extended table.
func testInstructionCB(t *testing.T, name string, opcode uint8, fn func(t *testing.T, c *CPU, instruction *Instruction)) {
	t.Helper()
	instruction := InstructionSetCB[opcode]
	if instruction == nil {
		t.Errorf("instruction 0xCB 0x%02X (%s) is not defined", opcode, name)
		return
	}
	if instruction.Name() != name {
		t.Errorf("expected instruction 0xCB 0x%02X to be %s, got %s", opcode, name, instruction.Name())
	}
	t.Run(name, func(t *testing.T) {
		fn(t, newTestCPU(t, nil), instruction)
	})
}

func TestInstruction_Increment(t *testing.T) {
	tests := []struct {
		value, result        uint8
		zero, halfCarry bool
	}{
		{0x00, 0x01, false, false},
		{0x0F, 0x10, false, true},
		{0x7F, 0x80, false, true},
		{0xFE, 0xFF, false, false},
		{0xFF, 0x00, true, true},
	}
	// 0x04 - INC B
	testInstruction(t, "INC B", 0x04, func(t *testing.T, c *CPU, instruction *Instruction) {
		for _, carry := range []bool{false, true} {
			for _, tt := range tests {
				c.B = tt.value
				c.setFlags(!tt.zero, true, !tt.halfCarry, carry)
				instruction.Execute(c, nil)

				if c.B != tt.result {
					t.Errorf("INC 0x%02X: expected 0x%02X, got 0x%02X", tt.value, tt.result, c.B)
				}
				if c.Zero != tt.zero || c.Subtract || c.HalfCarry != tt.halfCarry || c.Carry != carry {
					t.Errorf("INC 0x%02X: unexpected flags %s", tt.value, c.Flags)
				}
			}
		}
	})
	// 0x34 - INC (HL)
	testInstruction(t, "INC (HL)", 0x34, func(t *testing.T, c *CPU, instruction *Instruction) {
		c.HL().SetUint16(0xC000)
		_ = c.b.Write(0xC000, 0x0F)
		instruction.Execute(c, nil)

		if v := c.b.Read(0xC000); v != 0x10 {
			t.Errorf("expected 0x10 at 0xC000, got 0x%02X", v)
		}
		if !c.HalfCarry {
			t.Errorf("expected half carry to be set")
		}
	})
}

func TestInstruction_Decrement(t *testing.T) {
	tests := []struct {
		value, result        uint8
		zero, halfCarry bool
	}{
		{0x01, 0x00, true, false},
		{0x10, 0x0F, false, true},
		{0x00, 0xFF, false, true},
		{0x80, 0x7F, false, true},
		{0x42, 0x41, false, false},
	}
	// 0x0D - DEC C
	testInstruction(t, "DEC C", 0x0D, func(t *testing.T, c *CPU, instruction *Instruction) {
		for _, carry := range []bool{false, true} {
			for _, tt := range tests {
				c.C = tt.value
				c.setFlags(!tt.zero, false, !tt.halfCarry, carry)
				instruction.Execute(c, nil)

				if c.C != tt.result {
					t.Errorf("DEC 0x%02X: expected 0x%02X, got 0x%02X", tt.value, tt.result, c.C)
				}
				if c.Zero != tt.zero || !c.Subtract || c.HalfCarry != tt.halfCarry || c.Carry != carry {
					t.Errorf("DEC 0x%02X: unexpected flags %s", tt.value, c.Flags)
				}
			}
		}
	})
}

func TestInstruction_Compare(t *testing.T) {
	tests := []struct {
		a, n                   uint8
		zero, halfCarry, carry bool
	}{
		{0x3C, 0x3C, true, false, false},
		{0x3C, 0x2F, false, true, false},
		{0x3C, 0x40, false, false, true},
		{0x00, 0x01, false, true, true},
		{0x90, 0x10, false, false, false},
	}
	// 0xFE - CP d8
	testInstruction(t, "CP d8", 0xFE, func(t *testing.T, c *CPU, instruction *Instruction) {
		for _, tt := range tests {
			c.A = tt.a
			instruction.Execute(c, Operands{tt.n})

			if c.A != tt.a {
				t.Errorf("CP must not store the result, A changed to 0x%02X", c.A)
			}
			if c.Zero != tt.zero || !c.Subtract || c.HalfCarry != tt.halfCarry || c.Carry != tt.carry {
				t.Errorf("CP 0x%02X, 0x%02X: unexpected flags %s", tt.a, tt.n, c.Flags)
			}
		}
	})
}

func TestInstruction_Loads(t *testing.T) {
	// 0x3E - LD A, d8
	testInstruction(t, "LD A, d8", 0x3E, func(t *testing.T, c *CPU, instruction *Instruction) {
		instruction.Execute(c, Operands{0x42})
		if c.A != 0x42 {
			t.Errorf("expected 0x42 in A, got 0x%02X", c.A)
		}
	})
	// 0x21 - LD HL, d16
	testInstruction(t, "LD HL, d16", 0x21, func(t *testing.T, c *CPU, instruction *Instruction) {
		instruction.Execute(c, Operands{0x34, 0x12})
		if c.H != 0x12 || c.L != 0x34 {
			t.Errorf("expected H=0x12 L=0x34, got H=0x%02X L=0x%02X", c.H, c.L)
		}
	})
	// 0x1A - LD A, (DE)
	testInstruction(t, "LD A, (DE)", 0x1A, func(t *testing.T, c *CPU, instruction *Instruction) {
		c.DE().SetUint16(0xC123)
		_ = c.b.Write(0xC123, 0x42)
		instruction.Execute(c, nil)
		if c.A != 0x42 {
			t.Errorf("expected 0x42 in A, got 0x%02X", c.A)
		}
	})
	// 0x12 - LD (DE), A
	testInstruction(t, "LD (DE), A", 0x12, func(t *testing.T, c *CPU, instruction *Instruction) {
		c.A = 0x42
		c.DE().SetUint16(0x8000)
		instruction.Execute(c, nil)
		if v := c.b.Read(0x8000); v != 0x42 {
			t.Errorf("expected 0x42 at 0x8000, got 0x%02X", v)
		}
	})
	// 0x32 - LD (HL-), A
	testInstruction(t, "LD (HL-), A", 0x32, func(t *testing.T, c *CPU, instruction *Instruction) {
		c.A = 0x42
		c.HL().SetUint16(0x9FFF)
		for i := 0; i < 3; i++ {
			instruction.Execute(c, nil)
		}
		for addr := uint16(0x9FFD); addr <= 0x9FFF; addr++ {
			if v := c.b.Read(addr); v != 0x42 {
				t.Errorf("expected 0x42 at 0x%04X, got 0x%02X", addr, v)
			}
		}
		if c.HL().Uint16() != 0x9FFC {
			t.Errorf("expected HL to be 0x9FFC, got 0x%04X", c.HL().Uint16())
		}

		// the post-decrement wraps around
		c.WritePolicy = Permissive
		c.HL().SetUint16(0x0000)
		instruction.Execute(c, nil)
		if c.HL().Uint16() != 0xFFFF {
			t.Errorf("expected HL to wrap to 0xFFFF, got 0x%04X", c.HL().Uint16())
		}
	})
	// 0x2A - LD A, (HL+)
	testInstruction(t, "LD A, (HL+)", 0x2A, func(t *testing.T, c *CPU, instruction *Instruction) {
		c.HL().SetUint16(0xC000)
		_ = c.b.Write(0xC000, 0x42)
		instruction.Execute(c, nil)
		if c.A != 0x42 || c.HL().Uint16() != 0xC001 {
			t.Errorf("expected A=0x42 HL=0xC001, got A=0x%02X HL=0x%04X", c.A, c.HL().Uint16())
		}
	})
	// 0x70 - LD (HL), B
	testInstruction(t, "LD (HL), B", 0x70, func(t *testing.T, c *CPU, instruction *Instruction) {
		c.B = 0x42
		c.HL().SetUint16(0xFF80)
		instruction.Execute(c, nil)
		if v := c.b.Read(0xFF80); v != 0x42 {
			t.Errorf("expected 0x42 at 0xFF80, got 0x%02X", v)
		}
	})
	// 0x47 - LD B, A
	testInstruction(t, "LD B, A", 0x47, func(t *testing.T, c *CPU, instruction *Instruction) {
		c.A = 0x42
		instruction.Execute(c, nil)
		if c.B != 0x42 {
			t.Errorf("expected 0x42 in B, got 0x%02X", c.B)
		}
	})
}

func TestInstruction_HighMemory(t *testing.T) {
	// 0xE0 - LDH (a8), A
	testInstruction(t, "LDH (a8), A", 0xE0, func(t *testing.T, c *CPU, instruction *Instruction) {
		c.A = 0x91
		instruction.Execute(c, Operands{0x40})
		if v := c.b.Read(0xFF40); v != 0x91 {
			t.Errorf("expected 0x91 at 0xFF40, got 0x%02X", v)
		}
	})
	// 0xF0 - LDH A, (a8)
	testInstruction(t, "LDH A, (a8)", 0xF0, func(t *testing.T, c *CPU, instruction *Instruction) {
		_ = c.b.Write(0xFF85, 0x42)
		instruction.Execute(c, Operands{0x85})
		if c.A != 0x42 {
			t.Errorf("expected 0x42 in A, got 0x%02X", c.A)
		}
	})
	// 0xE2 - LD (C), A
	testInstruction(t, "LD (C), A", 0xE2, func(t *testing.T, c *CPU, instruction *Instruction) {
		c.A = 0x77
		c.C = 0x26
		instruction.Execute(c, nil)
		if v := c.b.Read(0xFF26); v != 0x77 {
			t.Errorf("expected 0x77 at 0xFF26, got 0x%02X", v)
		}
	})
	// 0xF2 - LD A, (C)
	testInstruction(t, "LD A, (C)", 0xF2, func(t *testing.T, c *CPU, instruction *Instruction) {
		_ = c.b.Write(0xFFFF, 0x1F)
		c.C = 0xFF
		instruction.Execute(c, nil)
		if c.A != 0x1F {
			t.Errorf("expected 0x1F in A, got 0x%02X", c.A)
		}
	})
}

func TestInstruction_Control(t *testing.T) {
	// 0x00 - NOP
	testInstruction(t, "NOP", 0x00, func(t *testing.T, c *CPU, instruction *Instruction) {
		before := c.Registers
		instruction.Execute(c, nil)
		if c.Registers != before {
			t.Errorf("expected NOP to leave registers untouched")
		}
	})
	// 0xF3 - DI
	testInstruction(t, "DI", 0xF3, func(t *testing.T, c *CPU, instruction *Instruction) {
		c.IME = true
		f := c.F()
		instruction.Execute(c, nil)
		if c.IME {
			t.Errorf("expected IME to be disabled")
		}
		if c.F() != f {
			t.Errorf("expected flags to be unaffected")
		}
	})
	// 0xFB - EI
	testInstruction(t, "EI", 0xFB, func(t *testing.T, c *CPU, instruction *Instruction) {
		instruction.Execute(c, nil)
		if !c.IME {
			t.Errorf("expected IME to be enabled")
		}
	})
}

func TestInstruction_Stack(t *testing.T) {
	// 0xF5 - PUSH AF
	testInstruction(t, "PUSH AF", 0xF5, func(t *testing.T, c *CPU, instruction *Instruction) {
		c.A = 0x12
		c.setFlags(true, false, true, false)
		c.SP = 0xDFFE
		instruction.Execute(c, nil)

		if c.SP != 0xDFFC || c.b.Read(0xDFFD) != 0x12 || c.b.Read(0xDFFC) != 0xA0 {
			t.Errorf("unexpected stack layout SP=0x%04X [0x%02X 0x%02X]", c.SP, c.b.Read(0xDFFD), c.b.Read(0xDFFC))
		}
	})
	// 0xF1 - POP AF
	testInstruction(t, "POP AF", 0xF1, func(t *testing.T, c *CPU, instruction *Instruction) {
		c.SP = 0xDFFC
		_ = c.b.Write(0xDFFC, 0x5F) // low nibble is discarded
		_ = c.b.Write(0xDFFD, 0x34)
		instruction.Execute(c, nil)

		if c.A != 0x34 || c.F() != 0x50 || c.SP != 0xDFFE {
			t.Errorf("expected A=0x34 F=0x50 SP=0xDFFE, got A=0x%02X F=0x%02X SP=0x%04X", c.A, c.F(), c.SP)
		}
		if c.Zero || !c.Subtract || c.HalfCarry || !c.Carry {
			t.Errorf("unexpected flags %s", c.Flags)
		}
	})
	// 0xD5 - PUSH DE
	testInstruction(t, "PUSH DE", 0xD5, func(t *testing.T, c *CPU, instruction *Instruction) {
		c.DE().SetUint16(0xBEEF)
		c.SP = 0xFFFE
		instruction.Execute(c, nil)
		pop := InstructionSet[0xC1] // POP BC
		pop.Execute(c, nil)
		if c.BC().Uint16() != 0xBEEF || c.SP != 0xFFFE {
			t.Errorf("expected BC=0xBEEF SP=0xFFFE, got BC=0x%04X SP=0x%04X", c.BC().Uint16(), c.SP)
		}
	})
}

func TestInstruction_BitTest(t *testing.T) {
	// 0xCB 0x7C - BIT 7, H
	testInstructionCB(t, "BIT 7, H", 0x7C, func(t *testing.T, c *CPU, instruction *Instruction) {
		for _, carry := range []bool{false, true} {
			c.H = 0x80
			c.setFlags(true, true, false, carry)
			instruction.Execute(c, nil)
			if c.Zero || c.Subtract || !c.HalfCarry || c.Carry != carry {
				t.Errorf("bit set: unexpected flags %s", c.Flags)
			}

			c.H = 0x7F
			instruction.Execute(c, nil)
			if !c.Zero || c.Subtract || !c.HalfCarry || c.Carry != carry {
				t.Errorf("bit clear: unexpected flags %s", c.Flags)
			}
			if c.H != 0x7F {
				t.Errorf("BIT must not modify the register")
			}
		}
	})
	// 0xCB 0x46 - BIT 0, (HL)
	testInstructionCB(t, "BIT 0, (HL)", 0x46, func(t *testing.T, c *CPU, instruction *Instruction) {
		c.HL().SetUint16(0xC000)
		_ = c.b.Write(0xC000, 0x01)
		instruction.Execute(c, nil)
		if c.Zero {
			t.Errorf("expected zero flag to be clear")
		}
	})
	// every bit of every register
	for b := uint8(0); b < 8; b++ {
		for r := uint8(0); r < 8; r++ {
			if r == indexHL {
				continue
			}
			instruction := InstructionSetCB[0x40|b<<3|r]
			c := newTestCPU(t, nil)
			*c.registerIndex(r) = ^uint8(1 << b)
			instruction.Execute(c, nil)
			if !c.Zero {
				t.Errorf("%s: expected zero flag for cleared bit", instruction.Name())
			}
			*c.registerIndex(r) = 1 << b
			instruction.Execute(c, nil)
			if c.Zero {
				t.Errorf("%s: expected zero flag clear for set bit", instruction.Name())
			}
		}
	}
}

// TestInstruction_FlagPolicy executes every defined instruction
// from every flag combination and checks the result against the
// flag policy it declares.
func TestInstruction_FlagPolicy(t *testing.T) {
	check := func(t *testing.T, table string, opcode int, instruction *Instruction) {
		policy := strings.Fields(instruction.Flags())
		if len(policy) != 4 {
			t.Errorf("%s 0x%02X %s: malformed flag policy %q", table, opcode, instruction.Name(), instruction.Flags())
			return
		}
		if opcode == prefixCB && table == "primary" {
			return
		}
		for f := 0; f < 16; f++ {
			c := newTestCPU(t, nil)
			c.WritePolicy = Permissive
			c.HL().SetUint16(0xC000)
			c.SP = 0xDFF0
			before := Flags{Zero: f&8 != 0, Subtract: f&4 != 0, HalfCarry: f&2 != 0, Carry: f&1 != 0}
			c.Flags = before

			instruction.Execute(c, Operands{0x00, 0xC0}[:instruction.Length()])

			for i, got := range []bool{c.Zero, c.Subtract, c.HalfCarry, c.Carry} {
				was := []bool{before.Zero, before.Subtract, before.HalfCarry, before.Carry}[i]
				switch policy[i] {
				case "-":
					if got != was {
						t.Errorf("%s 0x%02X %s: flag %s changed", table, opcode, instruction.Name(), flagNames[i])
					}
				case "0":
					if got {
						t.Errorf("%s 0x%02X %s: flag %s should be cleared", table, opcode, instruction.Name(), flagNames[i])
					}
				case "1":
					if !got {
						t.Errorf("%s 0x%02X %s: flag %s should be set", table, opcode, instruction.Name(), flagNames[i])
					}
				}
			}
		}
	}

	for opcode, instruction := range InstructionSet {
		if instruction != nil {
			check(t, "primary", opcode, instruction)
		}
	}
	for opcode, instruction := range InstructionSetCB {
		if instruction != nil {
			check(t, "extended", opcode, instruction)
		}
	}
}

func TestInstructionSet_Lengths(t *testing.T) {
	lengths := map[uint8]uint8{
		0x00: 0, 0x01: 2, 0x06: 1, 0x18: 1, 0x20: 1, 0x31: 2, 0x3E: 1, 0xAF: 0,
		0xC3: 2, 0xCD: 2, 0xE0: 1, 0xEA: 2, 0xF0: 1, 0xFA: 2, 0xFE: 1,
		0x08: 2, 0x10: 1, 0xC2: 2, 0xC4: 2, 0xC7: 0, 0xE8: 1, 0xF8: 1,
	}
	for opcode, length := range lengths {
		if InstructionSet[opcode].Length() != length {
			t.Errorf("0x%02X %s: expected %d operand bytes, got %d", opcode, InstructionSet[opcode].Name(), length, InstructionSet[opcode].Length())
		}
	}

	// opcodes with no defined behaviour on the hardware stay unimplemented
	illegal := []uint8{0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD}
	for _, opcode := range illegal {
		if InstructionSet[opcode] != nil {
			t.Errorf("expected 0x%02X to be unimplemented", opcode)
		}
	}

	defined, definedCB := 0, 0
	for i := range InstructionSet {
		if InstructionSet[i] != nil {
			defined++
		}
		if InstructionSetCB[i] != nil {
			definedCB++
		}
	}
	if defined != 256-len(illegal) {
		t.Errorf("expected %d primary instructions, got %d", 256-len(illegal), defined)
	}
	if definedCB != 256 {
		t.Errorf("expected 256 extended instructions, got %d", definedCB)
	}
}
