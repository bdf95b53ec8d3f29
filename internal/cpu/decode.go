package cpu

// aluOperation describes one of the eight accumulator operations
// selected by bits 3-5 of the 0x80-0xBF and 0xC6-0xFE opcodes.
//
//	10 ooo rrr	op A, r
//	11 ooo 110	op A, d8
type aluOperation struct {
	name  string // mnemonic, with %s standing in for the operand
	flags string
	fn    func(c *CPU, n uint8)
}

var aluOperations = [8]aluOperation{
	{"ADD A, %s", "Z 0 H C", func(c *CPU, n uint8) { c.add(n, false) }},
	{"ADC A, %s", "Z 0 H C", func(c *CPU, n uint8) { c.add(n, true) }},
	{"SUB %s", "Z 1 H C", func(c *CPU, n uint8) { c.sub(n, false) }},
	{"SBC A, %s", "Z 1 H C", func(c *CPU, n uint8) { c.sub(n, true) }},
	{"AND %s", "Z 0 1 0", (*CPU).and},
	{"XOR %s", "Z 0 0 0", (*CPU).xor},
	{"OR %s", "Z 0 0 0", (*CPU).or},
	{"CP %s", "Z 1 H C", (*CPU).compare},
}

// cbOperation describes one of the eight rotate and shift
// operations selected by bits 3-5 of the 0xCB 0x00-0x3F opcodes.
//
//	00 ooo rrr	op r
type cbOperation struct {
	name  string
	flags string
	fn    func(c *CPU, n uint8) uint8
}

var cbOperations = [8]cbOperation{
	{"RLC", "Z 0 0 C", (*CPU).rotateLeftCarry},
	{"RRC", "Z 0 0 C", (*CPU).rotateRightCarry},
	{"RL", "Z 0 0 C", (*CPU).rotateLeftThroughCarry},
	{"RR", "Z 0 0 C", (*CPU).rotateRightThroughCarry},
	{"SLA", "Z 0 0 C", (*CPU).shiftLeftArithmetic},
	{"SRA", "Z 0 0 C", (*CPU).shiftRightArithmetic},
	{"SWAP", "Z 0 0 0", (*CPU).swap},
	{"SRL", "Z 0 0 C", (*CPU).shiftRightLogical},
}

// conditionNames are the names of the conditions selected by bits
// 3-4 of the conditional jump, call and return opcodes.
var conditionNames = [4]string{"NZ", "Z", "NC", "C"}

// condition reports whether the condition selected by bits 3-4 of
// opcode holds.
//
//	xx 0cc xxx
//	cc = NZ, Z, NC, C
func (c *CPU) condition(opcode uint8) bool {
	var f bool
	switch opcode >> 4 & 1 {
	case 0:
		f = c.isFlagSet(FlagZero)
	case 1:
		f = c.isFlagSet(FlagCarry)
	}

	if opcode>>3&1 == 0 {
		f = !f
	}
	return f
}
