package cpu

import (
	"fmt"

	"github.com/thelolagemann/gbcore/pkg/utils"
)

// Operands holds the immediate bytes following an opcode, in
// the order they appear in memory.
type Operands []byte

// D8 returns the 8-bit immediate operand.
func (o Operands) D8() uint8 {
	return o[0]
}

// R8 returns the signed 8-bit immediate operand.
func (o Operands) R8() int8 {
	return int8(o[0])
}

// D16 returns the little-endian 16-bit immediate operand.
func (o Operands) D16() uint16 {
	return utils.BytesToUint16(o[1], o[0])
}

// Instruction represents a single entry of a decode table.
type Instruction struct {
	name   string               // name of the instruction
	length uint8                // number of operand bytes after the opcode
	flags  string               // flag policy, see Flags
	fn     func(*CPU, Operands) // fn called when executing the instruction
}

// Name returns the mnemonic of the instruction.
func (i *Instruction) Name() string {
	return i.name
}

// Length returns the number of operand bytes that follow the
// opcode.
func (i *Instruction) Length() uint8 {
	return i.length
}

// Flags returns the flag policy of the instruction as four
// space separated fields in Z N H C order:
//
//	Z, N, H, C - set according to the result
//	0, 1       - always cleared, always set
//	-          - not affected
func (i *Instruction) Flags() string {
	return i.flags
}

// Execute runs the instruction against the CPU. PC must already
// point past the opcode and its operands.
func (i *Instruction) Execute(c *CPU, operands Operands) {
	i.fn(c, operands)
}

const (
	noFlags = "- - - -"

	// prefixCB selects the extended decode table.
	prefixCB = 0xCB
)

// InstructionSet holds the primary decode table. A nil entry is
// an unimplemented opcode.
var InstructionSet [256]*Instruction

// InstructionSetCB holds the decode table for opcodes following
// the 0xCB prefix.
var InstructionSetCB [256]*Instruction

// DefineInstruction defines the instruction in the InstructionSet
// with the provided opcode.
func DefineInstruction(opcode uint8, name string, length uint8, flags string, fn func(*CPU, Operands)) {
	if InstructionSet[opcode] != nil {
		panic(fmt.Sprintf("cpu: opcode 0x%02X defined twice (%s, %s)", opcode, InstructionSet[opcode].name, name))
	}
	InstructionSet[opcode] = &Instruction{
		name:   name,
		length: length,
		flags:  flags,
		fn:     fn,
	}
}

// DefineInstructionCB defines the instruction in the
// InstructionSetCB with the provided opcode.
func DefineInstructionCB(opcode uint8, name string, flags string, fn func(*CPU, Operands)) {
	if InstructionSetCB[opcode] != nil {
		panic(fmt.Sprintf("cpu: opcode 0xCB 0x%02X defined twice (%s, %s)", opcode, InstructionSetCB[opcode].name, name))
	}
	InstructionSetCB[opcode] = &Instruction{
		name:  name,
		flags: flags,
		fn:    fn,
	}
}
