package cpu

import (
	"errors"
	"fmt"
)

// ErrHalted is returned when stepping a CPU that has halted.
var ErrHalted = errors.New("cpu: halted")

// UnimplementedOpcodeError is returned when the primary decode
// table has no entry for an opcode.
type UnimplementedOpcodeError struct {
	Opcode  uint8
	Address uint16
}

func (e *UnimplementedOpcodeError) Error() string {
	return fmt.Sprintf("cpu: unimplemented opcode 0x%02X at 0x%04X", e.Opcode, e.Address)
}

// UnimplementedExtendedOpcodeError is returned when the 0xCB
// decode table has no entry for a secondary opcode. Address is
// the address of the prefix byte.
type UnimplementedExtendedOpcodeError struct {
	Opcode  uint8
	Address uint16
}

func (e *UnimplementedExtendedOpcodeError) Error() string {
	return fmt.Sprintf("cpu: unimplemented extended opcode 0xCB 0x%02X at 0x%04X", e.Opcode, e.Address)
}
